// Package fopbridge provides the unified response envelopes used by the
// HTTP bridges: single records, record ids, and cursor-paginated lists.
package fopbridge

import (
	"encoding/json"

	"github.com/hearthkeep/hearthkeep/core/scaffolding/fop"
)

// RecordID is the data model used when returning a create/update ID.
type RecordID struct {
	ID string `json:"id"`
}

func NewRecordID(id string) RecordID {
	return RecordID{ID: id}
}

func (r RecordID) Encode() ([]byte, string, error) {
	data, err := json.Marshal(r)
	return data, "application/json", err
}

// CodeResponse provides a standard response with code and message.
type CodeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewCodeResponse(code, message string) CodeResponse {
	return CodeResponse{Code: code, Message: message}
}

func (c CodeResponse) Encode() ([]byte, string, error) {
	data, err := json.Marshal(c)
	return data, "application/json", err
}

// RecordResponse wraps a single record.
type RecordResponse[T any] struct {
	Record T `json:"record"`
}

func NewRecordResponse[T any](record T) RecordResponse[T] {
	return RecordResponse[T]{Record: record}
}

func (r RecordResponse[T]) Encode() ([]byte, string, error) {
	data, err := json.Marshal(r)
	return data, "application/json", err
}

// RecordsResponse wraps a plain, non-paginated list.
type RecordsResponse[T any] struct {
	Records []T `json:"records"`
}

func NewRecordsResponse[T any](records []T) RecordsResponse[T] {
	if records == nil {
		records = []T{}
	}
	return RecordsResponse[T]{Records: records}
}

func (r RecordsResponse[T]) Encode() ([]byte, string, error) {
	data, err := json.Marshal(r)
	return data, "application/json", err
}

// PaginatedResponse is the envelope for cursor-paginated lists.
type PaginatedResponse[T any] struct {
	Records  []T      `json:"records"`
	PageInfo PageInfo `json:"pageInfo"`
}

// PageInfo describes the page the records came from.
type PageInfo struct {
	HasNext    bool    `json:"hasNext"`
	Limit      int     `json:"limit"`
	NextCursor *string `json:"nextCursor,omitempty"`
	PageTotal  int     `json:"pageTotal"`
}

func (p PaginatedResponse[T]) Encode() ([]byte, string, error) {
	data, err := json.Marshal(p)
	return data, "application/json", err
}

// NewPaginatedResponse builds the envelope from a result page. A full page
// advertises a next cursor derived from the caller-supplied extractor.
func NewPaginatedResponse[T any](records []T, page fop.PageStringCursor, nextCursor func(last T) (string, error)) (PaginatedResponse[T], error) {
	if records == nil {
		records = []T{}
	}

	pageInfo := PageInfo{
		Limit:     page.Limit,
		PageTotal: len(records),
	}

	if len(records) > 0 && len(records) == page.Limit {
		cursor, err := nextCursor(records[len(records)-1])
		if err != nil {
			return PaginatedResponse[T]{}, err
		}
		pageInfo.HasNext = true
		pageInfo.NextCursor = &cursor
	}

	return PaginatedResponse[T]{
		Records:  records,
		PageInfo: pageInfo,
	}, nil
}
