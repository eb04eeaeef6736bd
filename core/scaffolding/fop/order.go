// Package fop provides filter, order and pagination support shared by the
// repositories.
package fop

import (
	"fmt"
	"strings"
)

// Set of directions for data ordering.
const (
	ASC  = "ASC"
	DESC = "DESC"
)

// By represents a field to sort by and the direction.
type By struct {
	Field     string
	Direction string
}

// NewBy constructs a By value with a validated direction.
func NewBy(field string, direction string) By {
	if _, exists := directions[strings.ToUpper(direction)]; !exists {
		return By{Field: field, Direction: ASC}
	}
	return By{Field: field, Direction: strings.ToUpper(direction)}
}

var directions = map[string]struct{}{
	ASC:  {},
	DESC: {},
}

// ParseOrder parses an order query value of the form "field" or
// "field,desc" against a whitelist of orderable fields, falling back to the
// given default.
func ParseOrder(raw string, allowed map[string]string, defaultBy By) (By, error) {
	if raw == "" {
		return defaultBy, nil
	}

	field, direction, found := strings.Cut(raw, ",")
	column, ok := allowed[strings.TrimSpace(field)]
	if !ok {
		return By{}, fmt.Errorf("unknown order field %q", field)
	}

	if !found {
		return NewBy(column, defaultBy.Direction), nil
	}
	return NewBy(column, strings.TrimSpace(direction)), nil
}
