package fop

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Cursor is the opaque keyset token exchanged with clients: the order value
// and primary key of the last row of a page, base64-encoded.
type Cursor[PK any, OrderValue any] struct {
	OrderValue OrderValue `json:"order_value"`
	PK         PK         `json:"pk"`
}

func (c Cursor[PK, OrderValue]) Encode() (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(data), nil
}

func DecodeCursor[PK any, OrderValue any](token string) (*Cursor[PK, OrderValue], error) {
	if token == "" {
		return nil, nil
	}

	data, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}

	var cursor Cursor[PK, OrderValue]
	if err := json.Unmarshal(data, &cursor); err != nil {
		return nil, fmt.Errorf("unmarshal cursor: %w", err)
	}

	return &cursor, nil
}
