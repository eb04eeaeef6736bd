package fop_test

import (
	"testing"
	"time"

	"github.com/hearthkeep/hearthkeep/core/scaffolding/fop"
)

func TestCursorRoundTrip(t *testing.T) {
	orderValue := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	token, err := fop.Cursor[string, time.Time]{
		OrderValue: orderValue,
		PK:         "3f1c9a52",
	}.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := fop.DecodeCursor[string, time.Time](token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.PK != "3f1c9a52" {
		t.Errorf("pk: got %q, want %q", decoded.PK, "3f1c9a52")
	}
	if !decoded.OrderValue.Equal(orderValue) {
		t.Errorf("order value: got %v, want %v", decoded.OrderValue, orderValue)
	}
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	if _, err := fop.DecodeCursor[string, time.Time]("not-base64!"); err == nil {
		t.Error("expected error for invalid token")
	}
}

func TestParsePageStringCursor(t *testing.T) {
	tests := []struct {
		name      string
		limit     string
		wantLimit int
		wantErr   bool
	}{
		{name: "default", limit: "", wantLimit: 20},
		{name: "explicit", limit: "50", wantLimit: 50},
		{name: "zero", limit: "0", wantErr: true},
		{name: "negative", limit: "-5", wantErr: true},
		{name: "over ceiling", limit: "101", wantErr: true},
		{name: "not a number", limit: "ten", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := fop.ParsePageStringCursor(tt.limit, "")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if page.Limit != tt.wantLimit {
				t.Errorf("limit: got %d, want %d", page.Limit, tt.wantLimit)
			}
		})
	}
}

func TestParseOrder(t *testing.T) {
	allowed := map[string]string{
		"created_at": "created_at",
		"due_date":   "due_date",
	}
	defaultBy := fop.NewBy("created_at", fop.DESC)

	tests := []struct {
		name    string
		raw     string
		want    fop.By
		wantErr bool
	}{
		{name: "empty uses default", raw: "", want: defaultBy},
		{name: "field inherits default direction", raw: "due_date", want: fop.NewBy("due_date", fop.DESC)},
		{name: "field and direction", raw: "due_date,ASC", want: fop.NewBy("due_date", fop.ASC)},
		{name: "lowercase direction", raw: "due_date,desc", want: fop.NewBy("due_date", fop.DESC)},
		{name: "unknown field", raw: "password_hash", wantErr: true},
		{name: "bad direction falls back to ASC", raw: "due_date,SIDEWAYS", want: fop.NewBy("due_date", fop.ASC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fop.ParseOrder(tt.raw, allowed, defaultBy)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
