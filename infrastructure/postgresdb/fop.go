package postgresdb

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Set of directions for data ordering.
const (
	ASC  = "ASC"
	DESC = "DESC"
)

// StringCursorConfig holds configuration for string-based cursor pagination.
type StringCursorConfig struct {
	Cursor     string
	OrderField string
	PKField    string
	Direction  string
	Limit      int
}

// ApplyCursorPagination appends a tuple comparison for keyset pagination:
//
//	("created_at", "id") > (@cursor_order_value, @cursor_pk)
func ApplyCursorPagination[K any, O any](
	buf *bytes.Buffer,
	data pgx.NamedArgs,
	orderField string,
	pkField string,
	orderValue *O,
	keyValue *K,
	direction string,
	forPrevious bool,
) error {
	if keyValue == nil || orderValue == nil {
		return nil
	}

	quotedOrder, err := QuoteIdentifier(orderField)
	if err != nil {
		return fmt.Errorf("invalid order field: %w", err)
	}
	quotedPK, err := QuoteIdentifier(pkField)
	if err != nil {
		return fmt.Errorf("invalid pk field: %w", err)
	}

	if strings.Contains(buf.String(), "WHERE") {
		buf.WriteString(" AND ")
	} else {
		buf.WriteString(" WHERE ")
	}

	operator := determineOperator(direction, forPrevious)

	fmt.Fprintf(buf, "(%s, %s) %s (@cursor_order_value, @cursor_pk)", quotedOrder, quotedPK, operator)

	data["cursor_order_value"] = *orderValue
	data["cursor_pk"] = *keyValue

	return nil
}

// ApplyStringCursorPagination decodes an opaque base64 cursor and applies
// keyset pagination using it. The cursor carries the order value and pk of
// the last row of the previous page.
func ApplyStringCursorPagination[OrderValue any](
	buf *bytes.Buffer,
	data pgx.NamedArgs,
	config StringCursorConfig,
	forPrevious bool,
) error {
	if config.Cursor == "" {
		return nil
	}

	// Mirrors fop.Cursor; decoded locally to avoid a dependency cycle with
	// the core scaffolding.
	type cursorData struct {
		OrderValue OrderValue `json:"order_value"`
		PK         string     `json:"pk"`
	}

	decoded, err := decodeBase64JSON[cursorData](config.Cursor)
	if err != nil {
		return fmt.Errorf("decode cursor: %w", err)
	}

	return ApplyCursorPagination(
		buf, data,
		config.OrderField, config.PKField,
		&decoded.OrderValue, &decoded.PK,
		config.Direction, forPrevious,
	)
}

// AddOrderByClause adds an ORDER BY clause, with the primary key as the
// tie-break column when it differs from the order field.
func AddOrderByClause(buf *bytes.Buffer, orderField, pkField, direction string, forPrevious bool) error {
	quotedOrderField, err := QuoteIdentifier(orderField)
	if err != nil {
		return fmt.Errorf("invalid order field name: %w", err)
	}
	quotedPKField, err := QuoteIdentifier(pkField)
	if err != nil {
		return fmt.Errorf("invalid pk field name: %w", err)
	}

	actualDirection := direction
	if forPrevious {
		if direction == ASC {
			actualDirection = DESC
		} else {
			actualDirection = ASC
		}
	}

	fmt.Fprintf(buf, " ORDER BY %s %s", quotedOrderField, actualDirection)
	if orderField != pkField {
		fmt.Fprintf(buf, ", %s %s", quotedPKField, actualDirection)
	}

	return nil
}

// AddLimitClause adds a LIMIT clause through a named argument.
func AddLimitClause(buf *bytes.Buffer, data pgx.NamedArgs, limit int) {
	buf.WriteString(" LIMIT @limit")
	data["limit"] = limit
}

func determineOperator(direction string, forPrevious bool) string {
	operator := ">"
	if forPrevious {
		operator = "<"
	}
	if direction == DESC && !forPrevious {
		operator = "<"
	} else if direction == DESC && forPrevious {
		operator = ">"
	}
	return operator
}

func decodeBase64JSON[T any](encoded string) (*T, error) {
	data, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}

	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("unmarshal json: %w", err)
	}

	return &result, nil
}
