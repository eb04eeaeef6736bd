package fop

import (
	"fmt"
	"strconv"
)

// PageStringCursor represents the requested items per page plus the opaque
// cursor to continue from.
type PageStringCursor struct {
	Limit  int
	Cursor string
}

// PageInfoStringCursor returns pagination data. Every slice query should
// return page info.
type PageInfoStringCursor struct {
	HasPrev        bool   `json:"hasPrev,omitempty"`
	HasNext        bool   `json:"hasNext,omitempty"`
	Limit          int    `json:"limit,omitempty"`
	PreviousCursor string `json:"previousCursor,omitempty"`
	NextCursor     string `json:"nextCursor,omitempty"`
	PageTotal      int    `json:"pageTotal,omitempty"`
}

// ParsePageStringCursor parses limit/cursor query values with bounds
// checking. The default page size is 20 and the ceiling 100.
func ParsePageStringCursor(pageLimit string, cursor string) (PageStringCursor, error) {
	limit := 20

	if pageLimit != "" {
		var err error
		limit, err = strconv.Atoi(pageLimit)
		if err != nil {
			return PageStringCursor{}, fmt.Errorf("page limit conversion: %w", err)
		}
	}

	if limit <= 0 {
		return PageStringCursor{}, fmt.Errorf("rows value too small, must be larger than 0")
	}

	if limit > 100 {
		return PageStringCursor{}, fmt.Errorf("rows value too large, must be less than 100")
	}

	return PageStringCursor{
		Limit:  limit,
		Cursor: cursor,
	}, nil
}
