package pagination

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// PageInfo is the page-numbered variant of the API's result_info metadata.
type PageInfo struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Count      int `json:"count"`
	TotalCount int `json:"total_count"`
}

// HasMorePages reports whether another page exists beyond this one.
func (p PageInfo) HasMorePages() bool {
	return p.Page*p.PerPage < p.TotalCount
}

// CursorInfo is the cursor variant of the API's result_info metadata.
type CursorInfo struct {
	Cursor string `json:"cursor"`
}

// HasMorePages reports whether the API handed back a continuation cursor.
func (c CursorInfo) HasMorePages() bool {
	return strings.TrimSpace(c.Cursor) != ""
}

func isEmpty(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// ParsePageInfo decodes result_info as page metadata. A missing result_info
// yields nil (no further pages can be inferred); a present one with missing
// or non-numeric fields is an error rather than a silent zero value.
func ParsePageInfo(raw json.RawMessage) (*PageInfo, error) {
	if isEmpty(raw) {
		return nil, nil
	}

	var wire struct {
		Page       *int `json:"page"`
		PerPage    *int `json:"per_page"`
		Count      *int `json:"count"`
		TotalCount *int `json:"total_count"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("decode result_info: %w", err)
	}
	if wire.Page == nil || wire.PerPage == nil || wire.TotalCount == nil {
		return nil, fmt.Errorf("result_info is missing page fields")
	}

	info := &PageInfo{
		Page:       *wire.Page,
		PerPage:    *wire.PerPage,
		TotalCount: *wire.TotalCount,
	}
	if wire.Count != nil {
		info.Count = *wire.Count
	}
	return info, nil
}

// ParseCursorInfo decodes result_info as cursor metadata. A missing
// result_info or cursor field means the final page was reached.
func ParseCursorInfo(raw json.RawMessage) (*CursorInfo, error) {
	if isEmpty(raw) {
		return &CursorInfo{}, nil
	}

	var info CursorInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("decode result_info: %w", err)
	}
	return &info, nil
}
