package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 24
	// MaxLimit caps how many items any page can request.
	MaxLimit = 100
)

const cursorPrefix = "offset:"

// Params holds cursor pagination inputs from controllers.
type Params struct {
	Limit  int
	Cursor string
}

// Cursor marks where the next page starts in a stable, ordered list.
type Cursor struct {
	Offset int
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// EncodeCursor builds an opaque cursor string.
func EncodeCursor(cursor Cursor) string {
	return base64.RawURLEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(cursor.Offset)))
}

// ParseCursor decodes the cursor string. An empty value is the first page.
func ParseCursor(value string) (*Cursor, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	raw, ok := strings.CutPrefix(string(decoded), cursorPrefix)
	if !ok {
		return nil, fmt.Errorf("invalid cursor format")
	}
	offset, err := strconv.Atoi(raw)
	if err != nil || offset < 0 {
		return nil, fmt.Errorf("invalid cursor offset %q", raw)
	}
	return &Cursor{Offset: offset}, nil
}

// Slice returns one page of items and the cursor for the next page, which is
// empty on the last page.
func Slice[T any](items []T, params Params) ([]T, string, error) {
	cursor, err := ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}
	start := 0
	if cursor != nil {
		start = min(cursor.Offset, len(items))
	}
	end := min(start+NormalizeLimit(params.Limit), len(items))

	next := ""
	if end < len(items) {
		next = EncodeCursor(Cursor{Offset: end})
	}
	return items[start:end], next, nil
}
