package util

import (
	"math"
	"strconv"

	"github.com/Skotchmaster/storefront/internal/transport"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func ParseUint(s string) (uint, bool) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

// Calculate turns a 1-based page and a size into offset and limit. Sizes
// outside 1..MaxPageSize fall back to the default, and the page is clamped
// so the offset fits in an int32.
func Calculate(page, size int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}
	if maxPage := math.MaxInt32 / size; page > maxPage {
		page = maxPage
	}
	return (page - 1) * size, size
}

// Meta describes the page that offset and limit select.
func Meta(offset, limit int, total int64) transport.PageMeta {
	page := offset/limit + 1
	return transport.PageMeta{
		Page:       page,
		Size:       limit,
		Total:      total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
		HasPrev:    page > 1,
		HasNext:    int64(offset+limit) < total,
	}
}
