package query

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100

	// MaxSkip bounds (page-1)*limit so the offset and page*limit never overflow.
	MaxSkip = math.MaxInt32
)

type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Pagination struct {
	Pages int      `json:"pages"`
	Next  *PageRef `json:"next,omitempty"`
	Prev  *PageRef `json:"prev,omitempty"`
}

// ParsePage reads page and limit; anything missing, non-numeric or not
// positive falls back to the default. Oversized values are clamped.
func ParsePage(values url.Values) (page, limit int) {
	return clamp(positive(values.Get("page"), DefaultPage), positive(values.Get("limit"), DefaultLimit))
}

func clamp(page, limit int) (int, int) {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if last := MaxSkip/limit + 1; page > last {
		page = last
	}
	return page, limit
}

func positive(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) && n > 0 {
		return n
	}
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// Paginate computes the window offset and the navigation block for a total.
// pages is ceil(total/limit), so an empty result has zero pages.
func Paginate(page, limit int, total int64) (skip int, p Pagination) {
	page, limit = clamp(page, limit)
	skip = (page - 1) * limit
	if total > 0 {
		p.Pages = int((total + int64(limit) - 1) / int64(limit))
	}
	if int64(page)*int64(limit) < total {
		p.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if skip > 0 {
		p.Prev = &PageRef{Page: page - 1, Limit: limit}
	}
	return skip, p
}
