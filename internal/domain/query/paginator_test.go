package query

import (
	"math"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		raw       string
		page, lim int
	}{
		{"", 1, 20},
		{"page=3&limit=5", 3, 5},
		{"page=0&limit=-2", 1, 20},
		{"page=abc&limit=x", 1, 20},
		{"limit=5000", 1, MaxLimit},
		{"page=" + strconv.Itoa(math.MaxInt) + "&limit=20", MaxSkip/20 + 1, 20},
		{"page=99999999999999999999999&limit=4", MaxSkip/4 + 1, 4},
	}
	for _, tt := range tests {
		v, _ := url.ParseQuery(tt.raw)
		p, l := ParsePage(v)
		assert.Equal(t, tt.page, p, tt.raw)
		assert.Equal(t, tt.lim, l, tt.raw)
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		total       int64
		skip        int
		pages       int
		next, prev  *PageRef
	}{
		{name: "first of three", page: 1, limit: 20, total: 45, skip: 0, pages: 3, next: &PageRef{2, 20}},
		{name: "middle", page: 2, limit: 20, total: 45, skip: 20, pages: 3, next: &PageRef{3, 20}, prev: &PageRef{1, 20}},
		{name: "last", page: 3, limit: 20, total: 45, skip: 40, pages: 3, prev: &PageRef{2, 20}},
		{name: "exact fit has no next", page: 2, limit: 10, total: 20, skip: 10, pages: 2, prev: &PageRef{1, 10}},
		{name: "zero total", page: 1, limit: 20, total: 0, skip: 0, pages: 0},
		{name: "page past the end", page: 5, limit: 10, total: 12, skip: 40, pages: 2, prev: &PageRef{4, 10}},
		{name: "max page is clamped", page: math.MaxInt, limit: 20, total: 45, skip: MaxSkip / 20 * 20, pages: 3, prev: &PageRef{MaxSkip / 20, 20}},
		{name: "huge page small limit", page: 1 << 62, limit: 4, total: 45, skip: MaxSkip / 4 * 4, pages: 12, prev: &PageRef{MaxSkip / 4, 4}},
		{name: "limit is capped", page: 2, limit: math.MaxInt, total: 450, skip: MaxLimit, pages: 5, next: &PageRef{3, MaxLimit}, prev: &PageRef{1, MaxLimit}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skip, p := Paginate(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.skip, skip)
			assert.Equal(t, tt.pages, p.Pages)
			assert.Equal(t, tt.next, p.Next)
			assert.Equal(t, tt.prev, p.Prev)
		})
	}
}

func TestPaginateInvariants(t *testing.T) {
	for total := int64(0); total <= 50; total++ {
		for limit := 1; limit <= 7; limit++ {
			for page := 1; page <= 10; page++ {
				skip, p := Paginate(page, limit, total)
				assert.Equal(t, (p.Next != nil), int64(page*limit) < total)
				assert.Equal(t, (p.Prev != nil), skip > 0)
				want := int((total + int64(limit) - 1) / int64(limit))
				assert.Equal(t, want, p.Pages)
			}
		}
	}
}

func TestPaginateNeverOverflows(t *testing.T) {
	for _, page := range []int{math.MaxInt, math.MaxInt / 2, 1 << 40, MaxSkip} {
		for _, limit := range []int{1, 7, 20, MaxLimit, math.MaxInt} {
			skip, p := Paginate(page, limit, 45)
			assert.GreaterOrEqual(t, skip, 0)
			assert.LessOrEqual(t, skip, MaxSkip)
			assert.Nil(t, p.Next)
			if assert.NotNil(t, p.Prev) {
				assert.Positive(t, p.Prev.Page)
			}
		}
	}
}
