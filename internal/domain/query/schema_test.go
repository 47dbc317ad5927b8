package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
)

var testSchema = Schema{
	"name":        {Kind: String, Column: "name"},
	"averageCost": {Kind: Number, Column: "average_cost"},
	"housing":     {Kind: Bool, Column: "housing"},
	"createdAt":   {Kind: Time, Column: "created_at"},
	"user":        {Kind: ID, Column: "user_id"},
	"careers":     {Kind: StringList, Column: "careers"},
}

func TestResolveCoercesOperands(t *testing.T) {
	in := Filter{
		"averageCost": {{Op: OpLte, Value: "10000"}},
		"housing":     {{Op: OpEq, Value: "true"}},
		"createdAt":   {{Op: OpGte, Value: "2024-01-02"}},
		"careers":     {{Op: OpIn, Value: []string{"Business", "Other"}}},
	}
	out, ok, err := testSchema.Resolve(in)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 10000.0, out["averageCost"][0].Value)
	assert.Equal(t, true, out["housing"][0].Value)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), out["createdAt"][0].Value)
	assert.Equal(t, []any{"Business", "Other"}, out["careers"][0].Value)
}

func TestResolveUnknownFieldIsUnsatisfiable(t *testing.T) {
	_, ok, err := testSchema.Resolve(Filter{"nope": {{Op: OpEq, Value: "1"}}})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveRejectsBadOperands(t *testing.T) {
	tests := []Filter{
		{"averageCost": {{Op: OpGt, Value: "cheap"}}},
		{"housing": {{Op: OpEq, Value: "maybe"}}},
		{"user": {{Op: OpEq, Value: "not-a-uuid"}}},
		{"averageCost": {{Op: OpContains, Value: "10"}}},
	}
	for _, f := range tests {
		_, _, err := testSchema.Resolve(f)
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	}
}

func TestResolveSortDropsUnknown(t *testing.T) {
	got := testSchema.ResolveSort([]SortField{{Field: "name"}, {Field: "bogus", Desc: true}})
	assert.Equal(t, []SortField{{Field: "name"}}, got)
}

func TestProjectAndLookup(t *testing.T) {
	d := Document{"id": "1", "name": "Dev", "description": "x", "location": map[string]any{"city": "Boston"}}
	assert.Equal(t, Document{"id": "1", "name": "Dev"}, Project(d, []string{"name", "missing"}))
	assert.Equal(t, d, Project(d, nil))

	city, ok := d.Lookup("location.city")
	assert.True(t, ok)
	assert.Equal(t, "Boston", city)
	_, ok = d.Lookup("location.zip")
	assert.False(t, ok)
}
