package memory

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/query"
)

func seedBootcamps(t *testing.T, r *BootcampRepository) []entity.Bootcamp {
	t.Helper()
	ctx := context.Background()
	owner := uuid.NewString()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []entity.Bootcamp{
		{Name: "Devworks Bootcamp", Careers: []string{"Web Development", "UI/UX"}, AverageCost: 10000, Housing: true, Location: &entity.Location{Type: "Point", Coordinates: []float64{-71.104, 42.350}, City: "Boston"}},
		{Name: "ModernTech Bootcamp", Careers: []string{"Web Development", "Business"}, AverageCost: 8000, Location: &entity.Location{Type: "Point", Coordinates: []float64{-71.525, 41.820}, City: "Providence"}},
		{Name: "Codemasters", Careers: []string{"Data Science"}, AverageCost: 12000, Housing: true},
	}
	for i := range items {
		items[i].ID = uuid.NewString()
		items[i].User = owner
		items[i].Description = "desc"
		items[i].CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, r.Create(ctx, &items[i]))
	}
	return items
}

func resolve(t *testing.T, raw string) query.Filter {
	t.Helper()
	v, err := url.ParseQuery(raw)
	require.NoError(t, err)
	f, ok, err := entity.BootcampSchema.Resolve(query.Translate(v))
	require.NoError(t, err)
	require.True(t, ok)
	return f
}

func names(items []entity.Bootcamp) []string {
	var out []string
	for _, b := range items {
		out = append(out, b.Name)
	}
	return out
}

func TestBootcampFilters(t *testing.T) {
	ctx := context.Background()
	r := NewBootcampRepository()
	seedBootcamps(t, r)

	tests := []struct {
		raw  string
		want []string
	}{
		{"averageCost[lte]=10000", []string{"Devworks Bootcamp", "ModernTech Bootcamp"}},
		{"averageCost[gt]=8000&averageCost[lt]=12000", []string{"Devworks Bootcamp"}},
		{"housing=true", []string{"Devworks Bootcamp", "Codemasters"}},
		{"careers=Business", []string{"ModernTech Bootcamp"}},
		{"careers[in]=Data Science,UI/UX", []string{"Devworks Bootcamp", "Codemasters"}},
		{"name=%25Tech%25", []string{"ModernTech Bootcamp"}},
		{"name=%25tech%25", nil},
		{"location.city=Boston", []string{"Devworks Bootcamp"}},
		{"averageCost[ne]=8000", []string{"Devworks Bootcamp", "Codemasters"}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			items, err := r.Find(ctx, query.Query{Filter: resolve(t, tt.raw)})
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(items))

			n, err := r.Count(ctx, resolve(t, tt.raw))
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), n)
		})
	}
}

func TestBootcampSortAndWindow(t *testing.T) {
	ctx := context.Background()
	r := NewBootcampRepository()
	seedBootcamps(t, r)

	items, err := r.Find(ctx, query.Query{Filter: query.Filter{}, Sort: query.DefaultSort})
	require.NoError(t, err)
	assert.Equal(t, []string{"Codemasters", "ModernTech Bootcamp", "Devworks Bootcamp"}, names(items))

	items, err = r.Find(ctx, query.Query{Filter: query.Filter{}, Sort: []query.SortField{{Field: "averageCost"}}, Skip: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Devworks Bootcamp"}, names(items))

	items, err = r.Find(ctx, query.Query{Filter: query.Filter{}, Skip: 10})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestBootcampUniqueName(t *testing.T) {
	ctx := context.Background()
	r := NewBootcampRepository()
	seeded := seedBootcamps(t, r)

	dup := entity.Bootcamp{ID: uuid.NewString(), Name: seeded[0].Name, User: seeded[0].User}
	err := r.Create(ctx, &dup)
	require.Error(t, err)
	assert.Equal(t, apperror.KindDuplicate, apperror.KindOf(err))

	// Updating a document with its own name is fine.
	same := seeded[0]
	same.Description = "changed"
	require.NoError(t, r.Update(ctx, &same))
}

func TestBootcampRadiusAndAggregates(t *testing.T) {
	ctx := context.Background()
	r := NewBootcampRepository()
	seeded := seedBootcamps(t, r)

	near, err := r.FindWithinRadius(ctx, -71.06, 42.36, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Devworks Bootcamp"}, names(near))

	far, err := r.FindWithinRadius(ctx, -71.06, 42.36, 100)
	require.NoError(t, err)
	assert.Len(t, far, 2)

	require.NoError(t, r.SetAverageCost(ctx, seeded[0].ID, 250))
	got, err := r.GetByID(ctx, seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 250.0, got.AverageCost)

	err = r.SetAverageRating(ctx, uuid.NewString(), 5)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestCourseAggregatesAndCascade(t *testing.T) {
	ctx := context.Background()
	r := NewCourseRepository()
	bootcamp := uuid.NewString()
	other := uuid.NewString()
	for _, fee := range []float64{100, 300} {
		require.NoError(t, r.Create(ctx, &entity.Course{ID: uuid.NewString(), Title: "c", TuitionFee: fee, Bootcamp: bootcamp}))
	}
	require.NoError(t, r.Create(ctx, &entity.Course{ID: uuid.NewString(), Title: "x", TuitionFee: 999, Bootcamp: other}))

	avg, err := r.AverageTuition(ctx, bootcamp)
	require.NoError(t, err)
	assert.Equal(t, 200.0, avg)

	n, err := r.DeleteByBootcamp(ctx, bootcamp)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	avg, err = r.AverageTuition(ctx, bootcamp)
	require.NoError(t, err)
	assert.Zero(t, avg)

	left, err := r.Count(ctx, query.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), left)
}

func TestReviewUniquePair(t *testing.T) {
	ctx := context.Background()
	r := NewReviewRepository()
	bootcamp, user := uuid.NewString(), uuid.NewString()

	require.NoError(t, r.Create(ctx, &entity.Review{ID: uuid.NewString(), Rating: 8, Bootcamp: bootcamp, User: user}))
	err := r.Create(ctx, &entity.Review{ID: uuid.NewString(), Rating: 2, Bootcamp: bootcamp, User: user})
	assert.ErrorIs(t, err, apperror.ErrDuplicate)

	require.NoError(t, r.Create(ctx, &entity.Review{ID: uuid.NewString(), Rating: 4, Bootcamp: bootcamp, User: uuid.NewString()}))
	avg, err := r.AverageRating(ctx, bootcamp)
	require.NoError(t, err)
	assert.Equal(t, 6.0, avg)
}

func TestUserResetTokenLookup(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()
	now := time.Now()
	future := now.Add(10 * time.Minute)
	past := now.Add(-time.Minute)

	require.NoError(t, r.Create(ctx, &entity.User{ID: uuid.NewString(), Email: "a@test.io", ResetPasswordToken: "abc", ResetPasswordExpire: &future}))
	require.NoError(t, r.Create(ctx, &entity.User{ID: uuid.NewString(), Email: "b@test.io", ResetPasswordToken: "old", ResetPasswordExpire: &past}))

	u, err := r.GetByResetToken(ctx, "abc", now)
	require.NoError(t, err)
	assert.Equal(t, "a@test.io", u.Email)

	_, err = r.GetByResetToken(ctx, "old", now)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	err = r.Create(ctx, &entity.User{ID: uuid.NewString(), Email: "A@test.io"})
	assert.ErrorIs(t, err, apperror.ErrDuplicate)
}
