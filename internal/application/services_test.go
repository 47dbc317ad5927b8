package application

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/query"
	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
	"github.com/oksasatya/bootcamp-directory/pkg/mailer/templates"
)

func TestCreateBootcamp(t *testing.T) {
	f := newFixture(t)
	pub := f.user(t, entity.RolePublisher)

	b := f.bootcamp(t, pub, "Devworks Bootcamp")
	assert.Equal(t, "devworks-bootcamp", b.Slug)
	assert.Equal(t, entity.DefaultPhoto, b.Photo)
	assert.Equal(t, pub.ID, b.User)
	require.NotNil(t, b.Location)
	assert.Equal(t, "Boston", b.Location.City)
	assert.Equal(t, "Devworks Bootcamp", f.search.indexed[b.ID])
}

func TestCreateBootcampValidation(t *testing.T) {
	f := newFixture(t)
	pub := f.user(t, entity.RolePublisher)

	_, err := f.bootcamps.Create(context.Background(), pub, BootcampInput{Careers: []string{"Cooking"}})
	require.Error(t, err)
	var ae *apperror.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperror.KindValidation, ae.Kind)
	assert.Contains(t, ae.Messages, "name is required")
	assert.Contains(t, ae.Messages, "address is required")
}

func TestPublisherOwnsOneBootcamp(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pub := f.user(t, entity.RolePublisher)
	f.bootcamp(t, pub, "First")

	_, err := f.bootcamps.Create(ctx, pub, BootcampInput{
		Name: "Second", Description: "d", Address: "Providence RI", Careers: []string{"Business"},
	})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "has already published a bootcamp")

	admin := f.user(t, entity.RoleAdmin)
	f.bootcamp(t, admin, "Admin One")
	f.bootcamp(t, admin, "Admin Two")
}

func TestDuplicateBootcampName(t *testing.T) {
	f := newFixture(t)
	f.bootcamp(t, f.user(t, entity.RolePublisher), "Devworks")
	_, err := f.bootcamps.Create(context.Background(), f.user(t, entity.RolePublisher), BootcampInput{
		Name: "Devworks", Description: "d", Address: "Providence RI", Careers: []string{"Business"},
	})
	assert.ErrorIs(t, err, apperror.ErrDuplicate)
}

func TestUpdateBootcamp(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pub := f.user(t, entity.RolePublisher)
	b := f.bootcamp(t, pub, "Devworks")

	got, err := f.bootcamps.Update(ctx, b, BootcampPatch{Name: str("Code Works"), Address: str("Providence RI")})
	require.NoError(t, err)
	assert.Equal(t, "code-works", got.Slug)
	assert.Equal(t, "Providence", got.Location.City)
	assert.Equal(t, "Code Works", f.search.indexed[b.ID])

	_, err = f.bootcamps.Update(ctx, got, BootcampPatch{Website: str("ftp://nope")})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	stored, err := f.bootcamps.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Website)
}

func TestDeleteBootcampCascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pub := f.user(t, entity.RolePublisher)
	b := f.bootcamp(t, pub, "Devworks")
	other := f.bootcamp(t, f.user(t, entity.RolePublisher), "Other")

	f.course(t, pub, b.ID, 100)
	f.course(t, pub, b.ID, 200)
	kept := f.course(t, pub, other.ID, 300)
	_, err := f.reviews.Create(ctx, f.user(t, entity.RoleUser), b.ID, ReviewInput{Title: "t", Text: "x", Rating: rating(5)})
	require.NoError(t, err)

	require.NoError(t, f.bootcamps.Delete(ctx, b))

	_, err = f.bootcamps.Get(ctx, b.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	n, _ := f.store.Courses.Count(ctx, query.Filter{})
	assert.Equal(t, int64(1), n)
	n, _ = f.store.Reviews.Count(ctx, query.Filter{})
	assert.Zero(t, n)
	_, ok := f.search.indexed[b.ID]
	assert.False(t, ok)

	got, err := f.bootcamps.Get(ctx, kept.Bootcamp)
	require.NoError(t, err)
	assert.Equal(t, 300.0, got.AverageCost)
}

func TestWithinRadius(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.bootcamp(t, f.user(t, entity.RolePublisher), "Devworks")
	_, err := f.bootcamps.Create(ctx, f.user(t, entity.RolePublisher), BootcampInput{
		Name: "Far", Description: "d", Address: "Providence RI", Careers: []string{"Business"},
	})
	require.NoError(t, err)

	near, err := f.bootcamps.WithinRadius(ctx, "02215", 10)
	require.NoError(t, err)
	require.Len(t, near, 1)
	assert.Equal(t, "Devworks", near[0].Name)

	all, err := f.bootcamps.WithinRadius(ctx, "02215", 100)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.bootcamps.WithinRadius(ctx, "00000", 10)
	assert.Error(t, err)

	for _, miles := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err = f.bootcamps.WithinRadius(ctx, "02215", miles)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err), "%v", miles)
	}
}

func TestUploadPhoto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := f.bootcamp(t, f.user(t, entity.RolePublisher), "Devworks")

	tests := []struct {
		name string
		up   *PhotoUpload
		msg  string
	}{
		{"missing", nil, "Please upload a file"},
		{"not an image", &PhotoUpload{Filename: "a.txt", ContentType: "text/plain", Size: 3, Body: strings.NewReader("abc")}, "Please upload an image file"},
		{"too large", &PhotoUpload{Filename: "a.png", ContentType: "image/png", Size: 5000, Body: strings.NewReader("abc")}, "Please upload an image less than 1000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.bootcamps.UploadPhoto(ctx, b, tt.up)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
			assert.EqualError(t, err, tt.msg)
		})
	}

	ref, err := f.bootcamps.UploadPhoto(ctx, b, &PhotoUpload{Filename: "me.jpg", ContentType: "image/jpeg", Size: 3, Body: strings.NewReader("abc")})
	require.NoError(t, err)
	assert.Equal(t, "photo_"+b.ID+".jpg", ref)
	stored, _ := f.bootcamps.Get(ctx, b.ID)
	assert.Equal(t, ref, stored.Photo)

	f.blob.err = errors.New("disk full")
	_, err = f.bootcamps.UploadPhoto(ctx, b, &PhotoUpload{Filename: "me.jpg", ContentType: "image/jpeg", Size: 3, Body: strings.NewReader("abc")})
	assert.ErrorIs(t, err, apperror.ErrUpstream)
}

func TestCourseRequiresExistingBootcamp(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pub := f.user(t, entity.RolePublisher)

	_, err := f.courses.Create(ctx, pub, uuid.NewString(), CourseInput{
		Title: "c", Description: "d", Weeks: "4", TuitionFee: fee(100), MinimumSkill: "beginner",
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	n, _ := f.store.Courses.Count(ctx, query.Filter{})
	assert.Zero(t, n)

	_, err = f.courses.Create(ctx, pub, "not-an-id", CourseInput{
		Title: "c", Description: "d", Weeks: "4", TuitionFee: fee(100), MinimumSkill: "beginner",
	})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestCourseValidation(t *testing.T) {
	f := newFixture(t)
	pub := f.user(t, entity.RolePublisher)
	b := f.bootcamp(t, pub, "Devworks")

	_, err := f.courses.Create(context.Background(), pub, b.ID, CourseInput{
		Title: "c", Description: "d", Weeks: "4", TuitionFee: fee(-1), MinimumSkill: "guru",
	})
	var ae *apperror.Error
	require.ErrorAs(t, err, &ae)
	assert.Len(t, ae.Messages, 2)
}

func TestCourseGetEmbedsBootcamp(t *testing.T) {
	f := newFixture(t)
	pub := f.user(t, entity.RolePublisher)
	b := f.bootcamp(t, pub, "Devworks")
	c := f.course(t, pub, b.ID, 100)

	doc, err := f.courses.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, query.Document{"id": b.ID, "name": "Devworks", "description": "A bootcamp"}, doc["bootcamp"])
}

func TestMoveCourseToForeignBootcamp(t *testing.T) {
	f := newFixture(t)
	pub := f.user(t, entity.RolePublisher)
	b := f.bootcamp(t, pub, "Mine")
	theirs := f.bootcamp(t, f.user(t, entity.RolePublisher), "Theirs")
	c := f.course(t, pub, b.ID, 100)

	_, err := f.courses.Update(context.Background(), pub, c, CoursePatch{Bootcamp: str(theirs.ID)})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestReviewRules(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := f.bootcamp(t, f.user(t, entity.RolePublisher), "Devworks")
	u := f.user(t, entity.RoleUser)

	r, err := f.reviews.Create(ctx, u, b.ID, ReviewInput{Title: "Great", Text: "Loved it", Rating: rating(9)})
	require.NoError(t, err)

	_, err = f.reviews.Create(ctx, u, b.ID, ReviewInput{Title: "Again", Text: "Still", Rating: rating(1)})
	assert.ErrorIs(t, err, apperror.ErrDuplicate)

	_, err = f.reviews.Create(ctx, f.user(t, entity.RoleUser), b.ID, ReviewInput{Title: "Bad", Text: "x", Rating: rating(11)})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = f.reviews.Update(ctx, r, ReviewPatch{Bootcamp: str(uuid.NewString())})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	updated, err := f.reviews.Update(ctx, r, ReviewPatch{Rating: rating(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Rating)
	got, _ := f.bootcamps.Get(ctx, b.ID)
	assert.Equal(t, 3.0, got.AverageRating)

	doc, err := f.reviews.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, query.Document{"id": u.ID, "name": u.Name}, doc["user"])

	require.NoError(t, f.reviews.Delete(ctx, updated))
	got, _ = f.bootcamps.Get(ctx, b.ID)
	assert.Zero(t, got.AverageRating)
}

func TestUserAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, entity.RoleUser)

	got, err := f.users.Update(ctx, u.ID, UserPatch{Role: str("publisher"), Email: str("  NEW@Example.com ")})
	require.NoError(t, err)
	assert.Equal(t, entity.RolePublisher, got.Role)
	assert.Equal(t, "new@example.com", got.Email)

	_, err = f.users.Update(ctx, u.ID, UserPatch{Role: str("root")})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = f.users.Update(ctx, u.ID, UserPatch{Password: str("secret99")})
	require.NoError(t, err)
	stored, _ := f.users.Get(ctx, u.ID)
	assert.True(t, helpers.CompareHashAndPassword(stored.Password, "secret99"))

	require.NoError(t, f.users.Delete(ctx, u.ID))
	_, err = f.users.Get(ctx, u.ID)
	assert.EqualError(t, err, "User id "+u.ID+" not found")
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.auth.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "123456", Role: "admin"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	tok, err := f.auth.Register(ctx, RegisterInput{Name: "A", Email: "A@Example.com", Password: "123456", Role: "publisher"})
	require.NoError(t, err)
	claims, err := f.auth.JWT.Parse(tok.Token)
	require.NoError(t, err)
	me, err := f.auth.Me(ctx, claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", me.Email)
	assert.Equal(t, entity.RolePublisher, me.Role)

	_, err = f.auth.Login(ctx, LoginInput{Email: "a@example.com"})
	assert.EqualError(t, err, "Please provide an email and a password")

	_, err = f.auth.Login(ctx, LoginInput{Email: "a@example.com", Password: "wrong1"})
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)

	_, err = f.auth.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "123456"})
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)

	_, err = f.auth.Login(ctx, LoginInput{Email: "a@example.com", Password: "123456"})
	require.NoError(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	f.auth.Now = func() time.Time { return now }
	u := f.user(t, entity.RoleUser)

	require.NoError(t, f.auth.ForgotPassword(ctx, ForgotInput{Email: u.Email}))
	require.Len(t, f.mail.sent, 1)
	msg := f.mail.sent[0]
	assert.Equal(t, u.Email, msg.To)
	i := strings.Index(msg.Text, "/reset-password/")
	require.Positive(t, i)
	raw := strings.Fields(msg.Text[i+len("/reset-password/"):])[0]
	assert.Equal(t, templates.ResetPassword, msg.Template)
	assert.Equal(t, u.Name, msg.Data["Name"])
	assert.Contains(t, msg.Data["ResetURL"], raw)

	stored, _ := f.users.Get(ctx, u.ID)
	assert.Equal(t, helpers.HashResetToken(raw), stored.ResetPasswordToken)

	_, err := f.auth.ResetPassword(ctx, "bogus", ResetInput{Password: "newpass"})
	assert.EqualError(t, err, "Invalid token")

	now = now.Add(11 * time.Minute)
	_, err = f.auth.ResetPassword(ctx, raw, ResetInput{Password: "newpass"})
	assert.EqualError(t, err, "Invalid token")

	now = now.Add(-2 * time.Minute)
	tok, err := f.auth.ResetPassword(ctx, raw, ResetInput{Password: "newpass"})
	require.NoError(t, err)
	assert.NotEmpty(t, tok.Token)

	stored, _ = f.users.Get(ctx, u.ID)
	assert.Empty(t, stored.ResetPasswordToken)
	assert.True(t, helpers.CompareHashAndPassword(stored.Password, "newpass"))
}

func TestForgotPasswordMailFailureClearsToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, entity.RoleUser)
	f.mail.err = errors.New("smtp down")

	err := f.auth.ForgotPassword(ctx, ForgotInput{Email: u.Email})
	assert.ErrorIs(t, err, apperror.ErrUpstream)

	stored, _ := f.users.Get(ctx, u.ID)
	assert.Empty(t, stored.ResetPasswordToken)
	assert.Nil(t, stored.ResetPasswordExpire)

	err = f.auth.ForgotPassword(ctx, ForgotInput{Email: "ghost@example.com"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdatePassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, entity.RoleUser)

	_, err := f.auth.UpdatePassword(ctx, u, PasswordChange{CurrentPassword: "nope", NewPassword: "abcdef"})
	assert.EqualError(t, err, "Password is incorrect")

	tok, err := f.auth.UpdatePassword(ctx, u, PasswordChange{CurrentPassword: "123456", NewPassword: "abcdef"})
	require.NoError(t, err)
	assert.NotEmpty(t, tok.Token)
	_, err = f.auth.Login(ctx, LoginInput{Email: u.Email, Password: "abcdef"})
	require.NoError(t, err)
}
