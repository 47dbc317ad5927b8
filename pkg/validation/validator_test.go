package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
)

func TestStructCollectsAllMessages(t *testing.T) {
	err := Struct(&entity.Bootcamp{Website: "ftp://x", Careers: []string{"Cooking"}})
	require.Error(t, err)

	var ae *apperror.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperror.KindValidation, ae.Kind)
	assert.Contains(t, ae.Messages, "name is required")
	assert.Contains(t, ae.Messages, "description is required")
	assert.Contains(t, ae.Messages, "website must be a valid URL with HTTP or HTTPS")
	assert.Contains(t, ae.Messages, "user is required")

	var careerMsg bool
	for _, m := range ae.Messages {
		if strings.HasPrefix(m, "careers[0] must be one of") {
			careerMsg = true
		}
	}
	assert.True(t, careerMsg, ae.Messages)
}

func TestStructAcceptsValidEntity(t *testing.T) {
	c := &entity.Course{
		Title: "Front End", Description: "d", Weeks: "8", TuitionFee: 100,
		MinimumSkill: "beginner", Bootcamp: "b", User: "u",
	}
	assert.NoError(t, Struct(c))

	c.MinimumSkill = "guru"
	assert.ErrorIs(t, Struct(c), apperror.ErrValidation)
}

func TestRoleRule(t *testing.T) {
	u := &entity.User{Name: "n", Email: "a@b.io", Role: "root"}
	err := Struct(u)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "role must be one of")
}

func TestDecodeStrict(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	require.NoError(t, DecodeStrict(strings.NewReader(`{"name":"x"}`), &dst))
	assert.Equal(t, "x", dst.Name)

	tests := []struct {
		body string
		want string
	}{
		{``, "request body is required"},
		{`{"name":`, "invalid json"},
		{`{"name":1}`, "name must be of type string"},
		{`{"name":"x","averageCost":5}`, `unknown field "averageCost" is not allowed`},
	}
	for _, tt := range tests {
		err := DecodeStrict(strings.NewReader(tt.body), &dst)
		require.Error(t, err, tt.body)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		assert.Equal(t, tt.want, err.Error())
	}
}

func TestDecodeStrictTypeMismatchKeepsRuleMessages(t *testing.T) {
	var dst struct {
		Title      string   `json:"title" validate:"required"`
		Weeks      string   `json:"weeks" validate:"required"`
		TuitionFee *float64 `json:"tuitionFee" validate:"required,gte=0"`
	}
	err := DecodeStrict(strings.NewReader(`{"title":"","weeks":"4","tuitionFee":"abc"}`), &dst)
	require.Error(t, err)

	var ae *apperror.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperror.KindValidation, ae.Kind)
	assert.ElementsMatch(t, []string{"tuitionFee must be of type float64", "title is required"}, ae.Messages)
}
