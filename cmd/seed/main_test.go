package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/infrastructure/memory"
	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
)

func TestEnsureUserIsIdempotent(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	su := seedUser{"Admin", "admin@gmail.com", "123456", entity.RoleAdmin}

	id, created, err := ensureUser(ctx, users, su)
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := ensureUser(ctx, users, su)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, id, again)

	u, err := users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, u.Role)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "123456"))
}
