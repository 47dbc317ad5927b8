package application

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	repo "github.com/oksasatya/bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
	"github.com/oksasatya/bootcamp-directory/pkg/validation"
)

// UserService is the admin view over accounts.
type UserService struct {
	Users repo.UserRepository
}

// UserInput creates an account. Role defaults to user.
type UserInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,pwd"`
	Role     string `json:"role" validate:"omitempty,role"`
}

type UserPatch struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	Password *string `json:"password" validate:"omitempty,pwd"`
}

func (s *UserService) Create(ctx context.Context, in UserInput) (*entity.User, error) {
	return createUser(ctx, s.Users, in)
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if apperror.Is(err, apperror.KindNotFound) {
		return nil, apperror.NotFound("User id %s not found", id)
	}
	return u, err
}

func (s *UserService) Update(ctx context.Context, id string, p UserPatch) (*entity.User, error) {
	if err := validation.Struct(p); err != nil {
		return nil, err
	}
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next := *u
	setIf(&next.Name, p.Name)
	if p.Email != nil {
		next.Email = normalizeEmail(*p.Email)
	}
	if p.Role != nil {
		next.Role = entity.Role(*p.Role)
	}
	if err := validation.Struct(&next); err != nil {
		return nil, err
	}
	if p.Password != nil {
		hash, err := helpers.HashPassword(*p.Password)
		if err != nil {
			return nil, apperror.Internal("hash password", err)
		}
		next.Password = hash
	}
	if err := s.Users.Update(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.Users.Delete(ctx, id)
}

func createUser(ctx context.Context, users repo.UserRepository, in UserInput) (*entity.User, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	role := entity.Role(in.Role)
	if role == "" {
		role = entity.RoleUser
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Internal("hash password", err)
	}
	u := &entity.User{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Email:    normalizeEmail(in.Email),
		Role:     role,
		Password: hash,
	}
	if err := validation.Struct(u); err != nil {
		return nil, err
	}
	if err := users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
