package application

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	repo "github.com/oksasatya/bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
	"github.com/oksasatya/bootcamp-directory/pkg/mailer"
	"github.com/oksasatya/bootcamp-directory/pkg/mailer/templates"
	"github.com/oksasatya/bootcamp-directory/pkg/validation"
)

// ResetTokenTTL is how long a password reset token stays valid.
const ResetTokenTTL = 10 * time.Minute

type AuthService struct {
	Users    repo.UserRepository
	JWT      *helpers.JWTManager
	Redis    *redis.Client
	Mailer   mailer.Mailer
	Logger   *logrus.Logger
	AppName  string
	ResetURL string
	Now      func() time.Time
}

// Token is an issued bearer credential.
type Token struct {
	Token     string
	ExpiresAt time.Time
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,pwd"`
	Role     string `json:"role" validate:"omitempty,oneof=user publisher"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type DetailsPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type PasswordChange struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,pwd"`
}

type ForgotInput struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetInput struct {
	Password string `json:"password" validate:"required,pwd"`
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AuthService) issue(u *entity.User) (*Token, error) {
	tok, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		return nil, apperror.Internal("sign token", err)
	}
	return &Token{Token: tok, ExpiresAt: exp}, nil
}

// Register creates a user or publisher account and signs it in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Token, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	u, err := createUser(ctx, s.Users, UserInput(in))
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*Token, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, apperror.Validation("Please provide an email and a password")
	}
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(in.Email))
	if apperror.Is(err, apperror.KindNotFound) {
		return nil, apperror.Unauthenticated("Invalid login")
	}
	if err != nil {
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, in.Password) {
		return nil, apperror.Unauthenticated("Invalid login")
	}
	return s.issue(u)
}

func (s *AuthService) Me(ctx context.Context, id string) (*entity.User, error) {
	return s.Users.GetByID(ctx, id)
}

// Logout denylists the token id until the token expires. Without Redis this
// is a no-op and the token stays valid until its expiry.
func (s *AuthService) Logout(ctx context.Context, claims *helpers.Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	if err := helpers.RevokeToken(ctx, s.Redis, claims.ID, claims.ExpiresAt.Time); err != nil {
		return apperror.Upstream("revoke token", err)
	}
	return nil
}

// ForgotPassword stores a hashed reset token and emails the raw one. When the
// email cannot be sent the token is withdrawn again.
func (s *AuthService) ForgotPassword(ctx context.Context, in ForgotInput) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(in.Email))
	if apperror.Is(err, apperror.KindNotFound) {
		return apperror.NotFound("There is no user with that email")
	}
	if err != nil {
		return err
	}

	raw, hashed, err := helpers.NewResetToken()
	if err != nil {
		return apperror.Internal("generate reset token", err)
	}
	exp := s.now().Add(ResetTokenTTL)
	u.ResetPasswordToken = hashed
	u.ResetPasswordExpire = &exp
	if err := s.Users.Update(ctx, u); err != nil {
		return err
	}

	data := templates.NewEmailData(s.AppName, u.Name, u.Email,
		templates.WithResetURL(strings.TrimRight(s.ResetURL, "/")+"/"+raw),
		templates.WithExpiresAt(exp),
	)
	subject, text, html, err := templates.Render(templates.ResetPassword, data)
	if err == nil {
		err = s.Mailer.Send(ctx, mailer.Message{
			To: u.Email, Subject: subject, Text: text, HTML: html,
			Template: templates.ResetPassword, Data: templates.ToMap(data),
		})
	}
	if err != nil {
		u.ClearReset()
		if uerr := s.Users.Update(ctx, u); uerr != nil && s.Logger != nil {
			helpers.LogError(s.Logger, "clear reset token failed", uerr, logrus.Fields{"user_id": u.ID})
		}
		return apperror.Upstream("Email could not be sent", err)
	}
	return nil
}

// ResetPassword sets a new password for the holder of an unexpired token.
func (s *AuthService) ResetPassword(ctx context.Context, raw string, in ResetInput) (*Token, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	u, err := s.Users.GetByResetToken(ctx, helpers.HashResetToken(raw), s.now())
	if apperror.Is(err, apperror.KindNotFound) {
		return nil, apperror.Validation("Invalid token")
	}
	if err != nil {
		return nil, err
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Internal("hash password", err)
	}
	u.Password = hash
	u.ClearReset()
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return s.issue(u)
}

func (s *AuthService) UpdateDetails(ctx context.Context, u *entity.User, p DetailsPatch) (*entity.User, error) {
	next := *u
	setIf(&next.Name, p.Name)
	if p.Email != nil {
		next.Email = normalizeEmail(*p.Email)
	}
	if err := validation.Struct(&next); err != nil {
		return nil, err
	}
	if err := s.Users.Update(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, u *entity.User, in PasswordChange) (*Token, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, in.CurrentPassword) {
		return nil, apperror.Unauthenticated("Password is incorrect")
	}
	hash, err := helpers.HashPassword(in.NewPassword)
	if err != nil {
		return nil, apperror.Internal("hash password", err)
	}
	next := *u
	next.Password = hash
	if err := s.Users.Update(ctx, &next); err != nil {
		return nil, err
	}
	return s.issue(&next)
}
