package services

import (
	"context"
	"fmt"
	"time"

	"github.com/bikebay/server/internal/apperr"
	"github.com/bikebay/server/internal/helpers"
	"github.com/bikebay/server/internal/mailer"
	"github.com/bikebay/server/internal/models"
	"github.com/google/uuid"
)

type UserService struct {
	userRepo    models.UserRepo
	mailer      mailer.Mailer
	tokens      *helpers.TokenSigner
	frontendURL string
}

func NewUserService(userRepo models.UserRepo, m mailer.Mailer, tokens *helpers.TokenSigner, frontendURL string) *UserService {
	return &UserService{
		userRepo:    userRepo,
		mailer:      m,
		tokens:      tokens,
		frontendURL: frontendURL,
	}
}

// Register creates a user and returns it with a fresh access token.
// Role may be "user" or "hoster"; the admin role is assigned out of band.
func (us *UserService) Register(ctx context.Context, name, email, password, role string) (*models.User, string, error) {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, "", apperr.New(apperr.CodeInvalid, "invalid email format")
	}
	if name == "" {
		return nil, "", apperr.New(apperr.CodeInvalid, "name is required")
	}
	if !helpers.IsPasswordStrong(password) {
		return nil, "", apperr.New(apperr.CodeInvalid, "password must be at least 8 characters with upper, lower and numeric characters")
	}

	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleHoster {
		return nil, "", apperr.Newf(apperr.CodeInvalid, "role must be %q or %q", models.RoleUser, models.RoleHoster)
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.CodeInternal, "failed to hash password", err)
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Password:  hash,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := us.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := us.tokens.SignAccessToken(created.ID, created.Role, created.Email)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.CodeInternal, "failed to issue token", err)
	}

	return created, token, nil
}

func (us *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, "", apperr.New(apperr.CodeInvalid, "invalid email format")
	}

	user, err := us.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if apperr.CodeOf(err) == apperr.CodeNotFound {
			return nil, "", apperr.New(apperr.CodeInvalid, "invalid credentials")
		}
		return nil, "", err
	}

	if !helpers.ComparePassword(user.Password, password) {
		return nil, "", apperr.New(apperr.CodeInvalid, "invalid credentials")
	}

	token, err := us.tokens.SignAccessToken(user.ID, user.Role, user.Email)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.CodeInternal, "failed to issue token", err)
	}

	return user, token, nil
}

func (us *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if id == uuid.Nil {
		return nil, apperr.New(apperr.CodeInvalid, "invalid user ID")
	}
	return us.userRepo.GetUserByID(ctx, id)
}

// ForgotPassword emails a reset link carrying a one-hour token.
func (us *UserService) ForgotPassword(ctx context.Context, email string) error {
	user, err := us.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	resetToken, err := us.tokens.SignResetToken(user.ID)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to issue reset token", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", us.frontendURL, resetToken)
	if err := us.mailer.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to send reset email", err)
	}

	return nil
}

func (us *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := us.tokens.ValidateToken(token)
	if err != nil {
		return apperr.New(apperr.CodeInvalid, "invalid or expired token")
	}
	if claims.Scope != "password_reset" {
		return apperr.New(apperr.CodeInvalid, "invalid or expired token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return apperr.New(apperr.CodeInvalid, "invalid or expired token")
	}

	if !helpers.IsPasswordStrong(newPassword) {
		return apperr.New(apperr.CodeInvalid, "password must be at least 8 characters with upper, lower and numeric characters")
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to hash password", err)
	}

	return us.userRepo.UpdatePassword(ctx, userID, hash)
}
