package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/polkiloo/interviewprep/internal/config"
	domainErrors "github.com/polkiloo/interviewprep/internal/domain/errors"
	"github.com/polkiloo/interviewprep/internal/domain/model"
	"github.com/polkiloo/interviewprep/internal/domain/repository"
	pkgAuth "github.com/polkiloo/interviewprep/internal/pkg/auth"
)

// AuthUseCase handles accounts, tokens and role checks.
type AuthUseCase struct {
	users  repository.UserRepository
	roles  repository.RoleRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy

	adminEmail        string
	bootstrapPassword string
	logger            *slog.Logger
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(
	users repository.UserRepository,
	roles repository.RoleRepository,
	hasher pkgAuth.PasswordHasher,
	strategy pkgAuth.Strategy,
	cfg *config.Config,
	logger *slog.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		users:             users,
		roles:             roles,
		hasher:            hasher,
		tokens:            strategy,
		adminEmail:        cfg.AdminEmail,
		bootstrapPassword: cfg.AdminBootstrapPassword,
		logger:            logger,
	}
}

// Register creates a customer account and returns an auth token.
func (u *AuthUseCase) Register(ctx context.Context, email, password string) (*model.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	if err := ValidateEmail("email", email); err != nil {
		return nil, "", err
	}
	// The admin address is reserved for BootstrapAdmin.
	if email == normalizeEmail(u.adminEmail) {
		u.logger.Warn("registration with reserved admin email refused")
		return nil, "", domainErrors.ErrAlreadyExists
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, pkgAuth.ErrPasswordTooLong) {
			return nil, "", &domainErrors.ValidationError{Field: "password", Reason: "must be at most 72 bytes"}
		}
		return nil, "", err
	}

	usr := &model.User{Email: email, PasswordHash: hash}
	if err := u.users.Create(ctx, usr); err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts user ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (string, error) {
	if token == "" {
		return "", pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// Identify resolves the account behind token.
func (u *AuthUseCase) Identify(ctx context.Context, token string) (*model.User, error) {
	id, err := u.ParseToken(token)
	if err != nil {
		return nil, domainErrors.ErrUnauthorized
	}
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUnauthorized
		}
		return nil, err
	}
	return usr, nil
}

// IsAdmin reports whether userID holds the admin role.
func (u *AuthUseCase) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return u.roles.HasRole(ctx, userID, model.RoleAdmin)
}

// BootstrapAdmin provisions the fixed admin account once. The returned
// password is generated when none is configured and is never stored in clear.
func (u *AuthUseCase) BootstrapAdmin(ctx context.Context) (*model.User, string, error) {
	password := u.bootstrapPassword
	if password == "" {
		generated, err := pkgAuth.RandomPassword(0)
		if err != nil {
			return nil, "", err
		}
		password = generated
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	usr := &model.User{Email: normalizeEmail(u.adminEmail), PasswordHash: hash}
	if err := u.users.CreateWithRole(ctx, usr, model.RoleAdmin); err != nil {
		return nil, "", err
	}

	u.logger.Info("admin account provisioned", slog.String("email", usr.Email))
	return usr, password, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
