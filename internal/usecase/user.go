package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	domainErrors "github.com/polkiloo/delivery/internal/domain/errors"
	"github.com/polkiloo/delivery/internal/domain/model"
	"github.com/polkiloo/delivery/internal/domain/repository"
	pkgAuth "github.com/polkiloo/delivery/internal/pkg/auth"
)

// NewUser carries the fields accepted on sign-up.
type NewUser struct {
	Name     string
	Email    string
	Password string
	Active   bool
	Admin    bool
}

// UserUseCase manages the user directory.
type UserUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	logger *slog.Logger
}

// NewUserUseCase constructs UserUseCase.
func NewUserUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, logger *slog.Logger) *UserUseCase {
	return &UserUseCase{users: users, hasher: hasher, logger: logger}
}

// Create registers a user on behalf of an authenticated caller.
// Only admins may create admin accounts.
func (u *UserUseCase) Create(ctx context.Context, requestedBy *model.User, in NewUser) (*model.User, error) {
	if requestedBy == nil {
		return nil, domainErrors.ErrUnauthorized
	}
	if in.Admin && !requestedBy.Admin {
		return nil, fmt.Errorf("%w: only admins can create admin users", domainErrors.ErrForbidden)
	}

	usr, err := u.create(ctx, in)
	if err != nil {
		return nil, err
	}

	u.logger.Info("user created",
		slog.Int64("user_id", usr.ID),
		slog.Int64("requested_by", requestedBy.ID),
		slog.Bool("admin", usr.Admin),
	)
	return usr, nil
}

// Bootstrap creates the initial admin unless a user with that email exists.
// The boolean reports whether a user was created.
func (u *UserUseCase) Bootstrap(ctx context.Context, in NewUser) (*model.User, bool, error) {
	existing, err := u.users.GetByEmail(ctx, normalizeEmail(in.Email))
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, domainErrors.ErrNotFound):
		return nil, false, err
	}

	in.Admin = true
	in.Active = true
	usr, err := u.create(ctx, in)
	if err != nil {
		if errors.Is(err, domainErrors.ErrEmailTaken) {
			existing, err := u.users.GetByEmail(ctx, normalizeEmail(in.Email))
			return existing, false, err
		}
		return nil, false, err
	}

	return usr, true, nil
}

func (u *UserUseCase) create(ctx context.Context, in NewUser) (*model.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || strings.TrimSpace(in.Password) == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domainErrors.ErrBadRequest)
	}

	if _, err := u.users.GetByEmail(ctx, email); err == nil {
		return nil, domainErrors.ErrEmailTaken
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	usr, err := u.users.Create(ctx, &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Active:       in.Active,
		Admin:        in.Admin,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, domainErrors.ErrEmailTaken
		}
		return nil, err
	}

	return usr, nil
}
