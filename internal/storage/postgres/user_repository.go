package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/polkiloo/delivery/internal/domain/errors"
	"github.com/polkiloo/delivery/internal/domain/model"
)

const uniqueViolation = "23505"

type userRepository struct {
	storage *Storage
}

const userColumns = `id, name, email, password_hash, active, admin, created_at`

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const query = `INSERT INTO users (name, email, password_hash, active, admin)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	u := *user
	err := r.storage.conn(ctx).QueryRow(ctx, query, u.Name, u.Email, u.PasswordHash, u.Active, u.Admin).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return r.scanOne(ctx, query, email)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return r.scanOne(ctx, query, id)
}

func (r *userRepository) scanOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	err := r.storage.conn(ctx).QueryRow(ctx, query, arg).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Active, &u.Admin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
