package repository

import "context"

// Transactor runs fn inside a single transaction. Repository calls made with the
// context passed to fn join that transaction; a non-nil error rolls it back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
