package postgres

import (
	"context"
)

type Row interface {
	Scan(dest ...any) error
}

type DB interface {
	QueryRowContext(ctx context.Context, query string, args ...any) Row

	// WithTx runs fn inside a transaction, committing when fn returns nil.
	WithTx(ctx context.Context, fn func(tx DB) error) error
}
