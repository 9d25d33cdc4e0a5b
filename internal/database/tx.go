package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the statement surface shared by pgx transactions and pools.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Tx interface {
	Querier
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Beginner interface {
	BeginTx(ctx context.Context) (Tx, error)
}

// TxStarter is anything that opens pgx transactions: *pgxpool.Pool, *pgx.Conn or
// a pgxmock pool in tests.
type TxStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PoolBeginner adapts a TxStarter to Beginner.
type PoolBeginner struct {
	pool TxStarter
}

func NewPoolBeginner(pool TxStarter) *PoolBeginner {
	return &PoolBeginner{pool: pool}
}

func (b *PoolBeginner) BeginTx(ctx context.Context) (Tx, error) {
	return b.pool.Begin(ctx)
}

// WithTx runs fn inside one transaction. An error from fn or a panic rolls the
// transaction back; the panic is re-raised after the rollback.
func WithTx(ctx context.Context, db Beginner, fn func(q Querier) error) (err error) {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// rollback must still reach the server when the request context is gone
	rollbackCtx := context.WithoutCancel(ctx)

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(rollbackCtx)
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(rollbackCtx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = errors.Join(err, fmt.Errorf("failed to rollback transaction: %w", rbErr))
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
