package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repos bundles the transaction-scoped repositories handed to a unit of work.
// Every repo in the bundle runs on the same transaction, so a multi-step
// mutation (resolve locations + write detail + collect orphans) either all
// commits or all rolls back — no orphaned locations are ever observable.
type Repos struct {
	Trips       TripRepo
	TripDetails TripDetailRepo
	Locations   LocationRepo
}

// UnitOfWork runs a function against a single database transaction.
// Services depend on this interface so unit tests can substitute a fake
// that passes mock repos straight through.
type UnitOfWork interface {
	// Do begins a transaction, runs fn with tx-scoped repos, and commits.
	// Any error from fn rolls the transaction back and is returned as-is,
	// so sentinel checks (errors.Is) still work at the call site.
	Do(ctx context.Context, fn func(r Repos) error) error
}

// pgUnitOfWork is the pgxpool-backed UnitOfWork.
type pgUnitOfWork struct {
	pool *pgxpool.Pool
}

// NewUnitOfWork constructs a UnitOfWork over the given connection pool.
func NewUnitOfWork(pool *pgxpool.Pool) UnitOfWork {
	return &pgUnitOfWork{pool: pool}
}

func (u *pgUnitOfWork) Do(ctx context.Context, fn func(r Repos) error) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.UnitOfWork: begin: %w", err)
	}
	// Rollback after a successful commit is a no-op error we ignore.
	defer func() { _ = tx.Rollback(ctx) }()

	r := Repos{
		Trips:       NewTripRepo(tx),
		TripDetails: NewTripDetailRepo(tx),
		Locations:   NewLocationRepo(tx),
	}
	if err := fn(r); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.UnitOfWork: commit: %w", err)
	}
	return nil
}
