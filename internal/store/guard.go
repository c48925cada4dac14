package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mwesterdijk/spullendelen/internal/database"
)

// mutateOwned runs the fetch-check-mutate sequence shared by every
// owner-gated write. fetchOwner reads the target row's owner id from the
// base table (never a view); sql.ErrNoRows becomes ErrNotFound, an owner
// mismatch becomes ErrNotOwner, and only then does mutate run. The whole
// sequence stays on one pooled connection.
//
// The check and the mutation are not wrapped in a transaction: two
// concurrent calls on the same row can both pass the check and the last
// write wins. Accepted for this workload; callers must not rely on the
// window being closed.
func mutateOwned(
	ctx context.Context,
	db *sql.DB,
	userID int64,
	fetchOwner func(ctx context.Context, conn *sql.Conn) (int64, error),
	mutate func(ctx context.Context, conn *sql.Conn) error,
) error {
	return database.WithConn(ctx, db, func(ctx context.Context, conn *sql.Conn) error {
		ownerID, err := fetchOwner(ctx, conn)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("owner lookup: %w", err)
		}
		if ownerID != userID {
			return ErrNotOwner
		}
		return mutate(ctx, conn)
	})
}
