package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNoConnection indicates the pool could not hand out a connection before
// the request deadline. This is an infrastructure fault, never a client error.
var ErrNoConnection = errors.New("no database connection available")

// WithConn checks a single connection out of the pool, runs fn on it, and
// returns the connection on every exit path. Multi-statement sequences that
// must observe their own writes (the ownership guard) run through here so
// they stay on one connection.
func WithConn(ctx context.Context, db *sql.DB, fn func(ctx context.Context, conn *sql.Conn) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoConnection, err)
	}
	defer conn.Close()

	return fn(ctx, conn)
}
