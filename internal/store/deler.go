package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mwesterdijk/spullendelen/internal/model"
)

type DelerStore struct {
	db *sql.DB
}

func NewDelerStore(db *sql.DB) *DelerStore {
	return &DelerStore{db: db}
}

// Register signs userID up as deler for a spullen within a categorie and
// returns the new row id. A nonexistent spullen yields ErrNotFound; a
// second registration for the same triple yields ErrDuplicate.
func (s *DelerStore) Register(ctx context.Context, userID, categorieID, spullenID int64) (int64, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM spullen WHERE categorie_id = ? AND id = ?)`,
		categorieID, spullenID).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("check spullen: %w", err)
	}
	if !exists {
		return 0, ErrNotFound
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO delers (user_id, categorie_id, spullen_id) VALUES (?, ?, ?)`,
		userID, categorieID, spullenID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("insert deler: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// ListInfo returns the contact details of everyone registered for a spullen.
func (s *DelerStore) ListInfo(ctx context.Context, categorieID, spullenID int64) ([]model.DelerInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT voornaam, achternaam, email FROM view_delers
		 WHERE categorie_id = ? AND spullen_id = ? ORDER BY achternaam ASC, voornaam ASC`,
		categorieID, spullenID,
	)
	if err != nil {
		return nil, fmt.Errorf("list delers: %w", err)
	}
	defer rows.Close()

	var list []model.DelerInfo
	for rows.Next() {
		var d model.DelerInfo
		if err := rows.Scan(&d.Voornaam, &d.Achternaam, &d.Email); err != nil {
			return nil, fmt.Errorf("scan deler: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Unregister removes userID's own registration. Registrations are
// self-service: the row is addressed by the caller's id, so another user's
// registration is simply not found. The guard still runs so the sequence
// matches every other owner-gated delete.
func (s *DelerStore) Unregister(ctx context.Context, userID, categorieID, spullenID int64) error {
	return mutateOwned(ctx, s.db, userID,
		func(ctx context.Context, conn *sql.Conn) (int64, error) {
			var ownerID int64
			err := conn.QueryRowContext(ctx,
				`SELECT user_id FROM delers WHERE user_id = ? AND categorie_id = ? AND spullen_id = ?`,
				userID, categorieID, spullenID).Scan(&ownerID)
			return ownerID, err
		},
		func(ctx context.Context, conn *sql.Conn) error {
			_, err := conn.ExecContext(ctx,
				`DELETE FROM delers WHERE user_id = ? AND categorie_id = ? AND spullen_id = ?`,
				userID, categorieID, spullenID,
			)
			if err != nil {
				return fmt.Errorf("delete deler: %w", err)
			}
			return nil
		},
	)
}

// CountFor reports how many registrations exist for a spullen.
func (s *DelerStore) CountFor(ctx context.Context, categorieID, spullenID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM delers WHERE categorie_id = ? AND spullen_id = ?`,
		categorieID, spullenID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count delers: %w", err)
	}
	return n, nil
}
