package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mwesterdijk/spullendelen/internal/model"
)

type SpullenStore struct {
	db *sql.DB
}

func NewSpullenStore(db *sql.DB) *SpullenStore {
	return &SpullenStore{db: db}
}

// SpullenFields is the client-settable part of a spullen row.
type SpullenFields struct {
	Naam         string
	Beschrijving string
	Merk         string
	Soort        string
	Bouwjaar     int
}

func scanSpullenInfo(scanner interface{ Scan(...any) error }) (*model.SpullenInfo, error) {
	var sp model.SpullenInfo
	err := scanner.Scan(&sp.ID, &sp.Naam, &sp.Beschrijving, &sp.Merk, &sp.Soort, &sp.Bouwjaar, &sp.Contact, &sp.Email)
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

const spullenInfoCols = `id, naam, beschrijving, merk, soort, bouwjaar, contact, email`

// Create inserts a spullen under the given categorie, owned by userID, and
// returns the new view row. A nonexistent categorie yields ErrNotFound.
func (s *SpullenStore) Create(ctx context.Context, categorieID, userID int64, f SpullenFields) (*model.SpullenInfo, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM categorie WHERE id = ?)`, categorieID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check categorie: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO spullen (naam, beschrijving, merk, soort, bouwjaar, user_id, categorie_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.Naam, f.Beschrijving, f.Merk, f.Soort, f.Bouwjaar, userID, categorieID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert spullen: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetInfo(ctx, categorieID, id)
}

// ListInfo returns all spullen in a categorie from the read view.
func (s *SpullenStore) ListInfo(ctx context.Context, categorieID int64) ([]model.SpullenInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+spullenInfoCols+` FROM view_spullen WHERE categorie_id = ? ORDER BY id ASC`,
		categorieID,
	)
	if err != nil {
		return nil, fmt.Errorf("list spullen: %w", err)
	}
	defer rows.Close()

	var list []model.SpullenInfo
	for rows.Next() {
		sp, err := scanSpullenInfo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan spullen: %w", err)
		}
		list = append(list, *sp)
	}
	return list, rows.Err()
}

// GetInfo returns one spullen from the read view, scoped to its categorie,
// or nil when absent.
func (s *SpullenStore) GetInfo(ctx context.Context, categorieID, id int64) (*model.SpullenInfo, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+spullenInfoCols+` FROM view_spullen WHERE categorie_id = ? AND id = ?`,
		categorieID, id,
	)
	sp, err := scanSpullenInfo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get spullen: %w", err)
	}
	return sp, nil
}

// Update replaces the client-settable fields after the ownership check and
// returns the updated view row.
func (s *SpullenStore) Update(ctx context.Context, categorieID, id, userID int64, f SpullenFields) (*model.SpullenInfo, error) {
	var updated *model.SpullenInfo
	err := mutateOwned(ctx, s.db, userID,
		func(ctx context.Context, conn *sql.Conn) (int64, error) {
			var ownerID int64
			err := conn.QueryRowContext(ctx,
				`SELECT user_id FROM spullen WHERE categorie_id = ? AND id = ?`,
				categorieID, id).Scan(&ownerID)
			return ownerID, err
		},
		func(ctx context.Context, conn *sql.Conn) error {
			_, err := conn.ExecContext(ctx,
				`UPDATE spullen SET naam = ?, beschrijving = ?, merk = ?, soort = ?, bouwjaar = ?,
				 updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
				f.Naam, f.Beschrijving, f.Merk, f.Soort, f.Bouwjaar, id,
			)
			if err != nil {
				return fmt.Errorf("update spullen: %w", err)
			}
			row := conn.QueryRowContext(ctx,
				`SELECT `+spullenInfoCols+` FROM view_spullen WHERE categorie_id = ? AND id = ?`,
				categorieID, id,
			)
			updated, err = scanSpullenInfo(row)
			if err != nil {
				return fmt.Errorf("reread spullen: %w", err)
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the spullen after the ownership check.
func (s *SpullenStore) Delete(ctx context.Context, categorieID, id, userID int64) error {
	return mutateOwned(ctx, s.db, userID,
		func(ctx context.Context, conn *sql.Conn) (int64, error) {
			var ownerID int64
			err := conn.QueryRowContext(ctx,
				`SELECT user_id FROM spullen WHERE categorie_id = ? AND id = ?`,
				categorieID, id).Scan(&ownerID)
			return ownerID, err
		},
		func(ctx context.Context, conn *sql.Conn) error {
			if _, err := conn.ExecContext(ctx, `DELETE FROM spullen WHERE id = ?`, id); err != nil {
				return fmt.Errorf("delete spullen: %w", err)
			}
			return nil
		},
	)
}
