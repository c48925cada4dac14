package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mwesterdijk/spullendelen/internal/model"
)

type CategorieStore struct {
	db *sql.DB
}

func NewCategorieStore(db *sql.DB) *CategorieStore {
	return &CategorieStore{db: db}
}

func scanCategorieInfo(scanner interface{ Scan(...any) error }) (*model.CategorieInfo, error) {
	var c model.CategorieInfo
	err := scanner.Scan(&c.ID, &c.Naam, &c.Beschrijving, &c.Contact, &c.Email)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const categorieInfoCols = `id, naam, beschrijving, contact, email`

// Create inserts a categorie owned by userID and returns the new row id.
// The owner is always the authenticated caller, never client input.
func (s *CategorieStore) Create(ctx context.Context, naam, beschrijving string, userID int64) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO categorie (naam, beschrijving, user_id) VALUES (?, ?, ?)`,
		naam, beschrijving, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert categorie: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// ListInfo returns all categorieën from the read view, owner contact included.
func (s *CategorieStore) ListInfo(ctx context.Context) ([]model.CategorieInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+categorieInfoCols+` FROM view_categorie ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categorie: %w", err)
	}
	defer rows.Close()

	var list []model.CategorieInfo
	for rows.Next() {
		c, err := scanCategorieInfo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan categorie: %w", err)
		}
		list = append(list, *c)
	}
	return list, rows.Err()
}

// GetInfo returns one categorie from the read view, or nil when absent.
func (s *CategorieStore) GetInfo(ctx context.Context, id int64) (*model.CategorieInfo, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categorieInfoCols+` FROM view_categorie WHERE id = ?`, id)
	c, err := scanCategorieInfo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get categorie: %w", err)
	}
	return c, nil
}

// Update replaces naam and beschrijving after the ownership check and
// returns the updated view row.
func (s *CategorieStore) Update(ctx context.Context, id, userID int64, naam, beschrijving string) (*model.CategorieInfo, error) {
	var updated *model.CategorieInfo
	err := mutateOwned(ctx, s.db, userID,
		func(ctx context.Context, conn *sql.Conn) (int64, error) {
			var ownerID int64
			err := conn.QueryRowContext(ctx,
				`SELECT user_id FROM categorie WHERE id = ?`, id).Scan(&ownerID)
			return ownerID, err
		},
		func(ctx context.Context, conn *sql.Conn) error {
			_, err := conn.ExecContext(ctx,
				`UPDATE categorie SET naam = ?, beschrijving = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
				naam, beschrijving, id,
			)
			if err != nil {
				return fmt.Errorf("update categorie: %w", err)
			}
			row := conn.QueryRowContext(ctx,
				`SELECT `+categorieInfoCols+` FROM view_categorie WHERE id = ?`, id)
			updated, err = scanCategorieInfo(row)
			if err != nil {
				return fmt.Errorf("reread categorie: %w", err)
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the categorie after the ownership check. Spullen and
// delers under it go with it (cascading foreign keys).
func (s *CategorieStore) Delete(ctx context.Context, id, userID int64) error {
	return mutateOwned(ctx, s.db, userID,
		func(ctx context.Context, conn *sql.Conn) (int64, error) {
			var ownerID int64
			err := conn.QueryRowContext(ctx,
				`SELECT user_id FROM categorie WHERE id = ?`, id).Scan(&ownerID)
			return ownerID, err
		},
		func(ctx context.Context, conn *sql.Conn) error {
			if _, err := conn.ExecContext(ctx, `DELETE FROM categorie WHERE id = ?`, id); err != nil {
				return fmt.Errorf("delete categorie: %w", err)
			}
			return nil
		},
	)
}
