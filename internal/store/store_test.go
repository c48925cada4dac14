package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/mwesterdijk/spullendelen/internal/database"
	"github.com/mwesterdijk/spullendelen/internal/model"
)

// newTestDB opens a private in-memory database with migrations applied.
// maxConns must stay at 1: every new connection to ":memory:" would get its
// own empty database.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:", 1)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *sql.DB, voornaam, achternaam, email string) *model.User {
	t.Helper()
	u, err := NewUserStore(db).Create(context.Background(), voornaam, achternaam, email, "x")
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func createTestCategorie(t *testing.T, db *sql.DB, userID int64) int64 {
	t.Helper()
	id, err := NewCategorieStore(db).Create(context.Background(), "Studentenhuis", "Gedeeld huis", userID)
	if err != nil {
		t.Fatalf("create categorie: %v", err)
	}
	return id
}

func createTestSpullen(t *testing.T, db *sql.DB, categorieID, userID int64) int64 {
	t.Helper()
	sp, err := NewSpullenStore(db).Create(context.Background(), categorieID, userID, SpullenFields{
		Naam:         "Boormachine",
		Beschrijving: "Klopboor",
		Merk:         "Bosch",
		Soort:        "gereedschap",
		Bouwjaar:     2019,
	})
	if err != nil {
		t.Fatalf("create spullen: %v", err)
	}
	return sp.ID
}
