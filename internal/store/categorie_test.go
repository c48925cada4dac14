package store

import (
	"context"
	"errors"
	"testing"
)

func TestCategorieCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	u := createTestUser(t, db, "Jan", "Jansen", "jan@example.com")
	cs := NewCategorieStore(db)
	ctx := context.Background()

	id, err := cs.Create(ctx, "Studentenhuis", "Gedeeld huis aan de gracht", u.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero id")
	}

	c, err := cs.GetInfo(ctx, id)
	if err != nil {
		t.Fatalf("get info: %v", err)
	}
	if c == nil {
		t.Fatal("expected categorie, got nil")
	}
	if c.Naam != "Studentenhuis" {
		t.Errorf("naam = %q, want %q", c.Naam, "Studentenhuis")
	}
	if c.Contact != "Jan Jansen" {
		t.Errorf("contact = %q, want %q", c.Contact, "Jan Jansen")
	}
	if c.Email != "jan@example.com" {
		t.Errorf("email = %q, want %q", c.Email, "jan@example.com")
	}
}

func TestCategorieGetInfoNotFound(t *testing.T) {
	db := newTestDB(t)
	cs := NewCategorieStore(db)

	c, err := cs.GetInfo(context.Background(), 999)
	if err != nil {
		t.Fatalf("get info: %v", err)
	}
	if c != nil {
		t.Error("expected nil for nonexistent categorie")
	}
}

func TestCategorieList(t *testing.T) {
	db := newTestDB(t)
	u := createTestUser(t, db, "Jan", "Jansen", "jan@example.com")
	cs := NewCategorieStore(db)
	ctx := context.Background()

	for range 3 {
		if _, err := cs.Create(ctx, "Huis", "Beschrijving", u.ID); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	list, err := cs.ListInfo(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Errorf("len = %d, want 3", len(list))
	}
}

func TestCategorieUpdateByOwner(t *testing.T) {
	db := newTestDB(t)
	u := createTestUser(t, db, "Jan", "Jansen", "jan@example.com")
	cs := NewCategorieStore(db)
	ctx := context.Background()

	id, _ := cs.Create(ctx, "Oud", "Oude beschrijving", u.ID)

	updated, err := cs.Update(ctx, id, u.ID, "Nieuw", "Nieuwe beschrijving")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Naam != "Nieuw" {
		t.Errorf("naam = %q, want %q", updated.Naam, "Nieuw")
	}
	if updated.Contact != "Jan Jansen" {
		t.Errorf("contact = %q, want enriched view row", updated.Contact)
	}
}

func TestCategorieUpdateNotFound(t *testing.T) {
	db := newTestDB(t)
	u := createTestUser(t, db, "Jan", "Jansen", "jan@example.com")
	cs := NewCategorieStore(db)

	_, err := cs.Update(context.Background(), 999, u.ID, "Naam", "Beschrijving")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCategorieUpdateByNonOwnerDoesNotMutate(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "Jan", "Jansen", "jan@example.com")
	other := createTestUser(t, db, "Piet", "Pietersen", "piet@example.com")
	cs := NewCategorieStore(db)
	ctx := context.Background()

	id, _ := cs.Create(ctx, "Origineel", "Beschrijving", owner.ID)

	_, err := cs.Update(ctx, id, other.ID, "Gekaapt", "Gekaapt")
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}

	c, err := cs.GetInfo(ctx, id)
	if err != nil {
		t.Fatalf("get after conflict: %v", err)
	}
	if c.Naam != "Origineel" {
		t.Errorf("naam = %q, row mutated after ownership conflict", c.Naam)
	}
}

func TestCategorieDeleteByOwner(t *testing.T) {
	db := newTestDB(t)
	u := createTestUser(t, db, "Jan", "Jansen", "jan@example.com")
	cs := NewCategorieStore(db)
	ctx := context.Background()

	id, _ := cs.Create(ctx, "Weg", "Te verwijderen", u.ID)

	if err := cs.Delete(ctx, id, u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	c, err := cs.GetInfo(ctx, id)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if c != nil {
		t.Error("expected nil after delete")
	}
}

func TestCategorieDeleteByNonOwner(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "Jan", "Jansen", "jan@example.com")
	other := createTestUser(t, db, "Piet", "Pietersen", "piet@example.com")
	cs := NewCategorieStore(db)
	ctx := context.Background()

	id, _ := cs.Create(ctx, "Blijft", "Beschrijving", owner.ID)

	if err := cs.Delete(ctx, id, other.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}

	c, _ := cs.GetInfo(ctx, id)
	if c == nil {
		t.Error("row deleted despite ownership conflict")
	}
}
