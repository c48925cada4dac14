package handler_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mwesterdijk/spullendelen/internal/auth"
	"github.com/mwesterdijk/spullendelen/internal/handler"
	"github.com/mwesterdijk/spullendelen/internal/store"
)

var testSecret = []byte("test-secret-at-least-32-bytes-long")

func registerBody(email string) map[string]any {
	return map[string]any{
		"voornaam":   "Jan",
		"achternaam": "Jansen",
		"email":      email,
		"wachtwoord": "geheim-wachtwoord",
	}
}

func decodeToken(t *testing.T, rec *httptest.ResponseRecorder) (token, email string) {
	t.Helper()
	var resp struct {
		Result struct {
			Token string `json:"token"`
			Email string `json:"email"`
		} `json:"result"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.Result.Token, resp.Result.Email
}

func TestRegisterIssuesUsableToken(t *testing.T) {
	db := newTestDB(t)
	us := store.NewUserStore(db)
	h := handler.NewAuthHandler(us, testSecret, time.Hour, slog.Default())

	req := authedRequest(t, "POST", "/api/register", registerBody("Jan@Example.com"), 0)
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	token, email := decodeToken(t, rec)
	if email != "jan@example.com" {
		t.Errorf("email = %q, want lowercased", email)
	}

	uid, err := auth.UserIDFromToken(token, testSecret)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	u, err := us.GetByEmail(t.Context(), "jan@example.com")
	if err != nil || u == nil {
		t.Fatalf("user not stored: %v", err)
	}
	if uid != u.ID {
		t.Errorf("token uid = %d, want %d", uid, u.ID)
	}
	if u.PasswordHash == "geheim-wachtwoord" {
		t.Error("password stored in plaintext")
	}
}

func TestRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	h := handler.NewAuthHandler(store.NewUserStore(db), testSecret, time.Hour, slog.Default())

	for name, mutate := range map[string]func(map[string]any){
		"short password": func(b map[string]any) { b["wachtwoord"] = "kort" },
		"bad email":      func(b map[string]any) { b["email"] = "not-an-address" },
		"empty voornaam": func(b map[string]any) { b["voornaam"] = " " },
	} {
		t.Run(name, func(t *testing.T) {
			body := registerBody("jan@example.com")
			mutate(body)
			rec := httptest.NewRecorder()
			h.Register(rec, authedRequest(t, "POST", "/api/register", body, 0))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if e := decodeErr(t, rec); e.Code != "VALIDATION_FAILED" {
				t.Errorf("code = %q", e.Code)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	h := handler.NewAuthHandler(store.NewUserStore(db), testSecret, time.Hour, slog.Default())

	rec := httptest.NewRecorder()
	h.Register(rec, authedRequest(t, "POST", "/api/register", registerBody("jan@example.com"), 0))
	if rec.Code != http.StatusOK {
		t.Fatalf("first register status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Register(rec, authedRequest(t, "POST", "/api/register", registerBody("jan@example.com"), 0))
	if rec.Code != http.StatusConflict {
		t.Fatalf("second register status = %d, want 409", rec.Code)
	}
	if e := decodeErr(t, rec); e.Code != "EMAIL_TAKEN" {
		t.Errorf("code = %q, want EMAIL_TAKEN", e.Code)
	}
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	h := handler.NewAuthHandler(store.NewUserStore(db), testSecret, time.Hour, slog.Default())

	rec := httptest.NewRecorder()
	h.Register(rec, authedRequest(t, "POST", "/api/register", registerBody("jan@example.com"), 0))
	if rec.Code != http.StatusOK {
		t.Fatalf("register status = %d", rec.Code)
	}

	cases := []struct {
		name       string
		email      string
		wachtwoord string
		want       int
	}{
		{"correct", "jan@example.com", "geheim-wachtwoord", http.StatusOK},
		{"wrong password", "jan@example.com", "fout-wachtwoord", http.StatusUnauthorized},
		{"unknown email", "niemand@example.com", "geheim-wachtwoord", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Login(rec, authedRequest(t, "POST", "/api/login",
				map[string]any{"email": tc.email, "wachtwoord": tc.wachtwoord}, 0))
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tc.want, rec.Body.String())
			}
			if tc.want != http.StatusOK {
				if e := decodeErr(t, rec); e.Code != "UNAUTHORIZED" {
					t.Errorf("code = %q, want UNAUTHORIZED", e.Code)
				}
				return
			}
			token, _ := decodeToken(t, rec)
			if _, err := auth.UserIDFromToken(token, testSecret); err != nil {
				t.Errorf("verify token: %v", err)
			}
		})
	}
}

func TestLoginRejectsMissingFields(t *testing.T) {
	db := newTestDB(t)
	h := handler.NewAuthHandler(store.NewUserStore(db), testSecret, time.Hour, slog.Default())

	rec := httptest.NewRecorder()
	h.Login(rec, authedRequest(t, "POST", "/api/login", map[string]any{"email": "jan@example.com"}, 0))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	e := decodeErr(t, rec)
	if e.Code != "VALIDATION_FAILED" || e.Datetime == "" {
		t.Errorf("envelope = %+v, want code and datetime set", e)
	}
}
