package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mwesterdijk/spullendelen/internal/auth"
	"github.com/mwesterdijk/spullendelen/internal/store"
)

const codeUnauthorized = "UNAUTHORIZED"

type AuthHandler struct {
	users     *store.UserStore
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *slog.Logger
}

func NewAuthHandler(us *store.UserStore, jwtSecret []byte, tokenTTL time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{users: us, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

type registerRequest struct {
	Voornaam   string `json:"voornaam"`
	Achternaam string `json:"achternaam"`
	Email      string `json:"email"`
	Wachtwoord string `json:"wachtwoord"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "request body must be an object containing voornaam, achternaam, email and wachtwoord")
		return
	}

	req.Voornaam = strings.TrimSpace(req.Voornaam)
	req.Achternaam = strings.TrimSpace(req.Achternaam)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	switch {
	case req.Voornaam == "":
		writeValidationError(w, "voornaam must be a non-empty string")
		return
	case req.Achternaam == "":
		writeValidationError(w, "achternaam must be a non-empty string")
		return
	case !strings.Contains(req.Email, "@"):
		writeValidationError(w, "email must be a valid email address")
		return
	case len(req.Wachtwoord) < 8:
		writeValidationError(w, "wachtwoord must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Wachtwoord), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("hash password", "error", err)
		writeError(w, h.logger, err)
		return
	}

	user, err := h.users.Create(r.Context(), req.Voornaam, req.Achternaam, req.Email, string(hash))
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeAPIError(w, http.StatusConflict, codeEmailTaken, "email address is already registered")
			return
		}
		writeError(w, h.logger, err)
		return
	}

	token, err := auth.GenerateToken(user.ID, h.jwtSecret, h.tokenTTL)
	if err != nil {
		h.logger.Error("sign token", "error", err)
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("user registered", "user_id", user.ID)
	writeResult(w, map[string]any{"token": token, "email": user.Email})
}

type loginRequest struct {
	Email      string `json:"email"`
	Wachtwoord string `json:"wachtwoord"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "request body must be an object containing email and wachtwoord")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Wachtwoord == "" {
		writeValidationError(w, "email and wachtwoord are required")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	// Same response for unknown email and wrong password, to prevent
	// account enumeration.
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Wachtwoord)) != nil {
		writeAPIError(w, http.StatusUnauthorized, codeUnauthorized, "invalid email or wachtwoord")
		return
	}

	token, err := auth.GenerateToken(user.ID, h.jwtSecret, h.tokenTTL)
	if err != nil {
		h.logger.Error("sign token", "error", err)
		writeError(w, h.logger, err)
		return
	}

	writeResult(w, map[string]any{"token": token, "email": user.Email})
}
