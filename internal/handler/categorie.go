package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/mwesterdijk/spullendelen/internal/auth"
	"github.com/mwesterdijk/spullendelen/internal/events"
	"github.com/mwesterdijk/spullendelen/internal/model"
	"github.com/mwesterdijk/spullendelen/internal/store"
)

type CategorieHandler struct {
	store  *store.CategorieStore
	feed   *events.Feed
	logger *slog.Logger
}

func NewCategorieHandler(cs *store.CategorieStore, feed *events.Feed, logger *slog.Logger) *CategorieHandler {
	return &CategorieHandler{store: cs, feed: feed, logger: logger}
}

func (h *CategorieHandler) publish(action string, id int64) {
	if h.feed != nil {
		h.feed.Publish("categorie", action, id)
	}
}

type categorieRequest struct {
	Naam         string `json:"naam"`
	Beschrijving string `json:"beschrijving"`
}

func (r *categorieRequest) validate() string {
	r.Naam = strings.TrimSpace(r.Naam)
	r.Beschrijving = strings.TrimSpace(r.Beschrijving)
	if r.Naam == "" {
		return "naam must be a non-empty string"
	}
	if r.Beschrijving == "" {
		return "beschrijving must be a non-empty string"
	}
	return ""
}

// insertResult is the {status: ...} payload for plain inserts and deletes.
type insertResult struct {
	InsertID     int64 `json:"insertId,omitempty"`
	AffectedRows int   `json:"affectedRows"`
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	return id, err == nil && id > 0
}

func (h *CategorieHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categorieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "request body must be an object containing naam and beschrijving")
		return
	}
	if msg := req.validate(); msg != "" {
		writeValidationError(w, msg)
		return
	}

	id, err := h.store.Create(r.Context(), req.Naam, req.Beschrijving, auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.publish("created", id)
	writeStatus(w, insertResult{InsertID: id, AffectedRows: 1})
}

func (h *CategorieHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListInfo(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if list == nil {
		list = []model.CategorieInfo{}
	}
	writeResult(w, list)
}

func (h *CategorieHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "huisId")
	if !ok {
		writeValidationError(w, "huisId must be a positive integer")
		return
	}

	c, err := h.store.GetInfo(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if c == nil {
		writeError(w, h.logger, store.ErrNotFound)
		return
	}
	writeResult(w, c)
}

func (h *CategorieHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "huisId")
	if !ok {
		writeValidationError(w, "huisId must be a positive integer")
		return
	}

	var req categorieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "request body must be an object containing naam and beschrijving")
		return
	}
	if msg := req.validate(); msg != "" {
		writeValidationError(w, msg)
		return
	}

	updated, err := h.store.Update(r.Context(), id, auth.UserID(r.Context()), req.Naam, req.Beschrijving)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.publish("updated", id)
	writeResult(w, []model.CategorieInfo{*updated})
}

func (h *CategorieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "huisId")
	if !ok {
		writeValidationError(w, "huisId must be a positive integer")
		return
	}

	if err := h.store.Delete(r.Context(), id, auth.UserID(r.Context())); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.publish("deleted", id)
	writeStatus(w, insertResult{AffectedRows: 1})
}
