package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mwesterdijk/spullendelen/internal/auth"
	"github.com/mwesterdijk/spullendelen/internal/events"
	"github.com/mwesterdijk/spullendelen/internal/model"
	"github.com/mwesterdijk/spullendelen/internal/store"
)

type SpullenHandler struct {
	store  *store.SpullenStore
	feed   *events.Feed
	logger *slog.Logger
}

func NewSpullenHandler(ss *store.SpullenStore, feed *events.Feed, logger *slog.Logger) *SpullenHandler {
	return &SpullenHandler{store: ss, feed: feed, logger: logger}
}

func (h *SpullenHandler) publish(action string, id int64) {
	if h.feed != nil {
		h.feed.Publish("spullen", action, id)
	}
}

type spullenRequest struct {
	Naam         string `json:"naam"`
	Beschrijving string `json:"beschrijving"`
	Merk         string `json:"merk"`
	Soort        string `json:"soort"`
	Bouwjaar     *int   `json:"bouwjaar"`
}

// validate asserts field presence and types before any store access and
// returns the violated assertion's message, or "".
func (r *spullenRequest) validate() string {
	r.Naam = strings.TrimSpace(r.Naam)
	r.Beschrijving = strings.TrimSpace(r.Beschrijving)
	r.Merk = strings.TrimSpace(r.Merk)
	r.Soort = strings.TrimSpace(r.Soort)
	if r.Naam == "" {
		return "naam must be a non-empty string"
	}
	if r.Beschrijving == "" {
		return "beschrijving must be a non-empty string"
	}
	if r.Merk == "" {
		return "merk must be a non-empty string"
	}
	if r.Soort == "" {
		return "soort must be a non-empty string"
	}
	if r.Bouwjaar == nil {
		return "bouwjaar must be a number"
	}
	return ""
}

func (r *spullenRequest) fields() store.SpullenFields {
	return store.SpullenFields{
		Naam:         r.Naam,
		Beschrijving: r.Beschrijving,
		Merk:         r.Merk,
		Soort:        r.Soort,
		Bouwjaar:     *r.Bouwjaar,
	}
}

func (h *SpullenHandler) Create(w http.ResponseWriter, r *http.Request) {
	huisID, ok := pathID(r, "huisId")
	if !ok {
		writeValidationError(w, "huisId must be a positive integer")
		return
	}

	var req spullenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "request body must be an object containing naam, beschrijving, merk, soort and bouwjaar")
		return
	}
	if msg := req.validate(); msg != "" {
		writeValidationError(w, msg)
		return
	}

	created, err := h.store.Create(r.Context(), huisID, auth.UserID(r.Context()), req.fields())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.publish("created", created.ID)
	writeResult(w, []model.SpullenInfo{*created})
}

func (h *SpullenHandler) List(w http.ResponseWriter, r *http.Request) {
	huisID, ok := pathID(r, "huisId")
	if !ok {
		writeValidationError(w, "huisId must be a positive integer")
		return
	}

	list, err := h.store.ListInfo(r.Context(), huisID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if list == nil {
		list = []model.SpullenInfo{}
	}
	writeResult(w, list)
}

func (h *SpullenHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	huisID, ok := pathID(r, "huisId")
	if !ok {
		writeValidationError(w, "huisId must be a positive integer")
		return
	}
	spullenID, ok := pathID(r, "spullenId")
	if !ok {
		writeValidationError(w, "spullenId must be a positive integer")
		return
	}

	sp, err := h.store.GetInfo(r.Context(), huisID, spullenID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if sp == nil {
		writeError(w, h.logger, store.ErrNotFound)
		return
	}
	writeResult(w, sp)
}

func (h *SpullenHandler) Update(w http.ResponseWriter, r *http.Request) {
	huisID, ok := pathID(r, "huisId")
	if !ok {
		writeValidationError(w, "huisId must be a positive integer")
		return
	}
	spullenID, ok := pathID(r, "spullenId")
	if !ok {
		writeValidationError(w, "spullenId must be a positive integer")
		return
	}

	var req spullenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "request body must be an object containing naam, beschrijving, merk, soort and bouwjaar")
		return
	}
	if msg := req.validate(); msg != "" {
		writeValidationError(w, msg)
		return
	}

	updated, err := h.store.Update(r.Context(), huisID, spullenID, auth.UserID(r.Context()), req.fields())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.publish("updated", spullenID)
	writeResult(w, []model.SpullenInfo{*updated})
}

func (h *SpullenHandler) Delete(w http.ResponseWriter, r *http.Request) {
	huisID, ok := pathID(r, "huisId")
	if !ok {
		writeValidationError(w, "huisId must be a positive integer")
		return
	}
	spullenID, ok := pathID(r, "spullenId")
	if !ok {
		writeValidationError(w, "spullenId must be a positive integer")
		return
	}

	if err := h.store.Delete(r.Context(), huisID, spullenID, auth.UserID(r.Context())); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.publish("deleted", spullenID)
	writeStatus(w, insertResult{AffectedRows: 1})
}
