package handler

import (
	"log/slog"
	"net/http"

	"github.com/mwesterdijk/spullendelen/internal/auth"
	"github.com/mwesterdijk/spullendelen/internal/events"
	"github.com/mwesterdijk/spullendelen/internal/store"
)

type DelerHandler struct {
	store  *store.DelerStore
	feed   *events.Feed
	logger *slog.Logger
}

func NewDelerHandler(ds *store.DelerStore, feed *events.Feed, logger *slog.Logger) *DelerHandler {
	return &DelerHandler{store: ds, feed: feed, logger: logger}
}

func (h *DelerHandler) publish(action string, id int64) {
	if h.feed != nil {
		h.feed.Publish("deler", action, id)
	}
}

// Register signs the authenticated user up as deler for a spullen. The
// registration has no request body; everything comes from the path and the
// token.
func (h *DelerHandler) Register(w http.ResponseWriter, r *http.Request) {
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

	id, err := h.store.Register(r.Context(), auth.UserID(r.Context()), huisID, spullenID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.publish("registered", id)
	writeStatus(w, insertResult{InsertID: id, AffectedRows: 1})
}

// List returns contact info for everyone registered for a spullen. No
// registrations means the categorie or spullen is treated as nonexistent.
func (h *DelerHandler) List(w http.ResponseWriter, r *http.Request) {
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

	list, err := h.store.ListInfo(r.Context(), huisID, spullenID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if len(list) == 0 {
		writeAPIError(w, http.StatusNotFound, codeNotFound, "non-existing categorie or spullen, or no delers")
		return
	}
	writeResult(w, list)
}

// Unregister removes the authenticated user's own registration.
func (h *DelerHandler) Unregister(w http.ResponseWriter, r *http.Request) {
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

	userID := auth.UserID(r.Context())
	if err := h.store.Unregister(r.Context(), userID, huisID, spullenID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.publish("unregistered", userID)
	writeStatus(w, insertResult{AffectedRows: 1})
}
