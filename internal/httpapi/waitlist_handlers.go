package httpapi

import (
	"errors"
	"io"
	"net/http"
	"time"

	"creatorum.org/internal/audit"
	"creatorum.org/internal/waitlist"
)

type listWaitlistResponse struct {
	Entries []waitlist.Entry `json:"entries"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
	AsOf    time.Time        `json:"as_of"`
}

func (a *API) handleWaitlist(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		a.createWaitlistEntry(w, r)
	case http.MethodGet:
		a.listWaitlist(w, r)
	default:
		methodNotAllowed(w, r, http.MethodPost, http.MethodGet)
	}
}

func (a *API) handleWaitlistCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	a.countWaitlist(w, r)
}

func (a *API) createWaitlistEntry(w http.ResponseWriter, r *http.Request) {
	// The signup body is canonicalized by the waitlist package, which
	// tolerates historical field aliases, so it gets the raw bytes rather
	// than a typed decode.
	reader := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer reader.Close()
	body, err := io.ReadAll(reader)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "unable to read request body")
		return
	}

	in, err := waitlist.ParseCreate(body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := a.waitlist.Create(r.Context(), in)
	if err != nil {
		if errors.Is(err, waitlist.ErrDuplicateEmail) {
			writeError(w, r, http.StatusConflict, "email already on waitlist")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	_ = audit.LogEvent(r.Context(), "waitlist.entry.create", map[string]any{
		"entry_id": entry.ID,
		"role":     entry.Role,
	})

	w.Header().Set("Location", "/v1/waitlist/"+entry.ID)
	writeJSON(w, http.StatusCreated, map[string]any{"entry": entry})
}

func (a *API) listWaitlist(w http.ResponseWriter, r *http.Request) {
	limit, err := parsePositiveInt(r.URL.Query().Get("limit"), 50, 1, 200)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 200")
		return
	}
	offset, err := parsePositiveInt(r.URL.Query().Get("offset"), 0, 0, 1<<30)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "offset must be a non-negative integer")
		return
	}

	entries, err := a.waitlist.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, listWaitlistResponse{
		Entries: entries,
		Limit:   limit,
		Offset:  offset,
		AsOf:    time.Now().UTC(),
	})
}

func (a *API) countWaitlist(w http.ResponseWriter, r *http.Request) {
	count, err := a.waitlist.Count(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": count})
}
