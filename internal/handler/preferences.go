package handler

import (
	"encoding/json"
	"net/http"

	"fieldsales-backend/internal/repository"
	"fieldsales-backend/internal/server/authctx"
	"github.com/go-chi/chi/v5"
)

// PreferencesHandler is the load/save boundary for per-user UI state
// (theme, font, default period). The SPA reads the whole map at startup
// and writes keys back as the user changes them.
type PreferencesHandler struct {
	Repo repository.PreferenceRepository
}

func (h PreferencesHandler) RegisterRoutes(r chi.Router) {
	r.Get("/preferences", h.get)
	r.Put("/preferences", h.save)
}

func (h PreferencesHandler) get(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	prefs, err := h.Repo.GetAll(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (h PreferencesHandler) save(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req map[string]string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if len(req) == 0 {
		writeError(w, http.StatusBadRequest, "empty preference map")
		return
	}
	for k, v := range req {
		if k == "" {
			continue
		}
		if _, err := h.Repo.Set(r.Context(), user.ID, k, v); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	prefs, err := h.Repo.GetAll(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}
