package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"fieldsales-backend/internal/domain"
	"fieldsales-backend/internal/repository"
	"github.com/go-chi/chi/v5"
)

type CustomerHandler struct {
	Repo repository.CustomerRepository
}

func (h CustomerHandler) RegisterRoutes(r chi.Router) {
	r.Get("/customers", h.list)
	r.Post("/customers", h.upsert)
	r.Get("/customers/{id}", h.get)
	r.Delete("/customers/{id}", h.delete)
	r.Post("/customers/{id}/block", h.setBlocked)
}

func (h CustomerHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context(), 500)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, c := range items {
		resp = append(resp, customerJSON(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h CustomerHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	c, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "customer not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, customerJSON(*c))
}

func (h CustomerHandler) upsert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID         *int64 `json:"id"`
		Name       string `json:"name"`
		Manager    string `json:"manager"`
		City       string `json:"city"`
		Region     string `json:"region"`
		Address    string `json:"address"`
		Mobile     string `json:"mobile"`
		Mobile2    string `json:"mobile2"`
		Landline   string `json:"landline"`
		Email      string `json:"email"`
		Gamme      string `json:"gamme"`
		OwnerEmail string `json:"ownerEmail"`
		Location   string `json:"location"`
		Blocked    bool   `json:"blocked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" || req.City == "" {
		writeError(w, http.StatusBadRequest, "name and city are required")
		return
	}
	c := domain.Customer{
		Name:       req.Name,
		Manager:    req.Manager,
		City:       req.City,
		Region:     req.Region,
		Address:    req.Address,
		Mobile:     req.Mobile,
		Mobile2:    req.Mobile2,
		Landline:   req.Landline,
		Email:      req.Email,
		Gamme:      domain.Gamme(req.Gamme),
		OwnerEmail: req.OwnerEmail,
		Location:   req.Location,
		Blocked:    req.Blocked,
	}
	if req.ID != nil {
		c.ID = *req.ID
	}
	saved, err := h.Repo.Upsert(r.Context(), c)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, customerJSON(*saved))
}

func (h CustomerHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h CustomerHandler) setBlocked(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Blocked bool `json:"blocked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Repo.SetBlocked(r.Context(), id, req.Blocked); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "customer not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "blocked": req.Blocked})
}

func customerJSON(c domain.Customer) map[string]any {
	return map[string]any{
		"id":         c.ID,
		"name":       c.Name,
		"manager":    c.Manager,
		"city":       c.City,
		"region":     c.Region,
		"address":    c.Address,
		"mobile":     c.Mobile,
		"mobile2":    c.Mobile2,
		"landline":   c.Landline,
		"email":      c.Email,
		"gamme":      string(c.Gamme),
		"ownerEmail": c.OwnerEmail,
		"location":   c.Location,
		"blocked":    c.Blocked,
	}
}
