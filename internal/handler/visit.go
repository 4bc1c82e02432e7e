package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"fieldsales-backend/internal/analytics"
	"fieldsales-backend/internal/domain"
	"fieldsales-backend/internal/repository"
	"fieldsales-backend/internal/server/authctx"
	"fieldsales-backend/internal/service"
	"github.com/go-chi/chi/v5"
)

type VisitHandler struct {
	Snapshot *service.SnapshotService
}

func (h VisitHandler) RegisterRoutes(r chi.Router) {
	r.Get("/visits", h.list)
	r.Post("/visits", h.create)
	r.Put("/visits/{id}", h.update)
	r.Delete("/visits/{id}", h.delete)
	r.Post("/visits/refresh", h.refresh)
}

func (h VisitHandler) list(w http.ResponseWriter, r *http.Request) {
	if err := h.Snapshot.Ensure(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "visit store unavailable")
		return
	}
	current, _, err := parseWindows(r, time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period")
		return
	}
	filter := parseFilter(r)

	visits := h.Snapshot.Visits()
	resp := make([]map[string]any, 0, len(visits))
	for _, v := range visits {
		if !filter.Match(v) {
			continue
		}
		if t, ok := analytics.EffectiveTime(v); ok && !current.Contains(t) {
			continue
		}
		resp = append(resp, visitJSON(v))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"visits":    resp,
		"fetchedAt": h.Snapshot.FetchedAt().Format(time.RFC3339),
	})
}

type visitPayload struct {
	CustomerID       *int64  `json:"customerId"`
	CustomerName     string  `json:"customerName"`
	City             string  `json:"city"`
	Gamme            string  `json:"gamme"`
	Action           string  `json:"action"`
	AppointmentDates string  `json:"appointmentDates"`
	Note             string  `json:"note"`
	ContactChannel   string  `json:"contactChannel"`
	ContactSummary   string  `json:"contactSummary"`
	Price            float64 `json:"price"`
	Quantity         int     `json:"quantity"`
	PhotoRef         string  `json:"photoRef"`
	DisplayDate      string  `json:"displayDate"`
}

func (p visitPayload) toInput(salesperson string) repository.CreateVisitInput {
	return repository.CreateVisitInput{
		CustomerID:       p.CustomerID,
		CustomerName:     p.CustomerName,
		City:             p.City,
		Gamme:            domain.Gamme(p.Gamme),
		SalespersonEmail: salesperson,
		Action:           domain.VisitAction(p.Action),
		AppointmentDates: p.AppointmentDates,
		Note:             p.Note,
		ContactChannel:   p.ContactChannel,
		ContactSummary:   p.ContactSummary,
		Price:            p.Price,
		Quantity:         p.Quantity,
		PhotoRef:         p.PhotoRef,
		DisplayDate:      p.DisplayDate,
	}
}

func (h VisitHandler) create(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req visitPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.CustomerName == "" || req.Action == "" {
		writeError(w, http.StatusBadRequest, "customerName and action are required")
		return
	}

	// Applied to the snapshot immediately; the database write runs in the
	// background and rolls back the row if it fails.
	v := h.Snapshot.AddVisit(r.Context(), req.toInput(user.Email))
	writeJSON(w, http.StatusAccepted, visitJSON(v))
}

func (h VisitHandler) update(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req visitPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	saved, err := h.Snapshot.UpdateVisit(r.Context(), id, req.toInput(user.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "visit not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, visitJSON(*saved))
}

func (h VisitHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Snapshot.DeleteVisit(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "visit not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h VisitHandler) refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.Snapshot.Refresh(r.Context()); err != nil {
		// The previous snapshot stays in place; tell the caller how stale
		// it is.
		writeJSON(w, http.StatusOK, map[string]any{
			"refreshed": false,
			"fetchedAt": h.Snapshot.FetchedAt().Format(time.RFC3339),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"refreshed": true,
		"fetchedAt": h.Snapshot.FetchedAt().Format(time.RFC3339),
	})
}

func visitJSON(v domain.Visit) map[string]any {
	var createdAt any
	if v.CreatedAt != nil {
		createdAt = v.CreatedAt.Format(time.RFC3339)
	}
	appointments := make([]string, 0)
	for _, t := range analytics.ParseAppointmentDates(v.AppointmentDates) {
		appointments = append(appointments, t.Format(dateLayout))
	}
	return map[string]any{
		"id":               v.ID,
		"code":             v.Code,
		"customerId":       v.CustomerID,
		"customerName":     v.CustomerName,
		"city":             v.City,
		"gamme":            string(v.Gamme),
		"salesperson":      v.SalespersonEmail,
		"action":           string(v.Action),
		"appointmentDates": appointments,
		"note":             v.Note,
		"contactChannel":   v.ContactChannel,
		"contactSummary":   v.ContactSummary,
		"price":            v.Price,
		"quantity":         v.Quantity,
		"photoRef":         v.PhotoRef,
		"displayDate":      v.DisplayDate,
		"createdAt":        createdAt,
	}
}
