package handler

import (
	"net/http"
	"sort"
	"time"

	"fieldsales-backend/internal/analytics"
	"fieldsales-backend/internal/service"
	"github.com/go-chi/chi/v5"
)

// AppointmentsHandler lists upcoming appointments parsed out of the
// multi-value date strings on visits.
type AppointmentsHandler struct {
	Snapshot *service.SnapshotService
}

func (h AppointmentsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/appointments", h.list)
}

func (h AppointmentsHandler) list(w http.ResponseWriter, r *http.Request) {
	if err := h.Snapshot.Ensure(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "visit store unavailable")
		return
	}
	filter := parseFilter(r)
	today := time.Now().Truncate(24 * time.Hour)

	type row struct {
		date time.Time
		data map[string]any
	}
	var rows []row
	for _, v := range filter.Apply(h.Snapshot.Visits()) {
		for _, d := range analytics.ParseAppointmentDates(v.AppointmentDates) {
			if d.Before(today) {
				continue
			}
			rows = append(rows, row{date: d, data: map[string]any{
				"date":         d.Format(dateLayout),
				"customerName": v.CustomerName,
				"city":         v.City,
				"salesperson":  v.SalespersonEmail,
				"note":         v.Note,
				"visitId":      v.ID,
			}})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].date.Before(rows[j].date) })

	resp := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, r.data)
	}
	writeJSON(w, http.StatusOK, resp)
}
