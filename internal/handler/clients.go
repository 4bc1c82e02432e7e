package handler

import (
	"net/http"
	"time"

	"fieldsales-backend/internal/analytics"
	"fieldsales-backend/internal/domain"
	"fieldsales-backend/internal/repository"
	"fieldsales-backend/internal/service"
	"github.com/go-chi/chi/v5"
)

// ClientsHandler serves the deduplicated one-row-per-customer list, each
// row annotated with its classification.
type ClientsHandler struct {
	Snapshot  *service.SnapshotService
	Customers repository.CustomerRepository
}

func (h ClientsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/clients", h.list)
}

func (h ClientsHandler) list(w http.ResponseWriter, r *http.Request) {
	if err := h.Snapshot.Ensure(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "visit store unavailable")
		return
	}
	now := time.Now()
	current, _, err := parseWindows(r, now)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period")
		return
	}
	filter := parseFilter(r)

	all := h.Snapshot.Visits()
	scoped := make([]domain.Visit, 0, len(all))
	for _, v := range filter.Apply(all) {
		if t, ok := analytics.EffectiveTime(v); ok && !current.Contains(t) {
			continue
		}
		scoped = append(scoped, v)
	}
	rollups := analytics.RollupByCustomer(scoped)

	// Classification always reads the full history, not the filtered
	// window, so the label cannot drift between views.
	histories := make(map[string][]domain.Visit)
	for _, v := range all {
		key := analytics.CustomerKey(v.CustomerName)
		if key != "" {
			histories[key] = append(histories[key], v)
		}
	}
	customersByKey := make(map[string]domain.Customer)
	if customers, err := h.Customers.List(r.Context(), 0); err == nil {
		for _, c := range customers {
			customersByKey[analytics.CustomerKey(c.Name)] = c
		}
	}

	resp := make([]map[string]any, 0, len(rollups))
	for _, roll := range rollups {
		key := analytics.CustomerKey(roll.Representative.CustomerName)
		cust := customersByKey[key]
		res := analytics.Classify(analytics.CustomerHistory{
			Customer: cust,
			Visits:   histories[key],
		}, now)

		row := visitJSON(roll.Representative)
		row["totalPrice"] = roll.TotalPrice
		row["totalQuantity"] = roll.TotalQuantity
		row["visitCount"] = res.VisitCount
		row["classification"] = string(res.Label)
		row["totalRevenue"] = res.TotalRevenue
		if res.FirstPurchase != nil {
			row["firstPurchase"] = res.FirstPurchase.Format(dateLayout)
		}
		if res.LastPurchase != nil {
			row["lastPurchase"] = res.LastPurchase.Format(dateLayout)
		}
		if cust.ID != 0 {
			row["customerId"] = cust.ID
		}
		resp = append(resp, row)
	}
	writeJSON(w, http.StatusOK, resp)
}
