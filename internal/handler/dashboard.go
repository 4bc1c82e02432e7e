package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fieldsales-backend/internal/analytics"
	"fieldsales-backend/internal/domain"
	"fieldsales-backend/internal/service"
	"github.com/go-chi/chi/v5"
)

type DashboardHandler struct {
	Snapshot *service.SnapshotService
	Summary  *service.SummaryService
}

func (h DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard/kpis", h.kpis)
	r.Get("/dashboard/coverage", h.coverage)
	r.Get("/dashboard/coverage/export", h.exportCoverage)
	r.Get("/dashboard/commissions", h.commissions)
	r.Get("/dashboard/commissions/export", h.exportCommissions)
	r.Post("/dashboard/summary", h.summary)
}

func (h DashboardHandler) kpis(w http.ResponseWriter, r *http.Request) {
	report, _, ok := h.report(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"current":  metricsJSON(report.Current),
		"previous": metricsJSON(report.Previous),
		"trends": map[string]string{
			"visits":     report.Trends.Visits,
			"leads":      report.Trends.Leads,
			"purchases":  report.Trends.Purchases,
			"revenue":    report.Trends.Revenue,
			"newClients": report.Trends.NewClients,
		},
		"fetchedAt": h.Snapshot.FetchedAt().Format(time.RFC3339),
	})
}

func (h DashboardHandler) coverage(w http.ResponseWriter, r *http.Request) {
	rows, ok := h.coverageRows(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, coverageJSON(rows))
}

func (h DashboardHandler) exportCoverage(w http.ResponseWriter, r *http.Request) {
	rows, ok := h.coverageRows(w, r)
	if !ok {
		return
	}
	writeExport(w, r, "coverage", coverageHeader, coverageRecords(rows))
}

func (h DashboardHandler) commissions(w http.ResponseWriter, r *http.Request) {
	rows, ok := h.commissionRows(w, r)
	if !ok {
		return
	}
	resp := make([]map[string]any, 0, len(rows))
	for _, s := range rows {
		resp = append(resp, map[string]any{
			"email":            s.Email,
			"name":             s.Name,
			"revenue":          s.Revenue,
			"units":            s.Units,
			"tier":             string(s.Tier),
			"unitsToNext":      s.UnitsToNext,
			"objectiveReached": s.ObjectiveReached,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h DashboardHandler) exportCommissions(w http.ResponseWriter, r *http.Request) {
	rows, ok := h.commissionRows(w, r)
	if !ok {
		return
	}
	writeExport(w, r, "commissions", commissionHeader, commissionRecords(rows))
}

func (h DashboardHandler) summary(w http.ResponseWriter, r *http.Request) {
	report, scoped, ok := h.report(w, r)
	if !ok {
		return
	}
	text, err := h.Summary.Summarize(r.Context(), report, analytics.RollupByCustomer(scoped))
	if err != nil {
		if errors.Is(err, service.ErrSummaryDisabled) {
			writeError(w, http.StatusNotImplemented, "summary service not configured")
			return
		}
		// The numbers are unaffected; only the narrative is missing.
		writeError(w, http.StatusBadGateway, fmt.Sprintf("summary unavailable: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": text})
}

// report computes the KPI report plus the filtered in-window visit set.
func (h DashboardHandler) report(w http.ResponseWriter, r *http.Request) (analytics.KPIReport, []domain.Visit, bool) {
	if err := h.Snapshot.Ensure(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "visit store unavailable")
		return analytics.KPIReport{}, nil, false
	}
	current, previous, err := parseWindows(r, time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period")
		return analytics.KPIReport{}, nil, false
	}
	filter := parseFilter(r)
	all := h.Snapshot.Visits()

	scoped := make([]domain.Visit, 0, len(all))
	for _, v := range filter.Apply(all) {
		if t, tok := analytics.EffectiveTime(v); tok && current.Contains(t) {
			scoped = append(scoped, v)
		}
	}
	return analytics.KPIsWithTrend(all, filter, current, previous), scoped, true
}

func (h DashboardHandler) coverageRows(w http.ResponseWriter, r *http.Request) ([]analytics.CityStats, bool) {
	_, scoped, ok := h.report(w, r)
	if !ok {
		return nil, false
	}
	return analytics.CityCoverage(scoped), true
}

func (h DashboardHandler) commissionRows(w http.ResponseWriter, r *http.Request) ([]analytics.SalespersonStats, bool) {
	_, scoped, ok := h.report(w, r)
	if !ok {
		return nil, false
	}
	return analytics.CommissionRanking(scoped), true
}

func metricsJSON(m analytics.PeriodMetrics) map[string]any {
	return map[string]any{
		"visits":         m.Visits,
		"leads":          m.Leads,
		"purchases":      m.Purchases,
		"revenue":        m.Revenue,
		"conversionRate": m.ConversionRate,
		"newClients":     m.NewClients,
	}
}

func coverageJSON(rows []analytics.CityStats) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, s := range rows {
		out = append(out, map[string]any{
			"city":            s.City,
			"visits":          s.Visits,
			"sales":           s.Sales,
			"revenue":         s.Revenue,
			"conversionPct":   s.ConversionPct,
			"contributionPct": s.ContributionPct,
		})
	}
	return out
}
