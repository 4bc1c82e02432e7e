package analytics

import (
	"fmt"
	"strings"
	"time"

	"fieldsales-backend/internal/domain"
)

// Filter restricts visits by city, tier membership or salesperson.
// Zero values match everything.
type Filter struct {
	City        string
	Gammes      []domain.Gamme
	Salesperson string
}

func (f Filter) Match(v domain.Visit) bool {
	if f.City != "" && !strings.EqualFold(strings.TrimSpace(v.City), strings.TrimSpace(f.City)) {
		return false
	}
	if f.Salesperson != "" && !strings.EqualFold(v.SalespersonEmail, f.Salesperson) {
		return false
	}
	if len(f.Gammes) > 0 {
		found := false
		for _, g := range f.Gammes {
			if v.Gamme == g {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Apply returns the visits matching the filter.
func (f Filter) Apply(visits []domain.Visit) []domain.Visit {
	out := make([]domain.Visit, 0, len(visits))
	for _, v := range visits {
		if f.Match(v) {
			out = append(out, v)
		}
	}
	return out
}

// PeriodMetrics is the KPI set for one window.
type PeriodMetrics struct {
	Visits         int
	Leads          int
	Purchases      int
	Revenue        float64
	ConversionRate float64
	NewClients     int
}

// KPIReport pairs the current window with the preceding one and carries a
// formatted trend string per metric.
type KPIReport struct {
	Current  PeriodMetrics
	Previous PeriodMetrics
	Trends   KPITrends
}

type KPITrends struct {
	Visits     string
	Leads      string
	Purchases  string
	Revenue    string
	NewClients string
}

// ComputeKPIs aggregates the filtered visits inside the window. New-client
// counting deliberately scans the full unfiltered history: a customer's
// first-ever visit date must not shift because of the active filter.
func ComputeKPIs(all []domain.Visit, f Filter, w Window) PeriodMetrics {
	var m PeriodMetrics
	for _, v := range all {
		if !f.Match(v) {
			continue
		}
		t, ok := EffectiveTime(v)
		if !ok || !w.Contains(t) {
			continue
		}
		m.Visits++
		switch {
		case IsPurchase(v):
			m.Purchases++
			m.Revenue += EffectivePrice(v)
		case v.Action == domain.ActionProspecter:
			m.Leads++
		}
	}
	if m.Visits > 0 {
		m.ConversionRate = float64(m.Purchases) / float64(m.Visits) * 100
	}
	m.NewClients = countNewClients(all, w)
	return m
}

// KPIsWithTrend computes current and previous metrics plus trend strings.
func KPIsWithTrend(all []domain.Visit, f Filter, current, previous Window) KPIReport {
	cur := ComputeKPIs(all, f, current)
	prev := ComputeKPIs(all, f, previous)
	return KPIReport{
		Current:  cur,
		Previous: prev,
		Trends: KPITrends{
			Visits:     Trend(float64(cur.Visits), float64(prev.Visits)),
			Leads:      Trend(float64(cur.Leads), float64(prev.Leads)),
			Purchases:  Trend(float64(cur.Purchases), float64(prev.Purchases)),
			Revenue:    Trend(cur.Revenue, prev.Revenue),
			NewClients: Trend(float64(cur.NewClients), float64(prev.NewClients)),
		},
	}
}

// Trend formats the period-over-period delta as a signed percentage with
// one decimal. A zero previous value yields "+100%" when the current one
// is positive and "0%" otherwise.
func Trend(current, previous float64) string {
	if previous == 0 {
		if current > 0 {
			return "+100%"
		}
		return "0%"
	}
	return fmt.Sprintf("%+.1f%%", (current-previous)/previous*100)
}

// countNewClients finds each customer's earliest visit across the whole
// history and counts the ones falling inside the window.
func countNewClients(all []domain.Visit, w Window) int {
	earliest := make(map[string]time.Time)
	for _, v := range all {
		key := CustomerKey(v.CustomerName)
		if key == "" {
			continue
		}
		t, ok := EffectiveTime(v)
		if !ok {
			continue
		}
		if cur, seen := earliest[key]; !seen || t.Before(cur) {
			earliest[key] = t
		}
	}
	n := 0
	for _, t := range earliest {
		if w.Contains(t) {
			n++
		}
	}
	return n
}
