// Package analytics derives dashboard views (classification, KPI trends,
// city coverage, commission ranking, per-client rollups) from a flat
// snapshot of visit records. Every function is pure: no I/O, no shared
// state, full recomputation per call. Data-quality problems degrade
// per record and never panic.
package analytics

import (
	"strings"
	"time"

	"fieldsales-backend/internal/domain"
)

// Date layouts accepted for coarse display dates and appointment strings,
// tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
}

// EffectiveTime resolves the timestamp of a visit: the precise CreatedAt
// when present, otherwise the parsed display-date string. The second
// return is false when neither yields a usable time; such visits are
// excluded from date-bucketed aggregates but still count in raw totals.
func EffectiveTime(v domain.Visit) (time.Time, bool) {
	if v.CreatedAt != nil && !v.CreatedAt.IsZero() {
		return *v.CreatedAt, true
	}
	return parseLooseDate(v.DisplayDate)
}

// EffectivePrice treats a missing amount as zero.
func EffectivePrice(v domain.Visit) float64 {
	if v.Price < 0 {
		return 0
	}
	return v.Price
}

// EffectiveQuantity treats a missing quantity as zero.
func EffectiveQuantity(v domain.Visit) int {
	if v.Quantity < 0 {
		return 0
	}
	return v.Quantity
}

// PurchaseUnits is the quantity credited to a salesperson for one
// purchase visit: the recorded quantity, or 1 when absent.
func PurchaseUnits(v domain.Visit) int {
	if q := EffectiveQuantity(v); q > 0 {
		return q
	}
	return 1
}

// IsPurchase reports whether the visit action is "Acheter", compared
// case- and whitespace-insensitively.
func IsPurchase(v domain.Visit) bool {
	return strings.EqualFold(strings.TrimSpace(string(v.Action)), string(domain.ActionAcheter))
}

// CustomerKey normalizes a customer name for grouping.
func CustomerKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ParseAppointmentDates splits a multi-value appointment string on commas
// and newlines and returns the fragments that parse as dates. Unparseable
// fragments are dropped silently.
func ParseAppointmentDates(s string) []time.Time {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r' || r == ';'
	})
	var out []time.Time
	for _, f := range fields {
		if t, ok := parseLooseDate(f); ok {
			out = append(out, t)
		}
	}
	return out
}

func parseLooseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
