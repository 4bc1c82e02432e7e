package handler

import (
	"net/http"
	"strings"
	"time"

	"fieldsales-backend/internal/analytics"
	"fieldsales-backend/internal/domain"
)

const dateLayout = "2006-01-02"

func parseDateQuery(r *http.Request, key string) (*time.Time, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parseWindows resolves a named period or a custom start/end pair into
// the current and previous windows. Default is the running month.
func parseWindows(r *http.Request, now time.Time) (current, previous analytics.Window, err error) {
	start, err := parseDateQuery(r, "startDate")
	if err != nil {
		return current, previous, err
	}
	end, err := parseDateQuery(r, "endDate")
	if err != nil {
		return current, previous, err
	}
	if start != nil && end != nil {
		cur, prev := analytics.CustomPeriod(*start, *end)
		return cur, prev, nil
	}

	name := r.URL.Query().Get("period")
	if name == "" {
		name = analytics.PeriodThisMonth
	}
	return analytics.ResolvePeriod(name, now)
}

// parseFilter reads the optional city/gamme/salesperson selectors.
func parseFilter(r *http.Request) analytics.Filter {
	f := analytics.Filter{
		City:        r.URL.Query().Get("city"),
		Salesperson: r.URL.Query().Get("salesperson"),
	}
	if raw := r.URL.Query().Get("gamme"); raw != "" {
		for _, g := range strings.Split(raw, ",") {
			if g = strings.TrimSpace(g); g != "" {
				f.Gammes = append(f.Gammes, domain.Gamme(g))
			}
		}
	}
	return f
}
