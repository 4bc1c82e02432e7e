package analytics

import (
	"sort"

	"fieldsales-backend/internal/domain"
)

// CustomerRollup is one display row per unique customer: the most recent
// visit carries the display fields, the totals accumulate over every
// visit in the group.
type CustomerRollup struct {
	Representative domain.Visit
	TotalPrice     float64
	TotalQuantity  int
	VisitCount     int
}

// RollupByCustomer groups the filtered visits by trimmed case-insensitive
// customer name. Visits with no customer name cannot be attributed and
// are dropped. Rows come back ordered by the representative's recency,
// newest first.
func RollupByCustomer(visits []domain.Visit) []CustomerRollup {
	groups := make(map[string]*CustomerRollup)
	order := make([]string, 0)

	for _, v := range visits {
		key := CustomerKey(v.CustomerName)
		if key == "" {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &CustomerRollup{Representative: v}
			groups[key] = g
			order = append(order, key)
		} else if moreRecent(v, g.Representative) {
			g.Representative = v
		}
		g.TotalPrice += EffectivePrice(v)
		g.TotalQuantity += EffectiveQuantity(v)
		g.VisitCount++
	}

	out := make([]CustomerRollup, 0, len(order))
	for _, key := range order {
		out = append(out, *groups[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return moreRecent(out[i].Representative, out[j].Representative)
	})
	return out
}

// moreRecent prefers the precise timestamp; when neither side has a
// parseable date it falls back to numeric id ordering.
func moreRecent(a, b domain.Visit) bool {
	ta, aok := EffectiveTime(a)
	tb, bok := EffectiveTime(b)
	switch {
	case aok && bok:
		return ta.After(tb)
	case aok:
		return true
	case bok:
		return false
	default:
		return a.ID > b.ID
	}
}
