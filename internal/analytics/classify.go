package analytics

import (
	"time"

	"fieldsales-backend/internal/domain"
)

// Business thresholds carried over verbatim from the product rules.
const (
	StrategicRevenueFloor = 40_000
	StrategicWindowDays   = 365
	ActiveWindowDays      = 180
	ActivePurchaseMin     = 2
)

// CustomerHistory is the classification input: one customer plus its full
// visit history, unfiltered.
type CustomerHistory struct {
	Customer domain.Customer
	Visits   []domain.Visit
}

// ClassificationResult carries the single matching label plus the derived
// scalars the client list displays alongside it.
type ClassificationResult struct {
	Label         domain.Classification
	FirstPurchase *time.Time
	LastPurchase  *time.Time
	TotalRevenue  float64
	TotalQuantity int
	VisitCount    int
}

// Classify applies the ordered classification rules; the first matching
// rule wins and exactly one label is returned.
//
//  1. blocked customer
//  2. purchase revenue within the last 365 days at or above 40 000
//  3. at least 2 purchases within the last 180 days
//  4. repeat buyer whose latest purchase is older than 180 days
//  5. exactly one lifetime purchase
//  6. lead
//
// A single lifetime purchase stays "Nouveau Client" however old it is;
// the inactivity rule only demotes customers who bought more than once.
func Classify(h CustomerHistory, now time.Time) ClassificationResult {
	res := ClassificationResult{VisitCount: len(h.Visits)}

	strategicCutoff := now.AddDate(0, 0, -StrategicWindowDays)
	activeCutoff := now.AddDate(0, 0, -ActiveWindowDays)

	var (
		revenueStrategicWindow float64
		recentPurchases        int
		lifetimePurchases      int
	)

	for _, v := range h.Visits {
		if !IsPurchase(v) {
			continue
		}
		lifetimePurchases++
		res.TotalRevenue += EffectivePrice(v)
		res.TotalQuantity += EffectiveQuantity(v)

		t, ok := EffectiveTime(v)
		if !ok {
			continue
		}
		if res.FirstPurchase == nil || t.Before(*res.FirstPurchase) {
			first := t
			res.FirstPurchase = &first
		}
		if res.LastPurchase == nil || t.After(*res.LastPurchase) {
			last := t
			res.LastPurchase = &last
		}
		if t.After(strategicCutoff) {
			revenueStrategicWindow += EffectivePrice(v)
		}
		if t.After(activeCutoff) {
			recentPurchases++
		}
	}

	switch {
	case h.Customer.Blocked:
		res.Label = domain.ClassBloque
	case revenueStrategicWindow >= StrategicRevenueFloor:
		res.Label = domain.ClassStrategique
	case recentPurchases >= ActivePurchaseMin:
		res.Label = domain.ClassActif
	case lifetimePurchases >= 2 && res.LastPurchase != nil && res.LastPurchase.Before(activeCutoff):
		res.Label = domain.ClassInactif
	case lifetimePurchases == 1:
		res.Label = domain.ClassNouveau
	default:
		res.Label = domain.ClassLead
	}
	return res
}

// ClassifyAll groups visits by customer reference and classifies each
// customer against its own history. Visits without a resolvable customer
// reference are dropped.
func ClassifyAll(customers []domain.Customer, visits []domain.Visit, now time.Time) map[int64]ClassificationResult {
	byCustomer := make(map[int64][]domain.Visit)
	for _, v := range visits {
		if v.CustomerID == nil {
			continue
		}
		byCustomer[*v.CustomerID] = append(byCustomer[*v.CustomerID], v)
	}
	out := make(map[int64]ClassificationResult, len(customers))
	for _, c := range customers {
		out[c.ID] = Classify(CustomerHistory{Customer: c, Visits: byCustomer[c.ID]}, now)
	}
	return out
}
