package analytics

import (
	"time"

	"fieldsales-backend/internal/domain"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func visitAt(t time.Time, action domain.VisitAction) domain.Visit {
	ts := t
	return domain.Visit{
		ID:           int64(t.Unix()),
		CustomerName: "Client Test",
		City:         "Casablanca",
		Action:       action,
		CreatedAt:    &ts,
	}
}

func purchaseAt(t time.Time, price float64, qty int) domain.Visit {
	v := visitAt(t, domain.ActionAcheter)
	v.Price = price
	v.Quantity = qty
	return v
}

func daysAgo(n int) time.Time {
	return testNow.AddDate(0, 0, -n)
}
