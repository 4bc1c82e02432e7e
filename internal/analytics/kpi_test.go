package analytics

import (
	"testing"

	"fieldsales-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestTrendSpecialCases(t *testing.T) {
	assert.Equal(t, "0%", Trend(0, 0))
	assert.Equal(t, "+100%", Trend(5, 0))
	assert.Equal(t, "+50.0%", Trend(15, 10))
	assert.Equal(t, "-25.0%", Trend(7.5, 10))
	assert.Equal(t, "+0.0%", Trend(10, 10))
}

func TestComputeKPIsCountsAndConversion(t *testing.T) {
	w := Window{Start: daysAgo(30), End: testNow}
	visits := []domain.Visit{
		purchaseAt(daysAgo(5), 1000, 2),
		visitAt(daysAgo(6), domain.ActionProspecter),
		visitAt(daysAgo(7), domain.ActionVisite),
		purchaseAt(daysAgo(8), 2000, 1),
		purchaseAt(daysAgo(60), 9000, 1), // outside the window
	}
	m := ComputeKPIs(visits, Filter{}, w)
	assert.Equal(t, 4, m.Visits)
	assert.Equal(t, 1, m.Leads)
	assert.Equal(t, 2, m.Purchases)
	assert.Equal(t, 3000.0, m.Revenue)
	assert.Equal(t, 50.0, m.ConversionRate)
}

func TestComputeKPIsEmptyWindowNoDivisionByZero(t *testing.T) {
	w := Window{Start: daysAgo(1), End: testNow}
	m := ComputeKPIs(nil, Filter{}, w)
	assert.Zero(t, m.ConversionRate)
	assert.Zero(t, m.Visits)
}

// The first-ever visit date of a customer must be found across the whole
// history, not the filtered subset, or customers whose first contact was
// in another city would be overcounted as new.
func TestNewClientsComputedAgainstFullHistory(t *testing.T) {
	w := Window{Start: daysAgo(30), End: testNow}

	old := visitAt(daysAgo(300), domain.ActionVisite)
	old.CustomerName = "Ancien"
	old.City = "Rabat"
	recent := purchaseAt(daysAgo(10), 100, 1)
	recent.CustomerName = "Ancien"
	recent.City = "Casablanca"
	fresh := visitAt(daysAgo(3), domain.ActionVisite)
	fresh.CustomerName = "Tout Neuf"
	fresh.City = "Casablanca"

	all := []domain.Visit{old, recent, fresh}

	m := ComputeKPIs(all, Filter{City: "Casablanca"}, w)
	// "Ancien" first appeared 300 days back in Rabat: not a new client
	// even though the city filter hides that visit.
	assert.Equal(t, 1, m.NewClients)
}

func TestKPIsWithTrendIdempotent(t *testing.T) {
	cur := Window{Start: daysAgo(30), End: testNow}
	prev := Window{Start: daysAgo(60), End: daysAgo(30)}
	visits := []domain.Visit{
		purchaseAt(daysAgo(5), 1000, 2),
		purchaseAt(daysAgo(45), 500, 1),
		visitAt(daysAgo(50), domain.ActionProspecter),
	}
	a := KPIsWithTrend(visits, Filter{}, cur, prev)
	b := KPIsWithTrend(visits, Filter{}, cur, prev)
	assert.Equal(t, a, b)
	assert.Equal(t, "+100.0%", a.Trends.Revenue)
}

func TestFilterMatch(t *testing.T) {
	v := domain.Visit{City: " Casablanca ", Gamme: domain.GammeHaute, SalespersonEmail: "a@b.c"}
	assert.True(t, Filter{}.Match(v))
	assert.True(t, Filter{City: "casablanca"}.Match(v))
	assert.False(t, Filter{City: "Rabat"}.Match(v))
	assert.True(t, Filter{Gammes: []domain.Gamme{domain.GammeHaute, domain.GammeMoyenne}}.Match(v))
	assert.False(t, Filter{Gammes: []domain.Gamme{domain.GammeEconomie}}.Match(v))
	assert.True(t, Filter{Salesperson: "A@B.C"}.Match(v))
}
