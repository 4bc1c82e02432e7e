package analytics

import (
	"testing"

	"fieldsales-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBlockedWinsOverEverything(t *testing.T) {
	h := CustomerHistory{
		Customer: domain.Customer{Name: "Client Test", Blocked: true},
		Visits: []domain.Visit{
			purchaseAt(daysAgo(10), 100_000, 5),
			purchaseAt(daysAgo(20), 100_000, 5),
		},
	}
	res := Classify(h, testNow)
	assert.Equal(t, domain.ClassBloque, res.Label)
}

func TestClassifyNoPurchasesIsLead(t *testing.T) {
	h := CustomerHistory{
		Customer: domain.Customer{Name: "Client Test"},
		Visits: []domain.Visit{
			visitAt(daysAgo(3), domain.ActionVisite),
			visitAt(daysAgo(1), domain.ActionProspecter),
		},
	}
	res := Classify(h, testNow)
	assert.Equal(t, domain.ClassLead, res.Label)
	assert.Equal(t, 2, res.VisitCount)
	assert.Zero(t, res.TotalRevenue)
	assert.Nil(t, res.FirstPurchase)
}

func TestClassifyStrategicRevenueWindow(t *testing.T) {
	h := CustomerHistory{
		Customer: domain.Customer{Name: "Client Test"},
		Visits: []domain.Visit{
			purchaseAt(daysAgo(30), 25_000, 10),
			purchaseAt(daysAgo(200), 15_000, 5),
		},
	}
	res := Classify(h, testNow)
	assert.Equal(t, domain.ClassStrategique, res.Label)
	assert.Equal(t, 40_000.0, res.TotalRevenue)
}

func TestClassifyActiveTwoRecentPurchases(t *testing.T) {
	h := CustomerHistory{
		Customer: domain.Customer{Name: "Client Test"},
		Visits: []domain.Visit{
			purchaseAt(daysAgo(10), 500, 1),
			purchaseAt(daysAgo(90), 700, 2),
		},
	}
	res := Classify(h, testNow)
	assert.Equal(t, domain.ClassActif, res.Label)
}

func TestClassifyRepeatBuyerGoneQuiet(t *testing.T) {
	h := CustomerHistory{
		Customer: domain.Customer{Name: "Client Test"},
		Visits: []domain.Visit{
			purchaseAt(daysAgo(200), 500, 1),
			purchaseAt(daysAgo(300), 700, 2),
		},
	}
	res := Classify(h, testNow)
	assert.Equal(t, domain.ClassInactif, res.Label)
}

// A single purchase 400 days back carries 50 000 of revenue, but outside
// the 365-day window it does not make the account strategic; one lifetime
// purchase keeps the customer a new client.
func TestClassifyOldSinglePurchaseStaysNewClient(t *testing.T) {
	h := CustomerHistory{
		Customer: domain.Customer{Name: "Client Test"},
		Visits:   []domain.Visit{purchaseAt(daysAgo(400), 50_000, 1)},
	}
	res := Classify(h, testNow)
	assert.Equal(t, domain.ClassNouveau, res.Label)
	assert.Equal(t, 50_000.0, res.TotalRevenue)
}

func TestClassifyRecentSinglePurchaseIsNewClient(t *testing.T) {
	h := CustomerHistory{
		Customer: domain.Customer{Name: "Client Test"},
		Visits:   []domain.Visit{purchaseAt(daysAgo(5), 1_200, 3)},
	}
	res := Classify(h, testNow)
	assert.Equal(t, domain.ClassNouveau, res.Label)
}

func TestClassifyMalformedDateStillCountsVisit(t *testing.T) {
	bad := domain.Visit{CustomerName: "Client Test", Action: domain.ActionAcheter, Price: 100_000, DisplayDate: "pas une date"}
	h := CustomerHistory{
		Customer: domain.Customer{Name: "Client Test"},
		Visits:   []domain.Visit{bad},
	}
	res := Classify(h, testNow)
	// Undated purchase: excluded from the revenue window, still one
	// lifetime purchase and one visit.
	assert.Equal(t, domain.ClassNouveau, res.Label)
	assert.Equal(t, 1, res.VisitCount)
	assert.Equal(t, 100_000.0, res.TotalRevenue)
	assert.Nil(t, res.LastPurchase)
}

func TestClassifyIdempotent(t *testing.T) {
	h := CustomerHistory{
		Customer: domain.Customer{Name: "Client Test"},
		Visits: []domain.Visit{
			purchaseAt(daysAgo(10), 500, 1),
			visitAt(daysAgo(3), domain.ActionContact),
			purchaseAt(daysAgo(90), 700, 2),
		},
	}
	first := Classify(h, testNow)
	second := Classify(h, testNow)
	assert.Equal(t, first, second)
}

func TestClassifyAllDropsUnresolvedVisits(t *testing.T) {
	id := int64(7)
	owned := purchaseAt(daysAgo(5), 900, 1)
	owned.CustomerID = &id
	orphan := purchaseAt(daysAgo(2), 99_999, 1)

	customers := []domain.Customer{{ID: 7, Name: "Client Test"}}
	out := ClassifyAll(customers, []domain.Visit{owned, orphan}, testNow)

	require.Contains(t, out, int64(7))
	assert.Equal(t, domain.ClassNouveau, out[7].Label)
	assert.Equal(t, 900.0, out[7].TotalRevenue)
}
