package analytics

import (
	"testing"

	"fieldsales-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollupAccumulatesAcrossGroup(t *testing.T) {
	a := purchaseAt(daysAgo(10), 1000, 3)
	b := purchaseAt(daysAgo(5), 2000, 5)
	rows := RollupByCustomer([]domain.Visit{a, b})
	require.Len(t, rows, 1)

	assert.Equal(t, 3000.0, rows[0].TotalPrice)
	assert.Equal(t, 8, rows[0].TotalQuantity)
	assert.Equal(t, 2, rows[0].VisitCount)
	// The newer visit is the representative.
	assert.Equal(t, b.ID, rows[0].Representative.ID)
}

func TestRollupGroupsNameCaseInsensitive(t *testing.T) {
	a := purchaseAt(daysAgo(3), 100, 1)
	a.CustomerName = "  Café du Port "
	b := purchaseAt(daysAgo(2), 200, 2)
	b.CustomerName = "café du port"
	rows := RollupByCustomer([]domain.Visit{a, b})
	require.Len(t, rows, 1)
	assert.Equal(t, 300.0, rows[0].TotalPrice)
}

func TestRollupDropsVisitsWithoutCustomer(t *testing.T) {
	orphan := purchaseAt(daysAgo(1), 500, 1)
	orphan.CustomerName = "  "
	kept := purchaseAt(daysAgo(2), 100, 1)
	rows := RollupByCustomer([]domain.Visit{orphan, kept})
	require.Len(t, rows, 1)
	assert.Equal(t, 100.0, rows[0].TotalPrice)
}

func TestRollupFallsBackToIDWhenUndated(t *testing.T) {
	older := domain.Visit{ID: 10, CustomerName: "Sans Date", DisplayDate: "???"}
	newer := domain.Visit{ID: 42, CustomerName: "Sans Date", DisplayDate: "???"}
	rows := RollupByCustomer([]domain.Visit{older, newer})
	require.Len(t, rows, 1)
	assert.Equal(t, int64(42), rows[0].Representative.ID)
}

func TestRollupDatedBeatsUndated(t *testing.T) {
	undated := domain.Visit{ID: 99, CustomerName: "Mixte"}
	dated := purchaseAt(daysAgo(30), 0, 0)
	dated.CustomerName = "Mixte"
	rows := RollupByCustomer([]domain.Visit{undated, dated})
	require.Len(t, rows, 1)
	assert.Equal(t, dated.ID, rows[0].Representative.ID)
}

func TestRollupOrderedByRecency(t *testing.T) {
	first := purchaseAt(daysAgo(20), 1, 1)
	first.CustomerName = "Ancien"
	second := purchaseAt(daysAgo(2), 1, 1)
	second.CustomerName = "Récent"
	rows := RollupByCustomer([]domain.Visit{first, second})
	require.Len(t, rows, 2)
	assert.Equal(t, "Récent", rows[0].Representative.CustomerName)
}
