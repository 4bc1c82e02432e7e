package analytics

import (
	"testing"

	"fieldsales-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cityVisit(city string, action domain.VisitAction, price float64) domain.Visit {
	v := visitAt(daysAgo(1), action)
	v.City = city
	v.Price = price
	return v
}

func TestCityCoverageAggregatesAndSorts(t *testing.T) {
	visits := []domain.Visit{
		cityVisit("Casablanca", domain.ActionAcheter, 6000),
		cityVisit("Casablanca", domain.ActionVisite, 0),
		cityVisit("Casablanca", domain.ActionAcheter, 2000),
		cityVisit("Rabat", domain.ActionAcheter, 2000),
		cityVisit("Rabat", domain.ActionVisite, 0),
	}
	rows := CityCoverage(visits)
	require.Len(t, rows, 2)

	assert.Equal(t, "Casablanca", rows[0].City)
	assert.Equal(t, 3, rows[0].Visits)
	assert.Equal(t, 2, rows[0].Sales)
	assert.Equal(t, 8000.0, rows[0].Revenue)
	assert.Equal(t, 67, rows[0].ConversionPct)
	assert.InDelta(t, 80.0, rows[0].ContributionPct, 1e-9)

	assert.Equal(t, "Rabat", rows[1].City)
	assert.InDelta(t, 20.0, rows[1].ContributionPct, 1e-9)
}

func TestCityCoverageContributionSumsToHundred(t *testing.T) {
	visits := []domain.Visit{
		cityVisit("A", domain.ActionAcheter, 333),
		cityVisit("B", domain.ActionAcheter, 777),
		cityVisit("C", domain.ActionAcheter, 123.45),
	}
	rows := CityCoverage(visits)
	var sum float64
	for _, r := range rows {
		sum += r.ContributionPct
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestCityCoverageZeroRevenueNoDivision(t *testing.T) {
	visits := []domain.Visit{
		cityVisit("Casablanca", domain.ActionVisite, 0),
		cityVisit("Rabat", domain.ActionProspecter, 0),
	}
	rows := CityCoverage(visits)
	for _, r := range rows {
		assert.Zero(t, r.ContributionPct)
		assert.Zero(t, r.ConversionPct)
	}
}

func TestCityCoverageBlankCityBucketed(t *testing.T) {
	visits := []domain.Visit{cityVisit("  ", domain.ActionAcheter, 100)}
	rows := CityCoverage(visits)
	require.Len(t, rows, 1)
	assert.Equal(t, "—", rows[0].City)
}
