package analytics

import (
	"testing"
	"time"

	"fieldsales-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppointmentDatesMixedSeparators(t *testing.T) {
	dates := ParseAppointmentDates("2024-05-01, 2024-05-03\n2024-05-10")
	require.Len(t, dates, 3)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), dates[0])
	assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), dates[2])
}

func TestParseAppointmentDatesDropsGarbage(t *testing.T) {
	dates := ParseAppointmentDates("2024-05-01, à confirmer, , 12/03/2024")
	require.Len(t, dates, 2)
}

func TestParseAppointmentDatesEmpty(t *testing.T) {
	assert.Nil(t, ParseAppointmentDates(""))
	assert.Nil(t, ParseAppointmentDates("  \n "))
}

func TestEffectiveTimePrefersCreatedAt(t *testing.T) {
	ts := time.Date(2025, 2, 3, 10, 30, 0, 0, time.UTC)
	v := domain.Visit{CreatedAt: &ts, DisplayDate: "2020-01-01"}
	got, ok := EffectiveTime(v)
	require.True(t, ok)
	assert.Equal(t, ts, got)
}

func TestEffectiveTimeFallsBackToDisplayDate(t *testing.T) {
	v := domain.Visit{DisplayDate: "15/04/2024"}
	got, ok := EffectiveTime(v)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC), got)

	_, ok = EffectiveTime(domain.Visit{DisplayDate: "hier"})
	assert.False(t, ok)
}

func TestIsPurchaseCaseAndWhitespace(t *testing.T) {
	assert.True(t, IsPurchase(domain.Visit{Action: "Acheter"}))
	assert.True(t, IsPurchase(domain.Visit{Action: " acheter "}))
	assert.True(t, IsPurchase(domain.Visit{Action: "ACHETER"}))
	assert.False(t, IsPurchase(domain.Visit{Action: "Visite"}))
	assert.False(t, IsPurchase(domain.Visit{Action: ""}))
}

func TestPurchaseUnitsFallback(t *testing.T) {
	assert.Equal(t, 4, PurchaseUnits(domain.Visit{Quantity: 4}))
	assert.Equal(t, 1, PurchaseUnits(domain.Visit{Quantity: 0}))
	assert.Equal(t, 1, PurchaseUnits(domain.Visit{Quantity: -2}))
}
