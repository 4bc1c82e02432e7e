package handler

import (
	"net/http/httptest"
	"testing"
	"time"

	"fieldsales-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindowsDefaultsToThisMonth(t *testing.T) {
	r := httptest.NewRequest("GET", "/dashboard/kpis", nil)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	current, previous, err := parseWindows(r, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), current.Start)
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), previous.Start)
}

func TestParseWindowsCustomRange(t *testing.T) {
	r := httptest.NewRequest("GET", "/dashboard/kpis?startDate=2025-03-01&endDate=2025-03-10", nil)

	current, previous, err := parseWindows(r, time.Now())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), current.Start)
	// end date is inclusive, so the window closes at the next midnight
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), current.End)
	assert.Equal(t, current.Start, previous.End)
	assert.Equal(t, current.Duration(), previous.Duration())
}

func TestParseWindowsRejectsBadInput(t *testing.T) {
	_, _, err := parseWindows(httptest.NewRequest("GET", "/x?period=next-century", nil), time.Now())
	assert.Error(t, err)

	_, _, err = parseWindows(httptest.NewRequest("GET", "/x?startDate=03/01/2025&endDate=2025-03-10", nil), time.Now())
	assert.Error(t, err)
}

func TestParseFilter(t *testing.T) {
	r := httptest.NewRequest("GET", "/x?city=Lyon&salesperson=amina@acme.fr&gamme=Haute,%20Moyenne,", nil)

	f := parseFilter(r)
	assert.Equal(t, "Lyon", f.City)
	assert.Equal(t, "amina@acme.fr", f.Salesperson)
	assert.Equal(t, []domain.Gamme{domain.Gamme("Haute"), domain.Gamme("Moyenne")}, f.Gammes)
}
