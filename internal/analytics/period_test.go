package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePeriodThisMonth(t *testing.T) {
	cur, prev, err := ResolvePeriod(PeriodThisMonth, testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), cur.Start)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), cur.End)
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), prev.Start)
	assert.Equal(t, cur.Start, prev.End)
}

func TestResolvePeriodLastMonth(t *testing.T) {
	cur, prev, err := ResolvePeriod(PeriodLastMonth, testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), cur.Start)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), cur.End)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), prev.Start)
}

func TestResolvePeriodLastQuarter(t *testing.T) {
	cur, prev, err := ResolvePeriod(PeriodLastQuarter, testNow)
	require.NoError(t, err)
	// testNow falls in Q2 2025, so last quarter is Q1.
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), cur.Start)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), cur.End)
	assert.Equal(t, time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), prev.Start)
}

func TestResolvePeriodThisYear(t *testing.T) {
	cur, prev, err := ResolvePeriod(PeriodThisYear, testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), cur.Start)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), cur.End)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), prev.Start)
}

func TestResolvePeriodUnknown(t *testing.T) {
	_, _, err := ResolvePeriod("fortnight", testNow)
	assert.ErrorIs(t, err, ErrUnknownPeriod)
}

func TestCustomPeriodPreviousIsContiguous(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 19, 0, 0, 0, 0, time.UTC)
	cur, prev := CustomPeriod(start, end)

	assert.Equal(t, start, cur.Start)
	assert.Equal(t, end.AddDate(0, 0, 1), cur.End)
	assert.Equal(t, cur.Duration(), prev.Duration())
	assert.Equal(t, cur.Start, prev.End)
}

func TestWindowContainsIsHalfOpen(t *testing.T) {
	w := Window{Start: daysAgo(10), End: testNow}
	assert.True(t, w.Contains(w.Start))
	assert.False(t, w.Contains(w.End))
	assert.True(t, w.Contains(daysAgo(5)))
}
