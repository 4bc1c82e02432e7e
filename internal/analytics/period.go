package analytics

import (
	"errors"
	"time"
)

// Named periods accepted by the dashboard.
const (
	PeriodThisMonth   = "this-month"
	PeriodLastMonth   = "last-month"
	PeriodLastQuarter = "last-quarter"
	PeriodThisYear    = "this-year"
)

var ErrUnknownPeriod = errors.New("unknown period")

// Window is a half-open time range [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// ResolvePeriod turns a named period into its current window and the
// symmetric immediately-preceding window of matching semantics.
func ResolvePeriod(name string, now time.Time) (current, previous Window, err error) {
	y, m, _ := now.Date()
	loc := now.Location()
	monthStart := time.Date(y, m, 1, 0, 0, 0, 0, loc)

	switch name {
	case PeriodThisMonth:
		current = Window{Start: monthStart, End: monthStart.AddDate(0, 1, 0)}
		previous = Window{Start: monthStart.AddDate(0, -1, 0), End: monthStart}
	case PeriodLastMonth:
		current = Window{Start: monthStart.AddDate(0, -1, 0), End: monthStart}
		previous = Window{Start: monthStart.AddDate(0, -2, 0), End: monthStart.AddDate(0, -1, 0)}
	case PeriodLastQuarter:
		qStart := quarterStart(now)
		current = Window{Start: qStart.AddDate(0, -3, 0), End: qStart}
		previous = Window{Start: qStart.AddDate(0, -6, 0), End: qStart.AddDate(0, -3, 0)}
	case PeriodThisYear:
		yearStart := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		current = Window{Start: yearStart, End: yearStart.AddDate(1, 0, 0)}
		previous = Window{Start: yearStart.AddDate(-1, 0, 0), End: yearStart}
	default:
		err = ErrUnknownPeriod
	}
	return current, previous, err
}

// CustomPeriod builds windows for an explicit start/end range. End is
// inclusive at day granularity. The previous window spans the same
// duration immediately before the start, with no gap.
func CustomPeriod(start, end time.Time) (current, previous Window) {
	current = Window{Start: start, End: end.AddDate(0, 0, 1)}
	d := current.Duration()
	previous = Window{Start: start.Add(-d), End: start}
	return current, previous
}

func quarterStart(now time.Time) time.Time {
	y, m, _ := now.Date()
	qm := time.Month(((int(m)-1)/3)*3 + 1)
	return time.Date(y, qm, 1, 0, 0, 0, 0, now.Location())
}
