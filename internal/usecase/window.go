package usecase

import (
	"fmt"
	"iter"
	"time"

	"github.com/naka-gawa/pr-stats/internal/domain"
)

// isoLayout matches the UTC millisecond format used for window bounds, e.g. 2024-01-15T00:00:00.000Z.
const isoLayout = "2006-01-02T15:04:05.000Z"

// startLayouts are tried in order by ParseStart. Layouts without a zone are read as UTC.
var startLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Window is a half-open calendar-month interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// StartString returns the window start in ISO-8601 UTC form.
func (w Window) StartString() string {
	return w.Start.UTC().Format(isoLayout)
}

// EndString returns the window end in ISO-8601 UTC form.
func (w Window) EndString() string {
	return w.End.UTC().Format(isoLayout)
}

// ParseStart parses an ISO-8601 date or timestamp.
func ParseStart(s string) (time.Time, error) {
	for _, layout := range startLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: cannot parse start date %q, expected ISO-8601 such as 2024-01-15", domain.ErrInvalidInput, s)
}

// Months yields consecutive one-month windows beginning at start, as long as the
// window start is before bound. Each window begins where the previous one ended.
func Months(start, bound time.Time) iter.Seq[Window] {
	return func(yield func(Window) bool) {
		for windowStart := start; windowStart.Before(bound); {
			w := Window{Start: windowStart, End: addMonths(windowStart, 1)}
			if !yield(w) {
				return
			}
			windowStart = w.End
		}
	}
}

// addMonths adds n calendar months, clamping the day to the last day of the
// target month instead of overflowing (Jan 31 + 1 month = Feb 29 in a leap year).
func addMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
