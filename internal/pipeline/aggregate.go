package pipeline

import (
	"sort"
	"time"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
)

// defaultWindowYears is the trailing span used when no explicit window start
// is configured. Early decades of the storm database are sparse enough to
// skew per-type totals, so the analysis defaults to the most recent 20 years.
const defaultWindowYears = 20

// DeriveWindowStart returns the default recency cutoff: 20 years before the
// latest parseable occurrence date in the dataset. Returns the zero time when
// no record carries a date, which makes the window unbounded.
func DeriveWindowStart(records []domain.StormRecord) time.Time {
	var latest time.Time
	for _, rec := range records {
		if rec.OccurrenceDate != nil && rec.OccurrenceDate.After(latest) {
			latest = *rec.OccurrenceDate
		}
	}
	if latest.IsZero() {
		return time.Time{}
	}
	return latest.AddDate(-defaultWindowYears, 0, 0)
}

// Aggregate restricts records to occurrenceDate >= windowStart, groups them
// by exact event-type label, and sums the four impact measures. Nil damage
// values contribute zero to their sum; the row's casualties still count.
// Rows without a parseable date never qualify for the window.
//
// Output is sorted by event type so repeated runs produce identical
// artifacts. Consumers must not rely on the order.
func Aggregate(records []domain.StormRecord, windowStart time.Time) ([]domain.EventTotals, int) {
	groups := make(map[string]*domain.EventTotals)
	inWindow := 0

	for _, rec := range records {
		if rec.OccurrenceDate == nil || rec.OccurrenceDate.Before(windowStart) {
			continue
		}
		inWindow++

		totals, ok := groups[rec.EventType]
		if !ok {
			totals = &domain.EventTotals{EventType: rec.EventType}
			groups[rec.EventType] = totals
		}
		totals.Injuries += rec.Injuries
		totals.Fatalities += rec.Fatalities
		if rec.PropertyDamage != nil {
			totals.PropertyDamage += *rec.PropertyDamage
		}
		if rec.CropDamage != nil {
			totals.CropDamage += *rec.CropDamage
		}
	}

	out := make([]domain.EventTotals, 0, len(groups))
	for _, totals := range groups {
		out = append(out, *totals)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventType < out[j].EventType })

	return out, inWindow
}
