package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestDeriveWindowStart(t *testing.T) {
	t.Run("twenty years before latest date", func(t *testing.T) {
		got := DeriveWindowStart([]domain.StormRecord{
			{OccurrenceDate: datePtr(1950, time.April, 18)},
			{OccurrenceDate: datePtr(2011, time.November, 30)},
			{OccurrenceDate: nil},
		})
		assert.Equal(t, time.Date(1991, time.November, 30, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("no dates means unbounded window", func(t *testing.T) {
		got := DeriveWindowStart([]domain.StormRecord{{OccurrenceDate: nil}})
		assert.True(t, got.IsZero())
	})
}

func TestAggregate(t *testing.T) {
	windowStart := time.Date(1995, time.January, 1, 0, 0, 0, 0, time.UTC)

	t.Run("example tornado row", func(t *testing.T) {
		totals, inWindow := Aggregate([]domain.StormRecord{{
			OccurrenceDate: datePtr(1995, time.May, 2),
			EventType:      "TORNADO",
			Fatalities:     1,
			Injuries:       10,
			PropertyDamage: f64(25000),
			CropDamage:     f64(0),
		}}, windowStart)

		require.Len(t, totals, 1)
		assert.Equal(t, 1, inWindow)
		assert.Equal(t, domain.EventTotals{
			EventType:      "TORNADO",
			Injuries:       10,
			Fatalities:     1,
			PropertyDamage: 25000,
			CropDamage:     0,
		}, totals[0])
	})

	t.Run("rows before the window are excluded", func(t *testing.T) {
		totals, inWindow := Aggregate([]domain.StormRecord{
			{OccurrenceDate: datePtr(1994, time.December, 31), EventType: "TORNADO", Injuries: 5},
			{OccurrenceDate: datePtr(1995, time.January, 1), EventType: "TORNADO", Injuries: 7},
		}, windowStart)

		require.Len(t, totals, 1)
		assert.Equal(t, 1, inWindow)
		assert.Equal(t, 7.0, totals[0].Injuries)
	})

	t.Run("nil dates never qualify", func(t *testing.T) {
		totals, inWindow := Aggregate([]domain.StormRecord{
			{OccurrenceDate: nil, EventType: "HAIL", Injuries: 3},
		}, windowStart)

		assert.Empty(t, totals)
		assert.Zero(t, inWindow)
	})

	t.Run("nil damage contributes zero but casualties still count", func(t *testing.T) {
		totals, _ := Aggregate([]domain.StormRecord{
			{OccurrenceDate: datePtr(2000, time.June, 1), EventType: "HEAT", Fatalities: 12, Injuries: 4},
		}, windowStart)

		require.Len(t, totals, 1)
		assert.Equal(t, 12.0, totals[0].Fatalities)
		assert.Equal(t, 4.0, totals[0].Injuries)
		assert.Zero(t, totals[0].PropertyDamage)
		assert.Zero(t, totals[0].CropDamage)
	})

	t.Run("exact-match grouping, no canonicalization", func(t *testing.T) {
		totals, _ := Aggregate([]domain.StormRecord{
			{OccurrenceDate: datePtr(2000, time.June, 1), EventType: "TSTM WIND", Injuries: 1},
			{OccurrenceDate: datePtr(2000, time.June, 2), EventType: "THUNDERSTORM WIND", Injuries: 1},
		}, windowStart)

		assert.Len(t, totals, 2)
	})

	t.Run("injury conservation across groups", func(t *testing.T) {
		records := []domain.StormRecord{
			{OccurrenceDate: datePtr(1996, time.March, 1), EventType: "TORNADO", Injuries: 10},
			{OccurrenceDate: datePtr(1997, time.April, 2), EventType: "HAIL", Injuries: 2},
			{OccurrenceDate: datePtr(1998, time.May, 3), EventType: "TORNADO", Injuries: 8},
			{OccurrenceDate: datePtr(1990, time.May, 3), EventType: "TORNADO", Injuries: 100}, // pre-window
		}

		totals, inWindow := Aggregate(records, windowStart)

		var inputSum, outputSum float64
		for _, rec := range records {
			if rec.OccurrenceDate != nil && !rec.OccurrenceDate.Before(windowStart) {
				inputSum += rec.Injuries
			}
		}
		for _, tot := range totals {
			outputSum += tot.Injuries
		}

		assert.Equal(t, inputSum, outputSum)
		assert.Equal(t, 3, inWindow)
	})

	t.Run("deterministic output", func(t *testing.T) {
		records := []domain.StormRecord{
			{OccurrenceDate: datePtr(2000, time.June, 1), EventType: "ZZZ", Injuries: 1},
			{OccurrenceDate: datePtr(2000, time.June, 1), EventType: "AAA", Injuries: 2},
			{OccurrenceDate: datePtr(2000, time.June, 1), EventType: "MMM", Injuries: 3},
		}

		first, _ := Aggregate(records, windowStart)
		second, _ := Aggregate(records, windowStart)

		assert.Equal(t, first, second)
		require.Len(t, first, 3)
		assert.Equal(t, "AAA", first[0].EventType)
		assert.Equal(t, "MMM", first[1].EventType)
		assert.Equal(t, "ZZZ", first[2].EventType)
	})
}
