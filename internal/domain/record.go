package domain

import "time"

// RawRecord holds the eight projected columns of one storm database row,
// exactly as they appear in the CSV. Everything stays a string at this layer;
// numeric-looking exponent codes like "0" must not be coerced before the
// allowed-set check runs.
type RawRecord struct {
	BeginDate         string
	EventType         string
	Fatalities        string
	Injuries          string
	PropertyDamage    string
	PropertyDamageExp string
	CropDamage        string
	CropDamageExp     string
}

// StormRecord is the typed representation of one storm event row.
// Optional fields are pointers: nil means the source value was missing or
// unparseable, which is distinct from zero everywhere damage sums are
// concerned.
type StormRecord struct {
	OccurrenceDate *time.Time
	EventType      string
	Fatalities     float64
	Injuries       float64

	PropertyDamageMantissa *float64
	PropertyDamageExp      string
	CropDamageMantissa     *float64
	CropDamageExp          string

	// Derived by ScaleDamages: mantissa × multiplier(exp), nil when the
	// mantissa is nil.
	PropertyDamage *float64
	CropDamage     *float64
}

// EventTotals is the per-event-type sum of human and economic impact measures
// within the recency window. Built once, read-only afterwards.
type EventTotals struct {
	EventType      string
	Injuries       float64
	Fatalities     float64
	PropertyDamage float64
	CropDamage     float64
}
