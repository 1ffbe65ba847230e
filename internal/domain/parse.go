package domain

import (
	"strconv"
	"strings"
	"time"
)

// beginDateLayout matches the storm database BGN_DATE format,
// e.g. "5/2/1995 0:00:00". Month, day, and hour are not zero-padded.
const beginDateLayout = "1/2/2006 15:04:05"

// ParseRecord converts a raw projected row into a typed StormRecord.
// The conversion is total: bad timestamps become nil dates, bad counts become
// zero, bad mantissas become nil. A single noisy row must never abort the
// run; structural problems are caught earlier, at load time.
func ParseRecord(raw RawRecord) StormRecord {
	return StormRecord{
		OccurrenceDate:         ParseOccurrenceDate(raw.BeginDate),
		EventType:              strings.TrimSpace(raw.EventType),
		Fatalities:             parseFloatOrZero(raw.Fatalities),
		Injuries:               parseFloatOrZero(raw.Injuries),
		PropertyDamageMantissa: parseOptionalFloat(raw.PropertyDamage),
		PropertyDamageExp:      strings.TrimSpace(raw.PropertyDamageExp),
		CropDamageMantissa:     parseOptionalFloat(raw.CropDamage),
		CropDamageExp:          strings.TrimSpace(raw.CropDamageExp),
	}
}

// ParseOccurrenceDate parses a BGN_DATE timestamp. Returns nil on failure
// rather than an error; unparseable dates are expected in the source data.
func ParseOccurrenceDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(beginDateLayout, s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseOptionalFloat parses a string as float64, returning nil when the value
// is absent or malformed. Used for damage mantissas, where missing must stay
// distinguishable from zero.
func parseOptionalFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
