package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOccurrenceDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *time.Time
	}{
		{"single digit month and hour", "5/2/1995 0:00:00", tptr(1995, time.May, 2, 0, 0)},
		{"double digit month and day", "11/30/2011 0:00:00", tptr(2011, time.November, 30, 0, 0)},
		{"nonzero time of day", "4/18/1950 13:45:00", tptr(1950, time.April, 18, 13, 45)},
		{"surrounding whitespace", " 5/2/1995 0:00:00 ", tptr(1995, time.May, 2, 0, 0)},
		{"empty string", "", nil},
		{"date only", "5/2/1995", nil},
		{"ISO format", "1995-05-02T00:00:00Z", nil},
		{"garbage", "not a date", nil},
		{"impossible day", "2/30/1995 0:00:00", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseOccurrenceDate(tt.input)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.expected, *got)
		})
	}
}

func TestParseRecord(t *testing.T) {
	t.Run("complete row", func(t *testing.T) {
		rec := ParseRecord(RawRecord{
			BeginDate:         "5/2/1995 0:00:00",
			EventType:         "TORNADO",
			Fatalities:        "1",
			Injuries:          "10",
			PropertyDamage:    "25",
			PropertyDamageExp: "K",
			CropDamage:        "0",
			CropDamageExp:     "",
		})

		require.NotNil(t, rec.OccurrenceDate)
		assert.Equal(t, time.Date(1995, time.May, 2, 0, 0, 0, 0, time.UTC), *rec.OccurrenceDate)
		assert.Equal(t, "TORNADO", rec.EventType)
		assert.Equal(t, 1.0, rec.Fatalities)
		assert.Equal(t, 10.0, rec.Injuries)
		require.NotNil(t, rec.PropertyDamageMantissa)
		assert.Equal(t, 25.0, *rec.PropertyDamageMantissa)
		assert.Equal(t, "K", rec.PropertyDamageExp)
		require.NotNil(t, rec.CropDamageMantissa)
		assert.Equal(t, 0.0, *rec.CropDamageMantissa)
		assert.Empty(t, rec.CropDamageExp)
		assert.Nil(t, rec.PropertyDamage)
		assert.Nil(t, rec.CropDamage)
	})

	t.Run("noisy row never errors", func(t *testing.T) {
		rec := ParseRecord(RawRecord{
			BeginDate:         "soon",
			EventType:         "  HAIL ",
			Fatalities:        "none",
			Injuries:          "",
			PropertyDamage:    "n/a",
			PropertyDamageExp: " ? ",
			CropDamage:        "",
			CropDamageExp:     "K",
		})

		assert.Nil(t, rec.OccurrenceDate)
		assert.Equal(t, "HAIL", rec.EventType)
		assert.Equal(t, 0.0, rec.Fatalities)
		assert.Equal(t, 0.0, rec.Injuries)
		assert.Nil(t, rec.PropertyDamageMantissa)
		assert.Equal(t, "?", rec.PropertyDamageExp)
		assert.Nil(t, rec.CropDamageMantissa)
		assert.Equal(t, "K", rec.CropDamageExp)
	})

	t.Run("missing mantissa stays distinguishable from zero", func(t *testing.T) {
		withZero := ParseRecord(RawRecord{PropertyDamage: "0"})
		withBlank := ParseRecord(RawRecord{PropertyDamage: ""})

		require.NotNil(t, withZero.PropertyDamageMantissa)
		assert.Equal(t, 0.0, *withZero.PropertyDamageMantissa)
		assert.Nil(t, withBlank.PropertyDamageMantissa)
	})
}

func tptr(year int, month time.Month, day, hour, minute int) *time.Time {
	t := time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
	return &t
}
