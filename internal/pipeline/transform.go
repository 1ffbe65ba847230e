package pipeline

import (
	"fmt"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
)

// ParseRows converts raw projected rows into typed records. Returns the
// records, in input order, and the number of rows whose begin date failed to
// parse (nulled, not dropped).
func ParseRows(raws []domain.RawRecord) ([]domain.StormRecord, int) {
	records := make([]domain.StormRecord, 0, len(raws))
	unparsed := 0
	for _, raw := range raws {
		rec := domain.ParseRecord(raw)
		if rec.OccurrenceDate == nil {
			unparsed++
		}
		records = append(records, rec)
	}
	return records, unparsed
}

// ValidateExponents retains only rows whose property and crop damage
// exponents are both members of the allowed set. Order is preserved. Dropped
// rows are unrecoverable downstream; the count is returned for auditing.
func ValidateExponents(records []domain.StormRecord, allowed map[string]struct{}) ([]domain.StormRecord, int) {
	kept := make([]domain.StormRecord, 0, len(records))
	for _, rec := range records {
		if !domain.ValidExponent(rec.PropertyDamageExp, allowed) {
			continue
		}
		if !domain.ValidExponent(rec.CropDamageExp, allowed) {
			continue
		}
		kept = append(kept, rec)
	}
	return kept, len(records) - len(kept)
}

// ScaleAll derives the dollar damage amounts on every record. An unknown
// exponent here means the validator let something through; that is an
// internal consistency failure and aborts the run.
func ScaleAll(records []domain.StormRecord) ([]domain.StormRecord, error) {
	scaled := make([]domain.StormRecord, 0, len(records))
	for i, rec := range records {
		s, err := domain.ScaleDamages(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		scaled = append(scaled, s)
	}
	return scaled, nil
}
