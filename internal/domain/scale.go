package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownExponent reports a damage exponent code that reached the scaler
// without being filtered by the validator. It indicates an internal
// consistency bug, not bad input data, and aborts the run.
var ErrUnknownExponent = errors.New("unknown damage exponent")

// multipliers maps allowed non-empty exponent codes to their power-of-ten
// factor. The empty code means the mantissa is already a dollar amount.
var multipliers = map[string]float64{
	"K": 1e3, "k": 1e3,
	"M": 1e6, "m": 1e6,
	"B": 1e9, "b": 1e9,
}

// DefaultExponents is the allowed exponent code set. Rows carrying any other
// code (digits, "+", "?", ...) are dropped by the validator rather than
// guessed at.
func DefaultExponents() map[string]struct{} {
	return map[string]struct{}{
		"": {}, "K": {}, "k": {}, "M": {}, "m": {}, "B": {}, "b": {},
	}
}

// ScaleDamage converts a (mantissa, exponent) pair into a dollar amount.
// A nil mantissa or empty exponent returns the mantissa unchanged, covering
// "value intentionally absent" and "no exponent" uniformly. The nil check
// runs first, so a stray exponent on a missing mantissa is not an error.
func ScaleDamage(mantissa *float64, exp string) (*float64, error) {
	if mantissa == nil || exp == "" {
		return mantissa, nil
	}
	mult, ok := multipliers[exp]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExponent, exp)
	}
	scaled := *mantissa * mult
	return &scaled, nil
}

// ScaleDamages derives the property and crop dollar amounts on a record.
// The input record is not mutated.
func ScaleDamages(rec StormRecord) (StormRecord, error) {
	prop, err := ScaleDamage(rec.PropertyDamageMantissa, rec.PropertyDamageExp)
	if err != nil {
		return StormRecord{}, fmt.Errorf("scale property damage: %w", err)
	}
	crop, err := ScaleDamage(rec.CropDamageMantissa, rec.CropDamageExp)
	if err != nil {
		return StormRecord{}, fmt.Errorf("scale crop damage: %w", err)
	}
	rec.PropertyDamage = prop
	rec.CropDamage = crop
	return rec, nil
}

// ValidExponent reports whether exp is a member of the allowed code set.
func ValidExponent(exp string, allowed map[string]struct{}) bool {
	_, ok := allowed[exp]
	return ok
}
