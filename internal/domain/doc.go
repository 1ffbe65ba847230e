// Package domain models rows of the NOAA National Weather Service storm
// events database and the transformations that turn them into per-event-type
// impact totals.
//
// # Data Source
//
// The storm events database is published by the NOAA National Climatic Data
// Center as a single compressed CSV covering events from 1950 onward. Each
// row is one recorded event with, among many other columns, a begin date, a
// free-text event type, casualty counts, and two damage estimates.
//
// # Damage Encoding
//
// Property and crop damage are each encoded as a mantissa column (PROPDMG,
// CROPDMG) plus a one-character exponent column (PROPDMGEXP, CROPDMGEXP):
//
//	""       mantissa is already a dollar amount (multiplier 1)
//	"K"/"k"  thousands   (×1e3)
//	"M"/"m"  millions    (×1e6)
//	"B"/"b"  billions    (×1e9)
//
// The exponent columns also contain junk in the wild: bare digits ("0"-"8"),
// "+", "-", "?". Those rows are dropped whole before scaling; the codes are
// undocumented and guessing a multiplier would silently distort the damage
// totals. This is why loading must keep every cell as text: detecting the
// exponent column as numeric would destroy the "0" vs "K" distinction.
//
// # Dates
//
// BGN_DATE is "M/D/YYYY H:MM:SS" with no zero padding, e.g. "5/2/1995
// 0:00:00". The time-of-day portion is always midnight in the source data and
// is ignored by the analysis. Unparseable dates yield a nil occurrence date;
// such rows still parse but fall outside any recency window.
//
// # Event Types
//
// EVTYPE is free text and notoriously dirty ("TSTM WIND" vs "THUNDERSTORM
// WIND" are distinct labels). No canonicalization is applied; grouping is by
// exact string match, matching the published analyses of this dataset.
package domain
