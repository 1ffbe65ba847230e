// Package dataset loads the storm events CSV into an all-string dataframe and
// projects it down to the columns the analysis needs.
package dataset

import (
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/klauspost/compress/gzip"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
)

// ErrMissingColumn reports a required column absent from the loaded table.
var ErrMissingColumn = errors.New("required column missing")

// Columns is the projection whitelist, in output order. Names are
// case-sensitive and must match the source header exactly.
var Columns = []string{
	"BGN_DATE",
	"EVTYPE",
	"FATALITIES",
	"INJURIES",
	"PROPDMG",
	"PROPDMGEXP",
	"CROPDMG",
	"CROPDMGEXP",
}

// Load reads a CSV file, transparently decompressing .gz and .bz2, into a
// dataframe. Type detection is disabled so every cell stays a string;
// exponent codes like "0" must not be coerced to numbers before validation.
func Load(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r, err := decompressed(f, path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("decompress dataset: %w", err)
	}

	return Read(r)
}

// Read loads a CSV stream into an all-string dataframe.
func Read(r io.Reader) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return df, fmt.Errorf("parse dataset: %w", df.Err)
	}
	return df, nil
}

// decompressed wraps the reader in the decoder matching the file extension.
func decompressed(f *os.File, path string) (io.Reader, error) {
	switch filepath.Ext(path) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		return zr, nil
	case ".bz2":
		return bzip2.NewReader(f), nil
	default:
		return f, nil
	}
}

// Prune projects the table down to Columns, in that order. Row count and row
// order are unchanged. Returns ErrMissingColumn naming the first absent
// column rather than gota's generic selection error.
func Prune(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	present := make(map[string]struct{}, len(df.Names()))
	for _, name := range df.Names() {
		present[name] = struct{}{}
	}
	for _, col := range Columns {
		if _, ok := present[col]; !ok {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	pruned := df.Select(Columns)
	if pruned.Err != nil {
		return pruned, fmt.Errorf("project columns: %w", pruned.Err)
	}
	return pruned, nil
}

// Rows converts a pruned dataframe into raw records, one per data row,
// preserving order. The dataframe must have the Columns layout.
func Rows(df dataframe.DataFrame) []domain.RawRecord {
	records := df.Records()
	if len(records) < 2 {
		return nil
	}

	out := make([]domain.RawRecord, 0, len(records)-1)
	for _, row := range records[1:] {
		out = append(out, domain.RawRecord{
			BeginDate:         row[0],
			EventType:         row[1],
			Fatalities:        row[2],
			Injuries:          row[3],
			PropertyDamage:    row[4],
			PropertyDamageExp: row[5],
			CropDamage:        row[6],
			CropDamageExp:     row[7],
		})
	}
	return out
}
