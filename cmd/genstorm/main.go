// Command genstorm generates a synthetic storm events CSV for local runs and
// test fixtures. The output mimics the real dataset's noise: junk damage
// exponent codes, unparseable begin dates, and blank mantissas, at roughly
// the proportions the analysis has to tolerate.
//
// Usage:
//
//	go run ./cmd/genstorm -out data/storms_mock.csv.gz -rows 5000 -seed 1
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/couchcryptid/storm-impact-report/internal/dataset"
)

var eventTypes = []string{
	"TORNADO", "TSTM WIND", "THUNDERSTORM WIND", "HAIL", "FLOOD",
	"FLASH FLOOD", "LIGHTNING", "EXCESSIVE HEAT", "HEAT", "HIGH WIND",
	"WINTER STORM", "ICE STORM", "WILDFIRE", "RIP CURRENT", "AVALANCHE",
}

var goodExponents = []string{"", "K", "k", "M", "m", "B", "b"}
var junkExponents = []string{"?", "+", "-", "0", "5", "8", "h", "H"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "storms_mock.csv", "output path; .gz compresses")
	rows := flag.Int("rows", 10000, "number of data rows to generate")
	seed := flag.Int64("seed", 1, "PRNG seed for reproducible output")
	flag.Parse()

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	var w io.Writer = f
	var zw *gzip.Writer
	if filepath.Ext(*out) == ".gz" {
		zw = gzip.NewWriter(f)
		w = zw
	}

	if err := writeCSV(w, *rows, rand.New(rand.NewSource(*seed))); err != nil {
		return err
	}

	if zw != nil {
		if err := zw.Close(); err != nil {
			return fmt.Errorf("close gzip: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	log.Printf("wrote %d rows to %s", *rows, *out)
	return nil
}

func writeCSV(w io.Writer, rows int, rng *rand.Rand) error {
	cw := csv.NewWriter(w)

	// Real header carries many more columns than the analysis keeps; include
	// a few extras so projection gets exercised on generated data too.
	header := append([]string{"STATE"}, dataset.Columns...)
	header = append(header, "REMARKS")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	start := time.Date(1950, time.January, 1, 0, 0, 0, 0, time.UTC)
	span := int(time.Date(2011, time.November, 30, 0, 0, 0, 0, time.UTC).Sub(start).Hours() / 24)

	for i := 0; i < rows; i++ {
		row := []string{
			state(rng),
			beginDate(rng, start, span),
			eventTypes[rng.Intn(len(eventTypes))],
			count(rng, 0.05, 10),
			count(rng, 0.15, 200),
			mantissa(rng),
			exponent(rng),
			mantissa(rng),
			exponent(rng),
			"",
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// beginDate emits the dataset's M/D/YYYY H:MM:SS format; about 1 in 500 rows
// gets a deliberately broken date.
func beginDate(rng *rand.Rand, start time.Time, spanDays int) string {
	if rng.Intn(500) == 0 {
		return "??/??/????"
	}
	d := start.AddDate(0, 0, rng.Intn(spanDays))
	return fmt.Sprintf("%d/%d/%d 0:00:00", d.Month(), d.Day(), d.Year())
}

// count returns "0" most of the time; with probability p it is 1..max.
func count(rng *rand.Rand, p float64, max int) string {
	if rng.Float64() >= p {
		return "0"
	}
	return strconv.Itoa(1 + rng.Intn(max))
}

// mantissa is blank for about a tenth of rows, otherwise a small decimal.
func mantissa(rng *rand.Rand) string {
	if rng.Intn(10) == 0 {
		return ""
	}
	return strconv.FormatFloat(float64(rng.Intn(10000))/10, 'f', -1, 64)
}

// exponent is a valid code most of the time and junk for about 3% of rows,
// mirroring the real data's dirt level.
func exponent(rng *rand.Rand) string {
	if rng.Intn(33) == 0 {
		return junkExponents[rng.Intn(len(junkExponents))]
	}
	return goodExponents[rng.Intn(len(goodExponents))]
}

func state(rng *rand.Rand) string {
	states := []string{"TX", "OK", "KS", "MO", "IA", "AL", "FL", "IL"}
	return states[rng.Intn(len(states))]
}
