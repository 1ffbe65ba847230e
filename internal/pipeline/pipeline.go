// Package pipeline runs the storm report's single-pass batch flow:
// load, prune, validate exponents, scale damages, aggregate by event type.
// Each stage is a pure function over the previous stage's output; the
// Pipeline struct only threads logging and metrics through them.
package pipeline

import (
	"log/slog"
	"time"

	"github.com/couchcryptid/storm-impact-report/internal/dataset"
	"github.com/couchcryptid/storm-impact-report/internal/domain"
	"github.com/couchcryptid/storm-impact-report/internal/observability"
)

// Result is everything the renderer needs: the full scaled record set for the
// yearly histogram and the windowed per-type totals for the impact charts.
type Result struct {
	Records     []domain.StormRecord
	Totals      []domain.EventTotals
	WindowStart time.Time

	RowsLoaded    int
	RowsDropped   int
	DatesUnparsed int
	RowsInWindow  int
}

// Pipeline wires the transformation stages to observability.
type Pipeline struct {
	logger      *slog.Logger
	metrics     *observability.Metrics
	allowed     map[string]struct{}
	windowStart time.Time
}

// New creates a Pipeline. A zero windowStart means the cutoff is derived from
// the data once it is loaded.
func New(logger *slog.Logger, metrics *observability.Metrics, allowed map[string]struct{}, windowStart time.Time) *Pipeline {
	return &Pipeline{
		logger:      logger,
		metrics:     metrics,
		allowed:     allowed,
		windowStart: windowStart,
	}
}

// Run executes the full pass over the dataset at path. Structural failures
// (unopenable file, malformed table, missing column, exponent past the
// validator) abort with an error before any artifact is produced; row-level
// noise is dropped or nulled and counted.
func (p *Pipeline) Run(path string) (*Result, error) {
	start := domain.Now()

	df, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}

	pruned, err := dataset.Prune(df)
	if err != nil {
		return nil, err
	}

	raws := dataset.Rows(pruned)
	p.metrics.RowsLoaded.Add(float64(len(raws)))
	p.logger.Info("dataset loaded", "path", path, "rows", len(raws))

	records, unparsed := ParseRows(raws)
	p.metrics.DatesUnparsed.Add(float64(unparsed))
	if unparsed > 0 {
		p.logger.Warn("unparseable begin dates nulled", "rows", unparsed)
	}

	kept, dropped := ValidateExponents(records, p.allowed)
	p.metrics.RowsDropped.Add(float64(dropped))
	p.logger.Info("damage exponents validated", "kept", len(kept), "dropped", dropped)

	scaled, err := ScaleAll(kept)
	if err != nil {
		return nil, err
	}

	windowStart := p.windowStart
	if windowStart.IsZero() {
		windowStart = DeriveWindowStart(scaled)
		p.logger.Info("window start derived from data", "window_start", windowStart)
	}

	totals, inWindow := Aggregate(scaled, windowStart)
	p.metrics.RowsInWindow.Add(float64(inWindow))
	p.metrics.EventTypes.Set(float64(len(totals)))
	p.metrics.PipelineSeconds.Observe(domain.Now().Sub(start).Seconds())
	p.logger.Info("aggregation complete",
		"window_start", windowStart,
		"rows_in_window", inWindow,
		"event_types", len(totals),
	)

	return &Result{
		Records:       scaled,
		Totals:        totals,
		WindowStart:   windowStart,
		RowsLoaded:    len(raws),
		RowsDropped:   dropped,
		DatesUnparsed: unparsed,
		RowsInWindow:  inWindow,
	}, nil
}
