// Package report renders the aggregated storm impact data as a single HTML
// page of ECharts plots. It performs no numeric transformation beyond
// binning, sizing, and label selection.
package report

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
	"github.com/couchcryptid/storm-impact-report/internal/pipeline"
)

// Renderer turns a pipeline result into chart artifacts. The outlier
// thresholds only decide which scatter points get a text label.
type Renderer struct {
	outlierFatalities float64
	outlierInjuries   float64
}

// New creates a Renderer with the given outlier labelling thresholds.
func New(outlierFatalities, outlierInjuries float64) *Renderer {
	return &Renderer{
		outlierFatalities: outlierFatalities,
		outlierInjuries:   outlierInjuries,
	}
}

// Render writes the report page: a histogram of recorded events per year, a
// casualty scatter with labelled outliers, and a damage bubble plot.
func (r *Renderer) Render(w io.Writer, result *pipeline.Result) error {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		r.yearHistogram(result),
		r.casualtyScatter(result),
		r.damageBubbles(result),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// yearHistogram counts events per calendar year across the full record set.
// Rows without a parseable date are not binnable and are left out.
func (r *Renderer) yearHistogram(result *pipeline.Result) *charts.Bar {
	counts := make(map[int]int)
	for _, rec := range result.Records {
		if rec.OccurrenceDate == nil {
			continue
		}
		counts[rec.OccurrenceDate.Year()]++
	}

	years := make([]int, 0, len(counts))
	for year := range counts {
		years = append(years, year)
	}
	sort.Ints(years)

	labels := make([]string, 0, len(years))
	values := make([]opts.BarData, 0, len(years))
	for _, year := range years {
		labels = append(labels, fmt.Sprintf("%d", year))
		values = append(values, opts.BarData{Value: counts[year]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Recorded storm events per year",
			Subtitle: r.subtitle(result),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "events"}),
	)
	bar.SetXAxis(labels).AddSeries("events", values)
	return bar
}

// casualtyScatter plots injuries against fatalities per event type within the
// window. Points past either outlier threshold get their label drawn.
func (r *Renderer) casualtyScatter(result *pipeline.Result) *charts.Scatter {
	var regular, outliers []opts.ScatterData
	for _, tot := range result.Totals {
		point := opts.ScatterData{
			Name:       tot.EventType,
			Value:      []interface{}{tot.Injuries, tot.Fatalities},
			SymbolSize: 10,
		}
		if tot.Fatalities > r.outlierFatalities || tot.Injuries > r.outlierInjuries {
			outliers = append(outliers, point)
			continue
		}
		regular = append(regular, point)
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Casualties by event type",
			Subtitle: fmt.Sprintf("labelled above %.0f fatalities or %.0f injuries", r.outlierFatalities, r.outlierInjuries),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "injuries", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "fatalities", Type: "value"}),
	)
	scatter.AddSeries("event types", regular)
	scatter.AddSeries("outliers", outliers,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}",
			Position:  "right",
		}),
	)
	return scatter
}

// damageBubbles plots property against crop damage per event type, bubble
// area tracking the combined dollar total.
func (r *Renderer) damageBubbles(result *pipeline.Result) *charts.Scatter {
	maxTotal := 0.0
	for _, tot := range result.Totals {
		if sum := tot.PropertyDamage + tot.CropDamage; sum > maxTotal {
			maxTotal = sum
		}
	}

	points := make([]opts.ScatterData, 0, len(result.Totals))
	for _, tot := range result.Totals {
		points = append(points, opts.ScatterData{
			Name:       tot.EventType,
			Value:      []interface{}{tot.PropertyDamage, tot.CropDamage},
			SymbolSize: bubbleSize(tot.PropertyDamage+tot.CropDamage, maxTotal),
		})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Economic damage by event type",
			Subtitle: "bubble area tracks combined property and crop damage (USD)",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "property damage", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "crop damage", Type: "value"}),
	)
	scatter.AddSeries("event types", points)
	return scatter
}

// bubbleSize maps a dollar total into a pixel radius between 6 and 46.
// Square root keeps area, not radius, proportional to the total.
func bubbleSize(total, maxTotal float64) int {
	if maxTotal <= 0 || total <= 0 {
		return 6
	}
	return 6 + int(40*math.Sqrt(total/maxTotal))
}

func (r *Renderer) subtitle(result *pipeline.Result) string {
	return fmt.Sprintf("window from %s, %d rows in window, %d rows dropped, generated %s",
		result.WindowStart.Format("2006-01-02"),
		result.RowsInWindow,
		result.RowsDropped,
		domain.Now().UTC().Format("2006-01-02 15:04"),
	)
}
