package main

import (
	"context"
	"fmt"

	"spacex-dash/logging"
)

// AllSites is the site selector value meaning "do not filter by site".
const AllSites = "ALL"

const (
	allSitesTitle = "Launch Outcome, All Launch Sites"
	payloadAxis   = "Payload Mass (kg)"
	classAxis     = "class"
)

// Querier answers the questions the charts ask of the launch records.
// Implementations must be read-only and return groups in first-appearance order.
type Querier interface {
	SuccessesBySite(ctx context.Context) ([]Slice, error)
	OutcomesAtSite(ctx context.Context, site string) ([]Slice, error)
	PayloadWindow(ctx context.Context, lo, hi float64, site string) ([]LaunchRecord, error)
}

// Figure is the chart description sent to the browser.
type Figure struct {
	Kind   string   `json:"kind"`
	Title  string   `json:"title"`
	Slices []Slice  `json:"slices,omitempty"`
	Series []Series `json:"series,omitempty"`
	XLabel string   `json:"x_label,omitempty"`
	YLabel string   `json:"y_label,omitempty"`
}

type Slice struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

type Point struct {
	X float64 `json:"x"`
	Y int     `json:"y"`
}

func outcomeLabel(class int) string {
	if class == 1 {
		return "Success"
	}
	return "Failure"
}

// PieChart builds the launch outcome pie for the selected site.
//
// For AllSites every slice is the number of successful launches at one site.
// For a single site the rows are split into Success and Failure; each row weighs
// class+1 so that failures still get a visible slice.
func PieChart(ctx context.Context, q Querier, site string) (Figure, error) {
	log := logging.New("charts")

	if site == AllSites {
		slices, err := q.SuccessesBySite(ctx)
		if err != nil {
			return Figure{}, fmt.Errorf("successes by site: %w", err)
		}
		log.Debug("pie chart", "site", site, "slices", len(slices))
		return Figure{Kind: "pie", Title: allSitesTitle, Slices: slices}, nil
	}

	slices, err := q.OutcomesAtSite(ctx, site)
	if err != nil {
		return Figure{}, fmt.Errorf("outcomes at %s: %w", site, err)
	}
	log.Debug("pie chart", "site", site, "slices", len(slices))
	return Figure{
		Kind:   "pie",
		Title:  fmt.Sprintf("Launch Outcome at Launch Site %s", site),
		Slices: slices,
	}, nil
}

// ScatterChart plots outcome against payload for launches inside [lo, hi],
// one series per booster version category.
//
// The title does not change with the selected site.
func ScatterChart(ctx context.Context, q Querier, lo, hi float64, site string) (Figure, error) {
	log := logging.New("charts")

	rows, err := q.PayloadWindow(ctx, lo, hi, site)
	if err != nil {
		return Figure{}, fmt.Errorf("payload window [%g, %g]: %w", lo, hi, err)
	}
	log.Debug("scatter chart", "min", lo, "max", hi, "site", site, "rows", len(rows))

	pos := make(map[string]int)
	var series []Series
	for _, r := range rows {
		i, ok := pos[r.BoosterVersionCategory]
		if !ok {
			i = len(series)
			pos[r.BoosterVersionCategory] = i
			series = append(series, Series{Name: r.BoosterVersionCategory})
		}
		series[i].Points = append(series[i].Points, Point{X: r.PayloadMassKg, Y: r.Class})
	}

	return Figure{
		Kind:   "scatter",
		Title:  allSitesTitle,
		Series: series,
		XLabel: payloadAxis,
		YLabel: classAxis,
	}, nil
}
