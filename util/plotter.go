package util

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"evently/models"
)

// CountEventsPerDay groups events by local calendar date, sorted by date.
func CountEventsPerDay(events []models.Event) ([]string, []int) {
	counts := make(map[string]int)
	for _, e := range events {
		counts[e.Dates.Start.LocalDate]++
	}

	days := make([]string, 0, len(counts))
	for d := range counts {
		days = append(days, d)
	}
	sort.Strings(days)

	values := make([]int, len(days))
	for i, d := range days {
		values[i] = counts[d]
	}
	return days, values
}

// PlotEventsPerDay renders an HTML bar chart of how many loaded events fall on each day.
func PlotEventsPerDay(w io.Writer, title string, events []models.Event) error {
	days, values := CountEventsPerDay(events)

	data := make([]opts.BarData, len(values))
	for i, v := range values {
		data[i] = opts.BarData{Value: v}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Events per day",
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%d events loaded", len(events)),
		}),
	)

	bar.SetXAxis(days).AddSeries("Events", data,
		charts.WithLabelOpts(opts.Label{
			Show: opts.Bool(true),
		}),
	)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
