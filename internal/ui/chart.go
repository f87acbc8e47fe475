package ui

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

const barChartChar = "▇"

// Bar is one labelled value of a horizontal bar chart.
type Bar struct {
	Label string
	Value int
}

// PrintBarChart renders bars under a coloured title. Nothing is written when
// every bar is zero.
func PrintBarChart(w io.Writer, title string, bars []Bar) error {
	var (
		pbars pterm.Bars
		total int
	)

	for _, b := range bars {
		total += b.Value

		pbars = append(pbars, pterm.Bar{
			Label: b.Label,
			Value: b.Value,
		})
	}

	if total == 0 {
		return nil
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(pbars).
		Srender()
	if err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}

	_, err = fmt.Fprintf(w, "%s\n%s\n", Blue(title), chart)

	return err
}
