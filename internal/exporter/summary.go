package exporter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/golaps/internal/types"
)

const (
	summaryWidth = 70
	driverWidth  = 20
)

// Table renders the human-readable top-N summary.
type Table struct {
	Color bool // Emit ANSI colours
}

// Render writes the summary table for result to w.
func (t Table) Render(w io.Writer, result types.PipelineResult) error {
	var b strings.Builder
	rule := strings.Repeat("=", summaryWidth)

	b.WriteString("\n" + rule + "\n")
	b.WriteString(t.paint(color.Bold, fmt.Sprintf("F1 LAP TIMES ANALYSIS - TOP %d DRIVERS", len(result.TopDrivers))) + "\n")
	b.WriteString(rule + "\n")
	b.WriteString(row("Rank", "Driver", "Fastest", "Average", "Laps") + "\n")
	b.WriteString(strings.Repeat("-", summaryWidth) + "\n")

	for _, d := range result.TopDrivers {
		line := row(
			strconv.Itoa(d.Rank),
			d.Driver,
			fmt.Sprintf("%.3f", Round3(d.FastestTime)),
			fmt.Sprintf("%.3f", Round3(d.AverageTime)),
			strconv.Itoa(d.LapCount),
		)
		if d.Rank == 1 {
			line = t.paint(color.Green, line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(rule + "\n")
	b.WriteString(t.paint(color.Cyan, fmt.Sprintf("Drivers analyzed: %d   Laps analyzed: %d",
		result.TotalDriversAnalyzed, result.TotalLapsAnalyzed)) + "\n\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func (t Table) paint(c color.Color, s string) string {
	if !t.Color {
		return s
	}
	return c.Sprint(s)
}

// row lays out one table line. Driver names are measured by display width so
// accented and wide characters stay aligned.
func row(rank, driver, fastest, average, laps string) string {
	driver = runewidth.Truncate(driver, driverWidth, "…")
	return fmt.Sprintf("%-6s %s %-12s %-12s %-8s",
		rank,
		runewidth.FillRight(driver, driverWidth),
		fastest,
		average,
		laps,
	)
}
