package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	strftime "github.com/ncruces/go-strftime"
)

// Table writes a sequence of CombinedData rows as tab-separated text, one
// row per day per HFT, with a configurable date column honoring an
// instruction-file strftime pattern.
type Table struct {
	w          io.Writer
	epoch      time.Time
	dateFormat string
	wroteHeader bool
}

// NewTable creates a writer that renders day numbers as dates starting
// from epoch, formatted with the given strftime pattern (e.g. "%Y-%m-%d").
// An empty dateFormat falls back to the raw day-of-run integer.
func NewTable(w io.Writer, epoch time.Time, dateFormat string) *Table {
	return &Table{w: w, epoch: epoch, dateFormat: dateFormat}
}

var columns = []string{
	"date", "hft", "inddens", "massdens", "bodyfat", "age_years",
	"expenditure", "offspring", "bound_nitrogen",
	"habitat_total_mass", "habitat_avg_digestibility",
	"air_temperature", "snow_depth",
}

// WriteRow appends one day's CombinedData as one TSV row per HFT (sorted
// by name for deterministic output), writing the header on first use.
func (t *Table) WriteRow(c CombinedData) error {
	if !t.wroteHeader {
		if _, err := fmt.Fprintln(t.w, strings.Join(columns, "\t")); err != nil {
			return err
		}
		t.wroteHeader = true
	}

	names := make([]string, 0, len(c.ByHFT))
	for name := range c.ByHFT {
		names = append(names, name)
	}
	sort.Strings(names)

	dateStr := t.formatDate(c.Day)
	for _, name := range names {
		d := c.ByHFT[name]
		row := []string{
			dateStr, name,
			formatFloat(d.Density), formatFloat(d.MassDensity), formatFloat(d.BodyFat),
			formatFloat(d.AgeYears), formatFloat(d.Expenditure), formatFloat(d.Offspring),
			formatFloat(d.BoundNitrogen),
			formatFloat(c.Habitat.TotalMass), formatFloat(c.Habitat.AvgDigestibility),
			formatFloat(c.Habitat.AirTemperatureC), formatFloat(c.Habitat.SnowDepthCm),
		}
		if _, err := fmt.Fprintln(t.w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) formatDate(day int) string {
	if t.dateFormat == "" {
		return fmt.Sprintf("%d", day)
	}
	date := t.epoch.AddDate(0, 0, day)
	return strftime.Format(t.dateFormat, date)
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.6g", v)
}

// SummaryLine renders a human-readable one-line summary of a day's total
// standing forage mass and total herbivore mass density, for slog
// messages and the CLI's progress output.
func SummaryLine(c CombinedData) string {
	var totalMassDensity float64
	for _, d := range c.ByHFT {
		totalMassDensity += d.MassDensity
	}
	return fmt.Sprintf("day %d: forage=%s herbivore_mass=%s/km²",
		c.Day,
		humanize.SIWithDigits(c.Habitat.TotalMass, 1, "kgDM/km²"),
		humanize.SIWithDigits(totalMassDensity, 1, "kg"),
	)
}
