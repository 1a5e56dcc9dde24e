package habitat

import (
	"fmt"
	"os"
	"sort"

	"github.com/gocarina/gocsv"

	"github.com/savanna-sim/megafauna/internal/forage"
)

// ForcingRow is one day of externally-supplied forage/weather forcing, in
// the shape a host feeds via --forcing-csv: day-indexed
// (digestibility, grass_mass, fpc, air_temperature, snow_depth).
type ForcingRow struct {
	DayOfYear        int     `csv:"day_of_year"`
	GrassMassKgKm2   float64 `csv:"grass_mass"`
	Digestibility    float64 `csv:"digestibility"`
	FPC              float64 `csv:"fpc"`
	AirTemperatureC  float64 `csv:"air_temperature"`
	SnowDepthCm      float64 `csv:"snow_depth"`
}

// CSVForcing is a Habitat backed by a pre-recorded day-indexed table.
// A day past the table's last recorded day reuses that last row, so a run
// reaching beyond the recorded days still has forage every day.
type CSVForcing struct {
	rows    []ForcingRow
	byDay   map[int]ForcingRow
	current forage.HabitatForage
	env     Environment
	lastDay int
}

// LoadCSVForcing reads a forcing table from path, grounded on the shape
// of gocsv's unmarshal-into-tagged-struct usage, and indexes it by day
// of year. Rows need not be contiguous or sorted; AvailableForage at a
// day absent from the table carries forward the nearest earlier day.
func LoadCSVForcing(path string) (*CSVForcing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("habitat: open forcing csv: %w", err)
	}
	defer f.Close()

	var rows []ForcingRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("habitat: parse forcing csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("habitat: forcing csv %q has no rows", path)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].DayOfYear < rows[j].DayOfYear })

	byDay := make(map[int]ForcingRow, len(rows))
	for _, r := range rows {
		byDay[r.DayOfYear] = r
	}
	return &CSVForcing{rows: rows, byDay: byDay}, nil
}

// InitDay looks up dayOfYear's row, falling back to the nearest earlier
// recorded day when the exact day is missing; a day before every recorded
// day wraps to the table's last row.
func (c *CSVForcing) InitDay(dayOfYear int) error {
	row, ok := c.byDay[dayOfYear]
	if !ok {
		row = c.nearestEarlier(dayOfYear)
	}
	c.lastDay = dayOfYear

	var massVec, digVec, fpcVec forage.Vector
	massVec = massVec.Set(forage.Grass, row.GrassMassKgKm2)
	digVec = digVec.Set(forage.Grass, row.Digestibility)
	fpcVec = fpcVec.Set(forage.Grass, row.FPC)

	c.current = forage.HabitatForage{Mass: massVec, Digestibility: digVec, FPC: fpcVec}
	if err := c.current.Validate(); err != nil {
		return fmt.Errorf("habitat: forcing row for day %d: %w", dayOfYear, err)
	}
	c.env = Environment{AirTemperatureC: row.AirTemperatureC, SnowDepthCm: row.SnowDepthCm}
	return nil
}

func (c *CSVForcing) nearestEarlier(dayOfYear int) ForcingRow {
	best := c.rows[len(c.rows)-1]
	for _, r := range c.rows {
		if r.DayOfYear > dayOfYear {
			break
		}
		best = r
	}
	return best
}

func (c *CSVForcing) AvailableForage() forage.HabitatForage { return c.current }
func (c *CSVForcing) Environment() Environment               { return c.env }

func (c *CSVForcing) RemoveEatenForage(eaten forage.Vector) error {
	newMass := c.current.Mass.Sub(eaten)
	for t := forage.Grass; int(t) < len(newMass); t++ {
		if newMass.Get(t) < 0 {
			newMass = newMass.Set(t, 0)
		}
	}
	c.current.Mass = newMass
	return nil
}

// AddExcretedNitrogen is a no-op: forcing tables record an external
// vegetation model's own state and are not fed back into.
func (c *CSVForcing) AddExcretedNitrogen(kgPerKm2 float64) {}
