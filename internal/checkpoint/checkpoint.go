// Package checkpoint provides optional SQLite-based daily snapshot
// storage for a simulation run: same driver, same migrate/save/load
// shape as a typical sqlx/modernc-sqlite persistence layer, repointed at
// herbivore_data/habitat_data rows keyed by (unit_id, day).
package checkpoint

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/savanna-sim/megafauna/internal/forage"
	"github.com/savanna-sim/megafauna/internal/output"
	"github.com/savanna-sim/megafauna/internal/strategy"
)

// Store wraps a SQLite connection for checkpointing simulation output.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("checkpoint: open db: %w", err)
	}

	store := &Store{conn: conn}
	if err := store.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("checkpoint: migrate: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.conn.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS herbivore_data (
		unit_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		hft_name TEXT NOT NULL,
		density REAL NOT NULL,
		mass_density REAL NOT NULL,
		body_fat REAL NOT NULL,
		age_years REAL NOT NULL,
		expenditure REAL NOT NULL,
		offspring REAL NOT NULL,
		bound_nitrogen REAL NOT NULL,
		eaten_forage_per_ind_json TEXT NOT NULL,
		eaten_forage_per_mass_json TEXT NOT NULL,
		energy_intake_per_ind_json TEXT NOT NULL,
		energy_intake_per_mass_json TEXT NOT NULL,
		energy_content_json TEXT NOT NULL,
		mortality_json TEXT NOT NULL,
		datapoint_count REAL NOT NULL,
		PRIMARY KEY (unit_id, day, hft_name)
	);

	CREATE TABLE IF NOT EXISTS habitat_data (
		unit_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		total_mass REAL NOT NULL,
		avg_digestibility REAL NOT NULL,
		air_temperature REAL NOT NULL,
		snow_depth REAL NOT NULL,
		excreted_nitrogen REAL NOT NULL,
		datapoint_count REAL NOT NULL,
		PRIMARY KEY (unit_id, day)
	);

	CREATE TABLE IF NOT EXISTS run_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_herbivore_data_unit_day ON herbivore_data(unit_id, day);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// herbivoreRow is the SQL-scannable shape of one herbivore_data row.
type herbivoreRow struct {
	HFTName                 string  `db:"hft_name"`
	Density                 float64 `db:"density"`
	MassDensity             float64 `db:"mass_density"`
	BodyFat                 float64 `db:"body_fat"`
	AgeYears                float64 `db:"age_years"`
	Expenditure             float64 `db:"expenditure"`
	Offspring               float64 `db:"offspring"`
	BoundNitrogen           float64 `db:"bound_nitrogen"`
	EatenForagePerIndJSON   string  `db:"eaten_forage_per_ind_json"`
	EatenForagePerMassJSON  string  `db:"eaten_forage_per_mass_json"`
	EnergyIntakePerIndJSON  string  `db:"energy_intake_per_ind_json"`
	EnergyIntakePerMassJSON string  `db:"energy_intake_per_mass_json"`
	EnergyContentJSON       string  `db:"energy_content_json"`
	MortalityJSON           string  `db:"mortality_json"`
	DatapointCount          float64 `db:"datapoint_count"`
}

type habitatRow struct {
	TotalMass             float64 `db:"total_mass"`
	AvgDigestibility      float64 `db:"avg_digestibility"`
	AirTemperatureC       float64 `db:"air_temperature"`
	SnowDepthCm           float64 `db:"snow_depth"`
	ExcretedNitrogenKgKm2 float64 `db:"excreted_nitrogen"`
	DatapointCount        float64 `db:"datapoint_count"`
}

// SaveDay writes one unit's CombinedData for one day, replacing any
// existing rows for that (unit, day) pair.
func (s *Store) SaveDay(unitID string, c output.CombinedData) error {
	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM herbivore_data WHERE unit_id = ? AND day = ?", unitID, c.Day); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM habitat_data WHERE unit_id = ? AND day = ?", unitID, c.Day); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO herbivore_data
		(unit_id, day, hft_name, density, mass_density, body_fat, age_years, expenditure,
		 offspring, bound_nitrogen, eaten_forage_per_ind_json, eaten_forage_per_mass_json,
		 energy_intake_per_ind_json, energy_intake_per_mass_json, energy_content_json,
		 mortality_json, datapoint_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for name, d := range c.ByHFT {
		eatenInd, _ := json.Marshal(d.EatenForagePerInd)
		eatenMass, _ := json.Marshal(d.EatenForagePerMass)
		energyInd, _ := json.Marshal(d.EnergyIntakePerInd)
		energyMass, _ := json.Marshal(d.EnergyIntakePerMass)
		energyContent, _ := json.Marshal(d.EnergyContent)
		mortality, _ := json.Marshal(d.Mortality)

		_, err := stmt.Exec(
			unitID, c.Day, name, d.Density, d.MassDensity, d.BodyFat, d.AgeYears, d.Expenditure,
			d.Offspring, d.BoundNitrogen, string(eatenInd), string(eatenMass),
			string(energyInd), string(energyMass), string(energyContent),
			string(mortality), d.DatapointCount,
		)
		if err != nil {
			return fmt.Errorf("checkpoint: insert herbivore_data %s/%d: %w", name, c.Day, err)
		}
	}

	_, err = tx.Exec(`INSERT INTO habitat_data
		(unit_id, day, total_mass, avg_digestibility, air_temperature, snow_depth, excreted_nitrogen, datapoint_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		unitID, c.Day, c.Habitat.TotalMass, c.Habitat.AvgDigestibility, c.Habitat.AirTemperatureC,
		c.Habitat.SnowDepthCm, c.Habitat.ExcretedNitrogenKgKm2, c.Habitat.DatapointCount,
	)
	if err != nil {
		return fmt.Errorf("checkpoint: insert habitat_data day %d: %w", c.Day, err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("checkpoint: day saved", "unit", unitID, "day", c.Day, "hft_count", len(c.ByHFT))
	return nil
}

// LoadDay reads back one unit's CombinedData for one day. Returns a
// zero-datapoint-count record if nothing was checkpointed for that day.
func (s *Store) LoadDay(unitID string, day int) (output.CombinedData, error) {
	var herbRows []herbivoreRow
	if err := s.conn.Select(&herbRows,
		"SELECT hft_name, density, mass_density, body_fat, age_years, expenditure, offspring, "+
			"bound_nitrogen, eaten_forage_per_ind_json, eaten_forage_per_mass_json, "+
			"energy_intake_per_ind_json, energy_intake_per_mass_json, energy_content_json, "+
			"mortality_json, datapoint_count FROM herbivore_data WHERE unit_id = ? AND day = ?",
		unitID, day); err != nil {
		return output.CombinedData{}, fmt.Errorf("checkpoint: load herbivore_data day %d: %w", day, err)
	}

	var habRow habitatRow
	hasHabitat := true
	if err := s.conn.Get(&habRow,
		"SELECT total_mass, avg_digestibility, air_temperature, snow_depth, excreted_nitrogen, datapoint_count "+
			"FROM habitat_data WHERE unit_id = ? AND day = ?", unitID, day); err != nil {
		hasHabitat = false
	}

	combined := output.NewCombinedData(day)
	for _, row := range herbRows {
		var eatenInd, eatenMass, energyInd, energyMass, energyContent forage.Vector
		_ = json.Unmarshal([]byte(row.EatenForagePerIndJSON), &eatenInd)
		_ = json.Unmarshal([]byte(row.EatenForagePerMassJSON), &eatenMass)
		_ = json.Unmarshal([]byte(row.EnergyIntakePerIndJSON), &energyInd)
		_ = json.Unmarshal([]byte(row.EnergyIntakePerMassJSON), &energyMass)
		_ = json.Unmarshal([]byte(row.EnergyContentJSON), &energyContent)
		var mortality map[strategy.MortalityFactor]float64
		_ = json.Unmarshal([]byte(row.MortalityJSON), &mortality)

		combined.ByHFT[row.HFTName] = output.HerbivoreData{
			HFTName:             row.HFTName,
			Density:             row.Density,
			MassDensity:         row.MassDensity,
			BodyFat:             row.BodyFat,
			AgeYears:            row.AgeYears,
			Expenditure:         row.Expenditure,
			BoundNitrogen:       row.BoundNitrogen,
			Offspring:           row.Offspring,
			EatenForagePerInd:   eatenInd,
			EatenForagePerMass:  eatenMass,
			EnergyIntakePerInd:  energyInd,
			EnergyIntakePerMass: energyMass,
			EnergyContent:       energyContent,
			Mortality:           mortality,
			DatapointCount:      row.DatapointCount,
		}
	}
	if hasHabitat {
		combined.Habitat = output.HabitatData{
			TotalMass:             habRow.TotalMass,
			AvgDigestibility:      habRow.AvgDigestibility,
			AirTemperatureC:       habRow.AirTemperatureC,
			SnowDepthCm:           habRow.SnowDepthCm,
			ExcretedNitrogenKgKm2: habRow.ExcretedNitrogenKgKm2,
			DatapointCount:        habRow.DatapointCount,
		}
	}
	return combined, nil
}

// SaveMeta stores a key-value pair in run metadata (e.g. last checkpointed day).
func (s *Store) SaveMeta(key, value string) error {
	_, err := s.conn.Exec("INSERT OR REPLACE INTO run_meta (key, value) VALUES (?, ?)", key, value)
	return err
}

// GetMeta retrieves a metadata value.
func (s *Store) GetMeta(key string) (string, error) {
	var value string
	err := s.conn.Get(&value, "SELECT value FROM run_meta WHERE key = ?", key)
	return value, err
}
