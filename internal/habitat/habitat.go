// Package habitat defines the external vegetation-model boundary (spec.md
// §4.6) and two reference implementations: a synthetic noise-driven demo
// habitat and a CSV-forcing adapter.
package habitat

import "github.com/savanna-sim/megafauna/internal/forage"

// Environment is the day's physical environment a habitat reports
// alongside its forage, read by the thermoregulation expenditure
// component.
type Environment struct {
	AirTemperatureC float64
	SnowDepthCm     float64
}

// Habitat is the boundary the core consumes (spec.md §4.6). A host
// implements it; the core never assumes anything about how forage grows
// or how the environment is produced.
type Habitat interface {
	// InitDay is invoked once per day before herbivore simulation.
	InitDay(dayOfYear int) error

	// AvailableForage reports standing forage for the current day.
	AvailableForage() forage.HabitatForage

	// Environment reports the current day's physical environment.
	Environment() Environment

	// RemoveEatenForage decrements standing forage by the total mass the
	// core actually allocated this day. The core never asks for more than
	// AvailableForage last reported.
	RemoveEatenForage(eaten forage.Vector) error

	// AddExcretedNitrogen closes the nitrogen loop, called exactly once
	// per day with the sum of every cohort's excreta.
	AddExcretedNitrogen(kgPerKm2 float64)
}
