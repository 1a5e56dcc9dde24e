package habitat

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/savanna-sim/megafauna/internal/forage"
)

// DemoConfig parameterizes the synthetic demo habitat: a single grass
// forage type whose standing mass, digestibility and cover follow a
// seasonal cycle perturbed by layered simplex noise, used whenever no
// real vegetation model or forcing table is wired in.
type DemoConfig struct {
	Seed int64

	// PeakGrassMass is the standing mass (kgDM/km²) at the summer peak.
	PeakGrassMass float64
	// MinGrassMass is the standing mass at the winter trough.
	MinGrassMass float64
	// PeakDigestibility/MinDigestibility bound the seasonal digestibility swing.
	PeakDigestibility float64
	MinDigestibility  float64

	// MeanAirTemperatureC/AirTemperatureAmplitude parameterize a sinusoidal
	// annual temperature cycle plus noise.
	MeanAirTemperatureC      float64
	AirTemperatureAmplitude  float64
	SnowThresholdC           float64
	PeakSnowDepthCm          float64
}

// DefaultDemoConfig returns a temperate-grassland parameterization.
func DefaultDemoConfig() DemoConfig {
	return DemoConfig{
		Seed:                    1,
		PeakGrassMass:           2500,
		MinGrassMass:            300,
		PeakDigestibility:       0.75,
		MinDigestibility:        0.35,
		MeanAirTemperatureC:     10,
		AirTemperatureAmplitude: 15,
		SnowThresholdC:          -2,
		PeakSnowDepthCm:         25,
	}
}

// Demo is a synthetic Habitat driven by layered simplex noise over a
// seasonal envelope, in the same style as a layered-noise terrain
// generator (elevation/rainfall/temperature octaves combined into a
// derived terrain type). Here the same octave-noise technique perturbs
// a single-cell seasonal forage/temperature signal instead of a hex map.
type Demo struct {
	cfg DemoConfig

	grassNoise opensimplex.Noise
	digNoise   opensimplex.Noise
	tempNoise  opensimplex.Noise

	dayOfYear int
	current   forage.HabitatForage
	env       Environment
}

// NewDemo constructs a demo habitat seeded independently for each of its
// three noise layers, the same "seed, seed+1, seed+2" separation the
// teacher uses for elevation/rainfall/temperature.
func NewDemo(cfg DemoConfig) *Demo {
	return &Demo{
		cfg:        cfg,
		grassNoise: opensimplex.NewNormalized(cfg.Seed),
		digNoise:   opensimplex.NewNormalized(cfg.Seed + 1),
		tempNoise:  opensimplex.NewNormalized(cfg.Seed + 2),
	}
}

// InitDay advances the habitat to dayOfYear, computing this day's forage
// state and environment from the seasonal envelope plus noise.
func (d *Demo) InitDay(dayOfYear int) error {
	d.dayOfYear = dayOfYear
	season := seasonalPhase(dayOfYear)

	grassEnvelope := lerp(d.cfg.MinGrassMass, d.cfg.PeakGrassMass, season)
	digEnvelope := lerp(d.cfg.MinDigestibility, d.cfg.PeakDigestibility, season)

	grassNoise := octaveNoise(d.grassNoise, float64(dayOfYear), 3, 0.02, 0.5)
	digNoise := octaveNoise(d.digNoise, float64(dayOfYear), 2, 0.03, 0.5)
	tempNoise := octaveNoise(d.tempNoise, float64(dayOfYear), 2, 0.05, 0.5)

	mass := grassEnvelope * (0.85 + 0.3*grassNoise)
	if mass < 0 {
		mass = 0
	}
	digestibility := clamp01(digEnvelope + 0.1*(digNoise-0.5))
	fpc := clamp01(mass / d.cfg.PeakGrassMass)

	var massVec, digVec, fpcVec forage.Vector
	massVec = massVec.Set(forage.Grass, mass)
	digVec = digVec.Set(forage.Grass, digestibility)
	fpcVec = fpcVec.Set(forage.Grass, fpc)

	d.current = forage.HabitatForage{Mass: massVec, Digestibility: digVec, FPC: fpcVec}
	if err := d.current.Validate(); err != nil {
		return err
	}

	airTemp := d.cfg.MeanAirTemperatureC + d.cfg.AirTemperatureAmplitude*math.Sin(2*math.Pi*season) + 4*(tempNoise-0.5)
	var snow float64
	if airTemp < d.cfg.SnowThresholdC {
		snow = d.cfg.PeakSnowDepthCm * (d.cfg.SnowThresholdC - airTemp) / (d.cfg.SnowThresholdC - d.cfg.MeanAirTemperatureC + d.cfg.AirTemperatureAmplitude)
		if snow > d.cfg.PeakSnowDepthCm {
			snow = d.cfg.PeakSnowDepthCm
		}
		if snow < 0 {
			snow = 0
		}
	}
	d.env = Environment{AirTemperatureC: airTemp, SnowDepthCm: snow}
	return nil
}

func (d *Demo) AvailableForage() forage.HabitatForage { return d.current }
func (d *Demo) Environment() Environment              { return d.env }

// RemoveEatenForage subtracts what herbivores consumed from today's
// standing mass; called after distribution, before the next InitDay
// regenerates from the seasonal envelope.
func (d *Demo) RemoveEatenForage(eaten forage.Vector) error {
	newMass := d.current.Mass.Sub(eaten)
	for t := forage.Grass; int(t) < len(newMass); t++ {
		if newMass.Get(t) < 0 {
			newMass = newMass.Set(t, 0)
		}
	}
	d.current.Mass = newMass
	return nil
}

// AddExcretedNitrogen is a no-op in the demo habitat: the synthetic
// vegetation model does not track a nitrogen pool.
func (d *Demo) AddExcretedNitrogen(kgPerKm2 float64) {}

// seasonalPhase maps a day-of-year to a [0,1] "how summery is it" value
// peaking at day 172 (northern-hemisphere summer solstice).
func seasonalPhase(dayOfYear int) float64 {
	radians := 2 * math.Pi * float64(dayOfYear-172) / 365.0
	return (math.Cos(radians) + 1) / 2
}

func lerp(min, max, t float64) float64 { return min + (max-min)*t }

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// octaveNoise layers fractal noise the same way a hex-terrain generator
// does, but over a single time axis rather than 2D space.
func octaveNoise(noise opensimplex.Noise, x float64, octaves int, frequency, persistence float64) float64 {
	var total, amplitude, maxAmplitude float64
	amplitude = 1
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, 0) * amplitude
		maxAmplitude += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxAmplitude
}
