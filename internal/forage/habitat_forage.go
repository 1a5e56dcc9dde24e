package forage

// HabitatForage is the forage a habitat currently offers: per-type standing
// mass, digestibility, and foliar percentage cover (FPC).
type HabitatForage struct {
	Mass          Vector // kgDM/km², per forage type
	Digestibility Vector // fraction in [0,1], per forage type
	FPC           Vector // fraction in [0,1], per forage type
}

// TotalMass sums standing mass across all forage types.
func (h HabitatForage) TotalMass() float64 {
	return h.Mass.Sum()
}

// AvgDigestibility returns the mass-weighted average digestibility across
// forage types. Returns 0 when there is no standing mass (0/0 case).
func (h HabitatForage) AvgDigestibility() float64 {
	total := h.Mass.Sum()
	if total == 0 {
		return 0
	}
	var weighted float64
	for i := range h.Mass {
		weighted += h.Mass[i] * h.Digestibility[i]
	}
	return weighted / total
}

// Validate checks that Mass is non-negative/finite and Digestibility/FPC
// lie in [0,1].
func (h HabitatForage) Validate() error {
	if err := h.Mass.Validate(); err != nil {
		return err
	}
	for i, d := range h.Digestibility {
		if d < 0 || d > 1 {
			return &InvalidValueError{Type(i), d, "digestibility out of [0,1]"}
		}
	}
	for i, f := range h.FPC {
		if f < 0 || f > 1 {
			return &InvalidValueError{Type(i), f, "FPC out of [0,1]"}
		}
	}
	return nil
}
