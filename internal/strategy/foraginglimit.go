package strategy

// ForagingLimit is one independently-toggleable ceiling composing into the
// per-individual intake ceiling via elementwise minimum (spec.md §4.2/§4.3).
type ForagingLimit uint8

const (
	DigestiveLimitActive ForagingLimit = iota
	IntakeRateLimitActive
)

func (f ForagingLimit) String() string {
	if f == DigestiveLimitActive {
		return "Digestive"
	}
	return "IntakeRate"
}

// ValidForagingLimits lists valid limit names for config errors.
func ValidForagingLimits() []string {
	return []string{"Digestive", "IntakeRate"}
}
