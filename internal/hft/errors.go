package hft

import "fmt"

// ConfigError reports an invalid instruction file: an out-of-range
// parameter, an unknown enum string, or a missing dependent key
// (spec.md §6/§7). It always names the offending key and, for enum
// errors, the full set of valid options.
type ConfigError struct {
	HFT    string   // HFT name, or "" for group/top-level errors
	Key    string   // dotted config key, e.g. "digestion.limit"
	Value  string   // offending value, if any
	Valid  []string // valid options, if this is an enum error
	Reason string
}

func (e *ConfigError) Error() string {
	prefix := "hft"
	if e.HFT != "" {
		prefix = fmt.Sprintf("hft %q", e.HFT)
	}
	if len(e.Valid) > 0 {
		return fmt.Sprintf("%s: %s: %q is not a valid value (valid: %v)", prefix, e.Key, e.Value, e.Valid)
	}
	return fmt.Sprintf("%s: %s: %s", prefix, e.Key, e.Reason)
}

func missingKey(hftName, key string) error {
	return &ConfigError{HFT: hftName, Key: key, Reason: "mandatory key missing"}
}

func invalidEnum(hftName, key, value string, valid []string) error {
	return &ConfigError{HFT: hftName, Key: key, Value: value, Valid: valid}
}

func outOfRange(hftName, key, reason string) error {
	return &ConfigError{HFT: hftName, Key: key, Reason: reason}
}
