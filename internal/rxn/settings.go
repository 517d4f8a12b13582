package rxn

import (
	"fmt"
	"strings"
)

// WarnPolicy decides what happens when a recoverable condition is found.
type WarnPolicy int

const (
	// PolicyCope corrects the condition silently.
	PolicyCope WarnPolicy = iota
	// PolicyWarn corrects the condition and logs a warning.
	PolicyWarn
	// PolicyError fails the compile.
	PolicyError
)

func (p WarnPolicy) String() string {
	switch p {
	case PolicyCope:
		return "cope"
	case PolicyWarn:
		return "warn"
	case PolicyError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseWarnPolicy parses a policy name (case-insensitive).
func ParseWarnPolicy(s string) (WarnPolicy, error) {
	switch strings.ToLower(s) {
	case "cope", "ignore":
		return PolicyCope, nil
	case "warn", "warning":
		return PolicyWarn, nil
	case "error":
		return PolicyError, nil
	}
	return PolicyWarn, fmt.Errorf("unknown policy %q, must be one of: cope, warn, error", s)
}

// DefaultMaxHashSize caps the reaction hash table.
const DefaultMaxHashSize = 1 << 16

// Settings holds the notification policy consulted during compilation.
type Settings struct {
	SurfaceDensity float64

	// ProbabilityReport logs the probability of every pathway.
	ProbabilityReport bool
	// Pathways at or above NotifyProbabilityThreshold are reported as notices.
	NotifyProbabilityThreshold float64
	// Pathways at or above WarnProbabilityThreshold are handled per HighProbability.
	WarnProbabilityThreshold float64
	HighProbability          WarnPolicy

	NegativeRate       WarnPolicy
	MissingOrientation WarnPolicy
	UselessOrientation WarnPolicy

	MaxHashSize int
}

// DefaultSettings returns the settings used when a model specifies none.
func DefaultSettings() Settings {
	return Settings{
		SurfaceDensity:             10000,
		NotifyProbabilityThreshold: 1.0,
		WarnProbabilityThreshold:   1.0,
		HighProbability:            PolicyWarn,
		NegativeRate:               PolicyWarn,
		MissingOrientation:         PolicyWarn,
		UselessOrientation:         PolicyWarn,
		MaxHashSize:                DefaultMaxHashSize,
	}
}
