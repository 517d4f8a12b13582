package rxn

import (
	"fmt"
	"strings"
)

// ValidationError collects multiple validation issues
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "invalid model: unknown validation error"
	}
	if len(e.Issues) == 1 {
		return e.Issues[0]
	}
	return "model validation errors: " + strings.Join(e.Issues, "; ")
}

func (e *ValidationError) Add(issue string) {
	e.Issues = append(e.Issues, issue)
}

func (e *ValidationError) HasIssues() bool {
	return len(e.Issues) > 0
}

var validKinds = map[string]bool{
	"":                       true,
	string(KindVolume):       true,
	string(KindSurface):      true,
	string(KindSurfaceClass): true,
}

var validFlags = map[string]PathwayFlag{
	"":            PathwayOrdinary,
	"reflective":  PathwayReflective,
	"transparent": PathwayTransparent,
	"absorptive":  PathwayAbsorptive,
	"clamp":       PathwayClamp,
}

var reservedNames = map[string]bool{
	AllMolecules:        true,
	AllVolumeMolecules:  true,
	AllSurfaceMolecules: true,
}

// ValidateModelConfig performs comprehensive validation of a ModelConfig
func ValidateModelConfig(cfg ModelConfig) error {
	err := &ValidationError{}

	if cfg.Name == "" {
		err.Add("model name is required")
	}

	speciesMap := make(map[string]bool)
	for name := range reservedNames {
		speciesMap[name] = true
	}

	for _, sp := range cfg.Species {
		if sp.Name == "" {
			err.Add("species name is required")
			continue
		}
		if reservedNames[sp.Name] {
			err.Add("species name is reserved: " + sp.Name)
			continue
		}
		if speciesMap[sp.Name] {
			err.Add("duplicate species name: " + sp.Name)
		} else {
			speciesMap[sp.Name] = true
		}
		if !validKinds[sp.Kind] {
			err.Add("species '" + sp.Name + "' has invalid kind '" + sp.Kind + "', must be one of: volume, surface, surface_class")
		}
		if sp.Diffusion < 0 {
			err.Add("species '" + sp.Name + "' has a negative diffusion constant")
		}
	}

	complexMap := make(map[string]bool)
	for i, cr := range cfg.ComplexRates {
		if cr.Name == "" {
			err.Add(fmt.Sprintf("complex rate at index %d: name is required", i))
			continue
		}
		if complexMap[cr.Name] {
			err.Add("duplicate complex rate name: " + cr.Name)
		}
		complexMap[cr.Name] = true
		if len(cr.Rates) == 0 {
			err.Add("complex rate '" + cr.Name + "' has no rates")
		}
	}

	for i, rc := range cfg.Reactions {
		prefix := fmt.Sprintf("reaction at index %d", i)
		if rc.Name != "" {
			prefix = "reaction '" + rc.Name + "'"
		}

		if len(rc.Reactants) == 0 {
			err.Add(prefix + ": at least one reactant is required")
		} else if len(rc.Reactants) > 3 {
			err.Add(prefix + ": at most three reactants are supported")
		}
		validatePlayers(rc.Reactants, prefix+" reactant", speciesMap, err)
		validatePlayers(rc.Products, prefix+" product", speciesMap, err)

		flag, ok := validFlags[rc.Flag]
		if !ok {
			err.Add(prefix + ": invalid flag '" + rc.Flag + "', must be one of: reflective, transparent, absorptive, clamp")
		}

		set := 0
		if rc.Rate.Constant != nil {
			set++
		}
		if rc.Rate.File != "" {
			set++
		}
		if rc.Rate.Complex != "" {
			set++
			if !complexMap[rc.Rate.Complex] {
				err.Add(prefix + ": complex rate '" + rc.Rate.Complex + "' does not exist")
			}
		}
		switch {
		case set > 1:
			err.Add(prefix + ": rate must set only one of constant, file, complex")
		case set == 0 && (flag == PathwayOrdinary || flag == PathwayClamp):
			err.Add(prefix + ": rate is required")
		}
	}

	validateSettings(cfg.Settings, err)

	if err.HasIssues() {
		return err
	}
	return nil
}

// validatePlayers validates the reactants or products of a reaction
func validatePlayers(players []PlayerConfig, prefix string, speciesMap map[string]bool, err *ValidationError) {
	for j, pl := range players {
		playerPrefix := prefix + " at index " + fmt.Sprintf("%d", j)
		if pl.Species == "" {
			err.Add(playerPrefix + ": species is required")
		} else if !speciesMap[pl.Species] {
			err.Add(playerPrefix + ": species '" + pl.Species + "' does not exist")
		}
	}
}

func validateSettings(s SettingsConfig, err *ValidationError) {
	if s.PbFactor != nil && *s.PbFactor <= 0 {
		err.Add("settings: pb_factor must be positive")
	}
	if s.SurfaceDensity != nil && *s.SurfaceDensity <= 0 {
		err.Add("settings: surface_density must be positive")
	}
	policies := []struct{ field, value string }{
		{"high_probability_policy", s.HighProbabilityPolicy},
		{"negative_rate_policy", s.NegativeRatePolicy},
		{"missing_orientation_policy", s.MissingOrientationPolicy},
		{"useless_orientation_policy", s.UselessOrientationPolicy},
	}
	for _, p := range policies {
		if p.value == "" {
			continue
		}
		if _, perr := ParseWarnPolicy(p.value); perr != nil {
			err.Add("settings: " + p.field + ": " + perr.Error())
		}
	}
	if s.MaxHashSize != 0 && !isPowerOfTwo(s.MaxHashSize) {
		err.Add(fmt.Sprintf("settings: max_hash_size %d is not a power of two", s.MaxHashSize))
	}
}
