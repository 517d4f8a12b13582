package rxn

type SpeciesConfig struct {
	Name      string  `json:"name"`
	Kind      string  `json:"kind,omitempty"` // volume (default), surface, surface_class
	Diffusion float64 `json:"diffusion,omitempty"`
	Complex   bool    `json:"complex,omitempty"`
}

// PlayerConfig is one reactant or product of a reaction.
type PlayerConfig struct {
	Species     string `json:"species"`
	Orientation int    `json:"orientation,omitempty"`
	Subunit     bool   `json:"subunit,omitempty"`
}

// RateConfig must set exactly one of its fields.
type RateConfig struct {
	Constant *float64 `json:"constant,omitempty"`
	File     string   `json:"file,omitempty"`
	Complex  string   `json:"complex,omitempty"`
}

type ReactionConfig struct {
	// Name is the optional pathway name used by reaction output.
	Name      string         `json:"name,omitempty"`
	Reactants []PlayerConfig `json:"reactants"`
	Products  []PlayerConfig `json:"products,omitempty"`
	Rate      RateConfig     `json:"rate"`
	Flag      string         `json:"flag,omitempty"` // reflective, transparent, absorptive, clamp
}

type ComplexRateConfig struct {
	Name  string    `json:"name"`
	Rates []float64 `json:"rates"`
}

// SettingsConfig overrides DefaultSettings; unset fields keep the default.
type SettingsConfig struct {
	PbFactor                   *float64 `json:"pb_factor,omitempty"`
	SurfaceDensity             *float64 `json:"surface_density,omitempty"`
	ProbabilityReport          bool     `json:"probability_report,omitempty"`
	NotifyProbabilityThreshold *float64 `json:"notify_probability_threshold,omitempty"`
	WarnProbabilityThreshold   *float64 `json:"warn_probability_threshold,omitempty"`
	HighProbabilityPolicy      string   `json:"high_probability_policy,omitempty"`
	NegativeRatePolicy         string   `json:"negative_rate_policy,omitempty"`
	MissingOrientationPolicy   string   `json:"missing_orientation_policy,omitempty"`
	UselessOrientationPolicy   string   `json:"useless_orientation_policy,omitempty"`
	MaxHashSize                int      `json:"max_hash_size,omitempty"`
}

type ModelConfig struct {
	Name         string              `json:"name"`
	Species      []SpeciesConfig     `json:"species"`
	Reactions    []ReactionConfig    `json:"reactions"`
	ComplexRates []ComplexRateConfig `json:"complex_rates,omitempty"`
	Settings     SettingsConfig      `json:"settings,omitempty"`
}
