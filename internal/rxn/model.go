package rxn

import (
	"fmt"
	"sort"
)

// Model is the parsed form of a reaction network: its species, the
// pathways filed under each reaction name, and compile settings.
type Model struct {
	Name     string
	PbFactor float64
	Settings Settings

	species      map[string]*Species
	reactions    map[string][]*Pathway
	complexRates map[string]*ComplexRate
}

// NewModel creates a model holding only the wildcard species.
func NewModel(name string) *Model {
	m := &Model{
		Name:         name,
		PbFactor:     1,
		Settings:     DefaultSettings(),
		species:      make(map[string]*Species),
		reactions:    make(map[string][]*Pathway),
		complexRates: make(map[string]*ComplexRate),
	}
	return m.WithSpecies(NewWildcards()...)
}

// WithSpecies adds species to the model and returns the model for chaining.
func (m *Model) WithSpecies(species ...*Species) *Model {
	for _, sp := range species {
		m.species[sp.Name] = sp
	}
	return m
}

// WithPathways files pathways under their reaction name and returns the
// model for chaining.
func (m *Model) WithPathways(pathways ...*Pathway) *Model {
	for _, p := range pathways {
		key := ReactionKey(p.Reactants)
		m.reactions[key] = append(m.reactions[key], p)
	}
	return m
}

// Species retrieves a species by name.
func (m *Model) Species(name string) (*Species, bool) {
	sp, ok := m.species[name]
	return sp, ok
}

// AllSpecies returns every species sorted by name.
func (m *Model) AllSpecies() []*Species {
	out := make([]*Species, 0, len(m.species))
	for _, sp := range m.species {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Pathways returns the pathways filed under a reaction name.
func (m *Model) Pathways(name string) []*Pathway {
	return m.reactions[name]
}

// ReactionNames returns the reaction names in sorted order.
func (m *Model) ReactionNames() []string {
	names := make([]string, 0, len(m.reactions))
	for name := range m.reactions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewCompileContext creates a compile context for the model using a
// constant calibration factor of m.PbFactor.
func (m *Model) NewCompileContext() *CompileContext {
	ctx := NewCompileContext(m.AllSpecies(), m.Settings)
	ctx.Calibrator = ConstantCalibrator{Factor: m.PbFactor}
	return ctx
}

// CompileModel compiles every reaction of m.
func CompileModel(ctx *CompileContext, m *Model) (*Result, error) {
	return Compile(ctx, m.reactions)
}

// BuildModelFromConfig converts a validated ModelConfig into a Model.
func BuildModelFromConfig(cfg ModelConfig) (*Model, error) {
	m := NewModel(cfg.Name)

	for _, sc := range cfg.Species {
		kind := SpeciesKind(sc.Kind)
		if kind == "" {
			kind = KindVolume
		}
		sp := NewSpecies(sc.Name, kind, sc.Diffusion)
		if sc.Complex {
			sp.Flags |= IsComplex
		}
		m.WithSpecies(sp)
	}

	for _, cc := range cfg.ComplexRates {
		m.complexRates[cc.Name] = &ComplexRate{Name: cc.Name, Rates: append([]float64(nil), cc.Rates...)}
	}

	for i, rc := range cfg.Reactions {
		p, err := m.buildPathway(rc)
		if err != nil {
			return nil, fmt.Errorf("reaction at index %d: %w", i, err)
		}
		m.WithPathways(p)
	}

	if err := applySettings(m, cfg.Settings); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) buildPathway(rc ReactionConfig) (*Pathway, error) {
	p := &Pathway{Name: rc.Name}

	flag, ok := validFlags[rc.Flag]
	if !ok {
		return nil, fmt.Errorf("unknown flag %q", rc.Flag)
	}
	p.Flag = flag

	for _, pc := range rc.Reactants {
		sp, ok := m.species[pc.Species]
		if !ok {
			return nil, fmt.Errorf("unknown reactant species %q", pc.Species)
		}
		p.Reactants = append(p.Reactants, Reactant{Species: sp, Orientation: pc.Orientation, Subunit: pc.Subunit})
	}
	for _, pc := range rc.Products {
		sp, ok := m.species[pc.Species]
		if !ok {
			return nil, fmt.Errorf("unknown product species %q", pc.Species)
		}
		p.Products = append(p.Products, Product{Species: sp, Orientation: pc.Orientation, Subunit: pc.Subunit})
	}

	switch {
	case rc.Rate.Constant != nil:
		p.Rate = Rate{Kind: RateConstant, Constant: *rc.Rate.Constant}
	case rc.Rate.File != "":
		p.Rate = Rate{Kind: RateFile, File: rc.Rate.File}
	case rc.Rate.Complex != "":
		table, ok := m.complexRates[rc.Rate.Complex]
		if !ok {
			return nil, fmt.Errorf("unknown complex rate %q", rc.Rate.Complex)
		}
		p.Rate = Rate{Kind: RateComplex, Complex: table}
	}
	return p, nil
}

func applySettings(m *Model, sc SettingsConfig) error {
	s := &m.Settings
	if sc.PbFactor != nil {
		m.PbFactor = *sc.PbFactor
	}
	if sc.SurfaceDensity != nil {
		s.SurfaceDensity = *sc.SurfaceDensity
	}
	s.ProbabilityReport = sc.ProbabilityReport
	if sc.NotifyProbabilityThreshold != nil {
		s.NotifyProbabilityThreshold = *sc.NotifyProbabilityThreshold
	}
	if sc.WarnProbabilityThreshold != nil {
		s.WarnProbabilityThreshold = *sc.WarnProbabilityThreshold
	}
	if sc.MaxHashSize != 0 {
		s.MaxHashSize = sc.MaxHashSize
	}

	policies := []struct {
		value string
		dst   *WarnPolicy
	}{
		{sc.HighProbabilityPolicy, &s.HighProbability},
		{sc.NegativeRatePolicy, &s.NegativeRate},
		{sc.MissingOrientationPolicy, &s.MissingOrientation},
		{sc.UselessOrientationPolicy, &s.UselessOrientation},
	}
	for _, p := range policies {
		if p.value == "" {
			continue
		}
		policy, err := ParseWarnPolicy(p.value)
		if err != nil {
			return err
		}
		*p.dst = policy
	}
	return nil
}
