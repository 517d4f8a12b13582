package rxn

// SpecialPathways is the pathway count of a reflective, transparent or
// absorptive boundary reaction.
const SpecialPathways = -1

// PathwayInfo holds the per-pathway counter and optional name used by
// reaction output. Count is updated by the counting subsystem only.
type PathwayInfo struct {
	Count float64
	Name  string
}

// TimeVaryingRate is one entry of a reaction's rate schedule.
type TimeVaryingRate struct {
	Time    float64
	Value   float64
	Pathway int
}

// ConcentrationClamp holds a volume molecule at a fixed concentration on
// one side of a surface class.
type ConcentrationClamp struct {
	Molecule           *Species
	Orientation        int
	SurfaceClass       *Species
	SurfaceOrientation int
	Concentration      float64
}

// Reaction is the compiled runtime form of one geometry-equivalence class of
// pathways sharing a reaction name. After Compile returns only the
// Info counters change.
type Reaction struct {
	Name       string
	NReactants int
	// NPathways is SpecialPathways for boundary reactions.
	NPathways int
	Special   PathwayFlag

	// Players holds the reactants, then for each pathway NReactants recycle
	// slots (nil unless the product reuses that reactant) followed by the
	// pathway's true products. Pathway i occupies
	// Players[ProductIdx[i]:ProductIdx[i+1]], so every pathway spans at
	// least NReactants entries even when it has no products: A -> B
	// compiles to [A, nil, B] with ProductIdx [1, 3].
	Players    []*Species
	Geometries []int
	Subunits   []bool
	ProductIdx []int

	CumProbs       []float64
	MaxFixedP      float64
	MinNoReactionP float64
	PbFactor       float64

	// ComplexRates is nil unless some pathway has a subunit-state rate.
	ComplexRates []*ComplexRate
	Schedule     []TimeVaryingRate
	Clamps       []ConcentrationClamp
	Info         []PathwayInfo

	MaxSurfaceProducts int

	pathways []*Pathway
}

// Reactants returns the reactant species.
func (rx *Reaction) Reactants() []*Species {
	return rx.Players[:rx.NReactants]
}

// IsSpecial reports whether rx is a boundary reaction.
func (rx *Reaction) IsSpecial() bool {
	return rx.NPathways == SpecialPathways
}

// Pathways returns the number of ordinary pathways; zero for boundary
// reactions.
func (rx *Reaction) Pathways() int {
	if rx.IsSpecial() {
		return 0
	}
	return rx.NPathways
}

// Products returns the true products of pathway i, skipping recycle slots.
// Boundary reactions have none.
func (rx *Reaction) Products(i int) []*Species {
	if rx.IsSpecial() {
		return nil
	}
	lo, hi := rx.ProductIdx[i]+rx.NReactants, rx.ProductIdx[i+1]
	return rx.Players[lo:hi]
}

// Recycled reports whether pathway i keeps reactant slot r.
func (rx *Reaction) Recycled(i, r int) bool {
	if rx.IsSpecial() {
		return false
	}
	return rx.Players[rx.ProductIdx[i]+r] != nil
}

// Probability returns the individual probability of pathway i; zero for
// boundary reactions.
func (rx *Reaction) Probability(i int) float64 {
	if rx.IsSpecial() {
		return 0
	}
	if i == 0 {
		return rx.CumProbs[0]
	}
	return rx.CumProbs[i] - rx.CumProbs[i-1]
}

// hasReactants reports whether rx is keyed on exactly the given species, in
// any order.
func (rx *Reaction) hasReactants(species []*Species) bool {
	if len(species) != rx.NReactants {
		return false
	}
	used := make([]bool, len(species))
	for _, r := range rx.Reactants() {
		found := false
		for i, sp := range species {
			if !used[i] && sp == r {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
