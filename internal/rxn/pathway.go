package rxn

import (
	"sort"
	"strings"
)

// Gigantic is the probability given to events that must never lose a
// roulette draw: concentration clamps and rates that always fire.
const Gigantic = 1e140

// Reactant is one reactant slot of a pathway.
type Reactant struct {
	Species     *Species
	Orientation int
	Subunit     bool
}

// Product is one product of a pathway.
type Product struct {
	Species     *Species
	Orientation int
	Subunit     bool
}

// RateKind tags a Rate.
type RateKind int

const (
	RateConstant RateKind = iota
	RateFile
	RateComplex
)

// ComplexRate is an externally evaluated subunit-state rate table.
type ComplexRate struct {
	Name  string
	Rates []float64
}

// Rate says how the rate of a pathway is given.
type Rate struct {
	Kind     RateKind
	Constant float64
	File     string
	Complex  *ComplexRate
}

// Always reports whether the rate is the "always occurs" sentinel.
func (r Rate) Always() bool {
	return r.Kind == RateConstant && r.Constant >= Gigantic
}

// PathwayFlag distinguishes ordinary kinetics from boundary conditions.
type PathwayFlag int

const (
	PathwayOrdinary PathwayFlag = iota
	PathwayReflective
	PathwayTransparent
	PathwayAbsorptive
	PathwayClamp
)

func (f PathwayFlag) String() string {
	switch f {
	case PathwayOrdinary:
		return "ordinary"
	case PathwayReflective:
		return "reflective"
	case PathwayTransparent:
		return "transparent"
	case PathwayAbsorptive:
		return "absorptive"
	case PathwayClamp:
		return "clamp"
	default:
		return "unknown"
	}
}

// Special reports whether pathways with this flag are boundary conditions.
func (f PathwayFlag) Special() bool { return f != PathwayOrdinary }

// Pathway is one parsed reaction rule. Pathways are transient: they are
// consumed by Compile and not referenced by the runtime tables.
type Pathway struct {
	Reactants []Reactant
	Products  []Product
	Rate      Rate
	Flag      PathwayFlag
	// Name is the optional pathway name used by reaction output.
	Name string

	signature string
	hasSig    bool
}

// Clone returns a deep copy that shares only the species.
func (p *Pathway) Clone() *Pathway {
	c := &Pathway{
		Reactants: append([]Reactant(nil), p.Reactants...),
		Products:  append([]Product(nil), p.Products...),
		Rate:      p.Rate,
		Flag:      p.Flag,
		Name:      p.Name,
	}
	return c
}

// Signature is the sorted "+"-joined product names, or "" when the pathway
// produces nothing.
func (p *Pathway) Signature() string {
	if !p.hasSig {
		names := make([]string, len(p.Products))
		for i, prod := range p.Products {
			names[i] = prod.Species.Name
		}
		sort.Strings(names)
		p.signature = strings.Join(names, "+")
		p.hasSig = true
	}
	return p.signature
}

// orientations lists reactant orientations followed by product orientations.
func (p *Pathway) orientations() []int {
	out := make([]int, 0, len(p.Reactants)+len(p.Products))
	for _, r := range p.Reactants {
		out = append(out, r.Orientation)
	}
	for _, prod := range p.Products {
		out = append(out, prod.Orientation)
	}
	return out
}

func (p *Pathway) reactantSpecies() []*Species {
	out := make([]*Species, len(p.Reactants))
	for i, r := range p.Reactants {
		out[i] = r.Species
	}
	return out
}

// ReactionKey is the name a pathway is filed under: its reactant names in
// canonical order (volume and surface molecules alphabetized, surface classes
// last).
func ReactionKey(reactants []Reactant) string {
	sorted := append([]Reactant(nil), reactants...)
	canonicalizeReactants(sorted)
	names := make([]string, len(sorted))
	for i, r := range sorted {
		names[i] = r.Species.Name
	}
	return strings.Join(names, "+")
}

// canonicalizeReactants moves surface classes to the end and alphabetizes
// the remaining reactants. Orientation and subunit flags travel with their
// reactant.
func canonicalizeReactants(rs []Reactant) {
	sort.SliceStable(rs, func(i, j int) bool {
		si, sj := rs[i].Species, rs[j].Species
		if si.IsSurfaceClass() != sj.IsSurfaceClass() {
			return sj.IsSurfaceClass()
		}
		return si.Name < sj.Name
	})
}
