package rxn

import (
	"hash/fnv"
	"strings"
)

// SpeciesFlags is the classification and capability bit-set of a species.
// Classification bits are fixed when the species is defined; capability bits
// are unioned in by the compiler and never cleared.
type SpeciesFlags uint32

const (
	// OnGrid marks a surface molecule living on a surface grid.
	OnGrid SpeciesFlags = 1 << iota
	// IsSurface marks a surface class (a wall property, not a molecule).
	IsSurface
	// IsComplex marks a subunit of a multi-subunit complex.
	IsComplex
	// WildcardAll stands for every molecule.
	WildcardAll
	// WildcardVolume stands for every volume molecule.
	WildcardVolume
	// WildcardSurface stands for every surface molecule.
	WildcardSurface

	CanVolVol
	CanVolSurf
	CanVolWall
	CanSurfSurf
	CanSurfWall
	CanRegionBorder
	CanVolVolVol
	CanVolVolSurf
	CanVolSurfSurf
	CanSurfSurfSurf
)

const (
	wildcardFlags   = WildcardAll | WildcardVolume | WildcardSurface
	capabilityFlags = CanVolVol | CanVolSurf | CanVolWall | CanSurfSurf | CanSurfWall |
		CanRegionBorder | CanVolVolVol | CanVolVolSurf | CanVolSurfSurf | CanSurfSurfSurf
)

// Reserved wildcard species names.
const (
	AllMolecules        = "ALL_MOLECULES"
	AllVolumeMolecules  = "ALL_VOLUME_MOLECULES"
	AllSurfaceMolecules = "ALL_SURFACE_MOLECULES"
)

var capabilityNames = []struct {
	flag SpeciesFlags
	name string
}{
	{CanVolVol, "vol-vol"},
	{CanVolSurf, "vol-surf"},
	{CanVolWall, "vol-wall"},
	{CanSurfSurf, "surf-surf"},
	{CanSurfWall, "surf-wall"},
	{CanRegionBorder, "region-border"},
	{CanVolVolVol, "vol-vol-vol"},
	{CanVolVolSurf, "vol-vol-surf"},
	{CanVolSurfSurf, "vol-surf-surf"},
	{CanSurfSurfSurf, "surf-surf-surf"},
}

// Capabilities lists the capability bits set in f by name.
func (f SpeciesFlags) Capabilities() []string {
	var out []string
	for _, c := range capabilityNames {
		if f&c.flag != 0 {
			out = append(out, c.name)
		}
	}
	return out
}

// SpeciesKind is the classification a species is declared with.
type SpeciesKind string

const (
	KindVolume       SpeciesKind = "volume"
	KindSurface      SpeciesKind = "surface"
	KindSurfaceClass SpeciesKind = "surface_class"
)

// Species is a molecule type or surface class. Species are shared by every
// pathway that mentions them and live for the whole process.
type Species struct {
	Name              string
	Flags             SpeciesFlags
	Hash              uint32
	DiffusionConstant float64
}

// NewSpecies creates a species of the given kind with its hash value derived
// from the name.
func NewSpecies(name string, kind SpeciesKind, diffusion float64) *Species {
	sp := &Species{
		Name:              name,
		Hash:              SpeciesHash(name),
		DiffusionConstant: diffusion,
	}
	switch kind {
	case KindSurface:
		sp.Flags |= OnGrid
	case KindSurfaceClass:
		sp.Flags |= IsSurface
	}
	return sp
}

// NewWildcards returns the three reserved wildcard species.
func NewWildcards() []*Species {
	all := NewSpecies(AllMolecules, KindVolume, 0)
	all.Flags |= WildcardAll
	vol := NewSpecies(AllVolumeMolecules, KindVolume, 0)
	vol.Flags |= WildcardVolume
	surf := NewSpecies(AllSurfaceMolecules, KindSurface, 0)
	surf.Flags |= WildcardSurface
	return []*Species{all, vol, surf}
}

// SpeciesHash is the bucketing hash for a species name.
func SpeciesHash(name string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return h.Sum32()
}

func (s *Species) IsVolume() bool       { return s.Flags&(OnGrid|IsSurface) == 0 }
func (s *Species) IsSurfaceMol() bool   { return s.Flags&OnGrid != 0 }
func (s *Species) IsSurfaceClass() bool { return s.Flags&IsSurface != 0 }
func (s *Species) IsWildcard() bool     { return s.Flags&wildcardFlags != 0 }

// Kind reports the declared classification.
func (s *Species) Kind() SpeciesKind {
	switch {
	case s.IsSurfaceClass():
		return KindSurfaceClass
	case s.IsSurfaceMol():
		return KindSurface
	default:
		return KindVolume
	}
}

// matchesWildcard reports whether concrete species s is covered by wildcard w.
func (s *Species) matchesWildcard(w *Species) bool {
	if s.IsWildcard() || s.IsSurfaceClass() {
		return false
	}
	switch {
	case w.Flags&WildcardAll != 0:
		return true
	case w.Flags&WildcardVolume != 0:
		return s.IsVolume()
	case w.Flags&WildcardSurface != 0:
		return s.IsSurfaceMol()
	}
	return false
}

func speciesNames(list []*Species) string {
	names := make([]string, len(list))
	for i, sp := range list {
		names[i] = sp.Name
	}
	return strings.Join(names, " + ")
}
