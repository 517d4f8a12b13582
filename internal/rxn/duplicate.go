package rxn

import "sort"

// checkDuplicatePathways rejects pathways within one sibling group that are
// indistinguishable. It returns the group reordered by product signature,
// with destructive pathways last.
func checkDuplicatePathways(name string, group []*Pathway, n int) ([]*Pathway, error) {
	var destructive, rest []*Pathway
	for _, p := range group {
		if p.Signature() == "" {
			destructive = append(destructive, p)
		} else {
			rest = append(rest, p)
		}
	}

	// Both pathways are already known to share geometry, and neither
	// leaves anything behind.
	if len(destructive) > 1 {
		return nil, &DuplicatePathwayError{
			Reaction: name,
			First:    formatPathway(destructive[0]),
			Second:   formatPathway(destructive[1]),
		}
	}

	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].Signature() < rest[j].Signature()
	})

	for start := 0; start < len(rest); {
		end := start + 1
		for end < len(rest) && rest[end].Signature() == rest[start].Signature() {
			end++
		}
		for i := start; i < end; i++ {
			for j := i + 1; j < end; j++ {
				if samePlayerGeometry(rest[i], rest[j], n) {
					return nil, &DuplicatePathwayError{
						Reaction: name,
						First:    formatPathway(rest[i]),
						Second:   formatPathway(rest[j]),
					}
				}
			}
		}
		start = end
	}

	return append(rest, destructive...), nil
}

// samePlayerGeometry compares every pairwise orientation relationship among
// all players of two pathways with the same product signature. Reactant
// pairs are skipped: the splitter already guarantees them.
func samePlayerGeometry(a, b *Pathway, n int) bool {
	oa, ob := a.orientations(), b.orientations()
	if len(oa) != len(ob) {
		return false
	}
	for i := 0; i < len(oa); i++ {
		for j := i + 1; j < len(oa); j++ {
			if j < n {
				continue
			}
			if !equivalentPair(oa[i], oa[j], ob[i], ob[j]) {
				return false
			}
		}
	}
	return true
}

// checkDuplicateSpecial rejects two special pathways of one reaction name
// that carry the same flag and equivalent geometry.
func checkDuplicateSpecial(name string, groups [][]*Pathway, n int) error {
	var specials []*Pathway
	for _, g := range groups {
		if g[0].Flag.Special() {
			specials = append(specials, g[0])
		}
	}
	for i := 0; i < len(specials); i++ {
		for j := i + 1; j < len(specials); j++ {
			a, b := specials[i], specials[j]
			if a.Flag == b.Flag && equivalentGeometry(a, b, n) {
				return &DuplicatePathwayError{
					Reaction: name,
					First:    formatPathway(a),
					Second:   formatPathway(b),
				}
			}
		}
	}
	return nil
}
