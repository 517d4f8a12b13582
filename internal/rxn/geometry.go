package rxn

// relation is the orientation relationship between two oriented players.
type relation int

const (
	independent relation = iota
	parallel
	antiparallel
)

// orientationRelation classifies a pair of orientations. Players in the same
// nonzero orientation class are parallel or antiparallel; a zero orientation
// or a different class makes them independent.
func orientationRelation(a, b int) relation {
	if a == 0 || b == 0 || abs(a) != abs(b) {
		return independent
	}
	if a == b {
		return parallel
	}
	return antiparallel
}

// equivalentPair compares the relationship of (o1a, o1b) in one pathway
// with that of (o2a, o2b) in another.
func equivalentPair(o1a, o1b, o2a, o2b int) bool {
	return orientationRelation(o1a, o1b) == orientationRelation(o2a, o2b)
}

// equivalentGeometry reports whether pathways p1 and p2, both with n
// reactants in canonical order, can be dispatched by the same runtime
// reaction.
func equivalentGeometry(p1, p2 *Pathway, n int) bool {
	for i := 0; i < n; i++ {
		if p1.Reactants[i].Subunit != p2.Reactants[i].Subunit {
			return false
		}
	}

	switch n {
	case 1:
		return true
	case 2:
		return equivalentPair(
			p1.Reactants[0].Orientation, p1.Reactants[1].Orientation,
			p2.Reactants[0].Orientation, p2.Reactants[1].Orientation)
	case 3:
		if i, j, k, ok := identicalPair(p1); ok {
			if i2, j2, _, ok2 := identicalPair(p2); ok2 && i2 == i && j2 == j {
				return equivalentIdenticalPair(p1, p2, i, j, k)
			}
		}
		o1 := [3]int{p1.Reactants[0].Orientation, p1.Reactants[1].Orientation, p1.Reactants[2].Orientation}
		o2 := [3]int{p2.Reactants[0].Orientation, p2.Reactants[1].Orientation, p2.Reactants[2].Orientation}
		return equivalentPair(o1[0], o1[1], o2[0], o2[1]) &&
			equivalentPair(o1[0], o1[2], o2[0], o2[2]) &&
			equivalentPair(o1[1], o1[2], o2[1], o2[2])
	}
	return false
}

// identicalPair finds two reactant slots holding the same species in a
// three-reactant pathway; k is the remaining slot.
func identicalPair(p *Pathway) (i, j, k int, ok bool) {
	r := p.Reactants
	switch {
	case r[0].Species == r[1].Species:
		return 0, 1, 2, true
	case r[1].Species == r[2].Species:
		return 1, 2, 0, true
	case r[0].Species == r[2].Species:
		return 0, 2, 1, true
	}
	return 0, 0, 0, false
}

// equivalentIdenticalPair handles two identical molecules and a third
// reactant. The identical molecules are interchangeable, so only their
// mutual relationship and the unordered pair of their relationships to the
// third reactant matter.
func equivalentIdenticalPair(p1, p2 *Pathway, i, j, k int) bool {
	classify := func(p *Pathway) (relation, relation, relation) {
		oi, oj, ok := p.Reactants[i].Orientation, p.Reactants[j].Orientation, p.Reactants[k].Orientation
		mols := orientationRelation(oi, oj)
		a, b := orientationRelation(oi, ok), orientationRelation(oj, ok)
		if a > b {
			a, b = b, a
		}
		return mols, a, b
	}
	m1, a1, b1 := classify(p1)
	m2, a2, b2 := classify(p2)
	return m1 == m2 && a1 == a2 && b1 == b2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
