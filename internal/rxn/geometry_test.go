package rxn

import "testing"

func TestOrientationRelation(t *testing.T) {
	tests := []struct {
		a, b int
		want relation
	}{
		{1, 1, parallel},
		{-1, -1, parallel},
		{1, -1, antiparallel},
		{2, -2, antiparallel},
		{1, 2, independent},
		{0, 1, independent},
		{0, 0, independent},
	}
	for _, tt := range tests {
		if got := orientationRelation(tt.a, tt.b); got != tt.want {
			t.Errorf("orientationRelation(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestEquivalentPairIsSymmetric(t *testing.T) {
	values := []int{-2, -1, 0, 1, 2}
	for _, a := range values {
		for _, b := range values {
			for _, c := range values {
				for _, d := range values {
					if equivalentPair(a, b, c, d) != equivalentPair(c, d, a, b) {
						t.Fatalf("equivalentPair not symmetric for %d %d %d %d", a, b, c, d)
					}
				}
			}
		}
	}
}

func TestEquivalentGeometry_Unimolecular(t *testing.T) {
	A := surf("A")
	p1 := pathway([]Reactant{r(A, 1)}, nil, constant(1))
	p2 := pathway([]Reactant{r(A, -1)}, nil, constant(1))
	if !equivalentGeometry(p1, p2, 1) {
		t.Error("unimolecular pathways should always be equivalent")
	}
}

func TestEquivalentGeometry_TwoReactants(t *testing.T) {
	A, B := surf("A"), surf("B")
	tests := []struct {
		name   string
		o1, o2 [2]int
		want   bool
	}{
		{"both parallel", [2]int{1, 1}, [2]int{-1, -1}, true},
		{"both antiparallel", [2]int{1, -1}, [2]int{-1, 1}, true},
		{"parallel vs antiparallel", [2]int{1, 1}, [2]int{1, -1}, false},
		{"both independent by class", [2]int{1, 2}, [2]int{2, -1}, true},
		{"independent by zero", [2]int{0, 1}, [2]int{1, 2}, true},
		{"independent vs parallel", [2]int{0, 1}, [2]int{1, 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p1 := pathway([]Reactant{r(A, tt.o1[0]), r(B, tt.o1[1])}, nil, constant(1))
			p2 := pathway([]Reactant{r(A, tt.o2[0]), r(B, tt.o2[1])}, nil, constant(1))
			if got := equivalentGeometry(p1, p2, 2); got != tt.want {
				t.Errorf("equivalentGeometry = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEquivalentGeometry_SubunitMismatch(t *testing.T) {
	A, B := surf("A"), surf("B")
	p1 := pathway([]Reactant{r(A, 1), r(B, 1)}, nil, constant(1))
	p2 := pathway([]Reactant{{Species: A, Orientation: 1, Subunit: true}, r(B, 1)}, nil, constant(1))
	if equivalentGeometry(p1, p2, 2) {
		t.Error("pathways with different subunit flags should not be equivalent")
	}
}

func TestEquivalentGeometry_ThreeReactants(t *testing.T) {
	A, B, C := surf("A"), surf("B"), surf("C")
	p1 := pathway([]Reactant{r(A, 1), r(B, 1), r(C, -1)}, nil, constant(1))
	p2 := pathway([]Reactant{r(A, -1), r(B, -1), r(C, 1)}, nil, constant(1))
	p3 := pathway([]Reactant{r(A, 1), r(B, -1), r(C, -1)}, nil, constant(1))
	if !equivalentGeometry(p1, p2, 3) {
		t.Error("globally flipped pathways should be equivalent")
	}
	if equivalentGeometry(p1, p3, 3) {
		t.Error("pathways with different A-B relationship should not be equivalent")
	}
}

func TestEquivalentGeometry_IdenticalPair(t *testing.T) {
	A, S := vol("A"), surf("S")
	// the identical molecules can be swapped without changing the geometry
	p1 := pathway([]Reactant{r(A, 1), r(A, -1), r(S, 1)}, nil, constant(1))
	p2 := pathway([]Reactant{r(A, -1), r(A, 1), r(S, 1)}, nil, constant(1))
	if !equivalentGeometry(p1, p2, 3) {
		t.Error("swapping identical reactants should keep pathways equivalent")
	}

	p3 := pathway([]Reactant{r(A, 1), r(A, 1), r(S, 1)}, nil, constant(1))
	if equivalentGeometry(p1, p3, 3) {
		t.Error("parallel and antiparallel identical reactants should not be equivalent")
	}

	p4 := pathway([]Reactant{r(A, 1), r(A, 1), r(S, -1)}, nil, constant(1))
	if equivalentGeometry(p3, p4, 3) {
		t.Error("different relationship to the surface molecule should not be equivalent")
	}
}
