package rxn

import (
	"errors"
	"testing"
)

func TestPropagateFlags_CollisionClasses(t *testing.T) {
	A, B, C := vol("A"), vol("B"), vol("C")
	S, T := surf("S"), surf("T")
	W := wall("W")
	ctx := testContext(A, B, C, S, T, W)

	_, err := Compile(ctx, map[string][]*Pathway{
		"A+B":   {pathway([]Reactant{r(A, 0), r(B, 0)}, []Product{pr(C, 0)}, constant(0.1))},
		"A+S":   {pathway([]Reactant{r(A, 1), r(S, 1)}, []Product{pr(T, 1)}, constant(0.1))},
		"C+W":   {pathway([]Reactant{r(C, 1), r(W, 1)}, nil, constant(0.1))},
		"S+T":   {pathway([]Reactant{r(S, 1), r(T, 1)}, nil, constant(0.1))},
		"A+B+T": {pathway([]Reactant{r(A, 1), r(B, 1), r(T, 1)}, nil, constant(0.1))},
	})
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}

	tests := []struct {
		sp   *Species
		want SpeciesFlags
	}{
		{A, CanVolVol | CanVolSurf | CanVolVolSurf},
		{B, CanVolVol | CanVolVolSurf},
		{C, CanVolWall},
		{S, CanVolSurf | CanSurfSurf},
		{T, CanSurfSurf | CanVolVolSurf},
		{W, 0},
	}
	for _, tt := range tests {
		if got := tt.sp.Flags & capabilityFlags; got != tt.want {
			t.Errorf("species %s: expected capabilities %v, got %v", tt.sp.Name, tt.want.Capabilities(), got.Capabilities())
		}
	}
	if S.Flags&OnGrid == 0 || W.Flags&IsSurface == 0 {
		t.Error("classification bits must be preserved")
	}
}

func TestPropagateFlags_RegionBorder(t *testing.T) {
	S, W := surf("S"), wall("W")
	ctx := testContext(S, W)

	res, err := Compile(ctx, map[string][]*Pathway{
		"S+W": {{Reactants: []Reactant{r(S, 1), r(W, 1)}, Rate: constant(0), Flag: PathwayReflective}},
	})
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	if S.Flags&(CanSurfWall|CanRegionBorder) != CanSurfWall|CanRegionBorder {
		t.Errorf("expected surf-wall and region-border, got %v", S.Flags.Capabilities())
	}
	if !res.Reactions[0].IsSpecial() {
		t.Error("expected a special reaction")
	}
}

func TestPropagateFlags_WildcardExpansion(t *testing.T) {
	A, S, W := vol("A"), surf("S"), wall("W")
	wildcards := NewWildcards()
	all := wildcards[0]
	ctx := NewCompileContext(append([]*Species{A, S, W}, wildcards...), DefaultSettings())

	_, err := Compile(ctx, map[string][]*Pathway{
		"ALL_MOLECULES+W": {{Reactants: []Reactant{r(all, 1), r(W, 1)}, Rate: constant(0), Flag: PathwayAbsorptive}},
	})
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	if A.Flags&CanVolWall == 0 {
		t.Errorf("expected volume species to gain vol-wall, got %v", A.Flags.Capabilities())
	}
	if S.Flags&(CanSurfWall|CanRegionBorder) != CanSurfWall|CanRegionBorder {
		t.Errorf("expected surface species to gain surf-wall and region-border, got %v", S.Flags.Capabilities())
	}
	if W.Flags&capabilityFlags != 0 {
		t.Errorf("surface classes are never expanded, got %v", W.Flags.Capabilities())
	}
	if all.Flags&CanVolWall == 0 {
		t.Errorf("expected the wildcard itself to be flagged, got %v", all.Flags.Capabilities())
	}
}

func TestCheckReactantClasses(t *testing.T) {
	A, B := vol("A"), vol("B")
	S, T := surf("S"), surf("T")
	W, X := wall("W"), wall("X")

	tests := []struct {
		name      string
		reactants []Reactant
		wantErr   bool
	}{
		{"volume pair", []Reactant{r(A, 0), r(B, 0)}, false},
		{"volume and wall", []Reactant{r(A, 1), r(W, 1)}, false},
		{"surface and wall", []Reactant{r(S, 1), r(W, 1)}, false},
		{"surface triple", []Reactant{r(A, 1), r(S, 1), r(T, 1)}, false},
		{"wall alone", []Reactant{r(W, 1)}, true},
		{"two walls", []Reactant{r(W, 1), r(X, 1)}, true},
		{"volume with two walls", []Reactant{r(A, 1), r(W, 1), r(X, 1)}, true},
		{"two volumes and wall", []Reactant{r(A, 1), r(B, 1), r(W, 1)}, true},
		{"wall in three-body", []Reactant{r(S, 1), r(T, 1), r(W, 1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkReactantClasses("test", tt.reactants)
			if tt.wantErr {
				if !errors.Is(err, ErrModel) {
					t.Errorf("expected model error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCompile_FailureLeavesFlagsUntouched(t *testing.T) {
	A, B, C := vol("A"), vol("B"), vol("C")
	ctx := testContext(A, B, C)

	_, err := Compile(ctx, map[string][]*Pathway{
		"A+B": {pathway([]Reactant{r(A, 0), r(B, 0)}, []Product{pr(C, 0)}, constant(0.1))},
		"C": {
			pathway([]Reactant{r(C, 0)}, nil, constant(0.1)),
			pathway([]Reactant{r(C, 0)}, nil, constant(0.2)),
		},
	})
	if !errors.Is(err, ErrModel) {
		t.Fatalf("expected model error, got %v", err)
	}
	if A.Flags&capabilityFlags != 0 || B.Flags&capabilityFlags != 0 {
		t.Error("a failed compile must not change species flags")
	}
}

func TestCollisionFlags_RegionBorderOnlyForBoundaries(t *testing.T) {
	S, W := surf("S"), wall("W")
	tests := []struct {
		flag PathwayFlag
		want bool
	}{
		{PathwayOrdinary, false},
		{PathwayReflective, true},
		{PathwayTransparent, true},
		{PathwayAbsorptive, true},
		{PathwayClamp, false},
	}
	for _, tt := range tests {
		t.Run(tt.flag.String(), func(t *testing.T) {
			flags, err := collisionFlags("S+W", []*Species{S, W}, tt.flag)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if flags[0]&CanSurfWall == 0 {
				t.Errorf("expected surf-wall, got %v", flags[0].Capabilities())
			}
			if got := flags[0]&CanRegionBorder != 0; got != tt.want {
				t.Errorf("region border = %v, want %v", got, tt.want)
			}
		})
	}
}
