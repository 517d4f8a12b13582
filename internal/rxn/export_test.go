package rxn

import (
	"reflect"
	"testing"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	A, B, W := vol("A"), vol("B"), wall("W")
	ctx := testContext(A, B, W)

	named := pathway([]Reactant{r(A, 0)}, []Product{pr(B, 0)}, constant(0.5))
	named.Name = "decay"
	res, err := Compile(ctx, map[string][]*Pathway{
		"A":   {named},
		"A+W": {{Reactants: []Reactant{r(A, 1), r(W, 1)}, Rate: constant(0), Flag: PathwayAbsorptive}},
	})
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}

	snap := res.Snapshot()
	if snap.Size != res.Table.Size() || len(snap.Reactions) != 2 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	decay := snap.Reactions[0]
	if want := []string{"A", "", "B"}; !reflect.DeepEqual(decay.Players, want) {
		t.Errorf("expected players %v, got %v", want, decay.Players)
	}
	if want := []string{"decay"}; !reflect.DeepEqual(decay.PathwayNames, want) {
		t.Errorf("expected pathway names %v, got %v", want, decay.PathwayNames)
	}
	if decay.Bucket != res.Table.HashIndex(A) {
		t.Errorf("expected bucket %d, got %d", res.Table.HashIndex(A), decay.Bucket)
	}

	border := snap.Reactions[1]
	if border.Special != "absorptive" || border.NPathways != SpecialPathways {
		t.Errorf("unexpected special snapshot %+v", border)
	}

	data, err := EncodeTableJSON(snap)
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	decoded, err := DecodeTableJSON(data)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if !reflect.DeepEqual(decoded, snap) {
		t.Errorf("expected %+v, got %+v", snap, decoded)
	}
}

func TestDecodeTableJSON_Invalid(t *testing.T) {
	if _, err := DecodeTableJSON([]byte("{")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
