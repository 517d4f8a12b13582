package rxn

import (
	"errors"
	"testing"
)

func TestHashTableSize(t *testing.T) {
	tests := []struct {
		count, max, want int
	}{
		{0, 1 << 16, 1},
		{1, 1 << 16, 2},
		{3, 1 << 16, 8},
		{4, 1 << 16, 8},
		{5, 1 << 16, 16},
		{100, 64, 64},
	}
	for _, tt := range tests {
		if got := HashTableSize(tt.count, tt.max); got != tt.want {
			t.Errorf("HashTableSize(%d, %d) = %d, want %d", tt.count, tt.max, got, tt.want)
		}
	}
}

func TestTable_BucketIsMaskedHashSum(t *testing.T) {
	A := withHash(vol("A"), 5)
	B := withHash(vol("B"), 9)
	C := withHash(vol("C"), 7)

	table := NewTable(16)
	ab := &Reaction{Name: "A+B", NReactants: 2, Players: []*Species{A, B}}
	c := &Reaction{Name: "C", NReactants: 1, Players: []*Species{C}}
	table.insert(ab)
	table.insert(c)

	if got := table.HashIndex(A, B); got != 14 {
		t.Errorf("expected bucket 14 for A+B, got %d", got)
	}
	if b := table.Bucket(14); len(b) != 1 || b[0] != ab {
		t.Errorf("expected A+B alone in bucket 14, got %v", b)
	}
	if b := table.Bucket(7); len(b) != 1 || b[0] != c {
		t.Errorf("expected C alone in bucket 7, got %v", b)
	}
	if got := table.Lookup(B, A); len(got) != 1 || got[0] != ab {
		t.Errorf("expected lookup to ignore reactant order, got %v", got)
	}
	if got := table.Lookup(A); len(got) != 0 {
		t.Errorf("expected no reaction keyed on A alone, got %v", got)
	}
}

func TestTable_InsertPrepends(t *testing.T) {
	A := withHash(vol("A"), 3)
	B := withHash(vol("B"), 19)

	table := NewTable(16)
	first := &Reaction{Name: "A", NReactants: 1, Players: []*Species{A}}
	second := &Reaction{Name: "B", NReactants: 1, Players: []*Species{B}}
	table.insert(first)
	table.insert(second)

	b := table.Bucket(3)
	if len(b) != 2 || b[0] != second || b[1] != first {
		t.Fatalf("expected the later reaction first in a shared bucket, got %v", b)
	}
	if got := table.Lookup(A); len(got) != 1 || got[0] != first {
		t.Errorf("expected lookup to skip colliding reactions, got %v", got)
	}
	if all := table.Reactions(); len(all) != 2 || all[0] != first {
		t.Errorf("expected reactions in insertion order, got %v", all)
	}
}

func TestCompile_TableSizing(t *testing.T) {
	A := withHash(vol("A"), 5)
	B := withHash(vol("B"), 9)
	C := withHash(vol("C"), 7)
	ctx := testContext(A, B, C)

	res, err := Compile(ctx, map[string][]*Pathway{
		"A+B": {pathway([]Reactant{r(A, 0), r(B, 0)}, []Product{pr(C, 0)}, constant(0.1))},
		"C":   {pathway([]Reactant{r(C, 0)}, nil, constant(0.1))},
	})
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	if res.Table.Size() != 4 {
		t.Errorf("expected table size 4, got %d", res.Table.Size())
	}
	if got := res.Table.Lookup(A, B); len(got) != 1 {
		t.Errorf("expected A+B in the table, got %v", got)
	}
	if got := res.Table.HashIndex(C); got != 3 {
		t.Errorf("expected C in bucket 3, got %d", got)
	}
}

func TestCompile_HashCap(t *testing.T) {
	A, B := vol("A"), vol("B")

	ctx := testContext(A, B)
	ctx.Settings.MaxHashSize = 1
	res, err := Compile(ctx, map[string][]*Pathway{
		"A": {pathway([]Reactant{r(A, 0)}, []Product{pr(B, 0)}, constant(0.1))},
		"B": {pathway([]Reactant{r(B, 0)}, []Product{pr(A, 0)}, constant(0.1))},
	})
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	if res.Table.Size() != 1 || len(res.Table.Bucket(0)) != 2 {
		t.Errorf("expected both reactions chained in a single bucket")
	}

	ctx = testContext(A, B)
	ctx.Settings.MaxHashSize = 12
	if _, err := Compile(ctx, map[string][]*Pathway{
		"A": {pathway([]Reactant{r(A, 0)}, []Product{pr(B, 0)}, constant(0.1))},
	}); !errors.Is(err, ErrAllocation) {
		t.Errorf("expected an allocation error for a cap that is not a power of two, got %v", err)
	}
}
