package rxn

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseRates(t *testing.T) {
	input := `# time rate
0 1e3

1.5, 2e3
3	4e3
`
	samples, err := ParseRates(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []RateSample{{0, 1e3}, {1.5, 2e3}, {3, 4e3}}
	if !reflect.DeepEqual(samples, want) {
		t.Errorf("expected %v, got %v", want, samples)
	}
}

func TestParseRates_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single field", "1.0\n", "line 1: expected time and rate"},
		{"bad time", "0 1\nx 2\n", "line 2: bad time"},
		{"bad rate", "0 fast\n", "line 1: bad rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRates(strings.NewReader(tt.input))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestFileRateLoader(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "k.txt"), []byte("0 5\n2 7\n"), 0o644); err != nil {
		t.Fatalf("failed to write rate file: %v", err)
	}

	samples, err := FileRateLoader{Dir: dir}.LoadRates("k.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 2 || samples[1] != (RateSample{Time: 2, Value: 7}) {
		t.Errorf("unexpected samples %v", samples)
	}

	if _, err := (FileRateLoader{Dir: dir}).LoadRates("missing.txt"); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestMapRateLoader_ReturnsCopy(t *testing.T) {
	loader := MapRateLoader{"k": {{Time: 2, Value: 1}, {Time: 1, Value: 2}}}
	samples, _ := loader.LoadRates("k")
	samples[0].Time = 99
	if loader["k"][0].Time != 2 {
		t.Error("expected the loader's table to be left untouched")
	}
}

func TestCompile_RateFileNegativeEntry(t *testing.T) {
	A, B := vol("A"), vol("B")
	ctx := testContext(A, B)
	ctx.RateLoader = MapRateLoader{"k": {{Time: 0, Value: -1}, {Time: 1, Value: 0.2}}}

	res, err := Compile(ctx, map[string][]*Pathway{
		"A": {pathway([]Reactant{r(A, 0)}, []Product{pr(B, 0)}, Rate{Kind: RateFile, File: "k"})},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rx := res.Reactions[0]
	if rx.CumProbs[0] != 0 {
		t.Errorf("expected the negative base rate to be clamped, got %v", rx.CumProbs[0])
	}
	if len(rx.Schedule) != 1 || rx.Schedule[0].Value != 0.2 {
		t.Errorf("unexpected schedule %v", rx.Schedule)
	}
	if len(res.Warnings) != 1 {
		t.Errorf("expected one warning, got %v", res.Warnings)
	}
}
