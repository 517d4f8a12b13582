package rxn

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestBuildModelFromConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Settings = SettingsConfig{
		PbFactor:              floatPtr(1e-6),
		ProbabilityReport:     true,
		HighProbabilityPolicy: "error",
		MaxHashSize:           256,
	}

	m, err := BuildModelFromConfig(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, ok := m.Species("B")
	if !ok || !b.IsSurfaceMol() {
		t.Fatalf("expected surface species B, got %+v", b)
	}
	if w, _ := m.Species("W"); !w.IsSurfaceClass() {
		t.Error("expected W to be a surface class")
	}
	if _, ok := m.Species(AllSurfaceMolecules); !ok {
		t.Error("expected wildcard species to be defined")
	}

	if got := m.ReactionNames(); len(got) != 3 || got[0] != "A+B" || got[1] != "A+W" || got[2] != "B" {
		t.Errorf("unexpected reaction names %v", got)
	}
	if p := m.Pathways("A+W"); len(p) != 1 || p[0].Flag != PathwayReflective {
		t.Errorf("expected a reflective pathway under A+W, got %v", p)
	}
	if p := m.Pathways("B"); p[0].Rate.Kind != RateComplex || p[0].Rate.Complex.Name != "gate" {
		t.Errorf("expected the complex rate to be resolved, got %+v", p[0].Rate)
	}

	if m.PbFactor != 1e-6 || !m.Settings.ProbabilityReport || m.Settings.HighProbability != PolicyError {
		t.Errorf("settings not applied: pb=%v settings=%+v", m.PbFactor, m.Settings)
	}
	if m.Settings.MaxHashSize != 256 || m.Settings.NegativeRate != PolicyWarn {
		t.Errorf("expected unset policies to keep their defaults, got %+v", m.Settings)
	}
}

func TestBuildModelFromConfig_UnknownSpecies(t *testing.T) {
	cfg := validConfig()
	cfg.Reactions[0].Products[0].Species = "Z"
	if _, err := BuildModelFromConfig(cfg); err == nil {
		t.Fatal("expected error for an unknown product")
	}
}

func TestCompileModel_FromJSON(t *testing.T) {
	data := []byte(`{
		"name": "decay",
		"species": [
			{"name": "A", "diffusion": 1e-6},
			{"name": "B", "diffusion": 1e-6}
		],
		"reactions": [
			{"name": "a_to_b", "reactants": [{"species": "A"}], "products": [{"species": "B"}], "rate": {"constant": 1e6}}
		],
		"settings": {"pb_factor": 1e-6, "high_probability_policy": "cope"}
	}`)

	var cfg ModelConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if err := ValidateModelConfig(cfg); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	m, err := BuildModelFromConfig(cfg)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	ctx := m.NewCompileContext()
	res, err := CompileModel(ctx, m)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	if len(res.Reactions) != 1 || res.Reactions[0].CumProbs[0] != 1.0 {
		t.Fatalf("unexpected compile result %+v", res.Reactions)
	}
	ref, ok := ctx.PathwayNames["a_to_b"]
	if !ok || ref.Reaction != res.Reactions[0] || ref.Index != 0 {
		t.Errorf("expected a_to_b to be registered, got %+v", ref)
	}
	a, _ := m.Species("A")
	if a.Flags&capabilityFlags != 0 {
		t.Errorf("unimolecular reactions add no collision capabilities, got %v", a.Flags.Capabilities())
	}
}

func TestCompileModel_ErrorPolicy(t *testing.T) {
	A, B := vol("A"), vol("B")
	m := NewModel("strict").WithSpecies(A, B).WithPathways(
		pathway([]Reactant{r(A, 0)}, []Product{pr(B, 0)}, constant(2)),
	)
	m.Settings.HighProbability = PolicyError

	res, err := CompileModel(m.NewCompileContext(), m)
	if !errors.Is(err, ErrModel) {
		t.Fatalf("expected model error, got %v", err)
	}
	var ce *CompileError
	if !errors.As(err, &ce) || ce.Reaction != "A" {
		t.Errorf("expected the error to name reaction A, got %v", err)
	}
	if res != nil {
		t.Error("expected no result on failure")
	}
}
