package rxn

import "testing"

func TestParseWarnPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    WarnPolicy
		wantErr bool
	}{
		{"cope", PolicyCope, false},
		{"IGNORE", PolicyCope, false},
		{"warn", PolicyWarn, false},
		{"Warning", PolicyWarn, false},
		{"error", PolicyError, false},
		{"panic", PolicyWarn, true},
	}
	for _, tt := range tests {
		got, err := ParseWarnPolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseWarnPolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseWarnPolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if !tt.wantErr && got.String() == "unknown" {
			t.Errorf("policy %v has no name", got)
		}
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.HighProbability != PolicyWarn || s.NegativeRate != PolicyWarn {
		t.Errorf("expected warn policies by default, got %+v", s)
	}
	if s.MaxHashSize != DefaultMaxHashSize || !isPowerOfTwo(s.MaxHashSize) {
		t.Errorf("unexpected hash cap %d", s.MaxHashSize)
	}
}

func TestConstantCalibrator_MaxRate(t *testing.T) {
	c := ConstantCalibrator{Factor: 2}
	if got := c.MaxRate(&ComplexRate{Rates: []float64{1, 4, 3}}, 0.5); got != 2 {
		t.Errorf("expected 2, got %v", got)
	}
	if got := c.MaxRate(&ComplexRate{}, 0.5); got != 0 {
		t.Errorf("expected 0 for an empty table, got %v", got)
	}
}
