package rxn

import "gonum.org/v1/gonum/floats"

// PbInput describes a reaction to the probability calibration.
type PbInput struct {
	Reactants          []*Species
	Orientations       []int
	MaxSurfaceProducts int
	SurfaceDensity     float64
}

// Calibrator converts physical rates into per-event probabilities. Both
// methods must be pure.
type Calibrator interface {
	PbFactor(in PbInput) float64
	MaxRate(table *ComplexRate, pbFactor float64) float64
}

// ConstantCalibrator applies one calibration factor to every reaction.
type ConstantCalibrator struct {
	Factor float64
}

func (c ConstantCalibrator) PbFactor(PbInput) float64 { return c.Factor }

// MaxRate is the largest rate of the table scaled by pbFactor.
func (c ConstantCalibrator) MaxRate(table *ComplexRate, pbFactor float64) float64 {
	if table == nil || len(table.Rates) == 0 {
		return 0
	}
	return floats.Max(table.Rates) * pbFactor
}
