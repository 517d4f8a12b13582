package rxn

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// compileProbabilities turns the rates of rx's pathways into calibrated,
// accumulated probabilities. buildPlayers must have run.
func compileProbabilities(ctx *CompileContext, rx *Reaction) error {
	pathways := rx.pathways
	n := len(pathways)
	probs := make([]float64, n)

	for i, p := range pathways {
		switch p.Rate.Kind {
		case RateConstant:
			probs[i] = p.Rate.Constant
		case RateComplex:
			if p.Rate.Complex == nil {
				return internalErrorf(rx.Name, "complex rate without a rate table")
			}
			if rx.ComplexRates == nil {
				rx.ComplexRates = make([]*ComplexRate, n)
			}
			rx.ComplexRates[i] = p.Rate.Complex
		}
	}

	if err := loadSchedule(ctx, rx, probs); err != nil {
		return err
	}
	if err := registerClamps(rx, probs); err != nil {
		return err
	}

	rx.PbFactor = ctx.Calibrator.PbFactor(PbInput{
		Reactants:          rx.Reactants(),
		Orientations:       append([]int(nil), rx.Geometries[:rx.NReactants]...),
		MaxSurfaceProducts: rx.MaxSurfaceProducts,
		SurfaceDensity:     ctx.Settings.SurfaceDensity,
	})
	floats.Scale(rx.PbFactor, probs)
	for i, p := range pathways {
		if p.Flag == PathwayClamp || p.Rate.Always() {
			probs[i] = Gigantic
		}
	}
	for i := range rx.Schedule {
		rx.Schedule[i].Value *= rx.PbFactor
	}

	nFixed := n
	if rx.ComplexRates != nil {
		order := make([]int, 0, n)
		for i := range pathways {
			if rx.ComplexRates[i] == nil {
				order = append(order, i)
			}
		}
		nFixed = len(order)
		for i := range pathways {
			if rx.ComplexRates[i] != nil {
				order = append(order, i)
			}
		}
		if !identity(order) {
			probs = reorderPathways(ctx, rx, order, probs)
		}
	}

	if err := reportProbabilities(ctx, rx, probs); err != nil {
		return err
	}

	rx.CumProbs = make([]float64, n)
	floats.CumSum(rx.CumProbs, probs)
	if nFixed > 0 {
		rx.MaxFixedP = rx.CumProbs[nFixed-1]
	}
	rx.MinNoReactionP = rx.MaxFixedP
	for i := nFixed; i < n; i++ {
		rx.MinNoReactionP += ctx.Calibrator.MaxRate(rx.ComplexRates[i], rx.PbFactor)
	}

	if rx.MaxFixedP > 1.0 && rx.MaxFixedP < Gigantic {
		ctx.raiseProbabilityLimit(rx)
	}
	return nil
}

// loadSchedule merges the rate files of rx's pathways into one time-sorted
// schedule. Entries at time <= 0 override the base probability instead.
func loadSchedule(ctx *CompileContext, rx *Reaction, probs []float64) error {
	for i, p := range rx.pathways {
		if p.Rate.Kind != RateFile {
			continue
		}
		if ctx.RateLoader == nil {
			return internalErrorf(rx.Name, "no rate loader for %s", p.Rate.File)
		}
		samples, err := ctx.RateLoader.LoadRates(p.Rate.File)
		if err != nil {
			return modelErrorf(rx.Name, "%v", err)
		}
		byTime := func(a, b int) bool { return samples[a].Time < samples[b].Time }
		if !sort.SliceIsSorted(samples, byTime) {
			_ = ctx.recoverable(PolicyWarn, rx.Name, "rate file %s is not sorted by time; sorting it", p.Rate.File)
			sort.SliceStable(samples, byTime)
		}
		for _, s := range samples {
			v := s.Value
			if v < 0 {
				if err := ctx.recoverable(ctx.Settings.NegativeRate, rx.Name,
					"negative rate %g at time %g in %s; using 0", v, s.Time, p.Rate.File); err != nil {
					return err
				}
				v = 0
			}
			if s.Time <= 0 {
				probs[i] = v
				continue
			}
			rx.Schedule = append(rx.Schedule, TimeVaryingRate{Time: s.Time, Value: v, Pathway: i})
		}
	}
	sort.SliceStable(rx.Schedule, func(a, b int) bool {
		return rx.Schedule[a].Time < rx.Schedule[b].Time
	})
	return nil
}

// registerClamps moves concentration-clamp pathways onto rx.Clamps.
func registerClamps(rx *Reaction, probs []float64) error {
	for i, p := range rx.pathways {
		if p.Flag != PathwayClamp {
			continue
		}
		switch {
		case rx.NReactants != 2 || !p.Reactants[1].Species.IsSurfaceClass():
			return modelErrorf(rx.Name, "concentration clamp needs a molecule and a surface class")
		case len(p.Products) != 0:
			return modelErrorf(rx.Name, "concentration clamp cannot have products")
		case p.Rate.Kind != RateConstant || p.Rate.Constant < 0:
			return modelErrorf(rx.Name, "concentration clamp needs a non-negative constant concentration")
		}
		rx.Clamps = append(rx.Clamps, ConcentrationClamp{
			Molecule:           p.Reactants[0].Species,
			Orientation:        p.Reactants[0].Orientation,
			SurfaceClass:       p.Reactants[1].Species,
			SurfaceOrientation: p.Reactants[1].Orientation,
			Concentration:      p.Rate.Constant,
		})
		probs[i] = Gigantic
	}
	return nil
}

// reorderPathways applies order (new position -> old index) to every
// per-pathway table of rx and to the references into it.
func reorderPathways(ctx *CompileContext, rx *Reaction, order []int, probs []float64) []float64 {
	n := len(order)
	newPos := make([]int, n)
	for pos, old := range order {
		newPos[old] = pos
	}

	pathways := make([]*Pathway, n)
	newProbs := make([]float64, n)
	complexRates := make([]*ComplexRate, n)
	info := make([]PathwayInfo, n)
	productIdx := make([]int, n+1)
	productIdx[0] = rx.NReactants
	players := append([]*Species(nil), rx.Players[:rx.NReactants]...)
	geometries := append([]int(nil), rx.Geometries[:rx.NReactants]...)
	var subunits []bool
	if rx.Subunits != nil {
		subunits = append([]bool(nil), rx.Subunits[:rx.NReactants]...)
	}

	for pos, old := range order {
		pathways[pos] = rx.pathways[old]
		newProbs[pos] = probs[old]
		complexRates[pos] = rx.ComplexRates[old]
		info[pos] = rx.Info[old]

		lo, hi := rx.ProductIdx[old], rx.ProductIdx[old+1]
		players = append(players, rx.Players[lo:hi]...)
		geometries = append(geometries, rx.Geometries[lo:hi]...)
		if subunits != nil {
			subunits = append(subunits, rx.Subunits[lo:hi]...)
		}
		productIdx[pos+1] = productIdx[pos] + (hi - lo)
	}

	for i := range rx.Schedule {
		rx.Schedule[i].Pathway = newPos[rx.Schedule[i].Pathway]
	}
	for name, ref := range ctx.PathwayNames {
		if ref.Reaction == rx {
			ctx.PathwayNames[name] = PathwayRef{Reaction: rx, Index: newPos[ref.Index]}
		}
	}

	rx.pathways = pathways
	rx.ComplexRates = complexRates
	rx.Info = info
	rx.Players = players
	rx.Geometries = geometries
	rx.Subunits = subunits
	rx.ProductIdx = productIdx
	return newProbs
}

// reportProbabilities emits notices and warnings for high probabilities.
func reportProbabilities(ctx *CompileContext, rx *Reaction, probs []float64) error {
	s := ctx.Settings
	for i, p := range rx.pathways {
		if rx.ComplexRates != nil && rx.ComplexRates[i] != nil {
			continue
		}
		if p.Rate.Always() || p.Flag == PathwayClamp {
			continue
		}
		prob := probs[i]
		notify := s.ProbabilityReport || prob >= s.NotifyProbabilityThreshold
		if prob >= s.WarnProbabilityThreshold {
			switch s.HighProbability {
			case PolicyError:
				return modelErrorf(rx.Name, "probability %.4e for %s reaches the warning threshold %g",
					prob, formatPathway(p), s.WarnProbabilityThreshold)
			case PolicyWarn:
				ctx.notice(ProbabilityNotice{Reaction: rx.Name, Pathway: formatPathwayProbability(p, prob), Probability: prob, Warning: true})
				continue
			}
		}
		if notify {
			ctx.notice(ProbabilityNotice{Reaction: rx.Name, Pathway: formatPathwayProbability(p, prob), Probability: prob})
		}
	}
	return nil
}

func identity(order []int) bool {
	for i, v := range order {
		if i != v {
			return false
		}
	}
	return true
}
