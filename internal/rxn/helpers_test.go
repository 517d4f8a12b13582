package rxn

func vol(name string) *Species  { return NewSpecies(name, KindVolume, 1e-6) }
func surf(name string) *Species { return NewSpecies(name, KindSurface, 1e-8) }
func wall(name string) *Species { return NewSpecies(name, KindSurfaceClass, 0) }

func withHash(sp *Species, h uint32) *Species {
	sp.Hash = h
	return sp
}

func r(sp *Species, o int) Reactant { return Reactant{Species: sp, Orientation: o} }
func pr(sp *Species, o int) Product { return Product{Species: sp, Orientation: o} }

func constant(k float64) Rate { return Rate{Kind: RateConstant, Constant: k} }

func pathway(reactants []Reactant, products []Product, rate Rate) *Pathway {
	return &Pathway{Reactants: reactants, Products: products, Rate: rate}
}

// testContext returns a context over species with a unit calibration factor
// and probability warnings disabled.
func testContext(species ...*Species) *CompileContext {
	s := DefaultSettings()
	s.NotifyProbabilityThreshold = 2
	s.WarnProbabilityThreshold = 2
	ctx := NewCompileContext(append(species, NewWildcards()...), s)
	return ctx
}

// recordingLogger keeps every message by level.
type recordingLogger struct {
	infos, warns, errors []string
}

func (l *recordingLogger) Debugf(format string, v ...any) {}
func (l *recordingLogger) Infof(format string, v ...any) {
	l.infos = append(l.infos, format)
}
func (l *recordingLogger) Warnf(format string, v ...any) {
	l.warns = append(l.warns, format)
}
func (l *recordingLogger) Errorf(format string, v ...any) {
	l.errors = append(l.errors, format)
}
