package rxn

import "sort"

// preparePathways copies the pathways of one reaction name and brings them
// into canonical form: reactants ordered, products sorted by name and
// orientation, subunit counts matched, rates and
// orientations checked against the context's policies. It returns the
// reactant count.
func preparePathways(ctx *CompileContext, name string, pathways []*Pathway) ([]*Pathway, int, error) {
	if len(pathways) == 0 {
		return nil, 0, internalErrorf(name, "no pathways")
	}

	out := make([]*Pathway, len(pathways))
	n := len(pathways[0].Reactants)
	var key string
	for i, src := range pathways {
		p := src.Clone()
		if len(p.Reactants) == 0 {
			return nil, 0, modelErrorf(name, "pathway without reactants")
		}
		if len(p.Reactants) > 3 {
			return nil, 0, modelErrorf(name, "%d reactants; at most three are supported", len(p.Reactants))
		}
		canonicalizeReactants(p.Reactants)
		if i == 0 {
			key = ReactionKey(p.Reactants)
		} else if len(p.Reactants) != n || ReactionKey(p.Reactants) != key {
			return nil, 0, internalErrorf(name, "pathways filed together have different reactants")
		}
		if err := checkReactantClasses(name, p.Reactants); err != nil {
			return nil, 0, err
		}

		sort.SliceStable(p.Products, func(a, b int) bool {
			pa, pb := p.Products[a], p.Products[b]
			if pa.Species.Name != pb.Species.Name {
				return pa.Species.Name < pb.Species.Name
			}
			return pa.Orientation < pb.Orientation
		})
		if err := checkSubunits(name, p); err != nil {
			return nil, 0, err
		}

		if p.Rate.Kind == RateConstant && p.Rate.Constant < 0 {
			if err := ctx.recoverable(ctx.Settings.NegativeRate, name,
				"negative rate %g for %s; using 0", p.Rate.Constant, formatPathway(p)); err != nil {
				return nil, 0, err
			}
			p.Rate.Constant = 0
		}

		if err := checkOrientations(ctx, name, p); err != nil {
			return nil, 0, err
		}
		out[i] = p
	}
	return out, n, nil
}

// checkOrientations applies the orientation policies. Orientation is only
// meaningful when a surface takes part in the reaction.
func checkOrientations(ctx *CompileContext, name string, p *Pathway) error {
	oriented := false
	for _, r := range p.Reactants {
		if !r.Species.IsVolume() {
			oriented = true
		}
	}

	if !oriented {
		useless := false
		for _, o := range p.orientations() {
			useless = useless || o != 0
		}
		if !useless {
			return nil
		}
		if err := ctx.recoverable(ctx.Settings.UselessOrientation, name,
			"orientation has no meaning for %s; ignoring it", formatPathway(p)); err != nil {
			return err
		}
		for i := range p.Reactants {
			p.Reactants[i].Orientation = 0
		}
		for i := range p.Products {
			p.Products[i].Orientation = 0
		}
		return nil
	}

	for _, r := range p.Reactants {
		if r.Orientation == 0 && !r.Species.IsVolume() {
			if err := ctx.recoverable(ctx.Settings.MissingOrientation, name,
				"orientation not specified for %s in %s", r.Species.Name, formatPathway(p)); err != nil {
				return err
			}
		}
	}
	for _, prod := range p.Products {
		if prod.Orientation == 0 && prod.Species.IsSurfaceMol() {
			if err := ctx.recoverable(ctx.Settings.MissingOrientation, name,
				"orientation not specified for product %s in %s", prod.Species.Name, formatPathway(p)); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkSubunits requires a pathway to produce as many complex subunits as it
// consumes.
func checkSubunits(name string, p *Pathway) error {
	var in, out int
	for _, r := range p.Reactants {
		if r.Subunit {
			in++
		}
	}
	for _, prod := range p.Products {
		if prod.Subunit {
			out++
		}
	}
	if in != out {
		return modelErrorf(name, "%d subunit reactants but %d subunit products in %s", in, out, formatPathway(p))
	}
	return nil
}
