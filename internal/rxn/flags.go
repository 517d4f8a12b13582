package rxn

import "sort"

// checkReactantClasses rejects reactant combinations no collision class can
// dispatch. Reactants must be in canonical order.
func checkReactantClasses(name string, reactants []Reactant) error {
	var vol, surf, wall int
	for _, r := range reactants {
		switch {
		case r.Species.IsSurfaceClass():
			wall++
		case r.Species.IsSurfaceMol():
			surf++
		default:
			vol++
		}
	}
	switch {
	case wall > 0 && vol == 0 && surf == 0:
		return modelErrorf(name, "reactants %s are all surfaces", reactantNames(reactants))
	case wall > 1:
		return modelErrorf(name, "reactants %s name more than one surface class", reactantNames(reactants))
	case len(reactants) == 3 && wall == 1 && vol == 2:
		return modelErrorf(name, "two volume molecules cannot react with a surface class: %s", reactantNames(reactants))
	case len(reactants) == 3 && wall == 1:
		return modelErrorf(name, "surface classes cannot take part in three-body reactions: %s", reactantNames(reactants))
	}
	return nil
}

// collisionFlags returns the capability bits to union onto each reactant of
// a reaction with the given canonical reactants.
func collisionFlags(name string, players []*Species, special PathwayFlag) ([]SpeciesFlags, error) {
	out := make([]SpeciesFlags, len(players))
	switch len(players) {
	case 1:
		return out, nil
	case 2:
		a, b := players[0], players[1]
		switch {
		case a.IsVolume() && b.IsVolume():
			out[0], out[1] = CanVolVol, CanVolVol
		case a.IsVolume() && b.IsSurfaceMol(), a.IsSurfaceMol() && b.IsVolume():
			out[0], out[1] = CanVolSurf, CanVolSurf
		case a.IsVolume() && b.IsSurfaceClass():
			out[0] = CanVolWall
		case a.IsSurfaceMol() && b.IsSurfaceMol():
			out[0], out[1] = CanSurfSurf, CanSurfSurf
		case a.IsSurfaceMol() && b.IsSurfaceClass():
			out[0] = CanSurfWall
			switch special {
			case PathwayReflective, PathwayTransparent, PathwayAbsorptive:
				out[0] |= CanRegionBorder
			}
		default:
			return nil, internalErrorf(name, "no collision class for %s + %s", a.Name, b.Name)
		}
		return out, nil
	case 3:
		var vol, surf int
		for _, sp := range players {
			switch {
			case sp.IsSurfaceClass():
				return nil, internalErrorf(name, "surface class %s in three-body reaction", sp.Name)
			case sp.IsSurfaceMol():
				surf++
			default:
				vol++
			}
		}
		var f SpeciesFlags
		switch vol {
		case 3:
			f = CanVolVolVol
		case 2:
			f = CanVolVolSurf
		case 1:
			f = CanVolSurfSurf
		case 0:
			f = CanSurfSurfSurf
		}
		for i := range out {
			out[i] = f
		}
		return out, nil
	}
	return nil, internalErrorf(name, "%d reactants", len(players))
}

// propagateFlags unions collision capabilities onto every species touched by
// the compiled reactions, expanding wildcard reactants onto every concrete
// species of the matching class. All updates are computed before any
// species is modified.
func propagateFlags(ctx *CompileContext, reactions []*Reaction) error {
	updates := make(map[*Species]SpeciesFlags)

	for _, rx := range reactions {
		players := rx.Reactants()
		flags, err := collisionFlags(rx.Name, players, rx.Special)
		if err != nil {
			return err
		}
		for i, sp := range players {
			updates[sp] |= flags[i]
		}
	}

	for _, rx := range reactions {
		players := rx.Reactants()
		for wi, w := range players {
			if !w.IsWildcard() {
				continue
			}
			for _, sp := range ctx.Species {
				if !sp.matchesWildcard(w) {
					continue
				}
				concrete := append([]*Species(nil), players...)
				concrete[wi] = sp
				flags, err := collisionFlags(rx.Name, concrete, rx.Special)
				if err != nil {
					return err
				}
				updates[sp] |= flags[wi]
			}
		}
	}

	touched := make([]*Species, 0, len(updates))
	for sp := range updates {
		touched = append(touched, sp)
	}
	sort.Slice(touched, func(i, j int) bool { return touched[i].Name < touched[j].Name })
	for _, sp := range touched {
		sp.Flags |= updates[sp]
		ctx.Logger.Debugf("Species %s capabilities: %v", sp.Name, sp.Flags.Capabilities())
	}
	return nil
}

func reactantNames(rs []Reactant) string {
	list := make([]*Species, len(rs))
	for i, r := range rs {
		list[i] = r.Species
	}
	return speciesNames(list)
}
