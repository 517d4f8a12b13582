package rxn

import "sort"

// Result is the output of a successful compile.
type Result struct {
	Table *Table
	// Reactions lists every compiled sibling, grouped by reaction name in
	// name order.
	Reactions                []*Reaction
	Notices                  []ProbabilityNotice
	Warnings                 []string
	ProbabilityLimitExceeded bool
}

// Compile turns the pathways filed under each reaction name into runtime
// reactions and publishes them in one hash table. On error nothing is
// published.
func Compile(ctx *CompileContext, reactions map[string][]*Pathway) (*Result, error) {
	names := make([]string, 0, len(reactions))
	for name := range reactions {
		names = append(names, name)
	}
	sort.Strings(names)

	var compiled []*Reaction
	for _, name := range names {
		siblings, err := compileReactionName(ctx, name, reactions[name])
		if err != nil {
			ctx.Logger.Errorf("Compile failed: %v", err)
			return nil, err
		}
		compiled = append(compiled, siblings...)
	}

	max := ctx.Settings.MaxHashSize
	if max == 0 {
		max = DefaultMaxHashSize
	}
	if !isPowerOfTwo(max) {
		return nil, allocationErrorf("hash table cap %d is not a power of two", max)
	}
	table := NewTable(HashTableSize(len(compiled), max))
	for _, rx := range compiled {
		table.insert(rx)
	}

	if err := propagateFlags(ctx, compiled); err != nil {
		ctx.Logger.Errorf("Compile failed: %v", err)
		return nil, err
	}

	for _, rx := range compiled {
		rx.pathways = nil
	}
	ctx.Logger.Infof("Compiled %d reactions from %d reaction names into %d buckets",
		len(compiled), len(names), table.Size())

	return &Result{
		Table:                    table,
		Reactions:                compiled,
		Notices:                  ctx.Notices,
		Warnings:                 ctx.Warnings,
		ProbabilityLimitExceeded: ctx.ProbabilityLimitExceeded,
	}, nil
}

// compileReactionName compiles the sibling reactions of one reaction name.
func compileReactionName(ctx *CompileContext, name string, pathways []*Pathway) ([]*Reaction, error) {
	prepared, n, err := preparePathways(ctx, name, pathways)
	if err != nil {
		return nil, err
	}

	groups := splitPathways(prepared, n)
	if err := checkDuplicateSpecial(name, groups, n); err != nil {
		return nil, err
	}
	ctx.Logger.Debugf("Reaction %s: %d pathways in %d siblings", name, len(prepared), len(groups))

	siblings := make([]*Reaction, 0, len(groups))
	for _, g := range groups {
		rx := &Reaction{Name: name, NReactants: n, Special: g[0].Flag}
		if g[0].Flag.Special() && g[0].Flag != PathwayClamp {
			compileSpecial(rx, g[0])
			siblings = append(siblings, rx)
			continue
		}

		ordered, err := checkDuplicatePathways(name, g, n)
		if err != nil {
			return nil, err
		}
		rx.pathways = ordered
		rx.NPathways = len(ordered)

		if err := buildPlayers(rx, ordered); err != nil {
			return nil, err
		}
		rx.Info = make([]PathwayInfo, len(ordered))
		for i, p := range ordered {
			rx.Info[i].Name = p.Name
			if p.Name == "" {
				continue
			}
			if _, dup := ctx.PathwayNames[p.Name]; dup {
				return nil, modelErrorf(name, "pathway name %s is already used", p.Name)
			}
			ctx.PathwayNames[p.Name] = PathwayRef{Reaction: rx, Index: i}
		}

		if err := compileProbabilities(ctx, rx); err != nil {
			return nil, err
		}
		siblings = append(siblings, rx)
	}
	return siblings, nil
}

// compileSpecial builds a boundary reaction: reactants only, no pathways.
func compileSpecial(rx *Reaction, p *Pathway) {
	rx.NPathways = SpecialPathways
	rx.Players = make([]*Species, rx.NReactants)
	rx.Geometries = make([]int, rx.NReactants)
	for i, r := range p.Reactants {
		rx.Players[i] = r.Species
		rx.Geometries[i] = r.Orientation
	}
	if p.Name != "" {
		rx.Info = []PathwayInfo{{Name: p.Name}}
	}
}
