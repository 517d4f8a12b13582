package rxn

// splitPathways partitions the pathways of one reaction name into sibling
// groups of geometry-equivalent pathways. Special pathways always get a
// group of their own and never absorb later pathways. Within a group the
// most recently added pathway comes first; groups keep creation order.
func splitPathways(pathways []*Pathway, n int) [][]*Pathway {
	if len(pathways) == 0 {
		return nil
	}
	groups := [][]*Pathway{{pathways[0]}}

	for _, p := range pathways[1:] {
		if p.Flag.Special() {
			groups = append(groups, []*Pathway{p})
			continue
		}

		placed := false
		for gi, g := range groups {
			head := g[0]
			if head.Flag.Special() {
				continue
			}
			// representative is the first pathway the group was seeded with
			rep := g[len(g)-1]
			if equivalentGeometry(rep, p, n) {
				groups[gi] = append([]*Pathway{p}, g...)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []*Pathway{p})
		}
	}
	return groups
}
