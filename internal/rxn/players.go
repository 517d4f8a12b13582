package rxn

// productSlots assigns each product of p a position in the pathway's block:
// 0..n-1 for a product recycled into reactant slot r, n+t for the t-th
// true product. It also returns the number of true products.
func productSlots(p *Pathway, n int) ([]int, int) {
	slots := make([]int, len(p.Products))
	recycled := make([]bool, n)
	trueProducts := 0
	for pi, prod := range p.Products {
		slot := -1
		for r := 0; r < n; r++ {
			if !recycled[r] && prod.Species == p.Reactants[r].Species {
				recycled[r] = true
				slot = r
				break
			}
		}
		if slot < 0 {
			slot = n + trueProducts
			trueProducts++
		}
		slots[pi] = slot
	}
	return slots, trueProducts
}

// buildPlayers lays out the players, geometries and product index of rx
// from its ordered pathways.
func buildPlayers(rx *Reaction, pathways []*Pathway) error {
	n := rx.NReactants
	head := pathways[0]

	slots := make([][]int, len(pathways))
	rx.ProductIdx = make([]int, len(pathways)+1)
	rx.ProductIdx[0] = n
	subunits := false
	for i, p := range pathways {
		var nTrue int
		slots[i], nTrue = productSlots(p, n)
		rx.ProductIdx[i+1] = rx.ProductIdx[i] + n + nTrue

		surf := 0
		for _, prod := range p.Products {
			if prod.Species.IsSurfaceMol() {
				surf++
			}
			subunits = subunits || prod.Subunit
		}
		if surf > rx.MaxSurfaceProducts {
			rx.MaxSurfaceProducts = surf
		}
	}
	for _, r := range head.Reactants {
		subunits = subunits || r.Subunit
	}

	total := rx.ProductIdx[len(pathways)]
	rx.Players = make([]*Species, total)
	rx.Geometries = make([]int, total)
	if subunits {
		rx.Subunits = make([]bool, total)
	}

	for r := 0; r < n; r++ {
		rx.Players[r] = head.Reactants[r].Species
		rx.Geometries[r] = head.Reactants[r].Orientation
		if subunits {
			rx.Subunits[r] = head.Reactants[r].Subunit
		}
	}

	for i, p := range pathways {
		base := rx.ProductIdx[i]
		for pi, prod := range p.Products {
			k := base + slots[i][pi]
			if rx.Players[k] != nil {
				return internalErrorf(rx.Name, "player slot %d assigned twice", k)
			}
			rx.Players[k] = prod.Species
			rx.Geometries[k] = productGeometry(p, slots[i], pi, n)
			if subunits {
				rx.Subunits[k] = prod.Subunit
			}
		}
	}
	return nil
}

// productGeometry computes the geometry code of product pi of p. Codes
// 1..n refer to the reactants, n+1.. to positions of the pathway's block
// (recycle slots first, then true products), all 1-based. A negative code
// inverts the referenced orientation; 0 means random.
func productGeometry(p *Pathway, slots []int, pi, n int) int {
	o := p.Products[pi].Orientation
	if o == 0 {
		return 0
	}
	for r := 0; r < n; r++ {
		if g := matchOrientation(o, p.Reactants[r].Orientation); g != 0 {
			return g * (r + 1)
		}
	}
	for prev := 0; prev < pi; prev++ {
		if g := matchOrientation(o, p.Products[prev].Orientation); g != 0 {
			return g * (n + slots[prev] + 1)
		}
	}
	return 0
}

// matchOrientation returns 1 if a and b are equal, -1 if they are inverse
// and 0 otherwise. Zero orientations never match.
func matchOrientation(a, b int) int {
	switch {
	case a == 0 || b == 0:
		return 0
	case a == b:
		return 1
	case a == -b:
		return -1
	}
	return 0
}
