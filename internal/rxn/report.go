package rxn

import (
	"fmt"
	"strings"
)

// formatPathway renders p as "A{1} + B{-1} -> C{1}".
func formatPathway(p *Pathway) string {
	var b strings.Builder
	for i, r := range p.Reactants {
		if i > 0 {
			b.WriteString(" + ")
		}
		fmt.Fprintf(&b, "%s{%d}", r.Species.Name, r.Orientation)
	}
	b.WriteString(" -> ")
	if len(p.Products) == 0 {
		b.WriteString("NULL")
	}
	for i, prod := range p.Products {
		if i > 0 {
			b.WriteString(" + ")
		}
		fmt.Fprintf(&b, "%s{%d}", prod.Species.Name, prod.Orientation)
	}
	return b.String()
}

func formatPathwayProbability(p *Pathway, prob float64) string {
	return fmt.Sprintf("%s [%.4e]", formatPathway(p), prob)
}

// FormatPathway renders pathway i of a compiled reaction, products included.
func (rx *Reaction) FormatPathway(i int) string {
	var b strings.Builder
	for r, sp := range rx.Reactants() {
		if r > 0 {
			b.WriteString(" + ")
		}
		fmt.Fprintf(&b, "%s{%d}", sp.Name, rx.Geometries[r])
	}
	b.WriteString(" ->")
	lo, hi := rx.ProductIdx[i], rx.ProductIdx[i+1]
	first := true
	for k := lo; k < hi; k++ {
		if rx.Players[k] == nil {
			continue
		}
		if !first {
			b.WriteString(" +")
		}
		first = false
		fmt.Fprintf(&b, " %s{%d}", rx.Players[k].Name, rx.Geometries[k])
	}
	if first {
		b.WriteString(" NULL")
	}
	return b.String()
}
