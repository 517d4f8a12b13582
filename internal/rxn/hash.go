package rxn

// HashTableSize returns the smallest power of two not less than twice
// count, capped at max. max must itself be a power of two.
func HashTableSize(count, max int) int {
	size := 1
	for size < 2*count && size < max {
		size <<= 1
	}
	if size > max {
		size = max
	}
	return size
}

// isPowerOfTwo reports whether n is a positive power of two.
func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Table is the reaction hash table. It is built once by Compile and then
// only read, so concurrent readers need no locking.
type Table struct {
	buckets   [][]*Reaction
	mask      uint32
	reactions []*Reaction
}

// NewTable creates an empty table of the given power-of-two size.
func NewTable(size int) *Table {
	if !isPowerOfTwo(size) {
		size = HashTableSize(size, DefaultMaxHashSize)
	}
	return &Table{
		buckets: make([][]*Reaction, size),
		mask:    uint32(size - 1),
	}
}

// Size is the number of buckets.
func (t *Table) Size() int { return len(t.buckets) }

// HashIndex is the bucket of a reaction keyed on the given reactants: the
// sum of their hash values masked to the table size.
func (t *Table) HashIndex(reactants ...*Species) uint32 {
	var sum uint32
	for _, sp := range reactants {
		sum += sp.Hash
	}
	return sum & t.mask
}

// insert prepends rx to its bucket chain.
func (t *Table) insert(rx *Reaction) {
	idx := t.HashIndex(rx.Reactants()...)
	t.buckets[idx] = append([]*Reaction{rx}, t.buckets[idx]...)
	t.reactions = append(t.reactions, rx)
}

// Bucket returns the chain at index i.
func (t *Table) Bucket(i uint32) []*Reaction {
	return t.buckets[i&t.mask]
}

// Lookup walks the bucket of the given reactants and returns every reaction
// keyed on exactly those species, in any order.
func (t *Table) Lookup(reactants ...*Species) []*Reaction {
	var out []*Reaction
	for _, rx := range t.Bucket(t.HashIndex(reactants...)) {
		if rx.hasReactants(reactants) {
			out = append(out, rx)
		}
	}
	return out
}

// Reactions returns every reaction in insertion order.
func (t *Table) Reactions() []*Reaction {
	return t.reactions
}
