package markov

// Weighted pairs an item with a positive relative weight. Before
// normalization the weight is an occurrence count; after it, a probability.
type Weighted[K comparable] struct {
	Item   K
	Weight float64
}

// Successor is a token observed to follow a prefix, with its weight.
type Successor = Weighted[string]

// StartPrefix is a sentence-starting prefix with its weight.
type StartPrefix = Weighted[Prefix]

// weightedTable is an insertion-ordered set of weighted items. Items are only
// ever added through increment, so every entry has a positive weight and the
// iteration order is a pure function of the input order.
type weightedTable[K comparable] struct {
	entries []Weighted[K]
	index   map[K]int
	total   float64
}

func newWeightedTable[K comparable]() *weightedTable[K] {
	return &weightedTable[K]{index: make(map[K]int)}
}

// increment inserts item with weight by, or adds by to its existing weight.
func (t *weightedTable[K]) increment(item K, by float64) {
	if i, ok := t.index[item]; ok {
		t.entries[i].Weight += by
	} else {
		t.index[item] = len(t.entries)
		t.entries = append(t.entries, Weighted[K]{Item: item, Weight: by})
	}
	t.total += by
}

// scaled returns a copy of the table with every weight divided by denom.
func (t *weightedTable[K]) scaled(denom float64) *weightedTable[K] {
	out := &weightedTable[K]{
		entries: make([]Weighted[K], len(t.entries)),
		index:   make(map[K]int, len(t.index)),
	}
	for i, e := range t.entries {
		w := e.Weight / denom
		out.entries[i] = Weighted[K]{Item: e.Item, Weight: w}
		out.index[e.Item] = i
		out.total += w
	}
	return out
}

// snapshot returns a copy of the entries safe to hand to callers.
func (t *weightedTable[K]) snapshot() []Weighted[K] {
	out := make([]Weighted[K], len(t.entries))
	copy(out, t.entries)
	return out
}

// TransitionModel is a compiled order-N Markov chain. It is built once by a
// Reader and is read-only afterwards, so a single model may be shared by any
// number of Generators running concurrently.
//
// Rows of the transition table live in an arena addressed by prefix. A row is
// created at the moment its first successor is recorded, so every prefix in
// the table has at least one successor.
type TransitionModel struct {
	order       int
	prefixes    []Prefix
	rows        []*weightedTable[string]
	occurrences []int
	rowIndex    map[Prefix]int
	starts      *weightedTable[Prefix]

	sentenceCount         int
	tokenCount            int
	averageSentenceLength int
	normalized            bool
}

func newTransitionModel(order int) *TransitionModel {
	return &TransitionModel{
		order:    order,
		rowIndex: make(map[Prefix]int),
		starts:   newWeightedTable[Prefix](),
	}
}

// observe records one occurrence of next immediately following prefix.
func (m *TransitionModel) observe(prefix Prefix, next string) {
	i, ok := m.rowIndex[prefix]
	if !ok {
		i = len(m.rows)
		m.rowIndex[prefix] = i
		m.prefixes = append(m.prefixes, prefix)
		m.rows = append(m.rows, newWeightedTable[string]())
		m.occurrences = append(m.occurrences, 0)
	}
	m.rows[i].increment(next, 1)
	m.occurrences[i]++
}

// observeStart records one sentence starting with prefix.
func (m *TransitionModel) observeStart(prefix Prefix) {
	m.starts.increment(prefix, 1)
}

// lookup returns the successor table for prefix. The second result is false
// when the prefix has no recorded continuation.
func (m *TransitionModel) lookup(prefix Prefix) (*weightedTable[string], bool) {
	i, ok := m.rowIndex[prefix]
	if !ok {
		return nil, false
	}
	return m.rows[i], true
}

// Order returns the number of tokens in every prefix of the model.
func (m *TransitionModel) Order() int {
	return m.order
}

// Successors returns the weighted successors of prefix in first-seen order.
// The boolean is false when the prefix was never followed by a token, which
// is the natural end of a chain rather than an error.
func (m *TransitionModel) Successors(prefix Prefix) ([]Successor, bool) {
	row, ok := m.lookup(prefix)
	if !ok {
		return nil, false
	}
	return row.snapshot(), true
}

// Occurrences returns how many times prefix was observed followed by a token.
// It is the sum of the prefix's successor counts, and is unaffected by
// normalization.
func (m *TransitionModel) Occurrences(prefix Prefix) int {
	i, ok := m.rowIndex[prefix]
	if !ok {
		return 0
	}
	return m.occurrences[i]
}

// StartPrefixes returns the weighted sentence-starting prefixes in first-seen
// order.
func (m *TransitionModel) StartPrefixes() []StartPrefix {
	return m.starts.snapshot()
}

// Prefixes returns every prefix of the transition table in first-seen order.
func (m *TransitionModel) Prefixes() []Prefix {
	out := make([]Prefix, len(m.prefixes))
	copy(out, m.prefixes)
	return out
}

// AverageSentenceLength returns the integer mean token count per sentence.
// It is only a hint for generation length.
func (m *TransitionModel) AverageSentenceLength() int {
	return m.averageSentenceLength
}

// SentenceCount returns the number of sentences the model was built from.
func (m *TransitionModel) SentenceCount() int {
	return m.sentenceCount
}

// TokenCount returns the number of tokens the model was built from.
func (m *TransitionModel) TokenCount() int {
	return m.tokenCount
}

// Normalized reports whether weights are probabilities rather than counts.
func (m *TransitionModel) Normalized() bool {
	return m.normalized
}

// Normalize returns a copy of the model in which each successor weight is
// divided by its prefix's occurrence count, and each start weight by the total
// sentence count. Sampling from the copy yields the same distributions as
// sampling from the original. A model that is already normalized is returned
// unchanged.
func (m *TransitionModel) Normalize() *TransitionModel {
	if m.normalized {
		return m
	}
	out := m.shallowCopy()
	out.rows = make([]*weightedTable[string], len(m.rows))
	for i, row := range m.rows {
		out.rows[i] = row.scaled(float64(m.occurrences[i]))
	}
	if m.sentenceCount > 0 {
		out.starts = m.starts.scaled(float64(m.sentenceCount))
	}
	out.normalized = true
	return out
}

// shallowCopy copies the model's scalar fields and clones its index slices.
// Row tables are shared and must be replaced by the caller before mutation.
func (m *TransitionModel) shallowCopy() *TransitionModel {
	out := &TransitionModel{
		order:                 m.order,
		prefixes:              make([]Prefix, len(m.prefixes)),
		rows:                  make([]*weightedTable[string], len(m.rows)),
		occurrences:           make([]int, len(m.occurrences)),
		rowIndex:              make(map[Prefix]int, len(m.rowIndex)),
		starts:                m.starts,
		sentenceCount:         m.sentenceCount,
		tokenCount:            m.tokenCount,
		averageSentenceLength: m.averageSentenceLength,
		normalized:            m.normalized,
	}
	copy(out.prefixes, m.prefixes)
	copy(out.rows, m.rows)
	copy(out.occurrences, m.occurrences)
	for k, v := range m.rowIndex {
		out.rowIndex[k] = v
	}
	return out
}
