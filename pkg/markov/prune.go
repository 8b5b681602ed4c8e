package markov

// Prune returns a copy of the model without the chain links whose weight is
// less than or equal to minFreq. Removing rare links shrinks the model and
// drops much of the noise of a small corpus. Prefixes left with no successors
// are removed entirely, so every remaining prefix still has a continuation.
// It also returns the number of links removed.
//
// Prune is meant for count-weighted models; on a normalized model minFreq is
// compared against probabilities.
func (m *TransitionModel) Prune(minFreq float64) (*TransitionModel, int) {
	out := m.shallowCopy()
	out.prefixes = out.prefixes[:0]
	out.rows = out.rows[:0]
	out.occurrences = out.occurrences[:0]
	clear(out.rowIndex)

	removed := 0
	for i, row := range m.rows {
		kept := newWeightedTable[string]()
		occurrences := 0
		for _, e := range row.entries {
			if e.Weight <= minFreq {
				removed++
				continue
			}
			kept.increment(e.Item, e.Weight)
			if !m.normalized {
				occurrences += int(e.Weight)
			}
		}
		if len(kept.entries) == 0 {
			continue
		}
		if m.normalized {
			// Probabilities do not carry counts; keep the recorded total.
			occurrences = m.occurrences[i]
		}
		out.rowIndex[m.prefixes[i]] = len(out.rows)
		out.prefixes = append(out.prefixes, m.prefixes[i])
		out.rows = append(out.rows, kept)
		out.occurrences = append(out.occurrences, occurrences)
	}
	return out, removed
}
