package markov

import (
	"math"
	"math/rand/v2"
	"sort"
)

// chooseWeighted selects one entry with probability proportional to its weight
// relative to total, the sum of all weights. It is the single selection
// routine behind both start-prefix seeding and successor sampling. A table
// with one entry always yields that entry. The boolean is false only for an
// empty table.
func chooseWeighted[K comparable](rng *rand.Rand, entries []Weighted[K], total float64) (K, bool) {
	var zero K
	switch len(entries) {
	case 0:
		return zero, false
	case 1:
		return entries[0].Item, true
	}

	randChoice := rng.Float64() * total
	for _, e := range entries {
		randChoice -= e.Weight
		if randChoice < 0 {
			return e.Item, true
		}
	}
	// Rounding can leave a sliver of randChoice behind; it belongs to the last entry.
	return entries[len(entries)-1].Item, true
}

// choose applies the generator's top-K and temperature shaping to a weighted
// table and then samples from it with chooseWeighted. With the default options
// (temperature 1, top-K disabled) the table is sampled as-is.
func choose[K comparable](rng *rand.Rand, entries []Weighted[K], total float64, options *generateOptions) (K, bool) {
	if len(entries) == 0 {
		var zero K
		return zero, false
	}

	// topK filtering
	if options.topK > 0 && options.topK < len(entries) {
		sorted := make([]Weighted[K], len(entries))
		copy(sorted, entries)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Weight > sorted[j].Weight
		})
		entries = sorted[:options.topK]
		total = 0
		for _, e := range entries {
			total += e.Weight
		}
	}

	switch {
	case options.temperature <= 0: // Deterministic
		best := entries[0]
		for _, e := range entries[1:] {
			if e.Weight > best.Weight {
				best = e
			}
		}
		return best.Item, true
	case options.temperature == 1.0: // Standard weighted random
		return chooseWeighted(rng, entries, total)
	default: // Temperature-based sampling
		maxLog := math.Inf(-1)
		logs := make([]float64, len(entries))
		for i, e := range entries {
			logs[i] = math.Log(e.Weight) / options.temperature
			if logs[i] > maxLog {
				maxLog = logs[i]
			}
		}
		reweighted := make([]Weighted[K], len(entries))
		var reweightedTotal float64
		for i, e := range entries {
			w := math.Exp(logs[i] - maxLog)
			reweighted[i] = Weighted[K]{Item: e.Item, Weight: w}
			reweightedTotal += w
		}
		return chooseWeighted(rng, reweighted, reweightedTotal)
	}
}
