package markov

// ModelStats holds aggregated statistics for a TransitionModel.
type ModelStats struct {
	Order                 int     `json:"order"`
	Prefixes              int     `json:"prefixes"`               // The number of prefixes with at least one successor
	TotalChains           int     `json:"total_chains"`           // The number of unique prefix->next_token links
	TotalFrequency        int     `json:"total_frequency"`        // The number of trained transitions
	StartingPrefixes      int     `json:"starting_prefixes"`      // The number of unique prefixes that can start a sentence
	VocabSize             int     `json:"vocab_size"`             // The number of unique tokens appearing in prefixes or as successors
	Sentences             int     `json:"sentences"`              // The number of sentences scanned
	Tokens                int     `json:"tokens"`                 // The number of tokens scanned
	AverageSentenceLength int     `json:"average_sentence_length"`
	MeanBranching         float64 `json:"mean_branching"` // Average number of distinct successors per prefix
	Normalized            bool    `json:"normalized"`
}

// Stats returns a snapshot of statistics for the model.
func (m *TransitionModel) Stats() ModelStats {
	vocab := make(map[string]struct{})
	var chains, freq int
	for i, row := range m.rows {
		chains += len(row.entries)
		freq += m.occurrences[i]
		for _, tok := range m.prefixes[i].Tokens() {
			vocab[tok] = struct{}{}
		}
		for _, e := range row.entries {
			vocab[e.Item] = struct{}{}
		}
	}

	var branching float64
	if len(m.rows) > 0 {
		branching = float64(chains) / float64(len(m.rows))
	}

	return ModelStats{
		Order:                 m.order,
		Prefixes:              len(m.rows),
		TotalChains:           chains,
		TotalFrequency:        freq,
		StartingPrefixes:      len(m.starts.entries),
		VocabSize:             len(vocab),
		Sentences:             m.sentenceCount,
		Tokens:                m.tokenCount,
		AverageSentenceLength: m.averageSentenceLength,
		MeanBranching:         branching,
		Normalized:            m.normalized,
	}
}
