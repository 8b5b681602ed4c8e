package markov

import (
	"context"
)

// GenerateStream generates one sentence and returns a read-only channel of its
// Tokens. This allows for processing the generated text token-by-token, which
// is useful for real-time applications. After the last word a final Token
// with EOC set and empty text is sent. The channel will be closed once
// generation is complete or the context is cancelled.
//
// ErrEmptyModel is returned immediately if the model cannot seed a sentence.
func (g *Generator) GenerateStream(ctx context.Context) (<-chan Token, error) {
	if len(g.model.starts.entries) == 0 {
		return nil, ErrEmptyModel
	}

	tokenChan := make(chan Token)

	go func() {
		defer close(tokenChan)

		send := func(tok Token) bool {
			select {
			case <-ctx.Done():
				return false
			case tokenChan <- tok:
				return true
			}
		}

		_, err := g.walk(ctx, func(text string) bool {
			return send(Token{Text: text})
		})
		if err != nil {
			g.logger.DebugContext(ctx, "Generation stream cancelled by context")
			return
		}
		send(Token{EOC: true})
	}()

	return tokenChan, nil
}
