/*
Package markov builds order-N Markov chain models of word order from a text
corpus and generates new, structurally similar sentences from them.

A Reader consumes one or more documents, splits them into sentences and
tokens with a Tokenizer, and compiles a TransitionModel: a table mapping each
N-token Prefix to the tokens observed to follow it, together with the
prefixes that start sentences. Once built, the model is read-only and may be
shared by any number of Generators, each of which performs a weighted random
walk over the table to emit sentences bounded by a maximum length.

	r, _ := markov.NewReader(markov.NewDefaultTokenizer(), markov.WithOrder(2))
	_ = r.ReadString(ctx, corpus)
	model, _ := r.Build(ctx)

	g, _ := markov.NewGenerator(model, markov.WithMaxLength(25))
	sentences, _ := g.Generate(ctx, 10)
*/
package markov
