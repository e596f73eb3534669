// Package whitebox explains the predictions of linear text classifiers.
//
// A trained model is a black box to the people reading its output. whitebox
// turns it into a white one: it estimates a global "pattern" that ties every
// vocabulary term to every class, then ranks the terms of each document by
// how strongly they push the prediction that was actually made.
//
// What is inside?
//
//	matrix/     dense and CSR matrices, column statistics, sparse products
//	explain/    pattern estimation, per-document relevance, top-k tokens
//	vocab/      index ↔ term mapping
//	textvec/    tokenizer and TF-IDF vectorizer
//	linear/     linear classifier and YAML model bundles
//	corpus/     labelled review corpus loader
//	highlight/  marks explained terms in the original text
//	report/     terminal tables and protobuf/JSON exports
//	pipeline/   the end-to-end batch run
//	cmd/whitebox  command-line front end
//
// Quick start:
//
//	b, _ := linear.Load("model.yaml")
//	docs, _ := corpus.LoadDir("aclImdb", corpus.SplitTest)
//	res, _ := pipeline.Explain(ctx, docs, b.Model, b.Vectorizer,
//		pipeline.Options{TopK: 3, PositiveClass: &b.PositiveClass})
//	fmt.Println(res.Tokens[0])
//
// The core is explain.EstimatePattern. Given predictions P (n×C) and
// features X (n×m) it standardizes the prediction columns, scales the
// feature columns to unit variance without centering, and projects one onto
// the other: pattern[c] = Zᵀ[:,c]·S.
package whitebox
