// Package explain derives white-box explanations for linear text classifiers.
//
// Raw coefficients of a linear model are not valid explanations when the
// input features are correlated, which is virtually always the case for
// natural text. Instead, explain computes a global per-class *pattern*
// (the covariance between scaled predictions and scaled features, a = Xᵗŷ)
// and turns it into per-document token relevance scores.
//
// The package offers two stages:
//
//   - EstimatePattern
//
//   - Input:  predictions P (n×C, rows on the probability simplex) and
//     non-negative sparse features X (n×d).
//
//   - Phase 1: z-score every class column of P (population variance) and
//     divide every column of X by its population standard deviation
//     WITHOUT centering, so X stays sparse. The asymmetry is part of the
//     method and changes the numbers; it is kept on purpose.
//
//   - Phase 2: Pattern[c] = Pᵗ[:,c] · X for every class c, classes in
//     parallel, strictly after both scaling steps completed.
//
//   - ScoreDocument + TopKTokens
//
//   - relevance = sign · 1[x > 0] · pattern, stored only at the terms the
//     document contains.
//
//   - TopKTokens ranks by (value desc, index asc) and returns indices.
//
// # Errors
//
//	ErrShapeMismatch     - row counts or dimensionality differ.
//	ErrDegenerateColumn  - zero-variance column during scaling (see *DegenerateColumnError).
//	ErrInvalidArgument   - k out of range, bad sign, malformed sparse input,
//	                       off-simplex predictions, negative features.
//
// Nothing in this package logs, retries or mutates its inputs; every result
// is a fresh value, safe to share between goroutines.
//
// # Options
//
// All entry points accept ...Option:
//
//	WithSimplexEpsilon(eps)      // row-sum tolerance for predictions (1e-6)
//	WithFeaturePolicy(policy)    // KeepDegenerate (default) or FailDegenerate
//	WithWorkers(n)               // parallelism bound; 0 = GOMAXPROCS
//	WithPositiveClass(c)         // class mapped to sign +1 (1)
//	WithReferenceClass(c)        // pattern row used for relevance (= positive)
//	WithPredictedClassPattern()  // use the predicted class row, sign +1
//	WithPartialTopK()            // return fewer than k present terms instead of failing
//
// # Example
//
//	pat, err := explain.EstimatePattern(P, X)
//	if err != nil { ... }
//	ex, err := explain.NewExplainer(pat)
//	if err != nil { ... }
//	row, _ := X.Row(0)
//	doc, err := ex.Explain(row, probs, 3)
package explain
