// Package explain: functional configuration for pattern estimation and
// relevance scoring. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that resolves derived values.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//     The worker count never changes results, only wall time.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package explain

import (
	"math"
	"runtime"
)

// FeaturePolicy selects what happens to zero-variance feature columns.
type FeaturePolicy int

const (
	// KeepDegenerate leaves zero-variance feature columns unscaled (factor 1).
	// An all-zero or constant term then gets an exactly-zero pattern entry,
	// because scaled predictions have zero mean.
	KeepDegenerate FeaturePolicy = iota

	// FailDegenerate reports the first zero-variance feature column as a
	// *DegenerateColumnError with Source "features".
	FailDegenerate
)

// String returns the lower-case policy name used in configs and logs.
func (p FeaturePolicy) String() string {
	switch p {
	case KeepDegenerate:
		return "keep"
	case FailDegenerate:
		return "fail"
	default:
		return "unknown"
	}
}

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultSimplexEpsilon is the tolerance on |Σ_c P[i,c] − 1|.
	DefaultSimplexEpsilon = 1e-6

	// DefaultFeaturePolicy mirrors unit-variance scaling without centering
	// as commonly implemented: constant columns are left as they are.
	DefaultFeaturePolicy = KeepDegenerate

	// DefaultWorkers = 0 resolves to runtime.GOMAXPROCS(0) at call time.
	DefaultWorkers = 0

	// DefaultPositiveClass is the class whose prediction yields sign +1.
	// Binary models conventionally order classes as (neg, pos).
	DefaultPositiveClass = 1

	// DefaultPartialTopK = false: fewer than k present terms is an error.
	DefaultPartialTopK = false

	// DefaultPredictedClassPattern = false: relevance uses the reference class row.
	DefaultPredictedClassPattern = false
)

// followPositive marks the reference class as "same as the positive class".
const followPositive = -1

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid  = "explain: WithSimplexEpsilon: eps must be finite, non-negative"
	panicPolicyInvalid   = "explain: WithFeaturePolicy: unknown policy"
	panicWorkersInvalid  = "explain: WithWorkers: n must be >= 0"
	panicPositiveInvalid = "explain: WithPositiveClass: class must be >= 0"
	panicRefInvalid      = "explain: WithReferenceClass: class must be >= 0"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option.
type Options struct {
	eps            float64
	featurePolicy  FeaturePolicy
	workers        int
	positiveClass  int
	referenceClass int // followPositive ⇒ positiveClass
	predictedClass bool
	partialTopK    bool
}

// WithSimplexEpsilon sets the row-sum tolerance for prediction matrices.
// Panics when eps is NaN, ±Inf or negative.
func WithSimplexEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithFeaturePolicy selects how zero-variance feature columns are handled.
//
// Behavior highlights:
//   - KeepDegenerate: the column keeps factor 1; its pattern entry is 0.
//   - FailDegenerate: EstimatePattern returns *DegenerateColumnError.
//
// Zero-variance PREDICTION columns always fail; no policy relaxes that.
func WithFeaturePolicy(p FeaturePolicy) Option {
	if p != KeepDegenerate && p != FailDegenerate {
		panic(panicPolicyInvalid)
	}

	return func(o *Options) { o.featurePolicy = p }
}

// WithWorkers bounds the number of goroutines used for per-class projection
// and per-document scoring. n == 0 means runtime.GOMAXPROCS(0); n == 1 runs
// everything on the calling goroutine.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// WithPositiveClass sets the class index whose prediction maps to sign +1.
func WithPositiveClass(c int) Option {
	if c < 0 {
		panic(panicPositiveInvalid)
	}

	return func(o *Options) { o.positiveClass = c }
}

// WithReferenceClass fixes the pattern row used for relevance scoring.
// Unless set, the reference class follows the positive class.
func WithReferenceClass(c int) Option {
	if c < 0 {
		panic(panicRefInvalid)
	}

	return func(o *Options) { o.referenceClass = c }
}

// WithPredictedClassPattern scores every document with the pattern row of
// its own predicted (argmax) class and an effective sign of +1.
//
// Notes:
//   - For binary models both formulations rank tokens identically: the two
//     standardized class columns are exact negations, so are their patterns.
//   - Required for meaningful multi-class explanations.
func WithPredictedClassPattern() Option {
	return func(o *Options) { o.predictedClass = true }
}

// WithPartialTopK makes TopKTokens return all present terms (same order)
// when a document has fewer than k of them, instead of failing.
func WithPartialTopK() Option {
	return func(o *Options) { o.partialTopK = true }
}

// defaultOptions returns the zero-configuration state.
func defaultOptions() Options {
	return Options{
		eps:            DefaultSimplexEpsilon,
		featurePolicy:  DefaultFeaturePolicy,
		workers:        DefaultWorkers,
		positiveClass:  DefaultPositiveClass,
		referenceClass: followPositive,
		predictedClass: DefaultPredictedClassPattern,
		partialTopK:    DefaultPartialTopK,
	}
}

// gatherOptions applies opts over the defaults and resolves derived values.
// Complexity: O(len(opts)).
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.workers == 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	if o.referenceClass == followPositive {
		o.referenceClass = o.positiveClass
	}

	return o
}
