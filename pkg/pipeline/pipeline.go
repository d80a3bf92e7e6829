// Package pipeline provides the shared load → operate → render flow used by
// the CLI and the HTTP API. Centralizing the dispatch here keeps operation
// names, caching behavior, and result encoding identical across entry
// points.
//
// Operations are deterministic in their operands, so results are cached
// under content hashes of the serialized definitions. The cache is optional;
// a [cache.NullCache] disables reuse without changing behavior.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/automatalib/automata/pkg/cache"
	"github.com/automatalib/automata/pkg/definition"
	"github.com/automatalib/automata/pkg/fa"
	"github.com/automatalib/automata/pkg/fa/dfa"
	"github.com/automatalib/automata/pkg/observability"
)

// Operation names accepted by [Runner.Apply].
const (
	OpMinify     = "minify"
	OpComplement = "complement"
	OpUnion      = "union"
	OpIntersect  = "intersect"
	OpDifference = "difference"
	OpSymDiff    = "symdiff"
	OpConvert    = "convert"
)

// Predicate names accepted by [Runner.Check].
const (
	CheckSubset   = "subset"
	CheckSuperset = "superset"
	CheckDisjoint = "disjoint"
	CheckEqual    = "equal"
	CheckEmpty    = "empty"
	CheckFinite   = "finite"
)

// binaryOps maps each binary operation to its DFA method.
var binaryOps = map[string]func(*dfa.DFA, *dfa.DFA, ...dfa.OpOption) (*dfa.DFA, error){
	OpUnion:      (*dfa.DFA).Union,
	OpIntersect:  (*dfa.DFA).Intersect,
	OpDifference: (*dfa.DFA).Difference,
	OpSymDiff:    (*dfa.DFA).SymmetricDifference,
}

// DefaultCacheTTL bounds how long cached operation results are kept.
const DefaultCacheTTL = 24 * time.Hour

// Runner executes operations over automaton definitions.
type Runner struct {
	cache  cache.Cache
	logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil logger
// discards log output.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{cache: c, logger: logger}
}

// Request names an operation and its operands. Right is required only for
// binary operations.
type Request struct {
	Operation string
	Left      *definition.Definition
	Right     *definition.Definition

	// RetainNames keeps composite state names through minimization.
	RetainNames bool
	// SkipMinify returns raw products without minimizing.
	SkipMinify bool
}

// Apply runs the requested operation and returns the resulting automaton as
// a definition. Results of prior runs are reused from the cache when the
// operands hash identically.
func (r *Runner) Apply(ctx context.Context, req Request) (*definition.Definition, error) {
	key, err := r.requestKey(req)
	if err != nil {
		return nil, err
	}
	if cached, ok := r.lookup(ctx, key); ok {
		return cached, nil
	}

	start := time.Now()
	observability.Operation().OnOperationStart(ctx, req.Operation, len(req.Left.States))

	result, err := r.apply(req)

	states := 0
	if result != nil {
		states = len(result.States)
	}
	observability.Operation().OnOperationComplete(ctx, req.Operation, states, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("operation complete", "op", req.Operation, "states", states, "elapsed", time.Since(start))
	r.storeResult(ctx, key, result)
	return result, nil
}

func (r *Runner) apply(req Request) (*definition.Definition, error) {
	if op, ok := binaryOps[req.Operation]; ok {
		left, right, err := r.operandPair(req)
		if err != nil {
			return nil, err
		}
		result, err := op(left, right, r.opOptions(req)...)
		if err != nil {
			return nil, err
		}
		return definition.FromDFA("", result), nil
	}

	switch req.Operation {
	case OpMinify:
		left, err := req.Left.ToDFA()
		if err != nil {
			return nil, err
		}
		return definition.FromDFA("", left.Minify(req.RetainNames)), nil

	case OpComplement:
		left, err := req.Left.ToDFA()
		if err != nil {
			return nil, err
		}
		return definition.FromDFA("", left.Complement()), nil

	case OpConvert:
		machine, err := req.Left.ToNFA()
		if err != nil {
			return nil, err
		}
		converted, err := dfa.FromNFA(machine)
		if err != nil {
			return nil, err
		}
		return definition.FromDFA("", converted), nil

	default:
		return nil, fmt.Errorf("unknown operation %q", req.Operation)
	}
}

// Check evaluates a language predicate. Right is ignored for the unary
// predicates empty and finite.
func (r *Runner) Check(ctx context.Context, predicate string, left, right *definition.Definition) (bool, error) {
	a, err := left.ToDFA()
	if err != nil {
		return false, err
	}

	switch predicate {
	case CheckEmpty:
		return a.IsEmpty(), nil
	case CheckFinite:
		return a.IsFinite(), nil
	}

	if right == nil {
		return false, fmt.Errorf("predicate %q needs two automata", predicate)
	}
	b, err := right.ToDFA()
	if err != nil {
		return false, err
	}

	switch predicate {
	case CheckSubset:
		return a.IsSubset(b)
	case CheckSuperset:
		return a.IsSuperset(b)
	case CheckDisjoint:
		return a.IsDisjoint(b)
	case CheckEqual:
		return a.Equal(b)
	default:
		return false, fmt.Errorf("unknown predicate %q", predicate)
	}
}

// Run executes recognition of the input word and returns the visited states.
// accepted is false and err nil on a plain rejection; err is non-nil only
// for structural failures.
func (r *Runner) Run(ctx context.Context, def *definition.Definition, input []string) (trace []string, accepted bool, err error) {
	a, err := def.ToDFA()
	if err != nil {
		return nil, false, err
	}

	symbols := make([]fa.Symbol, len(input))
	for i, s := range input {
		symbols[i] = fa.Symbol(s)
	}

	steps, readErr := a.ReadInputStepwise(symbols)
	trace = make([]string, len(steps))
	for i, s := range steps {
		trace[i] = string(s)
	}
	if readErr == nil {
		return trace, true, nil
	}
	if fa.IsRejection(readErr) {
		return trace, false, nil
	}
	return trace, false, readErr
}

func (r *Runner) operandPair(req Request) (*dfa.DFA, *dfa.DFA, error) {
	if req.Right == nil {
		return nil, nil, fmt.Errorf("operation %q needs two automata", req.Operation)
	}
	left, err := req.Left.ToDFA()
	if err != nil {
		return nil, nil, err
	}
	right, err := req.Right.ToDFA()
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func (r *Runner) opOptions(req Request) []dfa.OpOption {
	var opts []dfa.OpOption
	if req.RetainNames {
		opts = append(opts, dfa.RetainNames())
	}
	if req.SkipMinify {
		opts = append(opts, dfa.SkipMinify())
	}
	return opts
}

// requestKey hashes the full request into a cache key.
func (r *Runner) requestKey(req Request) (string, error) {
	leftData, err := definition.Marshal(req.Left)
	if err != nil {
		return "", err
	}
	hashes := []string{cache.Hash(leftData)}
	if req.Right != nil {
		rightData, err := definition.Marshal(req.Right)
		if err != nil {
			return "", err
		}
		hashes = append(hashes, cache.Hash(rightData))
	}
	op := req.Operation
	if req.RetainNames {
		op += "+names"
	}
	if req.SkipMinify {
		op += "+raw"
	}
	return cache.ResultKey(op, hashes...), nil
}

func (r *Runner) lookup(ctx context.Context, key string) (*definition.Definition, bool) {
	data, ok, err := r.cache.Get(ctx, key)
	if err != nil || !ok {
		if err != nil {
			r.logger.Warn("cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "result")
		return nil, false
	}
	def, err := definition.Read(bytes.NewReader(data))
	if err != nil {
		// Corrupt entry; drop it and recompute.
		_ = r.cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, "result")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "result")
	return def, true
}

func (r *Runner) storeResult(ctx context.Context, key string, def *definition.Definition) {
	data, err := definition.Marshal(def)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, key, data, DefaultCacheTTL); err != nil {
		r.logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "result", len(data))
}
