// Package functions implements the named-signature registry that the
// relational-plan translator consults: scalar and aggregate
// function signatures, arity+type overload resolution, and the registry's
// semver gate on emitted-plan compatibility.
package functions

import (
	"fmt"
	"sync"

	"github.com/mlql/mlql/internal/ir"
)

// Kind discriminates a signature's calling convention.
type Kind int

const (
	Scalar Kind = iota
	Aggregate
	Window
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Aggregate:
		return "aggregate"
	case Window:
		return "window"
	default:
		return "unknown"
	}
}

// ArgType is a declared parameter or return type for a Signature. Unknown is
// the polymorphic wildcard: it matches any call-site type during overload
// resolution.
type ArgType ir.TypeKind

const Unknown ArgType = ArgType(ir.TypeUnknown)

// Signature is one overload of a named function.
type Signature struct {
	Name    string
	Kind    Kind
	Args    []ArgType
	Returns ArgType
}

// Arity reports the number of declared arguments.
func (s Signature) Arity() int { return len(s.Args) }

// Matches reports whether callArgs (the inferred types at a call site) match
// this signature: same arity, and each position equal or the signature's
// declared type is Unknown.
func (s Signature) Matches(callArgs []ArgType) bool {
	if len(callArgs) != len(s.Args) {
		return false
	}
	for i, declared := range s.Args {
		if declared == Unknown {
			continue
		}
		if declared != callArgs[i] {
			return false
		}
	}
	return true
}

// Registry holds every known function's overload list, keyed by name. It is
// safe for concurrent use; a single Registry is normally shared across many
// sequential, single-threaded translations.
type Registry struct {
	mu        sync.RWMutex
	overloads map[string][]Signature
	version   string
}

// Version is the semver string the default registry declares; it gates
// compatibility of plans emitted against this build's function set.
const Version = "1.0.0"

// New returns an empty registry at Version.
func New() *Registry {
	return &Registry{overloads: make(map[string][]Signature), version: Version}
}

// Version returns the registry's semver gate string.
func (r *Registry) Version() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

// Register appends sig to the overload list for sig.Name.
func (r *Registry) Register(sig Signature) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overloads[sig.Name] = append(r.overloads[sig.Name], sig)
}

// Resolve returns the first registered overload of name whose arity and
// argument types match callArgs, per Signature.Matches. It returns false if
// name is unknown or no overload matches.
func (r *Registry) Resolve(name string, callArgs []ArgType) (Signature, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, sig := range r.overloads[name] {
		if sig.Matches(callArgs) {
			return sig, true
		}
	}
	return Signature{}, false
}

// Lookup returns every registered overload of name, for callers that need
// to report available signatures rather than resolve a concrete call.
func (r *Registry) Lookup(name string) ([]Signature, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sigs, ok := r.overloads[name]
	return sigs, ok
}

// errUnresolved is returned by ResolveOrError in place of a bare bool.
func errUnresolved(name string, callArgs []ArgType) error {
	return fmt.Errorf("functions: no overload of %q matches argument types %v", name, callArgs)
}

// ResolveOrError is Resolve with an error return, for callers that want to
// propagate the failure directly.
func (r *Registry) ResolveOrError(name string, callArgs []ArgType) (Signature, error) {
	sig, ok := r.Resolve(name, callArgs)
	if !ok {
		return Signature{}, errUnresolved(name, callArgs)
	}
	return sig, nil
}

// Default returns a registry pre-populated with the builtin functions every
// MLQL installation carries: mask, approx_percentile, fts_rank,
// vector_similarity, and the standard aggregates.
func Default() *Registry {
	r := New()
	for _, sig := range builtins() {
		r.Register(sig)
	}
	return r
}

func builtins() []Signature {
	f64 := ArgType(ir.TypeFloat64)
	str := ArgType(ir.TypeString)
	vec := ArgType(ir.TypeVector)

	return []Signature{
		{Name: "mask", Kind: Scalar, Args: []ArgType{str}, Returns: str},
		{Name: "approx_percentile", Kind: Aggregate, Args: []ArgType{f64, f64}, Returns: f64},
		{Name: "fts_rank", Kind: Scalar, Args: []ArgType{str, str}, Returns: f64},
		{Name: "vector_similarity", Kind: Scalar, Args: []ArgType{vec, vec}, Returns: f64},
		{Name: "count", Kind: Aggregate, Args: nil, Returns: ArgType(ir.TypeInt64)},
		{Name: "count", Kind: Aggregate, Args: []ArgType{Unknown}, Returns: ArgType(ir.TypeInt64)},
		{Name: "sum", Kind: Aggregate, Args: []ArgType{Unknown}, Returns: Unknown},
		{Name: "avg", Kind: Aggregate, Args: []ArgType{Unknown}, Returns: f64},
		{Name: "min", Kind: Aggregate, Args: []ArgType{Unknown}, Returns: Unknown},
		{Name: "max", Kind: Aggregate, Args: []ArgType{Unknown}, Returns: Unknown},
	}
}
