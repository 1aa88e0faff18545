// Package domain contains the schema analysis logic for schemalens.
package domain

import (
	"errors"
	"fmt"
	"sort"

	m "schemalens.dev/pkg/schemalens/internal/model"
	pkg "schemalens.dev/pkg/schemalens/pkg"
)

// Binding and query failures. All of them are caller bugs: the analyzer
// never retries and a failed call leaves its state untouched.
var (
	// ErrUnknownArgument means a name does not exist in the schema.
	ErrUnknownArgument = errors.New("unknown argument")
	// ErrOutOfRange means an index is outside the schema's positions.
	ErrOutOfRange = errors.New("position out of range")
	// ErrArityMismatch means a positional batch is longer than the schema arity.
	ErrArityMismatch = errors.New("more values than schema arguments")
)

// AnalyzerOption configures a CallAliasAnalyzer.
type AnalyzerOption func(*CallAliasAnalyzer)

// WithAliasImpliedMutability folds aliasing into the per-position
// mutability answer: a position also counts as mutable for this call when
// its refined alias set contains a writable position, since a write
// through the partner is visible through shared storage. The default
// answers only the position's own write flag.
func WithAliasImpliedMutability() AnalyzerOption {
	return func(a *CallAliasAnalyzer) {
		a.foldAliases = true
	}
}

// CallAliasAnalyzer refines one schema's static alias annotations with
// the identities of the values bound for a single call, and answers
// mutability and aliasing queries about that call.
//
// One analyzer models one in-flight call. Instances are not safe for
// concurrent use; the schema itself may be shared read-only.
type CallAliasAnalyzer struct {
	schema      m.Schema
	values      map[string]m.Value
	foldAliases bool

	// aliases is the refined alias graph, regenerated lazily whenever a
	// binding marks it stale. Reflexive edges are never stored.
	aliases map[m.Position]map[m.Position]struct{}
	updated bool
}

// NewCallAliasAnalyzer creates an analyzer for one call of schema.
func NewCallAliasAnalyzer(schema m.Schema, options ...AnalyzerOption) *CallAliasAnalyzer {
	analyzer := &CallAliasAnalyzer{
		schema: schema,
		values: make(map[string]m.Value),
	}

	for _, option := range options {
		option(analyzer)
	}

	return analyzer
}

// Schema returns the schema under analysis.
func (a *CallAliasAnalyzer) Schema() m.Schema {
	return a.schema
}

// AddArgumentValue binds value to the named argument, overwriting any
// previous binding and marking the alias graph stale.
func (a *CallAliasAnalyzer) AddArgumentValue(name string, value m.Value) error {
	if _, ok := a.schema.ArgumentIndex(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownArgument, name)
	}

	a.values[name] = value
	a.updated = false

	return nil
}

// AddArgumentValueList binds values positionally in signature order. A
// nil entry leaves that argument unbound. The graph is marked stale once,
// after all entries are applied.
func (a *CallAliasAnalyzer) AddArgumentValueList(values []*m.Value) error {
	if len(values) > a.schema.ArgumentCount() {
		return fmt.Errorf("%w: got %d values for %d arguments",
			ErrArityMismatch, len(values), a.schema.ArgumentCount())
	}

	for i, value := range values {
		if value == nil {
			continue
		}

		a.values[a.schema.Arguments[i].Name] = *value
	}

	a.updated = false

	return nil
}

// AddArgumentValues binds every named entry. If any key is not a schema
// argument no binding is applied at all, so the caller can retry with
// corrected input.
func (a *CallAliasAnalyzer) AddArgumentValues(values map[string]m.Value) error {
	for name := range values {
		if _, ok := a.schema.ArgumentIndex(name); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownArgument, name)
		}
	}

	for name, value := range values {
		a.values[name] = value
	}

	a.updated = false

	return nil
}

// HasArgumentValue reports whether a value is bound to the named argument.
func (a *CallAliasAnalyzer) HasArgumentValue(name string) bool {
	_, ok := a.values[name]

	return ok
}

// IsMutable reports whether any argument of this call may be written.
func (a *CallAliasAnalyzer) IsMutable() bool {
	a.ensureFresh()

	for i := range a.schema.Arguments {
		if a.mutableForCall(m.ArgumentPos(i)) {
			return true
		}
	}

	return false
}

// IsMutableIndex reports whether the argument at index may be written
// during this call.
func (a *CallAliasAnalyzer) IsMutableIndex(index int) (bool, error) {
	if index < 0 || index >= a.schema.ArgumentCount() {
		return false, fmt.Errorf("%w: argument index %d of %d",
			ErrOutOfRange, index, a.schema.ArgumentCount())
	}

	a.ensureFresh()

	return a.mutableForCall(m.ArgumentPos(index)), nil
}

// IsMutableName reports whether the named argument may be written during
// this call.
func (a *CallAliasAnalyzer) IsMutableName(name string) (bool, error) {
	index, ok := a.schema.ArgumentIndex(name)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownArgument, name)
	}

	a.ensureFresh()

	return a.mutableForCall(m.ArgumentPos(index)), nil
}

// IsMutablePosition is IsMutableIndex generalized over both position
// spaces, so return positions can be reported on as well.
func (a *CallAliasAnalyzer) IsMutablePosition(pos m.Position) (bool, error) {
	if !a.schema.Contains(pos) {
		return false, fmt.Errorf("%w: %s", ErrOutOfRange, pos)
	}

	a.ensureFresh()

	return a.mutableForCall(pos), nil
}

// MayAlias reports whether two positions may share storage during this
// call. Every position trivially aliases itself.
func (a *CallAliasAnalyzer) MayAlias(p, q m.Position) (bool, error) {
	if !a.schema.Contains(p) {
		return false, fmt.Errorf("%w: %s", ErrOutOfRange, p)
	}

	if !a.schema.Contains(q) {
		return false, fmt.Errorf("%w: %s", ErrOutOfRange, q)
	}

	if p == q {
		return true, nil
	}

	a.ensureFresh()

	_, ok := a.aliases[p][q]

	return ok, nil
}

// AliasSet returns the refined alias partners of a position, excluding
// the position itself, ordered arguments-then-returns by index.
func (a *CallAliasAnalyzer) AliasSet(pos m.Position) ([]m.Position, error) {
	if !a.schema.Contains(pos) {
		return nil, fmt.Errorf("%w: %s", ErrOutOfRange, pos)
	}

	a.ensureFresh()

	partners := make([]m.Position, 0, len(a.aliases[pos]))
	for partner := range a.aliases[pos] {
		partners = append(partners, partner)
	}

	sort.Slice(partners, func(i, j int) bool {
		if partners[i].Kind != partners[j].Kind {
			return partners[i].Kind < partners[j].Kind
		}

		return partners[i].Index < partners[j].Index
	})

	return partners, nil
}

// mutableForCall answers for one position with the graph already fresh.
func (a *CallAliasAnalyzer) mutableForCall(pos m.Position) bool {
	if a.schema.At(pos).Writable() {
		return true
	}

	if !a.foldAliases {
		return false
	}

	for partner := range a.aliases[pos] {
		if a.schema.At(partner).Writable() {
			return true
		}
	}

	return false
}

// ensureFresh regenerates the alias graph if a binding marked it stale.
func (a *CallAliasAnalyzer) ensureFresh() {
	if a.updated {
		return
	}

	a.generateAliasMaps()
	a.updated = true
}

// generateAliasMaps rebuilds the refined alias graph from scratch: the
// static alias-set partition seeds the candidate edges, and bound value
// identities remove the edges the schema permitted but this call refutes.
// The graph is symmetric but not transitive: splitting two bound
// positions leaves either one's static edge to an unbound neighbor alone.
func (a *CallAliasAnalyzer) generateAliasMaps() {
	positions := a.positions()

	static := pkg.NewDisjointSet[m.Position]()
	firstOfSet := make(map[string]m.Position)

	for _, pos := range positions {
		static.Add(pos)

		alias := a.schema.At(pos).Alias
		if alias == nil || alias.Wildcard {
			continue
		}

		if alias.Set == "" {
			continue // anonymous writable set, aliases nothing by itself
		}

		if first, ok := firstOfSet[alias.Set]; ok {
			static.Union(first, pos)
		} else {
			firstOfSet[alias.Set] = pos
		}
	}

	a.aliases = make(map[m.Position]map[m.Position]struct{}, len(positions))
	for _, pos := range positions {
		a.aliases[pos] = make(map[m.Position]struct{})
	}

	for i, p := range positions {
		for _, q := range positions[i+1:] {
			if !a.staticCandidate(static, p, q) {
				continue
			}

			if a.edgeRefuted(p, q) {
				continue
			}

			a.aliases[p][q] = struct{}{}
			a.aliases[q][p] = struct{}{}
		}
	}
}

// staticCandidate reports whether the schema permits p and q to alias:
// same named alias set, or a wildcard paired with any annotated position.
func (a *CallAliasAnalyzer) staticCandidate(static *pkg.DisjointSet[m.Position], p, q m.Position) bool {
	pAlias := a.schema.At(p).Alias
	qAlias := a.schema.At(q).Alias

	if pAlias == nil || qAlias == nil {
		return false
	}

	if pAlias.Wildcard || qAlias.Wildcard {
		return true
	}

	return pAlias.Set != "" && static.Same(p, q)
}

// edgeRefuted reports whether bound values disprove an alias between p
// and q for this call. Unbound positions keep the static edge: refinement
// requires evidence. A position bound to an absent value cannot share
// storage with anything, so all its edges are refuted.
func (a *CallAliasAnalyzer) edgeRefuted(p, q m.Position) bool {
	pValue, pBound := a.valueAt(p)
	qValue, qBound := a.valueAt(q)

	if pBound && pValue.IsAbsent() {
		return true
	}

	if qBound && qValue.IsAbsent() {
		return true
	}

	if pBound && qBound {
		return !m.SameIdentity(pValue, qValue)
	}

	return false
}

// valueAt looks up the bound value for a position. Returns are never
// caller-bound, so only argument positions can carry values.
func (a *CallAliasAnalyzer) valueAt(pos m.Position) (m.Value, bool) {
	if pos.Kind != m.KindArgument {
		return m.Value{}, false
	}

	value, ok := a.values[a.schema.Arguments[pos.Index].Name]

	return value, ok
}

// positions lists every argument and return position of the schema.
func (a *CallAliasAnalyzer) positions() []m.Position {
	positions := make([]m.Position, 0, a.schema.ArgumentCount()+a.schema.ReturnCount())

	for i := range a.schema.Arguments {
		positions = append(positions, m.ArgumentPos(i))
	}

	for i := range a.schema.Returns {
		positions = append(positions, m.ReturnPos(i))
	}

	return positions
}
