// Package model defines the data structures for operator schema analysis.
package model

// AliasInfo is the static alias annotation attached to a single position.
type AliasInfo struct {
	// Set is the alias-set identifier ("a" in "Tensor(a!)"). Empty for
	// anonymous writable sets ("(!)") and wildcard sets.
	Set string
	// Wildcard marks a position that may alias any annotated position.
	Wildcard bool
	// Write marks a position the schema permits writes through.
	Write bool
}

// Argument describes one argument or return position of an operator schema.
type Argument struct {
	Name    string
	Type    string
	Default string // literal default text, empty when none
	KwOnly  bool   // declared after the bare "*" separator
	Alias   *AliasInfo
}

// Writable reports whether the schema permits writes through this position.
func (a Argument) Writable() bool {
	return a.Alias != nil && a.Alias.Write
}

// Schema is an immutable description of one operator signature.
// It is safe to share read-only across any number of analyzers.
type Schema struct {
	Name      string
	Overload  string
	Arguments []Argument
	Returns   []Argument
}

// OperatorName returns the name including the overload suffix, if any.
func (s Schema) OperatorName() string {
	if s.Overload == "" {
		return s.Name
	}

	return s.Name + "." + s.Overload
}

// ArgumentCount returns the number of argument positions.
func (s Schema) ArgumentCount() int {
	return len(s.Arguments)
}

// ReturnCount returns the number of return positions.
func (s Schema) ReturnCount() int {
	return len(s.Returns)
}

// ArgumentIndex resolves an argument name to its positional index.
func (s Schema) ArgumentIndex(name string) (int, bool) {
	for i, arg := range s.Arguments {
		if arg.Name == name {
			return i, true
		}
	}

	return 0, false
}

// At returns the descriptor at the given position.
// The caller is responsible for the position being in range.
func (s Schema) At(pos Position) Argument {
	if pos.Kind == KindReturn {
		return s.Returns[pos.Index]
	}

	return s.Arguments[pos.Index]
}

// Contains reports whether the position exists in this schema.
func (s Schema) Contains(pos Position) bool {
	switch pos.Kind {
	case KindReturn:
		return pos.Index >= 0 && pos.Index < len(s.Returns)
	case KindArgument:
		return pos.Index >= 0 && pos.Index < len(s.Arguments)
	}

	return false
}
