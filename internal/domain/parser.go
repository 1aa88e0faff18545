package domain

import (
	"errors"
	"fmt"
	"strings"

	m "schemalens.dev/pkg/schemalens/internal/model"
)

// ErrInvalidSignature means a schema signature string is malformed.
var ErrInvalidSignature = errors.New("invalid schema signature")

// ParseSchema parses a torch-style operator signature such as
//
//	add_(Tensor(a!) self, Tensor other, *, Scalar alpha=1) -> Tensor(a!)
//
// into a Schema. Supported annotations per position: "(a)" named alias
// set, "(a!)" named writable set, "(!)" anonymous writable set, "(*)"
// wildcard. A bare "*" argument separates keyword-only arguments.
func ParseSchema(signature string) (m.Schema, error) {
	p := &sigParser{input: signature}

	schema, err := p.parse()
	if err != nil {
		return m.Schema{}, err
	}

	return schema, nil
}

type sigParser struct {
	input string
	pos   int
}

func (p *sigParser) parse() (m.Schema, error) {
	var schema m.Schema

	if err := p.parseName(&schema); err != nil {
		return schema, err
	}

	if !p.consume('(') {
		return schema, p.errf("expected '(' after operator name")
	}

	if err := p.parseArguments(&schema); err != nil {
		return schema, err
	}

	p.skipSpace()
	if !strings.HasPrefix(p.input[p.pos:], "->") {
		return schema, p.errf("expected '->' before returns")
	}

	p.pos += len("->")

	if err := p.parseReturns(&schema); err != nil {
		return schema, err
	}

	p.skipSpace()
	if p.pos != len(p.input) {
		return schema, p.errf("trailing input after returns")
	}

	return schema, nil
}

func (p *sigParser) parseName(schema *m.Schema) error {
	open := strings.IndexByte(p.input, '(')
	if open < 0 {
		return p.errf("expected '(' after operator name")
	}

	name := strings.TrimSpace(p.input[:open])
	if name == "" {
		return p.errf("missing operator name")
	}

	// Overload suffix follows the first '.' after any "ns::" prefix.
	base := name
	if sep := strings.Index(base, "::"); sep >= 0 {
		base = base[sep+2:]
	}

	if dot := strings.IndexByte(base, '.'); dot >= 0 {
		overload := base[dot+1:]
		if overload == "" {
			return p.errf("empty overload name")
		}

		schema.Overload = overload

		name = name[:len(name)-len(overload)-1]
		if name == "" {
			return p.errf("missing operator name")
		}
	}

	if strings.ContainsAny(name, " \t") {
		return p.errf("operator name %q contains spaces", name)
	}

	schema.Name = name
	p.pos = open

	return nil
}

func (p *sigParser) parseArguments(schema *m.Schema) error {
	p.skipSpace()
	if p.consume(')') {
		return nil
	}

	kwOnly := false

	for {
		p.skipSpace()

		if p.consume('*') {
			// Bare "*": everything after it is keyword-only.
			p.skipSpace()
			if kwOnly {
				return p.errf("duplicate '*' separator")
			}

			kwOnly = true
		} else {
			arg, err := p.parseTypedItem(true)
			if err != nil {
				return err
			}

			if _, exists := schema.ArgumentIndex(arg.Name); exists {
				return p.errf("duplicate argument %q", arg.Name)
			}

			arg.KwOnly = kwOnly
			schema.Arguments = append(schema.Arguments, arg)
		}

		p.skipSpace()
		if p.consume(')') {
			return nil
		}

		if !p.consume(',') {
			return p.errf("expected ',' or ')' in argument list")
		}
	}
}

func (p *sigParser) parseReturns(schema *m.Schema) error {
	p.skipSpace()

	if p.consume('(') {
		p.skipSpace()
		if p.consume(')') {
			return nil
		}

		for {
			ret, err := p.parseTypedItem(false)
			if err != nil {
				return err
			}

			schema.Returns = append(schema.Returns, ret)

			p.skipSpace()
			if p.consume(')') {
				return nil
			}

			if !p.consume(',') {
				return p.errf("expected ',' or ')' in return list")
			}

			p.skipSpace()
		}
	}

	ret, err := p.parseTypedItem(false)
	if err != nil {
		return err
	}

	schema.Returns = append(schema.Returns, ret)

	return nil
}

// parseTypedItem parses "type [annotation] [suffixes] [name [= default]]".
// Arguments require a name; returns may be anonymous.
func (p *sigParser) parseTypedItem(isArgument bool) (m.Argument, error) {
	var item m.Argument

	p.skipSpace()

	base := p.ident()
	if base == "" {
		return item, p.errf("expected type")
	}

	alias, err := p.parseAliasAnnotation()
	if err != nil {
		return item, err
	}

	item.Alias = alias
	item.Type = base + p.typeSuffixes()

	p.skipSpace()

	name := p.ident()
	if isArgument && name == "" {
		return item, p.errf("expected argument name after type %q", item.Type)
	}

	item.Name = name

	p.skipSpace()
	if p.consume('=') {
		p.skipSpace()

		def := p.defaultText()
		if def == "" {
			return item, p.errf("expected default value for %q", name)
		}

		item.Default = def
	}

	return item, nil
}

// parseAliasAnnotation parses "(a)", "(a!)", "(!)" or "(*)" if present.
func (p *sigParser) parseAliasAnnotation() (*m.AliasInfo, error) {
	if !p.consume('(') {
		return nil, nil
	}

	var info m.AliasInfo

	switch {
	case p.consume('*'):
		info.Wildcard = true
	case p.consume('!'):
		info.Write = true
	default:
		set := p.ident()
		if set == "" {
			return nil, p.errf("empty alias annotation")
		}

		info.Set = set
		info.Write = p.consume('!')
	}

	if !p.consume(')') {
		return nil, p.errf("unterminated alias annotation")
	}

	return &info, nil
}

// typeSuffixes consumes list and optional markers: "[]", "[2]", "?".
func (p *sigParser) typeSuffixes() string {
	var suffix strings.Builder

	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case '[':
			end := strings.IndexByte(p.input[p.pos:], ']')
			if end < 0 {
				return suffix.String()
			}

			suffix.WriteString(p.input[p.pos : p.pos+end+1])
			p.pos += end + 1
		case '?':
			suffix.WriteByte('?')
			p.pos++
		default:
			return suffix.String()
		}
	}

	return suffix.String()
}

// defaultText consumes a default literal up to the next top-level ',' or
// ')'. Bracketed defaults like "[0, 1]" keep their inner commas.
func (p *sigParser) defaultText() string {
	start := p.pos
	depth := 0

	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case '[', '(':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ')':
			if depth == 0 {
				return strings.TrimSpace(p.input[start:p.pos])
			}

			depth--
		case ',':
			if depth == 0 {
				return strings.TrimSpace(p.input[start:p.pos])
			}
		}

		p.pos++
	}

	return strings.TrimSpace(p.input[start:p.pos])
}

func (p *sigParser) ident() string {
	start := p.pos

	for p.pos < len(p.input) && isIdentByte(p.input[p.pos]) {
		p.pos++
	}

	return p.input[start:p.pos]
}

func isIdentByte(c byte) bool {
	return c == '_' || c == ':' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (p *sigParser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *sigParser) consume(c byte) bool {
	if p.pos < len(p.input) && p.input[p.pos] == c {
		p.pos++
		return true
	}

	return false
}

func (p *sigParser) errf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)

	return fmt.Errorf("%w: %s (offset %d)", ErrInvalidSignature, msg, p.pos)
}
