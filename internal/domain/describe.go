package domain

import (
	m "schemalens.dev/pkg/schemalens/internal/model"
)

// Describe parses a signature and renders its full analysis with no
// bound values. Parse failures are folded into the report so registry
// audits keep going past one bad entry.
func Describe(signature string, source m.Path) m.Report {
	schema, err := ParseSchema(signature)
	if err != nil {
		return m.Report{
			Signature: signature,
			Source:    source,
			Error:     err.Error(),
		}
	}

	analyzer := NewCallAliasAnalyzer(schema, WithAliasImpliedMutability())

	return DescribeCall(analyzer, signature, source)
}

// DescribeCall renders the analyzer's current answers, including any
// bindings already applied, into a Report.
func DescribeCall(analyzer *CallAliasAnalyzer, signature string, source m.Path) m.Report {
	schema := analyzer.Schema()

	report := m.Report{
		Operator:  schema.OperatorName(),
		Signature: signature,
		Source:    source,
		Mutable:   analyzer.IsMutable(),
	}

	for _, pos := range analyzer.positions() {
		arg := schema.At(pos)

		position := m.PositionReport{
			Name:     positionLabel(schema, pos),
			Kind:     kindLabel(pos),
			Index:    pos.Index,
			Type:     arg.Type,
			Writable: arg.Writable(),
		}

		if arg.Alias != nil {
			position.AliasSet = arg.Alias.Set
			position.Wildcard = arg.Alias.Wildcard
		}

		if pos.Kind == m.KindArgument {
			position.Bound = analyzer.HasArgumentValue(arg.Name)
		}

		// Positions are enumerated from the schema, so neither query can
		// return an out-of-range error here.
		position.Mutable, _ = analyzer.IsMutablePosition(pos)

		partners, _ := analyzer.AliasSet(pos)
		for _, partner := range partners {
			position.AliasesWith = append(position.AliasesWith, positionLabel(schema, partner))
		}

		report.Positions = append(report.Positions, position)
	}

	return report
}

func positionLabel(schema m.Schema, pos m.Position) string {
	if name := schema.At(pos).Name; name != "" {
		return name
	}

	return pos.String()
}

func kindLabel(pos m.Position) string {
	if pos.Kind == m.KindReturn {
		return "return"
	}

	return "argument"
}
