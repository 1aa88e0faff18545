package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "schemalens.dev/pkg/schemalens/internal/model"
)

func TestDescribe_ParseFailureIsFoldedIntoReport(t *testing.T) {
	report := Describe("not a signature", "ops.yaml")

	assert.True(t, report.Failed())
	assert.Equal(t, m.Path("ops.yaml"), report.Source)
	assert.Empty(t, report.Positions)
}

func TestDescribe_InPlaceOperator(t *testing.T) {
	report := Describe("add_(Tensor(a!) self, Tensor other) -> Tensor(a!)", "")

	require.False(t, report.Failed())
	assert.Equal(t, "add_", report.Operator)
	assert.True(t, report.Mutable)
	require.Len(t, report.Positions, 3)

	self := report.Positions[0]
	assert.Equal(t, "self", self.Name)
	assert.Equal(t, "argument", self.Kind)
	assert.Equal(t, "a", self.AliasSet)
	assert.True(t, self.Writable)
	assert.True(t, self.Mutable)
	assert.Equal(t, []string{"return[0]"}, self.AliasesWith)
	assert.False(t, self.Bound)

	other := report.Positions[1]
	assert.False(t, other.Writable)
	assert.False(t, other.Mutable)
	assert.Empty(t, other.AliasesWith)

	ret := report.Positions[2]
	assert.Equal(t, "return", ret.Kind)
	assert.Equal(t, "return[0]", ret.Name)
	assert.True(t, ret.Writable)
	assert.Equal(t, []string{"self"}, ret.AliasesWith)
}

func TestDescribeCall_ReflectsBindings(t *testing.T) {
	schema, err := ParseSchema("op(Tensor(a!) self, Tensor(a) other) -> Tensor(a)")
	require.NoError(t, err)

	analyzer := NewCallAliasAnalyzer(schema, WithAliasImpliedMutability())
	require.NoError(t, analyzer.AddArgumentValues(map[string]m.Value{
		"self":  m.NewValue("t1"),
		"other": m.NewValue("t2"),
	}))

	report := DescribeCall(analyzer, "op(...)", "")

	self := report.Positions[0]
	other := report.Positions[1]

	assert.True(t, self.Bound)
	assert.True(t, other.Bound)

	// Distinct identities split self and other; both keep the unbound
	// return edge.
	assert.Equal(t, []string{"return[0]"}, self.AliasesWith)
	assert.Equal(t, []string{"return[0]"}, other.AliasesWith)

	// With the split, other's only remaining partner is the non-writable
	// return, so alias-implied mutability no longer applies to it.
	assert.True(t, self.Mutable)
	assert.False(t, other.Mutable)
}
