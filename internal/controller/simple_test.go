package controller

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "schemalens.dev/pkg/schemalens/internal/model"
)

func sampleReport() m.Report {
	return m.Report{
		Operator:  "add_",
		Signature: "add_(Tensor(a!) self, Tensor other) -> Tensor(a!)",
		Mutable:   true,
		Positions: []m.PositionReport{
			{Name: "self", Kind: "argument", Type: "Tensor", AliasSet: "a", Writable: true, Mutable: true, AliasesWith: []string{"return[0]"}},
			{Name: "other", Kind: "argument", Type: "Tensor"},
			{Name: "return[0]", Kind: "return", Type: "Tensor", AliasSet: "a", Writable: true, Mutable: true, AliasesWith: []string{"self"}},
		},
	}
}

func newTestUI() (*SimpleUI, *bytes.Buffer) {
	var out bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	return NewSimpleUI(cmd), &out
}

func TestSimpleUI_DisplayReport(t *testing.T) {
	ui, out := newTestUI()

	require.NoError(t, ui.DisplayReport(context.Background(), sampleReport()))

	output := out.String()
	assert.Contains(t, output, "add_(Tensor(a!) self, Tensor other) -> Tensor(a!)")
	assert.Contains(t, output, "may mutate arguments")
	assert.Contains(t, output, "self")
	assert.Contains(t, output, "return[0]")
}

func TestSimpleUI_DisplayReport_ParseFailure(t *testing.T) {
	ui, out := newTestUI()

	report := m.Report{Signature: "garbage", Error: "invalid schema signature"}
	require.NoError(t, ui.DisplayReport(context.Background(), report))

	assert.Contains(t, out.String(), "parse error")
	assert.NotContains(t, out.String(), "verdict")
}

func TestSimpleUI_DisplayAudit(t *testing.T) {
	ui, out := newTestUI()

	reports := []m.Report{
		sampleReport(),
		{Operator: "relu", Signature: "relu(Tensor self) -> Tensor", Positions: []m.PositionReport{{Name: "self"}, {Name: "return[0]"}}},
		{Signature: "garbage", Error: "invalid schema signature"},
	}
	summary := m.AuditSummary{Operators: 3, Mutable: 1, Failed: 1}

	require.NoError(t, ui.DisplayAudit(context.Background(), m.SeqOf(reports), summary))

	output := out.String()
	assert.Contains(t, output, "add_")
	assert.Contains(t, output, "relu")
	assert.Contains(t, output, "invalid schema signature")
	assert.Contains(t, output, "Total 3")
	assert.Contains(t, output, "1 failed")
	assert.Contains(t, output, "50.0%")
}

func TestSimpleUI_CancelledContext(t *testing.T) {
	ui, out := newTestUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, ui.DisplayReport(ctx, sampleReport()))
	assert.Error(t, ui.DisplayAudit(ctx, nil, m.AuditSummary{}))
	assert.Empty(t, out.String())
}

func TestSimpleUI_DisplayAudit_PropagatesStreamError(t *testing.T) {
	ui, out := newTestUI()
	sentinel := errors.New("spill read failed")

	var seq m.ReportSeq = func(yield func(m.Report, error) bool) {
		yield(m.Report{}, sentinel)
	}

	err := ui.DisplayAudit(context.Background(), seq, m.AuditSummary{})
	assert.ErrorIs(t, err, sentinel)
	assert.Empty(t, out.String())
}

func TestVerdict(t *testing.T) {
	assert.Contains(t, verdict(true), "may mutate arguments")
	assert.Contains(t, verdict(false), "no argument mutation")
}
