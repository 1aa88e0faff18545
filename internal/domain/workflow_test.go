package domain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"schemalens.dev/pkg/schemalens/internal/adapter"
	m "schemalens.dev/pkg/schemalens/internal/model"
	pkg "schemalens.dev/pkg/schemalens/pkg"
)

// captureUI records what the workflow asked to display.
type captureUI struct {
	reports   []m.Report
	audits    [][]m.Report
	summaries []m.AuditSummary
}

func (c *captureUI) DisplayReport(_ context.Context, report m.Report) error {
	c.reports = append(c.reports, report)
	return nil
}

func (c *captureUI) DisplayAudit(_ context.Context, reports m.ReportSeq, summary m.AuditSummary) error {
	var collected []m.Report

	for report, err := range reports {
		if err != nil {
			return err
		}

		collected = append(collected, report)
	}

	c.audits = append(c.audits, collected)
	c.summaries = append(c.summaries, summary)

	return nil
}

func newTestWorkflow(t *testing.T, files map[m.Path][]byte) (Workflow, *captureUI) {
	t.Helper()

	ui := &captureUI{}
	scanner := NewScanner(&fakeRegistryFS{files: files})

	return NewWorkflow(scanner, adapter.NewReportStore(), ui), ui
}

func TestWorkflow_Analyze(t *testing.T) {
	wf, ui := newTestWorkflow(t, nil)

	err := wf.Analyze(context.Background(),
		"add_(Tensor(a!) self, Tensor(a) other) -> Tensor(a!)",
		map[string]m.Value{"self": m.NewValue("t1"), "other": m.NewValue("t1")})
	require.NoError(t, err)

	require.Len(t, ui.reports, 1)

	report := ui.reports[0]
	assert.True(t, report.Mutable)
	assert.True(t, report.Positions[0].Bound)
	assert.Contains(t, report.Positions[1].AliasesWith, "self", "same identity confirms the alias")
}

func TestWorkflow_AnalyzeErrors(t *testing.T) {
	wf, ui := newTestWorkflow(t, nil)

	err := wf.Analyze(context.Background(), "garbage", nil)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	err = wf.Analyze(context.Background(),
		"relu(Tensor self) -> Tensor",
		map[string]m.Value{"missing": m.NewValue("t1")})
	assert.ErrorIs(t, err, ErrUnknownArgument)

	assert.Empty(t, ui.reports)
}

func TestWorkflow_AuditAndView(t *testing.T) {
	wf, ui := newTestWorkflow(t, map[m.Path][]byte{
		"ops.yaml": []byte(registryA),
	})

	outputDir := m.Path(filepath.Join(t.TempDir(), "reports"))

	err := wf.Audit(context.Background(), AuditArgs{
		Threads: 2,
		Output:  outputDir,
		Save:    true,
	})
	require.NoError(t, err)

	require.Len(t, ui.audits, 1)
	assert.Len(t, ui.audits[0], 2)
	assert.Equal(t, m.AuditSummary{Operators: 2, Mutable: 1}, ui.summaries[0])

	// audit --save wrote exactly one report file; view displays it again.
	entries, err := os.ReadDir(string(outputDir))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	saved := m.Path(filepath.Join(string(outputDir), entries[0].Name()))

	err = wf.View(context.Background(), []m.Path{saved, saved})
	require.NoError(t, err)

	require.Len(t, ui.audits, 2)
	assert.Len(t, ui.audits[1], 4, "merged duplicate files")
	assert.Equal(t, 4, ui.summaries[1].Operators)
}

func TestSpillReports_Replayable(t *testing.T) {
	spill, err := pkg.NewFileSpill[m.Report]()
	require.NoError(t, err)
	defer spill.Close()

	require.NoError(t, spill.Append(m.Report{Operator: "relu"}))
	require.NoError(t, spill.Append(m.Report{Operator: "add_"}))

	// Saving and displaying both replay the same spill, so a second pass
	// must see every report again.
	for range 2 {
		var names []string

		for report, err := range spillReports(spill) {
			require.NoError(t, err)
			names = append(names, report.Operator)
		}

		assert.Equal(t, []string{"relu", "add_"}, names)
	}
}

func TestSpillReports_StopsWhenConsumerBreaks(t *testing.T) {
	spill, err := pkg.NewFileSpill[m.Report]()
	require.NoError(t, err)
	defer spill.Close()

	require.NoError(t, spill.Append(m.Report{Operator: "relu"}))
	require.NoError(t, spill.Append(m.Report{Operator: "add_"}))

	seen := 0

	for _, err := range spillReports(spill) {
		require.NoError(t, err)

		seen++

		break
	}

	assert.Equal(t, 1, seen)
}
