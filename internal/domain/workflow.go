package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"schemalens.dev/pkg/schemalens/internal/adapter"
	"schemalens.dev/pkg/schemalens/internal/controller"
	m "schemalens.dev/pkg/schemalens/internal/model"
	pkg "schemalens.dev/pkg/schemalens/pkg"
)

// AuditArgs configures the audit workflow.
type AuditArgs struct {
	Paths   []m.Path
	Exclude []string
	Threads int
	Output  m.Path
	Save    bool
}

// Workflow ties the scanner, report store and UI together, one method
// per CLI command.
type Workflow interface {
	Analyze(ctx context.Context, signature string, bindings map[string]m.Value) error
	Audit(ctx context.Context, args AuditArgs) error
	View(ctx context.Context, files []m.Path) error
}

type workflow struct {
	scanner Scanner
	store   adapter.ReportStore
	ui      controller.UI
}

// NewWorkflow creates a Workflow instance with the provided dependencies.
func NewWorkflow(scanner Scanner, store adapter.ReportStore, ui controller.UI) Workflow {
	return &workflow{
		scanner: scanner,
		store:   store,
		ui:      ui,
	}
}

// Analyze parses one signature, applies the given bindings and displays
// the per-position analysis.
func (w *workflow) Analyze(ctx context.Context, signature string, bindings map[string]m.Value) error {
	schema, err := ParseSchema(signature)
	if err != nil {
		slog.Error("failed to parse signature", "signature", signature, "error", err)
		return err
	}

	analyzer := NewCallAliasAnalyzer(schema, WithAliasImpliedMutability())

	if err := analyzer.AddArgumentValues(bindings); err != nil {
		slog.Error("failed to bind values", "operator", schema.OperatorName(), "error", err)
		return err
	}

	report := DescribeCall(analyzer, signature, "")

	return w.ui.DisplayReport(ctx, report)
}

// Audit scans registries, optionally persists the reports and displays
// them with a summary.
func (w *workflow) Audit(ctx context.Context, args AuditArgs) error {
	spill, err := w.scanner.Scan(ctx, ScanArgs{
		Paths:   args.Paths,
		Exclude: args.Exclude,
		Threads: args.Threads,
	})
	if err != nil {
		slog.Error("registry scan failed", "error", err)
		return fmt.Errorf("scan: %w", err)
	}

	defer func() {
		if err := spill.Close(); err != nil {
			slog.Warn("failed to close report spill", "error", err)
		}
	}()

	summary, err := summaryFromReports(spill)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	// Reports stay on disk; every consumer replays the spill instead of
	// pinning the full set in memory.
	if args.Save {
		saved, err := w.store.SaveReports(args.Output, spillReports(spill))
		if err != nil {
			slog.Error("failed to save reports", "dir", args.Output, "error", err)
			return fmt.Errorf("save: %w", err)
		}

		slog.Info("reports saved", "path", saved)
	}

	return w.ui.DisplayAudit(ctx, spillReports(spill), summary)
}

// errStopRange aborts a spill replay once the consumer stops pulling.
var errStopRange = errors.New("stop range")

// spillReports replays a spill as a report stream. Each call re-reads
// the backing file, so the spill can be consumed more than once.
func spillReports(spill pkg.FileSpill[m.Report]) m.ReportSeq {
	return func(yield func(m.Report, error) bool) {
		err := spill.Range(func(_ uint64, report m.Report) error {
			if !yield(report, nil) {
				return errStopRange
			}

			return nil
		})
		if err != nil && !errors.Is(err, errStopRange) {
			yield(m.Report{}, err)
		}
	}
}

// View loads saved report files, merges them and displays the result.
func (w *workflow) View(ctx context.Context, files []m.Path) error {
	var merged []m.Report

	for _, file := range files {
		reports, err := w.store.LoadReports(file)
		if err != nil {
			slog.Error("failed to load reports", "path", file, "error", err)
			return fmt.Errorf("load %s: %w", file, err)
		}

		merged = append(merged, reports...)
	}

	return w.ui.DisplayAudit(ctx, m.SeqOf(merged), SummarizeReports(merged))
}
