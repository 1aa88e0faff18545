// Package controller provides output adapters for displaying analysis results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	m "schemalens.dev/pkg/schemalens/internal/model"
)

// UI defines the interface for displaying analysis results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// DisplayReport shows the per-position analysis of one operator.
	DisplayReport(ctx context.Context, report m.Report) error

	// DisplayAudit shows one row per audited operator plus a summary.
	// Reports are consumed from the stream one at a time.
	DisplayAudit(ctx context.Context, reports m.ReportSeq, summary m.AuditSummary) error
}

// NewUI picks the TUI on a terminal and the plain writer otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether output is attached to a terminal.
func IsTTY(output *os.File) bool {
	return term.IsTerminal(int(output.Fd()))
}
