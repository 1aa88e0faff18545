package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "schemalens.dev/pkg/schemalens/internal/model"
)

var (
	mutableStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	immutableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayReport prints the per-position analysis of one operator.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.cmd.Print(renderReport(report))

	return nil
}

// DisplayAudit prints one row per operator and the summary footer.
func (s *SimpleUI) DisplayAudit(ctx context.Context, reports m.ReportSeq, summary m.AuditSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	out, err := renderAudit(reports, summary)
	if err != nil {
		return err
	}

	s.cmd.Print(out)

	return nil
}

func renderReport(report m.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n", report.Signature)

	if report.Failed() {
		fmt.Fprintf(&b, "%s\n", failedStyle.Render("parse error: "+report.Error))
		return b.String()
	}

	fmt.Fprintf(&b, "call verdict: %s\n\n", verdict(report.Mutable))
	b.WriteString(renderPositionTable(report.Positions))

	return b.String()
}

func renderPositionTable(positions []m.PositionReport) string {
	var buffer bytes.Buffer

	table := tablewriter.NewWriter(&buffer)
	table.SetHeader([]string{"Position", "Kind", "Type", "Alias Set", "Writable", "Mutable", "Aliases With", "Bound"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, position := range positions {
		aliasSet := position.AliasSet
		if position.Wildcard {
			aliasSet = "*"
		}

		table.Append([]string{
			position.Name,
			position.Kind,
			position.Type,
			aliasSet,
			yesNo(position.Writable),
			yesNo(position.Mutable),
			strings.Join(position.AliasesWith, ", "),
			yesNo(position.Bound),
		})
	}

	table.Render()

	return buffer.String()
}

func renderAudit(reports m.ReportSeq, summary m.AuditSummary) (string, error) {
	var buffer bytes.Buffer

	table := tablewriter.NewWriter(&buffer)
	table.SetHeader([]string{"Operator", "Mutable", "Positions", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	for report, err := range reports {
		if err != nil {
			return "", err
		}

		status := "ok"
		if report.Failed() {
			status = report.Error
		}

		operator := report.Operator
		if operator == "" {
			operator = report.Signature
		}

		table.Append([]string{
			operator,
			yesNo(report.Mutable),
			fmt.Sprintf("%d", len(report.Positions)),
			status,
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total %d", summary.Operators),
		fmt.Sprintf("%d", summary.Mutable),
		"",
		fmt.Sprintf("%d failed", summary.Failed),
	})

	table.Render()

	return fmt.Sprintf("\n%s\nmutable operators: %.1f%%\n",
		buffer.String(), summary.MutableRatio()*100), nil
}

func verdict(mutable bool) string {
	if mutable {
		return mutableStyle.Render("may mutate arguments")
	}

	return immutableStyle.Render("no argument mutation")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return ""
}
