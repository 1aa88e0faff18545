package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	m "schemalens.dev/pkg/schemalens/internal/model"
	"golang.org/x/term"
)

var (
	tuiTitleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tuiHelpStyle  = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplayReport prints a single-operator report. Reports are short, so
// there is nothing to paginate.
func (p *TUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := fmt.Fprint(p.output, renderReport(report))

	return err
}

// DisplayAudit shows the audit table, scrollable when it does not fit
// the terminal.
func (p *TUI) DisplayAudit(ctx context.Context, reports m.ReportSeq, summary m.AuditSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content, err := renderAudit(reports, summary)
	if err != nil {
		return err
	}

	width, height := 80, 24
	if f, ok := p.output.(*os.File); ok {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil {
			width, height = w, h
		}
	}

	// Small output: just print and exit.
	if strings.Count(content, "\n") < height-2 {
		_, err := fmt.Fprint(p.output, content)
		return err
	}

	model := newAuditModel(content, width, height)

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// auditModel scrolls the rendered audit table in a viewport.
type auditModel struct {
	viewport viewport.Model
	title    string
}

func newAuditModel(content string, width, height int) auditModel {
	vp := viewport.New(width, height-2)
	vp.SetContent(content)

	return auditModel{
		viewport: vp,
		title:    "schemalens audit",
	}
}

func (am auditModel) Init() tea.Cmd {
	return nil
}

func (am auditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return am, tea.Quit
		}
	case tea.WindowSizeMsg:
		am.viewport.Width = msg.Width
		am.viewport.Height = msg.Height - 2
	}

	var cmd tea.Cmd
	am.viewport, cmd = am.viewport.Update(msg)

	return am, cmd
}

func (am auditModel) View() string {
	return tuiTitleStyle.Render(am.title) + "\n" +
		am.viewport.View() + "\n" +
		tuiHelpStyle.Render("↑/↓ scroll · q quit")
}
