package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "schemalens.dev/pkg/schemalens/internal/model"
)

func TestTUI_DisplayReportPrintsDirectly(t *testing.T) {
	var out bytes.Buffer
	ui := NewTUI(&out)

	require.NoError(t, ui.DisplayReport(context.Background(), sampleReport()))
	assert.Contains(t, out.String(), "add_")
}

func TestTUI_SmallAuditPrintsDirectly(t *testing.T) {
	var out bytes.Buffer
	ui := NewTUI(&out)

	reports := []m.Report{sampleReport()}
	require.NoError(t, ui.DisplayAudit(context.Background(), m.SeqOf(reports), m.AuditSummary{Operators: 1, Mutable: 1}))

	assert.Contains(t, out.String(), "Total 1")
}

func TestAuditModel_QuitKeys(t *testing.T) {
	model := newAuditModel("content", 80, 24)

	for _, key := range []string{"q", "esc", "ctrl+c"} {
		_, cmd := model.Update(keyMsg(key))
		require.NotNil(t, cmd, "key %q should quit", key)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestAuditModel_Resize(t *testing.T) {
	model := newAuditModel("content", 80, 24)

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	am, ok := updated.(auditModel)
	require.True(t, ok)
	assert.Equal(t, 120, am.viewport.Width)
	assert.Equal(t, 38, am.viewport.Height)
}

func TestAuditModel_View(t *testing.T) {
	model := newAuditModel(strings.Repeat("row\n", 50), 80, 24)

	view := model.View()
	assert.Contains(t, view, "schemalens audit")
	assert.Contains(t, view, "q quit")
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}
