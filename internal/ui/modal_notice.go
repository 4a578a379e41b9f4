package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// NoticeModal reports the outcome of an action. Enter, Esc or q closes it.
type NoticeModal struct {
	Title      string
	Label      string
	Details    []string // Optional extra lines (e.g. written paths)
	Failed     bool
	boxStyle   lipgloss.Style
	titleStyle lipgloss.Style
}

// Ensure NoticeModal implements View.
var _ View = (*NoticeModal)(nil)

// NewNoticeModal creates a success notice.
func NewNoticeModal(title, label string, details ...string) *NoticeModal {
	return &NoticeModal{
		Title:      title,
		Label:      label,
		Details:    details,
		boxStyle:   Styles.Box,
		titleStyle: Styles.TitleSuccess,
	}
}

// NewErrorModal creates a failure notice.
func NewErrorModal(title string, err error) *NoticeModal {
	return &NoticeModal{
		Title:      title,
		Label:      err.Error(),
		Failed:     true,
		boxStyle:   Styles.BoxDanger,
		titleStyle: Styles.TitleWarning,
	}
}

// Init implements View.
func (m *NoticeModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *NoticeModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc", "enter", "q":
			return m, func() tea.Msg { return DismissModalMsg{} }
		}
	}
	return m, nil
}

// View implements View.
func (m *NoticeModal) View() string {
	var b strings.Builder
	b.WriteString(m.titleStyle.Render(m.Title))
	b.WriteString("\n\n")
	b.WriteString(Styles.Normal.Render(m.Label))
	for _, d := range m.Details {
		b.WriteString("\n" + Styles.Details.Render(d))
	}
	b.WriteString("\n\n" + Styles.Hint.Render("Enter/Esc: close"))
	return m.boxStyle.Render(b.String())
}
