package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/buildplan/internal/plan"
)

// ErrPlanRejected is returned by callers when the reviewer rejects a plan
var ErrPlanRejected = errors.New("plan rejected")

// PlanReviewResult holds the result of a plan review session
type PlanReviewResult struct {
	Approved bool
	Reason   string
}

type reviewKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Back    key.Binding
	Approve key.Binding
	Reject  key.Binding
	Quit    key.Binding
}

var reviewKeys = reviewKeyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Open:    key.NewBinding(key.WithKeys("enter", "right", "l"), key.WithHelp("enter", "details")),
	Back:    key.NewBinding(key.WithKeys("left", "h", "esc"), key.WithHelp("esc", "back")),
	Approve: key.NewBinding(key.WithKeys("a", "A"), key.WithHelp("a", "approve")),
	Reject:  key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("r", "reject")),
	Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
}

// planReviewModel is the BubbleTea model for plan review
type planReviewModel struct {
	plan           *plan.Plan
	cursor         int
	selectedTask   int
	viewMode       string // "list" or "detail"
	rejectionInput string
	editingReason  bool
	result         *PlanReviewResult
	width          int
	height         int
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginLeft(2)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")).
				Bold(true).
				PaddingLeft(2)

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	detailKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true)

	detailValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginLeft(2).
			MarginTop(1)

	approveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	rejectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
)

func newPlanReviewModel(p *plan.Plan) planReviewModel {
	return planReviewModel{plan: p, viewMode: "list"}
}

// Init initializes the model
func (m planReviewModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m planReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.editingReason {
			return m.updateReason(msg)
		}

		switch {
		case key.Matches(msg, reviewKeys.Quit):
			m.result = &PlanReviewResult{Approved: false, Reason: "review cancelled"}
			return m, tea.Quit

		case key.Matches(msg, reviewKeys.Up):
			if m.viewMode == "list" && m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, reviewKeys.Down):
			if m.viewMode == "list" && m.cursor < len(m.plan.Tasks)-1 {
				m.cursor++
			}

		case key.Matches(msg, reviewKeys.Open):
			if m.viewMode == "list" {
				m.selectedTask = m.cursor
				m.viewMode = "detail"
			}

		case key.Matches(msg, reviewKeys.Back):
			if m.viewMode == "detail" {
				m.viewMode = "list"
			}

		case key.Matches(msg, reviewKeys.Approve):
			m.result = &PlanReviewResult{Approved: true}
			return m, tea.Quit

		case key.Matches(msg, reviewKeys.Reject):
			m.editingReason = true
		}
	}

	return m, nil
}

func (m planReviewModel) updateReason(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.editingReason = false
		m.result = &PlanReviewResult{Approved: false, Reason: strings.TrimSpace(m.rejectionInput)}
		return m, tea.Quit
	case tea.KeyEsc:
		m.editingReason = false
		m.rejectionInput = ""
	case tea.KeyBackspace:
		if len(m.rejectionInput) > 0 {
			r := []rune(m.rejectionInput)
			m.rejectionInput = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.rejectionInput += " "
	case tea.KeyRunes:
		m.rejectionInput += string(msg.Runes)
	}
	return m, nil
}

// View renders the current state
func (m planReviewModel) View() string {
	if m.result != nil {
		if m.result.Approved {
			return approveStyle.Render("\n✓ Plan approved\n\n")
		}
		reason := m.result.Reason
		if reason == "" {
			reason = "no reason given"
		}
		return rejectStyle.Render(fmt.Sprintf("\n✗ Plan rejected\n  Reason: %s\n\n", reason))
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Build Plan Review"))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%d tasks, %d dependencies", len(m.plan.Tasks), len(m.plan.Dependencies))))
	b.WriteString("\n\n")

	if m.viewMode == "list" {
		for i, task := range m.plan.Tasks {
			style := itemStyle
			cursor := "  "
			if i == m.cursor {
				style = selectedItemStyle
				cursor = "→ "
			}
			line := fmt.Sprintf("%s[%d] %s | %s", cursor, i+1, task.ID, task.Action.Kind)
			b.WriteString(style.Render(line))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(m.renderDetail())
	}

	b.WriteString("\n")

	if m.editingReason {
		b.WriteString(rejectStyle.Render("✗ Rejection reason:"))
		b.WriteString("\n  ")
		b.WriteString(m.rejectionInput)
		b.WriteString("_\n\n")
		b.WriteString(helpStyle.Render("enter: submit | esc: cancel"))
	} else if m.viewMode == "list" {
		b.WriteString(helpStyle.Render(helpLine(reviewKeys.Up, reviewKeys.Down, reviewKeys.Open, reviewKeys.Approve, reviewKeys.Reject, reviewKeys.Quit)))
	} else {
		b.WriteString(helpStyle.Render(helpLine(reviewKeys.Back, reviewKeys.Approve, reviewKeys.Reject, reviewKeys.Quit)))
	}

	return b.String()
}

func (m planReviewModel) renderDetail() string {
	var b strings.Builder
	task := m.plan.Tasks[m.selectedTask]

	b.WriteString(headerStyle.Render(fmt.Sprintf("Task %d of %d", m.selectedTask+1, len(m.plan.Tasks))))
	b.WriteString("\n\n")

	details := []struct {
		key   string
		value string
	}{
		{"ID", task.ID},
		{"Action", task.Action.Kind},
		{"Depends on", strings.Join(task.DependsOn, ", ")},
	}
	for _, d := range details {
		b.WriteString("  ")
		b.WriteString(detailKeyStyle.Render(fmt.Sprintf("%-12s:", d.key)))
		b.WriteString(" ")
		b.WriteString(detailValueStyle.Render(d.value))
		b.WriteString("\n")
	}

	if len(task.Action.Settings) > 0 {
		b.WriteString("\n  ")
		b.WriteString(detailKeyStyle.Render("Settings:"))
		b.WriteString("\n")
		for _, name := range task.Action.Settings {
			value := "(unresolved)"
			if s, ok := m.plan.Settings[name]; ok {
				value = s.Value
			}
			fmt.Fprintf(&b, "    • %s = %s\n", name, value)
		}
	}

	if len(task.Action.Dependencies) > 0 {
		b.WriteString("\n  ")
		b.WriteString(detailKeyStyle.Render("Dependencies:"))
		b.WriteString("\n")
		for _, name := range task.Action.Dependencies {
			version := "(unresolved)"
			if d, ok := m.plan.Dependency(name); ok {
				version = d.Version
			}
			fmt.Fprintf(&b, "    • %s:%s\n", name, version)
		}
	}
	return b.String()
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return strings.Join(parts, " | ")
}

// RunPlanReview launches an interactive TUI for reviewing a build plan
// before it is written
func RunPlanReview(p *plan.Plan) (*PlanReviewResult, error) {
	if len(p.Tasks) == 0 {
		return &PlanReviewResult{Approved: true}, nil
	}

	program := tea.NewProgram(newPlanReviewModel(p))
	finalModel, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("running plan review UI: %w", err)
	}

	m, ok := finalModel.(planReviewModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type: %T", finalModel)
	}
	if m.result == nil {
		return &PlanReviewResult{Approved: false, Reason: "review cancelled"}, nil
	}
	return m.result, nil
}
