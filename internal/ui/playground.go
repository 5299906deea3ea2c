package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"calfmt/internal/diagfmt"
	"calfmt/internal/iso"
	"calfmt/internal/pattern"
)

// Evaluation is what the playground shows for one pattern and sample.
type Evaluation struct {
	Canonical string
	Formatted string
	Parsed    string
	Resolved  string
	// Problems holds rendered diagnostics, one block per failed step.
	Problems []string
}

// Evaluate compiles src, formats now with it and, when sample is not
// empty, parses sample and resolves the result in now's location.
func Evaluate(src, sample, locale string, now time.Time) Evaluation {
	var ev Evaluation
	f, err := pattern.Compile(src, pattern.Options{Locale: locale})
	if err != nil {
		ev.Problems = append(ev.Problems, render(err, src, "pattern"))
		return ev
	}
	ev.Canonical = f.String()

	if out, err := f.Format(iso.At(now)); err != nil {
		ev.Problems = append(ev.Problems, render(err, "", "format"))
	} else {
		ev.Formatted = out
	}

	if sample == "" {
		return ev
	}
	p, err := f.Parse(sample)
	if err != nil {
		ev.Problems = append(ev.Problems, render(err, sample, "sample"))
		return ev
	}
	ev.Parsed = p.String()
	if t, err := iso.Resolve(p, now.Location()); err == nil {
		ev.Resolved = t.Format(time.RFC3339Nano)
	}
	return ev
}

func render(err error, text, label string) string {
	var sb strings.Builder
	if !diagfmt.PrettyError(&sb, err, text, diagfmt.PrettyOpts{Label: label}) {
		return fmt.Sprintf("%s: %v", label, err)
	}
	return strings.TrimRight(sb.String(), "\n")
}

var (
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	problemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle    = lipgloss.NewStyle().Faint(true)
)

type playgroundModel struct {
	inputs [2]textinput.Model
	focus  int
	locale string
	now    func() time.Time
	eval   Evaluation
	width  int
}

// NewPlayground returns an interactive model with a pattern and a sample
// input. The result is re-evaluated on every keystroke.
func NewPlayground(src, locale string, now func() time.Time) tea.Model {
	if now == nil {
		now = time.Now
	}
	pat := textinput.New()
	pat.Prompt = "pattern> "
	pat.Placeholder = "yyyy-MM-dd"
	pat.SetValue(src)
	pat.Focus()

	sample := textinput.New()
	sample.Prompt = " sample> "
	sample.Placeholder = "text to parse"

	m := &playgroundModel{inputs: [2]textinput.Model{pat, sample}, locale: locale, now: now, width: 80}
	m.refresh()
	return m
}

func (m *playgroundModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *playgroundModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
			m.inputs[m.focus].Blur()
			m.focus = 1 - m.focus
			return m, m.inputs[m.focus].Focus()
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.refresh()
	return m, cmd
}

func (m *playgroundModel) refresh() {
	m.eval = Evaluate(m.inputs[0].Value(), m.inputs[1].Value(), m.locale, m.now())
}

func (m *playgroundModel) View() string {
	var b strings.Builder
	b.WriteString(m.inputs[0].View())
	b.WriteString("\n")
	b.WriteString(m.inputs[1].View())
	b.WriteString("\n\n")

	width := max(m.width-12, 20)
	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(fmt.Sprintf("%10s", label)), valueStyle.Render(truncate(value, width)))
	}
	row("canonical", m.eval.Canonical)
	row("now", m.eval.Formatted)
	row("parsed", m.eval.Parsed)
	row("resolved", m.eval.Resolved)
	for _, p := range m.eval.Problems {
		b.WriteString("\n")
		b.WriteString(problemStyle.Render(p))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("tab: switch field  esc: quit"))
	b.WriteString("\n")
	return b.String()
}
