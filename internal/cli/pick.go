package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/qrnoize/pkg/config"
	"github.com/matzehuels/qrnoize/pkg/errors"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// StackPickerModel - Interactive stack selection
// =============================================================================

// StackPickerModel is the bubbletea model for choosing which stacks to run.
type StackPickerModel struct {
	Names     []string
	Summaries []string
	Chosen    []bool
	Cursor    int
	Confirmed bool
	Height    int
	Offset    int
}

// NewStackPickerModel lists the distinct stack names of tbl. Names in
// preselected start out chosen.
func NewStackPickerModel(tbl *config.Table, preselected []string) StackPickerModel {
	names := tbl.Names()
	m := StackPickerModel{
		Names:     names,
		Summaries: make([]string, len(names)),
		Chosen:    make([]bool, len(names)),
		Height:    15,
	}
	for i, name := range names {
		b, _ := tbl.Lookup(name)
		kinds := make([]string, len(b.Layers))
		for j, k := range b.Kinds() {
			kinds[j] = string(k)
		}
		m.Summaries[i] = strings.Join(kinds, " → ")
		m.Chosen[i] = slices.Contains(preselected, name)
	}
	return m
}

// Selected returns the chosen names in config order.
func (m StackPickerModel) Selected() []string {
	var out []string
	for i, ok := range m.Chosen {
		if ok {
			out = append(out, m.Names[i])
		}
	}
	return out
}

func (m StackPickerModel) Init() tea.Cmd {
	return nil
}

func (m StackPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Names)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			if len(m.Chosen) > 0 {
				m.Chosen = slices.Clone(m.Chosen)
				m.Chosen[m.Cursor] = !m.Chosen[m.Cursor]
			}
		case "a":
			all := !slices.Contains(m.Chosen, false)
			m.Chosen = slices.Clone(m.Chosen)
			for i := range m.Chosen {
				m.Chosen[i] = !all
			}
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m StackPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Stacks"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ run  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Names))
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		box := "[ ]"
		if m.Chosen[i] {
			box = StyleSuccess.Render("[x]")
		}

		line := fmt.Sprintf("%s%s %-20s  %s", cursor, box, m.Names[i], listDimStyle.Render(m.Summaries[i]))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d of %d selected", len(m.Selected()), len(m.Names))))
	return b.String()
}

// pickStacks runs the picker over the stacks of the config at path. ok is
// false when the user quit without confirming.
func pickStacks(path string, opts config.Options, preselected []string) (names []string, ok bool, err error) {
	tbl, err := config.ParseFile(path, opts)
	if err != nil {
		return nil, false, err
	}
	if len(tbl.Names()) == 0 {
		return nil, false, errors.New(errors.ErrCodeNotFound, "no stacks in %s", path)
	}

	final, err := tea.NewProgram(NewStackPickerModel(tbl, preselected)).Run()
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "stack picker")
	}
	m := final.(StackPickerModel)
	return m.Selected(), m.Confirmed, nil
}
