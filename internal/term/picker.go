package term

import (
	"context"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// pickerModel is a one-shot arrow-key menu. It quits as soon as the player
// picks an option or backs out.
type pickerModel struct {
	labels  []string
	cursor  int
	chosen  int
	aborted bool
}

func newPicker(labels []string) pickerModel {
	return pickerModel{labels: labels, chosen: -1}
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch s := key.String(); s {
	case "ctrl+c", "esc", "q":
		m.aborted = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j", "tab":
		if m.cursor < len(m.labels)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.chosen = m.cursor
		return m, tea.Quit
	default:
		if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(m.labels) {
			m.cursor = n - 1
			m.chosen = m.cursor
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.chosen >= 0 || m.aborted {
		return ""
	}
	var b strings.Builder
	for i, l := range m.labels {
		if i == m.cursor {
			b.WriteString(SelectedRow.Render("> " + l))
		} else {
			b.WriteString("  " + l)
		}
		b.WriteByte('\n')
	}
	b.WriteString(Muted.Render("↑/↓ move • enter pick • q quit"))
	b.WriteByte('\n')
	return b.String()
}

func runPicker(ctx context.Context, in io.Reader, out io.Writer, labels []string) (int, error) {
	prog := tea.NewProgram(newPicker(labels),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := prog.Run()
	if err != nil {
		return 0, err
	}
	m := final.(pickerModel)
	if m.aborted || m.chosen < 0 {
		return 0, ErrAborted
	}
	return m.chosen, nil
}
