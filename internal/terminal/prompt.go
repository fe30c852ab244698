package terminal

import (
	"context"
	"fmt"
	"io"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/rote/internal/ui/theme"
)

// Prompt reads lines through a short-lived inline Bubble Tea program per
// call, giving line editing and an up/down history of earlier answers.
type Prompt struct {
	in      io.Reader
	out     io.Writer
	history []string
}

// NewPrompt creates a Prompt reading key presses from in.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: in, out: out}
}

// ReadLine shows prompt, waits for Enter and returns the trimmed input.
// Ctrl-C and Ctrl-D yield ErrInterrupted.
func (p *Prompt) ReadLine(ctx context.Context, prompt string) (string, error) {
	prog := tea.NewProgram(
		newPromptModel(prompt, p.history),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)
	final, err := prog.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("run prompt: %w", err)
	}

	m, ok := final.(promptModel)
	if !ok {
		return "", fmt.Errorf("run prompt: unexpected model %T", final)
	}
	if m.interrupted {
		return "", ErrInterrupted
	}

	line := strings.TrimSpace(m.value)
	fmt.Fprintln(p.out, theme.Prompt.Render(prompt)+line)
	if line != "" {
		p.history = append(p.history, line)
	}
	return line, nil
}

// promptModel is a single-line input with history recall.
type promptModel struct {
	input       textinput.Model
	history     []string
	cursor      int // index into history; len(history) means the live line
	draft       string
	value       string
	done        bool
	interrupted bool
}

func newPromptModel(prompt string, history []string) promptModel {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Focus()
	return promptModel{
		input:   ti,
		history: history,
		cursor:  len(history),
	}
}

func (m promptModel) Init() tea.Cmd {
	return m.input.Focus()
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "ctrl+c", "ctrl+d":
			m.interrupted = true
			return m, tea.Quit
		case "enter":
			m.value = m.input.Value()
			m.done = true
			return m, tea.Quit
		case "up":
			m.recall(-1)
			return m, nil
		case "down":
			m.recall(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// recall moves through history by step, restoring the unsent draft when
// stepping past the newest entry.
func (m *promptModel) recall(step int) {
	next := m.cursor + step
	if next < 0 || next > len(m.history) {
		return
	}
	if m.cursor == len(m.history) {
		m.draft = m.input.Value()
	}
	m.cursor = next
	if next == len(m.history) {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(m.history[next])
	}
	m.input.CursorEnd()
}

func (m promptModel) View() tea.View {
	if m.done || m.interrupted {
		return tea.NewView("")
	}
	return tea.NewView(m.input.View())
}
