// Package prompt reads credentials and verification codes from the terminal.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ErrCancelled = errors.New("prompt cancelled")

var (
	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// inputModel is a single line text input. It quits on enter, esc or ctrl+c.
type inputModel struct {
	label     string
	input     textinput.Model
	required  bool
	value     string
	cancelled bool
	err       string
}

func newInputModel(label, placeholder string, secret bool) inputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	ti.Focus()

	return inputModel{label: label, input: ti, required: true}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			value := strings.TrimSpace(m.input.Value())
			if value == "" && m.required {
				m.err = "a value is required"
				return m, nil
			}
			m.value = value
			return m, tea.Quit
		}
	}

	m.err = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.value != "" || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(m.label))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("enter to submit • esc to cancel"))
	b.WriteString("\n")
	return b.String()
}

// Prompter runs one bubbletea program per question.
type Prompter struct {
	in  io.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// Ask reads one line. Secret input is masked.
func (p *Prompter) Ask(ctx context.Context, label, placeholder string, secret bool) (string, error) {
	prog := tea.NewProgram(newInputModel(label, placeholder, secret),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := prog.Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("prompt.Ask: %w", err)
	}

	m, ok := final.(inputModel)
	if !ok || m.cancelled {
		return "", ErrCancelled
	}
	return m.value, nil
}

// Credentials asks for the login email and password.
func (p *Prompter) Credentials(ctx context.Context) (username, password string, err error) {
	username, err = p.Ask(ctx, "Email", "you@example.com", false)
	if err != nil {
		return "", "", err
	}
	password, err = p.Ask(ctx, "Password", "", true)
	if err != nil {
		return "", "", err
	}
	return username, password, nil
}

// Code asks for the verification code sent by method. Its signature matches
// whatnot.CodePrompter.
func (p *Prompter) Code(ctx context.Context, method string) (string, error) {
	label := fmt.Sprintf("Verification code (sent by %s)", method)
	if method == "sms" {
		label = "Verification code (sent by SMS)"
	}
	return p.Ask(ctx, label, "123456", false)
}
