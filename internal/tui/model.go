// Package tui is the terminal front end: a bubbletea program that renders a
// guide session and feeds resolved calls back into its Orchestrator.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/streetbites/guide/internal/guide"
)

type focus int

const (
	focusChat focus = iota
	focusResults
	focusDetail
)

type formField int

const (
	fieldName formField = iota
	fieldRating
	fieldComment
	fieldSubmit
	numFormFields
)

// Options tune the program.
type Options struct {
	// MarkdownStyle is the glamour style for assistant answers, e.g.
	// "dark" or "notty". Empty renders answers as plain text.
	MarkdownStyle string
}

// Model is the bubbletea model for one chat session.
type Model struct {
	ctx  context.Context
	orch *guide.Orchestrator
	opts Options

	focus  focus
	cursor int
	field  formField

	input   textinput.Model
	name    textinput.Model
	comment textarea.Model
	spinner spinner.Model
	chat    viewport.Model

	rendered map[int]string
	errLine  string

	width, height int
}

// New builds the model around orch. ctx is handed to every service call.
func New(ctx context.Context, orch *guide.Orchestrator, opts Options) Model {
	in := textinput.New()
	in.Placeholder = "Ask about tacos, ramen, vegan spots..."
	in.Prompt = "› "
	in.Focus()

	name := textinput.New()
	name.Placeholder = "Your name"
	name.Prompt = ""

	comment := textarea.New()
	comment.Placeholder = "Share your experience"
	comment.ShowLineNumbers = false
	comment.SetHeight(3)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))

	m := Model{
		ctx:      ctx,
		orch:     orch,
		opts:     opts,
		input:    in,
		name:     name,
		comment:  comment,
		spinner:  sp,
		chat:     viewport.New(80, 12),
		rendered: make(map[int]string),
	}
	m.refreshChat()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// renderAnswer formats an assistant message, caching by transcript index
// since messages never change once appended.
func (m Model) renderAnswer(i int, content string) string {
	if out, ok := m.rendered[i]; ok {
		return out
	}
	out := content
	if m.opts.MarkdownStyle != "" {
		styled, err := glamour.Render(content, m.opts.MarkdownStyle)
		if err != nil {
			log.Debug().Err(err).Msg("markdown render failed")
		} else {
			out = styled
		}
	}
	m.rendered[i] = out
	return out
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(ctx context.Context, orch *guide.Orchestrator, opts Options, progOpts ...tea.ProgramOption) error {
	progOpts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, progOpts...)
	_, err := tea.NewProgram(New(ctx, orch, opts), progOpts...).Run()
	return err
}
