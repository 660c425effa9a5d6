package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/streetbites/guide/internal/guide"
)

const (
	minRating = 1
	maxRating = 5
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.refreshChat()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case completionMsg:
		return m.applyCompletion(msg.c)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.focus {
		case focusDetail:
			return m.updateDetail(msg)
		case focusResults:
			return m.updateResults(msg)
		default:
			return m.updateChat(msg)
		}
	}
	return m.forward(msg)
}

func (m Model) applyCompletion(c guide.Completion) (tea.Model, tea.Cmd) {
	next, err := m.orch.Apply(m.ctx, c)
	if err != nil {
		m.errLine = err.Error()
	} else if _, ok := c.(*guide.QueryResult); ok {
		m.errLine = ""
	}
	m.syncDraft()
	m.clampCursor()
	m.refreshChat()
	return m, waitFor(next)
}

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.orch.SetInput(m.input.Value())
		f := m.orch.SubmitInput(m.ctx)
		m.input.SetValue(m.orch.Input())
		if f == nil {
			return m, nil
		}
		m.refreshChat()
		return m, waitFor(f)
	case "tab":
		if len(m.orch.Results()) > 0 {
			m.focus = focusResults
			m.input.Blur()
		}
		return m, nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.orch.SetInput(m.input.Value())
	return m, cmd
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	results := m.orch.Results()
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(results)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor >= len(results) {
			return m, nil
		}
		f := m.orch.Open(m.ctx, results[m.cursor])
		m.focus = focusDetail
		m.field = fieldName
		m.focusField()
		return m, waitFor(f)
	case "tab", "esc":
		m.focus = focusChat
		return m, m.input.Focus()
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "esc":
		m.orch.Close()
		m.name.Blur()
		m.comment.Blur()
		if len(m.orch.Results()) > 0 {
			m.focus = focusResults
			return m, nil
		}
		m.focus = focusChat
		return m, m.input.Focus()
	case "tab":
		m.field = (m.field + 1) % numFormFields
		return m, m.focusField()
	case "shift+tab":
		m.field = (m.field + numFormFields - 1) % numFormFields
		return m, m.focusField()
	}

	switch m.field {
	case fieldName:
		if key == "enter" {
			m.field = fieldRating
			return m, m.focusField()
		}
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		_ = m.orch.UpdateDraftField(guide.FieldUserName, m.name.Value())
		return m, cmd

	case fieldRating:
		rating := m.orch.Detail().Draft.Rating
		switch key {
		case "left", "h", "-":
			rating = max(minRating, rating-1)
		case "right", "l", "+":
			rating = min(maxRating, rating+1)
		case "1", "2", "3", "4", "5":
			rating, _ = strconv.Atoi(key)
		case "enter":
			m.field = fieldComment
			return m, m.focusField()
		default:
			return m, nil
		}
		_ = m.orch.UpdateDraftField(guide.FieldRating, strconv.Itoa(rating))
		return m, nil

	case fieldComment:
		var cmd tea.Cmd
		m.comment, cmd = m.comment.Update(msg)
		_ = m.orch.UpdateDraftField(guide.FieldComment, m.comment.Value())
		return m, cmd

	case fieldSubmit:
		if key == "enter" || key == " " {
			return m, waitFor(m.orch.SubmitDraft(m.ctx))
		}
	}
	return m, nil
}

// forward hands non-key messages (cursor blink and the like) to whichever
// component has focus.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.focus == focusChat:
		m.input, cmd = m.input.Update(msg)
	case m.focus == focusDetail && m.field == fieldName:
		m.name, cmd = m.name.Update(msg)
	case m.focus == focusDetail && m.field == fieldComment:
		m.comment, cmd = m.comment.Update(msg)
	}
	return m, cmd
}

func (m *Model) focusField() tea.Cmd {
	m.name.Blur()
	m.comment.Blur()
	switch m.field {
	case fieldName:
		return m.name.Focus()
	case fieldComment:
		return m.comment.Focus()
	}
	return nil
}

// syncDraft pulls the form back from the session after a reset.
func (m *Model) syncDraft() {
	d := m.orch.Detail().Draft
	if m.name.Value() != d.UserName {
		m.name.SetValue(d.UserName)
	}
	if m.comment.Value() != d.Comment {
		m.comment.SetValue(d.Comment)
	}
}

func (m *Model) clampCursor() {
	n := len(m.orch.Results())
	if m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

func (m *Model) layout() {
	w := max(20, m.width-4)
	m.chat.Width = w
	m.chat.Height = max(5, m.height/3)
	m.input.Width = w - 4
	m.name.Width = w - 12
	m.comment.SetWidth(w - 12)
}
