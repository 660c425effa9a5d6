package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/streetbites/guide/client"
	"github.com/streetbites/guide/internal/guide"
)

const noReviews = "No reviews yet. Be the first!"

func (m Model) View() string {
	s := m.orch.Snapshot()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Street Bites Guide"))
	b.WriteString("\n")

	b.WriteString(pane(m.focus == focusChat).Render(m.chat.View()))
	b.WriteString("\n")
	if s.PendingQueries > 0 {
		b.WriteString(m.spinner.View() + mutedStyle.Render(" thinking..."))
		b.WriteString("\n")
	}
	if m.errLine != "" {
		b.WriteString(errorStyle.Render("⚠ " + m.errLine))
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if s.Detail.Open {
		b.WriteString(pane(true).Render(m.detailView(s.Detail)))
	} else {
		b.WriteString(pane(m.focus == focusResults).Render(m.resultsView(s.Results)))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func pane(focused bool) lipgloss.Style {
	if focused {
		return focusedPaneStyle
	}
	return paneStyle
}

// refreshChat re-renders the transcript into the viewport and scrolls to
// the newest message.
func (m *Model) refreshChat() {
	var b strings.Builder
	for i, msg := range m.orch.Messages() {
		if i > 0 {
			b.WriteString("\n")
		}
		switch msg.Role {
		case guide.RoleUser:
			b.WriteString(lipgloss.PlaceHorizontal(m.chat.Width, lipgloss.Right, userStyle.Render(msg.Content)))
		default:
			b.WriteString(assistantLabelStyle.Render("guide"))
			b.WriteString("\n")
			b.WriteString(strings.TrimRight(m.renderAnswer(i, msg.Content), "\n"))
		}
		b.WriteString("\n")
	}
	m.chat.SetContent(b.String())
	m.chat.GotoBottom()
}

func (m Model) resultsView(results []client.Restaurant) string {
	if len(results) == 0 {
		return mutedStyle.Render("Results show up here.")
	}
	var cards []string
	for i, r := range results {
		style := cardStyle
		if m.focus == focusResults && i == m.cursor {
			style = selectedCardStyle
		}
		cards = append(cards, style.Render(renderCard(guide.CardOf(r))))
	}
	return strings.Join(cards, "\n")
}

func renderCard(c guide.Card) string {
	var badges []string
	for _, b := range c.Badges {
		badges = append(badges, badgeStyle.Render(b))
	}
	head := cardNameStyle.Render(c.Name) + "  " + ratingStyle.Render("★ "+c.Rating)
	lines := []string{head}
	if c.Location != "" {
		lines = append(lines, locationStyle.Render(c.Location))
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, badges...))
	return strings.Join(lines, "\n")
}

func (m Model) detailView(d guide.DetailState) string {
	if d.Restaurant == nil {
		return ""
	}
	card := guide.CardOf(*d.Restaurant)

	var b strings.Builder
	b.WriteString(renderCard(card))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(card.PhotoURL))
	b.WriteString("\n\n")

	b.WriteString(cardNameStyle.Render("Reviews"))
	b.WriteString("\n")
	switch {
	case d.LoadingReviews:
		b.WriteString(m.spinner.View() + " Loading...")
		b.WriteString("\n")
	case len(d.Reviews) == 0:
		b.WriteString(mutedStyle.Render(noReviews))
		b.WriteString("\n")
	}
	for _, rv := range d.Reviews {
		b.WriteString(cardNameStyle.Render(rv.UserName) + " " + ratingStyle.Render(stars(rv.Rating)))
		b.WriteString("\n")
		if rv.Comment != "" {
			b.WriteString("  " + rv.Comment + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(cardNameStyle.Render("Add your review"))
	b.WriteString("\n")
	b.WriteString(m.label(fieldName, "Name") + m.name.View() + "\n")
	b.WriteString(m.label(fieldRating, "Rating") + ratingStyle.Render(stars(d.Draft.Rating)) + mutedStyle.Render(fmt.Sprintf(" (%d)", d.Draft.Rating)) + "\n")
	b.WriteString(m.label(fieldComment, "Comment") + "\n" + m.comment.View() + "\n")
	button := buttonStyle
	if m.focus == focusDetail && m.field == fieldSubmit {
		button = activeButtonStyle
	}
	b.WriteString(button.Render("Submit"))
	return b.String()
}

func (m Model) label(f formField, text string) string {
	if m.focus == focusDetail && m.field == f {
		return activeLabelStyle.Render(text)
	}
	return fieldLabelStyle.Render(text)
}

func stars(n int) string {
	if n < 0 {
		n = 0
	}
	return strings.Repeat("★", n)
}

func (m Model) help() string {
	switch m.focus {
	case focusResults:
		return "↑/↓ choose • enter open • tab chat • ctrl+c quit"
	case focusDetail:
		return "tab next field • ←/→ or 1-5 rating • enter submit • esc close"
	default:
		return "enter ask • tab results • pgup/pgdown scroll • ctrl+c quit"
	}
}
