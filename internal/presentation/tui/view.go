package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	appstate "github.com/EgorUlitin/rss-aggregator/internal/application/state"
	tuistate "github.com/EgorUlitin/rss-aggregator/internal/presentation/tui/state"
	"github.com/EgorUlitin/rss-aggregator/internal/presentation/tui/textutil"
)

// listChromeHeight is the vertical space taken by the header and footer
// around the post list.
const listChromeHeight = 6

// View renders the application view.
func (m *Model) View() string {
	switch m.session {
	case tuistate.AddFeedView:
		return m.viewAddFeed()
	case tuistate.ModalView:
		return m.viewModal()
	default:
		return m.viewBrowse()
	}
}

func (m *Model) viewBrowse() string {
	feedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.settings.Theme.FeedTitle))

	var b strings.Builder
	feeds := m.app.Feeds()
	if len(feeds) == 0 {
		b.WriteString("No feeds yet. Press 'a' to add one.\n")
	} else {
		names := make([]string, len(feeds))
		for i, f := range feeds {
			names[i] = f.Title
		}
		b.WriteString(feedStyle.Render("Feeds: "+strings.Join(names, ", ")) + "\n")
	}

	b.WriteString(m.list.View())
	b.WriteString("\n" + m.footerLine())
	return b.String()
}

func (m *Model) viewAddFeed() string {
	var b strings.Builder
	b.WriteString("Add a feed\n\n")
	b.WriteString(m.input.View() + "\n\n")
	if m.sending {
		b.WriteString(m.spin.View() + " Loading feed...\n")
	} else if m.footer != "" {
		b.WriteString(m.statusLine() + "\n")
	}
	b.WriteString("\n(enter to submit, esc to cancel)")
	return b.String()
}

func (m *Model) viewModal() string {
	post, ok := m.app.ModalPost()
	if !ok {
		return m.viewBrowse()
	}

	width := m.width - 8
	if width < 20 {
		width = 20
	}

	body := fmt.Sprintf(
		"%s\n\n%s\n\n%s",
		textutil.Truncate(textutil.SingleLine(post.Title), width),
		textutil.StripTags(post.Description),
		post.Link,
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		Width(width)
	return box.Render(body) + "\n\n(esc to close)"
}

func (m *Model) footerLine() string {
	status := m.statusLine()
	if status == "" {
		status = "a: add feed · enter: open post · q: quit"
	}
	return status
}

func (m *Model) statusLine() string {
	if m.footer == "" {
		return ""
	}
	submission, _ := m.app.Submission()
	polling, _ := m.app.Polling()
	if submission == appstate.Failed || polling == appstate.PollingFailed {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.settings.Theme.Error))
		return errStyle.Render(m.footer)
	}
	return m.footer
}
