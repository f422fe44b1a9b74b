package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/EgorUlitin/rss-aggregator/internal/application/settings"
	appstate "github.com/EgorUlitin/rss-aggregator/internal/application/state"
	"github.com/EgorUlitin/rss-aggregator/internal/application/usecase"
	tuistate "github.com/EgorUlitin/rss-aggregator/internal/presentation/tui/state"
)

// postItem adapts a post for the bubbles list.
type postItem struct {
	post      string
	id        string
	feedTitle string
	link      string
	shown     bool
}

func (i postItem) Title() string { return i.post }

func (i postItem) Description() string {
	if i.feedTitle == "" {
		return i.link
	}
	return i.feedTitle + " · " + i.link
}

func (i postItem) FilterValue() string { return i.post }

type submitDoneMsg struct {
	err error
}

// Model is the bubbletea model binding the application state to the
// terminal.
type Model struct {
	settings settings.Settings
	submit   usecase.SubmissionService
	app      *appstate.State
	binder   *Binder

	session tuistate.Session
	keys    tuistate.KeyMap
	list    list.Model
	input   textinput.Model
	spin    spinner.Model
	footer  string
	sending bool
	width   int
	height  int
}

// NewModel creates the application model.
func NewModel(cfg settings.Settings, submit usecase.SubmissionService, app *appstate.State, binder *Binder) *Model {
	keys := tuistate.NewKeyMap(cfg.KeyMap)

	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Posts"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.CursorUp = keys.Up
	l.KeyMap.CursorDown = keys.Down

	input := textinput.New()
	input.Placeholder = "https://example.com/feed.xml"
	input.CharLimit = 512

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		settings: cfg,
		submit:   submit,
		app:      app,
		binder:   binder,
		session:  tuistate.BrowseView,
		keys:     keys,
		list:     l,
		input:    input,
		spin:     sp,
	}
}

// Init starts the spinner and the state event pump.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, textinput.Blink, m.nextEvent())
}

func (m *Model) nextEvent() tea.Cmd {
	return func() tea.Msg {
		return m.binder.waitForEvent()
	}
}

func (m *Model) submitCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return submitDoneMsg{err: m.submit.Submit(context.Background(), url)}
	}
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h := msg.Height - listChromeHeight
		if h < 0 {
			h = 0
		}
		m.list.SetSize(msg.Width-2, h)
		return m, nil

	case StateMsg:
		m.applyEvent(msg.Event)
		return m, m.nextEvent()

	case submitDoneMsg:
		m.sending = false
		if msg.err == nil {
			m.input.Reset()
			m.session = tuistate.BrowseView
		}
		return m, nil

	case tea.KeyMsg:
		if handled, cmd := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	if m.sending {
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
	}

	switch m.session {
	case tuistate.BrowseView:
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	case tuistate.AddFeedView:
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.Msg) (bool, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}

	switch m.session {
	case tuistate.BrowseView:
		switch {
		case key.Matches(keyMsg, m.keys.Quit):
			return true, tea.Quit
		case key.Matches(keyMsg, m.keys.AddFeed):
			m.session = tuistate.AddFeedView
			m.footer = ""
			return true, m.input.Focus()
		case key.Matches(keyMsg, m.keys.Open):
			if item, ok := m.list.SelectedItem().(postItem); ok {
				m.app.MarkPostShown(item.id)
				m.session = tuistate.ModalView
			}
			return true, nil
		}
	case tuistate.AddFeedView:
		switch {
		case key.Matches(keyMsg, m.keys.Back):
			m.session = tuistate.BrowseView
			m.input.Blur()
			return true, nil
		case keyMsg.String() == "enter":
			if m.sending {
				return true, nil
			}
			m.sending = true
			return true, tea.Batch(m.spin.Tick, m.submitCmd(m.input.Value()))
		}
	case tuistate.ModalView:
		if key.Matches(keyMsg, m.keys.Back) || key.Matches(keyMsg, m.keys.Open) {
			m.app.CloseModal()
			m.session = tuistate.BrowseView
			return true, nil
		}
		if key.Matches(keyMsg, m.keys.Quit) {
			return true, tea.Quit
		}
	}
	return false, nil
}

// applyEvent refreshes the view from the state after a mutation. The
// event only says what kind of change happened; everything shown is
// re-read from the state so coalesced events render the latest values.
func (m *Model) applyEvent(ev appstate.Event) {
	switch ev.Kind {
	case appstate.SubmissionChanged:
		status, code := m.app.Submission()
		m.footer = tuistate.StatusText(status, code)
	case appstate.PollingChanged:
		if status, code := m.app.Polling(); status == appstate.PollingFailed {
			m.footer = tuistate.ErrorText(code)
		}
	}
	m.refreshList()
}

// refreshList rebuilds the post list from a state snapshot. Newest
// posts come first within the stored order.
func (m *Model) refreshList() {
	feeds := m.app.Feeds()
	titles := make(map[string]string, len(feeds))
	for _, f := range feeds {
		titles[f.ID] = f.Title
	}

	shownStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.settings.Theme.ShownPost))

	posts := m.app.Posts()
	items := make([]list.Item, 0, len(posts))
	for i := len(posts) - 1; i >= 0; i-- {
		p := posts[i]
		shown := m.app.IsShown(p.ID)
		title := p.Title
		if shown {
			title = shownStyle.Render(title)
		} else {
			title = "● " + title
		}
		items = append(items, postItem{
			post:      title,
			id:        p.ID,
			feedTitle: titles[p.FeedID],
			link:      p.Link,
			shown:     shown,
		})
	}
	m.list.SetItems(items)
}
