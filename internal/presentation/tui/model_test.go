package tui

import (
	"context"
	"strconv"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/mock"

	"github.com/EgorUlitin/rss-aggregator/internal/application/settings"
	appstate "github.com/EgorUlitin/rss-aggregator/internal/application/state"
	"github.com/EgorUlitin/rss-aggregator/internal/application/usecase"
	"github.com/EgorUlitin/rss-aggregator/internal/domain/aggregation"
	tuistate "github.com/EgorUlitin/rss-aggregator/internal/presentation/tui/state"
)

type stubFetcher struct {
	mock.Mock
	feed *aggregation.ParsedFeed
	err  error
}

func (s *stubFetcher) Fetch(ctx context.Context, url string) (*aggregation.ParsedFeed, error) {
	if len(s.ExpectedCalls) > 0 {
		args := s.Called(ctx, url)
		parsed, _ := args.Get(0).(*aggregation.ParsedFeed)
		return parsed, args.Error(1)
	}
	return s.feed, s.err
}

type testIDs struct {
	n int
}

func (t *testIDs) NextID() string {
	t.n++
	return strconv.Itoa(t.n)
}

func testSettings() settings.Settings {
	return settings.Settings{
		KeyMap: settings.KeyMapConfig{
			Up: "k", Down: "j", Open: "enter", Back: "esc", AddFeed: "a", Quit: "q",
		},
		Theme: settings.ThemeConfig{FeedTitle: "99", ShownPost: "240", Error: "196"},
	}
}

func newTestModel(fetch *stubFetcher) (*Model, *appstate.State) {
	st := appstate.New()
	binder := NewBinder()
	st.Subscribe(binder)
	svc := usecase.NewSubmissionService(fetch, st, &testIDs{}, nil)
	return NewModel(testSettings(), svc, st, binder), st
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestAddFeedKeyOpensForm(t *testing.T) {
	m, _ := newTestModel(&stubFetcher{})

	_, _ = m.Update(keyPress('a'))
	if m.session != tuistate.AddFeedView {
		t.Fatalf("session = %v, want AddFeedView", m.session)
	}
}

func TestSubmitFlowThroughForm(t *testing.T) {
	m, st := newTestModel(&stubFetcher{feed: &aggregation.ParsedFeed{
		Title: "A",
		Posts: []aggregation.ParsedPost{{Title: "P", Link: "x"}},
	}})

	_, _ = m.Update(keyPress('a'))
	m.input.SetValue("https://example.com/feed.xml")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should produce a submit command")
	}
	if !m.sending {
		t.Fatal("model should be sending after enter")
	}

	// Run the batched command and feed the result back in.
	msg := findSubmitResult(t, cmd())
	_, _ = m.Update(msg)

	if m.sending {
		t.Fatal("sending should clear after the result")
	}
	if m.session != tuistate.BrowseView {
		t.Fatalf("session = %v, want BrowseView after success", m.session)
	}
	if feeds := st.Feeds(); len(feeds) != 1 || feeds[0].Title != "A" {
		t.Fatalf("unexpected feeds: %#v", feeds)
	}
}

// findSubmitResult digs the submitDoneMsg out of a possibly batched
// command result.
func findSubmitResult(t *testing.T, msg tea.Msg) submitDoneMsg {
	t.Helper()
	switch msg := msg.(type) {
	case submitDoneMsg:
		return msg
	case tea.BatchMsg:
		for _, cmd := range msg {
			if done, ok := cmd().(submitDoneMsg); ok {
				return done
			}
		}
	}
	t.Fatal("no submit result in command output")
	return submitDoneMsg{}
}

func TestOpenPostMarksShownAndOpensModal(t *testing.T) {
	m, st := newTestModel(&stubFetcher{})
	st.AddFeed(aggregation.Feed{ID: "f1", Title: "Feed"}, "u1", []aggregation.Post{
		{ID: "p1", FeedID: "f1", Title: "Post", Link: "x"},
	})
	m.refreshList()

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if !st.IsShown("p1") {
		t.Fatal("opening a post must mark it shown")
	}
	if m.session != tuistate.ModalView {
		t.Fatalf("session = %v, want ModalView", m.session)
	}
	if post, ok := st.ModalPost(); !ok || post.ID != "p1" {
		t.Fatalf("modal post = %#v/%v, want p1", post, ok)
	}

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.session != tuistate.BrowseView {
		t.Fatalf("session = %v, want BrowseView after close", m.session)
	}
	if _, ok := st.ModalPost(); ok {
		t.Fatal("modal should be cleared after close")
	}
}

func TestStateEventUpdatesFooter(t *testing.T) {
	m, st := newTestModel(&stubFetcher{})

	st.SetSubmission(appstate.Failed, appstate.ErrorAlreadyExists)
	_, _ = m.Update(StateMsg{Event: appstate.Event{Kind: appstate.SubmissionChanged}})
	if m.footer != "RSS already exists" {
		t.Fatalf("footer = %q", m.footer)
	}

	st.SetPolling(appstate.PollingFailed, appstate.ErrorNetwork)
	_, _ = m.Update(StateMsg{Event: appstate.Event{Kind: appstate.PollingChanged}})
	if m.footer != "Network error" {
		t.Fatalf("footer = %q", m.footer)
	}
}

func TestConfiguredListKeysMoveCursor(t *testing.T) {
	st := appstate.New()
	binder := NewBinder()
	st.Subscribe(binder)
	svc := usecase.NewSubmissionService(&stubFetcher{}, st, &testIDs{}, nil)

	cfg := testSettings()
	cfg.KeyMap.Up = "w"
	cfg.KeyMap.Down = "s"
	m := NewModel(cfg, svc, st, binder)

	st.AddFeed(aggregation.Feed{ID: "f1", Title: "Feed"}, "u1", []aggregation.Post{
		{ID: "p1", FeedID: "f1", Title: "one", Link: "l1"},
		{ID: "p2", FeedID: "f1", Title: "two", Link: "l2"},
	})
	_, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.refreshList()

	_, _ = m.Update(keyPress('s'))
	if m.list.Index() != 1 {
		t.Fatalf("index after configured down key = %d, want 1", m.list.Index())
	}
	_, _ = m.Update(keyPress('w'))
	if m.list.Index() != 0 {
		t.Fatalf("index after configured up key = %d, want 0", m.list.Index())
	}
}

// A backlogged binder can drop events; the footer must reflect the
// state at render time, not the payload of whichever event survived.
func TestFooterSurvivesDroppedEvents(t *testing.T) {
	m, st := newTestModel(&stubFetcher{})

	st.SetSubmission(appstate.Sending, appstate.ErrorNone)
	st.SetSubmission(appstate.Success, appstate.ErrorNone)

	// Only the first event of the burst is delivered.
	_, _ = m.Update(StateMsg{Event: appstate.Event{
		Kind:       appstate.SubmissionChanged,
		Submission: appstate.Sending,
	}})
	if m.footer != "RSS loaded successfully" {
		t.Fatalf("footer = %q, want the latest submission status", m.footer)
	}
}
