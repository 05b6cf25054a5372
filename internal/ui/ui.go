package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ac1714/chirp/internal/player"
	"github.com/ac1714/chirp/internal/repositories"
	"github.com/ac1714/chirp/internal/search"
	"github.com/ac1714/chirp/internal/services"
	"github.com/ac1714/chirp/internal/shared"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SearchView ViewState = iota
	ResultsView
	ErrorView
)

// pane identifies the focused element of the search view.
type pane int

const (
	inputPane pane = iota
	artistsPane
	tracksPane
)

// Deps holds the collaborators injected into the TUI model.
type Deps struct {
	Pipeline   *search.Pipeline
	Controller *player.Controller
	History    *repositories.HistoryRepository
	Cache      *repositories.TrackCacheRepository
	Logger     *log.Logger
	MinQuery   int
	// LoginFlow runs the complete re-authentication flow. Invoked when
	// the user confirms the re-auth offer after a 401.
	LoginFlow func(context.Context) error
}

// Model represents the TUI application state.
type Model struct {
	ctx  context.Context
	deps Deps

	view  ViewState
	focus pane

	input       textinput.Model
	artistList  list.Model
	trackList   list.Model
	resultsList list.Model

	width  int
	height int

	lastQuery   string
	errMsg      string
	offerReauth bool

	help help.Model
	keys keyMap
}

type suggestionsMsg struct {
	result *search.SuggestResult
	err    error
}

type tracksLoadedMsg struct {
	title    string
	tracks   []services.Track
	autoplay bool
	err      error
}

type trackPlayedMsg struct {
	track services.Track
	err   error
}

type reauthDoneMsg struct {
	err error
}

type tickMsg time.Time

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, deps Deps) *Model {
	if deps.Logger == nil {
		deps.Logger = shared.NewLogger(nil)
	}
	if deps.MinQuery <= 0 {
		deps.MinQuery = 5
	}

	input := textinput.New()
	input.Placeholder = "Search artists and tracks"
	input.Focus()

	return &Model{
		ctx:         ctx,
		deps:        deps,
		view:        SearchView,
		focus:       inputPane,
		input:       input,
		artistList:  newSuggestionList("Artists", 0, 0),
		trackList:   newSuggestionList("Tracks", 0, 0),
		resultsList: newSuggestionList("Results", 0, 0),
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init starts the now-playing refresh ticker.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listWidth := msg.Width/2 - 4
		listHeight := msg.Height - 10
		m.artistList.SetSize(listWidth, listHeight)
		m.trackList.SetSize(listWidth, listHeight)
		m.resultsList.SetSize(msg.Width-4, listHeight)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.deps.Controller.Stop()
			return m, tea.Quit
		}
		switch m.view {
		case SearchView:
			return m.handleSearchKeys(msg)
		case ResultsView:
			return m.handleResultsKeys(msg)
		case ErrorView:
			return m.handleErrorKeys(msg)
		}

	case suggestionsMsg:
		return m.applySuggestions(msg)

	case tracksLoadedMsg:
		if msg.err != nil {
			return m.fail(msg.err)
		}
		items := make([]list.Item, len(msg.tracks))
		for i, track := range msg.tracks {
			items[i] = trackItem{track: track}
		}
		m.resultsList.SetItems(items)
		m.resultsList.Title = msg.title
		m.view = ResultsView
		if msg.autoplay && len(msg.tracks) > 0 && msg.tracks[0].HasPreview() {
			return m, m.playTrack(msg.tracks[0])
		}
		return m, nil

	case trackPlayedMsg:
		if msg.err != nil {
			return m.fail(msg.err)
		}
		return m, nil

	case reauthDoneMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			m.offerReauth = false
			m.view = ErrorView
			return m, nil
		}
		m.view = SearchView
		m.errMsg = ""
		return m, nil

	case tickMsg:
		return m, m.tick()
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case SearchView:
		return m.renderSearch()
	case ResultsView:
		return m.renderResults()
	case ErrorView:
		return m.renderError()
	default:
		return ""
	}
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "tab":
		m.focus = (m.focus + 1) % 3
		if m.focus == inputPane {
			m.input.Focus()
		} else {
			m.input.Blur()
		}
		return m, nil

	case msg.String() == "ctrl+p":
		if err := m.deps.Controller.Pause(); err != nil && !errors.Is(err, shared.ErrNothingPlaying) {
			return m.fail(err)
		}
		return m, nil

	case msg.String() == "enter":
		switch m.focus {
		case inputPane:
			return m, m.submitSearch(m.input.Value())
		case artistsPane:
			if item, ok := m.artistList.SelectedItem().(artistItem); ok {
				return m, m.loadTopTracks(item.artist)
			}
		case tracksPane:
			if item, ok := m.trackList.SelectedItem().(trackItem); ok {
				return m, m.loadTrack(item.track)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case inputPane:
		before := m.input.Value()
		m.input, cmd = m.input.Update(msg)
		query := m.input.Value()
		if query != before && len(strings.TrimSpace(query)) >= m.deps.MinQuery {
			m.lastQuery = query
			return m, tea.Batch(cmd, m.suggest(search.SourceArtists, query), m.suggest(search.SourceTracks, query))
		}
	case artistsPane:
		m.artistList, cmd = m.artistList.Update(msg)
	case tracksPane:
		m.trackList, cmd = m.trackList.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = SearchView
		return m, nil
	case "ctrl+p":
		if err := m.deps.Controller.Pause(); err != nil && !errors.Is(err, shared.ErrNothingPlaying) {
			return m.fail(err)
		}
		return m, nil
	case "enter":
		if item, ok := m.resultsList.SelectedItem().(trackItem); ok {
			if !item.track.HasPreview() {
				return m, nil
			}
			return m, m.playTrack(item.track)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.resultsList, cmd = m.resultsList.Update(msg)
	return m, cmd
}

func (m *Model) handleErrorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		if m.offerReauth && m.deps.LoginFlow != nil {
			return m, m.reauth()
		}
	case "n", "esc", "enter":
		m.view = SearchView
		m.errMsg = ""
		m.offerReauth = false
		return m, nil
	}
	return m, nil
}

// applySuggestions installs a resolved suggestion set. Stale responses
// were already discarded by the pipeline and arrive as errors here.
func (m *Model) applySuggestions(msg suggestionsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, shared.ErrStaleResponse) {
			return m, nil
		}
		return m.fail(msg.err)
	}

	switch msg.result.Source {
	case search.SourceArtists:
		items := make([]list.Item, len(msg.result.Artists))
		for i, artist := range msg.result.Artists {
			items[i] = artistItem{artist: artist}
		}
		m.artistList.SetItems(items)
	case search.SourceTracks:
		items := make([]list.Item, len(msg.result.Tracks))
		for i, track := range msg.result.Tracks {
			items[i] = trackItem{track: track}
		}
		m.trackList.SetItems(items)
	}
	return m, nil
}

// fail routes an error to the modal view. A 401 offers the binary
// re-authenticate choice; everything else is read-only.
func (m *Model) fail(err error) (tea.Model, tea.Cmd) {
	m.deps.Logger.Error("request failed", "error", err)
	if apiErr, ok := services.AsAPIError(err); ok && apiErr.Kind == services.KindUnauthorized {
		m.errMsg = "Spotify session token expired!"
		m.offerReauth = true
	} else {
		m.errMsg = err.Error()
		m.offerReauth = false
	}
	m.view = ErrorView
	return m, nil
}

func (m *Model) suggest(source, query string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.deps.Pipeline.Suggest(m.ctx, source, query)
		return suggestionsMsg{result: result, err: err}
	}
}

func (m *Model) submitSearch(query string) tea.Cmd {
	return func() tea.Msg {
		tracks, err := m.deps.Pipeline.SearchByQuery(m.ctx, query)
		if errors.Is(err, shared.ErrEmptyQuery) {
			// Local validation, silently no-ops.
			return nil
		}
		return tracksLoadedMsg{title: fmt.Sprintf("Tracks for %q", query), tracks: tracks, err: err}
	}
}

func (m *Model) loadTopTracks(artist services.Artist) tea.Cmd {
	return func() tea.Msg {
		tracks, err := m.deps.Pipeline.ArtistTopTracks(m.ctx, artist.ID, artist.Query)
		return tracksLoadedMsg{title: fmt.Sprintf("Top tracks by %s", artist.Name), tracks: tracks, err: err}
	}
}

func (m *Model) loadTrack(track services.Track) tea.Cmd {
	return func() tea.Msg {
		loaded, err := m.deps.Pipeline.TrackByID(m.ctx, track.ID, track.Query)
		if err != nil {
			return tracksLoadedMsg{err: err}
		}
		return tracksLoadedMsg{title: loaded.Title, tracks: []services.Track{*loaded}, autoplay: true}
	}
}

func (m *Model) playTrack(track services.Track) tea.Cmd {
	return func() tea.Msg {
		if err := m.deps.Controller.Select(track); err != nil {
			return trackPlayedMsg{track: track, err: err}
		}
		if m.deps.History != nil {
			if _, err := m.deps.History.Record(track); err != nil {
				m.deps.Logger.Warn("failed to record play", "error", err)
			}
		}
		if m.deps.Cache != nil {
			if err := m.deps.Cache.Cache(track); err != nil {
				m.deps.Logger.Warn("failed to cache track", "error", err)
			}
		}
		return trackPlayedMsg{track: track}
	}
}

func (m *Model) reauth() tea.Cmd {
	return func() tea.Msg {
		return reauthDoneMsg{err: m.deps.LoginFlow(m.ctx)}
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) renderSearch() string {
	lists := lipgloss.JoinHorizontal(lipgloss.Top, m.artistList.View(), "  ", m.trackList.View())
	return fmt.Sprintf(
		"%s\n%s\n\n%s\n\n%s\n%s",
		styles.title.Render("chirp"),
		m.input.View(),
		lists,
		m.nowPlaying(),
		m.help.ShortHelpView(m.keys.ShortHelp()),
	)
}

func (m *Model) renderResults() string {
	return fmt.Sprintf(
		"%s\n\n%s\n%s",
		m.resultsList.View(),
		m.nowPlaying(),
		m.help.ShortHelpView(m.keys.ShortHelp()),
	)
}

func (m *Model) renderError() string {
	title := styles.err.Render("Error!")
	if m.offerReauth {
		prompt := "Sign in again? (y/n)"
		return fmt.Sprintf("%s\n\n%s\n\n%s", title, m.errMsg, styles.help.Render(prompt))
	}
	return fmt.Sprintf("%s\n\n%s\n\n%s", title, m.errMsg, styles.help.Render("Press enter to continue"))
}

// nowPlaying renders the current playback state footer.
func (m *Model) nowPlaying() string {
	track, status := m.deps.Controller.Current()
	switch {
	case track != nil:
		return styles.playing.Render(fmt.Sprintf("♪ %s — %s [%s]", track.Artist, track.Title, track.Duration))
	case status == player.Paused:
		return styles.help.Render("paused")
	default:
		return styles.help.Render("nothing playing")
	}
}
