package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spx/internal/models"
	"github.com/desertthunder/spx/internal/shared"
	"github.com/desertthunder/spx/internal/tasks"
	"github.com/desertthunder/spx/spotify"
)

// pollInterval is how often the player view refreshes playback state.
const pollInterval = 2 * time.Second

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlaylistListView ViewState = iota
	TrackListView
	PlayerView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	client       *spotify.Client
	engine       *tasks.Engine
	width        int
	height       int
	playlistList list.Model
	playlists    []models.Playlist
	trackList    list.Model
	selected     *models.PlaylistExport
	state        *spotify.PlaybackState
	playbackBar  progress.Model
	polling      bool
	status       string
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, client *spotify.Client, engine *tasks.Engine) *Model {
	return &Model{
		ctx:         ctx,
		view:        PlaylistListView,
		client:      client,
		engine:      engine,
		playbackBar: progress.New(progress.WithDefaultGradient()),
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init starts the TUI by fetching the account's playlists.
func (m *Model) Init() tea.Cmd {
	return m.fetchPlaylists()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.playlistList.Width() == 0 {
			m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.trackList.Width() == 0 {
			m.trackList.SetSize(msg.Width-4, msg.Height-8)
		}
		if w := msg.Width - 8; w > 0 {
			m.playbackBar.Width = w
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case TrackListView:
			return m.handleTrackListKeys(msg)
		case PlayerView:
			return m.handlePlayerKeys(msg)
		}

	case playlistsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.playlists = msg.playlists
		items := make([]list.Item, len(msg.playlists))
		for i, pl := range msg.playlists {
			items[i] = playlistItem{playlist: pl}
		}
		m.playlistList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.playlistList.Title = "Your Playlists"
		m.playlistList.SetSize(m.width-4, m.height-8)
		return m, nil

	case tracksFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = PlaylistListView
			return m, nil
		}
		m.selected = msg.export
		items := make([]list.Item, len(msg.export.Tracks))
		for i, track := range msg.export.Tracks {
			items[i] = trackItem{track: track}
		}
		m.trackList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.trackList.Title = fmt.Sprintf("Tracks in '%s'", msg.export.Playlist.Name)
		m.trackList.SetSize(m.width-4, m.height-8)
		m.view = TrackListView
		return m, nil

	case playbackMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Playback poll failed: %v", msg.err)
			return m, nil
		}
		m.state = msg.state
		return m, nil

	case controlMsg:
		if msg.err != nil {
			m.status = controlStatus(msg.err)
			return m, nil
		}
		m.status = ""
		return m, m.fetchPlayback()

	case pollMsg:
		if m.view != PlayerView {
			m.polling = false
			return m, nil
		}
		return m, tea.Batch(m.fetchPlayback(), m.schedulePoll())
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != PlayerView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case PlaylistListView:
		return m.renderPlaylistList()
	case TrackListView:
		return m.renderTrackList()
	case PlayerView:
		return m.renderPlayer()
	default:
		return ""
	}
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "p":
		return m, m.openPlayer()
	case "enter":
		selected := m.playlistList.SelectedItem()
		if selected != nil {
			if pl, ok := selected.(playlistItem); ok {
				return m, m.fetchTracks(pl.playlist.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleTrackListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = PlaylistListView
		return m, nil
	case "p":
		return m, m.openPlayer()
	case "enter":
		if m.selected != nil && len(m.selected.Tracks) > 0 {
			play := m.playTrack("spotify:playlist:"+m.selected.Playlist.ID, m.trackList.Index())
			return m, tea.Batch(play, m.openPlayer())
		}
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) handlePlayerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.selected != nil {
			m.view = TrackListView
		} else {
			m.view = PlaylistListView
		}
		return m, nil
	case " ":
		return m, m.togglePlayback()
	case "n":
		return m, m.control(m.client.Next)
	case "b":
		return m, m.control(m.client.Previous)
	case "r":
		return m, m.fetchPlayback()
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PlaylistListView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case TrackListView:
		m.trackList, cmd = m.trackList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchPlaylists() tea.Cmd {
	return func() tea.Msg {
		first, err := m.client.MyPlaylists(m.ctx, 50, 0)
		if err != nil {
			return playlistsFetchedMsg{err: err}
		}
		var playlists []models.Playlist
		for simple, pageErr := range spotify.Pages(m.ctx, m.client, first) {
			if pageErr != nil {
				return playlistsFetchedMsg{err: pageErr}
			}
			playlists = append(playlists, models.PlaylistFromSpotify(simple))
		}
		return playlistsFetchedMsg{playlists: playlists}
	}
}

func (m *Model) fetchTracks(playlistID string) tea.Cmd {
	return func() tea.Msg {
		export, err := m.engine.ExportPlaylist(m.ctx, nil, playlistID)
		return tracksFetchedMsg{export: export, err: err}
	}
}

// openPlayer switches to the player view and starts the poll loop if
// one is not already running.
func (m *Model) openPlayer() tea.Cmd {
	m.view = PlayerView
	m.status = ""
	cmds := []tea.Cmd{m.fetchPlayback()}
	if !m.polling {
		m.polling = true
		cmds = append(cmds, m.schedulePoll())
	}
	return tea.Batch(cmds...)
}

func (m *Model) fetchPlayback() tea.Cmd {
	return func() tea.Msg {
		state, err := m.client.PlaybackState(m.ctx)
		return playbackMsg{state: state, err: err}
	}
}

func (m *Model) schedulePoll() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg { return pollMsg{} })
}

func (m *Model) playTrack(contextURI string, position int) tea.Cmd {
	return func() tea.Msg {
		opts := spotify.PlayOptions{ContextURI: contextURI, OffsetPosition: &position}
		return controlMsg{err: m.client.Play(m.ctx, opts)}
	}
}

func (m *Model) togglePlayback() tea.Cmd {
	playing := m.state != nil && m.state.IsPlaying
	return func() tea.Msg {
		if playing {
			return controlMsg{err: m.client.Pause(m.ctx)}
		}
		return controlMsg{err: m.client.Play(m.ctx, spotify.PlayOptions{})}
	}
}

func (m *Model) control(call func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return controlMsg{err: call(m.ctx)}
	}
}

// controlStatus maps a player call failure to the status line. The
// service answers control calls with 404 when no device is active.
func controlStatus(err error) string {
	if errors.Is(err, spotify.ErrNotFound) {
		return "No active device. Start playback on a device first."
	}
	return fmt.Sprintf("Player call failed: %v", err)
}

func (m *Model) renderPlaylistList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.player, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.playlistList.View(), helpView)
}

func (m *Model) renderTrackList() string {
	playKey := key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "play"),
	)
	helpKeys := []key.Binding{playKey, m.keys.back, m.keys.player, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.trackList.View(), helpView)
}

func (m *Model) renderPlayer() string {
	title := styles.title.Render("Now Playing")

	var body string
	if m.state == nil || m.state.Item == nil {
		body = styles.help.Render("Nothing playing. Start playback on any device and press r.")
	} else {
		track := models.TrackFromSpotify(*m.state.Item)

		line := styles.ok.Render(fmt.Sprintf("%s - %s", track.Artist, track.Title))
		if !m.state.IsPlaying {
			line = styles.warn.Render(fmt.Sprintf("%s - %s (paused)", track.Artist, track.Title))
		}

		var ratio float64
		if track.Duration > 0 {
			ratio = float64(m.state.ProgressMS) / float64(track.Duration)
		}
		if ratio > 1 {
			ratio = 1
		}
		elapsed := fmt.Sprintf("%s / %s",
			shared.FormatDuration(m.state.ProgressMS),
			shared.FormatDuration(track.Duration))

		device := fmt.Sprintf("Device: %s (%s) vol %d%%",
			m.state.Device.Name, m.state.Device.Type, m.state.Device.VolumePercent)
		modes := fmt.Sprintf("Shuffle: %v • Repeat: %s", m.state.ShuffleState, m.state.RepeatState)

		parts := []string{line}
		if track.Album != "" {
			parts = append(parts, track.Album)
		}
		parts = append(parts, "", m.playbackBar.ViewAs(ratio), elapsed, "", device, modes)
		body = strings.Join(parts, "\n")
	}

	var status string
	if m.status != "" {
		status = "\n\n" + styles.warn.Render(m.status)
	}

	helpKeys := []key.Binding{m.keys.toggle, m.keys.next, m.keys.prev, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, body, status, helpView)
}
