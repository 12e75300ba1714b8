package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

// Kind is a persisted collection that can be browsed.
type Kind int

const (
	ArtistsKind Kind = iota
	PlaylistsKind
	AlbumsKind
)

var kinds = []Kind{ArtistsKind, PlaylistsKind, AlbumsKind}

func (k Kind) String() string {
	switch k {
	case ArtistsKind:
		return "artists"
	case PlaylistsKind:
		return "playlists"
	case AlbumsKind:
		return "albums"
	default:
		return "unknown"
	}
}

// Label is the heading shown above the collection.
func (k Kind) Label() string {
	switch k {
	case ArtistsKind:
		return "Followed Artists"
	case PlaylistsKind:
		return "Playlists"
	case AlbumsKind:
		return "Saved Albums"
	default:
		return "Unknown"
	}
}

func (k Kind) next() Kind {
	return kinds[(int(k)+1)%len(kinds)]
}

// ParseKind maps a flag value to a [Kind].
func ParseKind(s string) (Kind, error) {
	for _, k := range kinds {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown collection %q (want artists, playlists or albums)", shared.ErrInvalidArgument, s)
}

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LibraryView ViewState = iota
	TrackListView
)

// Library reads the persisted collections.
type Library interface {
	Artists() []models.Artist
	Playlists() []models.Playlist
	SavedAlbums() []models.SavedAlbum
}

// TrackSource fetches an album's track listing.
type TrackSource interface {
	AlbumTracks(ctx context.Context, albumID string) ([]models.Track, bool)
}

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	kind      Kind
	library   Library
	tracks    TrackSource
	width     int
	height    int
	items     list.Model
	trackList list.Model
	album     *models.Album
	loading   bool
	status    string
	help      help.Model
	keys      keyMap
}

// NewModel creates a browse model starting on kind. tracks may be nil, in which case only
// the track pages embedded in saved albums can be opened.
func NewModel(ctx context.Context, library Library, tracks TrackSource, kind Kind) *Model {
	m := &Model{
		ctx:     ctx,
		view:    LibraryView,
		kind:    kind,
		library: library,
		tracks:  tracks,
		width:   defaultWidth,
		height:  defaultHeight,
		help:    help.New(),
		keys:    newKeyMap(),
	}
	m.items = m.newList(nil, kind.Label())
	m.trackList = m.newList(nil, "Tracks")
	return m
}

// Size used until the first [tea.WindowSizeMsg] arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

func (m *Model) newList(items []list.Item, title string) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
	l.Title = title
	l.SetShowHelp(false)
	return l
}

// Init loads the starting collection from disk.
func (m *Model) Init() tea.Cmd {
	return m.loadLibrary(m.kind)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.items.SetSize(msg.Width-4, msg.Height-8)
		m.trackList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case LibraryView:
			return m.handleLibraryKeys(msg)
		case TrackListView:
			return m.handleTrackListKeys(msg)
		}

	case libraryLoadedMsg:
		if msg.kind != m.kind {
			return m, nil
		}
		m.items = m.newList(msg.items, m.kind.Label())
		if len(msg.items) == 0 {
			m.status = styles.warn.Render(fmt.Sprintf("No %s saved yet, run `shelf sync %s` first", m.kind, m.kind))
		}
		return m, nil

	case tracksFetchedMsg:
		m.loading = false
		if !msg.ok {
			m.status = styles.err.Render(fmt.Sprintf("Could not fetch tracks for %s", msg.album.Name))
			return m, nil
		}
		m.showTracks(msg.album, msg.tracks)
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	var helpKeys []key.Binding

	switch m.view {
	case TrackListView:
		body = m.trackList.View()
		helpKeys = []key.Binding{m.keys.up, m.keys.down, m.keys.back, m.keys.quit}
	default:
		body = fmt.Sprintf("%s\n\n%s", styles.tabs(m.kind), m.items.View())
		helpKeys = []key.Binding{m.keys.up, m.keys.down}
		if m.kind == AlbumsKind {
			helpKeys = append(helpKeys, m.keys.enter)
		}
		helpKeys = append(helpKeys, m.keys.next, m.keys.quit)
	}

	status := m.status
	if m.loading {
		status = styles.status.Render("Fetching tracks...")
	}

	return fmt.Sprintf("%s\n%s\n%s", body, status, styles.help.Render(m.help.ShortHelpView(helpKeys)))
}

// Kind returns the collection currently shown.
func (m *Model) Kind() Kind { return m.kind }

// State returns the current view state.
func (m *Model) State() ViewState { return m.view }

func (m *Model) handleLibraryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.items.FilterState() == list.Filtering {
		return m.updateLists(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.next):
		m.kind = m.kind.next()
		m.status = ""
		m.items = m.newList(nil, m.kind.Label())
		return m, m.loadLibrary(m.kind)
	case key.Matches(msg, m.keys.enter):
		if m.kind != AlbumsKind || m.loading {
			return m, nil
		}
		selected, ok := m.items.SelectedItem().(albumItem)
		if !ok {
			return m, nil
		}
		if tracks, ok := selected.embeddedTracks(); ok {
			m.showTracks(selected.album, tracks)
			return m, nil
		}
		if m.tracks == nil {
			m.status = styles.warn.Render(fmt.Sprintf("No tracks saved for %s", selected.album.Name))
			return m, nil
		}
		m.loading = true
		m.status = ""
		return m, m.fetchTracks(selected.album)
	}

	return m.updateLists(msg)
}

func (m *Model) handleTrackListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.trackList.FilterState() == list.Filtering {
		return m.updateLists(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = LibraryView
		m.album = nil
		return m, nil
	}

	return m.updateLists(msg)
}

func (m *Model) showTracks(album models.Album, tracks []models.Track) {
	m.album = &album
	m.trackList = m.newList(trackItems(tracks), fmt.Sprintf("Tracks on '%s'", album.Name))
	m.status = ""
	m.view = TrackListView
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case LibraryView:
		m.items, cmd = m.items.Update(msg)
	case TrackListView:
		m.trackList, cmd = m.trackList.Update(msg)
	}
	return m, cmd
}

func (m *Model) loadLibrary(kind Kind) tea.Cmd {
	return func() tea.Msg {
		var items []list.Item
		switch kind {
		case ArtistsKind:
			items = artistItems(m.library.Artists())
		case PlaylistsKind:
			items = playlistItems(m.library.Playlists())
		case AlbumsKind:
			items = albumItems(m.library.SavedAlbums())
		}
		return libraryLoadedMsg{kind: kind, items: items}
	}
}

func (m *Model) fetchTracks(album models.Album) tea.Cmd {
	return func() tea.Msg {
		tracks, ok := m.tracks.AlbumTracks(m.ctx, album.ID)
		return tracksFetchedMsg{album: album, tracks: tracks, ok: ok}
	}
}
