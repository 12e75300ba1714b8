package models

// Envelope is implemented by every response wrapper that can be used as a sync or search target.
//
// E is the envelope type itself and T the item type it wraps.
// Both methods are total: Empty never fails and Unwrap never returns nil.
type Envelope[E any, T any] interface {
	// Empty returns an instance representing "no data", used when decoding fails.
	Empty() E
	// Unwrap strips every wrapper layer and returns the contained items in source order.
	Unwrap() []T
}

var (
	_ Envelope[FollowedArtists, Artist]        = FollowedArtists{}
	_ Envelope[FollowedPlaylists, Playlist]    = FollowedPlaylists{}
	_ Envelope[SavedAlbums, SavedAlbum]        = SavedAlbums{}
	_ Envelope[AlbumSearch, Album]             = AlbumSearch{}
	_ Envelope[PlaylistSearch, Playlist]       = PlaylistSearch{}
	_ Envelope[Page[Track], Track]             = Page[Track]{}
	_ Envelope[ItemCollection[Artist], Artist] = ItemCollection[Artist]{}
)

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// Page is the generic offset-based pagination wrapper.
type Page[T any] struct {
	Href     string  `json:"href"`
	Items    []T     `json:"items"`
	Limit    int     `json:"limit"`
	Next     *string `json:"next"`
	Offset   int     `json:"offset"`
	Previous *string `json:"previous"`
	Total    int     `json:"total"`
}

func (p Page[T]) Empty() Page[T] {
	return Page[T]{Items: []T{}}
}

func (p Page[T]) Unwrap() []T {
	return orEmpty(p.Items)
}

// artistCursor is the cursor-paginated wrapper used by the "following" endpoint.
type artistCursor struct {
	Href  string   `json:"href,omitempty"`
	Items []Artist `json:"items"`
	Limit int      `json:"limit,omitempty"`
	Next  *string  `json:"next,omitempty"`
	Total int      `json:"total"`
}

// FollowedArtists is the response of GET /me/following?type=artist.
type FollowedArtists struct {
	Artists artistCursor `json:"artists"`
}

func (f FollowedArtists) Empty() FollowedArtists {
	return FollowedArtists{Artists: artistCursor{Items: []Artist{}}}
}

func (f FollowedArtists) Unwrap() []Artist {
	return orEmpty(f.Artists.Items)
}

// FollowedPlaylists is the response of GET /me/playlists.
type FollowedPlaylists struct {
	Items []Playlist `json:"items"`
	Total int        `json:"total"`
}

func (f FollowedPlaylists) Empty() FollowedPlaylists {
	return FollowedPlaylists{Items: []Playlist{}}
}

func (f FollowedPlaylists) Unwrap() []Playlist {
	return orEmpty(f.Items)
}

// SavedAlbums is the response of GET /me/albums.
type SavedAlbums struct {
	Items []SavedAlbum `json:"items"`
	Total int          `json:"total"`
}

func (s SavedAlbums) Empty() SavedAlbums {
	return SavedAlbums{Items: []SavedAlbum{}}
}

func (s SavedAlbums) Unwrap() []SavedAlbum {
	return orEmpty(s.Items)
}

// AlbumSearch is the response of GET /search?type=album.
type AlbumSearch struct {
	Albums Page[Album] `json:"albums"`
}

func (a AlbumSearch) Empty() AlbumSearch {
	return AlbumSearch{Albums: Page[Album]{}.Empty()}
}

func (a AlbumSearch) Unwrap() []Album {
	return a.Albums.Unwrap()
}

// PlaylistSearch is the response of GET /search?type=playlist.
type PlaylistSearch struct {
	Playlists Page[Playlist] `json:"playlists"`
}

func (p PlaylistSearch) Empty() PlaylistSearch {
	return PlaylistSearch{Playlists: Page[Playlist]{}.Empty()}
}

// Unwrap drops the null entries the search endpoint returns for unavailable playlists.
func (p PlaylistSearch) Unwrap() []Playlist {
	items := make([]Playlist, 0, len(p.Playlists.Items))
	for _, pl := range p.Playlists.Items {
		if pl.ID == "" {
			continue
		}
		items = append(items, pl)
	}
	return items
}

// ItemCollection is the on-disk shape of a persisted sync: a bare JSON array of items.
type ItemCollection[T any] []T

func (c ItemCollection[T]) Empty() ItemCollection[T] {
	return ItemCollection[T]{}
}

func (c ItemCollection[T]) Unwrap() []T {
	return orEmpty([]T(c))
}

// SearchType is the resource type discriminator sent to the search endpoint.
type SearchType int

const (
	SearchTypeAlbum SearchType = iota
	SearchTypePlaylist
)

func (s SearchType) String() string {
	switch s {
	case SearchTypeAlbum:
		return "album"
	case SearchTypePlaylist:
		return "playlist"
	default:
		return "unknown"
	}
}
