package models

import (
	"errors"
	"time"
)

// SyncStatus is the outcome of a single sync operation.
type SyncStatus string

const (
	SyncOK             SyncStatus = "ok"
	SyncEmpty          SyncStatus = "empty" // body could not be decoded, an empty collection was written
	SyncTransportError SyncStatus = "transport_error"
	SyncStatusError    SyncStatus = "status_error"
	SyncPersistError   SyncStatus = "persist_error"
)

// Persisted reports whether the sync wrote a file.
func (s SyncStatus) Persisted() bool {
	return s == SyncOK || s == SyncEmpty
}

// Resource kinds synced to disk.
const (
	KindFollowedArtists   = "followed_artists"
	KindFollowedPlaylists = "followed_playlists"
	KindSavedAlbums       = "saved_albums"
)

// SyncRun records a single sync operation for the history table.
type SyncRun struct {
	id        string
	kind      string
	path      string
	itemCount int
	status    SyncStatus
	errText   string
	createdAt time.Time
	updatedAt time.Time
}

var _ Model = (*SyncRun)(nil)

// NewSyncRun creates a [SyncRun] timestamped now. The ID is assigned by the repository.
func NewSyncRun(kind, path string, itemCount int, status SyncStatus, errText string) *SyncRun {
	now := time.Now()
	return &SyncRun{
		kind:      kind,
		path:      path,
		itemCount: itemCount,
		status:    status,
		errText:   errText,
		createdAt: now,
		updatedAt: now,
	}
}

func (r *SyncRun) ID() string           { return r.id }
func (r *SyncRun) Kind() string         { return r.kind }
func (r *SyncRun) Path() string         { return r.path }
func (r *SyncRun) ItemCount() int       { return r.itemCount }
func (r *SyncRun) Status() SyncStatus   { return r.status }
func (r *SyncRun) ErrText() string      { return r.errText }
func (r *SyncRun) CreatedAt() time.Time { return r.createdAt }
func (r *SyncRun) UpdatedAt() time.Time { return r.updatedAt }

func (r *SyncRun) SetID(id string)          { r.id = id }
func (r *SyncRun) SetCreatedAt(t time.Time) { r.createdAt = t }
func (r *SyncRun) SetUpdatedAt(t time.Time) { r.updatedAt = t }

// Validate checks the required fields of the run.
func (r *SyncRun) Validate() error {
	if r.kind == "" {
		return errors.New("kind is required")
	}
	if r.status == "" {
		return errors.New("status is required")
	}
	if r.itemCount < 0 {
		return errors.New("item count must not be negative")
	}
	return nil
}
