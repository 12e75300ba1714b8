package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/shelf/internal/models"
)

// libraryLoadedMsg carries the list items read from a persisted collection.
type libraryLoadedMsg struct {
	kind  Kind
	items []list.Item
}

// tracksFetchedMsg carries the track listing of the selected album. ok is false when the request failed.
type tracksFetchedMsg struct {
	album  models.Album
	tracks []models.Track
	ok     bool
}
