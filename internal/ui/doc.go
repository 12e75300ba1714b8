// Package ui implements an interactive browser for the persisted library using bubbletea's Elm architecture.
//
// The TUI has two views:
//  1. [LibraryView] : the followed artists, playlists or saved albums read from the data directory (tab cycles collections)
//  2. [TrackListView] : the tracks of the selected album, taken from the saved album when present or fetched from the API
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern. Disk reads and track requests
// run as [tea.Cmd] values and report back through typed messages.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, tab, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
