// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow over the account's library:
//  1. [PlaylistListView] : Browse and select the account's playlists
//  2. [TrackListView] : Preview a playlist's tracks, play one with enter
//  3. [PlayerView] : Watch the active device and control playback
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving one typed message struct per event.
// While the player view is visible the model polls playback state on a ticker, so the progress bar and device info track the real device.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, space, n/b, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
