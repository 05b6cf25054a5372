// Package ui implements the interactive terminal interface using the Bubble Tea framework.
//
// # Architecture
//
// The [Model] follows the Elm architecture with three views managed by [ViewState]:
//   - SearchView: a query input with artist and track suggestion panes, refreshed as the user types
//   - ResultsView: a track list (top tracks for an artist, or full search results) with preview playback
//   - ErrorView: a modal for failures; an expired-session failure offers a binary re-authentication choice
//
// # Suggestions
//
// Keystrokes below the configured minimum query length leave the panes untouched.
// Once the threshold is met, both suggestion sources are queried concurrently; responses
// superseded by a newer keystroke arrive as stale errors and are dropped silently, so the
// panes only ever show the latest query's results.
//
// # Playback
//
// Selecting a track with a preview hands it to the playback controller and records the play
// in history. The footer shows the current track and refreshes on a short ticker.
package ui
