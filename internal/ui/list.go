package ui

import (
	"fmt"

	"github.com/ac1714/chirp/internal/services"
	"github.com/charmbracelet/bubbles/list"
)

var (
	_ list.Item = artistItem{}
	_ list.Item = trackItem{}
)

// artistItem wraps [services.Artist] to implement [list.Item].
type artistItem struct {
	artist services.Artist
}

func (i artistItem) FilterValue() string { return i.artist.Name }
func (i artistItem) Title() string       { return i.artist.Name }
func (i artistItem) Description() string {
	return fmt.Sprintf("popularity %d", i.artist.Popularity)
}

// trackItem wraps [services.Track] to implement [list.Item].
type trackItem struct {
	track services.Track
}

func (i trackItem) FilterValue() string { return i.track.Title }
func (i trackItem) Title() string       { return i.track.Title }
func (i trackItem) Description() string {
	desc := i.track.Artist
	if i.track.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.track.Album)
	}
	desc = fmt.Sprintf("%s [%s]", desc, i.track.Duration)
	if !i.track.HasPreview() {
		desc = fmt.Sprintf("%s (no preview)", desc)
	}
	return desc
}

// newSuggestionList builds a compact list for one suggestion source.
func newSuggestionList(title string, width, height int) list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), width, height)
	l.Title = title
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return l
}
