// package models defines the data model for the album catalog
package models

import (
	"fmt"
	"iter"
	"time"
)

// Album is one catalog entry. Title and Artist never change after creation; Played only moves from false to true.
type Album struct {
	ID      string
	Title   string
	Artist  string
	Played  bool
	AddedAt time.Time
}

// NewAlbum returns an unplayed album.
func NewAlbum(id, title, artist string) Album {
	return Album{ID: id, Title: title, Artist: artist, AddedAt: time.Now()}
}

// Status renders the played flag as "played" or "unplayed".
func (a Album) Status() string {
	if a.Played {
		return "played"
	}
	return "unplayed"
}

// String renders the album as `"<title>" by <artist>`.
func (a Album) String() string {
	return fmt.Sprintf("\"%s\" by %s", a.Title, a.Artist)
}

// Filter narrows a catalog query. A nil field matches everything.
type Filter struct {
	Artist *string
	Played *bool
}

// ByArtist returns a copy of f constrained to an exact artist match.
func (f Filter) ByArtist(artist string) Filter {
	f.Artist = &artist
	return f
}

// ByPlayed returns a copy of f constrained to the given played flag.
func (f Filter) ByPlayed(played bool) Filter {
	f.Played = &played
	return f
}

// Matches reports whether a satisfies every set constraint.
func (f Filter) Matches(a Album) bool {
	if f.Artist != nil && a.Artist != *f.Artist {
		return false
	}
	if f.Played != nil && a.Played != *f.Played {
		return false
	}
	return true
}

// Catalog defines the album store used by a session.
type Catalog interface {
	Add(title, artist string) error               // Add inserts an unplayed album, or fails with ErrAlbumExists
	MarkPlayed(title string) error                // MarkPlayed flags an album as played, or fails with ErrAlbumNotFound
	Query(filter Filter) (iter.Seq[Album], error) // Query yields matching albums in insertion order
	Count() (int, error)                          // Count returns the number of albums
}
