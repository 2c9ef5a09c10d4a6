// Package catalog implements the in-memory album store backing a listening session.
//
// Albums are keyed by exact title and iterated in the order they were added.
// The store is not safe for concurrent use; a session owns exactly one.
package catalog

import (
	"fmt"
	"iter"

	"github.com/desertthunder/spins/internal/models"
	"github.com/desertthunder/spins/internal/shared"
)

// MemoryCatalog implements [models.Catalog] with a map plus an insertion-ordered key slice.
type MemoryCatalog struct {
	albums map[string]*models.Album
	order  []string
}

// New creates an empty MemoryCatalog
func New() *MemoryCatalog {
	return &MemoryCatalog{albums: make(map[string]*models.Album)}
}

// Add inserts an unplayed album.
func (c *MemoryCatalog) Add(title, artist string) error {
	if _, ok := c.albums[title]; ok {
		return fmt.Errorf("%w: %q", shared.ErrAlbumExists, title)
	}

	album := models.NewAlbum(shared.GenerateID(), title, artist)
	c.albums[title] = &album
	c.order = append(c.order, title)
	return nil
}

// MarkPlayed flags the album as played. Playing an already played album is not an error.
func (c *MemoryCatalog) MarkPlayed(title string) error {
	album, ok := c.albums[title]
	if !ok {
		return fmt.Errorf("%w: %q", shared.ErrAlbumNotFound, title)
	}

	album.Played = true
	return nil
}

// Query lazily yields copies of matching albums in insertion order.
func (c *MemoryCatalog) Query(filter models.Filter) (iter.Seq[models.Album], error) {
	return func(yield func(models.Album) bool) {
		for _, title := range c.order {
			album := *c.albums[title]
			if !filter.Matches(album) {
				continue
			}
			if !yield(album) {
				return
			}
		}
	}, nil
}

// Count returns the number of albums.
func (c *MemoryCatalog) Count() (int, error) {
	return len(c.order), nil
}
