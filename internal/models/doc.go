// Package models defines the album domain shared by the session and the catalog backends.
//
//   - [Album] : a title/artist/played record, keyed by exact title
//   - [Filter] : optional artist and played constraints for queries
//   - [Catalog] : the contract every backend implements (in-memory map or in-memory SQLite)
//
// Catalog errors are the sentinels in the shared package: [shared.ErrAlbumExists] and [shared.ErrAlbumNotFound].
package models
