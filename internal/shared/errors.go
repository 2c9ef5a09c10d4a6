package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Catalog errors
	ErrAlbumExists   = fmt.Errorf("album already exists")
	ErrAlbumNotFound = fmt.Errorf("album not found")

	// Session errors
	ErrMissingArgument     = fmt.Errorf("missing required argument")
	ErrUnrecognizedCommand = fmt.Errorf("unrecognized command")
	ErrEndOfInput          = fmt.Errorf("end of input")
)
