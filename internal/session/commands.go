package session

import (
	"errors"
	"fmt"

	"github.com/desertthunder/spins/internal/models"
	"github.com/desertthunder/spins/internal/shared"
)

// Command is a recognized command name.
type Command string

const (
	CmdAdd            Command = "add"
	CmdPlay           Command = "play"
	CmdShowAll        Command = "show all"
	CmdShowUnplayed   Command = "show unplayed"
	CmdShowAllBy      Command = "show all by"
	CmdShowUnplayedBy Command = "show unplayed by"
	CmdQuit           Command = "quit"
	CmdHelp           Command = "help"
)

// User-facing messages.
const (
	MsgBye          = "Bye!"
	MsgAddFormat    = `The data must be in this format: add "title" "artist"`
	MsgDuplicate    = "There is already an album with that title."
	MsgNotFound     = "We didn't find that song."
	MsgUnrecognized = `We didn't recognize your command.  Please try again, or type "help".`

	HelpText = "\n" +
		"      Available commands:\n" +
		"      add \"$title\" \"$artist\"\n" +
		"      play \"$title\"\n" +
		"      show all\n" +
		"      show unplayed\n" +
		"      show all by \"$artist\"\n" +
		"      show unplayed by \"$artist\"\n" +
		"      quit\n" +
		"    "
)

type handler func(s *Session, args []string) error

// handlers is the dispatch table; anything missing from it is unrecognized.
var handlers = map[Command]handler{
	CmdAdd:  (*Session).add,
	CmdPlay: (*Session).play,
	CmdShowAll: func(s *Session, _ []string) error {
		return s.show(models.Filter{}, true)
	},
	CmdShowUnplayed: func(s *Session, _ []string) error {
		return s.show(models.Filter{}.ByPlayed(false), false)
	},
	CmdShowAllBy: func(s *Session, args []string) error {
		return s.show(artistFilter(args), true)
	},
	CmdShowUnplayedBy: func(s *Session, args []string) error {
		return s.show(artistFilter(args).ByPlayed(false), false)
	},
	CmdQuit: (*Session).quit,
	CmdHelp: func(s *Session, _ []string) error {
		return s.out.Emit(HelpText)
	},
}

// artistFilter constrains to args[0] when present; a bare "show ... by" matches every artist.
func artistFilter(args []string) models.Filter {
	if len(args) == 0 {
		return models.Filter{}
	}
	return models.Filter{}.ByArtist(args[0])
}

// userMessages maps recoverable errors to the line shown in their place.
var userMessages = []struct {
	err error
	msg string
}{
	{shared.ErrMissingArgument, MsgAddFormat},
	{shared.ErrAlbumExists, MsgDuplicate},
	{shared.ErrAlbumNotFound, MsgNotFound},
	{shared.ErrUnrecognizedCommand, MsgUnrecognized},
}

// userMessage returns the message for a recoverable error, or false when err should end the session.
func userMessage(err error) (string, bool) {
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.msg, true
		}
	}
	return "", false
}

func (s *Session) add(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: add needs a title and an artist, got %d", shared.ErrMissingArgument, len(args))
	}

	title, artist := args[0], args[1]
	if err := s.catalog.Add(title, artist); err != nil {
		return fmt.Errorf("failed to add album: %w", err)
	}

	return s.out.Emitf("Added \"%s\" by %s", title, artist)
}

func (s *Session) play(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: play needs a title", shared.ErrAlbumNotFound)
	}

	title := args[0]
	if err := s.catalog.MarkPlayed(title); err != nil {
		return fmt.Errorf("failed to play album: %w", err)
	}

	return s.out.Emitf("You're listening to \"%s\"", title)
}

func (s *Session) show(filter models.Filter, withStatus bool) error {
	albums, err := s.catalog.Query(filter)
	if err != nil {
		return fmt.Errorf("failed to query albums: %w", err)
	}

	for album := range albums {
		line := album.String()
		if withStatus {
			line += " (" + album.Status() + ")"
		}
		if err := s.out.Emit(line); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) quit(_ []string) error {
	s.state = Terminated
	return s.out.Emit(MsgBye)
}
