package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/desertthunder/spins/internal/catalog"
	"github.com/desertthunder/spins/internal/models"
	"github.com/desertthunder/spins/internal/repositories"
	"github.com/desertthunder/spins/internal/shared"
	tu "github.com/desertthunder/spins/internal/testing"
)

// backends returns a fresh catalog for each implementation so session behavior is checked against both.
func backends() map[string]func(*testing.T) models.Catalog {
	return map[string]func(*testing.T) models.Catalog{
		"memory": func(*testing.T) models.Catalog { return catalog.New() },
		"sqlite": func(t *testing.T) models.Catalog {
			t.Helper()
			repo, err := repositories.OpenMemoryCatalog()
			if err != nil {
				t.Fatalf("failed to open sqlite catalog: %v", err)
			}
			t.Cleanup(func() { repo.Close() })
			return repo
		},
	}
}

// runScript runs commands through a test-mode session and returns the captured output.
func runScript(t *testing.T, c models.Catalog, commands ...string) string {
	t.Helper()

	captured := &bytes.Buffer{}
	s := New(Options{
		Catalog: c,
		Input:   tu.Script(commands...),
		Console: io.Discard,
		Capture: captured,
		Logger:  shared.NewLogger(io.Discard),
	})

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if s.State() != Terminated {
		t.Error("expected session to be terminated")
	}

	return captured.String()
}

func count(t *testing.T, c models.Catalog) int {
	t.Helper()
	n, err := c.Count()
	if err != nil {
		t.Fatalf("failed to count albums: %v", err)
	}
	return n
}

func TestSession(t *testing.T) {
	for name, newCatalog := range backends() {
		t.Run(name, func(t *testing.T) {
			t.Run("adds an album and says bye", func(t *testing.T) {
				out := runScript(t, newCatalog(t), `add "Ride the Lightning" "Metallica"`, "quit")

				if !strings.Contains(out, `Added "Ride the Lightning" by Metallica`) {
					t.Errorf("expected add confirmation, got %q", out)
				}
				if !strings.Contains(out, "Bye!") {
					t.Errorf("expected Bye!, got %q", out)
				}
			})

			t.Run("duplicate title", func(t *testing.T) {
				c := newCatalog(t)
				out := runScript(t, c,
					`add "Ride the Lightning" "Metallica"`,
					`add "Ride the Lightning" "Metallica"`,
					"quit",
				)

				if n := strings.Count(out, `"Ride the Lightning" by Metallica`); n != 1 {
					t.Errorf("expected album line once, got %d in %q", n, out)
				}
				if n := strings.Count(out, MsgDuplicate); n != 1 {
					t.Errorf("expected duplicate message once, got %d", n)
				}
				if n := count(t, c); n != 1 {
					t.Errorf("expected 1 album, got %d", n)
				}
			})

			t.Run("add without artist", func(t *testing.T) {
				c := newCatalog(t)
				out := runScript(t, c, `add "Ride the Lightning"`, "quit")

				if !strings.Contains(out, MsgAddFormat) {
					t.Errorf("expected format message, got %q", out)
				}
				if n := count(t, c); n != 0 {
					t.Errorf("expected empty catalog, got %d albums", n)
				}
			})

			t.Run("trailing space inside closing quote drops the artist", func(t *testing.T) {
				c := newCatalog(t)
				out := runScript(t, c, `add "Ride the Lightning "`, "show all", "quit")

				if !strings.Contains(out, MsgAddFormat) {
					t.Errorf("expected format message, got %q", out)
				}
				if strings.Contains(out, "Added") {
					t.Errorf("expected nothing added, got %q", out)
				}
				if n := count(t, c); n != 0 {
					t.Errorf("expected empty catalog, got %d albums", n)
				}
			})

			t.Run("show all", func(t *testing.T) {
				out := runScript(t, newCatalog(t),
					`add "Ride the Lightning" "Metallica"`,
					`add "Licensed to Ill" "Beastie Boys"`,
					"show all",
					"quit",
				)

				for _, want := range []string{
					`"Ride the Lightning" by Metallica (unplayed)`,
					`"Licensed to Ill" by Beastie Boys (unplayed)`,
				} {
					if !strings.Contains(out, want) {
						t.Errorf("expected %q in %q", want, out)
					}
				}
			})

			t.Run("play then show unplayed", func(t *testing.T) {
				out := runScript(t, newCatalog(t),
					`add "Ride the Lightning" "Metallica"`,
					`add "Licensed to Ill" "Beastie Boys"`,
					`play "Licensed to Ill"`,
					"show unplayed",
					"quit",
				)

				want := strings.Join([]string{
					`Added "Ride the Lightning" by Metallica`,
					`Added "Licensed to Ill" by Beastie Boys`,
					`You're listening to "Licensed to Ill"`,
					`"Ride the Lightning" by Metallica`,
					"Bye!",
				}, "\n") + "\n"

				if out != want {
					t.Errorf("unexpected transcript\ngot:\n%s\nwant:\n%s", out, want)
				}
			})

			t.Run("played albums show their status", func(t *testing.T) {
				out := runScript(t, newCatalog(t),
					`add "Licensed to Ill" "Beastie Boys"`,
					`play "Licensed to Ill"`,
					`play "Licensed to Ill"`,
					"show all",
					"quit",
				)

				if !strings.Contains(out, `"Licensed to Ill" by Beastie Boys (played)`) {
					t.Errorf("expected played suffix, got %q", out)
				}
				if n := strings.Count(out, `You're listening to "Licensed to Ill"`); n != 2 {
					t.Errorf("expected replay to succeed, got %d confirmations", n)
				}
			})

			t.Run("play unknown title", func(t *testing.T) {
				c := newCatalog(t)
				out := runScript(t, c,
					`add "Ride the Lightning" "Metallica"`,
					`play "Master of Puppets"`,
					"play",
					"show all",
					"quit",
				)

				if n := strings.Count(out, MsgNotFound); n != 2 {
					t.Errorf("expected not found twice, got %d in %q", n, out)
				}
				if !strings.Contains(out, `"Ride the Lightning" by Metallica (unplayed)`) {
					t.Errorf("catalog should be unchanged, got %q", out)
				}
			})

			t.Run("show all by artist", func(t *testing.T) {
				out := runScript(t, newCatalog(t),
					`add "Ride the Lightning" "Metallica"`,
					`add "Licensed to Ill" "Beastie Boys"`,
					`show all by "Beastie Boys"`,
					"quit",
				)

				if n := strings.Count(out, `"Ride the Lightning" by Metallica`); n != 1 {
					t.Errorf("expected Metallica only from add, got %d", n)
				}
				if n := strings.Count(out, "Metallica (unplayed)"); n != 0 {
					t.Errorf("expected no Metallica status line, got %d", n)
				}
				if n := strings.Count(out, "Beastie Boys (unplayed)"); n != 1 {
					t.Errorf("expected one Beastie Boys status line, got %d", n)
				}
			})

			t.Run("show unplayed by artist", func(t *testing.T) {
				out := runScript(t, newCatalog(t),
					`add "Ride the Lightning" "Metallica"`,
					`add "Licensed to Ill" "Beastie Boys"`,
					`add "Pauls Boutique" "Beastie Boys"`,
					`play "Licensed to Ill"`,
					`show unplayed by "Beastie Boys"`,
					"quit",
				)

				tc := map[string]int{
					`"Ride the Lightning" by Metallica`:  1,
					`"Licensed to Ill" by Beastie Boys`: 1,
					`"Pauls Boutique" by Beastie Boys`:  2,
				}
				for line, want := range tc {
					if n := strings.Count(out, line); n != want {
						t.Errorf("expected %q %d times, got %d", line, want, n)
					}
				}
				if strings.Contains(out, "(unplayed)") {
					t.Errorf("show unplayed by should not print status, got %q", out)
				}
			})

			t.Run("play removes album from repeated unplayed query", func(t *testing.T) {
				out := runScript(t, newCatalog(t),
					`add "Licensed to Ill" "Beastie Boys"`,
					`add "Pauls Boutique" "Beastie Boys"`,
					`show unplayed by "Beastie Boys"`,
					`play "Licensed to Ill"`,
					`show unplayed by "Beastie Boys"`,
					"quit",
				)

				before, after, ok := strings.Cut(out, `You're listening to "Licensed to Ill"`)
				if !ok {
					t.Fatalf("expected play confirmation, got %q", out)
				}

				listed := `"Licensed to Ill" by Beastie Boys` + "\n"
				if n := strings.Count(before, listed); n != 2 {
					t.Errorf("expected album in add line and first query, got %d in %q", n, before)
				}
				if strings.Contains(after, listed) {
					t.Errorf("played album should drop out of second query, got %q", after)
				}
				if !strings.Contains(after, `"Pauls Boutique" by Beastie Boys`) {
					t.Errorf("unplayed album should remain, got %q", after)
				}
			})

			t.Run("show by without artist lists everything", func(t *testing.T) {
				out := runScript(t, newCatalog(t),
					`add "Ride the Lightning" "Metallica"`,
					`add "Licensed to Ill" "Beastie Boys"`,
					"show all by",
					"quit",
				)

				if n := strings.Count(out, "(unplayed)"); n != 2 {
					t.Errorf("expected both albums listed, got %d in %q", n, out)
				}
			})

			t.Run("unrecognized command", func(t *testing.T) {
				c := newCatalog(t)
				out := runScript(t, c, "foo", "", `add "Ride the Lightning" "Metallica"`, "quit")

				if n := strings.Count(out, MsgUnrecognized); n != 2 {
					t.Errorf("expected unrecognized message twice, got %d", n)
				}
				if !strings.Contains(out, `Added "Ride the Lightning" by Metallica`) {
					t.Error("expected loop to continue after unrecognized command")
				}
				if n := count(t, c); n != 1 {
					t.Errorf("expected 1 album, got %d", n)
				}
			})

			t.Run("help", func(t *testing.T) {
				out := runScript(t, newCatalog(t), "help", "quit")

				want := HelpText + "\n" + "Bye!\n"
				if out != want {
					t.Errorf("unexpected help output\ngot:  %q\nwant: %q", out, want)
				}
			})
		})
	}
}

func TestSessionLoop(t *testing.T) {
	t.Run("stops reading after quit", func(t *testing.T) {
		c := catalog.New()
		out := runScript(t, c, "quit", `add "Ride the Lightning" "Metallica"`)

		if out != "Bye!\n" {
			t.Errorf("expected only Bye!, got %q", out)
		}
		if n := count(t, c); n != 0 {
			t.Errorf("expected no albums after quit, got %d", n)
		}
	})

	t.Run("end of input terminates gracefully", func(t *testing.T) {
		out := runScript(t, catalog.New(), `add "Ride the Lightning" "Metallica"`)

		if out != "Added \"Ride the Lightning\" by Metallica\n" {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("last line without newline and CRLF endings", func(t *testing.T) {
		captured := &bytes.Buffer{}
		s := New(Options{
			Input:   strings.NewReader("add \"Ride the Lightning\" \"Metallica\"\r\nquit"),
			Console: io.Discard,
			Capture: captured,
			Logger:  shared.NewLogger(io.Discard),
		})

		if err := s.Run(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		want := "Added \"Ride the Lightning\" by Metallica\nBye!\n"
		if captured.String() != want {
			t.Errorf("expected %q, got %q", want, captured.String())
		}
	})

	t.Run("console mirrors capture and shows prompt only outside test mode", func(t *testing.T) {
		console := &bytes.Buffer{}
		captured := &bytes.Buffer{}
		s := New(Options{
			Input:   tu.Script("help", "quit"),
			Console: console,
			Capture: captured,
			Logger:  shared.NewLogger(io.Discard),
		})

		if err := s.Run(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if console.String() != captured.String() {
			t.Errorf("console and capture differ:\nconsole: %q\ncapture: %q", console.String(), captured.String())
		}
	})

	t.Run("interactive mode writes prompt to console", func(t *testing.T) {
		console := &bytes.Buffer{}
		s := New(Options{
			Input:   tu.Script("quit"),
			Console: console,
			Logger:  shared.NewLogger(io.Discard),
		})

		if err := s.Run(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := console.String()
		if !strings.Contains(out, ">") {
			t.Errorf("expected prompt before input, got %q", out)
		}
		if !strings.HasSuffix(out, "Bye!\n") {
			t.Errorf("expected Bye! on console, got %q", out)
		}
	})

	t.Run("custom prompt", func(t *testing.T) {
		console := &bytes.Buffer{}
		s := New(Options{
			Input:   tu.Script("quit"),
			Console: console,
			Prompt:  "spins$ ",
			Logger:  shared.NewLogger(io.Discard),
		})

		if err := s.Run(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(console.String(), "spins$") {
			t.Errorf("expected custom prompt, got %q", console.String())
		}
	})

	t.Run("write failure is returned", func(t *testing.T) {
		s := New(Options{
			Input:   tu.Script("help"),
			Console: io.Discard,
			Capture: &tu.FWriter{},
			Logger:  shared.NewLogger(io.Discard),
		})

		err := s.Run(context.Background())
		if err == nil {
			t.Fatal("expected error from failing writer")
		}
		if !strings.Contains(err.Error(), "failed to write output") {
			t.Errorf("expected write error, got %v", err)
		}
	})

	t.Run("read failure is returned", func(t *testing.T) {
		s := New(Options{
			Input:   &tu.FReader{},
			Console: io.Discard,
			Capture: &bytes.Buffer{},
			Logger:  shared.NewLogger(io.Discard),
		})

		err := s.Run(context.Background())
		if err == nil {
			t.Fatal("expected error from failing reader")
		}
		if !strings.Contains(err.Error(), "failed to read input") {
			t.Errorf("expected read error, got %v", err)
		}
	})

	t.Run("cancelled context stops before reading", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		captured := &bytes.Buffer{}
		s := New(Options{
			Input:   tu.Script("help"),
			Console: io.Discard,
			Capture: captured,
			Logger:  shared.NewLogger(io.Discard),
		})

		if err := s.Run(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if captured.Len() != 0 {
			t.Errorf("expected no output, got %q", captured.String())
		}
	})

	t.Run("Execute dispatches a single line", func(t *testing.T) {
		captured := &bytes.Buffer{}
		c := catalog.New()
		s := New(Options{
			Catalog: c,
			Input:   strings.NewReader(""),
			Console: io.Discard,
			Capture: captured,
			Logger:  shared.NewLogger(io.Discard),
		})

		if err := s.Execute(`add "Ride the Lightning" "Metallica"`); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if s.State() != Running {
			t.Error("expected session to keep running")
		}
		if n := count(t, c); n != 1 {
			t.Errorf("expected 1 album, got %d", n)
		}
	})
}

func TestNewDefaults(t *testing.T) {
	t.Run("test mode clears prompt", func(t *testing.T) {
		s := New(Options{Capture: &bytes.Buffer{}, Prompt: "> "})
		if s.prompt != "" {
			t.Errorf("expected empty prompt in test mode, got %q", s.prompt)
		}
	})

	t.Run("interactive mode uses default prompt", func(t *testing.T) {
		s := New(Options{})
		if s.prompt != DefaultPrompt {
			t.Errorf("expected default prompt, got %q", s.prompt)
		}
		if s.catalog == nil {
			t.Error("expected default catalog")
		}
		if len(s.out.sinks) != 1 {
			t.Errorf("expected only the console sink, got %d", len(s.out.sinks))
		}
	})
}
