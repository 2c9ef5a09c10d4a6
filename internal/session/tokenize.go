package session

import "strings"

const argDelimiter = ` "`

// Tokenize splits line into a command name and its positional arguments.
//
// The line is split on every space+quote pair. Empty fragments at the end are dropped before every remaining
// quote is removed, so `add "Title "` has one argument while `add "Title" ""` has two.
// Only the command name is trimmed; arguments keep inner and edge whitespace.
func Tokenize(line string) (string, []string) {
	fragments := strings.Split(line, argDelimiter)
	for len(fragments) > 1 && fragments[len(fragments)-1] == "" {
		fragments = fragments[:len(fragments)-1]
	}

	for i, f := range fragments {
		fragments[i] = strings.ReplaceAll(f, `"`, "")
	}

	return strings.TrimSpace(fragments[0]), fragments[1:]
}
