// Package session runs the interactive album catalog loop.
//
// # Loop
//
// [Session.Run] repeats read → tokenize → dispatch → emit until the quit command or end of input.
// Each iteration is handled by [Session.Step], and a single already-read line can be dispatched with
// [Session.Execute].
//
// # Tokenizing
//
// [Tokenize] splits a line on every space followed by a double quote, then drops all remaining double quotes.
// The first fragment is the command name, so multi-word names such as "show all by" survive intact:
//
//	show unplayed by "Beastie Boys"  →  ["show unplayed by", "Beastie Boys"]
//	add "Ride the Lightning" "Metallica"  →  ["add", "Ride the Lightning", "Metallica"]
//
// # Output
//
// Messages go through [Output], which writes every line to each attached sink. The console is always attached;
// a capture writer is attached in test mode, which also suppresses the prompt.
package session
