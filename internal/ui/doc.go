// Package ui holds the [lipgloss] styles used on the interactive console.
//
// Styles only decorate the prompt. Session messages are written unstyled so that captured output matches the
// console text byte for byte.
package ui
