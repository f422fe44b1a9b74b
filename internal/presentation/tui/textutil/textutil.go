// Package textutil provides small formatting helpers for TUI text.
package textutil

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

var tagRe = regexp.MustCompile(`<[^>]*>`)

// SingleLine collapses whitespace into single spaces.
func SingleLine(text string) string {
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(text), " ")
}

// Truncate trims a string to the given width with an ellipsis.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(text, width, "...")
}

// StripTags removes HTML markup from feed-supplied text, keeping plain
// text with common entities decoded.
func StripTags(text string) string {
	text = tagRe.ReplaceAllString(text, "")
	replacer := strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", "\"",
		"&#39;", "'",
		"&apos;", "'",
	)
	return SingleLine(replacer.Replace(text))
}
