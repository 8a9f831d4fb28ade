package console

import (
	"fmt"
	"strings"

	"github.com/drillsrs/drill/store"
)

const (
	ColorSuccess = "\x1B[38;5;10m"
	ColorFail    = "\x1B[38;5;9m"
	colorReset   = "\x1B[0m"
)

// tagColors maps the palette names to xterm-256 escape codes.
var tagColors = map[string]string{
	"grey":   "\x1B[38;5;15m",
	"blue":   "\x1B[38;5;12m",
	"green":  "\x1B[38;5;10m",
	"red":    "\x1B[38;5;9m",
	"aqua":   "\x1B[38;5;14m",
	"pink":   "\x1B[38;5;13m",
	"yellow": "\x1B[38;5;11m",
}

// Color wraps text in an escape sequence.
func Color(text, color string) string {
	return color + text + colorReset
}

// FormatTag renders a tag name in its palette color.
func FormatTag(tag *store.Tag) string {
	color, ok := tagColors[tag.Color]
	if !ok {
		color = tagColors["grey"]
	}
	return Color(tag.Name, color)
}

// FormatTags renders a comma-joined tag list.
func FormatTags(tags []*store.Tag) string {
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, FormatTag(tag))
	}
	return strings.Join(parts, ", ")
}

// RenderQuestion builds the question prompt line, expanding literal \n
// markers into real line breaks for multiline questions.
func RenderQuestion(question string, tags []*store.Tag) string {
	renderedTags := ""
	if len(tags) > 0 {
		renderedTags = fmt.Sprintf("[%s]", FormatTags(tags))
	}

	if strings.Contains(question, `\n`) {
		multiline := strings.ReplaceAll(question, `\n`, "\n")
		return strings.TrimRight(fmt.Sprintf("Question: %s\n%s", renderedTags, multiline), " ")
	}
	return strings.TrimRight(fmt.Sprintf("Question: %s %s", question, renderedTags), " ")
}
