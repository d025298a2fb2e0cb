package runner

import (
	"strings"

	"github.com/elee1766/taskchat/src/aisdk"
)

// extractAssistantText concatenates the text segments of assistant messages
// in emission order, joined by single spaces, and collapses internal runs
// of whitespace.
func extractAssistantText(messages []*aisdk.ThreadMessage) string {
	var parts []string
	for _, msg := range messages {
		if msg.Role != "assistant" {
			continue
		}
		for _, segment := range msg.Content {
			if segment.Type != "text" || segment.Text == "" {
				continue
			}
			parts = append(parts, segment.Text)
		}
	}
	return normalizeWhitespace(strings.Join(parts, " "))
}

// normalizeWhitespace collapses all whitespace runs to single spaces.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
