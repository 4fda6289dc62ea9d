// ABOUTME: Removes repeated prompt lines before messages are sent to the model
// ABOUTME: A line seen in any earlier message or earlier in the same message is dropped
package llm

import (
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// SanitizeMessages returns copies of messages with duplicate non-empty lines
// removed across all message contents. Blank lines are kept.
func SanitizeMessages(messages []openai.ChatCompletionMessage) []openai.ChatCompletionMessage {
	seen := make(map[string]struct{})
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		out[i] = msg
		out[i].Content = dedupeLines(msg.Content, seen)
	}
	return out
}

func dedupeLines(text string, seen map[string]struct{}) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0:0]
	for _, line := range lines {
		normalized := strings.TrimSpace(line)
		if normalized != "" {
			if _, dup := seen[normalized]; dup {
				continue
			}
			seen[normalized] = struct{}{}
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
