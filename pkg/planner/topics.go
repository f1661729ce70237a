package planner

import "strings"

// ParseTopics splits a session's free-text topic field into an ordered list
// of trimmed, non-empty topics. Comma takes precedence over newline: a
// string containing both splits on commas only and keeps the newlines
// inside the pieces, matching what the stored data already assumes.
func ParseTopics(raw string) []string {
	var pieces []string
	switch {
	case strings.Contains(raw, ","):
		pieces = strings.Split(raw, ",")
	case strings.Contains(raw, "\n"):
		pieces = strings.Split(raw, "\n")
	default:
		pieces = []string{raw}
	}

	topics := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		if trimmed := strings.TrimSpace(piece); trimmed != "" {
			topics = append(topics, trimmed)
		}
	}
	return topics
}

// JoinTopics serializes a topic list back to the canonical comma-joined
// field value.
func JoinTopics(topics []string) string {
	return strings.Join(topics, ", ")
}

// AddTopic appends a trimmed topic. Blank or whitespace-only text leaves
// the list unchanged.
func AddTopic(topics []string, text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return topics
	}
	out := make([]string, 0, len(topics)+1)
	out = append(out, topics...)
	return append(out, trimmed)
}

// RemoveTopic drops the topic at index. Out-of-range indexes are a no-op.
func RemoveTopic(topics []string, index int) []string {
	if index < 0 || index >= len(topics) {
		return topics
	}
	out := make([]string, 0, len(topics)-1)
	out = append(out, topics[:index]...)
	return append(out, topics[index+1:]...)
}

// UpdateTopic replaces the topic at index. Out-of-range indexes are a
// no-op.
func UpdateTopic(topics []string, index int, text string) []string {
	if index < 0 || index >= len(topics) {
		return topics
	}
	out := make([]string, len(topics))
	copy(out, topics)
	out[index] = text
	return out
}
