package post_service

import "strings"

const wordsPerMinute = 200

// ComputeReadTime estimates reading time in minutes for the given content,
// counting whitespace-delimited words at 200 words per minute and rounding
// up. Non-empty content always takes at least one minute; empty or
// whitespace-only content takes zero.
func ComputeReadTime(content string) int32 {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	return int32((words + wordsPerMinute - 1) / wordsPerMinute)
}
