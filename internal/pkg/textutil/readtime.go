package textutil

import "strings"

// readingWordsPerMinute is the assumed reading pace for study material.
const readingWordsPerMinute = 200

// EstimateReadTime returns the estimated reading time of content in whole
// minutes. Words are whitespace-separated tokens, the estimate is rounded up,
// and the result is never below one minute so that empty or very short notes
// still display a sensible figure.
func EstimateReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + readingWordsPerMinute - 1) / readingWordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
