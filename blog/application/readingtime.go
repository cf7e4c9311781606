package application

import (
	"fmt"
	"strings"
)

const wordsPerMinute = 200

// ReadingTime estimates how long a body takes to read, rounded up to whole
// minutes with a one minute floor.
func ReadingTime(content string) string {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}
