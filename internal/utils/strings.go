package utils

import "fmt"

// TruncateString cuts s to maxLen bytes and appends the original length.
// A non-positive maxLen means 500.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 500
	}
	if len(s) <= maxLen {
		return s
	}
	return fmt.Sprintf("%s... (truncated, total: %d chars)", s[:maxLen], len(s))
}
