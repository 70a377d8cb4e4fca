package utils

import "strings"

// SplitTrim splits s on sep, trims each part and drops the empty ones.
func SplitTrim(s, sep string) []string {
	var result []string

	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}

	return result
}
