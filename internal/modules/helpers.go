package modules

import (
	"encoding/json"
	"fmt"
)

// ToJSON marshals any value to an indented JSON string.
// Used by module handlers to serialize operation payloads.
func ToJSON(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal response: %w", err)
	}
	return string(b), nil
}

// ToStringSlice converts a decoded JSON array to []string. Absent values and
// non-array values yield nil; non-string elements are silently skipped.
func ToStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
