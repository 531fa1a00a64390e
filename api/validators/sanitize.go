package validators

import "strings"

// SanitizeOptional trims an optional value, mapping blank input to nil.
// Length limits are left to the validate tags so over-long input is rejected,
// not silently cut.
func SanitizeOptional(input *string) *string {
	if input == nil {
		return nil
	}
	cleaned := strings.TrimSpace(*input)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
