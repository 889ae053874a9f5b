package reminder

import "strings"

// NormalizePhone ensures the value carries a leading + so the calling API
// receives an E.164-style number. Stored numbers are otherwise left as given.
func NormalizePhone(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "+") {
		return value
	}
	return "+" + value
}
