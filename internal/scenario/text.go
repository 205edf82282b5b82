package scenario

import "strings"

// containsText mirrors how rendered text is compared: runs of whitespace are
// collapsed on both sides before the substring check.
func containsText(text, substr string) bool {
	return strings.Contains(normalizeSpace(text), normalizeSpace(substr))
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
