package shared

import "strings"

// CenterContent pads content with blank lines so it sits vertically centered
// in height lines. Content taller than height is returned unchanged.
func CenterContent(content string, height int) string {
	content = strings.TrimRight(content, "\n")

	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}
	if len(lines) >= height {
		return content
	}

	out := make([]string, (height-len(lines))/2, height)
	out = append(out, lines...)
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}
