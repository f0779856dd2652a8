package shared

import (
	"strings"
	"testing"
)

func TestCenterContent(t *testing.T) {
	got := CenterContent("a\nb", 6)
	lines := strings.Split(got, "\n")

	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d", len(lines))
	}
	if lines[2] != "a" || lines[3] != "b" {
		t.Errorf("expected content on lines 2-3, got %q", lines)
	}
}

func TestCenterContent_TallerThanHeight(t *testing.T) {
	in := "1\n2\n3"
	if got := CenterContent(in, 2); got != in {
		t.Errorf("expected content unchanged, got %q", got)
	}
}
