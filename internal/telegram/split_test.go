package telegram

import (
	"strings"
	"testing"
)

func TestSplitMessage_ShortTextSinglePart(t *testing.T) {
	parts := splitMessage("hello", 4096)
	if len(parts) != 1 || parts[0] != "hello" {
		t.Fatalf("expected single part, got %+v", parts)
	}
}

func TestSplitMessage_LongReply(t *testing.T) {
	text := strings.Repeat("x", 5000)

	parts := splitMessage(text, 4096)
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if len(parts[0]) != 4096 {
		t.Errorf("expected first part of 4096, got %d", len(parts[0]))
	}
	if len(parts[1]) != 904 {
		t.Errorf("expected second part of 904, got %d", len(parts[1]))
	}
	if strings.Join(parts, "") != text {
		t.Error("concatenation of parts must equal the original text")
	}
}

func TestSplitMessage_ExactLimit(t *testing.T) {
	text := strings.Repeat("a", 4096)
	parts := splitMessage(text, 4096)
	if len(parts) != 1 {
		t.Fatalf("expected 1 part at exact limit, got %d", len(parts))
	}
}

func TestSplitMessage_MultibyteRunes(t *testing.T) {
	text := strings.Repeat("ж", 10)

	parts := splitMessage(text, 4)
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}
	if strings.Join(parts, "") != text {
		t.Error("multibyte text must survive splitting intact")
	}
	for i, p := range parts[:2] {
		if got := len([]rune(p)); got != 4 {
			t.Errorf("part %d: expected 4 runes, got %d", i, got)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 100); got != "short" {
		t.Errorf("unexpected truncation: %q", got)
	}
	long := strings.Repeat("a", 150)
	got := truncate(long, 100)
	if len([]rune(got)) != 103 {
		t.Errorf("expected 100 runes plus ellipsis, got %d", len([]rune(got)))
	}
}
