package utils

import (
	"testing"
)

func TestClampBatchSize(t *testing.T) {
	t.Run("1未満は1になる", func(t *testing.T) {
		if got := ClampBatchSize(0); got != 1 {
			t.Errorf("expected 1, got %v", got)
		}
		if got := ClampBatchSize(-3); got != 1 {
			t.Errorf("expected 1, got %v", got)
		}
	})

	t.Run("1以上はそのまま", func(t *testing.T) {
		if got := ClampBatchSize(4); got != 4 {
			t.Errorf("expected 4, got %v", got)
		}
	})
}

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "  ", "b", "c"); got != "b" {
		t.Errorf("expected b, got %q", got)
	}
	if got := FirstNonEmpty("", " "); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}
