package embedding

import (
	"strings"
	"testing"
)

func TestEmbedding_Dimensions(t *testing.T) {
	tests := []struct {
		name     string
		vector   []float32
		expected int
	}{
		{"empty", nil, 0},
		{"three", []float32{1, 2, 3}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Embedding{Vector: tt.vector}
			if got := e.Dimensions(); got != tt.expected {
				t.Errorf("Dimensions() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestTruncateForEmbedding(t *testing.T) {
	t.Run("short text unchanged", func(t *testing.T) {
		text := "a short letter"
		if got := TruncateForEmbedding(text); got != text {
			t.Errorf("TruncateForEmbedding() modified short text")
		}
	})

	t.Run("long text keeps head", func(t *testing.T) {
		text := "HEAD" + strings.Repeat("x", MaxEmbedChars)
		got := TruncateForEmbedding(text)
		if len(got) != MaxEmbedChars {
			t.Errorf("len = %d, want %d", len(got), MaxEmbedChars)
		}
		if !strings.HasPrefix(got, "HEAD") {
			t.Error("truncation should keep the head of the text")
		}
	})

	t.Run("does not split utf8 sequences", func(t *testing.T) {
		// Place a multi-byte rune straddling the cut point.
		text := strings.Repeat("x", MaxEmbedChars-1) + "é" + strings.Repeat("y", 100)
		got := TruncateForEmbedding(text)
		if len(got) > MaxEmbedChars {
			t.Errorf("len = %d, want <= %d", len(got), MaxEmbedChars)
		}
		for i, r := range got {
			if r == '�' {
				t.Fatalf("invalid utf8 at byte %d", i)
			}
		}
	})
}
