package utils

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"fits", "abc", 5, "abc"},
		{"ascii", "abcdef", 4, "abc…"},
		{"wide runes", "会計事務所", 5, "会計…"},
		{"width one", "abc", 1, "a"},
		{"zero", "abc", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateToWidth(tt.text, tt.width); got != tt.want {
				t.Errorf("TruncateToWidth(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestTrimToWidth_DoesNotSplitWideRune(t *testing.T) {
	if got := TrimToWidth("税務", 3); got != "税" {
		t.Errorf("Expected %q, got %q", "税", got)
	}
}

func TestWrapToWidth(t *testing.T) {
	rows := WrapToWidth("あいうえおかきくけこ", 6)
	if len(rows) != 4 {
		t.Fatalf("Expected 4 rows, got %d: %v", len(rows), rows)
	}
	for _, row := range rows {
		if runewidth.StringWidth(row) > 6 {
			t.Errorf("Row too wide: %q", row)
		}
	}
	if got := WrapToWidth("", 6); len(got) != 1 || got[0] != "" {
		t.Errorf("Expected single empty row, got %v", got)
	}
}

func TestWrapToWidth_PunctuationStaysWithPrecedingRune(t *testing.T) {
	rows := WrapToWidth("あいう。えお", 6)
	want := []string{"あい", "う。え", "お"}
	if len(rows) != len(want) {
		t.Fatalf("Expected %v, got %v", want, rows)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d: expected %q, got %q", i, want[i], rows[i])
		}
	}
}
