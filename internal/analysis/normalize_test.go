package analysis

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Python AND SQL", "python and sql"},
		{"collapses whitespace", "python\n\n  sql\tgit", "python sql git"},
		{"trims edges", "  python  ", "python"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsEmptyText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"empty string", "", true},
		{"whitespace only", "   \n\t  ", true},
		{"under threshold", "short", true},
		{"just under threshold", "ninechars", true},
		{"exactly at threshold", "abcdefghij", false},
		{"meaningful text", "Software engineer with Python experience", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEmptyText(tt.input); got != tt.want {
				t.Errorf("IsEmptyText(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
