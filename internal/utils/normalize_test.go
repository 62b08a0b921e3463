package utils

import "testing"

func TestNormalizeNameLower(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"  Riverside  Track Club ", "riverside track club"},
		{"ALLCAPS", "allcaps"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeNameLower(tt.in); got != tt.want {
			t.Errorf("NormalizeNameLower(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"Riverside Track Club", "riverside-track-club"},
		{"Café Münster", "cafe-munster"},
		{"  --weird__ name!!  ", "weird-name"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKeywordsFromName(t *testing.T) {
	t.Parallel()

	got := KeywordsFromName("riverside track club", "riverside-track-club")
	want := map[string]bool{
		"riverside": true, "track": true, "club": true,
		"riverside track club": true, "riverside-track-club": true,
	}
	if len(got) != len(want) {
		t.Fatalf("keywords = %v", got)
	}
	for _, kw := range got {
		if !want[kw] {
			t.Errorf("unexpected keyword %q", kw)
		}
	}
}

func TestTrimMax(t *testing.T) {
	t.Parallel()

	if got := TrimMax("  hello  ", 10); got != "hello" {
		t.Errorf("TrimMax trim = %q", got)
	}
	if got := TrimMax("abcdefgh", 5); got != "abcde" {
		t.Errorf("TrimMax cut = %q", got)
	}
}
