package blog

import (
	"strings"
	"testing"
)

func TestFormatCategory(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"case-study", "Case Study"},
		{"ai", "Ai"},
		{"web-dev-tips", "Web Dev Tips"},
		{"", ""},
		{"already-Upper", "Already Upper"},
		{"a--b", "A  B"},
		{"3d-printing", "3d Printing"},
	}
	for _, tt := range tests {
		if got := FormatCategory(tt.in); got != tt.want {
			t.Errorf("FormatCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2024-01-15", "January 15, 2024"},
		{"2023-12-01", "December 1, 2023"},
		{"2024-02-29T10:30:00Z", "February 29, 2024"},
		{"not a date", "Invalid Date"},
		{"", "Invalid Date"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReadingTime(t *testing.T) {
	words := func(n int) string {
		return strings.TrimSpace(strings.Repeat("word ", n))
	}
	tests := []struct {
		name, content, want string
	}{
		{"400 words", words(400), "2 min read"},
		{"one word", "hello", "1 min read"},
		{"empty", "", "1 min read"},
		{"201 words", words(201), "2 min read"},
		{"200 words", words(200), "1 min read"},
		{"tags stripped", "<p>" + strings.Repeat("<b>word</b> ", 399) + "word</p>", "2 min read"},
	}
	for _, tt := range tests {
		if got := ReadingTime(tt.content); got != tt.want {
			t.Errorf("%s: ReadingTime = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestWordCount(t *testing.T) {
	if got := WordCount(""); got != 1 {
		t.Errorf("WordCount(\"\") = %d, want 1", got)
	}
	if got := WordCount("<h2>Hi</h2>\n<p>there   friend</p>"); got != 3 {
		t.Errorf("WordCount = %d, want 3", got)
	}
	// A leading separator yields an empty first token.
	if got := WordCount("  two words"); got != 3 {
		t.Errorf("WordCount with leading space = %d, want 3", got)
	}
}

func TestEncodeURIComponent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello World & more", "Hello%20World%20%26%20more"},
		{"What's new? (Part 1)! *", "What's%20new%3F%20(Part%201)!%20*"},
		{"a+b=c/d", "a%2Bb%3Dc%2Fd"},
		{"-_.~", "-_.~"},
		{"caf\u00e9", "caf%C3%A9"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := EncodeURIComponent(tt.in); got != tt.want {
			t.Errorf("EncodeURIComponent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlaceholderURL(t *testing.T) {
	got := PlaceholderURL("", "Hello")
	if got != DefaultPlaceholderBase+"?text=Hello" {
		t.Errorf("PlaceholderURL = %q", got)
	}
	got = PlaceholderURL("https://via.placeholder.com/800x400?x=1", "Blog Post")
	if got != "https://via.placeholder.com/800x400?x=1&text=Blog%20Post" {
		t.Errorf("PlaceholderURL with query = %q", got)
	}
}
