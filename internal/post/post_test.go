package post

import (
	"testing"
)

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantOK   bool
		wantDate string
		wantFrag string
		wantSlug string
	}{
		{
			name:     "simple post",
			input:    "blog-2024-01-15-my-first-post.md",
			wantOK:   true,
			wantDate: "2024-01-15",
			wantFrag: "my-first-post",
			wantSlug: "2024-01-15-my-first-post",
		},
		{
			name:     "single word slug",
			input:    "blog-2025-12-31-recap.md",
			wantOK:   true,
			wantDate: "2025-12-31",
			wantFrag: "recap",
			wantSlug: "2025-12-31-recap",
		},
		{
			name:     "fragment containing dots",
			input:    "blog-2024-03-01-go-1.22-notes.md",
			wantOK:   true,
			wantDate: "2024-03-01",
			wantFrag: "go-1.22-notes",
			wantSlug: "2024-03-01-go-1.22-notes",
		},
		{
			name:   "missing prefix",
			input:  "2024-01-15-my-post.md",
			wantOK: false,
		},
		{
			name:   "malformed date",
			input:  "blog-2024-1-15-my-post.md",
			wantOK: false,
		},
		{
			name:   "wrong extension",
			input:  "blog-2024-01-15-my-post.txt",
			wantOK: false,
		},
		{
			name:   "empty fragment",
			input:  "blog-2024-01-15-.md",
			wantOK: false,
		},
		{
			name:   "uppercase extension",
			input:  "blog-2024-01-15-my-post.MD",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFilename(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseFilename(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Date != tt.wantDate {
				t.Errorf("Date = %q, want %q", got.Date, tt.wantDate)
			}
			if got.Fragment != tt.wantFrag {
				t.Errorf("Fragment = %q, want %q", got.Fragment, tt.wantFrag)
			}
			if got.Slug() != tt.wantSlug {
				t.Errorf("Slug() = %q, want %q", got.Slug(), tt.wantSlug)
			}
			if !IsPostFile(tt.input) {
				t.Errorf("IsPostFile(%q) = false, want true", tt.input)
			}
		})
	}
}

func TestIsYear(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"2024", true},
		{"0001", true},
		{"20", false},
		{"12345", false},
		{"invalid", false},
		{"202a", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsYear(tt.input); got != tt.want {
			t.Errorf("IsYear(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	name, ok := ParseFilename("blog-2024-06-20-summer-update.md")
	if !ok {
		t.Fatal("ParseFilename() failed")
	}

	p := New("2024", name, "blog-2024-06-20-summer-update.md")

	if p.Slug != "2024-06-20-summer-update" {
		t.Errorf("Slug = %q", p.Slug)
	}
	if p.Title != "Summer Update" {
		t.Errorf("Title = %q", p.Title)
	}
	if p.Date != "2024-06-20" {
		t.Errorf("Date = %q", p.Date)
	}
	if p.Path != "/2024/blog-2024-06-20-summer-update.md" {
		t.Errorf("Path = %q", p.Path)
	}
	if p.Summary != "" {
		t.Errorf("Summary = %q, want empty", p.Summary)
	}
	if p.Year() != "2024" {
		t.Errorf("Year() = %q, want 2024", p.Year())
	}
}

func TestTitleFromSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2024-01-15-my-first-post", "My First Post"},
		{"my-first-post", "My First Post"},
		{"2024-01-15-", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := TitleFromSlug(tt.input); got != tt.want {
			t.Errorf("TitleFromSlug(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
