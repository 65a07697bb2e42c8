package post

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "headings",
			input: "# Heading 1\n## Heading 2",
			want:  "Heading 1 Heading 2",
		},
		{
			name:  "bold and italic",
			input: "**bold** and *italic*",
			want:  "bold and italic",
		},
		{
			name:  "fenced code removed",
			input: "```go\nfmt.Println(\"hi\")\n```\nAfter code",
			want:  "After code",
		},
		{
			name:  "inline code kept",
			input: "Run `go test` now",
			want:  "Run go test now",
		},
		{
			name:  "images and links",
			input: "![alt text](img.png) and [a link](https://example.com)",
			want:  "alt text and a link",
		},
		{
			name:  "link inside bold",
			input: "**[docs](https://example.com)**",
			want:  "docs",
		},
		{
			name:  "strikethrough",
			input: "~~gone~~ text",
			want:  "gone text",
		},
		{
			name:  "blockquote",
			input: "> quoted line\n> second",
			want:  "quoted line second",
		},
		{
			name:  "horizontal rule",
			input: "Above\n\n---\n\nBelow",
			want:  "Above Below",
		},
		{
			name:  "table",
			input: "| A | B |\n|---|---|\n| 1 | 2 |",
			want:  "A B   1 2",
		},
		{
			name:  "task list",
			input: "- [x] done\n- [ ] todo",
			want:  "done todo",
		},
		{
			name:  "unordered and ordered lists",
			input: "- one\n* two\n+ three\n1. first\n2. second",
			want:  "one two three first second",
		},
		{
			name:  "paragraphs collapse",
			input: "First   paragraph.\n\n\nSecond\tparagraph.\nSame paragraph.",
			want:  "First paragraph. Second paragraph. Same paragraph.",
		},
		{
			name:  "crlf line endings",
			input: "# My Post\r\n\r\nIntro paragraph.\r\n\r\n- first\r\n- second\r\n\r\n1. one\r\n2. two\r\n\r\n> quoted\r\n",
			want:  "My Post\r Intro paragraph.\rfirst\rsecond\rone\rtwo\rquoted",
		},
		{
			name:  "non-breaking space before quote",
			input: "\u00a0> nbsp quote",
			want:  "nbsp quote",
		},
		{
			name:  "line and paragraph separators start lines",
			input: "a\u2028# b\u2029- c",
			want:  "a\u2028b\u2029c",
		},
		{
			name:  "rule between carriage returns",
			input: "Above\r---\r***\rBelow",
			want:  "Above\r\rBelow",
		},
		{
			name:  "unicode whitespace trimmed",
			input: "\ufeff\u3000Title\u00a0",
			want:  "Title",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "only code",
			input: "```\ncode\n```",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripMarkdown(tt.input); got != tt.want {
				t.Errorf("StripMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripMarkdown_Deterministic(t *testing.T) {
	input := "# Title\n\nSome *text* with a [link](x) and `code`.\n\n- item\n"
	first := StripMarkdown(input)
	for range 5 {
		if got := StripMarkdown(input); got != first {
			t.Fatalf("StripMarkdown() not deterministic: %q vs %q", got, first)
		}
	}
}

func TestExtractSummary(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxLength int
		want      string
	}{
		{name: "shorter than max", text: "short text", maxLength: 150, want: "short text"},
		{name: "exactly max", text: "abcde", maxLength: 5, want: "abcde"},
		{name: "cut at last space", text: "hello world foo", maxLength: 11, want: "hello..."},
		{name: "cut mid word", text: "the quick brown fox", maxLength: 12, want: "the quick..."},
		{name: "no space in prefix", text: "abcdefghij", maxLength: 4, want: "abcd..."},
		{name: "empty", text: "", maxLength: 10, want: ""},
		{name: "unicode counted as characters", text: "héllo wörld", maxLength: 8, want: "héllo..."},
		{name: "astral characters are not split", text: "😀😀😀😀", maxLength: 2, want: "😀😀..."},
		{name: "astral characters cut at space", text: "😀 😀😀😀", maxLength: 3, want: "😀..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractSummary(tt.text, tt.maxLength); got != tt.want {
				t.Errorf("ExtractSummary(%q, %d) = %q, want %q", tt.text, tt.maxLength, got, tt.want)
			}
		})
	}
}

func TestExtractSummary_LengthBound(t *testing.T) {
	words := strings.Repeat("lorem ipsum dolor sit amet consectetur ", 20)
	for maxLength := 1; maxLength <= 200; maxLength += 7 {
		got := ExtractSummary(words, maxLength)
		if n := utf8.RuneCountInString(got); n > maxLength+len(ellipsis) {
			t.Fatalf("ExtractSummary(max=%d) length = %d, want <= %d", maxLength, n, maxLength+len(ellipsis))
		}
		if !strings.HasSuffix(got, ellipsis) {
			t.Fatalf("ExtractSummary(max=%d) = %q, want ellipsis suffix", maxLength, got)
		}
		if !strings.HasPrefix(words, strings.TrimSuffix(got, ellipsis)) {
			t.Fatalf("ExtractSummary(max=%d) = %q is not a prefix of the input", maxLength, got)
		}
	}
}

func TestSummarize(t *testing.T) {
	md := "# Test Blog Post\n\nContent here."
	if got := Summarize(md, DefaultSummaryLength); got != "Test Blog Post Content here." {
		t.Errorf("Summarize() = %q", got)
	}
}
