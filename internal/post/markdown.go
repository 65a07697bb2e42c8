package post

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// space is the whitespace class used by every step: ASCII whitespace, the
// Unicode space separators, BOM and the line/paragraph separators.
const space = `[\t\n\v\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}]`

// lineTerminators end a line. A carriage return on its own counts.
const lineTerminators = "\n\r\u2028\u2029"

// lineEnd matches (and names) the terminator a line-anchored step must stop before.
const lineEnd = `(?P<eol>\z|[\n\r\x{2028}\x{2029}])`

// substitution is one step of the markdown reduction.
type substitution struct {
	pattern *regexp.Regexp
	repl    string
	// lineStart steps only match at the start of a line and remove what they match.
	lineStart bool
}

func replaceAll(pattern, repl string) substitution {
	return substitution{pattern: regexp.MustCompile(pattern), repl: repl}
}

func removeAtLineStart(pattern string) substitution {
	return substitution{pattern: regexp.MustCompile("^" + pattern), lineStart: true}
}

// stripSteps are applied in order. The order matters: later patterns assume
// earlier constructs are gone (e.g. images before links, table pipes before
// separator rows). Nested constructs may leave stray punctuation behind.
var stripSteps = []substitution{
	// fenced code blocks, removed entirely
	replaceAll("```[\\s\\S]*?```", ""),
	// inline code, keep the code text
	replaceAll("`([^`]+)`", "${1}"),
	// images, keep alt text
	replaceAll(`!\[([^\]]*)\]\([^)]+\)`, "${1}"),
	// links, keep link text
	replaceAll(`\[([^\]]+)\]\([^)]+\)`, "${1}"),
	// heading markers
	removeAtLineStart(`#{1,6}` + space + `+`),
	// bold / italic
	replaceAll(`\*{1,3}([^*]+)\*{1,3}`, "${1}"),
	// strikethrough
	replaceAll(`~~([^~]+)~~`, "${1}"),
	// blockquotes
	removeAtLineStart(space + `*>` + space + `?`),
	// horizontal rules
	removeAtLineStart(`[-*_]{3,}` + space + `*` + lineEnd),
	// table pipes, then separator rows
	replaceAll(`\|`, " "),
	removeAtLineStart(`(?:[-:|]|` + space + `)+` + lineEnd),
	// task list markers
	replaceAll(`- \[[ x]\]`+space+`*`, ""),
	// unordered list markers
	removeAtLineStart(space + `*[-*+]` + space + `+`),
	// ordered list markers
	removeAtLineStart(space + `*\d+\.` + space + `+`),
	// whitespace collapsing
	replaceAll(`[ \t]+`, " "),
	replaceAll(`\n{2,}`, " "),
	replaceAll(`\n`, " "),
}

// StripMarkdown reduces markdown to plain text by sequential regex substitution.
// It is a lossy textual reduction, not a parser.
func StripMarkdown(markdown string) string {
	text := markdown
	for _, step := range stripSteps {
		if step.lineStart {
			text = removeLineMatches(text, step.pattern)
		} else {
			text = step.pattern.ReplaceAllString(text, step.repl)
		}
	}
	return strings.TrimFunc(text, isSpace)
}

// removeLineMatches removes every non-overlapping match of re that begins at a
// line start, scanning left to right. re is anchored with ^. If re has an
// "eol" group, the match ends where that group begins, so the terminator
// stays in the text and still starts the next line.
func removeLineMatches(text string, re *regexp.Regexp) string {
	eol := re.SubexpIndex("eol")

	var b strings.Builder
	last := 0
	p := 0
	for {
		if loc := re.FindStringSubmatchIndex(text[p:]); loc != nil {
			end := p + loc[1]
			if eol > 0 && loc[2*eol] >= 0 {
				end = p + loc[2*eol]
			}
			if end > p {
				b.WriteString(text[last:p])
				last = end
				p = end
				if isLineStart(text, p) {
					continue
				}
			}
		}

		next := nextLineStart(text, p)
		if next < 0 {
			break
		}
		p = next
	}
	b.WriteString(text[last:])
	return b.String()
}

func isLineStart(text string, p int) bool {
	if p == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:p])
	return strings.ContainsRune(lineTerminators, r)
}

// nextLineStart returns the offset just past the first terminator at or after p, or -1.
func nextLineStart(text string, p int) int {
	i := strings.IndexAny(text[p:], lineTerminators)
	if i < 0 {
		return -1
	}
	_, size := utf8.DecodeRuneInString(text[p+i:])
	return p + i + size
}

// isSpace matches the same characters as the space class.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u00a0', '\u1680', '\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}
