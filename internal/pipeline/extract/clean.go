package extract

import (
	"regexp"
	"strings"
)

var (
	spaceRuns  = regexp.MustCompile(`[ \t]+`)
	blankRuns  = regexp.MustCompile(`\n\s*\n`)
	bulletRune = regexp.MustCompile(`[\x{2022}\x{2023}\x{25E6}\x{25CF}\x{25A0}\x{25AA}\x{00B7}\x{2043}]`)
)

// CleanText normalizes raw engine output: line endings, whitespace runs,
// decorative bullet glyphs, and control characters. Shared by all formats.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, " ", " ")
	text = strings.ReplaceAll(text, "\x00", "")

	// Zero-width characters leak out of some PDF engines.
	text = strings.Map(func(r rune) rune {
		switch {
		case r >= 0x200b && r <= 0x200d, r == 0xfeff:
			return -1
		case r < 0x20 && r != '\n' && r != '\t':
			return -1
		}
		return r
	}, text)

	text = bulletRune.ReplaceAllString(text, "- ")
	text = spaceRuns.ReplaceAllString(text, " ")
	text = blankRuns.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
