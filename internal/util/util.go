// internal/util/util.go
// Package util holds small file and text helpers shared by the command line
// and terminal dashboard.
package util

import (
	"os"
	"path/filepath"
	"strings"
)

// WriteFile writes data to path with 0o644 permissions, creating missing
// parent directories first.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// WrapToWidth wraps text on word boundaries so no line exceeds width runes.
// Words longer than width are split. Blank lines are kept.
func WrapToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, width int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}

	var (
		lines []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			lines = append(lines, string(cur))
			cur = cur[:0]
		}
	}
	for _, w := range words {
		r := []rune(w)
		switch {
		case len(cur) > 0 && len(cur)+1+len(r) <= width:
			cur = append(append(cur, ' '), r...)
		case len(r) <= width:
			flush()
			cur = append(cur, r...)
		default:
			flush()
			for len(r) > width {
				lines = append(lines, string(r[:width]))
				r = r[width:]
			}
			cur = append(cur, r...)
		}
	}
	flush()
	return lines
}

// Indent prefixes every non-empty line of text with prefix.
func Indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
