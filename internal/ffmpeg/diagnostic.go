package ffmpeg

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Diagnostic condenses ffmpeg's stderr into at most maxRunes runes. The
// version banner and progress lines are dropped. When the rest is still too
// long the final lines win, since ffmpeg reports the fatal error last.
// Lines are joined with "; ".
func Diagnostic(stderr string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	lines := diagnosticLines(stderr)

	var kept []string
	used := 0
	for i := len(lines) - 1; i >= 0; i-- {
		n := utf8.RuneCountInString(lines[i])
		if len(kept) > 0 {
			n += 2
		}
		if used+n > maxRunes {
			if len(kept) == 0 {
				return string([]rune(lines[i])[:maxRunes])
			}
			break
		}
		kept = append(kept, lines[i])
		used += n
	}
	slices.Reverse(kept)
	return strings.Join(kept, "; ")
}

func diagnosticLines(stderr string) []string {
	raw := strings.FieldsFunc(stderr, func(r rune) bool { return r == '\n' || r == '\r' })
	lines := make([]string, 0, len(raw))
	inBanner := false
	for _, line := range raw {
		indented := strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "ffmpeg version "):
			inBanner = true
			continue
		case inBanner && indented:
			continue
		}
		inBanner = false
		if trimmed == "" || strings.HasPrefix(trimmed, "frame=") || strings.HasPrefix(trimmed, "size=") {
			continue
		}
		lines = append(lines, trimmed)
	}
	return lines
}
