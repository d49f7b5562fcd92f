package markdown

import (
	"bufio"
	"bytes"
	"strings"
)

// Heading represents a markdown heading.
type Heading struct {
	Level int
	Text  string
	Line  int // 1-based line number
}

// ExtractHeadings scans markdown content for headings without building a
// full document tree. It understands ATX headings and setext underlines
// and ignores fenced code blocks, which is all the outline needs; the
// scan runs on every buffer change, so it stays a single pass.
func ExtractHeadings(content []byte) []Heading {
	var headings []Heading
	scanner := bufio.NewScanner(bytes.NewReader(content))

	inFence := false
	prevText := ""
	prevLine := 0

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		trimmed := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			prevText = ""
			continue
		}
		if inFence {
			continue
		}

		if trimmed == "" {
			prevText = ""
			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			level := 0
			for _, ch := range trimmed {
				if ch == '#' {
					level++
				} else {
					break
				}
			}
			if level <= 6 {
				text := strings.TrimSpace(trimmed[level:])
				text = strings.TrimRight(text, "# ")
				text = strings.TrimSpace(text)
				if text != "" {
					headings = append(headings, Heading{Level: level, Text: text, Line: lineNum})
				}
			}
			prevText = ""
			continue
		}

		if level, ok := setextLevel(trimmed); ok && prevText != "" {
			headings = append(headings, Heading{Level: level, Text: prevText, Line: prevLine})
			prevText = ""
			continue
		}

		prevText = trimmed
		prevLine = lineNum
	}

	return headings
}

// setextLevel reports whether a line is a setext underline. A run of
// equals signs marks a level 1 heading, a run of hyphens a level 2.
func setextLevel(line string) (int, bool) {
	if line == "" {
		return 0, false
	}
	ch := line[0]
	if ch != '=' && ch != '-' {
		return 0, false
	}
	for i := 0; i < len(line); i++ {
		if line[i] != ch {
			return 0, false
		}
	}
	if ch == '=' {
		return 1, true
	}
	return 2, true
}
