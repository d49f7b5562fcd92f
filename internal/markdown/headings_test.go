package markdown

import "testing"

func TestExtractHeadings(t *testing.T) {
	input := `# Heading 1

Some text.

## Heading 2

### Heading 3
`
	headings := ExtractHeadings([]byte(input))

	if len(headings) != 3 {
		t.Fatalf("got %d headings, want 3", len(headings))
	}

	tests := []struct {
		level int
		text  string
		line  int
	}{
		{1, "Heading 1", 1},
		{2, "Heading 2", 5},
		{3, "Heading 3", 7},
	}

	for i, tt := range tests {
		if headings[i].Level != tt.level {
			t.Errorf("[%d] level: got %d, want %d", i, headings[i].Level, tt.level)
		}
		if headings[i].Text != tt.text {
			t.Errorf("[%d] text: got %q, want %q", i, headings[i].Text, tt.text)
		}
		if headings[i].Line != tt.line {
			t.Errorf("[%d] line: got %d, want %d", i, headings[i].Line, tt.line)
		}
	}
}

func TestExtractHeadingsEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"no headings", "just prose\nacross lines\n", 0},
		{"seven hashes is not a heading", "####### too deep\n", 0},
		{"hash without text", "#\n## \n", 0},
		{"trailing hashes trimmed", "## Closed ##\n", 1},
		{"indented heading", "   # Indented\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractHeadings([]byte(tt.input))
			if len(got) != tt.want {
				t.Errorf("got %d headings, want %d", len(got), tt.want)
			}
		})
	}
}

func TestExtractHeadingsTrimsClosingMarkers(t *testing.T) {
	headings := ExtractHeadings([]byte("## Chapter Two ##\n"))
	if len(headings) != 1 || headings[0].Text != "Chapter Two" {
		t.Fatalf("got %+v", headings)
	}
}

func TestExtractHeadingsSetext(t *testing.T) {
	input := `The Title
=========

Some prose.

A Part
------
`
	headings := ExtractHeadings([]byte(input))

	if len(headings) != 2 {
		t.Fatalf("got %d headings, want 2: %+v", len(headings), headings)
	}
	if headings[0].Level != 1 || headings[0].Text != "The Title" || headings[0].Line != 1 {
		t.Errorf("first heading = %+v", headings[0])
	}
	if headings[1].Level != 2 || headings[1].Text != "A Part" || headings[1].Line != 6 {
		t.Errorf("second heading = %+v", headings[1])
	}
}

func TestExtractHeadingsSetextNeedsAdjacentText(t *testing.T) {
	input := "Orphan\n\n=====\n\n-----\n"
	if got := ExtractHeadings([]byte(input)); len(got) != 0 {
		t.Errorf("got %+v, want none", got)
	}
}

func TestExtractHeadingsSkipsFencedCode(t *testing.T) {
	input := "# Real\n\n```\n# not a heading\ncode\n```\n\n## Also real\n"
	headings := ExtractHeadings([]byte(input))

	if len(headings) != 2 {
		t.Fatalf("got %d headings, want 2: %+v", len(headings), headings)
	}
	if headings[0].Text != "Real" || headings[1].Text != "Also real" {
		t.Errorf("got %+v", headings)
	}
}
