package editor

import (
	"reflect"
	"strings"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		width int
		want  []string
	}{
		{"fits", "hello world", 20, []string{"hello world"}},
		{"two rows", "the quick brown fox", 10, []string{"the quick", "brown fox"}},
		{"exact fit", "aaa bbb", 7, []string{"aaa bbb"}},
		{"one past exact fit", "aaa bbb", 6, []string{"aaa", "bbb"}},
		{"empty line", "", 10, []string{""}},
		{"single word", "word", 10, []string{"word"}},
		{"oversized word kept whole", "extraordinarily", 5, []string{"extraordinarily"}},
		{"oversized between words", "an extraordinarily big word", 7, []string{"an", "extraordinarily", "big", "word"}},
		{"double space kept", "a  b", 10, []string{"a  b"}},
		{"double space at break", "aa  bb", 3, []string{"aa ", "bb"}},
		{"width one", "ab c", 1, []string{"ab", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.line, tt.width)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Wrap(%q, %d) = %#v, want %#v", tt.line, tt.width, got, tt.want)
			}
		})
	}
}

func TestWrapJoinRoundTrip(t *testing.T) {
	lines := []string{
		"",
		"word",
		"the quick brown fox jumps over the lazy dog",
		"a  double  spaced  line",
		" leading space",
		"trailing space ",
		"unbreakablylongword and more",
	}
	for _, line := range lines {
		for width := 1; width <= 15; width++ {
			if got := strings.Join(Wrap(line, width), " "); got != line {
				t.Errorf("join(Wrap(%q, %d)) = %q", line, width, got)
			}
		}
	}
}

func TestWrapStableOnRewrap(t *testing.T) {
	line := "pack my box with five dozen liquor jugs"
	for width := 3; width <= 15; width++ {
		first := Wrap(line, width)
		again := Wrap(strings.Join(first, " "), width)
		if !reflect.DeepEqual(first, again) {
			t.Errorf("width %d: rewrap changed %v to %v", width, first, again)
		}
	}
}

func TestWrapText(t *testing.T) {
	got := WrapText("alpha\n\nbeta gamma", 6)
	want := []string{"alpha", "", "beta", "gamma"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WrapText = %#v, want %#v", got, want)
	}
}
