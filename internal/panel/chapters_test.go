package panel

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DarthTigerson/pico-writer/internal/theme"
)

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func msgOf(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func newTestChapters(names []string) Chapters {
	th := theme.DefaultTheme()
	c := NewChapters(&th)
	c.SetSize(30, 20)
	c.SetFocused(true)
	c.SetChapters(names, "")
	return c
}

func TestChaptersEnterOnActionRow(t *testing.T) {
	c := newTestChapters(nil)

	// With no chapters the cursor sits on the new-chapter action.
	c, cmd := c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := msgOf(cmd).(ChapterNewMsg); !ok {
		t.Fatalf("expected ChapterNewMsg, got %T", msgOf(cmd))
	}
	if c.Selected() != "" {
		t.Errorf("Selected() = %q on action row, want empty", c.Selected())
	}
}

func TestChaptersPreviewOnMove(t *testing.T) {
	c := newTestChapters([]string{"one.md", "two.md"})

	c, cmd := c.Update(key('j'))
	msg, ok := msgOf(cmd).(ChapterPreviewMsg)
	if !ok {
		t.Fatalf("expected ChapterPreviewMsg, got %T", msgOf(cmd))
	}
	if msg.Name != "two.md" {
		t.Errorf("preview name = %q, want two.md", msg.Name)
	}

	// Moving onto the action row announces an empty name so the app can
	// close the preview.
	_, cmd = c.Update(key('j'))
	msg, ok = msgOf(cmd).(ChapterPreviewMsg)
	if !ok {
		t.Fatalf("expected ChapterPreviewMsg, got %T", msgOf(cmd))
	}
	if msg.Name != "" {
		t.Errorf("preview name on action row = %q, want empty", msg.Name)
	}
}

func TestChaptersOpen(t *testing.T) {
	c := newTestChapters([]string{"one.md", "two.md"})

	_, cmd := c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg, ok := msgOf(cmd).(ChapterSelectedMsg)
	if !ok {
		t.Fatalf("expected ChapterSelectedMsg, got %T", msgOf(cmd))
	}
	if msg.Name != "one.md" {
		t.Errorf("selected name = %q, want one.md", msg.Name)
	}
}

func TestChaptersRenameAndDelete(t *testing.T) {
	c := newTestChapters([]string{"one.md"})

	_, cmd := c.Update(key('r'))
	if msg, ok := msgOf(cmd).(ChapterRenameMsg); !ok || msg.Name != "one.md" {
		t.Errorf("rename: got %#v", msgOf(cmd))
	}

	_, cmd = c.Update(key('d'))
	if msg, ok := msgOf(cmd).(ChapterDeleteMsg); !ok || msg.Name != "one.md" {
		t.Errorf("delete: got %#v", msgOf(cmd))
	}

	// Neither makes sense on the action row.
	c, _ = c.Update(key('G'))
	if _, cmd = c.Update(key('d')); cmd != nil {
		t.Error("expected nil cmd for delete on action row")
	}
	if _, cmd = c.Update(key('r')); cmd != nil {
		t.Error("expected nil cmd for rename on action row")
	}
}

func TestChaptersCursorSurvivesRefresh(t *testing.T) {
	c := newTestChapters([]string{"one.md", "two.md", "three.md"})
	c, _ = c.Update(key('j'))

	c.SetChapters([]string{"zero.md", "one.md", "two.md", "three.md"}, "")
	if got := c.Selected(); got != "two.md" {
		t.Errorf("Selected() = %q after refresh, want two.md", got)
	}

	// When the chapter is gone the cursor falls back to the top.
	c.SetChapters([]string{"one.md", "three.md"}, "")
	if got := c.Selected(); got != "one.md" {
		t.Errorf("Selected() = %q after removal, want one.md", got)
	}
}

func TestChaptersUnfocusedIgnoresKeys(t *testing.T) {
	c := newTestChapters([]string{"one.md", "two.md"})
	c.SetFocused(false)

	c, cmd := c.Update(key('j'))
	if cmd != nil {
		t.Error("expected nil cmd while unfocused")
	}
	if got := c.Selected(); got != "one.md" {
		t.Errorf("Selected() = %q, cursor moved while unfocused", got)
	}
}

func TestChaptersGKeyEmptyList(t *testing.T) {
	c := newTestChapters(nil)

	c, _ = c.Update(key('G'))
	if c.cursor != 0 {
		t.Errorf("cursor = %d after G on empty list, want 0", c.cursor)
	}
}
