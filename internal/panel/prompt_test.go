package panel

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DarthTigerson/pico-writer/internal/theme"
)

func newTestPrompt() Prompt {
	th := theme.DefaultTheme()
	p := NewPrompt(&th)
	p.SetSize(80, 24)
	return p
}

func TestPromptTyping(t *testing.T) {
	p := newTestPrompt()
	p.Show("New chapter", "chapter name", "")

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("draft")})
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})

	msg, ok := msgOf(cmd).(PromptResultMsg)
	if !ok {
		t.Fatalf("expected PromptResultMsg, got %T", msgOf(cmd))
	}
	if msg.Value != "draft" {
		t.Errorf("value = %q, want draft", msg.Value)
	}
}

func TestPromptPrefill(t *testing.T) {
	p := newTestPrompt()
	p.Show("Rename chapter", "", "old name.md")

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg, ok := msgOf(cmd).(PromptResultMsg)
	if !ok {
		t.Fatalf("expected PromptResultMsg, got %T", msgOf(cmd))
	}
	if msg.Value != "old name.md" {
		t.Errorf("value = %q, want prefilled name", msg.Value)
	}
}

func TestPromptEmptyCancels(t *testing.T) {
	p := newTestPrompt()
	p.Show("New book", "book name", "")

	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := msgOf(cmd).(PromptCancelledMsg); !ok {
		t.Fatalf("expected PromptCancelledMsg, got %T", msgOf(cmd))
	}
	if p.Visible() {
		t.Error("prompt still visible after cancel")
	}
}

func TestPromptTrimsValue(t *testing.T) {
	p := newTestPrompt()
	p.Show("Rename", "", "  padded  ")

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg, ok := msgOf(cmd).(PromptResultMsg)
	if !ok {
		t.Fatalf("expected PromptResultMsg, got %T", msgOf(cmd))
	}
	if msg.Value != "padded" {
		t.Errorf("value = %q, want padded", msg.Value)
	}
}

func TestPromptEscCancels(t *testing.T) {
	p := newTestPrompt()
	p.Show("New book", "", "")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("half typed")})

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := msgOf(cmd).(PromptCancelledMsg); !ok {
		t.Fatalf("expected PromptCancelledMsg, got %T", msgOf(cmd))
	}
}
