package views

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vpds/otchetnik/internal/tui/msgs"
)

func previewKey(m PreviewModel, key string) PreviewModel {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return m
}

func TestPreviewModel_CursorMovement(t *testing.T) {
	m := NewPreviewModel([]string{"один", "два", "три"}, nil)
	m.SetSize(80, 24)

	if m.Cursor() != 0 {
		t.Fatalf("expected cursor at 0, got %d", m.Cursor())
	}

	m = previewKey(m, "j")
	m = previewKey(m, "j")
	if m.Cursor() != 2 {
		t.Errorf("expected cursor at 2, got %d", m.Cursor())
	}

	// Stops at the last item.
	m = previewKey(m, "j")
	if m.Cursor() != 2 {
		t.Errorf("expected cursor clamped at 2, got %d", m.Cursor())
	}

	m = previewKey(m, "k")
	if m.Cursor() != 1 {
		t.Errorf("expected cursor at 1, got %d", m.Cursor())
	}
}

func TestPreviewModel_ScrollsToKeepCursorVisible(t *testing.T) {
	var items []string
	for i := 0; i < 30; i++ {
		items = append(items, fmt.Sprintf("пункт %d", i+1))
	}
	m := NewPreviewModel(items, nil)
	m.SetSize(80, 10) // 5 visible rows

	for i := 0; i < 10; i++ {
		m = previewKey(m, "j")
	}
	view := m.View()
	if !strings.Contains(view, "11. пункт 11") {
		t.Error("expected the cursor line to be visible after scrolling")
	}
	if strings.Contains(view, "1. пункт 1\n") {
		t.Error("expected the first line to scroll out of view")
	}
}

func TestPreviewModel_ViewShowsItemCount(t *testing.T) {
	m := NewPreviewModel([]string{"один", "два"}, nil)
	m.SetSize(80, 24)
	if !strings.Contains(m.View(), "Items Found: 2") {
		t.Error("expected the title to show the item count")
	}
}

func TestPreviewModel_EscGoesHome(t *testing.T) {
	m := NewPreviewModel([]string{"один"}, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a command from esc")
	}
	if _, ok := cmd().(msgs.GoToHomeMsg); !ok {
		t.Errorf("expected GoToHomeMsg, got %T", cmd())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"a longer string", 8, "a longe…"},
		{"кириллица тоже", 10, "кириллица…"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
