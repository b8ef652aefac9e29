package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vpds/otchetnik/internal/tui/msgs"
)

func TestFilePickerModel_AllowsOnlyDocx(t *testing.T) {
	m := NewFilePickerModel(t.TempDir())
	if len(m.picker.AllowedTypes) != 1 || m.picker.AllowedTypes[0] != ".docx" {
		t.Errorf("expected only .docx allowed, got %v", m.picker.AllowedTypes)
	}
	if m.picker.DirAllowed {
		t.Error("expected directory selection to be disabled")
	}
}

func TestFilePickerModel_EscGoesHome(t *testing.T) {
	m := NewFilePickerModel(t.TempDir())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a command from esc")
	}
	if _, ok := cmd().(msgs.GoToHomeMsg); !ok {
		t.Errorf("expected GoToHomeMsg, got %T", cmd())
	}
}

func TestFilePickerModel_SetSizeReservesChrome(t *testing.T) {
	m := NewFilePickerModel(t.TempDir())
	m.SetSize(80, 24)
	if m.picker.Height != 20 {
		t.Errorf("expected picker height 20, got %d", m.picker.Height)
	}
}
