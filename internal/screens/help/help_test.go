package help

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/careerpath/advisor/internal/router"
	"github.com/careerpath/advisor/internal/screen"
	"github.com/careerpath/advisor/internal/ui/layout"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "stub" }
func (s *stubScreen) Title() string                           { return "Stub" }
func (s *stubScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "X", Description: "Do the thing"}}
}

func TestHelp_ListsUnderlyingHints(t *testing.T) {
	h := New(&stubScreen{})
	view := h.View(80, 30)
	for _, want := range []string{"Everywhere", "Stub", "Do the thing", "Log out"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHelp_EscPops(t *testing.T) {
	h := New(nil)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestHelp_OtherKeysIgnored(t *testing.T) {
	h := New(nil)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if cmd != nil {
		t.Error("unexpected command")
	}
}
