package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/careerpath/advisor/internal/router"
	"github.com/careerpath/advisor/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "login" }
func (s *stubScreen) Title() string                           { return "Sign in" }

func newTestWelcome() (*WelcomeScreen, *int) {
	calls := 0
	w := New(func() screen.Screen {
		calls++
		return &stubScreen{}
	})
	return w, &calls
}

func sendTicks(w *WelcomeScreen, n int) {
	for range n {
		w.Update(tickMsg(time.Now()))
	}
}

func containsBanner(s string) bool {
	return strings.Contains(s, "career that fits")
}

func TestPhaseTransitions(t *testing.T) {
	w, _ := newTestWelcome()

	if containsBanner(w.View(80, 24)) {
		t.Error("banner should not be visible at start")
	}

	sendTicks(w, 4)
	if w.elapsed != 400*time.Millisecond {
		t.Errorf("expected elapsed 400ms, got %v", w.elapsed)
	}
	if containsBanner(w.View(80, 24)) {
		t.Error("banner should not be visible before phase 2 ends")
	}

	sendTicks(w, 8)
	if !containsBanner(w.View(80, 24)) {
		t.Error("banner should be visible after phase 2")
	}
}

func TestElapsedCapped(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 60)
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
	if *calls != 0 {
		t.Errorf("next should not be built without a key press, got %d calls", *calls)
	}
}

func TestKeypressReplacesWithNext(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress should trigger transition")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if msg.Screen == nil {
		t.Error("replacement screen should not be nil")
	}
	if *calls != 1 {
		t.Errorf("next should be called once, got %d", *calls)
	}
}

func TestTransitionOnlyOnce(t *testing.T) {
	w, calls := newTestWelcome()
	w.Update(tea.KeyPressMsg{Code: 'a'})

	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *calls != 1 {
		t.Errorf("next should be called exactly once, got %d", *calls)
	}
}

func TestTicksStopAfterTransition(t *testing.T) {
	w, _ := newTestWelcome()
	w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, cmd := w.Update(tickMsg(time.Now())); cmd != nil {
		t.Error("ticks should stop once replaced")
	}
}

func TestCompactBanner(t *testing.T) {
	if !strings.Contains(RenderBanner(40), "A D V I S O R") {
		t.Error("narrow terminals should get the compact banner")
	}
}
