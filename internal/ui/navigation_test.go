package ui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-cmdk/internal/action"
)

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}
}

func TestPointerHoverWaitsForMotion(t *testing.T) {
	var ran []string
	h := newTestHarness(t, Options{}, paletteActions(&ran))
	h.Send(tea.WindowSizeMsg{Width: 80, Height: 24})
	openPalette(t, h)

	// box is 72 wide, centred at column 4; row 1 sits one line below listTop
	h.Send(motion(10, listTop+1))
	if got := h.Model().store.State().ActiveIndex; got != 0 {
		t.Fatalf("first motion after mount must only arm hovering, active %d", got)
	}
	h.Send(motion(10, listTop+1))
	if got := h.Model().store.State().ActiveIndex; got != 1 {
		t.Fatalf("expected hover to activate row 1, got %d", got)
	}
	h.Send(motion(2, listTop))
	if got := h.Model().store.State().ActiveIndex; got != 1 {
		t.Fatalf("motion outside the box must not move the active row, got %d", got)
	}

	h.Send(tea.MouseMsg{X: 10, Y: listTop + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if len(ran) != 1 || ran[0] != "docs" {
		t.Fatalf("expected click to run docs, ran %v", ran)
	}
}

func TestPointerIgnoredWhileHidden(t *testing.T) {
	var ran []string
	h := newTestHarness(t, Options{}, paletteActions(&ran))
	h.Send(tea.WindowSizeMsg{Width: 80, Height: 24})
	h.Send(tea.MouseMsg{X: 10, Y: listTop, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if len(ran) != 0 {
		t.Fatalf("clicks while hidden must be ignored, ran %v", ran)
	}
}

func TestReopenRearmsPointerSuppression(t *testing.T) {
	var ran []string
	h := newTestHarness(t, Options{}, paletteActions(&ran))
	h.Send(tea.WindowSizeMsg{Width: 80, Height: 24})
	openPalette(t, h)
	h.Send(motion(10, listTop))
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	openPalette(t, h)

	h.Send(motion(10, listTop))
	if got := h.Model().store.State().ActiveIndex; got != 1 {
		t.Fatalf("pointer must be suppressed again after reopening, active %d", got)
	}
}

func TestKeyboardMovesClampAtBoundaries(t *testing.T) {
	var ran []string
	h := newTestHarness(t, Options{}, paletteActions(&ran))
	openPalette(t, h)

	h.Send(tea.KeyMsg{Type: tea.KeyUp})
	if got := h.Model().store.State().ActiveIndex; got != 0 {
		t.Fatalf("up at the top must stay put, got %d", got)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlN})
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	if got := h.Model().store.State().ActiveIndex; got != 1 {
		t.Fatalf("down at the bottom must stay put, got %d", got)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlP})
	if got := h.Model().store.State().ActiveIndex; got != 0 {
		t.Fatalf("ctrl+p should move up, got %d", got)
	}
}

func TestScrollingKeepsActiveRowVisible(t *testing.T) {
	actions := make([]action.Action, 0, 30)
	for i := 0; i < 30; i++ {
		actions = append(actions, action.Action{
			ID:      fmt.Sprintf("item-%02d", i),
			Name:    fmt.Sprintf("Item %02d", i),
			Perform: func() any { return nil },
		})
	}
	h := newTestHarness(t, Options{Height: 5}, actions)
	openPalette(t, h)

	for i := 0; i < 7; i++ {
		h.Send(tea.KeyMsg{Type: tea.KeyDown})
	}
	start, end := h.Model().list.Window()
	if start != 3 || end != 8 {
		t.Fatalf("expected window [3,8), got [%d,%d)", start, end)
	}
	for i := 0; i < 6; i++ {
		h.Send(tea.KeyMsg{Type: tea.KeyUp})
	}
	start, _ = h.Model().list.Window()
	if start != 0 {
		t.Fatalf("expected window back at the top, got %d", start)
	}
}
