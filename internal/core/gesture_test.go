package core

import "testing"

func TestSwipeAction(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy int
		want   Action
	}{
		{"right", 5, 1, ActionRight},
		{"left", -4, 2, ActionLeft},
		{"down", 1, 3, ActionDown},
		{"up", 0, -2, ActionUp},
		{"diagonal tie", 3, -3, ActionNone},
		{"too short", 1, 0, ActionNone},
		{"no movement", 0, 0, ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SwipeAction(tc.dx, tc.dy, DefaultSwipeDistance); got != tc.want {
				t.Errorf("SwipeAction(%d, %d) = %v, want %v", tc.dx, tc.dy, got, tc.want)
			}
		})
	}
}

func TestSwipeBeginEnd(t *testing.T) {
	var s Swipe

	if s.Active() {
		t.Fatal("zero Swipe should not be active")
	}
	if got := s.End(10, 10); got != ActionNone {
		t.Errorf("End without Begin = %v, want None", got)
	}

	s.Begin(10, 5)
	if !s.Active() {
		t.Fatal("Swipe should be active after Begin")
	}
	if got := s.End(2, 6); got != ActionLeft {
		t.Errorf("End = %v, want Left", got)
	}
	if s.Active() {
		t.Error("Swipe should be inactive after End")
	}

	s = Swipe{MinDistance: 6}
	s.Begin(0, 0)
	if got := s.End(4, 0); got != ActionNone {
		t.Errorf("drag below custom minimum = %v, want None", got)
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionUndo)
	if !f.Has(ActionUndo) || f.Has(ActionUp) {
		t.Errorf("Has mismatch after Set(Undo): %v", f.Actions)
	}

	f.Clear()
	if !f.Empty() {
		t.Error("frame should be empty after Clear")
	}

	var zero InputFrame
	zero.Set(ActionQuit)
	if !zero.Has(ActionQuit) {
		t.Error("Set on zero frame should allocate")
	}
}
