package core

// DefaultSwipeDistance is the minimum drag, in cells, recognised as a swipe.
const DefaultSwipeDistance = 2

// SwipeAction converts a drag displacement into a directional action.
// The axis is whichever of |dx| and |dy| is larger; the sign picks the
// direction. Ties and drags shorter than minDistance yield ActionNone.
func SwipeAction(dx, dy, minDistance int) Action {
	ax, ay := Abs(dx), Abs(dy)
	if ax == ay || max(ax, ay) < minDistance {
		return ActionNone
	}

	if ax > ay {
		if dx > 0 {
			return ActionRight
		}
		return ActionLeft
	}

	if dy > 0 {
		return ActionDown
	}
	return ActionUp
}

// Swipe tracks a single press/release pair.
type Swipe struct {
	MinDistance int

	active bool
	startX int
	startY int
}

// Begin records the press position.
func (s *Swipe) Begin(x, y int) {
	s.active = true
	s.startX = x
	s.startY = y
}

// End finishes the gesture at the release position and returns the
// recognised action. Releases without a matching press yield ActionNone.
func (s *Swipe) End(x, y int) Action {
	if !s.active {
		return ActionNone
	}
	s.active = false

	minDist := s.MinDistance
	if minDist <= 0 {
		minDist = DefaultSwipeDistance
	}
	return SwipeAction(x-s.startX, y-s.startY, minDist)
}

// Active reports whether a press is being tracked.
func (s *Swipe) Active() bool {
	return s.active
}
