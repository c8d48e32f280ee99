package t2048

// highlightDuration is how long changed tiles stay marked (~133ms at 60fps).
const highlightDuration = 8

// winBannerDuration is how long the win overlay stays up (~2s at 60fps).
const winBannerDuration = 120

type highlightKind uint8

const (
	highlightNone highlightKind = iota
	highlightMerged
	highlightSpawned
)

// highlight marks the tiles touched by the last move for a few ticks.
type highlight struct {
	kinds [BoardSize][BoardSize]highlightKind
	ticks int
}

// start marks merged and spawned tiles from a move.
func (h *highlight) start(res MoveResult) {
	h.clear()
	for _, c := range res.Merged {
		h.kinds[c.Y][c.X] = highlightMerged
	}
	if res.Spawned != nil {
		h.kinds[res.Spawned.Y][res.Spawned.X] = highlightSpawned
	}
	h.ticks = highlightDuration
}

// step advances the highlight by one tick.
func (h *highlight) step() {
	if h.ticks == 0 {
		return
	}
	h.ticks--
	if h.ticks == 0 {
		h.clear()
	}
}

func (h *highlight) clear() {
	h.kinds = [BoardSize][BoardSize]highlightKind{}
	h.ticks = 0
}

func (h *highlight) at(x, y int) highlightKind {
	return h.kinds[y][x]
}

func (h *highlight) active() bool {
	return h.ticks > 0
}
