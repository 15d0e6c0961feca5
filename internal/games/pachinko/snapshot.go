package pachinko

import "math"

// Snapshot is a flat copy of the session state for determinism checks.
// Positions are stored in milli-pixels so the hash is stable across runs.
type Snapshot struct {
	Tick    int
	Score   int
	Lives   int
	Phase   int
	BasketX int
	NextID  uint64
	Now     int64

	// Each entity is 6 ints: ID, Kind, X, Y, VX, VY
	EntityCount int
	EntityData  []int
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	data := make([]int, 0, len(s.entities)*6)
	for _, e := range s.entities {
		data = append(data,
			int(e.ID), //#nosec G115 -- IDs stay far below MaxInt
			int(e.Kind),
			milli(e.Body.Pos.X()),
			milli(e.Body.Pos.Y()),
			milli(e.Body.Vel.X()),
			milli(e.Body.Vel.Y()),
		)
	}

	return Snapshot{
		Tick:        s.stats.Ticks,
		Score:       s.score,
		Lives:       s.lives,
		Phase:       int(s.phase),
		BasketX:     milli(s.basket.X),
		NextID:      s.spawner.NextID(),
		Now:         int64(s.clock.Now()),
		EntityCount: len(s.entities),
		EntityData:  data,
	}
}

func milli(v float64) int {
	return int(math.Round(v * 1000))
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Tick)          //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Phase)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BasketX) //#nosec G115 -- hash computation
	h = h*31 + snap.NextID
	h = h*31 + uint64(snap.Now)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.EntityCount) //#nosec G115 -- hash computation

	for _, v := range snap.EntityData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	return h
}
