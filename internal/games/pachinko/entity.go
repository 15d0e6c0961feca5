package pachinko

import (
	"github.com/vovakirdan/pachinko-arcade/internal/physics"
)

// Kind distinguishes falling items.
type Kind int

const (
	KindBall Kind = iota // Caught for points
	KindBomb             // Costs a life when caught
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBall:
		return "ball"
	case KindBomb:
		return "bomb"
	default:
		return "unknown"
	}
}

// Entity is a falling item. IDs are unique for the lifetime of a session,
// including across restarts.
type Entity struct {
	ID   uint64
	Kind Kind
	Body physics.Body
}
