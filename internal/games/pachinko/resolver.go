package pachinko

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/pachinko-arcade/internal/physics"
)

// EventKind classifies what happened to an entity during a frame.
type EventKind int

const (
	EventBounce   EventKind = iota // Hit a peg
	EventWall                      // Hit a side wall
	EventCatch                     // Ball landed in the basket
	EventBomb                      // Bomb landed in the basket
	EventMiss                      // Fell out of the field
	EventGameOver                  // Last life lost
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventBounce:
		return "bounce"
	case EventWall:
		return "wall"
	case EventCatch:
		return "catch"
	case EventBomb:
		return "bomb"
	case EventMiss:
		return "miss"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is emitted by the resolver and the session.
type Event struct {
	Kind     EventKind
	EntityID uint64
	Pos      mgl64.Vec2
}

// Resolver checks live entities against the pegs, the field edges and the
// basket. It moves bodies but never changes score or lives; the session
// applies the returned events.
type Resolver struct {
	pegs       []Peg
	fieldW     float64
	fieldH     float64
	missMargin float64
	walls      physics.Walls
}

// NewResolver creates a resolver for a field with side walls and an open
// top and bottom.
func NewResolver(pegs []Peg, fieldW, fieldH, missMargin float64) *Resolver {
	return &Resolver{
		pegs:       pegs,
		fieldW:     fieldW,
		fieldH:     fieldH,
		missMargin: missMargin,
		walls:      physics.SideWalls,
	}
}

// Pegs returns the obstacle set.
func (r *Resolver) Pegs() []Peg {
	return r.pegs
}

// Resolve processes entities in order and returns the survivors plus the
// events produced. Entities that are caught or fall out are removed. The
// survivors reuse the backing array of entities.
func (r *Resolver) Resolve(entities []*Entity, basket physics.Box, events []Event) ([]*Entity, []Event) {
	live := entities[:0]
	for _, e := range entities {
		events = r.bounce(e, events)

		if physics.CircleOverlapsBox(e.Body.Pos, e.Body.Radius, basket) {
			kind := EventCatch
			if e.Kind == KindBomb {
				kind = EventBomb
			}
			events = append(events, Event{Kind: kind, EntityID: e.ID, Pos: e.Body.Pos})
			continue
		}

		if e.Body.Y() > r.fieldH+r.missMargin {
			events = append(events, Event{Kind: EventMiss, EntityID: e.ID, Pos: e.Body.Pos})
			continue
		}

		live = append(live, e)
	}
	for i := len(live); i < len(entities); i++ {
		entities[i] = nil
	}
	return live, events
}

// bounce resolves peg and wall contacts for one entity. Only contacts that
// actually reverse the approach produce an event, so an item resting on a peg
// does not emit one every frame.
func (r *Resolver) bounce(e *Entity, events []Event) []Event {
	for _, p := range r.pegs {
		before := e.Body.Vel
		_, ok := physics.ResolveCircle(&e.Body, p.Circle())
		if ok && e.Body.Vel != before {
			events = append(events, Event{Kind: EventBounce, EntityID: e.ID, Pos: p.Pos})
		}
	}
	if physics.BounceWalls(&e.Body, r.fieldW, r.fieldH, r.walls) {
		events = append(events, Event{Kind: EventWall, EntityID: e.ID, Pos: e.Body.Pos})
	}
	return events
}
