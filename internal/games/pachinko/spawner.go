package pachinko

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/pachinko-arcade/internal/config"
	"github.com/vovakirdan/pachinko-arcade/internal/physics"
	"github.com/vovakirdan/pachinko-arcade/internal/sched"
)

// SpawnerState is the spawner lifecycle.
type SpawnerState int

const (
	SpawnerStopped SpawnerState = iota
	SpawnerActive
)

// Spawner drops a new item on a repeating timer while active.
type Spawner struct {
	cfg    config.SpawnerConfig
	fieldW float64
	rng    *rand.Rand
	clock  *sched.Scheduler
	sink   func(*Entity)

	state      SpawnerState
	timer      *sched.Timer
	delay      time.Duration
	bombChance float64
	nextID     uint64
}

// NewSpawner creates a stopped spawner. Each spawned entity is passed to sink.
func NewSpawner(cfg config.SpawnerConfig, fieldW float64, rng *rand.Rand, clock *sched.Scheduler, sink func(*Entity)) *Spawner {
	return &Spawner{
		cfg:        cfg,
		fieldW:     fieldW,
		rng:        rng,
		clock:      clock,
		sink:       sink,
		delay:      time.Duration(cfg.DelayMs) * time.Millisecond,
		bombChance: cfg.BombChance,
	}
}

// Start activates the spawner and schedules its repeating timer.
// Any previous timer is cancelled first.
func (sp *Spawner) Start() {
	sp.timer.Cancel()
	sp.timer = sp.clock.AddRepeating(sp.delay, sp.tick)
	sp.state = SpawnerActive
}

// Stop cancels the timer. No entity is created after Stop until the next Start.
func (sp *Spawner) Stop() {
	sp.timer.Cancel()
	sp.state = SpawnerStopped
}

// State returns the current lifecycle state.
func (sp *Spawner) State() SpawnerState {
	return sp.state
}

// Timer returns the active timer handle, or nil before the first Start.
func (sp *Spawner) Timer() *sched.Timer {
	return sp.timer
}

// SetDelay changes the spawn period. A running timer picks it up on its next
// reschedule.
func (sp *Spawner) SetDelay(d time.Duration) {
	if d <= 0 {
		return
	}
	sp.delay = d
	if sp.timer != nil {
		sp.timer.SetDelay(d)
	}
}

// SetBombChance changes the probability that a spawn is a bomb.
func (sp *Spawner) SetBombChance(p float64) {
	sp.bombChance = p
}

// BombChance returns the current bomb probability.
func (sp *Spawner) BombChance() float64 {
	return sp.bombChance
}

// NextID returns the ID the next entity will get.
func (sp *Spawner) NextID() uint64 {
	return sp.nextID + 1
}

func (sp *Spawner) tick() {
	if sp.state != SpawnerActive {
		return
	}
	sp.sink(sp.newEntity())
}

// newEntity rolls position, kind and motion for a fresh item.
func (sp *Spawner) newEntity() *Entity {
	lo := int(sp.cfg.Margin)
	hi := int(sp.fieldW - sp.cfg.Margin)
	x := float64(lo + sp.rng.Intn(hi-lo+1))

	kind := KindBall
	if sp.rng.Float64() < sp.bombChance {
		kind = KindBomb
	}

	var bounce, vx float64
	switch kind {
	case KindBomb:
		bounce = sp.cfg.BombBounceMin + sp.rng.Float64()*(sp.cfg.BombBounceMax-sp.cfg.BombBounceMin)
	default:
		bounce = sp.cfg.BallBounceMin + sp.rng.Float64()*(sp.cfg.BallBounceMax-sp.cfg.BallBounceMin)
		vx = float64(sp.rng.Intn(2*sp.cfg.BallMaxVX+1) - sp.cfg.BallMaxVX)
	}

	return sp.create(kind, x, sp.cfg.SpawnY, vx, 0, sp.cfg.Radius, bounce)
}

// create assigns the next ID. Used by the timer and for scripted drops.
func (sp *Spawner) create(kind Kind, x, y, vx, vy, radius, bounce float64) *Entity {
	sp.nextID++
	return &Entity{
		ID:   sp.nextID,
		Kind: kind,
		Body: physics.NewBody(x, y, vx, vy, radius, bounce),
	}
}
