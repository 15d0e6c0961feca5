package pachinko

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/pachinko-arcade/internal/config"
	"github.com/vovakirdan/pachinko-arcade/internal/sched"
)

// Phase is the session state machine. Playing -> GameOver is one-way; only
// Restart goes back.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseGameOver
)

// Stats counts what happened during a run.
type Stats struct {
	Spawned int
	Caught  int
	Bombs   int
	Missed  int
	Bounces int
	Ticks   int
}

// Input is one frame of player intent in world units.
type Input struct {
	TargetX   float64 // Absolute pointer target, used when HasTarget is set
	HasTarget bool
	Dir       int  // -1 left, +1 right, 0 none (keyboard)
	Restart   bool // Honored only after game over
}

// Session is a single pegboard run: pegs, basket, spawner and the live
// entities, advanced one frame at a time. It is owned by one goroutine.
type Session struct {
	cfg   config.PachinkoConfig
	dt    float64
	frame time.Duration

	clock      *sched.Scheduler
	resolver   *Resolver
	basket     *Basket
	spawner    *Spawner
	effects    *Effects
	difficulty *config.DifficultyManager

	entities []*Entity
	events   []Event

	score int
	lives int
	phase Phase
	stats Stats
}

// NewSession builds the board and starts spawning. tickRate is frames per
// second; the simulation advances by exactly 1/tickRate per Step.
func NewSession(cfg config.PachinkoConfig, seed int64, tickRate int) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pegs, err := GenerateGrid(GridSpecFromConfig(cfg))
	if err != nil {
		return nil, err
	}
	if tickRate <= 0 {
		return nil, fmt.Errorf("pachinko: tick rate %d must be positive", tickRate)
	}

	s := &Session{
		cfg:        cfg,
		dt:         1.0 / float64(tickRate),
		frame:      time.Second / time.Duration(tickRate),
		clock:      sched.New(),
		resolver:   NewResolver(pegs, cfg.Field.Width, cfg.Field.Height, cfg.Physics.MissMargin),
		effects:    NewEffects(rand.New(rand.NewSource(seed + 1))),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
	s.spawner = NewSpawner(cfg.Spawner, cfg.Field.Width, rand.New(rand.NewSource(seed)), s.clock, s.add)
	s.Restart()
	return s, nil
}

// Restart returns to a fresh Playing state: score 0, full lives, no entities
// or effects, basket centered, spawner active.
func (s *Session) Restart() {
	s.clock.Reset()
	s.entities = s.entities[:0]
	s.events = s.events[:0]
	s.effects.Clear()
	s.basket = NewBasket(s.cfg.Basket, s.cfg.Field.Width, s.cfg.Field.Height)
	s.score = 0
	s.lives = s.cfg.Gameplay.Lives
	s.phase = PhasePlaying
	s.stats = Stats{}
	s.spawner.SetDelay(time.Duration(s.cfg.Spawner.DelayMs) * time.Millisecond)
	s.spawner.SetBombChance(s.cfg.Spawner.BombChance)
	s.spawner.Start()
}

func (s *Session) add(e *Entity) {
	s.entities = append(s.entities, e)
	s.stats.Spawned++
}

// Drop inserts an entity directly, bypassing the timer. Ignored after game over.
func (s *Session) Drop(kind Kind, x, y, vx, vy float64) *Entity {
	if s.phase == PhaseGameOver {
		return nil
	}
	bounce := s.cfg.Spawner.BallBounceMin
	if kind == KindBomb {
		bounce = s.cfg.Spawner.BombBounceMin
	}
	e := s.spawner.create(kind, x, y, vx, vy, s.cfg.Spawner.Radius, bounce)
	s.add(e)
	return e
}

// Step advances one frame and returns the events it produced. The returned
// slice is reused by the next Step.
//
// Frame order: input, timers (spawns), basket easing, integration, peg and
// wall bounces, basket overlap, out-of-field prune, effects.
func (s *Session) Step(in Input) []Event {
	s.events = s.events[:0]

	if s.phase == PhaseGameOver {
		if in.Restart {
			s.Restart()
			return s.events
		}
		s.effects.Update(s.frame)
		return s.events
	}

	s.stats.Ticks++

	if in.HasTarget {
		s.basket.SetTarget(in.TargetX)
	} else if in.Dir != 0 {
		s.basket.Nudge(float64(in.Dir) * s.cfg.Basket.KeySpeed * s.dt)
	}

	s.applyDifficulty()
	s.clock.Advance(s.frame)

	s.basket.Update()

	for _, e := range s.entities {
		e.Body.Integrate(s.cfg.Physics.Gravity, s.dt)
	}

	var frameEvents []Event
	s.entities, frameEvents = s.resolver.Resolve(s.entities, s.basket.Box(), s.events)
	s.events = frameEvents

	// Applying can append EventGameOver, so iterate over a fixed length
	n := len(s.events)
	for i := 0; i < n; i++ {
		s.apply(s.events[i])
	}

	s.effects.Update(s.frame)
	return s.events
}

func (s *Session) applyDifficulty() {
	if !s.difficulty.IsEnabled() {
		return
	}
	base := time.Duration(s.cfg.Spawner.DelayMs) * time.Millisecond
	s.spawner.SetDelay(s.difficulty.SpawnDelay(base, s.score, s.stats.Ticks))
	s.spawner.SetBombChance(s.difficulty.BombChance(s.cfg.Spawner.BombChance, s.score, s.stats.Ticks))
}

// apply turns a resolver event into score, lives and effects. Once the game
// is over nothing else is counted, even later events from the same frame.
func (s *Session) apply(ev Event) {
	switch ev.Kind {
	case EventBounce:
		s.stats.Bounces++
		s.effects.Burst(ev.Pos)
		s.effects.PegFlash(ev.Pos)
	case EventMiss:
		s.stats.Missed++
	case EventCatch:
		if s.phase == PhaseGameOver {
			return
		}
		s.score += s.cfg.Gameplay.BallPoints
		s.stats.Caught++
		s.effects.CatchFlash(ev.Pos)
	case EventBomb:
		if s.phase == PhaseGameOver {
			return
		}
		s.lives--
		s.stats.Bombs++
		s.effects.Explosion(ev.Pos)
		if s.lives <= 0 {
			s.lives = 0
			s.gameOver()
		}
	}
}

// gameOver stops the spawner timer before anything else so no callback can
// run in the GameOver phase.
func (s *Session) gameOver() {
	s.spawner.Stop()
	s.phase = PhaseGameOver
	pos := s.basket.Box().Center
	s.effects.BigExplosion(pos)
	s.events = append(s.events, Event{Kind: EventGameOver, Pos: pos})
}

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.lives }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// GameOver reports whether the run has ended.
func (s *Session) GameOver() bool { return s.phase == PhaseGameOver }

// Entities returns the live entities in spawn order. The slice is owned by
// the session.
func (s *Session) Entities() []*Entity { return s.entities }

// Pegs returns the obstacle grid.
func (s *Session) Pegs() []Peg { return s.resolver.Pegs() }

// Basket returns the collector.
func (s *Session) Basket() *Basket { return s.basket }

// Spawner returns the entity spawner.
func (s *Session) Spawner() *Spawner { return s.spawner }

// Effects returns the cosmetic effects.
func (s *Session) Effects() *Effects { return s.effects }

// Stats returns run counters.
func (s *Session) Stats() Stats { return s.stats }

// Config returns the session configuration.
func (s *Session) Config() config.PachinkoConfig { return s.cfg }

// Now returns the virtual time since the last (re)start.
func (s *Session) Now() time.Duration { return s.clock.Now() }

// PendingTimers returns the number of live scheduler timers.
func (s *Session) PendingTimers() int { return s.clock.Pending() }
