package pachinko

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/pachinko-arcade/internal/physics"
)

// Cosmetic timings.
const (
	burstParticles   = 5
	burstMinSpeed    = 50.0
	burstMaxSpeed    = 100.0
	burstTTL         = 200 * time.Millisecond
	pegFlashTTL      = 100 * time.Millisecond
	catchFlashTTL    = 300 * time.Millisecond
	bombExplosionTTL = 500 * time.Millisecond
	bombShakeTTL     = 200 * time.Millisecond
	gameOverBlastTTL = 1000 * time.Millisecond
)

// EffectKind selects how an effect is drawn.
type EffectKind int

const (
	EffectParticle EffectKind = iota
	EffectPegFlash
	EffectCatchFlash
	EffectExplosion
	EffectBigExplosion
)

// Effect is a short-lived visual. Effects never touch gameplay state.
type Effect struct {
	Kind EffectKind
	Pos  mgl64.Vec2
	Vel  mgl64.Vec2
	Age  time.Duration
	TTL  time.Duration
}

// Progress returns how far through its lifetime the effect is, in [0, 1].
func (e Effect) Progress() float64 {
	if e.TTL <= 0 {
		return 1
	}
	return math.Min(1, float64(e.Age)/float64(e.TTL))
}

// Effects holds active visuals and the camera shake timer.
type Effects struct {
	items []Effect
	shake time.Duration
	rng   *rand.Rand
}

// NewEffects creates an empty effect list. rng is used only for particle
// directions.
func NewEffects(rng *rand.Rand) *Effects {
	return &Effects{rng: rng}
}

// Burst emits particles flying outward from pos.
func (fx *Effects) Burst(pos mgl64.Vec2) {
	for i := 0; i < burstParticles; i++ {
		angle := fx.rng.Float64() * 2 * math.Pi
		speed := burstMinSpeed + fx.rng.Float64()*(burstMaxSpeed-burstMinSpeed)
		fx.items = append(fx.items, Effect{
			Kind: EffectParticle,
			Pos:  pos,
			Vel:  physics.FromAngle(angle, speed),
			TTL:  burstTTL,
		})
	}
}

// PegFlash highlights a peg that was hit.
func (fx *Effects) PegFlash(pos mgl64.Vec2) {
	fx.add(EffectPegFlash, pos, pegFlashTTL)
}

// CatchFlash highlights the basket after a catch.
func (fx *Effects) CatchFlash(pos mgl64.Vec2) {
	fx.add(EffectCatchFlash, pos, catchFlashTTL)
}

// Explosion marks a bomb landing in the basket and shakes the camera.
func (fx *Effects) Explosion(pos mgl64.Vec2) {
	fx.add(EffectExplosion, pos, bombExplosionTTL)
	fx.shake = bombShakeTTL
}

// BigExplosion marks game over.
func (fx *Effects) BigExplosion(pos mgl64.Vec2) {
	fx.add(EffectBigExplosion, pos, gameOverBlastTTL)
}

func (fx *Effects) add(kind EffectKind, pos mgl64.Vec2, ttl time.Duration) {
	fx.items = append(fx.items, Effect{Kind: kind, Pos: pos, TTL: ttl})
}

// Update ages every effect by dt and drops the expired ones.
func (fx *Effects) Update(dt time.Duration) {
	secs := dt.Seconds()
	live := fx.items[:0]
	for _, e := range fx.items {
		e.Age += dt
		if e.Age >= e.TTL {
			continue
		}
		e.Pos = e.Pos.Add(e.Vel.Mul(secs))
		live = append(live, e)
	}
	fx.items = live

	fx.shake -= dt
	if fx.shake < 0 {
		fx.shake = 0
	}
}

// Items returns the active effects. The slice is owned by Effects.
func (fx *Effects) Items() []Effect {
	return fx.items
}

// Shaking reports whether the camera shake is running.
func (fx *Effects) Shaking() bool {
	return fx.shake > 0
}

// ShakeOffset returns a one-cell jitter that alternates every 33ms while the
// shake is running.
func (fx *Effects) ShakeOffset() (int, int) {
	if fx.shake <= 0 {
		return 0, 0
	}
	if (fx.shake/(33*time.Millisecond))%2 == 0 {
		return 1, 0
	}
	return -1, 0
}

// Clear removes every effect and stops the shake.
func (fx *Effects) Clear() {
	fx.items = fx.items[:0]
	fx.shake = 0
}
