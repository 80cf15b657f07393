package sim

import (
	"github.com/vovakirdan/moto-rush/internal/config"
	"github.com/vovakirdan/moto-rush/internal/core"
	"github.com/vovakirdan/moto-rush/internal/rng"
)

// Field owns every pooled entity and advances the simulation one tick at a
// time. The run machine calls Update(dt) once per frame while playing and
// reads collision queries; nothing else mutates pool entries.
type Field struct {
	cfg config.MotoConfig
	src *rng.Source

	skins          *rng.Deck[int]
	hazardVariants *rng.HalfDeck[int]

	obstacles   *Pool[Obstacle]
	pickups     *Pool[Pickup]
	projectiles *Pool[Projectile]
	explosions  *Pool[Explosion]

	events []Event

	elapsed    float64
	spawnTimer float64
	grace      float64
	speedMult  float64
	raging     bool
	autoSpawn  bool
	killZone   bool
}

// NewField creates a field with the given tuning and seed.
func NewField(cfg config.MotoConfig, seed int64) *Field {
	f := &Field{
		cfg: cfg,
		src: rng.New(seed),
		obstacles: NewPool(16,
			func(o *Obstacle) bool { return o.Active },
			func() *Obstacle { return &Obstacle{} }),
		pickups: NewPool(8,
			func(p *Pickup) bool { return p.Active },
			func() *Pickup { return &Pickup{} }),
		projectiles: NewPool(8,
			func(p *Projectile) bool { return p.Active },
			func() *Projectile { return &Projectile{} }),
		explosions: NewPool(8,
			func(e *Explosion) bool { return e.Active },
			func() *Explosion { return &Explosion{} }),
	}
	f.Reset(seed)
	return f
}

// Reset re-arms the field for a fresh run: deactivates every entity,
// reseeds the random source and rebuilds the variety decks so the spawn
// sequence restarts from the seed.
func (f *Field) Reset(seed int64) {
	for _, pool := range []func(){
		func() { f.obstacles.Each(func(o *Obstacle) { o.Active = false }) },
		func() { f.pickups.Each(func(p *Pickup) { p.Active = false }) },
		func() { f.projectiles.Each(func(p *Projectile) { p.Active = false }) },
		func() { f.explosions.Each(func(e *Explosion) { e.Active = false }) },
	} {
		pool()
	}

	f.src.Reset(seed)

	// Deck construction order is fixed: both decks draw from the shared
	// source, so reordering these lines would change the weekly sequence.
	f.skins = rng.NewDeck(f.src, variantIndices(f.cfg.Obstacles.SkinCount))
	f.hazardVariants = rng.NewHalfDeck(f.src, variantIndices(f.cfg.Obstacles.HazardSizes))

	f.events = nil
	f.elapsed = 0
	f.spawnTimer = f.cfg.Spawning.IntervalMax
	f.grace = f.cfg.Spawning.GraceDuration
	f.speedMult = 1.0
	f.raging = false
	f.autoSpawn = true
	f.killZone = false
}

func variantIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// SetAutoSpawn toggles the timer-driven wave spawner. Rhythm mode disables
// it; the course scheduler drives spawns instead.
func (f *Field) SetAutoSpawn(on bool) {
	f.autoSpawn = on
}

// SetKillZone toggles forced resolution at the kill-zone threshold.
func (f *Field) SetKillZone(on bool) {
	f.killZone = on
}

// SetRage switches spawn type weighting to the fixed rage table.
func (f *Field) SetRage(on bool) {
	f.raging = on
}

// SetSpeedMultiplier scales all scroll speeds; the run machine feeds the
// eased rage multiplier through here so the field never sees a step change.
func (f *Field) SetSpeedMultiplier(m float64) {
	f.speedMult = m
}

// Elapsed returns seconds simulated since the last reset.
func (f *Field) Elapsed() float64 {
	return f.elapsed
}

// Difficulty returns the current difficulty level in [0, 1], ramping from
// the configured initial level over the ramp duration.
func (f *Field) Difficulty() float64 {
	d := f.cfg.Difficulty
	if d.RampSeconds <= 0 {
		return core.ClampF(d.InitialLevel, 0, 1)
	}
	t := core.ClampF(f.elapsed/d.RampSeconds, 0, 1)
	return core.ClampF(d.InitialLevel+t*(1-d.InitialLevel), 0, 1)
}

// Obstacles exposes the obstacle pool for rendering.
func (f *Field) Obstacles() *Pool[Obstacle] { return f.obstacles }

// Pickups exposes the pickup pool for rendering.
func (f *Field) Pickups() *Pool[Pickup] { return f.pickups }

// Projectiles exposes the projectile pool for rendering.
func (f *Field) Projectiles() *Pool[Projectile] { return f.projectiles }

// Explosions exposes the explosion pool for rendering.
func (f *Field) Explosions() *Pool[Explosion] { return f.explosions }

// Update advances the simulation by dt seconds: scroll, projectile flight,
// linger timers, vehicle-vs-barrier resolution, kill zone, recycling and
// the wave spawn timer, in that fixed order.
func (f *Field) Update(dt float64) {
	f.elapsed += dt
	if f.grace > 0 {
		f.grace -= dt
	}

	f.scroll(dt)
	f.updateProjectiles(dt)
	f.updateTimers(dt)
	f.resolveVehicleBarrier()
	if f.killZone {
		f.applyKillZone()
	}
	f.recycle()

	if f.autoSpawn && f.grace <= 0 {
		f.spawnTimer -= dt
		if f.spawnTimer <= 0 {
			f.SpawnWave()
			f.spawnTimer += f.waveInterval()
		}
	}
}

// waveInterval shrinks from IntervalMax to IntervalMin as difficulty rises.
func (f *Field) waveInterval() float64 {
	return core.Lerp(f.cfg.Spawning.IntervalMax, f.cfg.Spawning.IntervalMin, f.Difficulty())
}

// scrollSpeed returns the effective leftward speed for a kind. Vehicles
// drive forward, so they approach slower than the road.
func (f *Field) scrollSpeed(kind ObstacleKind) float64 {
	if kind == Vehicle {
		return f.cfg.Road.VehicleSpeed() * f.speedMult
	}
	return f.cfg.Road.BaseSpeed * f.speedMult
}

func (f *Field) scroll(dt float64) {
	f.obstacles.Each(func(o *Obstacle) {
		o.X -= f.scrollSpeed(o.Kind) * dt
	})
	f.pickups.Each(func(p *Pickup) {
		p.X -= f.cfg.Road.BaseSpeed * f.speedMult * dt
	})
}

func (f *Field) updateProjectiles(dt float64) {
	c := f.cfg.Combat
	f.projectiles.Each(func(p *Projectile) {
		p.X += (c.ProjectileSpeed + c.ProjectileAccel*p.Age) * dt
		p.Age += dt

		// Lane-locked resolution: hit the nearest obstacle in the
		// projectile's lane whose center it has reached or passed,
		// picking the smallest overshoot. Projectiles are fast enough
		// to tunnel through thin obstacles in one frame, so an overlap
		// test would miss.
		var best *Obstacle
		bestOver := 0.0
		f.obstacles.Each(func(o *Obstacle) {
			if o.Dying || o.Lane != p.Lane {
				return
			}
			if o.X < p.FiredX || o.X > p.X {
				return
			}
			over := p.X - o.X
			if best == nil || over < bestOver {
				best = o
				bestOver = over
			}
		})
		if best != nil {
			f.destroyObstacle(best, true)
			p.Active = false
			return
		}
		if p.X > f.cfg.Road.Width+f.cfg.Spawning.MarginMin {
			p.Active = false
		}
	})
}

func (f *Field) updateTimers(dt float64) {
	f.obstacles.Each(func(o *Obstacle) {
		if o.Dying {
			o.DyingTimer -= dt
			if o.DyingTimer <= 0 {
				o.Active = false
			}
		}
	})
	f.explosions.Each(func(e *Explosion) {
		e.Timer -= dt
		if e.Timer <= 0 {
			e.Active = false
		}
	})
}

// resolveVehicleBarrier destroys a Vehicle and a Barrier occupying
// overlapping space in the same lane, exactly once per overlap. Pairs that
// are both fully off-screen are left alone: resolving them would surface
// as an unexplained explosion once they scrolled into view.
func (f *Field) resolveVehicleBarrier() {
	width := f.cfg.Road.Width
	f.obstacles.Each(func(v *Obstacle) {
		if v.Kind != Vehicle || v.Dying {
			return
		}
		f.obstacles.Each(func(b *Obstacle) {
			if b.Kind != Barrier || b.Lane != v.Lane || v.Dying {
				return
			}
			if v.X-v.W/2 >= width && b.X-b.W/2 >= width {
				return // Both invisible
			}
			if !f.obstacleRect(v).Intersects(f.obstacleRect(b)) {
				return
			}
			// Barrier deactivates immediately so this pair can never
			// resolve twice; the vehicle lingers for its death animation.
			b.Active = false
			v.Dying = true
			v.DyingTimer = f.cfg.Obstacles.VehicleLinger
			f.spawnExplosion(v.Lane, (v.X+b.X)/2)
		})
	})
}

// applyKillZone forcibly resolves any destructible whose leading edge
// crossed the kill-zone threshold, guaranteeing every barrier and vehicle
// ends in a visible explosion even if the player never interacts with it.
// Hazards are indestructible; they scroll off and recycle on their own.
func (f *Field) applyKillZone() {
	kz := f.cfg.Rhythm.KillZoneX
	f.obstacles.Each(func(o *Obstacle) {
		if o.Dying || o.Kind == Hazard {
			return
		}
		if o.X-o.W/2 <= kz {
			f.destroyObstacle(o, true)
		}
	})
}

func (f *Field) recycle() {
	f.obstacles.Each(func(o *Obstacle) {
		if o.X+o.W/2 < 0 {
			o.Active = false
			f.emit(Event{Kind: EventDestroy, Obstacle: o.Kind, Lane: o.Lane, X: o.X})
		}
	})
	f.pickups.Each(func(p *Pickup) {
		if p.X+p.Radius < 0 {
			p.Active = false
		}
	})
}

// spawnMargin returns how far past the right edge waves spawn. The margin
// covers the slowest-arriving type: vehicles approach slower, so for an
// equivalent warning time they need proportionally more lead distance.
func (f *Field) spawnMargin() float64 {
	s := f.cfg.Spawning
	road := f.cfg.Road.BaseSpeed * s.WarningDuration
	vehicle := f.cfg.Road.VehicleSpeed() * (s.WarningDuration + s.VehicleExtra)
	m := s.MarginMin
	if road > m {
		m = road
	}
	if vehicle > m {
		m = vehicle
	}
	return m
}

// SpawnWave spawns one timed batch: 1 + floor(difficulty*(maxPerWave-1))
// obstacles in distinct lanes, each with a difficulty-weighted type roll.
func (f *Field) SpawnWave() {
	diff := f.Difficulty()
	count := 1 + int(diff*float64(f.cfg.Spawning.MaxPerWave-1))
	if count > f.cfg.Road.LaneCount {
		count = f.cfg.Road.LaneCount
	}

	lanes := variantIndices(f.cfg.Road.LaneCount)
	f.src.Shuffle(len(lanes), func(i, j int) {
		lanes[i], lanes[j] = lanes[j], lanes[i]
	})

	x := f.cfg.Road.Width + f.spawnMargin()
	for _, lane := range lanes[:count] {
		kind := f.rollKind(diff)

		// A barrier behind an invisible vehicle would be annihilated
		// off-screen or force an unavoidable crash; substitute a hazard.
		if kind == Barrier && f.laneHasHiddenVehicle(lane) {
			kind = Hazard
		}

		o := f.spawnObstacle(kind, lane, x, false, false)
		if kind == Barrier && f.src.Chance(f.cfg.Pickups.ChanceBehindBarrier) {
			pk := PickupShield
			if f.src.Chance(f.cfg.Pickups.AmmoShare) {
				pk = PickupAmmo
			}
			f.spawnPickup(pk, lane, o.X+f.cfg.Pickups.BehindOffset)
		}
	}
}

// rollKind picks Barrier/Vehicle/Hazard with weights lerped by difficulty,
// or the fixed rage table while rage is active.
func (f *Field) rollKind(diff float64) ObstacleKind {
	o := f.cfg.Obstacles
	var wb, wv, wh float64
	if f.raging {
		wb, wv, wh = o.RageBarrierWeight, o.RageVehicleWeight, o.RageHazardWeight
	} else {
		wb = core.Lerp(o.BarrierWeightLow, o.BarrierWeightHigh, diff)
		wv = core.Lerp(o.VehicleWeightLow, o.VehicleWeightHigh, diff)
		wh = core.Lerp(o.HazardWeightLow, o.HazardWeightHigh, diff)
	}

	roll := f.src.Float64() * (wb + wv + wh)
	switch {
	case roll < wb:
		return Barrier
	case roll < wb+wv:
		return Vehicle
	default:
		return Hazard
	}
}

// laneHasHiddenVehicle reports whether the lane contains a vehicle that has
// not yet entered the visible frame.
func (f *Field) laneHasHiddenVehicle(lane int) bool {
	found := false
	width := f.cfg.Road.Width
	f.obstacles.Each(func(o *Obstacle) {
		if o.Kind == Vehicle && !o.Dying && o.Lane == lane && o.X-o.W/2 >= width {
			found = true
		}
	})
	return found
}

func (f *Field) spawnObstacle(kind ObstacleKind, lane int, x float64, guardian, enemy bool) *Obstacle {
	o := f.obstacles.Acquire()
	*o = Obstacle{
		Active:   true,
		Kind:     kind,
		Lane:     lane,
		X:        x,
		Guardian: guardian,
		Enemy:    enemy,
	}

	oc := f.cfg.Obstacles
	switch kind {
	case Barrier:
		o.W, o.H = oc.BarrierWidth, oc.BarrierHeight
		o.Skin = f.skins.Deal()
	case Vehicle:
		o.W, o.H = oc.VehicleWidth, oc.VehicleHeight
	case Hazard:
		o.Variant = f.hazardVariants.Deal()
		o.W, o.H = hazardDims(oc, o.Variant)
	}

	f.emit(Event{Kind: EventSpawn, Obstacle: kind, Lane: lane, X: x, Scale: 1})
	return o
}

// hazardDims derives a hazard's footprint from its variety deck variant:
// even variants are wide and flat, odd variants are rotated upright, and
// the scale grows with the variant index.
func hazardDims(oc config.ObstacleConfig, variant int) (w, h float64) {
	scale := 0.75 + 0.15*float64(variant)
	w = oc.HazardWidth * scale
	h = oc.HazardHeight * scale
	if variant%2 == 1 {
		w, h = h, w
	}
	return w, h
}

func (f *Field) spawnPickup(kind PickupKind, lane int, x float64) {
	p := f.pickups.Acquire()
	*p = Pickup{
		Active: true,
		Kind:   kind,
		Lane:   lane,
		X:      x,
		Radius: f.cfg.Pickups.Radius,
	}
	f.emit(Event{Kind: EventPickupSpawn, Pickup: kind, Lane: lane, X: x, Scale: 1})
}

func (f *Field) spawnExplosion(lane int, x float64) {
	e := f.explosions.Acquire()
	*e = Explosion{
		Active: true,
		Lane:   lane,
		X:      x,
		Timer:  0.3,
	}
	f.emit(Event{Kind: EventExplosion, Lane: lane, X: x, Scale: 1})
}

// destroyObstacle removes an obstacle from play. Vehicles enter the dying
// linger so their death animation can play; everything else deactivates
// immediately.
func (f *Field) destroyObstacle(o *Obstacle, explode bool) {
	if o.Kind == Vehicle {
		o.Dying = true
		o.DyingTimer = f.cfg.Obstacles.VehicleLinger
	} else {
		o.Active = false
	}
	if explode {
		f.spawnExplosion(o.Lane, o.X)
	}
}

// SpawnCourseObstacle spawns a scheduler-driven obstacle at the rhythm
// spawn position. Guardian and enemy flags feed proximity scoring.
func (f *Field) SpawnCourseObstacle(kind ObstacleKind, lane int, guardian, enemy bool) {
	x := f.cfg.Road.Width + f.cfg.Rhythm.SpawnMargin
	f.spawnObstacle(kind, lane, x, guardian, enemy)
}

// SpawnCoursePickup spawns a scheduler-driven pickup at the rhythm spawn
// position.
func (f *Field) SpawnCoursePickup(kind PickupKind, lane int) {
	f.spawnPickup(kind, lane, f.cfg.Road.Width+f.cfg.Rhythm.SpawnMargin)
}

// laneCenterY returns the vertical center of a lane in world units.
func (f *Field) laneCenterY(lane int) float64 {
	return (float64(lane) + 0.5) * f.cfg.Road.LaneHeight
}

// obstacleRect returns the full visual footprint of an obstacle.
func (f *Field) obstacleRect(o *Obstacle) core.Rect {
	return core.NewRect(o.X, f.laneCenterY(o.Lane), o.W, o.H)
}

// collisionRect returns the footprint used against the player. Vehicles
// use a shrunk, offset hit box because the sprite is larger than the body.
func (f *Field) collisionRect(o *Obstacle) core.Rect {
	r := f.obstacleRect(o)
	if o.Kind == Vehicle {
		oc := f.cfg.Obstacles
		r = r.Shrink(oc.VehicleShrinkW, oc.VehicleShrinkH).Offset(oc.VehicleOffsetX, 0)
	}
	return r
}
