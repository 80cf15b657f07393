package sim

import (
	"github.com/vovakirdan/moto-rush/internal/core"
)

// PlayerState is the per-frame snapshot the run machine hands to the
// collision queries. LaneF is the fractional lane position (the player
// animates between lanes); SpeedRatio is current speed over base speed.
type PlayerState struct {
	LaneF      float64
	Lane       int
	SpeedRatio float64
	Invincible bool
}

// Outcome reports what touched the player this frame.
type Outcome struct {
	Crashed     bool
	SlowOverlap bool
}

// playerRect returns the player's world-space hit box at the fractional
// lane position.
func (f *Field) playerRect(ps PlayerState) core.Rect {
	y := (ps.LaneF + 0.5) * f.cfg.Road.LaneHeight
	return core.NewRect(f.cfg.Player.X, y, f.cfg.Player.Width, f.cfg.Player.Height)
}

// PlayerCollision tests the player against every live obstacle. Hazards
// only flag a slow overlap; barriers and vehicles crash the player, unless
// invincible, in which case they are destroyed outright.
func (f *Field) PlayerCollision(ps PlayerState) Outcome {
	var out Outcome
	pr := f.playerRect(ps)
	f.obstacles.Each(func(o *Obstacle) {
		if o.Dying {
			return
		}
		if !pr.Intersects(f.collisionRect(o)) {
			return
		}
		if o.Kind == Hazard {
			out.SlowOverlap = true
			return
		}
		if ps.Invincible {
			f.destroyObstacle(o, true)
			return
		}
		out.Crashed = true
	})
	return out
}

// slashRect returns the melee arc's hit box in front of the player. The
// reach widens with speed so a fast player is not punished by the shorter
// reaction window.
func (f *Field) slashRect(ps PlayerState) core.Rect {
	c := f.cfg.Combat
	over := core.ClampF(ps.SpeedRatio-1, 0, 1)
	w := c.SlashWidth + c.SlashSpeedWiden*over
	off := c.SlashOffset + c.SlashSpeedReach*over
	y := (ps.LaneF + 0.5) * f.cfg.Road.LaneHeight
	return core.NewRect(f.cfg.Player.X+off+w/2, y, w, c.SlashHeight)
}

// SlashHit destroys the nearest barrier inside the slash arc and returns
// its X position. Only barriers in the player's own integer lane are
// candidates; vehicles and hazards shrug a slash off.
func (f *Field) SlashHit(ps PlayerState) (float64, bool) {
	sr := f.slashRect(ps)
	var best *Obstacle
	f.obstacles.Each(func(o *Obstacle) {
		if o.Kind != Barrier || o.Dying || o.Lane != ps.Lane {
			return
		}
		r := f.obstacleRect(o)
		if r.Left() >= sr.Right() || r.Right() <= sr.Left() {
			return
		}
		if best == nil || o.X < best.X {
			best = o
		}
	})
	if best == nil {
		return 0, false
	}
	x := best.X
	f.destroyObstacle(best, true)
	return x, true
}

// Fire launches a projectile from the player's position, locked to the
// player's current lane. Ammo accounting stays in the run machine.
func (f *Field) Fire(ps PlayerState) {
	p := f.projectiles.Acquire()
	*p = Projectile{
		Active: true,
		Lane:   ps.Lane,
		X:      f.cfg.Player.X,
		FiredX: f.cfg.Player.X,
	}
}

// CollectPickups gathers every pickup whose circle overlaps the player's
// hit box and returns their kinds in pool order.
func (f *Field) CollectPickups(ps PlayerState) []PickupKind {
	pr := f.playerRect(ps)
	var got []PickupKind
	f.pickups.Each(func(p *Pickup) {
		if !pr.CircleIntersects(p.X, f.laneCenterY(p.Lane), p.Radius) {
			return
		}
		p.Active = false
		got = append(got, p.Kind)
		f.emit(Event{Kind: EventPickupCollected, Pickup: p.Kind, Lane: p.Lane, X: p.X, Scale: 1})
	})
	return got
}

// Threat describes the nearest upcoming obstacle in a lane.
type Threat struct {
	Incoming bool
	Kind     ObstacleKind
	ETA      float64 // Seconds until the leading edge enters the frame
}

// LaneThreats returns, per lane, the soonest obstacle that has not yet
// entered the visible frame. The HUD uses it to draw warning markers.
func (f *Field) LaneThreats() []Threat {
	threats := make([]Threat, f.cfg.Road.LaneCount)
	width := f.cfg.Road.Width
	f.obstacles.Each(func(o *Obstacle) {
		if o.Dying || o.Lane < 0 || o.Lane >= len(threats) {
			return
		}
		lead := o.X - o.W/2
		if lead < width {
			return
		}
		speed := f.scrollSpeed(o.Kind)
		if speed <= 0 {
			return
		}
		eta := (lead - width) / speed
		t := &threats[o.Lane]
		if !t.Incoming || eta < t.ETA {
			t.Incoming = true
			t.Kind = o.Kind
			t.ETA = eta
		}
	})
	return threats
}

// Shockwave destroys every on-screen barrier and vehicle and returns the
// number destroyed. Fired when rage expires; hazards ride it out.
func (f *Field) Shockwave() int {
	width := f.cfg.Road.Width
	n := 0
	f.obstacles.Each(func(o *Obstacle) {
		if o.Kind == Hazard || o.Dying {
			return
		}
		if o.X-o.W/2 >= width {
			return
		}
		f.destroyObstacle(o, true)
		n++
	})
	return n
}
