package course

import (
	"github.com/vovakirdan/moto-rush/internal/config"
	"github.com/vovakirdan/moto-rush/internal/sim"
)

// Scheduler walks a course's events against a playback clock and spawns
// each one early enough that it resolves at the kill zone (or the sweet
// spot, for enemy cars) exactly on its beat. It holds a cursor into the
// event slice; every Update drains all due events in authored order.
type Scheduler struct {
	course *Course
	cfg    config.MotoConfig
	next   int
	leads  []float64
}

// NewScheduler precomputes per-event spawn leads for the given tuning.
func NewScheduler(c *Course, cfg config.MotoConfig) *Scheduler {
	s := &Scheduler{
		course: c,
		cfg:    cfg,
		leads:  make([]float64, len(c.Events)),
	}
	for i, ev := range c.Events {
		s.leads[i] = s.lead(ev)
	}
	return s
}

// lead returns how many seconds before its beat an event must spawn.
// Explicit authored leads are taken verbatim; otherwise lead is travel
// time from the spawn position to the event's target at its scroll speed.
func (s *Scheduler) lead(ev Event) float64 {
	if ev.Lead > 0 {
		return ev.Lead
	}

	spawnX := s.cfg.Road.Width + s.cfg.Rhythm.SpawnMargin
	targetX := s.cfg.Rhythm.KillZoneX
	speed := s.cfg.Road.BaseSpeed

	switch ev.Type {
	case EventCar, EventCarCrashBeat:
		speed = s.cfg.Road.VehicleSpeed()
	case EventEnemyCar:
		speed = s.cfg.Road.VehicleSpeed()
		targetX = s.cfg.Rhythm.SweetSpotX
	}
	return (spawnX - targetX) / speed
}

// Update spawns every event whose spawn moment has arrived. playbackSec is
// the current playback position; events fire when their beat minus lead is
// at or before it. Events are never skipped or reordered: a long frame
// drains everything due in one call.
func (s *Scheduler) Update(playbackSec float64, f *sim.Field) {
	for s.next < len(s.course.Events) {
		ev := s.course.Events[s.next]
		if ev.T-s.leads[s.next] > playbackSec {
			return
		}
		s.spawn(ev, f)
		s.next++
	}
}

func (s *Scheduler) spawn(ev Event, f *sim.Field) {
	switch ev.Type {
	case EventCrash:
		f.SpawnCourseObstacle(sim.Barrier, ev.Lane, false, false)
	case EventCar, EventCarCrashBeat:
		f.SpawnCourseObstacle(sim.Vehicle, ev.Lane, false, false)
	case EventSlow:
		f.SpawnCourseObstacle(sim.Hazard, ev.Lane, false, false)
	case EventGuardian:
		f.SpawnCourseObstacle(sim.Barrier, ev.Lane, true, false)
	case EventEnemyCar:
		f.SpawnCourseObstacle(sim.Vehicle, ev.Lane, false, true)
	case EventPickupAmmo:
		f.SpawnCoursePickup(sim.PickupAmmo, ev.Lane)
	case EventPickupShield:
		f.SpawnCoursePickup(sim.PickupShield, ev.Lane)
	}
}

// Done reports whether every event has been spawned.
func (s *Scheduler) Done() bool {
	return s.next >= len(s.course.Events)
}

// Progress returns spawned and total event counts.
func (s *Scheduler) Progress() (spawned, total int) {
	return s.next, len(s.course.Events)
}

// Reset rewinds the cursor for a restart.
func (s *Scheduler) Reset() {
	s.next = 0
}
