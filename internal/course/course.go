// Package course loads rhythm-mode course files and schedules their events
// against the simulation so every event resolves on its beat. Course files
// are produced offline by the track generator; the loader validates them
// strictly and never repairs bad data.
package course

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// EventType names the gameplay effect of one course event.
type EventType string

const (
	// EventCrash spawns a destructible barrier.
	EventCrash EventType = "crash"
	// EventCar spawns an oncoming vehicle.
	EventCar EventType = "car"
	// EventSlow spawns a hazard patch.
	EventSlow EventType = "slow"
	// EventPickupAmmo spawns an ammo pickup.
	EventPickupAmmo EventType = "pickup_ammo"
	// EventPickupShield spawns a shield pickup.
	EventPickupShield EventType = "pickup_shield"
	// EventCarCrashBeat spawns a vehicle timed by an explicit lead so its
	// collision with a barrier lands on the beat.
	EventCarCrashBeat EventType = "car_crash_beat"
	// EventGuardian spawns a barrier guarding a pickup.
	EventGuardian EventType = "guardian"
	// EventEnemyCar spawns a vehicle timed to reach the mid-track sweet
	// spot on the beat.
	EventEnemyCar EventType = "enemy_car"
)

// knownTypes is the closed set accepted by the loader.
var knownTypes = map[EventType]bool{
	EventCrash:        true,
	EventCar:          true,
	EventSlow:         true,
	EventPickupAmmo:   true,
	EventPickupShield: true,
	EventCarCrashBeat: true,
	EventGuardian:     true,
	EventEnemyCar:     true,
}

// Event is one beat-aligned entry in a course. T is the beat time in
// seconds from playback start; Lead, when non-zero, overrides the computed
// spawn lead.
type Event struct {
	T    float64   `json:"t"`
	Lane int       `json:"lane"`
	Type EventType `json:"type"`
	Lead float64   `json:"lead,omitempty"`
}

// Course is an immutable beat map plus its metadata, matching the track
// generator's output format.
type Course struct {
	TrackID    string  `json:"track_id"`
	Name       string  `json:"name"`
	Difficulty string  `json:"difficulty"`
	DurationS  float64 `json:"duration_s"`
	BPM        float64 `json:"bpm"`
	Version    int     `json:"version"`
	Seed       int64   `json:"seed"`
	Events     []Event `json:"events"`
}

// Load reads and validates a course file.
func Load(path string, laneCount int) (*Course, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("course: cannot open %s: %w", path, err)
	}
	defer f.Close()

	c, err := Parse(f, laneCount)
	if err != nil {
		return nil, fmt.Errorf("course: %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a course from a reader. laneCount bounds the
// valid lane range. Any authoring error fails the whole course; a clamped
// or skipped event would silently desync the beat map from its audio.
func Parse(r io.Reader, laneCount int) (*Course, error) {
	var c Course
	dec := json.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("cannot decode course: %w", err)
	}

	if c.DurationS <= 0 {
		return nil, fmt.Errorf("invalid duration_s %v", c.DurationS)
	}
	if c.BPM <= 0 {
		return nil, fmt.Errorf("invalid bpm %v", c.BPM)
	}
	if len(c.Events) == 0 {
		return nil, fmt.Errorf("course has no events")
	}

	prev := 0.0
	for i, ev := range c.Events {
		if !knownTypes[ev.Type] {
			return nil, fmt.Errorf("event %d: unknown type %q", i, ev.Type)
		}
		if ev.Lane < 0 || ev.Lane >= laneCount {
			return nil, fmt.Errorf("event %d: lane %d out of range [0, %d)", i, ev.Lane, laneCount)
		}
		if ev.T < 0 {
			return nil, fmt.Errorf("event %d: negative time %v", i, ev.T)
		}
		if ev.T < prev {
			return nil, fmt.Errorf("event %d: time %v before previous %v", i, ev.T, prev)
		}
		if ev.Lead < 0 {
			return nil, fmt.Errorf("event %d: negative lead %v", i, ev.Lead)
		}
		prev = ev.T
	}
	return &c, nil
}
