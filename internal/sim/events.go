package sim

// EventKind discriminates outbox event types.
type EventKind int

const (
	// EventSpawn is emitted when an obstacle enters the simulation.
	EventSpawn EventKind = iota
	// EventPickupSpawn is emitted when a pickup enters the simulation.
	EventPickupSpawn
	// EventExplosion is emitted for every destruction that should flash.
	EventExplosion
	// EventPickupCollected is emitted when the player collects a pickup.
	EventPickupCollected
	// EventDestroy is emitted when an entity leaves the simulation without
	// an explosion (scrolled off-screen).
	EventDestroy
)

// Event is one record in the field's outbox. The field never invokes
// callbacks mid-update; it appends events and the run machine drains them
// once per frame, giving a single deterministic ordering point.
type Event struct {
	Kind     EventKind
	Obstacle ObstacleKind
	Pickup   PickupKind
	Lane     int
	X        float64
	Scale    float64
}

// DrainEvents returns all events accumulated since the last drain and
// clears the outbox. Call exactly once per frame.
func (f *Field) DrainEvents() []Event {
	ev := f.events
	f.events = nil
	return ev
}

func (f *Field) emit(e Event) {
	f.events = append(f.events, e)
}
