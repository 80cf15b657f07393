package sim

// ObstacleKind discriminates the three obstacle types for fast dispatch in
// collision code. Each kind has explicit fields on Obstacle rather than a
// dynamic property bag.
type ObstacleKind int

const (
	// Barrier is a destructible hazard fixed relative to the road.
	Barrier ObstacleKind = iota
	// Vehicle scrolls slower than the road, has a shrunk hit box and can
	// itself collide with a Barrier.
	Vehicle
	// Hazard slows the player on overlap and is never destroyed.
	Hazard
)

// String returns a human-readable name for the kind.
func (k ObstacleKind) String() string {
	switch k {
	case Barrier:
		return "barrier"
	case Vehicle:
		return "vehicle"
	case Hazard:
		return "hazard"
	default:
		return "unknown"
	}
}

// Obstacle is a pooled simulation entity. Lane and kind are fixed at spawn;
// X scrolls left every frame. Destroyed vehicles linger briefly with Dying
// set so the death animation can play before the slot is recycled.
type Obstacle struct {
	Active     bool
	Kind       ObstacleKind
	Lane       int
	X          float64 // Center X in world units
	W, H       float64 // Display dimensions
	Skin       int     // Barrier skin variant
	Variant    int     // Hazard size/orientation variant
	Dying      bool
	DyingTimer float64
	Guardian   bool // Rhythm mode: guards a pickup, scored by proximity
	Enemy      bool // Rhythm mode: targets the mid-track sweet spot
}

// PickupKind discriminates pickup types.
type PickupKind int

const (
	// PickupAmmo grants projectile ammunition.
	PickupAmmo PickupKind = iota
	// PickupShield absorbs one crash.
	PickupShield
)

// String returns a human-readable name for the kind.
func (k PickupKind) String() string {
	if k == PickupShield {
		return "shield"
	}
	return "ammo"
}

// Pickup is a collectible spawned behind barriers or by course events.
type Pickup struct {
	Active bool
	Kind   PickupKind
	Lane   int
	X      float64
	Radius float64
}

// Projectile is a player-fired shot. Its lane is locked at fire time and
// never re-evaluated; age drives a speed ramp. FiredX records where it
// started so it can never resolve against obstacles behind the player.
type Projectile struct {
	Active bool
	Lane   int
	X      float64
	FiredX float64
	Age    float64
}

// Explosion is a short-lived visual marker emitted on every destruction.
type Explosion struct {
	Active bool
	Lane   int
	X      float64
	Timer  float64
}
