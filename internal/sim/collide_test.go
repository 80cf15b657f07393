package sim

import (
	"testing"
)

func playerAt(lane int) PlayerState {
	return PlayerState{LaneF: float64(lane), Lane: lane, SpeedRatio: 1}
}

func TestPlayerCrashOnBarrier(t *testing.T) {
	f := testField(t, 1)
	f.SetAutoSpawn(false)

	f.spawnObstacle(Barrier, 1, f.cfg.Player.X, false, false)

	out := f.PlayerCollision(playerAt(1))
	if !out.Crashed {
		t.Error("overlapping barrier should crash the player")
	}

	if out := f.PlayerCollision(playerAt(2)); out.Crashed {
		t.Error("barrier in another lane should not crash the player")
	}
}

func TestHazardSlowsWithoutCrash(t *testing.T) {
	f := testField(t, 1)
	f.SetAutoSpawn(false)

	h := f.spawnObstacle(Hazard, 0, f.cfg.Player.X, false, false)

	out := f.PlayerCollision(playerAt(0))
	if out.Crashed {
		t.Error("hazard should never crash the player")
	}
	if !out.SlowOverlap {
		t.Error("hazard overlap should flag a slowdown")
	}
	if !h.Active {
		t.Error("hazard should survive player contact")
	}
}

func TestInvincibleDestroysOnContact(t *testing.T) {
	f := testField(t, 1)
	f.SetAutoSpawn(false)

	b := f.spawnObstacle(Barrier, 1, f.cfg.Player.X, false, false)
	f.DrainEvents()

	ps := playerAt(1)
	ps.Invincible = true
	out := f.PlayerCollision(ps)

	if out.Crashed {
		t.Error("invincible player should not crash")
	}
	if b.Active {
		t.Error("invincible contact should destroy the barrier")
	}
	explosions := 0
	for _, ev := range f.DrainEvents() {
		if ev.Kind == EventExplosion {
			explosions++
		}
	}
	if explosions != 1 {
		t.Errorf("got %d explosions, want 1", explosions)
	}
}

func TestVehicleHitBoxShrunk(t *testing.T) {
	f := testField(t, 1)
	f.SetAutoSpawn(false)

	// Park the vehicle so only its sprite fringe, not the shrunk hit box,
	// reaches the player.
	oc := f.cfg.Obstacles
	playerRight := f.cfg.Player.X + f.cfg.Player.Width/2
	hitBoxHalf := (oc.VehicleWidth - oc.VehicleShrinkW) / 2
	x := playerRight + hitBoxHalf - oc.VehicleOffsetX + 1
	v := f.spawnObstacle(Vehicle, 0, x, false, false)

	if f.playerRect(playerAt(0)).Right() <= f.obstacleRect(v).Left() {
		t.Fatal("test setup: sprite should overlap the player")
	}
	if out := f.PlayerCollision(playerAt(0)); out.Crashed {
		t.Error("sprite fringe contact should not crash; hit box is shrunk")
	}
}

func TestSlashDestroysNearestBarrierOnly(t *testing.T) {
	f := testField(t, 1)
	f.SetAutoSpawn(false)

	near := f.spawnObstacle(Barrier, 1, f.cfg.Player.X+f.cfg.Combat.SlashOffset+40, false, false)
	far := f.spawnObstacle(Barrier, 1, f.cfg.Player.X+f.cfg.Combat.SlashOffset+90, false, false)
	other := f.spawnObstacle(Barrier, 2, near.X, false, false)

	x, ok := f.SlashHit(playerAt(1))
	if !ok {
		t.Fatal("slash should connect")
	}
	if x != near.X {
		t.Errorf("slash reported x=%v, want nearest at %v", x, near.X)
	}
	if near.Active {
		t.Error("nearest barrier should be destroyed")
	}
	if !far.Active || !other.Active {
		t.Error("slash destroyed more than the nearest same-lane barrier")
	}
}

func TestSlashIgnoresVehicles(t *testing.T) {
	f := testField(t, 1)
	f.SetAutoSpawn(false)

	v := f.spawnObstacle(Vehicle, 1, f.cfg.Player.X+f.cfg.Combat.SlashOffset+40, false, false)
	if _, ok := f.SlashHit(playerAt(1)); ok {
		t.Error("slash should not connect with a vehicle")
	}
	if v.Dying {
		t.Error("vehicle should be untouched by a slash")
	}
}

func TestProjectileLaneLocked(t *testing.T) {
	f := testField(t, 1)
	f.SetAutoSpawn(false)
	f.SetSpeedMultiplier(0) // Freeze scrolling to isolate projectile flight

	same := f.spawnObstacle(Barrier, 1, f.cfg.Player.X+400, false, false)
	othr := f.spawnObstacle(Barrier, 2, f.cfg.Player.X+300, false, false)

	f.Fire(playerAt(1))
	for i := 0; i < 120; i++ {
		f.Update(1.0 / 60)
	}

	if same.Active {
		t.Error("projectile should destroy the barrier in its own lane")
	}
	if !othr.Active {
		t.Error("projectile crossed lanes")
	}
	if n := f.Projectiles().ActiveCount(); n != 0 {
		t.Errorf("%d projectiles still active after impact", n)
	}
}

func TestProjectileSmallestOvershoot(t *testing.T) {
	f := testField(t, 1)
	f.SetAutoSpawn(false)
	f.SetSpeedMultiplier(0)

	near := f.spawnObstacle(Barrier, 0, f.cfg.Player.X+200, false, false)
	far := f.spawnObstacle(Barrier, 0, f.cfg.Player.X+600, false, false)

	f.Fire(playerAt(0))
	for i := 0; i < 120 && near.Active && far.Active; i++ {
		f.Update(1.0 / 60)
	}

	if near.Active {
		t.Error("projectile should hit the nearer barrier first")
	}
	if !far.Active {
		t.Error("one projectile destroyed two obstacles")
	}
}

func TestProjectileNeverResolvesBehindFirePoint(t *testing.T) {
	f := testField(t, 1)
	f.SetAutoSpawn(false)
	f.SetSpeedMultiplier(0)

	behind := f.spawnObstacle(Barrier, 0, f.cfg.Player.X-100, false, false)

	f.Fire(playerAt(0))
	for i := 0; i < 60; i++ {
		f.Update(1.0 / 60)
	}

	if !behind.Active {
		t.Error("projectile resolved against an obstacle behind its fire point")
	}
}

func TestCollectPickups(t *testing.T) {
	f := testField(t, 1)
	f.SetAutoSpawn(false)

	f.spawnPickup(PickupAmmo, 1, f.cfg.Player.X)
	f.spawnPickup(PickupShield, 2, f.cfg.Player.X)
	f.DrainEvents()

	got := f.CollectPickups(playerAt(1))
	if len(got) != 1 || got[0] != PickupAmmo {
		t.Errorf("collected %v, want [ammo]", got)
	}
	if n := f.Pickups().ActiveCount(); n != 1 {
		t.Errorf("%d pickups remain, want 1", n)
	}

	collected := 0
	for _, ev := range f.DrainEvents() {
		if ev.Kind == EventPickupCollected {
			collected++
		}
	}
	if collected != 1 {
		t.Errorf("got %d collected events, want 1", collected)
	}
}

func TestLaneThreats(t *testing.T) {
	f := testField(t, 1)
	f.SetAutoSpawn(false)

	width := f.cfg.Road.Width
	f.spawnObstacle(Barrier, 0, width+500, false, false)
	f.spawnObstacle(Vehicle, 1, width+500, false, false)
	f.spawnObstacle(Barrier, 2, width-100, false, false) // Already visible

	threats := f.LaneThreats()
	if !threats[0].Incoming || threats[0].Kind != Barrier {
		t.Error("lane 0 should report an incoming barrier")
	}
	if !threats[1].Incoming || threats[1].Kind != Vehicle {
		t.Error("lane 1 should report an incoming vehicle")
	}
	if threats[2].Incoming {
		t.Error("already-visible obstacle should not be reported")
	}
	if threats[1].ETA <= threats[0].ETA {
		t.Error("slower vehicle should have a later ETA than the barrier at the same distance")
	}
}

func TestShockwaveSparesHazardsAndOffscreen(t *testing.T) {
	f := testField(t, 1)
	f.SetAutoSpawn(false)

	width := f.cfg.Road.Width
	b := f.spawnObstacle(Barrier, 0, width-100, false, false)
	v := f.spawnObstacle(Vehicle, 1, width-100, false, false)
	h := f.spawnObstacle(Hazard, 2, width-100, false, false)
	off := f.spawnObstacle(Barrier, 3, width+500, false, false)

	n := f.Shockwave()
	if n != 2 {
		t.Errorf("shockwave destroyed %d, want 2", n)
	}
	if b.Active && !b.Dying {
		t.Error("on-screen barrier should be destroyed")
	}
	if !v.Dying {
		t.Error("on-screen vehicle should enter the dying linger")
	}
	if !h.Active || h.Dying {
		t.Error("hazard should ride the shockwave out")
	}
	if !off.Active {
		t.Error("off-screen obstacle should be spared")
	}
}
