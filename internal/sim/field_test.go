package sim

import (
	"testing"

	"github.com/vovakirdan/moto-rush/internal/config"
)

func testField(t *testing.T, seed int64) *Field {
	t.Helper()
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	return NewField(cfg, seed)
}

func TestPoolGrowsWhenSaturated(t *testing.T) {
	p := NewPool(2,
		func(o *Obstacle) bool { return o.Active },
		func() *Obstacle { return &Obstacle{} })

	a := p.Acquire()
	a.Active = true
	b := p.Acquire()
	b.Active = true
	if p.Size() != 2 {
		t.Fatalf("pool size = %d before growth, want 2", p.Size())
	}

	c := p.Acquire()
	if c == a || c == b {
		t.Error("saturated pool returned an active slot")
	}
	if p.Size() != 3 {
		t.Errorf("pool size = %d after growth, want 3", p.Size())
	}

	a.Active = false
	if got := p.Acquire(); got != a {
		t.Error("pool should reuse the freed slot before growing")
	}
}

func TestFieldDeterminism(t *testing.T) {
	f1 := testField(t, 42)
	f2 := testField(t, 42)

	const dt = 1.0 / 60
	for i := 0; i < 600; i++ {
		f1.Update(dt)
		f2.Update(dt)
	}

	var got1, got2 []Obstacle
	f1.Obstacles().Each(func(o *Obstacle) { got1 = append(got1, *o) })
	f2.Obstacles().Each(func(o *Obstacle) { got2 = append(got2, *o) })

	if len(got1) == 0 {
		t.Fatal("no obstacles spawned after 10 simulated seconds")
	}
	if len(got1) != len(got2) {
		t.Fatalf("obstacle counts diverged: %d vs %d", len(got1), len(got2))
	}
	for i := range got1 {
		if got1[i] != got2[i] {
			t.Errorf("obstacle %d diverged: %+v vs %+v", i, got1[i], got2[i])
		}
	}
}

func TestResetRestartsSequence(t *testing.T) {
	f := testField(t, 7)
	for i := 0; i < 300; i++ {
		f.Update(1.0 / 60)
	}
	var first []Obstacle
	f.Obstacles().Each(func(o *Obstacle) { first = append(first, *o) })

	f.Reset(7)
	for i := 0; i < 300; i++ {
		f.Update(1.0 / 60)
	}
	var second []Obstacle
	f.Obstacles().Each(func(o *Obstacle) { second = append(second, *o) })

	if len(first) != len(second) {
		t.Fatalf("reset run diverged: %d vs %d obstacles", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("obstacle %d diverged after reset", i)
		}
	}
}

func TestGracePeriodSuppressesSpawns(t *testing.T) {
	f := testField(t, 1)
	grace := f.cfg.Spawning.GraceDuration
	steps := int(grace * 0.9 * 60)
	for i := 0; i < steps; i++ {
		f.Update(1.0 / 60)
	}
	if n := f.Obstacles().ActiveCount(); n != 0 {
		t.Errorf("%d obstacles spawned during grace period", n)
	}
}

func TestFirstWaveSizeAtZeroDifficulty(t *testing.T) {
	cfg := config.Default()
	cfg.Difficulty.InitialLevel = 0
	f := NewField(cfg, 42)

	f.SpawnWave()
	if n := f.Obstacles().ActiveCount(); n != 1 {
		t.Errorf("wave at difficulty 0 spawned %d obstacles, want 1", n)
	}
}

func TestWaveLanesDistinct(t *testing.T) {
	cfg := config.Default()
	cfg.Difficulty.InitialLevel = 1
	f := NewField(cfg, 3)

	f.SpawnWave()
	seen := map[int]int{}
	f.Obstacles().Each(func(o *Obstacle) { seen[o.Lane]++ })
	for lane, n := range seen {
		if n > 1 {
			t.Errorf("lane %d received %d obstacles in one wave", lane, n)
		}
	}
	if f.Obstacles().ActiveCount() != cfg.Spawning.MaxPerWave {
		t.Errorf("wave at difficulty 1 spawned %d, want %d",
			f.Obstacles().ActiveCount(), cfg.Spawning.MaxPerWave)
	}
}

func TestVehicleBarrierMutualDestruction(t *testing.T) {
	f := testField(t, 1)
	f.SetAutoSpawn(false)
	f.DrainEvents()

	v := f.spawnObstacle(Vehicle, 2, 800, false, false)
	b := f.spawnObstacle(Barrier, 2, 820, false, false)
	f.DrainEvents()

	f.resolveVehicleBarrier()

	if b.Active {
		t.Error("barrier should deactivate on vehicle contact")
	}
	if !v.Dying {
		t.Error("vehicle should enter the dying linger")
	}
	explosions := 0
	for _, ev := range f.DrainEvents() {
		if ev.Kind == EventExplosion {
			explosions++
		}
	}
	if explosions != 1 {
		t.Errorf("got %d explosion events, want exactly 1", explosions)
	}

	// A second resolution pass must be a no-op.
	f.resolveVehicleBarrier()
	for _, ev := range f.DrainEvents() {
		if ev.Kind == EventExplosion {
			t.Error("pair resolved twice")
		}
	}
}

func TestOffscreenPairNotResolved(t *testing.T) {
	f := testField(t, 1)
	f.SetAutoSpawn(false)

	x := f.cfg.Road.Width + 500
	v := f.spawnObstacle(Vehicle, 1, x, false, false)
	b := f.spawnObstacle(Barrier, 1, x+10, false, false)

	f.resolveVehicleBarrier()
	if !b.Active || v.Dying {
		t.Error("fully off-screen pair should not resolve")
	}
}

func TestKillZoneForcesResolution(t *testing.T) {
	f := testField(t, 1)
	f.SetAutoSpawn(false)
	f.SetKillZone(true)

	b := f.spawnObstacle(Barrier, 0, f.cfg.Rhythm.KillZoneX-10, false, false)
	h := f.spawnObstacle(Hazard, 1, f.cfg.Rhythm.KillZoneX-10, false, false)
	f.DrainEvents()

	f.applyKillZone()

	if b.Active {
		t.Error("barrier past the kill zone should be destroyed")
	}
	if !h.Active {
		t.Error("indestructible hazard should survive the kill zone")
	}
	explosions := 0
	for _, ev := range f.DrainEvents() {
		if ev.Kind == EventExplosion {
			explosions++
		}
	}
	if explosions != 1 {
		t.Errorf("kill zone emitted %d explosions, want 1", explosions)
	}
}

func TestHiddenVehicleSubstitutesHazard(t *testing.T) {
	cfg := config.Default()
	cfg.Obstacles.BarrierWeightLow = 1
	cfg.Obstacles.VehicleWeightLow = 0
	cfg.Obstacles.HazardWeightLow = 0
	cfg.Difficulty.InitialLevel = 0
	f := NewField(cfg, 5)
	f.SetAutoSpawn(false)

	for lane := 0; lane < cfg.Road.LaneCount; lane++ {
		f.spawnObstacle(Vehicle, lane, cfg.Road.Width+1000, false, false)
	}

	f.SpawnWave()
	f.Obstacles().Each(func(o *Obstacle) {
		if o.Kind == Barrier {
			t.Error("barrier spawned behind an off-screen vehicle")
		}
	})
}
