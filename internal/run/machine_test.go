package run

import (
	"errors"
	"runtime"
	"sync"
	"testing"

	"github.com/vovakirdan/moto-rush/internal/config"
	"github.com/vovakirdan/moto-rush/internal/core"
	"github.com/vovakirdan/moto-rush/internal/leaderboard"
)

const dt = 1.0 / 60

// stubStore is a controllable in-memory Store. Calls block on gate when it
// is set, letting tests hold a reply open for as long as they need.
type stubStore struct {
	gate chan struct{}

	mu        sync.Mutex
	entries   []leaderboard.Entry
	fail      bool
	submitted []leaderboard.Entry
}

func (s *stubStore) Submit(e leaderboard.Entry) (int64, error) {
	if s.gate != nil {
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return 0, errors.New("stub: submit refused")
	}
	s.submitted = append(s.submitted, e)
	return int64(len(s.submitted)), nil
}

func (s *stubStore) TopN(weekKey string, n int) ([]leaderboard.Entry, error) {
	if s.gate != nil {
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, errors.New("stub: fetch refused")
	}
	return s.entries, nil
}

func (s *stubStore) submissions() []leaderboard.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]leaderboard.Entry(nil), s.submitted...)
}

func pressed(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

func none() core.InputFrame {
	return core.NewInputFrame()
}

func newTestMachine(t *testing.T, store Store) *Machine {
	t.Helper()
	cfg := config.Default()
	rt := core.DefaultConfig()
	rt.Seed = 42
	rt.WeekKey = "2026-W35"
	var gw *Gateway
	if store != nil {
		gw = NewGateway(store)
	}
	return NewMachine(cfg, rt, gw)
}

// stepInto drives the machine from the title screen into live play.
func stepInto(t *testing.T, m *Machine) {
	t.Helper()
	m.Update(dt, pressed(core.ActionConfirm)) // Title -> Tutorial
	if m.State() != StateTutorial {
		t.Fatalf("state = %v, want Tutorial", m.State())
	}
	m.Update(dt, pressed(core.ActionConfirm)) // Tutorial -> Starting
	if m.State() != StateStarting {
		t.Fatalf("state = %v, want Starting", m.State())
	}
	for i := 0; i < 300 && m.State() == StateStarting; i++ {
		m.Update(dt, none())
	}
	if m.State() != StatePlaying {
		t.Fatalf("state = %v after countdown, want Playing", m.State())
	}
}

func TestMenuFlow(t *testing.T) {
	m := newTestMachine(t, nil)
	stepInto(t, m)
}

func TestTutorialShownOnce(t *testing.T) {
	m := newTestMachine(t, nil)
	stepInto(t, m)

	m.enterDying()
	for i := 0; i < 600 && m.State() != StateDead; i++ {
		m.Update(dt, none())
	}
	if m.State() != StateDead {
		t.Fatalf("state = %v, want Dead", m.State())
	}

	m.Update(dt, pressed(core.ActionRestart))
	if m.State() != StateStarting {
		t.Errorf("restart should skip the tutorial, state = %v", m.State())
	}
}

func TestLaneMovementClampedAndSmooth(t *testing.T) {
	m := newTestMachine(t, nil)
	stepInto(t, m)

	for i := 0; i < 10; i++ {
		m.Update(dt, pressed(core.ActionLaneUp))
	}
	if m.TargetLane() != 0 {
		t.Errorf("target lane = %d after spamming up, want 0", m.TargetLane())
	}

	// The fractional position trails the target; it must not teleport.
	m.Update(dt, pressed(core.ActionLaneDown))
	if m.LaneF() == float64(m.TargetLane()) {
		t.Error("lane position snapped instead of crossing smoothly")
	}
	for i := 0; i < 120; i++ {
		m.Update(dt, none())
	}
	if m.LaneF() != float64(m.TargetLane()) {
		t.Errorf("lane position %v never settled on target %d", m.LaneF(), m.TargetLane())
	}
}

func TestScoreAccruesMonotonically(t *testing.T) {
	m := newTestMachine(t, nil)
	stepInto(t, m)

	prev := m.Score()
	for i := 0; i < 300; i++ {
		m.Update(dt, none())
		if m.State() != StatePlaying {
			break
		}
		if m.Score() < prev {
			t.Fatalf("score decreased from %d to %d", prev, m.Score())
		}
		prev = m.Score()
	}
	if prev == 0 {
		t.Error("score never accrued during play")
	}
}

func TestDeathPhaseProgression(t *testing.T) {
	m := newTestMachine(t, &stubStore{})
	stepInto(t, m)
	d := m.cfg.Death

	m.enterDying()
	if m.State() != StateDying || m.Phase() != PhaseRamp {
		t.Fatalf("state/phase = %v/%v, want Dying/Ramp", m.State(), m.Phase())
	}
	if m.Score() != m.FinalScore() {
		t.Error("score should freeze at death")
	}

	// Midway through the ramp the overlay must be partial and eased
	steps := int(d.RampDuration / 2 / dt)
	for i := 0; i < steps; i++ {
		m.Update(dt, none())
	}
	if m.Overlay() <= 0 || m.Overlay() >= 1 {
		t.Errorf("mid-ramp overlay = %v, want partial cover", m.Overlay())
	}
	// EaseOutCubic(0.5) > 0.5: the ramp front-loads
	if m.Overlay() < 0.5*rampCover {
		t.Errorf("overlay %v not front-loaded at ramp midpoint", m.Overlay())
	}

	phases := map[DeathPhase]bool{m.Phase(): true}
	for i := 0; i < 600 && m.State() == StateDying; i++ {
		runtime.Gosched()
		m.Update(dt, none())
		phases[m.Phase()] = true
	}
	for _, p := range []DeathPhase{PhaseRamp, PhaseSnap, PhaseHold, PhaseFade} {
		if !phases[p] {
			t.Errorf("death sequence skipped phase %v", p)
		}
	}
	if m.State() == StateDying {
		t.Error("death sequence never completed")
	}
}

func TestHoldWaitsForFetch(t *testing.T) {
	store := &stubStore{gate: make(chan struct{})}
	m := newTestMachine(t, store)
	stepInto(t, m)

	m.enterDying()
	for i := 0; i < 600; i++ {
		runtime.Gosched()
		m.Update(dt, none())
	}
	if m.State() != StateDying || m.Phase() != PhaseHold {
		t.Fatalf("state/phase = %v/%v, want Dying/Hold while fetch is pending", m.State(), m.Phase())
	}

	close(store.gate)
	for i := 0; i < 600 && m.State() == StateDying; i++ {
		runtime.Gosched()
		m.Update(dt, none())
	}
	if m.State() == StateDying {
		t.Error("hold never released after the fetch resolved")
	}
}

func TestGenerationGuardDropsStaleResults(t *testing.T) {
	store := &stubStore{entries: []leaderboard.Entry{{Name: "fresh", Score: 1}}}
	m := newTestMachine(t, store)
	stepInto(t, m)

	m.enterDying()
	staleGen := m.generation - 1

	// A reply from a previous run arrives late: it must be dropped even
	// though it is sitting in the channel ahead of the live reply.
	m.gw.results <- Result{
		Kind:       ResultFetch,
		Generation: staleGen,
		Entries:    []leaderboard.Entry{{Name: "stale", Score: 9999}},
	}

	for i := 0; i < 600 && m.State() == StateDying; i++ {
		runtime.Gosched()
		m.Update(dt, none())
	}

	if len(m.Board()) == 0 {
		t.Fatal("live fetch result never applied")
	}
	for _, e := range m.Board() {
		if e.Name == "stale" {
			t.Error("stale-generation fetch result was applied")
		}
	}
	if m.BoardErr() {
		t.Error("fresh fetch should have succeeded")
	}
}

func TestFetchFailureDegradesToLocalView(t *testing.T) {
	store := &stubStore{fail: true}
	m := newTestMachine(t, store)
	stepInto(t, m)

	m.enterDying()
	for i := 0; i < 600 && m.State() == StateDying; i++ {
		runtime.Gosched()
		m.Update(dt, none())
	}
	if m.State() != StateDead {
		t.Fatalf("state = %v, want Dead (local-only view)", m.State())
	}
	if !m.BoardErr() {
		t.Error("board error flag should be set")
	}
	if m.Submitted() {
		t.Error("nothing should be submitted after a fetch failure")
	}
}

func TestNamedPlayerAutoSubmits(t *testing.T) {
	store := &stubStore{}
	cfg := config.Default()
	rt := core.DefaultConfig()
	rt.Seed = 42
	rt.WeekKey = "2026-W35"
	rt.Player = "ava"
	m := NewMachine(cfg, rt, NewGateway(store))
	stepInto(t, m)

	m.enterDying()
	for i := 0; i < 600 && m.State() == StateDying; i++ {
		runtime.Gosched()
		m.Update(dt, none())
	}
	if m.State() != StateDead {
		t.Fatalf("named player should land on Dead, got %v", m.State())
	}
	if !m.Submitted() {
		t.Error("named player's run should auto-submit")
	}
	// Let the submit goroutine land, then drain
	for i := 0; i < 100 && len(store.submissions()) == 0; i++ {
		runtime.Gosched()
		m.Update(dt, none())
	}
	if got := store.submissions(); len(got) != 1 || got[0].Name != "ava" {
		t.Errorf("submitted = %+v, want one entry named ava", got)
	}
}

func TestAnonymousTopTenGoesToNameEntry(t *testing.T) {
	store := &stubStore{} // Empty board: any score ranks first
	m := newTestMachine(t, store)
	stepInto(t, m)

	m.enterDying()
	for i := 0; i < 600 && m.State() == StateDying; i++ {
		runtime.Gosched()
		m.Update(dt, none())
	}
	if m.State() != StateNameEntry {
		t.Fatalf("state = %v, want NameEntry for an anonymous top-ten run", m.State())
	}
	if m.Rank() != 1 {
		t.Errorf("rank on empty board = %d, want 1", m.Rank())
	}
}

func TestAnonymousOffBoardSkipsNameEntry(t *testing.T) {
	var entries []leaderboard.Entry
	for i := 0; i < 10; i++ {
		entries = append(entries, leaderboard.Entry{Name: "top", Score: 1000000})
	}
	store := &stubStore{entries: entries}
	m := newTestMachine(t, store)
	stepInto(t, m)

	m.enterDying()
	for i := 0; i < 600 && m.State() == StateDying; i++ {
		runtime.Gosched()
		m.Update(dt, none())
	}
	if m.State() != StateDead {
		t.Fatalf("state = %v, want Dead for an off-board run", m.State())
	}
	if m.Submitted() {
		t.Error("off-board anonymous run must not submit")
	}
}

func TestEmptyNameNeedsSecondConfirm(t *testing.T) {
	store := &stubStore{}
	m := newTestMachine(t, store)
	stepInto(t, m)

	m.enterDying()
	for i := 0; i < 600 && m.State() == StateDying; i++ {
		runtime.Gosched()
		m.Update(dt, none())
	}
	if m.State() != StateNameEntry {
		t.Fatalf("state = %v, want NameEntry", m.State())
	}

	m.SubmitName("")
	if m.State() != StateNameEntry {
		t.Fatal("first empty submit must not leave name entry")
	}
	if !m.EmptyConfirmPending() {
		t.Error("first empty submit should arm the anonymous confirm")
	}

	m.SubmitName("")
	if m.State() != StateDead {
		t.Errorf("second empty submit should go through, state = %v", m.State())
	}
	if !m.Submitted() {
		t.Error("anonymous submission should be recorded")
	}
}

func TestRageRampIsEasedNotStepped(t *testing.T) {
	m := newTestMachine(t, nil)
	stepInto(t, m)

	// Force the meter full and trigger activation via a melee kill credit
	m.rage = m.cfg.Rage.Max - m.cfg.Rage.FillPerKill
	m.onMeleeKill(m.cfg.Rhythm.SweetSpotX)
	if !m.RageActive() {
		t.Fatal("full meter should activate rage")
	}

	if mult := m.speedMultiplier(); mult >= m.cfg.Rage.SpeedMult {
		t.Errorf("multiplier jumped straight to peak %v", mult)
	}

	peak := m.cfg.Rage.SpeedMult
	prev := m.speedMultiplier()
	climbing := false
	for i := 0; i < int(m.cfg.Rage.RampUp/dt); i++ {
		m.rageTimer -= dt
		cur := m.speedMultiplier()
		if cur > prev {
			climbing = true
		}
		if cur > peak+1e-9 {
			t.Fatalf("multiplier %v overshot peak %v", cur, peak)
		}
		prev = cur
	}
	if !climbing {
		t.Error("multiplier never climbed during ramp-up")
	}
}

func TestRageExpiryFiresShockwaveBonus(t *testing.T) {
	m := newTestMachine(t, nil)
	stepInto(t, m)

	m.rage = m.cfg.Rage.Max
	m.rageActive = true
	m.rageTimer = 2 * dt

	before := m.score
	m.updateRage(dt)
	m.updateRage(dt)

	if m.RageActive() {
		t.Error("rage should expire")
	}
	if m.RageFraction() != 0 {
		t.Error("meter should zero on expiry")
	}
	if m.score < before {
		t.Error("shockwave must never reduce the score")
	}
}

func TestRestartRearmsRun(t *testing.T) {
	m := newTestMachine(t, nil)
	stepInto(t, m)

	for i := 0; i < 600; i++ {
		m.Update(dt, none())
	}
	scoreBefore := m.Score()
	if scoreBefore == 0 {
		t.Fatal("expected some score before restart")
	}

	m.enterDying()
	for i := 0; i < 900 && m.State() != StateDead; i++ {
		m.Update(dt, none())
	}
	m.Update(dt, pressed(core.ActionRestart))
	if m.State() != StateStarting {
		t.Fatalf("state = %v after restart, want Starting", m.State())
	}
	if m.Score() != 0 {
		t.Errorf("score = %d after restart, want 0", m.Score())
	}
	if m.Field().Obstacles().ActiveCount() != 0 {
		t.Error("field should be empty after restart")
	}
	if m.Shield() || m.Ammo() != 0 || m.RageFraction() != 0 {
		t.Error("player state should be zeroed after restart")
	}
}
