package run

import (
	"github.com/vovakirdan/moto-rush/internal/config"
	"github.com/vovakirdan/moto-rush/internal/core"
	"github.com/vovakirdan/moto-rush/internal/course"
	"github.com/vovakirdan/moto-rush/internal/leaderboard"
	"github.com/vovakirdan/moto-rush/internal/rng"
	"github.com/vovakirdan/moto-rush/internal/sim"
)

// Mode selects between the endless wave spawner and course playback.
type Mode int

const (
	// ModeEndless spawns timed waves with a difficulty ramp.
	ModeEndless Mode = iota
	// ModeRhythm plays a beat-mapped course through the scheduler.
	ModeRhythm
)

// Countdown before an endless run; rhythm runs count beats instead.
const endlessCountdown = 1.5

// Speed factor applied while the player overlaps a hazard.
const hazardSlowFactor = 0.5

// How long the post-shield invulnerability flash lasts. It exists so the
// obstacle that broke the shield is destroyed instead of crashing the
// player again on the very next frame.
const shieldFlashDuration = 1.0

// Machine is the top-level game state machine. It owns the field, the
// optional course scheduler and all scoring state, and advances everything
// from a single Update call per frame. It is strictly single-threaded;
// gateway goroutines never touch it directly.
type Machine struct {
	cfg  config.MotoConfig
	rt   core.RuntimeConfig
	mode Mode
	seed int64

	field *sim.Field
	gw    *Gateway

	courses   []*course.Course
	courseIdx int
	sched     *course.Scheduler

	state     State
	stateTime float64

	tutorialSeen bool

	// Player
	laneF       float64
	targetLane  int
	shield      bool
	shieldFlash float64
	ammo        int
	slowed      bool

	// Rhythm playback clock, frame-accumulated
	playback  float64
	countdown float64

	// Scoring
	score       float64
	streak      int
	streakTimer float64

	// Rage
	rage       float64
	rageActive bool
	rageTimer  float64

	// Death sequence
	phase      DeathPhase
	phaseTime  float64
	overlay    float64
	afterFade  State
	finalScore int
	finalSecs  float64
	rank       int
	board      []leaderboard.Entry
	boardErr   bool
	fetchDone  bool
	submitted  bool
	generation uint64

	emptyConfirm bool

	events []sim.Event
}

// NewMachine creates an endless-mode machine. A zero rt.Seed derives the
// seed from the week key so every client sees the same weekly pattern.
func NewMachine(cfg config.MotoConfig, rt core.RuntimeConfig, gw *Gateway) *Machine {
	seed := rt.Seed
	if seed == 0 {
		seed = rng.SeedForWeek(rt.WeekKey)
	}
	m := &Machine{
		cfg:   cfg,
		rt:    rt,
		mode:  ModeEndless,
		seed:  seed,
		field: sim.NewField(cfg, seed),
		gw:    gw,
		state: StateTitle,
	}
	return m
}

// NewRhythmMachine creates a rhythm-mode machine over the given courses.
// Course seeds override the weekly seed so a course replays identically.
func NewRhythmMachine(cfg config.MotoConfig, rt core.RuntimeConfig, gw *Gateway, courses []*course.Course) *Machine {
	m := NewMachine(cfg, rt, gw)
	m.mode = ModeRhythm
	m.courses = courses
	return m
}

// State returns the active state.
func (m *Machine) State() State { return m.state }

// Config returns the simulation tuning the machine runs with.
func (m *Machine) Config() config.MotoConfig { return m.cfg }

// Mode returns the machine's play mode.
func (m *Machine) Mode() Mode { return m.mode }

// Field exposes the simulation for rendering.
func (m *Machine) Field() *sim.Field { return m.field }

// Score returns the current (or, after death, frozen) score.
func (m *Machine) Score() int {
	if m.state == StateDying || m.state == StateNameEntry || m.state == StateDead {
		return m.finalScore
	}
	return int(m.score)
}

// Streak returns the current streak level.
func (m *Machine) Streak() int { return m.streak }

// Multiplier returns the current score multiplier.
func (m *Machine) Multiplier() float64 {
	return 1 + float64(m.streak)*m.cfg.Score.StreakStep
}

// RageFraction returns meter fill in [0, 1].
func (m *Machine) RageFraction() float64 {
	return core.ClampF(m.rage/m.cfg.Rage.Max, 0, 1)
}

// RageActive reports whether the rage window is running.
func (m *Machine) RageActive() bool { return m.rageActive }

// Ammo returns the projectile count.
func (m *Machine) Ammo() int { return m.ammo }

// Shield reports whether a shield is held.
func (m *Machine) Shield() bool { return m.shield }

// LaneF returns the player's fractional lane position for rendering.
func (m *Machine) LaneF() float64 { return m.laneF }

// TargetLane returns the lane the player is moving toward.
func (m *Machine) TargetLane() int { return m.targetLane }

// Countdown returns seconds left in the starting countdown.
func (m *Machine) Countdown() float64 { return m.countdown }

// Playback returns the rhythm playback position in seconds.
func (m *Machine) Playback() float64 { return m.playback }

// Overlay returns death-overlay opacity in [0, 1].
func (m *Machine) Overlay() float64 { return m.overlay }

// Phase returns the active death phase.
func (m *Machine) Phase() DeathPhase { return m.phase }

// FinalScore returns the score captured at death.
func (m *Machine) FinalScore() int { return m.finalScore }

// Rank returns the would-be board position computed at death, or 0 when
// the fetch failed.
func (m *Machine) Rank() int { return m.rank }

// Board returns the fetched weekly entries; nil on fetch failure.
func (m *Machine) Board() []leaderboard.Entry { return m.board }

// BoardErr reports whether leaderboard traffic failed; the end screen
// degrades to a local-only view.
func (m *Machine) BoardErr() bool { return m.boardErr }

// Submitted reports whether this run's score was submitted.
func (m *Machine) Submitted() bool { return m.submitted }

// WeekKey returns the active weekly board key.
func (m *Machine) WeekKey() string { return m.rt.WeekKey }

// PlayerName returns the configured player name; empty means anonymous.
func (m *Machine) PlayerName() string { return m.rt.Player }

// EmptyConfirmPending reports that an empty name was entered once and the
// next empty submit will go through as anonymous.
func (m *Machine) EmptyConfirmPending() bool { return m.emptyConfirm }

// Courses returns the loaded course list (rhythm mode).
func (m *Machine) Courses() []*course.Course { return m.courses }

// CourseIdx returns the selected course index.
func (m *Machine) CourseIdx() int { return m.courseIdx }

// CurrentCourse returns the selected course, or nil in endless mode.
func (m *Machine) CurrentCourse() *course.Course {
	if m.mode != ModeRhythm || len(m.courses) == 0 {
		return nil
	}
	return m.courses[m.courseIdx]
}

// ConsumeEvents returns and clears the frame's simulation events. The
// renderer uses them for one-shot effects.
func (m *Machine) ConsumeEvents() []sim.Event {
	ev := m.events
	m.events = nil
	return ev
}

// Update advances the machine by dt with the frame's input.
func (m *Machine) Update(dt float64, in core.InputFrame) {
	m.applyResults()
	m.stateTime += dt

	switch m.state {
	case StateTitle:
		if in.Has(core.ActionConfirm) {
			if m.mode == ModeRhythm {
				m.setState(StateSongSelect)
			} else if m.tutorialSeen {
				m.enterStarting()
			} else {
				m.setState(StateTutorial)
			}
		}

	case StateSongSelect:
		if in.Has(core.ActionLaneUp) && m.courseIdx > 0 {
			m.courseIdx--
		}
		if in.Has(core.ActionLaneDown) && m.courseIdx < len(m.courses)-1 {
			m.courseIdx++
		}
		if in.Has(core.ActionConfirm) {
			if m.tutorialSeen {
				m.enterStarting()
			} else {
				m.setState(StateTutorial)
			}
		}
		if in.Has(core.ActionBack) {
			m.setState(StateTitle)
		}

	case StateTutorial:
		if in.Has(core.ActionConfirm) {
			m.tutorialSeen = true
			m.enterStarting()
		}
		if in.Has(core.ActionBack) {
			m.setState(StateTitle)
		}

	case StateStarting:
		m.countdown -= dt
		if m.countdown <= 0 {
			m.setState(StatePlaying)
		}
		if in.Has(core.ActionBack) {
			m.setState(StateTitle)
		}

	case StatePlaying:
		m.updatePlaying(dt, in)

	case StateDying:
		m.updateDying(dt)

	case StateNameEntry:
		// Text input is owned by the platform layer; it calls SubmitName
		// or CancelNameEntry. Nothing advances here.

	case StateDead:
		if in.Has(core.ActionRestart) {
			m.enterStarting()
		}
		if in.Has(core.ActionBack) {
			if m.mode == ModeRhythm {
				m.setState(StateSongSelect)
			} else {
				m.setState(StateTitle)
			}
		}
	}
}

func (m *Machine) setState(s State) {
	m.state = s
	m.stateTime = 0
	m.phaseTime = 0
}

// enterStarting re-arms everything for a fresh run and begins the
// countdown. The weekly seed is re-applied, so a restarted run faces the
// same pattern sequence.
func (m *Machine) enterStarting() {
	seed := m.seed
	if c := m.CurrentCourse(); c != nil && c.Seed != 0 {
		seed = c.Seed
	}
	m.field.Reset(seed)
	m.field.SetAutoSpawn(m.mode == ModeEndless)
	m.field.SetKillZone(m.mode == ModeRhythm)

	m.laneF = float64(m.cfg.Road.LaneCount / 2)
	m.targetLane = m.cfg.Road.LaneCount / 2
	m.shield = false
	m.shieldFlash = 0
	m.ammo = 0
	m.slowed = false
	m.playback = 0
	m.score = 0
	m.streak = 0
	m.streakTimer = 0
	m.rage = 0
	m.rageActive = false
	m.overlay = 0
	m.emptyConfirm = false
	m.events = nil

	if m.mode == ModeRhythm {
		c := m.CurrentCourse()
		m.sched = course.NewScheduler(c, m.cfg)
		m.countdown = float64(m.cfg.Rhythm.CountdownBeats) * 60 / c.BPM
	} else {
		m.sched = nil
		m.countdown = endlessCountdown
	}
	m.setState(StateStarting)
}

func (m *Machine) playerState() sim.PlayerState {
	return sim.PlayerState{
		LaneF:      m.laneF,
		Lane:       m.targetLane,
		SpeedRatio: m.speedMultiplier(),
		Invincible: m.rageActive || m.shieldFlash > 0,
	}
}

// speedMultiplier combines the eased rage multiplier with the hazard
// slowdown. The rage component is always eased, never stepped.
func (m *Machine) speedMultiplier() float64 {
	mult := 1.0
	if m.rageActive {
		r := m.cfg.Rage
		elapsed := r.Duration - m.rageTimer
		switch {
		case elapsed < r.RampUp:
			mult = core.Lerp(1, r.SpeedMult, core.EaseOutCubic(elapsed/r.RampUp))
		case m.rageTimer < r.RampDown:
			mult = core.Lerp(1, r.SpeedMult, core.EaseOutCubic(m.rageTimer/r.RampDown))
		default:
			mult = r.SpeedMult
		}
	}
	if m.slowed {
		mult *= hazardSlowFactor
	}
	return mult
}

func (m *Machine) updatePlaying(dt float64, in core.InputFrame) {
	if in.Has(core.ActionLaneUp) && m.targetLane > 0 {
		m.targetLane--
	}
	if in.Has(core.ActionLaneDown) && m.targetLane < m.cfg.Road.LaneCount-1 {
		m.targetLane++
	}

	// Smooth lane crossing at a fixed lanes-per-second rate
	if m.cfg.Road.LaneCrossTime > 0 {
		step := dt / m.cfg.Road.LaneCrossTime
		diff := float64(m.targetLane) - m.laneF
		switch {
		case diff > step:
			m.laneF += step
		case diff < -step:
			m.laneF -= step
		default:
			m.laneF = float64(m.targetLane)
		}
	} else {
		m.laneF = float64(m.targetLane)
	}

	ps := m.playerState()

	if in.Has(core.ActionSlash) {
		if x, ok := m.field.SlashHit(ps); ok {
			m.onMeleeKill(x)
		}
	}
	if in.Has(core.ActionFire) && m.ammo > 0 {
		m.ammo--
		m.field.Fire(ps)
	}

	m.field.SetRage(m.rageActive)
	m.field.SetSpeedMultiplier(m.speedMultiplier())

	if m.mode == ModeRhythm && m.sched != nil {
		m.playback += dt
		m.sched.Update(m.playback, m.field)
	}

	m.field.Update(dt)
	m.updateRage(dt)

	out := m.field.PlayerCollision(ps)
	m.slowed = out.SlowOverlap
	if out.Crashed {
		if m.shield {
			m.shield = false
			m.shieldFlash = shieldFlashDuration
		} else {
			m.enterDying()
			return
		}
	}

	for _, k := range m.field.CollectPickups(ps) {
		switch k {
		case sim.PickupAmmo:
			m.ammo = core.Min(m.ammo+m.cfg.Pickups.AmmoPerPickup, m.cfg.Pickups.MaxAmmo)
		case sim.PickupShield:
			m.shield = true
		}
		m.touchStreak()
	}

	if m.streakTimer > 0 {
		m.streakTimer -= dt
		if m.streakTimer <= 0 {
			m.streak = 0
		}
	}
	if m.shieldFlash > 0 {
		m.shieldFlash -= dt
	}

	// Survival score accrues continuously and only ever grows
	m.score += m.cfg.Score.DistanceRate * dt * m.Multiplier()

	m.events = append(m.events, m.field.DrainEvents()...)

	// Course complete: all events spawned and resolved, duration elapsed
	if m.mode == ModeRhythm && m.sched != nil && m.sched.Done() &&
		m.playback >= m.CurrentCourse().DurationS &&
		m.field.Obstacles().ActiveCount() == 0 {
		m.enterDying()
	}
}

// onMeleeKill awards the slash bonus, scaled up for kills near the screen
// center, bumps the streak and fills the rage meter.
func (m *Machine) onMeleeKill(x float64) {
	sc := m.cfg.Score
	center := m.cfg.Rhythm.SweetSpotX
	proximity := 1 - core.ClampF(absF(x-center)/center, 0, 1)
	bonus := float64(sc.SlashBonus) * (1 + sc.ProximityScale*proximity)

	m.touchStreak()
	m.score += bonus * m.Multiplier()

	if !m.rageActive {
		m.rage += m.cfg.Rage.FillPerKill
		if m.rage >= m.cfg.Rage.Max {
			m.rageActive = true
			m.rageTimer = m.cfg.Rage.Duration
		}
	}
}

func (m *Machine) touchStreak() {
	if m.streakTimer > 0 {
		m.streak++
	} else {
		m.streak = 1
	}
	m.streakTimer = m.cfg.Score.StreakWindow
}

// updateRage counts the active window down; on expiry a shockwave clears
// the screen and awards bulk points.
func (m *Machine) updateRage(dt float64) {
	if !m.rageActive {
		return
	}
	m.rageTimer -= dt
	if m.rageTimer <= 0 {
		n := m.field.Shockwave()
		m.score += float64(n * m.cfg.Rage.ShockwaveBonus)
		m.rageActive = false
		m.rage = 0
		m.events = append(m.events, m.field.DrainEvents()...)
	}
}

// enterDying freezes the final score, bumps the generation so stale
// leaderboard replies are dropped, and launches the board fetch.
func (m *Machine) enterDying() {
	m.finalScore = int(m.score)
	m.finalSecs = m.field.Elapsed()
	m.generation++
	m.rank = 0
	m.board = nil
	m.boardErr = false
	m.fetchDone = false
	m.submitted = false
	m.phase = PhaseRamp
	m.overlay = 0
	m.setState(StateDying)

	if m.gw != nil {
		m.gw.Fetch(m.generation, m.rt.WeekKey, 10)
	} else {
		m.fetchDone = true
		m.boardErr = true
	}
}

// Overlay coverage where the eased ramp hands off to the snap.
const rampCover = 0.85

func (m *Machine) updateDying(dt float64) {
	d := m.cfg.Death
	m.phaseTime += dt

	switch m.phase {
	case PhaseRamp:
		m.overlay = rampCover * core.EaseOutCubic(m.phaseTime/d.RampDuration)
		if m.phaseTime >= d.RampDuration {
			m.phase = PhaseSnap
			m.phaseTime = 0
		}

	case PhaseSnap:
		m.overlay = core.Lerp(rampCover, 1, core.ClampF(m.phaseTime/d.SnapDuration, 0, 1))
		if m.phaseTime >= d.SnapDuration {
			m.phase = PhaseHold
			m.phaseTime = 0
		}

	case PhaseHold:
		m.overlay = 1
		// The hold stretches until the fetch resolves; there is no
		// timeout, and a failure resolves it too.
		if m.phaseTime >= d.HoldDuration && m.fetchDone {
			m.decideSubmission()
			m.phase = PhaseFade
			m.phaseTime = 0
		}

	case PhaseFade:
		m.overlay = 1 - core.ClampF(m.phaseTime/d.FadeDuration, 0, 1)
		if m.phaseTime >= d.FadeDuration {
			m.setState(m.afterFade)
		}
	}
}

// decideSubmission picks where the fade lands. Named players auto-submit;
// anonymous players who placed top-ten are asked for a name; everyone else
// gets the read-only board. Fetch failures degrade to a local-only view
// with no submission and no retry.
func (m *Machine) decideSubmission() {
	if m.boardErr {
		m.afterFade = StateDead
		return
	}

	m.rank = 1
	for _, e := range m.board {
		if e.Score > m.finalScore {
			m.rank++
		}
	}

	if m.rt.Player != "" {
		m.submit(m.rt.Player)
		m.afterFade = StateDead
		return
	}
	if m.rank <= 10 {
		m.afterFade = StateNameEntry
		return
	}
	m.afterFade = StateDead
}

func (m *Machine) submit(name string) {
	if m.gw == nil {
		m.boardErr = true
		return
	}
	m.gw.Submit(m.generation, leaderboard.Entry{
		Name:         name,
		Score:        m.finalScore,
		SurvivalSecs: m.finalSecs,
		WeekKey:      m.rt.WeekKey,
	}, 10)
	m.submitted = true
}

// SubmitName resolves the name-entry screen. A non-empty name submits
// immediately. The first empty submit only arms a confirmation; a second
// empty submit goes through as anonymous.
func (m *Machine) SubmitName(name string) {
	if m.state != StateNameEntry {
		return
	}
	if name == "" && !m.emptyConfirm {
		m.emptyConfirm = true
		return
	}
	m.submit(name)
	m.setState(StateDead)
}

// CancelNameEntry leaves name entry without submitting.
func (m *Machine) CancelNameEntry() {
	if m.state != StateNameEntry {
		return
	}
	m.setState(StateDead)
}

// applyResults drains the gateway and applies results whose generation
// still matches. Everything else is silently dropped.
func (m *Machine) applyResults() {
	if m.gw == nil {
		return
	}
	for _, r := range m.gw.Drain() {
		if r.Generation != m.generation {
			continue
		}
		switch r.Kind {
		case ResultFetch:
			m.fetchDone = true
			if r.Err != nil {
				m.boardErr = true
			} else {
				m.board = r.Entries
			}
		case ResultSubmit:
			if r.Err != nil {
				m.boardErr = true
			} else {
				m.board = r.Entries
			}
		}
	}
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
