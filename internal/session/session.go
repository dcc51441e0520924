// Package session frames the desktop: a boot screen, a login screen with a
// sign-in progress bar, the desktop itself, and a shutdown screen.
//
// The Machine is driven by the host's clock. Callers pass the current time to
// every method, which keeps it deterministic under test.
package session

import (
	"io"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Phase is a framing screen.
type Phase int

const (
	PhaseBoot Phase = iota
	PhaseLogin
	PhaseSigningIn
	PhaseDesktop
	PhaseShuttingDown
	PhaseOff
)

func (p Phase) String() string {
	switch p {
	case PhaseBoot:
		return "boot"
	case PhaseLogin:
		return "login"
	case PhaseSigningIn:
		return "signing-in"
	case PhaseDesktop:
		return "desktop"
	case PhaseShuttingDown:
		return "shutting-down"
	case PhaseOff:
		return "off"
	default:
		return "unknown"
	}
}

// Durations are the timed parts of the framing.
type Durations struct {
	Boot     time.Duration
	SignIn   time.Duration
	Shutdown time.Duration
	Settle   time.Duration
}

// DefaultDurations returns the stock timings.
func DefaultDurations() Durations {
	return Durations{
		Boot:     config.BootDuration,
		SignIn:   config.LoginDuration,
		Shutdown: config.ShutdownDuration,
		Settle:   config.PhaseSettleDelay,
	}
}

// DurationsFromConfig converts the [session] section. Non-positive values
// keep the defaults.
func DurationsFromConfig(cfg config.SessionConfig) Durations {
	d := DefaultDurations()
	ms := func(v int, fallback time.Duration) time.Duration {
		if v <= 0 {
			return fallback
		}
		return time.Duration(v) * time.Millisecond
	}
	d.Boot = ms(cfg.BootMS, d.Boot)
	d.SignIn = ms(cfg.LoginMS, d.SignIn)
	d.Shutdown = ms(cfg.ShutdownMS, d.Shutdown)
	return d
}

// Machine walks the framing phases.
type Machine struct {
	phase      Phase
	since      time.Time
	id         string
	durations  Durations
	skipBoot   bool
	onDesktop  func(id string)
	onShutdown func(id string)
	logger     *log.Logger
}

// Option configures a Machine.
type Option func(*Machine)

// WithSkipBoot starts sessions on the desktop.
func WithSkipBoot(skip bool) Option {
	return func(m *Machine) { m.skipBoot = skip }
}

// OnDesktop registers a hook run when a desktop session begins.
func OnDesktop(fn func(id string)) Option {
	return func(m *Machine) { m.onDesktop = fn }
}

// OnShutdown registers a hook run when shutdown begins. The window manager
// is reset from here.
func OnShutdown(fn func(id string)) Option {
	return func(m *Machine) { m.onShutdown = fn }
}

// WithLogger sets the logger phase changes are reported to.
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// New returns a machine in the boot phase. Call Start before use.
func New(d Durations, opts ...Option) *Machine {
	m := &Machine{durations: d, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start enters the first phase at now.
func (m *Machine) Start(now time.Time) {
	if m.skipBoot {
		m.enter(PhaseDesktop, now)
		return
	}
	m.enter(PhaseBoot, now)
}

func (m *Machine) enter(p Phase, now time.Time) {
	from := m.phase
	m.phase, m.since = p, now
	switch p {
	case PhaseDesktop:
		m.id = uuid.New().String()
		if m.onDesktop != nil {
			m.onDesktop(m.id)
		}
	case PhaseShuttingDown:
		if m.onShutdown != nil {
			m.onShutdown(m.id)
		}
	case PhaseOff, PhaseLogin:
		m.id = ""
	}
	m.logger.Debug("session phase", "from", from, "to", p, "id", m.id)
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// ID returns the desktop session id, empty outside a session.
func (m *Machine) ID() string { return m.id }

// Since returns when the current phase began.
func (m *Machine) Since() time.Time { return m.since }

// Advance moves through timed phases that have run their course and reports
// whether the phase changed.
func (m *Machine) Advance(now time.Time) bool {
	changed := false
	for {
		elapsed := now.Sub(m.since)
		switch {
		case m.phase == PhaseBoot && elapsed >= m.durations.Boot:
			m.enter(PhaseLogin, m.since.Add(m.durations.Boot))
		case m.phase == PhaseSigningIn && elapsed >= m.durations.SignIn+m.durations.Settle:
			m.enter(PhaseDesktop, m.since.Add(m.durations.SignIn+m.durations.Settle))
		case m.phase == PhaseShuttingDown && elapsed >= m.durations.Shutdown+m.durations.Settle:
			m.enter(PhaseOff, m.since.Add(m.durations.Shutdown+m.durations.Settle))
		default:
			return changed
		}
		changed = true
	}
}

// SignIn starts the sign-in progress from the login screen.
func (m *Machine) SignIn(now time.Time) bool {
	if m.phase != PhaseLogin {
		return false
	}
	m.enter(PhaseSigningIn, now)
	return true
}

// BeginShutdown leaves the desktop.
func (m *Machine) BeginShutdown(now time.Time) bool {
	if m.phase != PhaseDesktop {
		return false
	}
	m.enter(PhaseShuttingDown, now)
	return true
}

// Restart goes back to the login screen once the machine is off.
func (m *Machine) Restart(now time.Time) bool {
	if m.phase != PhaseOff {
		return false
	}
	m.enter(PhaseLogin, now)
	return true
}

// Progress is the fraction of the current progress bar that has elapsed, in
// [0, 1]. Phases without a progress bar report 0.
func (m *Machine) Progress(now time.Time) float64 {
	var total time.Duration
	switch m.phase {
	case PhaseSigningIn:
		total = m.durations.SignIn
	case PhaseShuttingDown:
		total = m.durations.Shutdown
	default:
		return 0
	}
	if total <= 0 {
		return 1
	}
	return min(1, max(0, float64(now.Sub(m.since))/float64(total)))
}

// Animating reports whether the screen changes with time.
func (m *Machine) Animating() bool {
	switch m.phase {
	case PhaseBoot, PhaseSigningIn, PhaseShuttingDown:
		return true
	}
	return false
}

// TickMsg advances the framing clock.
type TickMsg time.Time

// Tick schedules the next framing tick.
func Tick() tea.Cmd {
	return tea.Tick(config.FramingTickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
