package taskbar

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// TickMsg drives the clock and the stats sampler.
type TickMsg time.Time

// StatsMsg carries one CPU and memory sample.
type StatsMsg struct {
	CPU float64
	RAM float64
	Err error
}

// Tick schedules the next tray refresh.
func Tick(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// SampleStats reads CPU and memory usage off the update loop.
func SampleStats() tea.Cmd {
	return func() tea.Msg {
		var msg StatsMsg
		// Zero interval compares against the previous call, so the first
		// sample after start is 0.
		if pct, err := cpu.Percent(0, false); err != nil {
			msg.Err = fmt.Errorf("failed to sample cpu: %w", err)
		} else if len(pct) > 0 {
			msg.CPU = pct[0]
		}
		if vm, err := mem.VirtualMemory(); err != nil {
			msg.Err = fmt.Errorf("failed to sample memory: %w", err)
		} else {
			msg.RAM = vm.UsedPercent
		}
		return msg
	}
}

// Tray is the right-hand side of the taskbar.
type Tray struct {
	Now       time.Time
	CPU       float64
	RAM       float64
	HasStats  bool
	HideClock bool
	HideStats bool
}

// Apply records a sample. Failed samples keep the previous values.
func (t *Tray) Apply(msg StatsMsg) {
	if msg.Err != nil {
		return
	}
	t.CPU, t.RAM, t.HasStats = msg.CPU, msg.RAM, true
}

// Clock returns the time and date shown in the tray.
func (t Tray) Clock() (clock, date string) {
	return t.Now.Format("3:04 PM"), t.Now.Format("1/2/2006")
}

// Text is the tray as one line.
func (t Tray) Text() string {
	var s string
	if !t.HideStats && t.HasStats {
		s = fmt.Sprintf("CPU %2.0f%%  RAM %2.0f%%", t.CPU, t.RAM)
	}
	if !t.HideClock && !t.Now.IsZero() {
		clock, date := t.Clock()
		if s != "" {
			s += "  "
		}
		s += clock + "  " + date
	}
	return s
}
