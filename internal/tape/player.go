package tape

import "time"

// Player steps through a script one command at a time for hosts that
// cannot block, such as a bubbletea update loop.
type Player struct {
	cmds []Command
	next int
}

// NewPlayer returns a player at the first command.
func NewPlayer(cmds []Command) *Player {
	return &Player{cmds: cmds}
}

// Step returns the next command to execute, folding any Sleep commands
// before it into the returned delay.
func (p *Player) Step() (cmd Command, delay time.Duration, ok bool) {
	for p.next < len(p.cmds) {
		c := p.cmds[p.next]
		p.next++
		if c.Type == CommandTypeSleep {
			delay += c.Duration
			continue
		}
		return c, delay, true
	}
	return Command{}, delay, false
}

// Done reports whether every command has been handed out.
func (p *Player) Done() bool { return p.next >= len(p.cmds) }

// Progress returns how many commands have been handed out and the total.
func (p *Player) Progress() (done, total int) { return p.next, len(p.cmds) }
