// Package testing provides test utilities for TUI components.
package testing

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Driver feeds messages to a Bubble Tea model without a terminal and keeps
// the commands it returns.
type Driver struct {
	Model    tea.Model
	Commands []tea.Cmd
	Updates  int
}

// NewDriver wraps model.
func NewDriver(model tea.Model) *Driver {
	return &Driver{Model: model}
}

// Send delivers each message in order.
func (d *Driver) Send(msgs ...tea.Msg) *Driver {
	for _, msg := range msgs {
		var cmd tea.Cmd
		d.Model, cmd = d.Model.Update(msg)
		d.Updates++
		if cmd != nil {
			d.Commands = append(d.Commands, cmd)
		}
	}
	return d
}

// RunCommands executes the kept commands and feeds their messages back
// into the model. Only use it when no command is a timer.
func (d *Driver) RunCommands() []tea.Msg {
	cmds := d.Commands
	d.Commands = nil

	var msgs []tea.Msg
	for _, cmd := range cmds {
		if msg := cmd(); msg != nil {
			msgs = append(msgs, msg)
			d.Send(msg)
		}
	}
	return msgs
}

// View renders the model with ANSI codes removed.
func (d *Driver) View() string {
	return StripANSI(d.Model.View())
}
