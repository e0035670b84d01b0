package action

import "github.com/atomicstack/tmux-cmdk/internal/logging/events"

// Performer runs an action's side effect. The return value is ignored,
// except that a returned func() is recognised as a negation and discarded.
type Performer func() any

// Command wraps a performer into the uniform invocable unit carried by nodes.
type Command struct {
	id      string
	perform Performer
}

// NewCommand wraps perform for the action identified by id.
func NewCommand(id string, perform Performer) *Command {
	return &Command{id: id, perform: perform}
}

// Perform invokes the wrapped performer. Panics raised by the performer are
// not recovered.
func (c *Command) Perform() {
	if c == nil || c.perform == nil {
		return
	}
	events.Command.Perform(c.id)
	result := c.perform()
	// There is no undo history; a negation is acknowledged and dropped.
	if negate, ok := result.(func()); ok && negate != nil {
		events.Command.Negatable(c.id)
	}
}
