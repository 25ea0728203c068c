package quickbar

import (
	"context"
	"log/slog"
	"time"

	"github.com/udisondev/quickbars/internal/model"
)

// InputSource reports quickbar keypresses observed by the host, polled
// once per frame. PressedAction returns ok=false when no quickbar action
// fired this frame or when the host has suppressed game input (a menu is
// open, the game is paused). index is the 0-based quickbar action, owner
// the character whose session pressed it.
type InputSource interface {
	PressedAction() (index int, owner model.QuickslotOwner, ok bool)
}

// Dispatcher polls an InputSource once per frame and routes pressed
// quickbar actions to the registry.
type Dispatcher struct {
	registry *Registry
	input    InputSource
}

// NewDispatcher creates a dispatcher over the given registry and input.
func NewDispatcher(registry *Registry, input InputSource) *Dispatcher {
	return &Dispatcher{registry: registry, input: input}
}

// Tick processes at most one quickbar switch. Hosts with their own frame
// loop call this from their per-frame callback.
func (d *Dispatcher) Tick() {
	index, owner, ok := d.input.PressedAction()
	if !ok {
		return
	}
	if err := d.registry.Switch(owner, index); err != nil {
		slog.Warn("quickbar switch rejected",
			"characterID", owner.CharacterID(),
			"index", index,
			"error", err)
	}
}

// Run drives Tick from its own ticker until ctx is cancelled. Used when
// the dispatcher owns the frame loop instead of the host.
func (d *Dispatcher) Run(ctx context.Context, frameInterval time.Duration) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			d.Tick()
		}
	}
}
