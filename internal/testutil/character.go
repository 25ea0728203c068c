// Package testutil provides in-memory fakes for the host-game surfaces the
// quickbar system consumes. Besides the tests, quickbarctl's simulate verb
// imports Character to stand in for a live host character when exercising
// the full stack against a real database.
package testutil

import "github.com/udisondev/quickbars/internal/model"

// Quickslot is a string-backed quick-slot. The Item field plays the role
// of the host's opaque item-save string.
type Quickslot struct {
	Item string
}

func (q *Quickslot) SaveData() string         { return q.Item }
func (q *Quickslot) LoadSaveData(data string) { q.Item = data }
func (q *Quickslot) Clear()                   { q.Item = "" }

// Character implements model.QuickslotOwner with a fixed live slot count.
type Character struct {
	ID    int64
	Slots []*Quickslot
}

// NewCharacter creates a fake character with slotCount empty quick-slots.
func NewCharacter(id int64, slotCount int) *Character {
	c := &Character{ID: id}
	for i := 0; i < slotCount; i++ {
		c.Slots = append(c.Slots, &Quickslot{})
	}
	return c
}

func (c *Character) CharacterID() int64 { return c.ID }

func (c *Character) QuickslotCount() int { return len(c.Slots) }

func (c *Character) Quickslot(i int) model.Quickslot { return c.Slots[i] }

// Equip sets the first len(items) quick-slots to the given item strings.
func (c *Character) Equip(items ...string) {
	for i, item := range items {
		c.Slots[i].Item = item
	}
}

// Items returns the current contents of all quick-slots in order.
func (c *Character) Items() []string {
	out := make([]string, len(c.Slots))
	for i, s := range c.Slots {
		out[i] = s.Item
	}
	return out
}
