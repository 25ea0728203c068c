package model

import "strings"

// QuickbarSeparator terminates every serialized quick-slot segment in a
// snapshot, including the last one. The host's item encoder reserves ';'
// for its own sub-records and never emits '|', so snapshots split
// unambiguously. Changing this character breaks existing saved data.
const QuickbarSeparator = "|"

// Quickslot is one equippable quick-access slot on a live character.
// Save/load payloads are opaque host item-save strings; this package never
// inspects their contents.
type Quickslot interface {
	SaveData() string
	LoadSaveData(data string)
	Clear()
}

// QuickslotOwner is the live-character surface the quickbar system needs.
// The host game implements it on its character/player object.
type QuickslotOwner interface {
	CharacterID() int64
	QuickslotCount() int
	Quickslot(i int) Quickslot
}

// QuickbarStore holds all quickbar snapshots for a single character: an
// ordered list of serialized snapshots and the index of the currently
// active one. slots[i] is "" while quickbar i has never been populated.
//
// Stores are not synchronized: the host invokes all operations for a given
// character from its single-threaded frame/save callbacks.
type QuickbarStore struct {
	activeIndex int
	slots       []string
}

// NewQuickbarStore returns an empty store with quickbar 0 active.
func NewQuickbarStore() *QuickbarStore {
	return &QuickbarStore{}
}

// NewQuickbarStoreWith returns a store seeded with the given data,
// deep-copying slots. Used when rebuilding a store from persisted form.
func NewQuickbarStoreWith(activeIndex int, slots []string) *QuickbarStore {
	s := &QuickbarStore{activeIndex: activeIndex}
	s.slots = make([]string, len(slots))
	copy(s.slots, slots)
	return s
}

// ActiveIndex returns the index of the currently active quickbar.
func (s *QuickbarStore) ActiveIndex() int {
	return s.activeIndex
}

// Slots returns a copy of all snapshot slots.
func (s *QuickbarStore) Slots() []string {
	out := make([]string, len(s.slots))
	copy(out, s.slots)
	return out
}

// NormalizeSize pads slots with empty snapshots until it holds at least
// total entries. It never removes elements: lowering the configured
// quickbar count must not destroy snapshots a player could restore by
// raising the count again. Must run before any indexed slot access.
func (s *QuickbarStore) NormalizeSize(total int) {
	for len(s.slots) < total {
		s.slots = append(s.slots, "")
	}
}

// ensureActiveSlot pads slots far enough to index the active quickbar.
// A save written under a larger quickbar count may carry an active index
// above the current configuration.
func (s *QuickbarStore) ensureActiveSlot(total int) {
	s.NormalizeSize(total)
	if s.activeIndex >= len(s.slots) {
		s.NormalizeSize(s.activeIndex + 1)
	}
}

// CaptureFromLive serializes the character's live quick-slots into the
// snapshot of the currently active quickbar, overwriting it.
func (s *QuickbarStore) CaptureFromLive(owner QuickslotOwner, total int) {
	n := owner.QuickslotCount()
	var buf strings.Builder
	for i := 0; i < n; i++ {
		buf.WriteString(owner.Quickslot(i).SaveData())
		buf.WriteString(QuickbarSeparator)
	}
	s.ensureActiveSlot(total)
	s.slots[s.activeIndex] = buf.String()
}

// ApplyToLive pushes the active quickbar's snapshot onto the character's
// live quick-slots. A never-populated snapshot clears every live slot.
// A snapshot with fewer segments than live slots (foreign or corrupt save
// data) leaves the unmatched slots cleared rather than failing.
func (s *QuickbarStore) ApplyToLive(owner QuickslotOwner, total int) {
	s.ensureActiveSlot(total)
	n := owner.QuickslotCount()

	snapshot := s.slots[s.activeIndex]
	if strings.TrimSpace(snapshot) == "" {
		for i := 0; i < n; i++ {
			owner.Quickslot(i).Clear()
		}
		return
	}

	segments := strings.Split(snapshot, QuickbarSeparator)
	// The trailing separator yields one empty terminal segment.
	if segments[len(segments)-1] == "" {
		segments = segments[:len(segments)-1]
	}

	for i := 0; i < n; i++ {
		slot := owner.Quickslot(i)
		slot.Clear()
		if i < len(segments) {
			slot.LoadSaveData(segments[i])
		}
	}
}

// SetActive makes quickbar index active and applies its snapshot to the
// character. Callers capture the outgoing quickbar first; the index comes
// from enumerating configured quickbar actions and is already in range.
func (s *QuickbarStore) SetActive(owner QuickslotOwner, index, total int) {
	s.activeIndex = index
	s.ApplyToLive(owner, total)
}

// OverrideFrom deep-copies the other store's data into the receiver
// without replacing its identity, so every holder of the pointer observes
// the update.
func (s *QuickbarStore) OverrideFrom(other *QuickbarStore) {
	s.activeIndex = other.activeIndex
	s.slots = make([]string, len(other.slots))
	copy(s.slots, other.slots)
}
