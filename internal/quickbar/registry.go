// Package quickbar routes quickbar switch requests and save/load events to
// per-character stores. The host game owns quick-slot serialization and the
// input bindings; this package owns the switch protocol and the lifecycle
// of the stores.
package quickbar

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/udisondev/quickbars/internal/model"
)

// Record is the plain persisted form of one character's quickbars — the
// thing the persistence layer actually writes.
type Record struct {
	CharacterID int64
	ActiveIndex int
	Slots       []string
}

// Registry maps character IDs to their quickbar stores. Stores are created
// lazily on first access and live for the process lifetime; repeated
// lookups return the same pointer.
//
// The host serializes all calls for a given character, but the lazy-create
// path is shared across characters, so it runs under a mutex.
type Registry struct {
	mu     sync.RWMutex
	stores map[int64]*model.QuickbarStore
	count  int
}

// NewRegistry creates a registry configured for quickbarCount bars per
// character. The count is validated at config-bind time (see config).
func NewRegistry(quickbarCount int) *Registry {
	return &Registry{
		stores: make(map[int64]*model.QuickbarStore),
		count:  quickbarCount,
	}
}

// QuickbarCount returns the configured number of quickbars per character.
func (r *Registry) QuickbarCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}

// SetQuickbarCount adjusts the configured quickbar count at runtime
// (config reload). Existing stores keep their snapshots: lowering the
// count never truncates, raising it re-exposes higher slots.
func (r *Registry) SetQuickbarCount(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count = n
}

// GetOrCreate returns the character's store, constructing an empty one on
// first access. Always succeeds.
func (r *Registry) GetOrCreate(characterID int64) *model.QuickbarStore {
	r.mu.RLock()
	store, ok := r.stores[characterID]
	r.mu.RUnlock()
	if ok {
		return store
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Re-check: another character's first access may have raced us here.
	if store, ok := r.stores[characterID]; ok {
		return store
	}
	store = model.NewQuickbarStore()
	r.stores[characterID] = store
	return store
}

// Switch activates quickbar index for the character. The currently
// equipped quick-slots are captured into the outgoing quickbar before the
// active index moves: reversing that order would silently drop any
// equipment changes made since the last switch.
func (r *Registry) Switch(owner model.QuickslotOwner, index int) error {
	count := r.QuickbarCount()
	if index < 0 || index >= count {
		return fmt.Errorf("quickbar index %d out of range [0, %d)", index, count)
	}

	store := r.GetOrCreate(owner.CharacterID())
	store.CaptureFromLive(owner, count)
	store.SetActive(owner, index, count)

	slog.Debug("quickbar switched",
		"characterID", owner.CharacterID(),
		"index", index)
	return nil
}

// CaptureForPersist copies the character's store into a Record for the
// persistence layer, then captures the live quick-slots so the in-memory
// store also reflects the latest live state before the process may exit.
func (r *Registry) CaptureForPersist(owner model.QuickslotOwner) Record {
	count := r.QuickbarCount()
	store := r.GetOrCreate(owner.CharacterID())
	store.NormalizeSize(count)

	rec := Record{
		CharacterID: owner.CharacterID(),
		ActiveIndex: store.ActiveIndex(),
		Slots:       store.Slots(),
	}
	store.CaptureFromLive(owner, count)
	return rec
}

// RestoreFromPersisted pushes a freshly loaded record into the character's
// long-lived store and applies the now-current active quickbar onto the
// live quick-slots. The store's identity is preserved so other holders of
// the pointer observe the update.
func (r *Registry) RestoreFromPersisted(owner model.QuickslotOwner, rec Record) {
	count := r.QuickbarCount()
	store := r.GetOrCreate(owner.CharacterID())
	store.OverrideFrom(model.NewQuickbarStoreWith(rec.ActiveIndex, rec.Slots))
	store.ApplyToLive(owner, count)

	slog.Debug("quickbars restored",
		"characterID", owner.CharacterID(),
		"activeIndex", rec.ActiveIndex,
		"quickbars", len(rec.Slots))
}
