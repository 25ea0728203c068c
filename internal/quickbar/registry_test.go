package quickbar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/quickbars/internal/testutil"
)

func TestGetOrCreateReturnsSameStore(t *testing.T) {
	r := NewRegistry(4)

	first := r.GetOrCreate(100)
	second := r.GetOrCreate(100)
	require.Same(t, first, second, "repeated lookups must return the same store instance")

	// Mutations via one reference are visible via the other.
	first.NormalizeSize(4)
	assert.Len(t, second.Slots(), 4)

	other := r.GetOrCreate(200)
	assert.NotSame(t, first, other)
}

func TestSwitchOutOfRange(t *testing.T) {
	r := NewRegistry(4)
	owner := testutil.NewCharacter(1, 2)

	require.Error(t, r.Switch(owner, 4))
	require.Error(t, r.Switch(owner, -1))
	require.NoError(t, r.Switch(owner, 3))
}

// TestSwitchScenario is the full switch protocol: total count 4, two live
// quick-slots.
func TestSwitchScenario(t *testing.T) {
	r := NewRegistry(4)
	owner := testutil.NewCharacter(1, 2)

	// Quickbar 0 active, equip A and B, switch to quickbar 1.
	owner.Equip("A", "B")
	require.NoError(t, r.Switch(owner, 1))

	store := r.GetOrCreate(1)
	assert.Equal(t, "A|B|", store.Slots()[0], "outgoing quickbar must be captured before switching")
	assert.Equal(t, []string{"", ""}, owner.Items(), "never-populated quickbar clears live slots")

	// Equip C in slot 0 only, then switch back to quickbar 0.
	owner.Equip("C", "")
	require.NoError(t, r.Switch(owner, 0))

	assert.Equal(t, []string{"A", "B"}, owner.Items(), "edits made on quickbar 0 must survive the round trip")
	assert.Equal(t, "C||", store.Slots()[1])
	assert.Equal(t, 0, store.ActiveIndex())
}

func TestSwitchPreservesUnsavedEdits(t *testing.T) {
	r := NewRegistry(4)
	owner := testutil.NewCharacter(7, 2)

	owner.Equip("A", "B")
	require.NoError(t, r.Switch(owner, 1))

	// Edit quickbar 1, switch away and back.
	owner.Equip("C", "D")
	require.NoError(t, r.Switch(owner, 0))
	require.NoError(t, r.Switch(owner, 1))

	assert.Equal(t, []string{"C", "D"}, owner.Items())
}

func TestCaptureForPersist(t *testing.T) {
	r := NewRegistry(4)
	owner := testutil.NewCharacter(1, 2)

	owner.Equip("A", "B")
	require.NoError(t, r.Switch(owner, 1))
	require.NoError(t, r.Switch(owner, 0))

	// Live edits after the last switch.
	owner.Equip("X", "Y")

	rec := r.CaptureForPersist(owner)
	assert.Equal(t, int64(1), rec.CharacterID)
	assert.Equal(t, 0, rec.ActiveIndex)
	require.Len(t, rec.Slots, 4)
	assert.Equal(t, "A|B|", rec.Slots[0], "record carries the store's data as of the last switch")

	// The in-memory store itself must reflect the latest live state.
	store := r.GetOrCreate(1)
	assert.Equal(t, "X|Y|", store.Slots()[0])
}

func TestRestoreFromPersisted(t *testing.T) {
	r := NewRegistry(4)
	owner := testutil.NewCharacter(1, 2)

	held := r.GetOrCreate(1) // reference held before the load

	r.RestoreFromPersisted(owner, Record{
		CharacterID: 1,
		ActiveIndex: 2,
		Slots:       []string{"X|", "Y|", "Z|"},
	})

	// Store padded to the configured count, loaded data intact, and the
	// previously held reference observes all of it.
	require.Len(t, held.Slots(), 4)
	assert.Equal(t, "", held.Slots()[3])
	assert.Equal(t, 2, held.ActiveIndex())

	// Live equipment is the decode of "Z|".
	assert.Equal(t, []string{"Z", ""}, owner.Items())
}

func TestQuickbarCountAdjustableAtRuntime(t *testing.T) {
	r := NewRegistry(4)
	owner := testutil.NewCharacter(1, 1)

	owner.Equip("high")
	require.NoError(t, r.Switch(owner, 3))
	owner.Equip("top")
	require.NoError(t, r.Switch(owner, 0))

	// Shrink the configured count; the snapshot for bar 3 must survive.
	r.SetQuickbarCount(2)
	assert.Equal(t, 2, r.QuickbarCount())
	require.Error(t, r.Switch(owner, 3))

	// Raise it again: bar 3 is restorable.
	r.SetQuickbarCount(4)
	require.NoError(t, r.Switch(owner, 3))
	assert.Equal(t, []string{"top"}, owner.Items())
}
