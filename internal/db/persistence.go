package db

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/quickbars/internal/model"
	"github.com/udisondev/quickbars/internal/quickbar"
)

// saveAllConcurrency caps the number of parallel upserts during a flush.
const saveAllConcurrency = 4

// QuickbarPersistenceService wires the in-memory quickbar registry to the
// database. It is the adapter the host's save/load callbacks land on.
type QuickbarPersistenceService struct {
	repo     *QuickbarRepository
	registry *quickbar.Registry
}

// NewQuickbarPersistenceService creates a new service.
func NewQuickbarPersistenceService(repo *QuickbarRepository, registry *quickbar.Registry) *QuickbarPersistenceService {
	return &QuickbarPersistenceService{repo: repo, registry: registry}
}

// SaveCharacter persists the character's quickbars. The registry store is
// copied into the persisted record and then refreshed from the live
// quick-slots, so the in-memory state is current even if the process
// exits right after.
func (s *QuickbarPersistenceService) SaveCharacter(ctx context.Context, owner model.QuickslotOwner) error {
	rec := s.registry.CaptureForPersist(owner)
	if err := s.repo.Save(ctx, rec); err != nil {
		return fmt.Errorf("persisting quickbars for character %d: %w", rec.CharacterID, err)
	}

	slog.Info("quickbars saved",
		"characterID", rec.CharacterID,
		"activeIndex", rec.ActiveIndex,
		"quickbars", len(rec.Slots))
	return nil
}

// LoadCharacter restores the character's quickbars from the database and
// applies the active quickbar onto the live quick-slots. A character with
// nothing persisted keeps its lazily created empty store.
func (s *QuickbarPersistenceService) LoadCharacter(ctx context.Context, owner model.QuickslotOwner) error {
	rec, err := s.repo.Load(ctx, owner.CharacterID())
	if err != nil {
		return fmt.Errorf("loading quickbars for character %d: %w", owner.CharacterID(), err)
	}
	if rec == nil {
		s.registry.GetOrCreate(owner.CharacterID())
		return nil
	}

	s.registry.RestoreFromPersisted(owner, *rec)

	slog.Info("quickbars loaded",
		"characterID", rec.CharacterID,
		"activeIndex", rec.ActiveIndex,
		"quickbars", len(rec.Slots))
	return nil
}

// SaveAll flushes quickbars for every given character (autosave and
// shutdown). Characters are saved concurrently; the first failure is
// returned after the flush completes.
func (s *QuickbarPersistenceService) SaveAll(ctx context.Context, owners []model.QuickslotOwner) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(saveAllConcurrency)

	for _, owner := range owners {
		owner := owner
		g.Go(func() error {
			return s.SaveCharacter(ctx, owner)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("flushing quickbars: %w", err)
	}
	return nil
}
