package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/quickbars/internal/config"
	"github.com/udisondev/quickbars/internal/db"
	"github.com/udisondev/quickbars/internal/model"
	"github.com/udisondev/quickbars/internal/quickbar"
	"github.com/udisondev/quickbars/internal/testutil"
)

// simQuickslots is the live quick-slot count of the simulated character.
const simQuickslots = 4

// scriptedSession replays a fixed sequence of quickbar keypresses, one per
// frame, then reports the script as finished.
type scriptedSession struct {
	owner   *testutil.Character
	presses []int
	pos     int
	done    chan struct{}
}

func (s *scriptedSession) PressedAction() (int, model.QuickslotOwner, bool) {
	if s.pos >= len(s.presses) {
		select {
		case <-s.done:
		default:
			close(s.done)
		}
		return 0, nil, false
	}
	index := s.presses[s.pos]
	s.pos++
	// Equip something distinctive before each switch so the captured
	// snapshots differ per quickbar.
	s.owner.Equip(fmt.Sprintf("item-%d", s.pos))
	return index, s.owner, true
}

// sessionLoop drives frame ticks and autosave flushes from a single
// goroutine. The quickbar store is unsynchronized and all calls for one
// character must stay serialized, so the flush runs between frames rather
// than on a goroutine of its own.
func sessionLoop(ctx context.Context, dispatcher *quickbar.Dispatcher, flush func(context.Context) error, frameInterval, autosaveInterval time.Duration) error {
	frames := time.NewTicker(frameInterval)
	defer frames.Stop()
	autosave := time.NewTicker(autosaveInterval)
	defer autosave.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-frames.C:
			dispatcher.Tick()
		case <-autosave.C:
			if err := flush(ctx); err != nil {
				slog.Error("autosave failed", "err", err)
			}
		}
	}
}

// runSimulate plays a scripted switching session for the character against
// the live database: load, a few frames of switches with periodic
// autosave, final flush, then prints the persisted result.
func runSimulate(ctx context.Context, cfg config.Quickbars, characterID int64) error {
	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	repo := db.NewQuickbarRepository(database.Pool())
	registry := quickbar.NewRegistry(cfg.QuickbarCount)
	persistence := db.NewQuickbarPersistenceService(repo, registry)

	owner := testutil.NewCharacter(characterID, simQuickslots)
	if err := persistence.LoadCharacter(ctx, owner); err != nil {
		return err
	}

	session := &scriptedSession{
		owner:   owner,
		presses: []int{1, 2, 0, 1, 0},
		done:    make(chan struct{}),
	}
	dispatcher := quickbar.NewDispatcher(registry, session)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-session.done
		cancel()
	}()

	flush := func(ctx context.Context) error {
		return persistence.SaveAll(ctx, []model.QuickslotOwner{owner})
	}
	if err := sessionLoop(runCtx, dispatcher, flush, cfg.FrameInterval(), cfg.AutosaveInterval()); err != nil {
		return fmt.Errorf("simulation loop: %w", err)
	}

	// Final flush, as a host would on logout.
	if err := persistence.SaveCharacter(ctx, owner); err != nil {
		return err
	}

	slog.Info("simulation finished",
		"characterID", characterID,
		"switches", len(session.presses))
	return runShow(ctx, cfg, characterID)
}
