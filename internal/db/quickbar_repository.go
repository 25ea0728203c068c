package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/quickbars/internal/quickbar"
)

// QuickbarRepository persists per-character quickbar records.
type QuickbarRepository struct {
	db *pgxpool.Pool
}

// NewQuickbarRepository creates a new QuickbarRepository.
func NewQuickbarRepository(db *pgxpool.Pool) *QuickbarRepository {
	return &QuickbarRepository{db: db}
}

// Load returns the character's quickbar record.
// Returns nil, nil if nothing has been persisted yet (not an error).
func (r *QuickbarRepository) Load(ctx context.Context, characterID int64) (*quickbar.Record, error) {
	rec := quickbar.Record{CharacterID: characterID}
	err := r.db.QueryRow(ctx,
		`SELECT active_index, slots FROM quickbars WHERE character_id = $1`,
		characterID,
	).Scan(&rec.ActiveIndex, &rec.Slots)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying quickbars for character %d: %w", characterID, err)
	}
	return &rec, nil
}

// Save upserts the character's quickbar record.
func (r *QuickbarRepository) Save(ctx context.Context, rec quickbar.Record) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO quickbars (character_id, active_index, slots, updated_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (character_id) DO UPDATE
		 SET active_index = EXCLUDED.active_index,
		     slots = EXCLUDED.slots,
		     updated_at = EXCLUDED.updated_at`,
		rec.CharacterID, rec.ActiveIndex, rec.Slots, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("saving quickbars for character %d: %w", rec.CharacterID, err)
	}
	return nil
}

// DeleteByCharacter removes the character's quickbar record (character
// deletion). Deleting a character that has no record is not an error.
func (r *QuickbarRepository) DeleteByCharacter(ctx context.Context, characterID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM quickbars WHERE character_id = $1`, characterID,
	)
	if err != nil {
		return fmt.Errorf("deleting quickbars for character %d: %w", characterID, err)
	}
	return nil
}
