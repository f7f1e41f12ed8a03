package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/invoice_wizard/internal/apperrors"
	portsrepo "github.com/SscSPs/invoice_wizard/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_wizard/internal/models"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const slotsTable = "slots"

type PgxSlotRepository struct {
	BaseRepository
	now func() time.Time
}

// newPgxSlotRepository creates a slot store backed by the slots table.
func newPgxSlotRepository(pool *pgxpool.Pool) *PgxSlotRepository {
	return &PgxSlotRepository{
		BaseRepository: BaseRepository{Pool: pool},
		now:            time.Now,
	}
}

// Ensure implementation matches interface
var _ portsrepo.SlotRepositoryFacade = (*PgxSlotRepository)(nil)

// LoadSlot retrieves the value stored under key.
func (r *PgxSlotRepository) LoadSlot(ctx context.Context, key string) ([]byte, error) {
	query, args, err := r.builder().
		Select("slot_key", "value", "revision", "updated_at").
		From(slotsTable).
		Where(sq.Eq{"slot_key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build slot query: %w", err)
	}

	var slot models.Slot
	err = r.Pool.QueryRow(ctx, query, args...).Scan(&slot.Key, &slot.Value, &slot.Revision, &slot.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load slot %s: %w", key, err)
	}
	return slot.Value, nil
}

// SaveSlot upserts the value stored under key and bumps its revision.
func (r *PgxSlotRepository) SaveSlot(ctx context.Context, key string, value []byte) error {
	query, args, err := r.builder().
		Insert(slotsTable).
		Columns("slot_key", "value", "revision", "updated_at").
		Values(key, string(value), 1, r.now().UTC()).
		Suffix(`ON CONFLICT (slot_key) DO UPDATE SET
			value = EXCLUDED.value,
			revision = ` + slotsTable + `.revision + 1,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build slot upsert: %w", err)
	}

	if _, err := r.Pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save slot %s: %w", key, err)
	}
	return nil
}

// DeleteSlot removes key. Missing keys are not an error.
func (r *PgxSlotRepository) DeleteSlot(ctx context.Context, key string) error {
	query, args, err := r.builder().
		Delete(slotsTable).
		Where(sq.Eq{"slot_key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build slot delete: %w", err)
	}

	if _, err := r.Pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}
	return nil
}
