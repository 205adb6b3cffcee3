package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/devempire-go/internal/domain/game"
	"github.com/andrescamacho/devempire-go/internal/domain/shared"
)

// DefaultSlot is the save slot used when none is configured
const DefaultSlot = "default"

// GormSnapshotRepository stores the game in one named slot row
type GormSnapshotRepository struct {
	db    *gorm.DB
	slot  string
	clock shared.Clock
}

// NewGormSnapshotRepository creates a snapshot repository bound to one slot
func NewGormSnapshotRepository(db *gorm.DB, slot string, clock shared.Clock) *GormSnapshotRepository {
	if slot == "" {
		slot = DefaultSlot
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormSnapshotRepository{db: db, slot: slot, clock: clock}
}

func (r *GormSnapshotRepository) Slot() string { return r.slot }

// Load reads and decodes the slot. game.ErrNoSnapshot is returned when the
// slot was never written.
func (r *GormSnapshotRepository) Load(ctx context.Context) (*game.State, error) {
	var model SnapshotModel
	err := r.db.WithContext(ctx).Where("slot = ?", r.slot).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, game.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %q: %w", r.slot, err)
	}

	st, err := DecodeSnapshot(model.Payload, model.Checksum, r.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %q: %w", r.slot, err)
	}
	return st, nil
}

// Save encodes the state and replaces the slot row
func (r *GormSnapshotRepository) Save(ctx context.Context, st *game.State) error {
	payload, sum, err := EncodeSnapshot(st)
	if err != nil {
		return err
	}

	model := &SnapshotModel{
		Slot:          r.slot,
		FormatVersion: SnapshotFormatVersion,
		Payload:       payload,
		Checksum:      sum,
		SizeBytes:     len(payload),
		UpdatedAt:     r.clock.Now(),
	}

	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"format_version", "payload", "checksum", "size_bytes", "updated_at"}),
	}).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", r.slot, err)
	}

	return nil
}

// Delete removes the slot. Deleting an empty slot is not an error.
func (r *GormSnapshotRepository) Delete(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("slot = ?", r.slot).Delete(&SnapshotModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete snapshot %q: %w", r.slot, err)
	}
	return nil
}

// Info describes the stored slot without decoding it
func (r *GormSnapshotRepository) Info(ctx context.Context) (*SnapshotModel, error) {
	var model SnapshotModel
	err := r.db.WithContext(ctx).
		Select("slot", "format_version", "checksum", "size_bytes", "updated_at").
		Where("slot = ?", r.slot).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, game.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %q: %w", r.slot, err)
	}
	return &model, nil
}
