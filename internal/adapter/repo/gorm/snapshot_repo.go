package gormrepo

import (
	"context"
	"errors"
	"time"

	"geoforge/internal/adapter/repo/gorm/model"
	"geoforge/internal/app/ports"
	"geoforge/internal/domain/game"
	"geoforge/internal/domain/grid"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SnapshotRepo struct {
	db *gorm.DB
}

func NewSnapshotRepo(db *gorm.DB) SnapshotRepo {
	return SnapshotRepo{db: db}
}

func (r SnapshotRepo) Load(ctx context.Context, sessionID string) (game.Snapshot, error) {
	db := getDBFromCtx(ctx, r.db)

	var state model.SessionState
	if err := db.Where("session_id = ?", sessionID).First(&state).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return game.Snapshot{}, ports.ErrNotFound
		}
		return game.Snapshot{}, err
	}

	rows := []model.CellOverride{}
	if err := db.
		Where("session_id = ?", sessionID).
		Order("cell_row, cell_col").
		Find(&rows).Error; err != nil {
		return game.Snapshot{}, err
	}

	snap := game.Snapshot{
		Player: grid.Cell{Row: int(state.PlayerRow), Col: int(state.PlayerCol)},
		Mode:   game.MovementMode(state.Mode),
	}
	if state.Held != nil {
		held := game.TokenValue(*state.Held)
		snap.Held = &held
	}
	for _, row := range rows {
		snap.Overrides = append(snap.Overrides, game.OverrideEntry{
			Cell:  grid.Cell{Row: int(row.Row), Col: int(row.Col)},
			Value: game.TokenValue(row.Value),
		})
	}
	return snap, nil
}

// Save upserts the session row and replaces the override set wholesale.
// The override table mirrors the in-memory sparse store, so a full
// replace keeps the two minimal together.
func (r SnapshotRepo) Save(ctx context.Context, sessionID string, snap game.Snapshot) error {
	db := getDBFromCtx(ctx, r.db)
	now := time.Now()

	state := model.SessionState{
		SessionID: sessionID,
		PlayerRow: int64(snap.Player.Row),
		PlayerCol: int64(snap.Player.Col),
		Mode:      string(snap.Mode),
		UpdatedAt: now,
	}
	if snap.Held != nil {
		held := int64(*snap.Held)
		state.Held = &held
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"player_row", "player_col", "held", "mode", "updated_at"}),
	}).Create(&state).Error; err != nil {
		return err
	}

	if err := db.Where("session_id = ?", sessionID).Delete(&model.CellOverride{}).Error; err != nil {
		return err
	}
	if len(snap.Overrides) == 0 {
		return nil
	}
	rows := make([]model.CellOverride, 0, len(snap.Overrides))
	for _, e := range snap.Overrides {
		rows = append(rows, model.CellOverride{
			SessionID: sessionID,
			Row:       int64(e.Cell.Row),
			Col:       int64(e.Cell.Col),
			Value:     int64(e.Value),
			UpdatedAt: now,
		})
	}
	return db.Create(&rows).Error
}

func (r SnapshotRepo) Clear(ctx context.Context, sessionID string) error {
	db := getDBFromCtx(ctx, r.db)
	if err := db.Where("session_id = ?", sessionID).Delete(&model.CellOverride{}).Error; err != nil {
		return err
	}
	if err := db.Where("session_id = ?", sessionID).Delete(&model.DomainEvent{}).Error; err != nil {
		return err
	}
	return db.Where("session_id = ?", sessionID).Delete(&model.SessionState{}).Error
}
