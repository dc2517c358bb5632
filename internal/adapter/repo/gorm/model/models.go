package model

import "time"

type SessionState struct {
	SessionID string    `gorm:"column:session_id;primaryKey"`
	PlayerRow int64     `gorm:"column:player_row"`
	PlayerCol int64     `gorm:"column:player_col"`
	Held      *int64    `gorm:"column:held"`
	Mode      string    `gorm:"column:mode"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (SessionState) TableName() string { return "session_states" }

type CellOverride struct {
	SessionID string    `gorm:"column:session_id;primaryKey"`
	Row       int64     `gorm:"column:cell_row;primaryKey"`
	Col       int64     `gorm:"column:cell_col;primaryKey"`
	Value     int64     `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (CellOverride) TableName() string { return "cell_overrides" }

type DomainEvent struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	SessionID  string    `gorm:"column:session_id"`
	Type       string    `gorm:"column:type"`
	OccurredAt time.Time `gorm:"column:occurred_at"`
	Payload    []byte    `gorm:"column:payload"`
}

func (DomainEvent) TableName() string { return "domain_events" }
