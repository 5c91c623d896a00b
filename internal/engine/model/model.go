package model

import "time"

type BaseModel struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

const (
	// NotDeleted and Deleted are the soft-delete flag values on
	// top-level entities. Reads exclude deleted rows by default.
	NotDeleted = 0
	Deleted    = 1
)
