package models

import "time"

// SystemSetting persists installation-wide values that should survive restarts,
// such as generated secrets.
type SystemSetting struct {
	Key       string    `gorm:"primaryKey;size:191"`
	Value     string    `gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
