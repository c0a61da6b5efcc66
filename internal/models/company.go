package models

import "gorm.io/datatypes"

// Company is a directory entry listed on the companies page.
type Company struct {
	BaseModel

	Name        string         `gorm:"not null;size:200;index" json:"name"`
	Domain      *string        `gorm:"size:253;uniqueIndex" json:"domain,omitempty"`
	Description string         `gorm:"size:2000" json:"description,omitempty"`
	Metadata    datatypes.JSON `json:"metadata,omitempty"`
}
