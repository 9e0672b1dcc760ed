package entities

import (
	"github.com/google/uuid"
)

type Container struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name     string     `json:"name"`
	ParentID *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Color    string     `json:"color,omitempty"`
	ImageURL string     `json:"image_url,omitempty"`

	Parent *Container `gorm:"foreignKey:ParentID"`
	Lots   []*Lot     `gorm:"foreignKey:ContainerID"`
	Timestamp
}
