package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Lot struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ProductID         uuid.UUID       `gorm:"type:uuid;index" json:"product_id"`
	ContainerID       uuid.UUID       `gorm:"type:uuid;index" json:"container_id"`
	RemainingQuantity decimal.Decimal `gorm:"type:numeric" json:"remaining_quantity"`
	AcquiredAt        time.Time       `json:"acquired_at"`
	Opened            bool            `json:"opened"`
	OpenedAt          *time.Time      `json:"opened_at,omitempty"`
	ExpiresAt         *time.Time      `gorm:"index" json:"expires_at,omitempty"`
	Notes             string          `gorm:"type:text" json:"notes,omitempty"`

	Product   *Product   `gorm:"foreignKey:ProductID"`
	Container *Container `gorm:"foreignKey:ContainerID"`
	Timestamp
}
