package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name            string          `json:"name"`
	Unit            string          `json:"unit"`
	NominalQuantity decimal.Decimal `gorm:"type:numeric" json:"nominal_quantity"`
	Barcode         string          `gorm:"index" json:"barcode,omitempty"`
	ImageURL        string          `json:"image_url,omitempty"`

	Lots []*Lot `gorm:"foreignKey:ProductID"`
	Timestamp
}
