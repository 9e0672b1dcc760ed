package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessAddLot         = "lot added successfully"
	MessageSuccessUpdateLot      = "lot updated successfully"
	MessageSuccessMoveLots       = "lots moved successfully"
	MessageSuccessDeleteLot      = "lot deleted successfully"
	MessageSuccessGetLots        = "lots retrieved successfully"
	MessageSuccessConsume        = "stock consumed successfully"
	MessageSuccessNotifyExpiring = "expiry notification sent successfully"

	MessageFailedAddLot         = "failed to add lot"
	MessageFailedUpdateLot      = "failed to update lot"
	MessageFailedMoveLots       = "failed to move lots"
	MessageFailedDeleteLot      = "failed to delete lot"
	MessageFailedGetLots        = "failed to retrieve lots"
	MessageFailedConsume        = "failed to consume stock"
	MessageFailedNotifyExpiring = "failed to send expiry notification"

	ErrLotNotFound        = errors.New("lot not found")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrInvalidExpiryDate  = errors.New("invalid expiry date")
	ErrInvalidAcquireDate = errors.New("invalid acquisition date")
)

type (
	AddLotRequest struct {
		ProductID   string  `json:"product_id" validate:"required,uuid"`
		ContainerID string  `json:"container_id" validate:"required,uuid"`
		Quantity    float64 `json:"quantity" validate:"required,gt=0"`
		AcquiredAt  string  `json:"acquired_at" validate:"omitempty"`
		ExpiresAt   string  `json:"expires_at" validate:"omitempty"`
		Notes       string  `json:"notes" validate:"omitempty"`
	}

	UpdateLotRequest struct {
		ContainerID       string   `json:"container_id" validate:"omitempty,uuid"`
		AcquiredAt        string   `json:"acquired_at" validate:"omitempty"`
		ExpiresAt         string   `json:"expires_at" validate:"omitempty"`
		Notes             string   `json:"notes" validate:"omitempty"`
		RemainingQuantity *float64 `json:"remaining_quantity" validate:"omitempty"`
	}

	MoveLotsRequest struct {
		ProductID         string `json:"product_id" validate:"required,uuid"`
		ContainerID       string `json:"container_id" validate:"required,uuid"`
		TargetContainerID string `json:"target_container_id" validate:"required,uuid"`
	}

	MoveLotsResponse struct {
		Moved int64 `json:"moved"`
	}

	QueryLotsRequest struct {
		ProductID          string `query:"product_id" validate:"omitempty,uuid"`
		ContainerID        string `query:"container_id" validate:"omitempty,uuid"`
		Expired            bool   `query:"expired"`
		ExpiringWithinDays int    `query:"expiring_within_days" validate:"omitempty,min=1"`
	}

	ConsumeRequest struct {
		ProductID   string  `json:"product_id" validate:"required,uuid"`
		ContainerID string  `json:"container_id" validate:"required,uuid"`
		Amount      float64 `json:"amount" validate:"required,gt=0"`
	}

	ConsumeResponse struct {
		Consumed  decimal.Decimal `json:"consumed"`
		Shortfall decimal.Decimal `json:"shortfall"`
	}

	LotResponse struct {
		ID                string          `json:"id"`
		ProductID         string          `json:"product_id"`
		ContainerID       string          `json:"container_id"`
		RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
		AcquiredAt        time.Time       `json:"acquired_at"`
		Opened            bool            `json:"opened"`
		OpenedAt          *time.Time      `json:"opened_at,omitempty"`
		ExpiresAt         *time.Time      `json:"expires_at,omitempty"`
		Notes             string          `json:"notes,omitempty"`
		CreatedAt         time.Time       `json:"created_at"`
	}

	NotifyExpiringRequest struct {
		Email      string `json:"email" validate:"required,email"`
		WithinDays int    `json:"within_days" validate:"omitempty,min=1"`
	}

	NotifyExpiringResponse struct {
		Notified int `json:"notified"`
	}
)
