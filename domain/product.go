package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessAddProduct    = "product added successfully"
	MessageSuccessUpdateProduct = "product updated successfully"
	MessageSuccessDeleteProduct = "product deleted successfully"
	MessageSuccessGetProducts   = "products retrieved successfully"

	MessageFailedAddProduct    = "failed to add product"
	MessageFailedUpdateProduct = "failed to update product"
	MessageFailedDeleteProduct = "failed to delete product"
	MessageFailedGetProducts   = "failed to retrieve products"

	ErrProductNotFound = errors.New("product not found")
)

type (
	AddProductRequest struct {
		Name            string  `json:"name" validate:"required"`
		Unit            string  `json:"unit" validate:"required"`
		NominalQuantity float64 `json:"nominal_quantity" validate:"omitempty,gt=0"`
		Barcode         string  `json:"barcode" validate:"omitempty"`
	}

	UpdateProductRequest struct {
		Name            string  `json:"name" validate:"omitempty"`
		Unit            string  `json:"unit" validate:"omitempty"`
		NominalQuantity float64 `json:"nominal_quantity" validate:"omitempty,gt=0"`
		Barcode         string  `json:"barcode" validate:"omitempty"`
	}

	ProductResponse struct {
		ID              string          `json:"id"`
		Name            string          `json:"name"`
		Unit            string          `json:"unit"`
		NominalQuantity decimal.Decimal `json:"nominal_quantity"`
		Barcode         string          `json:"barcode,omitempty"`
		ImageURL        string          `json:"image_url,omitempty"`
		CreatedAt       time.Time       `json:"created_at"`
	}
)
