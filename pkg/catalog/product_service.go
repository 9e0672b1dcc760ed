package catalog

import (
	"Larder-Backend/domain"
	"Larder-Backend/entities"
	"Larder-Backend/pkg/events"
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	ProductService interface {
		AddProduct(ctx context.Context, req domain.AddProductRequest) (domain.ProductResponse, error)
		UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest) (domain.ProductResponse, error)
		DeleteProduct(ctx context.Context, id string) error
		GetProduct(ctx context.Context, id string) (domain.ProductResponse, error)
		GetProducts(ctx context.Context, page, limit int) ([]domain.ProductResponse, int64, error)
	}

	productService struct {
		productRepository ProductRepository
		notifier          *events.Notifier
	}
)

func NewProductService(productRepository ProductRepository, notifier *events.Notifier) ProductService {
	return &productService{
		productRepository: productRepository,
		notifier:          notifier,
	}
}

func (s *productService) AddProduct(ctx context.Context, req domain.AddProductRequest) (domain.ProductResponse, error) {
	product := &entities.Product{
		ID:              uuid.New(),
		Name:            req.Name,
		Unit:            req.Unit,
		NominalQuantity: decimal.NewFromFloat(req.NominalQuantity),
		Barcode:         req.Barcode,
	}

	if err := s.productRepository.CreateProduct(ctx, product); err != nil {
		return domain.ProductResponse{}, err
	}

	s.notifier.Publish(events.Change{
		Type:     events.RecordProduct,
		Op:       events.OpCreated,
		RecordID: product.ID.String(),
		Record:   product,
	})

	return productResponse(product), nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest) (domain.ProductResponse, error) {
	product, err := s.productRepository.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProductResponse{}, domain.ErrProductNotFound
		}
		return domain.ProductResponse{}, err
	}

	if req.Name != "" {
		product.Name = req.Name
	}

	if req.Unit != "" {
		product.Unit = req.Unit
	}

	if req.NominalQuantity > 0 {
		product.NominalQuantity = decimal.NewFromFloat(req.NominalQuantity)
	}

	if req.Barcode != "" {
		product.Barcode = req.Barcode
	}

	if err := s.productRepository.UpdateProduct(ctx, product); err != nil {
		return domain.ProductResponse{}, err
	}

	s.notifier.Publish(events.Change{
		Type:     events.RecordProduct,
		Op:       events.OpUpdated,
		RecordID: product.ID.String(),
		Record:   product,
	})

	return productResponse(product), nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.productRepository.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrProductNotFound
		}
		return err
	}

	if err := s.productRepository.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.notifier.Publish(events.Change{
		Type:     events.RecordProduct,
		Op:       events.OpDeleted,
		RecordID: product.ID.String(),
	})

	return nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (domain.ProductResponse, error) {
	product, err := s.productRepository.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProductResponse{}, domain.ErrProductNotFound
		}
		return domain.ProductResponse{}, err
	}

	return productResponse(product), nil
}

func (s *productService) GetProducts(ctx context.Context, page, limit int) ([]domain.ProductResponse, int64, error) {
	products, count, err := s.productRepository.GetProducts(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	var response []domain.ProductResponse
	for _, product := range products {
		response = append(response, productResponse(product))
	}

	return response, count, nil
}

func productResponse(product *entities.Product) domain.ProductResponse {
	return domain.ProductResponse{
		ID:              product.ID.String(),
		Name:            product.Name,
		Unit:            product.Unit,
		NominalQuantity: product.NominalQuantity,
		Barcode:         product.Barcode,
		ImageURL:        product.ImageURL,
		CreatedAt:       product.CreatedAt,
	}
}
