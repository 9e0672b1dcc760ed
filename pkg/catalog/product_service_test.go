package catalog

import (
	"Larder-Backend/domain"
	"Larder-Backend/entities"
	"Larder-Backend/pkg/events"
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupService(t *testing.T) ProductService {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Product{}))

	return NewProductService(NewProductRepository(db), events.NewNotifier())
}

func TestAddProduct(t *testing.T) {
	service := setupService(t)

	res, err := service.AddProduct(context.Background(), domain.AddProductRequest{
		Name:            "Milk",
		Unit:            "l",
		NominalQuantity: 1,
		Barcode:         "8712345678906",
	})
	require.NoError(t, err)
	assert.Equal(t, "Milk", res.Name)
	assert.Equal(t, "l", res.Unit)
	assert.True(t, res.NominalQuantity.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, "8712345678906", res.Barcode)
}

func TestUpdateProduct(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	res, err := service.AddProduct(ctx, domain.AddProductRequest{Name: "Milk", Unit: "l"})
	require.NoError(t, err)

	updated, err := service.UpdateProduct(ctx, res.ID, domain.UpdateProductRequest{
		Name: "Whole milk",
		Unit: "ml",
	})
	require.NoError(t, err)
	assert.Equal(t, "Whole milk", updated.Name)
	assert.Equal(t, "ml", updated.Unit)

	_, err = service.UpdateProduct(ctx, uuid.NewString(), domain.UpdateProductRequest{Name: "Nope"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestDeleteProduct(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	res, err := service.AddProduct(ctx, domain.AddProductRequest{Name: "Milk", Unit: "l"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteProduct(ctx, res.ID))

	_, err = service.GetProduct(ctx, res.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	err = service.DeleteProduct(ctx, res.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGetProducts(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	for _, name := range []string{"Milk", "Flour", "Eggs"} {
		_, err := service.AddProduct(ctx, domain.AddProductRequest{Name: name, Unit: "pcs"})
		require.NoError(t, err)
	}

	products, count, err := service.GetProducts(ctx, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
	assert.Len(t, products, 2)

	rest, _, err := service.GetProducts(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}
