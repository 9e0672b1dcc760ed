package stats

import (
	"Larder-Backend/domain"
	"Larder-Backend/entities"
	"Larder-Backend/pkg/container"
	"Larder-Backend/pkg/lot"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db      *gorm.DB
	service StatsService
}

func setupEnv(t *testing.T) *testEnv {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Container{}, &entities.Product{}, &entities.Lot{}))

	service := NewStatsService(container.NewContainerRepository(db), lot.NewLotRepository(db))
	return &testEnv{db: db, service: service}
}

func (e *testEnv) addContainer(t *testing.T, name string, parentID *uuid.UUID) uuid.UUID {
	c := &entities.Container{ID: uuid.New(), Name: name, ParentID: parentID}
	require.NoError(t, e.db.Create(c).Error)
	return c.ID
}

func (e *testEnv) addLot(t *testing.T, productID, containerID uuid.UUID, opts func(*entities.Lot)) uuid.UUID {
	l := &entities.Lot{
		ID:                uuid.New(),
		ProductID:         productID,
		ContainerID:       containerID,
		RemainingQuantity: decimal.NewFromInt(1),
		AcquiredAt:        time.Now().UTC(),
	}
	if opts != nil {
		opts(l)
	}
	require.NoError(t, e.db.Create(l).Error)
	return l.ID
}

// Container stats count direct children and direct lots only; nothing nested
// deeper is included.
func TestGetContainerStats(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	pantry := env.addContainer(t, "Pantry", nil)
	shelf := env.addContainer(t, "Shelf", &pantry)
	env.addContainer(t, "Box", &shelf)

	product := uuid.New()
	env.addLot(t, product, pantry, nil)
	env.addLot(t, product, pantry, nil)
	env.addLot(t, product, shelf, nil)

	res, err := env.service.GetContainerStats(ctx, pantry.String())
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.ChildContainer)
	assert.EqualValues(t, 2, res.Lots)

	_, err = env.service.GetContainerStats(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrContainerNotFound)
}

func TestGroupLotsByProduct(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	pantry := env.addContainer(t, "Pantry", nil)
	shelf := env.addContainer(t, "Shelf", &pantry)

	milk := uuid.New()
	flour := uuid.New()
	env.addLot(t, milk, pantry, nil)
	env.addLot(t, flour, pantry, nil)
	env.addLot(t, milk, pantry, nil)
	env.addLot(t, milk, shelf, nil)

	groups, err := env.service.GroupLotsByProduct(ctx, pantry.String())
	require.NoError(t, err)
	require.Len(t, groups, 2)

	byProduct := map[string]int{}
	for _, g := range groups {
		byProduct[g.ProductID] = len(g.Lots)
	}
	assert.Equal(t, 2, byProduct[milk.String()])
	assert.Equal(t, 1, byProduct[flour.String()])

	_, err = env.service.GroupLotsByProduct(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrContainerNotFound)
}

func TestGroupLotsByProductEmptyContainer(t *testing.T) {
	env := setupEnv(t)

	pantry := env.addContainer(t, "Pantry", nil)

	groups, err := env.service.GroupLotsByProduct(context.Background(), pantry.String())
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestGetDashboardStats(t *testing.T) {
	env := setupEnv(t)
	now := time.Now().UTC()

	pantry := env.addContainer(t, "Pantry", nil)
	env.addContainer(t, "Fridge", nil)

	product := uuid.New()
	env.addLot(t, product, pantry, nil)
	env.addLot(t, product, pantry, func(l *entities.Lot) {
		openedAt := now.AddDate(0, 0, -1)
		l.Opened = true
		l.OpenedAt = &openedAt
	})
	env.addLot(t, product, pantry, func(l *entities.Lot) {
		expired := now.AddDate(0, 0, -2)
		l.ExpiresAt = &expired
	})
	env.addLot(t, product, pantry, func(l *entities.Lot) {
		soon := now.AddDate(0, 0, 2)
		l.ExpiresAt = &soon
	})

	res, err := env.service.GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.TotalContainers)
	assert.EqualValues(t, 4, res.TotalLots)
	assert.EqualValues(t, 1, res.OpenedLots)
	assert.EqualValues(t, 1, res.ExpiredLots)
	assert.EqualValues(t, 1, res.ExpiringSoonLots)
}
