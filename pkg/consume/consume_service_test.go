package consume

import (
	"Larder-Backend/domain"
	"Larder-Backend/entities"
	"Larder-Backend/pkg/events"
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
	db          *gorm.DB
	service     ConsumeService
	repository  lot.LotRepository
	productID   uuid.UUID
	containerID uuid.UUID
}

func setupEnv(t *testing.T) *testEnv {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Container{}, &entities.Product{}, &entities.Lot{}))

	repository := lot.NewLotRepository(db)
	service := NewConsumeService(repository, events.NewNotifier())

	product := &entities.Product{ID: uuid.New(), Name: "Milk", Unit: "l"}
	require.NoError(t, db.Create(product).Error)

	pantry := &entities.Container{ID: uuid.New(), Name: "Pantry"}
	require.NoError(t, db.Create(pantry).Error)

	return &testEnv{
		db:          db,
		service:     service,
		repository:  repository,
		productID:   product.ID,
		containerID: pantry.ID,
	}
}

type lotSeed struct {
	remaining float64
	openedAt  *time.Time
	expiresAt *time.Time
}

func (e *testEnv) addLot(t *testing.T, seed lotSeed) uuid.UUID {
	l := &entities.Lot{
		ID:                uuid.New(),
		ProductID:         e.productID,
		ContainerID:       e.containerID,
		RemainingQuantity: decimal.NewFromFloat(seed.remaining),
		AcquiredAt:        time.Now().UTC(),
		Opened:            seed.openedAt != nil,
		OpenedAt:          seed.openedAt,
		ExpiresAt:         seed.expiresAt,
	}
	require.NoError(t, e.db.Create(l).Error)
	return l.ID
}

func timePtr(t time.Time) *time.Time { return &t }

func (e *testEnv) consume(t *testing.T, amount float64) domain.ConsumeResponse {
	res, err := e.service.Consume(context.Background(), domain.ConsumeRequest{
		ProductID:   e.productID.String(),
		ContainerID: e.containerID.String(),
		Amount:      amount,
	})
	require.NoError(t, err)
	return res
}

func (e *testEnv) totalRemaining(t *testing.T) decimal.Decimal {
	lots, err := e.repository.QueryLots(context.Background(), lot.LotQuery{
		ProductID:   e.productID.String(),
		ContainerID: e.containerID.String(),
	})
	require.NoError(t, err)

	total := decimal.Zero
	for _, l := range lots {
		total = total.Add(l.RemainingQuantity)
	}
	return total
}

// The smallest lots go first, an opened lot ahead of an unopened one of equal
// size, so that partial lots are finished off before fresh ones are broken
// into.
func TestConsumeDrainsSmallestOpenedFirst(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	full := env.addLot(t, lotSeed{remaining: 5})
	opened := env.addLot(t, lotSeed{
		remaining: 2,
		openedAt:  timePtr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
	unopened := env.addLot(t, lotSeed{
		remaining: 2,
		expiresAt: timePtr(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
	})

	res := env.consume(t, 3)
	assert.True(t, res.Consumed.Equal(decimal.NewFromInt(3)))
	assert.True(t, res.Shortfall.IsZero())

	// The opened lot is drained to zero and removed.
	_, err := env.repository.GetLotByID(ctx, opened.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The unopened same-size lot gives up the last unit and is now opened.
	partial, err := env.repository.GetLotByID(ctx, unopened.String())
	require.NoError(t, err)
	assert.True(t, partial.RemainingQuantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, partial.Opened)
	assert.NotNil(t, partial.OpenedAt)

	// The large lot is untouched.
	untouched, err := env.repository.GetLotByID(ctx, full.String())
	require.NoError(t, err)
	assert.True(t, untouched.RemainingQuantity.Equal(decimal.NewFromInt(5)))
	assert.False(t, untouched.Opened)
}

func TestConsumeSoonestExpiryBreaksTies(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	later := env.addLot(t, lotSeed{
		remaining: 2,
		expiresAt: timePtr(time.Now().UTC().AddDate(0, 1, 0)),
	})
	sooner := env.addLot(t, lotSeed{
		remaining: 2,
		expiresAt: timePtr(time.Now().UTC().AddDate(0, 0, 2)),
	})
	undated := env.addLot(t, lotSeed{remaining: 2})

	env.consume(t, 2)

	_, err := env.repository.GetLotByID(ctx, sooner.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	for _, id := range []uuid.UUID{later, undated} {
		kept, err := env.repository.GetLotByID(ctx, id.String())
		require.NoError(t, err)
		assert.True(t, kept.RemainingQuantity.Equal(decimal.NewFromInt(2)))
	}
}

func TestConsumeExactDepletion(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	id := env.addLot(t, lotSeed{remaining: 2})

	res := env.consume(t, 2)
	assert.True(t, res.Consumed.Equal(decimal.NewFromInt(2)))
	assert.True(t, res.Shortfall.IsZero())

	_, err := env.repository.GetLotByID(ctx, id.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestConsumeShortfall(t *testing.T) {
	env := setupEnv(t)

	env.addLot(t, lotSeed{remaining: 1})
	env.addLot(t, lotSeed{remaining: 1.5})

	res := env.consume(t, 4)
	assert.True(t, res.Consumed.Equal(decimal.NewFromFloat(2.5)))
	assert.True(t, res.Shortfall.Equal(decimal.NewFromFloat(1.5)))

	assert.True(t, env.totalRemaining(t).IsZero())
}

func TestConsumeNothingInStock(t *testing.T) {
	env := setupEnv(t)

	res := env.consume(t, 3)
	assert.True(t, res.Consumed.IsZero())
	assert.True(t, res.Shortfall.Equal(decimal.NewFromInt(3)))
}

func TestConsumeInvalidAmount(t *testing.T) {
	env := setupEnv(t)

	for _, amount := range []float64{0, -1} {
		_, err := env.service.Consume(context.Background(), domain.ConsumeRequest{
			ProductID:   env.productID.String(),
			ContainerID: env.containerID.String(),
			Amount:      amount,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
}

func TestConsumeConservation(t *testing.T) {
	env := setupEnv(t)

	env.addLot(t, lotSeed{remaining: 2})
	env.addLot(t, lotSeed{remaining: 3.5})
	env.addLot(t, lotSeed{remaining: 1})

	before := env.totalRemaining(t)
	res := env.consume(t, 4.25)

	after := env.totalRemaining(t)
	assert.True(t, before.Sub(after).Equal(res.Consumed))
	assert.True(t, res.Consumed.Add(res.Shortfall).Equal(decimal.NewFromFloat(4.25)))
}

// Consumption is scoped to the named container only; lots of the same product
// elsewhere are never drawn from.
func TestConsumeScopedToContainer(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	fridge := &entities.Container{ID: uuid.New(), Name: "Fridge"}
	require.NoError(t, env.db.Create(fridge).Error)

	elsewhere := &entities.Lot{
		ID:                uuid.New(),
		ProductID:         env.productID,
		ContainerID:       fridge.ID,
		RemainingQuantity: decimal.NewFromInt(5),
		AcquiredAt:        time.Now().UTC(),
	}
	require.NoError(t, env.db.Create(elsewhere).Error)

	env.addLot(t, lotSeed{remaining: 1})

	res := env.consume(t, 3)
	assert.True(t, res.Consumed.Equal(decimal.NewFromInt(1)))
	assert.True(t, res.Shortfall.Equal(decimal.NewFromInt(2)))

	kept, err := env.repository.GetLotByID(ctx, elsewhere.ID.String())
	require.NoError(t, err)
	assert.True(t, kept.RemainingQuantity.Equal(decimal.NewFromInt(5)))
}

func TestConsumeKeepsOpenedAtOnRepeatDraw(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	openedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	id := env.addLot(t, lotSeed{remaining: 5, openedAt: &openedAt})

	env.consume(t, 1)
	env.consume(t, 1)

	l, err := env.repository.GetLotByID(ctx, id.String())
	require.NoError(t, err)
	assert.True(t, l.RemainingQuantity.Equal(decimal.NewFromInt(3)))
	require.NotNil(t, l.OpenedAt)
	assert.True(t, l.OpenedAt.Equal(openedAt))
}
