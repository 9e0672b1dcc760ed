package consume

import (
	"Larder-Backend/domain"
	"Larder-Backend/pkg/events"
	"Larder-Backend/pkg/lot"
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	ConsumeService interface {
		Consume(ctx context.Context, req domain.ConsumeRequest) (domain.ConsumeResponse, error)
	}

	consumeService struct {
		lotRepository lot.LotRepository
		notifier      *events.Notifier
	}
)

func NewConsumeService(lotRepository lot.LotRepository, notifier *events.Notifier) ConsumeService {
	return &consumeService{
		lotRepository: lotRepository,
		notifier:      notifier,
	}
}

// Consume draws the requested amount down across the lots of one product in
// one container. Lots are drained smallest-first, already-opened before
// unopened, soonest-expiring before undated, so that partial lots are
// finished off before fresh ones are broken into. A lot drained to exactly
// zero is removed from the ledger.
//
// Under-supply is not an error: the response reports how much was actually
// consumed and how much could not be satisfied. The drawdown is applied lot
// by lot in priority order with no cross-lot transaction; a lot that vanished
// since it was gathered is treated as already depleted and skipped.
func (s *consumeService) Consume(ctx context.Context, req domain.ConsumeRequest) (domain.ConsumeResponse, error) {
	amount := decimal.NewFromFloat(req.Amount)
	if !amount.IsPositive() {
		return domain.ConsumeResponse{}, domain.ErrInvalidQuantity
	}

	candidates, err := s.lotRepository.QueryLots(ctx, lot.LotQuery{
		ProductID:   req.ProductID,
		ContainerID: req.ContainerID,
	})
	if err != nil {
		return domain.ConsumeResponse{}, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if c := a.RemainingQuantity.Cmp(b.RemainingQuantity); c != 0 {
			return c < 0
		}
		if c := compareTimePtr(a.OpenedAt, b.OpenedAt); c != 0 {
			return c < 0
		}
		return compareTimePtr(a.ExpiresAt, b.ExpiresAt) < 0
	})

	remaining := amount

	for _, candidate := range candidates {
		if remaining.IsZero() {
			break
		}

		// Re-read before writing: another consumer may have drained or
		// removed this lot since the candidates were gathered.
		current, err := s.lotRepository.GetLotByID(ctx, candidate.ID.String())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return domain.ConsumeResponse{}, err
		}

		take := decimal.Min(current.RemainingQuantity, remaining)
		if !take.IsPositive() {
			continue
		}

		current.RemainingQuantity = current.RemainingQuantity.Sub(take)
		if !current.Opened {
			now := time.Now().UTC()
			current.Opened = true
			current.OpenedAt = &now
		}

		if current.RemainingQuantity.IsZero() {
			if err := s.lotRepository.DeleteLot(ctx, current.ID.String()); err != nil {
				return domain.ConsumeResponse{}, err
			}

			s.notifier.Publish(events.Change{
				Type:     events.RecordLot,
				Op:       events.OpDeleted,
				RecordID: current.ID.String(),
			})
		} else {
			if err := s.lotRepository.UpdateLot(ctx, current); err != nil {
				return domain.ConsumeResponse{}, err
			}

			s.notifier.Publish(events.Change{
				Type:     events.RecordLot,
				Op:       events.OpUpdated,
				RecordID: current.ID.String(),
				Record:   current,
			})
		}

		remaining = remaining.Sub(take)
	}

	return domain.ConsumeResponse{
		Consumed:  amount.Sub(remaining),
		Shortfall: remaining,
	}, nil
}

// compareTimePtr orders timestamps ascending with nil sorting after any
// concrete time.
func compareTimePtr(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case a.Before(*b):
		return -1
	case b.Before(*a):
		return 1
	}
	return 0
}
