package lot

import (
	"Larder-Backend/domain"
	"Larder-Backend/entities"
	"Larder-Backend/internal/utils/mailing"
	"Larder-Backend/pkg/catalog"
	"Larder-Backend/pkg/container"
	"Larder-Backend/pkg/events"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var sendMail = mailing.SendMail

type (
	LotService interface {
		AddLot(ctx context.Context, req domain.AddLotRequest) (domain.LotResponse, error)
		UpdateLot(ctx context.Context, id string, req domain.UpdateLotRequest) (domain.LotResponse, error)
		MoveLots(ctx context.Context, req domain.MoveLotsRequest) (domain.MoveLotsResponse, error)
		DeleteLot(ctx context.Context, id string) error
		QueryLots(ctx context.Context, req domain.QueryLotsRequest) ([]domain.LotResponse, error)
		NotifyExpiring(ctx context.Context, req domain.NotifyExpiringRequest) (domain.NotifyExpiringResponse, error)
	}

	lotService struct {
		lotRepository       LotRepository
		containerRepository container.ContainerRepository
		productRepository   catalog.ProductRepository
		notifier            *events.Notifier
	}
)

func NewLotService(
	lotRepository LotRepository,
	containerRepository container.ContainerRepository,
	productRepository catalog.ProductRepository,
	notifier *events.Notifier,
) LotService {
	return &lotService{
		lotRepository:       lotRepository,
		containerRepository: containerRepository,
		productRepository:   productRepository,
		notifier:            notifier,
	}
}

func (s *lotService) AddLot(ctx context.Context, req domain.AddLotRequest) (domain.LotResponse, error) {
	if req.Quantity <= 0 {
		return domain.LotResponse{}, domain.ErrInvalidQuantity
	}

	productUUID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return domain.LotResponse{}, domain.ErrParseUUID
	}

	containerUUID, err := uuid.Parse(req.ContainerID)
	if err != nil {
		return domain.LotResponse{}, domain.ErrParseUUID
	}

	if _, err := s.productRepository.GetProductByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LotResponse{}, domain.ErrProductNotFound
		}
		return domain.LotResponse{}, err
	}

	if _, err := s.containerRepository.GetContainerByID(ctx, req.ContainerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LotResponse{}, domain.ErrContainerNotFound
		}
		return domain.LotResponse{}, err
	}

	acquiredAt := time.Now().UTC()
	if req.AcquiredAt != "" {
		acquiredAt, err = time.Parse("2006-01-02", req.AcquiredAt)
		if err != nil {
			return domain.LotResponse{}, domain.ErrInvalidAcquireDate
		}
	}

	var expiresAt *time.Time
	if req.ExpiresAt != "" {
		parsed, err := time.Parse("2006-01-02", req.ExpiresAt)
		if err != nil {
			return domain.LotResponse{}, domain.ErrInvalidExpiryDate
		}
		expiresAt = &parsed
	}

	lot := &entities.Lot{
		ID:                uuid.New(),
		ProductID:         productUUID,
		ContainerID:       containerUUID,
		RemainingQuantity: decimal.NewFromFloat(req.Quantity),
		AcquiredAt:        acquiredAt,
		Opened:            false,
		ExpiresAt:         expiresAt,
		Notes:             req.Notes,
	}

	if err := s.lotRepository.CreateLot(ctx, lot); err != nil {
		return domain.LotResponse{}, err
	}

	s.notifier.Publish(events.Change{
		Type:     events.RecordLot,
		Op:       events.OpCreated,
		RecordID: lot.ID.String(),
		Record:   lot,
	})

	return lotResponse(lot), nil
}

// UpdateLot edits the descriptive fields of a lot, moves it to another
// container, or applies an explicit stock correction. Corrections are clamped
// to zero; a lot corrected down to nothing is removed from the ledger just as
// if it had been consumed.
func (s *lotService) UpdateLot(ctx context.Context, id string, req domain.UpdateLotRequest) (domain.LotResponse, error) {
	lot, err := s.lotRepository.GetLotByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LotResponse{}, domain.ErrLotNotFound
		}
		return domain.LotResponse{}, err
	}

	if req.ContainerID != "" {
		containerUUID, err := uuid.Parse(req.ContainerID)
		if err != nil {
			return domain.LotResponse{}, domain.ErrParseUUID
		}

		if _, err := s.containerRepository.GetContainerByID(ctx, req.ContainerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.LotResponse{}, domain.ErrContainerNotFound
			}
			return domain.LotResponse{}, err
		}

		lot.ContainerID = containerUUID
	}

	if req.AcquiredAt != "" {
		acquiredAt, err := time.Parse("2006-01-02", req.AcquiredAt)
		if err != nil {
			return domain.LotResponse{}, domain.ErrInvalidAcquireDate
		}
		lot.AcquiredAt = acquiredAt
	}

	if req.ExpiresAt != "" {
		expiresAt, err := time.Parse("2006-01-02", req.ExpiresAt)
		if err != nil {
			return domain.LotResponse{}, domain.ErrInvalidExpiryDate
		}
		lot.ExpiresAt = &expiresAt
	}

	if req.Notes != "" {
		lot.Notes = req.Notes
	}

	if req.RemainingQuantity != nil {
		corrected := decimal.NewFromFloat(*req.RemainingQuantity)
		if corrected.IsNegative() {
			corrected = decimal.Zero
		}
		lot.RemainingQuantity = corrected
	}

	if lot.RemainingQuantity.IsZero() {
		if err := s.lotRepository.DeleteLot(ctx, id); err != nil {
			return domain.LotResponse{}, err
		}

		s.notifier.Publish(events.Change{
			Type:     events.RecordLot,
			Op:       events.OpDeleted,
			RecordID: id,
		})

		return lotResponse(lot), nil
	}

	if err := s.lotRepository.UpdateLot(ctx, lot); err != nil {
		return domain.LotResponse{}, err
	}

	s.notifier.Publish(events.Change{
		Type:     events.RecordLot,
		Op:       events.OpUpdated,
		RecordID: lot.ID.String(),
		Record:   lot,
	})

	return lotResponse(lot), nil
}

func (s *lotService) MoveLots(ctx context.Context, req domain.MoveLotsRequest) (domain.MoveLotsResponse, error) {
	if _, err := s.containerRepository.GetContainerByID(ctx, req.TargetContainerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.MoveLotsResponse{}, domain.ErrContainerNotFound
		}
		return domain.MoveLotsResponse{}, err
	}

	moved, err := s.lotRepository.MoveLots(ctx, req.ProductID, req.ContainerID, req.TargetContainerID)
	if err != nil {
		return domain.MoveLotsResponse{}, err
	}

	if moved > 0 {
		s.notifier.Publish(events.Change{
			Type:     events.RecordLot,
			Op:       events.OpUpdated,
			RecordID: req.TargetContainerID,
		})
	}

	return domain.MoveLotsResponse{Moved: moved}, nil
}

// DeleteLot is idempotent: deleting a lot that is already gone is a no-op.
func (s *lotService) DeleteLot(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrParseUUID
	}

	if err := s.lotRepository.DeleteLot(ctx, id); err != nil {
		return err
	}

	s.notifier.Publish(events.Change{
		Type:     events.RecordLot,
		Op:       events.OpDeleted,
		RecordID: id,
	})

	return nil
}

func (s *lotService) QueryLots(ctx context.Context, req domain.QueryLotsRequest) ([]domain.LotResponse, error) {
	lots, err := s.lotRepository.QueryLots(ctx, LotQuery{
		ProductID:          req.ProductID,
		ContainerID:        req.ContainerID,
		Expired:            req.Expired,
		ExpiringWithinDays: req.ExpiringWithinDays,
	})
	if err != nil {
		return nil, err
	}

	var response []domain.LotResponse
	for _, lot := range lots {
		response = append(response, lotResponse(lot))
	}

	return response, nil
}

// NotifyExpiring mails a digest of the lots that expire within the requested
// window to the given address.
func (s *lotService) NotifyExpiring(ctx context.Context, req domain.NotifyExpiringRequest) (domain.NotifyExpiringResponse, error) {
	withinDays := req.WithinDays
	if withinDays <= 0 {
		withinDays = domain.DefaultExpiryWarningDays
	}

	lots, err := s.lotRepository.QueryLots(ctx, LotQuery{ExpiringWithinDays: withinDays})
	if err != nil {
		return domain.NotifyExpiringResponse{}, err
	}

	if len(lots) == 0 {
		return domain.NotifyExpiringResponse{Notified: 0}, nil
	}

	var body strings.Builder
	body.WriteString(fmt.Sprintf("<p>%d lot(s) in your pantry expire within %d day(s):</p><ul>", len(lots), withinDays))
	for _, lot := range lots {
		product, err := s.productRepository.GetProductByID(ctx, lot.ProductID.String())
		name := lot.ProductID.String()
		if err == nil {
			name = product.Name
		}
		body.WriteString(fmt.Sprintf(
			"<li>%s: %s remaining, expires %s</li>",
			name,
			lot.RemainingQuantity.String(),
			lot.ExpiresAt.Format("2006-01-02"),
		))
	}
	body.WriteString("</ul>")

	subject := fmt.Sprintf("Pantry alert: %d lot(s) expiring soon", len(lots))
	if err := sendMail(req.Email, subject, body.String()); err != nil {
		return domain.NotifyExpiringResponse{}, err
	}

	return domain.NotifyExpiringResponse{Notified: len(lots)}, nil
}

func lotResponse(lot *entities.Lot) domain.LotResponse {
	return domain.LotResponse{
		ID:                lot.ID.String(),
		ProductID:         lot.ProductID.String(),
		ContainerID:       lot.ContainerID.String(),
		RemainingQuantity: lot.RemainingQuantity,
		AcquiredAt:        lot.AcquiredAt,
		Opened:            lot.Opened,
		OpenedAt:          lot.OpenedAt,
		ExpiresAt:         lot.ExpiresAt,
		Notes:             lot.Notes,
		CreatedAt:         lot.CreatedAt,
	}
}
