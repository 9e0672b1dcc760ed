package stats

import (
	"Larder-Backend/domain"
	"Larder-Backend/entities"
	"Larder-Backend/pkg/container"
	"Larder-Backend/pkg/lot"
	"context"
	"errors"

	"gorm.io/gorm"
)

// StatsService derives read-only counts and groupings from the container tree
// and the lot ledger. Counts are direct (one level) only; nothing here
// mutates state.
type (
	StatsService interface {
		GetContainerStats(ctx context.Context, containerID string) (domain.ContainerStatsResponse, error)
		GroupLotsByProduct(ctx context.Context, containerID string) ([]domain.ProductLotsResponse, error)
		GetDashboardStats(ctx context.Context) (domain.DashboardStatsResponse, error)
	}

	statsService struct {
		containerRepository container.ContainerRepository
		lotRepository       lot.LotRepository
	}
)

func NewStatsService(containerRepository container.ContainerRepository, lotRepository lot.LotRepository) StatsService {
	return &statsService{
		containerRepository: containerRepository,
		lotRepository:       lotRepository,
	}
}

func (s *statsService) GetContainerStats(ctx context.Context, containerID string) (domain.ContainerStatsResponse, error) {
	if _, err := s.containerRepository.GetContainerByID(ctx, containerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ContainerStatsResponse{}, domain.ErrContainerNotFound
		}
		return domain.ContainerStatsResponse{}, err
	}

	children, err := s.containerRepository.CountChildren(ctx, containerID)
	if err != nil {
		return domain.ContainerStatsResponse{}, err
	}

	lots, err := s.lotRepository.CountLots(ctx, lot.LotQuery{ContainerID: containerID})
	if err != nil {
		return domain.ContainerStatsResponse{}, err
	}

	return domain.ContainerStatsResponse{
		ContainerID:    containerID,
		ChildContainer: children,
		Lots:           lots,
	}, nil
}

// GroupLotsByProduct returns the direct lots of one container grouped per
// product, one group per product card in the pantry view.
func (s *statsService) GroupLotsByProduct(ctx context.Context, containerID string) ([]domain.ProductLotsResponse, error) {
	if _, err := s.containerRepository.GetContainerByID(ctx, containerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrContainerNotFound
		}
		return nil, err
	}

	lots, err := s.lotRepository.QueryLots(ctx, lot.LotQuery{ContainerID: containerID})
	if err != nil {
		return nil, err
	}

	grouped := map[string][]domain.LotResponse{}
	var order []string

	for _, l := range lots {
		productID := l.ProductID.String()
		if _, seen := grouped[productID]; !seen {
			order = append(order, productID)
		}
		grouped[productID] = append(grouped[productID], lotResponse(l))
	}

	response := make([]domain.ProductLotsResponse, 0, len(order))
	for _, productID := range order {
		response = append(response, domain.ProductLotsResponse{
			ProductID: productID,
			Lots:      grouped[productID],
		})
	}

	return response, nil
}

func (s *statsService) GetDashboardStats(ctx context.Context) (domain.DashboardStatsResponse, error) {
	totalContainers, err := s.containerRepository.CountContainers(ctx)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	totalLots, err := s.lotRepository.CountLots(ctx, lot.LotQuery{})
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	opened := true
	openedLots, err := s.lotRepository.CountLots(ctx, lot.LotQuery{Opened: &opened})
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	expiredLots, err := s.lotRepository.CountLots(ctx, lot.LotQuery{Expired: true})
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	expiringSoonLots, err := s.lotRepository.CountLots(ctx, lot.LotQuery{ExpiringWithinDays: domain.DefaultExpiryWarningDays})
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	return domain.DashboardStatsResponse{
		TotalContainers:  totalContainers,
		TotalLots:        totalLots,
		OpenedLots:       openedLots,
		ExpiredLots:      expiredLots,
		ExpiringSoonLots: expiringSoonLots,
	}, nil
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
