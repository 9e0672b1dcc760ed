package domain

var (
	MessageSuccessGetContainerStats = "container statistics retrieved successfully"
	MessageSuccessGetGroupedLots    = "grouped lots retrieved successfully"
	MessageSuccessGetDashboardStats = "dashboard statistics retrieved successfully"

	MessageFailedGetContainerStats = "failed to retrieve container statistics"
	MessageFailedGetGroupedLots    = "failed to retrieve grouped lots"
	MessageFailedGetDashboardStats = "failed to retrieve dashboard statistics"
)

type (
	ContainerStatsResponse struct {
		ContainerID    string `json:"container_id"`
		ChildContainer int64  `json:"child_containers"`
		Lots           int64  `json:"lots"`
	}

	ProductLotsResponse struct {
		ProductID string        `json:"product_id"`
		Lots      []LotResponse `json:"lots"`
	}

	DashboardStatsResponse struct {
		TotalContainers  int64 `json:"total_containers"`
		TotalLots        int64 `json:"total_lots"`
		OpenedLots       int64 `json:"opened_lots"`
		ExpiredLots      int64 `json:"expired_lots"`
		ExpiringSoonLots int64 `json:"expiring_soon_lots"`
	}
)
