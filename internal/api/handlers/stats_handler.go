package handlers

import (
	"Larder-Backend/domain"
	"Larder-Backend/internal/api/presenters"
	"Larder-Backend/pkg/stats"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type (
	StatsHandler interface {
		GetContainerStats(c *fiber.Ctx) error
		GetGroupedLots(c *fiber.Ctx) error
		GetDashboardStats(c *fiber.Ctx) error
	}

	statsHandler struct {
		statsService stats.StatsService
	}
)

func NewStatsHandler(statsService stats.StatsService) StatsHandler {
	return &statsHandler{
		statsService: statsService,
	}
}

func (h *statsHandler) GetContainerStats(c *fiber.Ctx) error {
	containerID := c.Params("id")

	res, err := h.statsService.GetContainerStats(c.Context(), containerID)
	if err != nil {
		if errors.Is(err, domain.ErrContainerNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetContainerStats, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetContainerStats, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetContainerStats)
}

func (h *statsHandler) GetGroupedLots(c *fiber.Ctx) error {
	containerID := c.Params("id")

	res, err := h.statsService.GroupLotsByProduct(c.Context(), containerID)
	if err != nil {
		if errors.Is(err, domain.ErrContainerNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetGroupedLots, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetGroupedLots, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetGroupedLots)
}

func (h *statsHandler) GetDashboardStats(c *fiber.Ctx) error {
	res, err := h.statsService.GetDashboardStats(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDashboardStats, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDashboardStats)
}
