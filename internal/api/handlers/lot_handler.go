package handlers

import (
	"Larder-Backend/domain"
	"Larder-Backend/internal/api/presenters"
	"Larder-Backend/pkg/consume"
	"Larder-Backend/pkg/lot"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	LotHandler interface {
		AddLot(c *fiber.Ctx) error
		UpdateLot(c *fiber.Ctx) error
		MoveLots(c *fiber.Ctx) error
		DeleteLot(c *fiber.Ctx) error
		QueryLots(c *fiber.Ctx) error
		Consume(c *fiber.Ctx) error
		NotifyExpiring(c *fiber.Ctx) error
	}

	lotHandler struct {
		lotService     lot.LotService
		consumeService consume.ConsumeService
		validator      *validator.Validate
	}
)

func NewLotHandler(lotService lot.LotService, consumeService consume.ConsumeService, validator *validator.Validate) LotHandler {
	return &lotHandler{
		lotService:     lotService,
		consumeService: consumeService,
		validator:      validator,
	}
}

func (h *lotHandler) AddLot(c *fiber.Ctx) error {
	req := new(domain.AddLotRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddLot, err)
	}

	res, err := h.lotService.AddLot(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) || errors.Is(err, domain.ErrContainerNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedAddLot, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddLot, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddLot)
}

func (h *lotHandler) UpdateLot(c *fiber.Ctx) error {
	lotID := c.Params("id")
	req := new(domain.UpdateLotRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateLot, err)
	}

	res, err := h.lotService.UpdateLot(c.Context(), lotID, *req)
	if err != nil {
		if errors.Is(err, domain.ErrLotNotFound) || errors.Is(err, domain.ErrContainerNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateLot, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateLot, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateLot)
}

func (h *lotHandler) MoveLots(c *fiber.Ctx) error {
	req := new(domain.MoveLotsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMoveLots, err)
	}

	res, err := h.lotService.MoveLots(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrContainerNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedMoveLots, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMoveLots, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessMoveLots)
}

func (h *lotHandler) DeleteLot(c *fiber.Ctx) error {
	lotID := c.Params("id")

	if err := h.lotService.DeleteLot(c.Context(), lotID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteLot, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteLot)
}

func (h *lotHandler) QueryLots(c *fiber.Ctx) error {
	req := new(domain.QueryLotsRequest)

	if err := c.QueryParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetLots, err)
	}

	lots, err := h.lotService.QueryLots(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetLots, err)
	}

	return presenters.SuccessResponse(c, lots, fiber.StatusOK, domain.MessageSuccessGetLots)
}

// Consume never rejects for insufficient stock; a shortfall comes back in the
// 200 response for the caller to surface as a warning.
func (h *lotHandler) Consume(c *fiber.Ctx) error {
	req := new(domain.ConsumeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedConsume, err)
	}

	res, err := h.consumeService.Consume(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedConsume, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessConsume)
}

func (h *lotHandler) NotifyExpiring(c *fiber.Ctx) error {
	req := new(domain.NotifyExpiringRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedNotifyExpiring, err)
	}

	res, err := h.lotService.NotifyExpiring(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedNotifyExpiring, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessNotifyExpiring)
}
