package handlers

import (
	"Larder-Backend/domain"
	"Larder-Backend/internal/api/presenters"
	"Larder-Backend/pkg/container"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ContainerHandler interface {
		AddContainer(c *fiber.Ctx) error
		UpdateContainer(c *fiber.Ctx) error
		MoveContainer(c *fiber.Ctx) error
		DeleteContainer(c *fiber.Ctx) error
		GetPath(c *fiber.Ctx) error
		ListChildren(c *fiber.Ctx) error
		UploadContainerImage(c *fiber.Ctx) error
	}

	containerHandler struct {
		containerService container.ContainerService
		validator        *validator.Validate
	}
)

func NewContainerHandler(containerService container.ContainerService, validator *validator.Validate) ContainerHandler {
	return &containerHandler{
		containerService: containerService,
		validator:        validator,
	}
}

func (h *containerHandler) AddContainer(c *fiber.Ctx) error {
	req := new(domain.AddContainerRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddContainer, err)
	}

	res, err := h.containerService.AddContainer(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrContainerNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedAddContainer, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddContainer, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddContainer)
}

func (h *containerHandler) UpdateContainer(c *fiber.Ctx) error {
	containerID := c.Params("id")
	req := new(domain.UpdateContainerRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateContainer, err)
	}

	res, err := h.containerService.UpdateContainer(c.Context(), containerID, *req)
	if err != nil {
		if errors.Is(err, domain.ErrContainerNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateContainer, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateContainer, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateContainer)
}

func (h *containerHandler) MoveContainer(c *fiber.Ctx) error {
	containerID := c.Params("id")
	req := new(domain.MoveContainerRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMoveContainer, err)
	}

	if err := h.containerService.MoveContainer(c.Context(), containerID, *req); err != nil {
		if errors.Is(err, domain.ErrContainerNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedMoveContainer, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMoveContainer, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMoveContainer)
}

func (h *containerHandler) DeleteContainer(c *fiber.Ctx) error {
	containerID := c.Params("id")

	if err := h.containerService.DeleteContainer(c.Context(), containerID); err != nil {
		if errors.Is(err, domain.ErrContainerNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteContainer, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteContainer, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteContainer)
}

func (h *containerHandler) GetPath(c *fiber.Ctx) error {
	containerID := c.Params("id")

	path, err := h.containerService.GetPath(c.Context(), containerID)
	if err != nil {
		if errors.Is(err, domain.ErrContainerNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetPath, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPath, err)
	}

	return presenters.SuccessResponse(c, path, fiber.StatusOK, domain.MessageSuccessGetPath)
}

func (h *containerHandler) ListChildren(c *fiber.Ctx) error {
	parentID := c.Query("parent_id", "")

	children, err := h.containerService.ListChildren(c.Context(), parentID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetContainers, err)
	}

	return presenters.SuccessResponse(c, children, fiber.StatusOK, domain.MessageSuccessGetContainers)
}

func (h *containerHandler) UploadContainerImage(c *fiber.Ctx) error {
	req := new(domain.UploadContainerImageRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req.Image = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	if err := h.containerService.UploadContainerImage(c.Context(), *req); err != nil {
		if errors.Is(err, domain.ErrContainerNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUploadImage, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUploadImage)
}
