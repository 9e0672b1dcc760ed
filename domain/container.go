package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessAddContainer    = "container added successfully"
	MessageSuccessUpdateContainer = "container updated successfully"
	MessageSuccessMoveContainer   = "container moved successfully"
	MessageSuccessDeleteContainer = "container and its contents deleted successfully"
	MessageSuccessGetContainers   = "containers retrieved successfully"
	MessageSuccessGetPath         = "container path retrieved successfully"
	MessageSuccessUploadImage     = "container image uploaded successfully"

	MessageFailedAddContainer    = "failed to add container"
	MessageFailedUpdateContainer = "failed to update container"
	MessageFailedMoveContainer   = "failed to move container"
	MessageFailedDeleteContainer = "failed to delete container"
	MessageFailedGetContainers   = "failed to retrieve containers"
	MessageFailedGetPath         = "failed to retrieve container path"
	MessageFailedUploadImage     = "failed to upload container image"

	ErrContainerNotFound = errors.New("container not found")
	ErrContainerCycle    = errors.New("move would create a cycle in the container tree")
)

type (
	AddContainerRequest struct {
		Name     string `json:"name" validate:"required"`
		ParentID string `json:"parent_id" validate:"omitempty,uuid"`
		Color    string `json:"color" validate:"omitempty"`
	}

	UpdateContainerRequest struct {
		Name  string `json:"name" validate:"omitempty"`
		Color string `json:"color" validate:"omitempty"`
	}

	MoveContainerRequest struct {
		ParentID string `json:"parent_id" validate:"required,uuid"`
	}

	UploadContainerImageRequest struct {
		ContainerID string                `json:"container_id" form:"container_id" validate:"required,uuid"`
		Image       *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	ContainerResponse struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		ParentID  string    `json:"parent_id,omitempty"`
		Color     string    `json:"color,omitempty"`
		ImageURL  string    `json:"image_url,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}
)
