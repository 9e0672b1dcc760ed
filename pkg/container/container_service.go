package container

import (
	"Larder-Backend/domain"
	"Larder-Backend/entities"
	"Larder-Backend/internal/utils/storage"
	"Larder-Backend/pkg/events"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ContainerService interface {
		AddContainer(ctx context.Context, req domain.AddContainerRequest) (domain.ContainerResponse, error)
		UpdateContainer(ctx context.Context, id string, req domain.UpdateContainerRequest) (domain.ContainerResponse, error)
		MoveContainer(ctx context.Context, id string, req domain.MoveContainerRequest) error
		DeleteContainer(ctx context.Context, id string) error
		GetPath(ctx context.Context, id string) ([]domain.ContainerResponse, error)
		ListChildren(ctx context.Context, parentID string) ([]domain.ContainerResponse, error)
		UploadContainerImage(ctx context.Context, req domain.UploadContainerImageRequest) error
	}

	containerService struct {
		containerRepository ContainerRepository
		s3                  storage.AwsS3
		notifier            *events.Notifier
	}
)

func NewContainerService(containerRepository ContainerRepository, s3 storage.AwsS3, notifier *events.Notifier) ContainerService {
	return &containerService{
		containerRepository: containerRepository,
		s3:                  s3,
		notifier:            notifier,
	}
}

func (s *containerService) AddContainer(ctx context.Context, req domain.AddContainerRequest) (domain.ContainerResponse, error) {
	var parentID *uuid.UUID
	if req.ParentID != "" {
		parentUUID, err := uuid.Parse(req.ParentID)
		if err != nil {
			return domain.ContainerResponse{}, domain.ErrParseUUID
		}

		if _, err := s.containerRepository.GetContainerByID(ctx, req.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ContainerResponse{}, domain.ErrContainerNotFound
			}
			return domain.ContainerResponse{}, err
		}

		parentID = &parentUUID
	}

	container := &entities.Container{
		ID:       uuid.New(),
		Name:     req.Name,
		ParentID: parentID,
		Color:    req.Color,
	}

	if err := s.containerRepository.CreateContainer(ctx, container); err != nil {
		return domain.ContainerResponse{}, err
	}

	s.notifier.Publish(events.Change{
		Type:     events.RecordContainer,
		Op:       events.OpCreated,
		RecordID: container.ID.String(),
		Record:   container,
	})

	return containerResponse(container), nil
}

func (s *containerService) UpdateContainer(ctx context.Context, id string, req domain.UpdateContainerRequest) (domain.ContainerResponse, error) {
	container, err := s.containerRepository.GetContainerByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ContainerResponse{}, domain.ErrContainerNotFound
		}
		return domain.ContainerResponse{}, err
	}

	if req.Name != "" {
		container.Name = req.Name
	}

	if req.Color != "" {
		container.Color = req.Color
	}

	if err := s.containerRepository.UpdateContainer(ctx, container); err != nil {
		return domain.ContainerResponse{}, err
	}

	s.notifier.Publish(events.Change{
		Type:     events.RecordContainer,
		Op:       events.OpUpdated,
		RecordID: container.ID.String(),
		Record:   container,
	})

	return containerResponse(container), nil
}

// MoveContainer reparents a container. The new parent must exist and must not
// be the container itself or any of its descendants, otherwise the move would
// disconnect the subtree into a cycle.
func (s *containerService) MoveContainer(ctx context.Context, id string, req domain.MoveContainerRequest) error {
	if req.ParentID == id {
		return domain.ErrContainerCycle
	}

	container, err := s.containerRepository.GetContainerByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrContainerNotFound
		}
		return err
	}

	newParent, err := s.containerRepository.GetContainerByID(ctx, req.ParentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrContainerNotFound
		}
		return err
	}

	// Walk from the new parent up to the root. Meeting the moved container on
	// the way means the target sits inside its own subtree.
	visited := map[string]bool{}
	current := newParent
	for {
		currentID := current.ID.String()
		if currentID == id {
			return domain.ErrContainerCycle
		}
		if visited[currentID] {
			break
		}
		visited[currentID] = true

		if current.ParentID == nil {
			break
		}

		current, err = s.containerRepository.GetContainerByID(ctx, current.ParentID.String())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				break
			}
			return err
		}
	}

	parentUUID, err := uuid.Parse(req.ParentID)
	if err != nil {
		return domain.ErrParseUUID
	}

	container.ParentID = &parentUUID
	if err := s.containerRepository.UpdateContainer(ctx, container); err != nil {
		return err
	}

	s.notifier.Publish(events.Change{
		Type:     events.RecordContainer,
		Op:       events.OpUpdated,
		RecordID: container.ID.String(),
		Record:   container,
	})

	return nil
}

// DeleteContainer removes a container, every container below it and every lot
// stored in any of them. The cascade is performed here, record by record,
// rather than being left to storage-level foreign keys.
func (s *containerService) DeleteContainer(ctx context.Context, id string) error {
	container, err := s.containerRepository.GetContainerByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrContainerNotFound
		}
		return err
	}

	ids, err := s.collectSubtree(ctx, container)
	if err != nil {
		return err
	}

	if err := s.containerRepository.DeleteLotsByContainers(ctx, ids); err != nil {
		return err
	}

	// Children before parents, the requested container last.
	for i := len(ids) - 1; i >= 0; i-- {
		if err := s.containerRepository.DeleteContainer(ctx, ids[i]); err != nil {
			return err
		}

		s.notifier.Publish(events.Change{
			Type:     events.RecordContainer,
			Op:       events.OpDeleted,
			RecordID: ids[i],
		})
	}

	if container.ImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(container.ImageURL)
		if objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return nil
}

// collectSubtree gathers the container and all its descendants in
// breadth-first order, guarding against revisiting a container if the stored
// parent links are corrupted.
func (s *containerService) collectSubtree(ctx context.Context, root *entities.Container) ([]string, error) {
	visited := map[string]bool{root.ID.String(): true}
	ids := []string{root.ID.String()}

	for cursor := 0; cursor < len(ids); cursor++ {
		children, err := s.containerRepository.GetChildren(ctx, ids[cursor])
		if err != nil {
			return nil, err
		}

		for _, child := range children {
			childID := child.ID.String()
			if visited[childID] {
				continue
			}
			visited[childID] = true
			ids = append(ids, childID)
		}
	}

	return ids, nil
}

// GetPath returns the breadcrumb from the root down to the given container.
// A repeated id on the walk means the stored tree is corrupted; the walk stops
// and whatever was built so far is returned instead of looping.
func (s *containerService) GetPath(ctx context.Context, id string) ([]domain.ContainerResponse, error) {
	container, err := s.containerRepository.GetContainerByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrContainerNotFound
		}
		return nil, err
	}

	visited := map[string]bool{}
	var path []domain.ContainerResponse

	for {
		currentID := container.ID.String()
		if visited[currentID] {
			break
		}
		visited[currentID] = true

		path = append([]domain.ContainerResponse{containerResponse(container)}, path...)

		if container.ParentID == nil {
			break
		}

		container, err = s.containerRepository.GetContainerByID(ctx, container.ParentID.String())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				break
			}
			return nil, err
		}
	}

	return path, nil
}

func (s *containerService) ListChildren(ctx context.Context, parentID string) ([]domain.ContainerResponse, error) {
	if parentID != "" {
		if _, err := uuid.Parse(parentID); err != nil {
			return nil, domain.ErrParseUUID
		}
	}

	containers, err := s.containerRepository.GetChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}

	var response []domain.ContainerResponse
	for _, container := range containers {
		response = append(response, containerResponse(container))
	}

	return response, nil
}

func (s *containerService) UploadContainerImage(ctx context.Context, req domain.UploadContainerImageRequest) error {
	container, err := s.containerRepository.GetContainerByID(ctx, req.ContainerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrContainerNotFound
		}
		return err
	}

	fileName := fmt.Sprintf("container-%s", container.ID.String())
	var objectKey string
	var uploadErr error

	if container.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(container.ImageURL)
		if existingKey != "" {
			objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
		} else {
			objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "containers", storage.AllowImage...)
		}
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "containers", storage.AllowImage...)
	}

	if uploadErr != nil {
		return uploadErr
	}

	container.ImageURL = s.s3.GetPublicLinkKey(objectKey)

	if err := s.containerRepository.UpdateContainer(ctx, container); err != nil {
		return err
	}

	s.notifier.Publish(events.Change{
		Type:     events.RecordContainer,
		Op:       events.OpUpdated,
		RecordID: container.ID.String(),
		Record:   container,
	})

	return nil
}

func containerResponse(container *entities.Container) domain.ContainerResponse {
	response := domain.ContainerResponse{
		ID:        container.ID.String(),
		Name:      container.Name,
		Color:     container.Color,
		ImageURL:  container.ImageURL,
		CreatedAt: container.CreatedAt,
	}
	if container.ParentID != nil {
		response.ParentID = container.ParentID.String()
	}
	return response
}
