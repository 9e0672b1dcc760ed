package container

import (
	"Larder-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	ContainerRepository interface {
		CreateContainer(ctx context.Context, container *entities.Container) error
		GetContainerByID(ctx context.Context, id string) (*entities.Container, error)
		UpdateContainer(ctx context.Context, container *entities.Container) error
		DeleteContainer(ctx context.Context, id string) error
		GetChildren(ctx context.Context, parentID string) ([]*entities.Container, error)
		CountChildren(ctx context.Context, parentID string) (int64, error)
		CountContainers(ctx context.Context) (int64, error)

		// Cascade support: a container delete owns the removal of the lots
		// stored anywhere in the deleted subtree.
		DeleteLotsByContainers(ctx context.Context, containerIDs []string) error
	}

	containerRepository struct {
		db *gorm.DB
	}
)

func NewContainerRepository(db *gorm.DB) ContainerRepository {
	return &containerRepository{db: db}
}

func (r *containerRepository) CreateContainer(ctx context.Context, container *entities.Container) error {
	return r.db.WithContext(ctx).Create(container).Error
}

func (r *containerRepository) GetContainerByID(ctx context.Context, id string) (*entities.Container, error) {
	var container entities.Container
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&container).Error; err != nil {
		return nil, err
	}
	return &container, nil
}

func (r *containerRepository) UpdateContainer(ctx context.Context, container *entities.Container) error {
	return r.db.WithContext(ctx).Save(container).Error
}

func (r *containerRepository) DeleteContainer(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Container{}).Error
}

func (r *containerRepository) GetChildren(ctx context.Context, parentID string) ([]*entities.Container, error) {
	var containers []*entities.Container

	query := r.db.WithContext(ctx)
	if parentID == "" {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", parentID)
	}

	if err := query.Order("name asc").Find(&containers).Error; err != nil {
		return nil, err
	}

	return containers, nil
}

func (r *containerRepository) CountChildren(ctx context.Context, parentID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Container{}).
		Where("parent_id = ?", parentID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *containerRepository) CountContainers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Container{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *containerRepository) DeleteLotsByContainers(ctx context.Context, containerIDs []string) error {
	if len(containerIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("container_id IN ?", containerIDs).
		Delete(&entities.Lot{}).Error
}
