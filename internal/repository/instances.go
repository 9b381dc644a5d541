package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"locallibrary/internal/model"
)

type InstanceRepository interface {
	Create(ctx context.Context, instance *model.BookInstance) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.BookInstance, error)
	List(ctx context.Context) ([]model.BookInstance, error)
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]model.BookInstance, error)
	Update(ctx context.Context, instance *model.BookInstance) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormInstanceRepository struct {
	db *gorm.DB
}

func NewGormInstanceRepository(db *gorm.DB) *GormInstanceRepository {
	return &GormInstanceRepository{db: db}
}

func (r *GormInstanceRepository) Create(ctx context.Context, instance *model.BookInstance) error {
	return r.db.WithContext(ctx).Create(instance).Error
}

func (r *GormInstanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.BookInstance, error) {
	var instance model.BookInstance
	if err := r.db.WithContext(ctx).
		Preload("Book").
		First(&instance, "id = ?", id).Error; err != nil {

		return nil, err
	}
	return &instance, nil
}

func (r *GormInstanceRepository) List(ctx context.Context) ([]model.BookInstance, error) {
	var instances []model.BookInstance
	if err := r.db.WithContext(ctx).
		Preload("Book").
		Order("created_at asc").
		Find(&instances).Error; err != nil {

		return nil, err
	}
	return instances, nil
}

func (r *GormInstanceRepository) ListByBook(ctx context.Context, bookID uuid.UUID) ([]model.BookInstance, error) {
	var instances []model.BookInstance
	if err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("created_at asc").
		Find(&instances).Error; err != nil {

		return nil, err
	}
	return instances, nil
}

func (r *GormInstanceRepository) Update(ctx context.Context, instance *model.BookInstance) error {
	result := r.db.WithContext(ctx).
		Model(&model.BookInstance{}).
		Where("id = ?", instance.ID).
		Updates(map[string]any{
			"book_id":  instance.BookID,
			"imprint":  instance.Imprint,
			"status":   instance.Status,
			"due_back": instance.DueBack,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormInstanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.BookInstance{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
