package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"locallibrary/internal/model"
)

type GenreRepository interface {
	Create(ctx context.Context, genre *model.Genre) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Genre, error)
	// FindByName is a case-sensitive exact-name lookup, used to avoid
	// inserting duplicate genres.
	FindByName(ctx context.Context, name string) (*model.Genre, error)
	List(ctx context.Context) ([]model.Genre, error)
	Update(ctx context.Context, genre *model.Genre) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormGenreRepository struct {
	db *gorm.DB
}

func NewGormGenreRepository(db *gorm.DB) *GormGenreRepository {
	return &GormGenreRepository{db: db}
}

func (r *GormGenreRepository) Create(ctx context.Context, genre *model.Genre) error {
	return r.db.WithContext(ctx).Create(genre).Error
}

func (r *GormGenreRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	var genre model.Genre
	if err := r.db.WithContext(ctx).
		First(&genre, "id = ?", id).Error; err != nil {

		return nil, err
	}
	return &genre, nil
}

func (r *GormGenreRepository) FindByName(ctx context.Context, name string) (*model.Genre, error) {
	var genre model.Genre
	if err := r.db.WithContext(ctx).
		First(&genre, "name = ?", name).Error; err != nil {

		return nil, err
	}
	return &genre, nil
}

func (r *GormGenreRepository) List(ctx context.Context) ([]model.Genre, error) {
	var genres []model.Genre
	if err := r.db.WithContext(ctx).
		Order("name asc").
		Find(&genres).Error; err != nil {

		return nil, err
	}
	return genres, nil
}

func (r *GormGenreRepository) Update(ctx context.Context, genre *model.Genre) error {
	result := r.db.WithContext(ctx).
		Model(&model.Genre{}).
		Where("id = ?", genre.ID).
		Update("name", genre.Name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormGenreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Genre{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
