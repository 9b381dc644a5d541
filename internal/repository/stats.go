package repository

import (
	"context"

	"gorm.io/gorm"

	"locallibrary/internal/model"
)

// StatsRepository serves the aggregate counts shown on the home page.
type StatsRepository interface {
	CountAuthors(ctx context.Context) (int64, error)
	CountBooks(ctx context.Context) (int64, error)
	CountGenres(ctx context.Context) (int64, error)
	CountInstances(ctx context.Context) (int64, error)
	CountAvailableInstances(ctx context.Context) (int64, error)
}

type GormStatsRepository struct {
	db *gorm.DB
}

func NewGormStatsRepository(db *gorm.DB) *GormStatsRepository {
	return &GormStatsRepository{db: db}
}

func (r *GormStatsRepository) CountAuthors(ctx context.Context) (int64, error) {
	return r.count(ctx, &model.Author{}, nil)
}

func (r *GormStatsRepository) CountBooks(ctx context.Context) (int64, error) {
	return r.count(ctx, &model.Book{}, nil)
}

func (r *GormStatsRepository) CountGenres(ctx context.Context) (int64, error) {
	return r.count(ctx, &model.Genre{}, nil)
}

func (r *GormStatsRepository) CountInstances(ctx context.Context) (int64, error) {
	return r.count(ctx, &model.BookInstance{}, nil)
}

func (r *GormStatsRepository) CountAvailableInstances(ctx context.Context) (int64, error) {
	return r.count(ctx, &model.BookInstance{}, map[string]any{"status": model.StatusAvailable})
}

func (r *GormStatsRepository) count(ctx context.Context, m any, where map[string]any) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(m)
	if where != nil {
		q = q.Where(where)
	}
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
