package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"locallibrary/internal/model"
)

type GenreDetail struct {
	Genre model.Genre
	Books []model.Book
}

func (s *Service) ListGenres(ctx context.Context) ([]model.Genre, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return s.genres.List(ctx)
}

func (s *Service) GenreDetail(ctx context.Context, id uuid.UUID) (*GenreDetail, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var d GenreDetail
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		genre, err := s.genres.FindByID(ctx, id)
		if err != nil {
			return notFound(err)
		}
		d.Genre = *genre
		return nil
	})
	g.Go(func() (err error) {
		d.Books, err = s.books.ListByGenre(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateGenre looks the name up first and resolves to the existing
// genre instead of inserting a duplicate. The probe and the insert are
// not atomic: two concurrent creates with the same name can still both
// insert. That race is inherent to look-up-before-insert and accepted;
// uniqueness is a convenience here, not an enforced constraint.
func (s *Service) CreateGenre(ctx context.Context, genre *model.Genre) (*model.Genre, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	existing, err := s.genres.FindByName(ctx, genre.Name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.genres.Create(ctx, genre); err != nil {
		return nil, err
	}
	return genre, nil
}

func (s *Service) GetGenre(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	genre, err := s.genres.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return genre, nil
}

func (s *Service) UpdateGenre(ctx context.Context, genre *model.Genre) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return notFound(s.genres.Update(ctx, genre))
}

// DeleteGenre re-checks the dependent books before mutating, exactly
// like DeleteAuthor.
func (s *Service) DeleteGenre(ctx context.Context, id uuid.UUID) (*GenreDetail, error) {
	d, err := s.GenreDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(d.Books) > 0 {
		return d, ErrHasDependents
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := s.genres.Delete(ctx, id); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return nil, nil
}
