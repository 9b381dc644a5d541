package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"locallibrary/internal/model"
)

func (s *Service) ListInstances(ctx context.Context) ([]model.BookInstance, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return s.copies.List(ctx)
}

// InstanceDetail is a single fetch; the referenced book comes back
// resolved on the record.
func (s *Service) InstanceDetail(ctx context.Context, id uuid.UUID) (*model.BookInstance, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	instance, err := s.copies.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return instance, nil
}

// InstanceFormData is the book list the copy form selects from.
func (s *Service) InstanceFormData(ctx context.Context) ([]model.Book, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return s.books.List(ctx)
}

// InstanceUpdateData fetches the copy and the book list for the
// update form concurrently.
func (s *Service) InstanceUpdateData(ctx context.Context, id uuid.UUID) (*model.BookInstance, []model.Book, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var (
		instance model.BookInstance
		books    []model.Book
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		bi, err := s.copies.FindByID(ctx, id)
		if err != nil {
			return notFound(err)
		}
		instance = *bi
		return nil
	})
	g.Go(func() (err error) {
		books, err = s.books.List(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return &instance, books, nil
}

// CreateInstance verifies the book reference at write time.
func (s *Service) CreateInstance(ctx context.Context, instance *model.BookInstance) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := s.checkBookRef(ctx, instance.BookID); err != nil {
		return err
	}

	if err := s.copies.Create(ctx, instance); err != nil {
		if fkViolation(err) {
			return ErrBookMissing
		}
		return err
	}
	return nil
}

func (s *Service) UpdateInstance(ctx context.Context, instance *model.BookInstance) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := s.checkBookRef(ctx, instance.BookID); err != nil {
		return err
	}

	if err := s.copies.Update(ctx, instance); err != nil {
		if fkViolation(err) {
			return ErrBookMissing
		}
		return notFound(err)
	}
	return nil
}

func (s *Service) checkBookRef(ctx context.Context, bookID uuid.UUID) error {
	if _, err := s.books.FindByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookMissing
		}
		return err
	}
	return nil
}

// DeleteInstance needs no guard: nothing references a copy. Deleting
// an already-deleted copy is a no-op.
func (s *Service) DeleteInstance(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := s.copies.Delete(ctx, id); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}
