package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"locallibrary/internal/model"
)

type BookDetail struct {
	Book      model.Book
	Instances []model.BookInstance
}

// BookFormData carries the reference lists the book form needs.
type BookFormData struct {
	Authors []model.Author
	Genres  []model.Genre
}

func (s *Service) ListBooks(ctx context.Context) ([]model.Book, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return s.books.List(ctx)
}

// BookDetail fetches the book (author and genres resolved) and its
// copies concurrently.
func (s *Service) BookDetail(ctx context.Context, id uuid.UUID) (*BookDetail, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var d BookDetail
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		book, err := s.books.FindByID(ctx, id)
		if err != nil {
			return notFound(err)
		}
		d.Book = *book
		return nil
	})
	g.Go(func() (err error) {
		d.Instances, err = s.copies.ListByBook(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

// BookFormData fetches the author and genre lists concurrently.
func (s *Service) BookFormData(ctx context.Context) (*BookFormData, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var d BookFormData
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Authors, err = s.authors.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.Genres, err = s.genres.List(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Service) GetBook(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return book, nil
}

// CreateBook verifies the author and genre references at write time
// and resolves the genre set before persisting.
func (s *Service) CreateBook(ctx context.Context, book *model.Book, genreIDs []uuid.UUID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := s.resolveBookRefs(ctx, book, genreIDs); err != nil {
		return err
	}

	if err := s.books.Create(ctx, book); err != nil {
		if fkViolation(err) {
			return ErrAuthorMissing
		}
		return err
	}
	return nil
}

// UpdateBook runs the same reference checks as CreateBook, then
// replaces the editable fields of the existing record by identifier.
func (s *Service) UpdateBook(ctx context.Context, book *model.Book, genreIDs []uuid.UUID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := s.resolveBookRefs(ctx, book, genreIDs); err != nil {
		return err
	}

	if err := s.books.Update(ctx, book); err != nil {
		if fkViolation(err) {
			return ErrAuthorMissing
		}
		return notFound(err)
	}
	return nil
}

// resolveBookRefs checks the author reference and loads every
// referenced genre, concurrently. A dangling reference fails the
// whole write.
func (s *Service) resolveBookRefs(ctx context.Context, book *model.Book, genreIDs []uuid.UUID) error {
	genres := make([]model.Genre, len(genreIDs))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if _, err := s.authors.FindByID(ctx, book.AuthorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAuthorMissing
			}
			return err
		}
		return nil
	})
	for i, id := range genreIDs {
		i, id := i, id
		g.Go(func() error {
			genre, err := s.genres.FindByID(ctx, id)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrGenreMissing
				}
				return err
			}
			genres[i] = *genre
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	book.Genres = genres
	return nil
}

// BookUpdateData fetches everything the update form needs, in one
// fan-out: the book itself plus the author and genre lists.
func (s *Service) BookUpdateData(ctx context.Context, id uuid.UUID) (*model.Book, *BookFormData, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var (
		book model.Book
		d    BookFormData
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := s.books.FindByID(ctx, id)
		if err != nil {
			return notFound(err)
		}
		book = *b
		return nil
	})
	g.Go(func() (err error) {
		d.Authors, err = s.authors.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.Genres, err = s.genres.List(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return &book, &d, nil
}

// DeleteBook re-checks the book's copies before mutating.
func (s *Service) DeleteBook(ctx context.Context, id uuid.UUID) (*BookDetail, error) {
	d, err := s.BookDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(d.Instances) > 0 {
		return d, ErrHasDependents
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := s.books.Delete(ctx, id); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return nil, nil
}
