package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"locallibrary/internal/model"
)

// AuthorDetail bundles an author with the books that reference it.
// The same bundle backs the detail view and the delete confirmation.
type AuthorDetail struct {
	Author model.Author
	Books  []model.Book
}

func (s *Service) ListAuthors(ctx context.Context) ([]model.Author, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return s.authors.List(ctx)
}

// AuthorDetail fetches the author and its books concurrently.
func (s *Service) AuthorDetail(ctx context.Context, id uuid.UUID) (*AuthorDetail, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var d AuthorDetail
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		author, err := s.authors.FindByID(ctx, id)
		if err != nil {
			return notFound(err)
		}
		d.Author = *author
		return nil
	})
	g.Go(func() (err error) {
		d.Books, err = s.books.ListByAuthor(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Service) CreateAuthor(ctx context.Context, author *model.Author) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return s.authors.Create(ctx, author)
}

func (s *Service) GetAuthor(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	author, err := s.authors.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return author, nil
}

// UpdateAuthor replaces the editable fields of an existing author.
// The record is updated in place by identifier, never re-inserted.
func (s *Service) UpdateAuthor(ctx context.Context, author *model.Author) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return notFound(s.authors.Update(ctx, author))
}

// DeleteAuthor executes the guarded delete. The dependent set is
// re-fetched here, never trusted from the confirmation step, since it
// can change between the two requests. Returns ErrHasDependents with
// the bundle when deletion is blocked and ErrNotFound when the target
// is already gone.
func (s *Service) DeleteAuthor(ctx context.Context, id uuid.UUID) (*AuthorDetail, error) {
	d, err := s.AuthorDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(d.Books) > 0 {
		return d, ErrHasDependents
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	// A concurrent delete may have won the race after the check
	// above; deleting an already-deleted record is a no-op.
	if err := s.authors.Delete(ctx, id); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return nil, nil
}
