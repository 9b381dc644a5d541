// Package catalog is the service layer behind the catalog handlers.
// Each operation issues its independent reads concurrently, merges the
// results and enforces the referential delete guard before any
// mutation.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"locallibrary/internal/repository"
)

// queryTimeout bounds every service operation; a backend that does
// not answer in time surfaces as an error, never a hung response.
const queryTimeout = 5 * time.Second

var (
	// ErrNotFound reports that the target identifier has no record.
	ErrNotFound = errors.New("record not found")
	// ErrHasDependents blocks deletion while dependent records exist.
	ErrHasDependents = errors.New("record still has dependent records")
	// Reference errors returned when a submitted Book or BookInstance
	// names a record that does not exist.
	ErrAuthorMissing = errors.New("author does not exist")
	ErrGenreMissing  = errors.New("genre does not exist")
	ErrBookMissing   = errors.New("book does not exist")
)

type Service struct {
	authors repository.AuthorRepository
	books   repository.BookRepository
	genres  repository.GenreRepository
	copies  repository.InstanceRepository
	stats   repository.StatsRepository
}

func NewService(
	authors repository.AuthorRepository,
	books repository.BookRepository,
	genres repository.GenreRepository,
	copies repository.InstanceRepository,
	stats repository.StatsRepository,
) *Service {
	return &Service{
		authors: authors,
		books:   books,
		genres:  genres,
		copies:  copies,
		stats:   stats,
	}
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}

// notFound translates the persistence layer's sentinel at the service
// boundary.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// fkViolation reports a postgres foreign-key violation, the backstop
// behind the explicit write-time reference checks.
func fkViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// Counts is the home page aggregate.
type Counts struct {
	Books              int64
	Instances          int64
	AvailableInstances int64
	Authors            int64
	Genres             int64
}

// Home fetches the five collection counts concurrently.
func (s *Service) Home(ctx context.Context) (Counts, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var c Counts
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		c.Books, err = s.stats.CountBooks(ctx)
		return err
	})
	g.Go(func() (err error) {
		c.Instances, err = s.stats.CountInstances(ctx)
		return err
	})
	g.Go(func() (err error) {
		c.AvailableInstances, err = s.stats.CountAvailableInstances(ctx)
		return err
	})
	g.Go(func() (err error) {
		c.Authors, err = s.stats.CountAuthors(ctx)
		return err
	})
	g.Go(func() (err error) {
		c.Genres, err = s.stats.CountGenres(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Counts{}, err
	}
	return c, nil
}
