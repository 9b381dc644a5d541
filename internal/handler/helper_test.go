package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"locallibrary/internal/catalog"
	"locallibrary/internal/model"
)

// The fakes implement the repository interfaces with overridable
// function fields. An unset reader reports an empty collection or a
// missing record; an unset writer succeeds.

type fakeAuthorRepo struct {
	CreateFn   func(ctx context.Context, author *model.Author) error
	FindByIDFn func(ctx context.Context, id uuid.UUID) (*model.Author, error)
	ListFn     func(ctx context.Context) ([]model.Author, error)
	UpdateFn   func(ctx context.Context, author *model.Author) error
	DeleteFn   func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeAuthorRepo) Create(ctx context.Context, author *model.Author) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, author)
	}
	return nil
}

func (f *fakeAuthorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthorRepo) List(ctx context.Context) ([]model.Author, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx)
	}
	return nil, nil
}

func (f *fakeAuthorRepo) Update(ctx context.Context, author *model.Author) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, author)
	}
	return nil
}

func (f *fakeAuthorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

type fakeBookRepo struct {
	CreateFn       func(ctx context.Context, book *model.Book) error
	FindByIDFn     func(ctx context.Context, id uuid.UUID) (*model.Book, error)
	ListFn         func(ctx context.Context) ([]model.Book, error)
	ListByAuthorFn func(ctx context.Context, authorID uuid.UUID) ([]model.Book, error)
	ListByGenreFn  func(ctx context.Context, genreID uuid.UUID) ([]model.Book, error)
	UpdateFn       func(ctx context.Context, book *model.Book) error
	DeleteFn       func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeBookRepo) Create(ctx context.Context, book *model.Book) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, book)
	}
	return nil
}

func (f *fakeBookRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBookRepo) List(ctx context.Context) ([]model.Book, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx)
	}
	return nil, nil
}

func (f *fakeBookRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Book, error) {
	if f.ListByAuthorFn != nil {
		return f.ListByAuthorFn(ctx, authorID)
	}
	return nil, nil
}

func (f *fakeBookRepo) ListByGenre(ctx context.Context, genreID uuid.UUID) ([]model.Book, error) {
	if f.ListByGenreFn != nil {
		return f.ListByGenreFn(ctx, genreID)
	}
	return nil, nil
}

func (f *fakeBookRepo) Update(ctx context.Context, book *model.Book) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, book)
	}
	return nil
}

func (f *fakeBookRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

type fakeGenreRepo struct {
	CreateFn     func(ctx context.Context, genre *model.Genre) error
	FindByIDFn   func(ctx context.Context, id uuid.UUID) (*model.Genre, error)
	FindByNameFn func(ctx context.Context, name string) (*model.Genre, error)
	ListFn       func(ctx context.Context) ([]model.Genre, error)
	UpdateFn     func(ctx context.Context, genre *model.Genre) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeGenreRepo) Create(ctx context.Context, genre *model.Genre) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, genre)
	}
	return nil
}

func (f *fakeGenreRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeGenreRepo) FindByName(ctx context.Context, name string) (*model.Genre, error) {
	if f.FindByNameFn != nil {
		return f.FindByNameFn(ctx, name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeGenreRepo) List(ctx context.Context) ([]model.Genre, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx)
	}
	return nil, nil
}

func (f *fakeGenreRepo) Update(ctx context.Context, genre *model.Genre) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, genre)
	}
	return nil
}

func (f *fakeGenreRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

type fakeInstanceRepo struct {
	CreateFn     func(ctx context.Context, instance *model.BookInstance) error
	FindByIDFn   func(ctx context.Context, id uuid.UUID) (*model.BookInstance, error)
	ListFn       func(ctx context.Context) ([]model.BookInstance, error)
	ListByBookFn func(ctx context.Context, bookID uuid.UUID) ([]model.BookInstance, error)
	UpdateFn     func(ctx context.Context, instance *model.BookInstance) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeInstanceRepo) Create(ctx context.Context, instance *model.BookInstance) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, instance)
	}
	return nil
}

func (f *fakeInstanceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.BookInstance, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeInstanceRepo) List(ctx context.Context) ([]model.BookInstance, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx)
	}
	return nil, nil
}

func (f *fakeInstanceRepo) ListByBook(ctx context.Context, bookID uuid.UUID) ([]model.BookInstance, error) {
	if f.ListByBookFn != nil {
		return f.ListByBookFn(ctx, bookID)
	}
	return nil, nil
}

func (f *fakeInstanceRepo) Update(ctx context.Context, instance *model.BookInstance) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, instance)
	}
	return nil
}

func (f *fakeInstanceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

type fakeStatsRepo struct {
	Authors   int64
	Books     int64
	Genres    int64
	Instances int64
	Available int64
}

func (f *fakeStatsRepo) CountAuthors(context.Context) (int64, error)   { return f.Authors, nil }
func (f *fakeStatsRepo) CountBooks(context.Context) (int64, error)     { return f.Books, nil }
func (f *fakeStatsRepo) CountGenres(context.Context) (int64, error)    { return f.Genres, nil }
func (f *fakeStatsRepo) CountInstances(context.Context) (int64, error) { return f.Instances, nil }
func (f *fakeStatsRepo) CountAvailableInstances(context.Context) (int64, error) {
	return f.Available, nil
}

// repos bundles one fake of each kind so tests override only what
// they exercise.
type repos struct {
	authors fakeAuthorRepo
	books   fakeBookRepo
	genres  fakeGenreRepo
	copies  fakeInstanceRepo
	stats   fakeStatsRepo
}

func newRouter(r *repos) *gin.Engine {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.SetHTMLTemplate(Templates())

	svc := catalog.NewService(&r.authors, &r.books, &r.genres, &r.copies, &r.stats)

	NewHomeHandler(svc).RegisterRoutes(engine)
	cat := engine.Group("/catalog")
	NewAuthorHandler(svc).RegisterRoutes(cat)
	NewBookHandler(svc).RegisterRoutes(cat)
	NewGenreHandler(svc).RegisterRoutes(cat)
	NewInstanceHandler(svc).RegisterRoutes(cat)
	return engine
}

func doGet(t *testing.T, engine *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func doPost(t *testing.T, engine *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func wantRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, http.StatusSeeOther, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != location {
		t.Fatalf("Location = %q, want %q", got, location)
	}
}

func wantBodyContains(t *testing.T, w *httptest.ResponseRecorder, substr string) {
	t.Helper()

	if !strings.Contains(w.Body.String(), substr) {
		t.Fatalf("body does not contain %q:\n%s", substr, w.Body.String())
	}
}
