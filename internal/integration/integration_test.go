package integration

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"locallibrary/internal/catalog"
	"locallibrary/internal/handler"
	"locallibrary/internal/model"
	"locallibrary/internal/repository"
)

// newApp wires the full router over an in-memory database, the same
// shape the server binary assembles.
func newApp(t *testing.T) *gin.Engine {
	t.Helper()

	dsn := "file:testdb_" + uuid.New().String() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Author{},
		&model.Genre{},
		&model.Book{},
		&model.BookInstance{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	svc := catalog.NewService(
		repository.NewGormAuthorRepository(db),
		repository.NewGormBookRepository(db),
		repository.NewGormGenreRepository(db),
		repository.NewGormInstanceRepository(db),
		repository.NewGormStatsRepository(db),
	)

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.SetHTMLTemplate(handler.Templates())

	handler.NewHomeHandler(svc).RegisterRoutes(engine)
	cat := engine.Group("/catalog")
	handler.NewAuthorHandler(svc).RegisterRoutes(cat)
	handler.NewBookHandler(svc).RegisterRoutes(cat)
	handler.NewGenreHandler(svc).RegisterRoutes(cat)
	handler.NewInstanceHandler(svc).RegisterRoutes(cat)
	engine.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "404.html", gin.H{"Title": "Not Found"})
	})
	return engine
}

func get(t *testing.T, app *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func post(t *testing.T, app *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

// postRedirect submits a form and returns the Location of the 303 it
// expects back.
func postRedirect(t *testing.T, app *gin.Engine, path string, form url.Values) string {
	t.Helper()

	w := post(t, app, path, form)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("POST %s: status = %d, want 303 (body: %s)", path, w.Code, w.Body.String())
	}
	return w.Header().Get("Location")
}

// lastSegment pulls the record identifier off a detail URL.
func lastSegment(t *testing.T, location string) string {
	t.Helper()

	i := strings.LastIndex(location, "/")
	if i < 0 {
		t.Fatalf("no path segments in %q", location)
	}
	return location[i+1:]
}

func TestCatalogLifecycle(t *testing.T) {
	app := newApp(t)

	// A fresh library is empty.
	w := get(t, app, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("home: status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "<strong>Books:</strong> 0") {
		t.Fatalf("expected zero books on the empty home page:\n%s", w.Body.String())
	}

	// Create an author; the redirect lands on its detail view.
	authorURL := postRedirect(t, app, "/catalog/author/create", url.Values{
		"first_name":  {"Jane"},
		"family_name": {"Austen"},
	})
	w = get(t, app, authorURL)
	if w.Code != http.StatusOK {
		t.Fatalf("author detail: status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Austen Jane") {
		t.Fatal("author detail should show the display name family-name first")
	}
	if !strings.Contains(w.Body.String(), "* - *") {
		t.Fatal("unknown life dates should render as placeholders")
	}

	// The same genre name twice resolves to one record.
	genreURL := postRedirect(t, app, "/catalog/genre/create", url.Values{"name": {"Fantasy"}})
	again := postRedirect(t, app, "/catalog/genre/create", url.Values{"name": {"Fantasy"}})
	if genreURL != again {
		t.Fatalf("duplicate genre create: %q != %q", genreURL, again)
	}

	// A book naming an author that does not exist is rejected with a
	// field error, nothing persisted.
	w = post(t, app, "/catalog/book/create", url.Values{
		"title":   {"Emma"},
		"author":  {uuid.New().String()},
		"summary": {"A novel."},
		"isbn":    {"9780000000000"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("dangling author: status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Author does not exist.") {
		t.Fatal("expected the dangling-author field error")
	}

	// The same book against the real author goes through.
	bookURL := postRedirect(t, app, "/catalog/book/create", url.Values{
		"title":   {"Emma"},
		"author":  {lastSegment(t, authorURL)},
		"summary": {"A novel."},
		"isbn":    {"9780000000000"},
		"genre":   {lastSegment(t, genreURL)},
	})
	w = get(t, app, bookURL)
	if !strings.Contains(w.Body.String(), "Emma") || !strings.Contains(w.Body.String(), "Fantasy") {
		t.Fatalf("book detail should show the title and genre:\n%s", w.Body.String())
	}

	// Add a copy of the book.
	instanceURL := postRedirect(t, app, "/catalog/bookinstance/create", url.Values{
		"book":    {lastSegment(t, bookURL)},
		"imprint": {"First edition"},
		"status":  {"Available"},
	})

	// The author cannot be deleted while the book exists.
	w = post(t, app, "/catalog/author/delete", url.Values{
		"authorid": {lastSegment(t, authorURL)},
	})
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Delete the following books first.") {
		t.Fatalf("author delete should be blocked, got %d:\n%s", w.Code, w.Body.String())
	}

	// Neither can the book while its copy exists.
	w = post(t, app, "/catalog/book/delete", url.Values{
		"bookid": {lastSegment(t, bookURL)},
	})
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Delete the following copies first.") {
		t.Fatalf("book delete should be blocked, got %d:\n%s", w.Code, w.Body.String())
	}

	// Tear down leaf-first: copy, book, author.
	postRedirect(t, app, "/catalog/bookinstance/delete", url.Values{
		"bid": {lastSegment(t, instanceURL)},
	})
	postRedirect(t, app, "/catalog/book/delete", url.Values{
		"bookid": {lastSegment(t, bookURL)},
	})
	postRedirect(t, app, "/catalog/author/delete", url.Values{
		"authorid": {lastSegment(t, authorURL)},
	})

	// The records are gone.
	if w = get(t, app, bookURL); w.Code != http.StatusNotFound {
		t.Fatalf("deleted book detail: status = %d, want 404", w.Code)
	}
	if w = get(t, app, authorURL); w.Code != http.StatusNotFound {
		t.Fatalf("deleted author detail: status = %d, want 404", w.Code)
	}
}

func TestUpdateFlow(t *testing.T) {
	app := newApp(t)

	authorURL := postRedirect(t, app, "/catalog/author/create", url.Values{
		"first_name":  {"Jane"},
		"family_name": {"Austen"},
	})

	// The update form comes pre-filled.
	w := get(t, app, authorURL+"/update")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `value="Jane"`) {
		t.Fatalf("update form should be pre-filled, got %d:\n%s", w.Code, w.Body.String())
	}

	// The update keeps the identifier and changes the fields.
	redirected := postRedirect(t, app, authorURL+"/update", url.Values{
		"first_name":    {"Jane"},
		"family_name":   {"Austen"},
		"date_of_birth": {"1775-12-16"},
	})
	if redirected != authorURL {
		t.Fatalf("update redirect = %q, want %q", redirected, authorURL)
	}

	w = get(t, app, authorURL)
	if !strings.Contains(w.Body.String(), "December 1775 - *") {
		t.Fatalf("updated lifespan not rendered:\n%s", w.Body.String())
	}
}

func TestUnknownRouteRenders404(t *testing.T) {
	app := newApp(t)

	w := get(t, app, "/nothing/here")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
