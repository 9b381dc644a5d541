package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"locallibrary/internal/catalog"
	"locallibrary/internal/forms"
	"locallibrary/internal/model"
)

const bookListURL = "/catalog/books"

type BookHandler struct {
	svc *catalog.Service
}

func NewBookHandler(svc *catalog.Service) *BookHandler {
	return &BookHandler{svc: svc}
}

func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/books", h.List)
	r.GET("/book/create", h.CreateForm)
	r.POST("/book/create", h.Create)
	r.GET("/book/:id", h.Detail)
	r.GET("/book/:id/update", h.UpdateForm)
	r.POST("/book/:id/update", h.Update)
	r.GET("/book/:id/delete", h.DeleteForm)
	r.POST("/book/delete", h.Delete)
}

func (h *BookHandler) List(c *gin.Context) {
	books, err := h.svc.ListBooks(c.Request.Context())
	if err != nil {
		renderServerError(c, err)
		return
	}

	render(c, http.StatusOK, "book_list.html", gin.H{
		"Title": "Book List",
		"Books": books,
	})
}

func (h *BookHandler) Detail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	d, err := h.svc.BookDetail(c.Request.Context(), id)
	if err != nil {
		failRead(c, err)
		return
	}

	render(c, http.StatusOK, "book_detail.html", gin.H{
		"Title":     d.Book.Title,
		"Book":      d.Book,
		"Instances": d.Instances,
	})
}

func (h *BookHandler) renderForm(c *gin.Context, title string, form forms.BookForm, data *catalog.BookFormData, errs forms.Errors) {
	render(c, http.StatusOK, "book_form.html", gin.H{
		"Title":   title,
		"Form":    form,
		"Authors": data.Authors,
		"Genres":  data.Genres,
		"Errors":  errs,
	})
}

func (h *BookHandler) CreateForm(c *gin.Context) {
	data, err := h.svc.BookFormData(c.Request.Context())
	if err != nil {
		renderServerError(c, err)
		return
	}
	h.renderForm(c, "Create Book", forms.BookForm{}, data, nil)
}

// Create validates the submission and verifies its author and genre
// references; any failure re-renders the form with the reference
// lists re-fetched and the submitted values kept.
func (h *BookHandler) Create(c *gin.Context) {
	var form forms.BookForm
	_ = c.ShouldBind(&form)

	if errs := form.Validate(); len(errs) > 0 {
		h.rerenderForm(c, "Create Book", form, errs)
		return
	}

	book := form.Record()
	err := h.svc.CreateBook(c.Request.Context(), &book, form.GenreIDs())
	if err != nil {
		h.failWrite(c, "Create Book", form, err)
		return
	}
	seeOther(c, book.URL())
}

func (h *BookHandler) UpdateForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	book, data, err := h.svc.BookUpdateData(c.Request.Context(), id)
	if err != nil {
		failRead(c, err)
		return
	}
	h.renderForm(c, "Update Book", forms.BookFormFrom(*book), data, nil)
}

func (h *BookHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var form forms.BookForm
	_ = c.ShouldBind(&form)

	if errs := form.Validate(); len(errs) > 0 {
		h.rerenderForm(c, "Update Book", form, errs)
		return
	}

	book := form.Record()
	book.ID = id
	err := h.svc.UpdateBook(c.Request.Context(), &book, form.GenreIDs())
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			renderNotFound(c)
			return
		}
		h.failWrite(c, "Update Book", form, err)
		return
	}
	seeOther(c, book.URL())
}

// rerenderForm re-fetches the author and genre lists and shows the
// form again with the field errors, HTTP 200, nothing persisted.
func (h *BookHandler) rerenderForm(c *gin.Context, title string, form forms.BookForm, errs forms.Errors) {
	data, err := h.svc.BookFormData(c.Request.Context())
	if err != nil {
		renderServerError(c, err)
		return
	}
	h.renderForm(c, title, form, data, errs)
}

// failWrite translates write-time reference failures into field
// errors; anything else is a backend failure.
func (h *BookHandler) failWrite(c *gin.Context, title string, form forms.BookForm, err error) {
	switch {
	case errors.Is(err, catalog.ErrAuthorMissing):
		h.rerenderForm(c, title, form, forms.Errors{}.Add("author", "Author does not exist."))
	case errors.Is(err, catalog.ErrGenreMissing):
		h.rerenderForm(c, title, form, forms.Errors{}.Add("genre", "Genre does not exist."))
	default:
		renderServerError(c, err)
	}
}

func (h *BookHandler) DeleteForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	d, err := h.svc.BookDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			seeOther(c, bookListURL)
			return
		}
		renderServerError(c, err)
		return
	}
	h.renderDelete(c, d.Book, d.Instances, "")
}

func (h *BookHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.PostForm("bookid"))
	if err != nil {
		seeOther(c, bookListURL)
		return
	}

	d, err := h.svc.DeleteBook(c.Request.Context(), id)
	switch {
	case err == nil, errors.Is(err, catalog.ErrNotFound):
		seeOther(c, bookListURL)
	case errors.Is(err, catalog.ErrHasDependents):
		h.renderDelete(c, d.Book, d.Instances, "Delete the following copies first.")
	default:
		renderServerError(c, err)
	}
}

func (h *BookHandler) renderDelete(c *gin.Context, book model.Book, instances []model.BookInstance, errMsg string) {
	data := gin.H{
		"Title":     "Delete Book",
		"Book":      book,
		"Instances": instances,
	}
	if errMsg != "" {
		data["Error"] = errMsg
	}
	render(c, http.StatusOK, "book_delete.html", data)
}
