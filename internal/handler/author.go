package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"locallibrary/internal/catalog"
	"locallibrary/internal/forms"
)

const authorListURL = "/catalog/authors"

type AuthorHandler struct {
	svc *catalog.Service
}

func NewAuthorHandler(svc *catalog.Service) *AuthorHandler {
	return &AuthorHandler{svc: svc}
}

func (h *AuthorHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/authors", h.List)
	r.GET("/author/create", h.CreateForm)
	r.POST("/author/create", h.Create)
	r.GET("/author/:id", h.Detail)
	r.GET("/author/:id/update", h.UpdateForm)
	r.POST("/author/:id/update", h.Update)
	r.GET("/author/:id/delete", h.DeleteForm)
	r.POST("/author/delete", h.Delete)
}

func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.svc.ListAuthors(c.Request.Context())
	if err != nil {
		renderServerError(c, err)
		return
	}

	render(c, http.StatusOK, "author_list.html", gin.H{
		"Title":   "Author List",
		"Authors": authors,
	})
}

func (h *AuthorHandler) Detail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	d, err := h.svc.AuthorDetail(c.Request.Context(), id)
	if err != nil {
		failRead(c, err)
		return
	}

	render(c, http.StatusOK, "author_detail.html", gin.H{
		"Title":  "Author Detail",
		"Author": d.Author,
		"Books":  d.Books,
	})
}

func (h *AuthorHandler) CreateForm(c *gin.Context) {
	render(c, http.StatusOK, "author_form.html", gin.H{
		"Title": "Create Author",
		"Form":  forms.AuthorForm{},
	})
}

func (h *AuthorHandler) Create(c *gin.Context) {
	var form forms.AuthorForm
	_ = c.ShouldBind(&form)

	if errs := form.Validate(); len(errs) > 0 {
		render(c, http.StatusOK, "author_form.html", gin.H{
			"Title":  "Create Author",
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	author := form.Record()
	if err := h.svc.CreateAuthor(c.Request.Context(), &author); err != nil {
		renderServerError(c, err)
		return
	}
	seeOther(c, author.URL())
}

func (h *AuthorHandler) UpdateForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	author, err := h.svc.GetAuthor(c.Request.Context(), id)
	if err != nil {
		failRead(c, err)
		return
	}

	render(c, http.StatusOK, "author_form.html", gin.H{
		"Title": "Update Author",
		"Form":  forms.AuthorFormFrom(*author),
	})
}

func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var form forms.AuthorForm
	_ = c.ShouldBind(&form)

	if errs := form.Validate(); len(errs) > 0 {
		render(c, http.StatusOK, "author_form.html", gin.H{
			"Title":  "Update Author",
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	author := form.Record()
	author.ID = id
	if err := h.svc.UpdateAuthor(c.Request.Context(), &author); err != nil {
		failRead(c, err)
		return
	}
	seeOther(c, author.URL())
}

// DeleteForm renders the confirmation view. A missing target makes
// the whole flow an idempotent no-op: redirect back to the list.
func (h *AuthorHandler) DeleteForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	d, err := h.svc.AuthorDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			seeOther(c, authorListURL)
			return
		}
		renderServerError(c, err)
		return
	}

	render(c, http.StatusOK, "author_delete.html", gin.H{
		"Title":  "Delete Author",
		"Author": d.Author,
		"Books":  d.Books,
	})
}

// Delete executes the guarded delete. The service re-checks the
// dependent set; a blocked delete re-renders the confirmation view
// with the books that stand in the way, without mutating anything.
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.PostForm("authorid"))
	if err != nil {
		seeOther(c, authorListURL)
		return
	}

	d, err := h.svc.DeleteAuthor(c.Request.Context(), id)
	switch {
	case err == nil, errors.Is(err, catalog.ErrNotFound):
		seeOther(c, authorListURL)
	case errors.Is(err, catalog.ErrHasDependents):
		render(c, http.StatusOK, "author_delete.html", gin.H{
			"Title":  "Delete Author",
			"Author": d.Author,
			"Books":  d.Books,
			"Error":  "Delete the following books first.",
		})
	default:
		renderServerError(c, err)
	}
}
