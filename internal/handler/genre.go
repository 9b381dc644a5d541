package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"locallibrary/internal/catalog"
	"locallibrary/internal/forms"
)

const genreListURL = "/catalog/genres"

type GenreHandler struct {
	svc *catalog.Service
}

func NewGenreHandler(svc *catalog.Service) *GenreHandler {
	return &GenreHandler{svc: svc}
}

func (h *GenreHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/genres", h.List)
	r.GET("/genre/create", h.CreateForm)
	r.POST("/genre/create", h.Create)
	r.GET("/genre/:id", h.Detail)
	r.GET("/genre/:id/update", h.UpdateForm)
	r.POST("/genre/:id/update", h.Update)
	r.GET("/genre/:id/delete", h.DeleteForm)
	r.POST("/genre/delete", h.Delete)
}

func (h *GenreHandler) List(c *gin.Context) {
	genres, err := h.svc.ListGenres(c.Request.Context())
	if err != nil {
		renderServerError(c, err)
		return
	}

	render(c, http.StatusOK, "genre_list.html", gin.H{
		"Title":  "Genre List",
		"Genres": genres,
	})
}

func (h *GenreHandler) Detail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	d, err := h.svc.GenreDetail(c.Request.Context(), id)
	if err != nil {
		failRead(c, err)
		return
	}

	render(c, http.StatusOK, "genre_detail.html", gin.H{
		"Title": "Genre Detail",
		"Genre": d.Genre,
		"Books": d.Books,
	})
}

func (h *GenreHandler) CreateForm(c *gin.Context) {
	render(c, http.StatusOK, "genre_form.html", gin.H{
		"Title": "Create Genre",
		"Form":  forms.GenreForm{},
	})
}

// Create resolves to an existing genre of the same name instead of
// inserting a duplicate.
func (h *GenreHandler) Create(c *gin.Context) {
	var form forms.GenreForm
	_ = c.ShouldBind(&form)

	if errs := form.Validate(); len(errs) > 0 {
		render(c, http.StatusOK, "genre_form.html", gin.H{
			"Title":  "Create Genre",
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	genre := form.Record()
	resolved, err := h.svc.CreateGenre(c.Request.Context(), &genre)
	if err != nil {
		renderServerError(c, err)
		return
	}
	seeOther(c, resolved.URL())
}

func (h *GenreHandler) UpdateForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	genre, err := h.svc.GetGenre(c.Request.Context(), id)
	if err != nil {
		failRead(c, err)
		return
	}

	render(c, http.StatusOK, "genre_form.html", gin.H{
		"Title": "Update Genre",
		"Form":  forms.GenreFormFrom(*genre),
	})
}

func (h *GenreHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var form forms.GenreForm
	_ = c.ShouldBind(&form)

	if errs := form.Validate(); len(errs) > 0 {
		render(c, http.StatusOK, "genre_form.html", gin.H{
			"Title":  "Update Genre",
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	genre := form.Record()
	genre.ID = id
	if err := h.svc.UpdateGenre(c.Request.Context(), &genre); err != nil {
		failRead(c, err)
		return
	}
	seeOther(c, genre.URL())
}

func (h *GenreHandler) DeleteForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	d, err := h.svc.GenreDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			seeOther(c, genreListURL)
			return
		}
		renderServerError(c, err)
		return
	}

	render(c, http.StatusOK, "genre_delete.html", gin.H{
		"Title": "Delete Genre",
		"Genre": d.Genre,
		"Books": d.Books,
	})
}

func (h *GenreHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.PostForm("gid"))
	if err != nil {
		seeOther(c, genreListURL)
		return
	}

	d, err := h.svc.DeleteGenre(c.Request.Context(), id)
	switch {
	case err == nil, errors.Is(err, catalog.ErrNotFound):
		seeOther(c, genreListURL)
	case errors.Is(err, catalog.ErrHasDependents):
		render(c, http.StatusOK, "genre_delete.html", gin.H{
			"Title": "Delete Genre",
			"Genre": d.Genre,
			"Books": d.Books,
			"Error": "Delete the following books first.",
		})
	default:
		renderServerError(c, err)
	}
}
