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

const instanceListURL = "/catalog/bookinstances"

type InstanceHandler struct {
	svc *catalog.Service
}

func NewInstanceHandler(svc *catalog.Service) *InstanceHandler {
	return &InstanceHandler{svc: svc}
}

func (h *InstanceHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/bookinstances", h.List)
	r.GET("/bookinstance/create", h.CreateForm)
	r.POST("/bookinstance/create", h.Create)
	r.GET("/bookinstance/:id", h.Detail)
	r.GET("/bookinstance/:id/update", h.UpdateForm)
	r.POST("/bookinstance/:id/update", h.Update)
	r.GET("/bookinstance/:id/delete", h.DeleteForm)
	r.POST("/bookinstance/delete", h.Delete)
}

func (h *InstanceHandler) List(c *gin.Context) {
	instances, err := h.svc.ListInstances(c.Request.Context())
	if err != nil {
		renderServerError(c, err)
		return
	}

	render(c, http.StatusOK, "bookinstance_list.html", gin.H{
		"Title":     "Book Instance List",
		"Instances": instances,
	})
}

func (h *InstanceHandler) Detail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	instance, err := h.svc.InstanceDetail(c.Request.Context(), id)
	if err != nil {
		failRead(c, err)
		return
	}

	render(c, http.StatusOK, "bookinstance_detail.html", gin.H{
		"Title":    "Copy: " + instance.Book.Title,
		"Instance": instance,
	})
}

func (h *InstanceHandler) renderForm(c *gin.Context, title string, form forms.InstanceForm, books []model.Book, errs forms.Errors) {
	render(c, http.StatusOK, "bookinstance_form.html", gin.H{
		"Title":    title,
		"Form":     form,
		"Books":    books,
		"Statuses": model.InstanceStatuses(),
		"Errors":   errs,
	})
}

func (h *InstanceHandler) CreateForm(c *gin.Context) {
	books, err := h.svc.InstanceFormData(c.Request.Context())
	if err != nil {
		renderServerError(c, err)
		return
	}
	h.renderForm(c, "Create BookInstance", forms.InstanceForm{}, books, nil)
}

func (h *InstanceHandler) Create(c *gin.Context) {
	var form forms.InstanceForm
	_ = c.ShouldBind(&form)

	if errs := form.Validate(); len(errs) > 0 {
		h.rerenderForm(c, "Create BookInstance", form, errs)
		return
	}

	instance := form.Record()
	if err := h.svc.CreateInstance(c.Request.Context(), &instance); err != nil {
		h.failWrite(c, "Create BookInstance", form, err)
		return
	}
	seeOther(c, instance.URL())
}

func (h *InstanceHandler) UpdateForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	instance, books, err := h.svc.InstanceUpdateData(c.Request.Context(), id)
	if err != nil {
		failRead(c, err)
		return
	}
	h.renderForm(c, "Update BookInstance", forms.InstanceFormFrom(*instance), books, nil)
}

func (h *InstanceHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var form forms.InstanceForm
	_ = c.ShouldBind(&form)

	if errs := form.Validate(); len(errs) > 0 {
		h.rerenderForm(c, "Update BookInstance", form, errs)
		return
	}

	instance := form.Record()
	instance.ID = id
	if err := h.svc.UpdateInstance(c.Request.Context(), &instance); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			renderNotFound(c)
			return
		}
		h.failWrite(c, "Update BookInstance", form, err)
		return
	}
	seeOther(c, instance.URL())
}

func (h *InstanceHandler) rerenderForm(c *gin.Context, title string, form forms.InstanceForm, errs forms.Errors) {
	books, err := h.svc.InstanceFormData(c.Request.Context())
	if err != nil {
		renderServerError(c, err)
		return
	}
	h.renderForm(c, title, form, books, errs)
}

func (h *InstanceHandler) failWrite(c *gin.Context, title string, form forms.InstanceForm, err error) {
	if errors.Is(err, catalog.ErrBookMissing) {
		h.rerenderForm(c, title, form, forms.Errors{}.Add("book", "Book does not exist."))
		return
	}
	renderServerError(c, err)
}

func (h *InstanceHandler) DeleteForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	instance, err := h.svc.InstanceDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			seeOther(c, instanceListURL)
			return
		}
		renderServerError(c, err)
		return
	}

	render(c, http.StatusOK, "bookinstance_delete.html", gin.H{
		"Title":    "Delete BookInstance",
		"Instance": instance,
	})
}

// Delete needs no dependent guard: nothing references a copy.
func (h *InstanceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.PostForm("bid"))
	if err != nil {
		seeOther(c, instanceListURL)
		return
	}

	if err := h.svc.DeleteInstance(c.Request.Context(), id); err != nil {
		renderServerError(c, err)
		return
	}
	seeOther(c, instanceListURL)
}
