package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"locallibrary/internal/catalog"
)

type HomeHandler struct {
	svc *catalog.Service
}

func NewHomeHandler(svc *catalog.Service) *HomeHandler {
	return &HomeHandler{svc: svc}
}

func (h *HomeHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Index)
	r.GET("/catalog", h.Index)
}

// Index renders the home page with the aggregate collection counts.
func (h *HomeHandler) Index(c *gin.Context) {
	counts, err := h.svc.Home(c.Request.Context())
	if err != nil {
		renderServerError(c, err)
		return
	}

	render(c, http.StatusOK, "index.html", gin.H{
		"Title":  "Local Library Home",
		"Counts": counts,
	})
}
