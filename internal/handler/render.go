package handler

import (
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"locallibrary/internal/catalog"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses the embedded view templates. Free-text record
// fields are escaped contextually by html/template at render time.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.html"))
}

// StaticFS serves the embedded stylesheet and other public assets.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

func render(c *gin.Context, status int, view string, data gin.H) {
	c.HTML(status, view, data)
}

func renderNotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "404.html", gin.H{"Title": "Not Found"})
}

func renderServerError(c *gin.Context, err error) {
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	render(c, http.StatusInternalServerError, "500.html", gin.H{"Title": "Server Error"})
}

// failRead maps a read failure to its response. Every failure path
// answers the client; nothing is logged-and-dropped.
func failRead(c *gin.Context, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		renderNotFound(c)
		return
	}
	renderServerError(c, err)
}

// parseID resolves the :id route parameter. A malformed identifier
// can never name a record, so it renders the 404 view.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		renderNotFound(c)
		return uuid.Nil, false
	}
	return id, true
}

// seeOther is the post-mutation redirect.
func seeOther(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}
