package web

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"itembox/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// indexData feeds the single CRUD page: the item table plus the create/edit
// form, with flash banners and inline error messages.
type indexData struct {
	Editing         *domain.Item
	Items           []domain.Item
	Message         string
	Flash           string
	FormTitle       string
	FormDescription string
}

func renderIndex(c *fiber.Ctx, status int, data indexData) error {
	var buf bytes.Buffer
	if err := indexTemplate.ExecuteTemplate(&buf, "index.html", data); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "template render failed")
	}

	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}
