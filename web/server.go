package web

import (
	"github.com/gofiber/fiber/v2"

	"itembox/app/item"
)

// Server bundles the lifecycle handlers behind the HTML pages. It holds no
// request state of its own.
type Server struct {
	listItems  *item.GetItemsHandler
	getItem    *item.GetItemHandler
	createItem *item.CreateItemHandler
	updateItem *item.UpdateItemHandler
	deleteItem *item.DeleteItemHandler
}

func NewServer(
	listItems *item.GetItemsHandler,
	getItem *item.GetItemHandler,
	createItem *item.CreateItemHandler,
	updateItem *item.UpdateItemHandler,
	deleteItem *item.DeleteItemHandler,
) *Server {
	return &Server{
		listItems:  listItems,
		getItem:    getItem,
		createItem: createItem,
		updateItem: updateItem,
		deleteItem: deleteItem,
	}
}

// RegisterRoutes mounts the page and health routes on the app.
func (s *Server) RegisterRoutes(app *fiber.App) {
	app.Get("/health", s.Health)
	app.Get("/", s.IndexPage)
	app.Get("/items/:id/edit", s.EditPage)
	app.Get("/items/:id/delete", s.DeleteItem)
	app.Post("/items", s.CreateItem)
	app.Post("/items/:id", s.UpdateItem)
}

// Health is a constant liveness signal, reachable without S3 or broker
// connectivity.
func (s *Server) Health(c *fiber.Ctx) error {
	c.Type("txt", "utf-8")
	return c.SendString("ok")
}
