package web

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"itembox/app/item"
	"itembox/domain"
	"itembox/pkg/httperror"
)

// IndexPage handles GET /: the item table plus an empty create form.
func (s *Server) IndexPage(c *fiber.Ctx) error {
	res, err := s.listItems.Handle(c.UserContext(), &item.GetItemsRequest{})
	if err != nil {
		return writeError(c, err)
	}

	return renderIndex(c, fiber.StatusOK, indexData{
		Items: res.Items,
		Flash: flashMessage(c),
	})
}

// EditPage handles GET /items/:id/edit, pre-filling the form with the item.
func (s *Server) EditPage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	res, err := s.getItem.Handle(c.UserContext(), &item.GetItemRequest{ItemID: int64(id)})
	if err != nil {
		var httpErr *httperror.Error
		if errors.As(err, &httpErr) && httpErr.Status == fiber.StatusNotFound {
			return c.Redirect("/", fiber.StatusSeeOther)
		}
		return writeError(c, err)
	}

	listRes, err := s.listItems.Handle(c.UserContext(), &item.GetItemsRequest{})
	if err != nil {
		return writeError(c, err)
	}

	data := indexData{
		Editing:   &res.Item,
		Items:     listRes.Items,
		FormTitle: res.Item.Title,
	}
	if res.Item.Description != nil {
		data.FormDescription = *res.Item.Description
	}

	return renderIndex(c, fiber.StatusOK, data)
}

// CreateItem handles POST /items.
func (s *Server) CreateItem(c *fiber.Ctx) error {
	req := &item.CreateItemRequest{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Image:       imageUploadFrom(c),
	}

	if _, err := s.createItem.Handle(c.UserContext(), req); err != nil {
		return s.renderFormError(c, nil, req.Title, req.Description, err)
	}

	return c.Redirect("/?saved=1", fiber.StatusSeeOther)
}

// UpdateItem handles POST /items/:id.
func (s *Server) UpdateItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	req := &item.UpdateItemRequest{
		ItemID:      int64(id),
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Image:       imageUploadFrom(c),
	}

	if _, err := s.updateItem.Handle(c.UserContext(), req); err != nil {
		var editing *domain.Item
		if res, getErr := s.getItem.Handle(c.UserContext(), &item.GetItemRequest{ItemID: int64(id)}); getErr == nil {
			editing = &res.Item
		}
		return s.renderFormError(c, editing, req.Title, req.Description, err)
	}

	return c.Redirect("/?updated=1", fiber.StatusSeeOther)
}

// DeleteItem handles GET /items/:id/delete. Deletion reports success even
// when the id no longer exists.
func (s *Server) DeleteItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	if _, err := s.deleteItem.Handle(c.UserContext(), &item.DeleteItemRequest{ItemID: int64(id)}); err != nil {
		return writeError(c, err)
	}

	return c.Redirect("/?deleted=1", fiber.StatusSeeOther)
}

// renderFormError redisplays the page with the submitted values and an
// inline message for client errors; server errors get a generic response.
func (s *Server) renderFormError(c *fiber.Ctx, editing *domain.Item, title, description string, err error) error {
	var httpErr *httperror.Error
	if !errors.As(err, &httpErr) || !httpErr.IsClientError() {
		return writeError(c, err)
	}

	zap.L().Warn("Item form rejected",
		zap.String("code", httpErr.Code),
		zap.Error(httpErr),
	)

	listRes, listErr := s.listItems.Handle(c.UserContext(), &item.GetItemsRequest{})
	if listErr != nil {
		return writeError(c, listErr)
	}

	return renderIndex(c, httpErr.Status, indexData{
		Editing:         editing,
		Items:           listRes.Items,
		Message:         httpErr.Message,
		FormTitle:       title,
		FormDescription: description,
	})
}

// imageUploadFrom extracts the optional uploaded file. A missing or empty
// file input resolves to nil, meaning no image was supplied.
func imageUploadFrom(c *fiber.Ctx) *item.ImageUpload {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}

	files := form.File["image"]
	if len(files) == 0 {
		return nil
	}

	header := files[0]
	if header.Filename == "" && header.Size == 0 {
		return nil
	}

	f, err := header.Open()
	if err != nil {
		return &item.ImageUpload{Filename: header.Filename, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return &item.ImageUpload{Filename: header.Filename, Err: err}
	}

	return &item.ImageUpload{Filename: header.Filename, Data: data}
}

func flashMessage(c *fiber.Ctx) string {
	switch {
	case c.Query("saved") != "":
		return "Saved."
	case c.Query("updated") != "":
		return "Updated."
	case c.Query("deleted") != "":
		return "Deleted."
	}
	return ""
}

func writeError(c *fiber.Ctx, err error) error {
	var httpErr *httperror.Error
	if errors.As(err, &httpErr) {
		if httpErr.Status >= fiber.StatusInternalServerError {
			zap.L().Error("Handler returned server error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		} else {
			zap.L().Warn("Handler returned client error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		}

		return c.Status(httpErr.Status).SendString(httpErr.Message)
	}

	zap.L().Error("Unhandled error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).SendString("Internal server error.")
}
