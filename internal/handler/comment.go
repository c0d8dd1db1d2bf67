package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookhive/library-service/internal/model"
)

func (h *Handler) AddComment(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req model.AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.svc.Comments.Add(c.Request().Context(), p, req.BookID, req.Comment)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

func (h *Handler) ListBookComments(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	comments, err := h.svc.Comments.ListForBook(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

func (h *Handler) UpdateComment(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req model.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.svc.Comments.Update(c.Request().Context(), p, id, req.Comment)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

func (h *Handler) DeleteComment(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Comments.Delete(c.Request().Context(), p, id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
