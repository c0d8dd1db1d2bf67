package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookhive/library-service/internal/model"
)

func (h *Handler) CreateRequest(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req model.CreateBookRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.svc.Requests.Submit(c.Request().Context(), p, req.BookID, req.Message)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) RespondRequest(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	requestUID := c.Param("requestUid")
	if requestUID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "requestUid is empty")
	}
	var req model.RespondBookRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.svc.Requests.Respond(c.Request().Context(), p, requestUID, req.Status, req.AdminResponse)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) ListMyRequests(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	items, err := h.svc.Requests.ListMine(c.Request().Context(), p)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListAllRequests(c echo.Context) error {
	items, err := h.svc.Requests.ListAll(c.Request().Context(), model.RequestStatus(c.QueryParam("status")))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) RequestStats(c echo.Context) error {
	stats, err := h.svc.Requests.Stats(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
