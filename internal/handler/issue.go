package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookhive/library-service/internal/model"
)

func (h *Handler) CreateIssue(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req model.CreateIssueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	issue, err := h.svc.Issues.Submit(c.Request().Context(), p, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, issue)
}

func (h *Handler) RespondIssue(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	issueUID := c.Param("issueUid")
	if issueUID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "issueUid is empty")
	}
	var req model.RespondIssueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	issue, err := h.svc.Issues.Respond(c.Request().Context(), p, issueUID, req.Status, req.AdminResponse)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, issue)
}

func (h *Handler) ListMyIssues(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	items, err := h.svc.Issues.ListMine(c.Request().Context(), p)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListAllIssues(c echo.Context) error {
	items, err := h.svc.Issues.ListAll(c.Request().Context(),
		model.IssueStatus(c.QueryParam("status")),
		model.IssueCategory(c.QueryParam("category")))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) IssueStats(c echo.Context) error {
	stats, err := h.svc.Issues.Stats(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
