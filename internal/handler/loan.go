package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookhive/library-service/internal/model"
)

func (h *Handler) IssueBook(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req model.IssueBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	loan, err := h.svc.Loans.Issue(c.Request().Context(), p, req.BookID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, loan)
}

func (h *Handler) ReturnBook(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	loanUID := c.Param("loanUid")
	if loanUID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "loanUid is empty")
	}

	loan, err := h.svc.Loans.Return(c.Request().Context(), p, loanUID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) ListLoans(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	all := c.QueryParam("all") == "true"

	loans, err := h.svc.Loans.ListLoans(c.Request().Context(), p, all)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loans)
}
