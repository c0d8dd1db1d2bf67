package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookhive/library-service/internal/model"
)

func (h *Handler) RateBook(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req model.RateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.svc.Ratings.Rate(c.Request().Context(), p, req.BookID, req.Rating); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"rating": req.Rating})
}

func (h *Handler) GetBookRatings(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ratings, err := h.svc.Ratings.GetForBook(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, ratings)
}

func (h *Handler) GetMyRating(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	rating, err := h.svc.Ratings.GetMine(c.Request().Context(), p, id)
	if err != nil {
		return httpError(err)
	}
	if rating == nil {
		return c.JSON(http.StatusOK, echo.Map{"rating": nil})
	}
	return c.JSON(http.StatusOK, rating)
}
