package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/handler"
	service_mocks "github.com/bookhive/library-service/internal/handler/mocks"
	"github.com/bookhive/library-service/internal/model"
)

func TestHandler_RateBook(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockRatingService)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"bookId":3,"rating":5}`,
			mockBehavior: func(r *service_mocks.MockRatingService) {
				r.EXPECT().
					Rate(gomock.Any(), student, 3, 5).
					Return(nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"rating":5}`,
			},
		},
		{
			name: "err. out of range",
			body: `{"bookId":3,"rating":6}`,
			mockBehavior: func(r *service_mocks.MockRatingService) {
				r.EXPECT().
					Rate(gomock.Any(), student, 3, 6).
					Return(errs.ErrOutOfRange)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"rating must be between 1 and 5"}`,
			},
		},
		{
			name: "err. unknown book",
			body: `{"bookId":404,"rating":4}`,
			mockBehavior: func(r *service_mocks.MockRatingService) {
				r.EXPECT().
					Rate(gomock.Any(), student, 404, 4).
					Return(errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"not found"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			ratings := service_mocks.NewMockRatingService(c)
			tt.mockBehavior(ratings)

			h := handler.New(handler.Services{Ratings: ratings}, nil, zap.NewExample().Named("test"))
			e := newEcho()
			e.POST("/ratings", h.RateBook, asUser(student))

			r := httptest.NewRequest(http.MethodPost, "/ratings", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_GetBookRatings(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	ratings := service_mocks.NewMockRatingService(c)
	ratings.EXPECT().
		GetForBook(gomock.Any(), 3).
		Return(model.BookRatings{
			Ratings:       []model.RatingDetail{},
			AverageRating: 4.33,
			RatingCount:   3,
		}, nil)

	h := handler.New(handler.Services{Ratings: ratings}, nil, zap.NewExample().Named("test"))
	e := newEcho()
	e.GET("/books/:id/ratings", h.GetBookRatings)

	r := httptest.NewRequest(http.MethodGet, "/books/3/ratings", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `{"ratings":[],"averageRating":4.33,"ratingCount":3}`, strings.Trim(w.Body.String(), "\n"))
}
