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

func TestHandler_CreateRequest(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockRequestService)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"bookId":3,"message":"need it for the exam"}`,
			mockBehavior: func(r *service_mocks.MockRequestService) {
				r.EXPECT().
					Submit(gomock.Any(), student, 3, "need it for the exam").
					Return(model.BookRequest{
						ID:         5,
						RequestUID: "0b8c7c38-dfd7-4f1a-bd9c-7e4f7b8f6f01",
						UserID:     7,
						BookID:     3,
						Message:    "need it for the exam",
						Status:     model.RequestPending,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"id":5,"requestUid":"0b8c7c38-dfd7-4f1a-bd9c-7e4f7b8f6f01","userId":7,"bookId":3,"message":"need it for the exam","status":"pending","createdAt":"0001-01-01T00:00:00Z"}`,
			},
		},
		{
			name:         "err. message required",
			body:         `{"bookId":3}`,
			mockBehavior: func(r *service_mocks.MockRequestService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
		{
			name: "err. pending duplicate",
			body: `{"bookId":3,"message":"again"}`,
			mockBehavior: func(r *service_mocks.MockRequestService) {
				r.EXPECT().
					Submit(gomock.Any(), student, 3, "again").
					Return(model.BookRequest{}, errs.ErrDuplicatePending)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"pending request for this book already exists"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			requests := service_mocks.NewMockRequestService(c)
			tt.mockBehavior(requests)

			h := handler.New(handler.Services{Requests: requests}, nil, zap.NewExample().Named("test"))
			e := newEcho()
			e.POST("/requests", h.CreateRequest, asUser(student))

			r := httptest.NewRequest(http.MethodPost, "/requests", strings.NewReader(tt.body))
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

func TestHandler_RespondRequest(t *testing.T) {
	t.Parallel()
	const uid = "0b8c7c38-dfd7-4f1a-bd9c-7e4f7b8f6f01"
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockRequestService)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"status":"approved","adminResponse":"picked up at desk 2"}`,
			mockBehavior: func(r *service_mocks.MockRequestService) {
				resp := "picked up at desk 2"
				r.EXPECT().
					Respond(gomock.Any(), admin, uid, model.RequestApproved, &resp).
					Return(model.BookRequest{
						ID:            5,
						RequestUID:    uid,
						UserID:        7,
						BookID:        3,
						Message:       "need it for the exam",
						Status:        model.RequestApproved,
						AdminResponse: &resp,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"id":5,"requestUid":"` + uid + `","userId":7,"bookId":3,"message":"need it for the exam","status":"approved","adminResponse":"picked up at desk 2","createdAt":"0001-01-01T00:00:00Z"}`,
			},
		},
		{
			name: "err. already resolved",
			body: `{"status":"rejected"}`,
			mockBehavior: func(r *service_mocks.MockRequestService) {
				r.EXPECT().
					Respond(gomock.Any(), admin, uid, model.RequestRejected, nil).
					Return(model.BookRequest{}, errs.ErrAlreadyResolved)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"request has already been responded to"}`,
			},
		},
		{
			name: "err. pending is not a resolution",
			body: `{"status":"pending"}`,
			mockBehavior: func(r *service_mocks.MockRequestService) {
				r.EXPECT().
					Respond(gomock.Any(), admin, uid, model.RequestPending, nil).
					Return(model.BookRequest{}, errs.NewInvalidInput("status must be approved, rejected or fulfilled"))
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"invalid input: status must be approved, rejected or fulfilled"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			requests := service_mocks.NewMockRequestService(c)
			tt.mockBehavior(requests)

			h := handler.New(handler.Services{Requests: requests}, nil, zap.NewExample().Named("test"))
			e := newEcho()
			e.PUT("/requests/:requestUid/respond", h.RespondRequest, asUser(admin))

			r := httptest.NewRequest(http.MethodPut, "/requests/"+uid+"/respond", strings.NewReader(tt.body))
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
