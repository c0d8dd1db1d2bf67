package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/handler"
	service_mocks "github.com/bookhive/library-service/internal/handler/mocks"
	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/pkg/auth"
	"github.com/bookhive/library-service/pkg/validate"
)

var (
	student = auth.Principal{UserID: 7, Name: "Alice", Email: "alice@example.com", Role: auth.RoleStudent}
	admin   = auth.Principal{UserID: 1, Name: "Bob", Email: "bob@example.com", Role: auth.RoleAdmin}
)

// asUser injects the principal the jwt middleware would have put into the
// request context.
func asUser(p auth.Principal) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.SetRequest(c.Request().WithContext(auth.SetPrincipal(c.Request().Context(), p)))
			return next(c)
		}
	}
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	return e
}

func TestHandler_IssueBook(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLoanService)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"bookId":3}`,
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					Issue(gomock.Any(), student, 3).
					Return(model.Loan{
						ID:      1,
						LoanUID: "b9a1c3ee-5d52-4de1-a2a3-96a79f852a10",
						UserID:  7,
						BookID:  3,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"id":1,"loanUid":"b9a1c3ee-5d52-4de1-a2a3-96a79f852a10","userId":7,"bookId":3,"issuedAt":"0001-01-01T00:00:00Z"}`,
			},
		},
		{
			name:         "err. bookId required",
			body:         `{}`,
			mockBehavior: func(r *service_mocks.MockLoanService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
		{
			name: "err. no copies left",
			body: `{"bookId":3}`,
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					Issue(gomock.Any(), student, 3).
					Return(model.Loan{}, errs.ErrNotAvailable)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"book is not available"}`,
			},
		},
		{
			name: "err. second active loan",
			body: `{"bookId":3}`,
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					Issue(gomock.Any(), student, 3).
					Return(model.Loan{}, errs.ErrDuplicateLoan)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"book already issued to this user"}`,
			},
		},
		{
			name: "err. contention",
			body: `{"bookId":3}`,
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					Issue(gomock.Any(), student, 3).
					Return(model.Loan{}, errs.ErrUnavailable)
			},
			response: response{
				expectedCode: http.StatusServiceUnavailable,
				expectedBody: `{"message":"temporarily unavailable"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			loans := service_mocks.NewMockLoanService(c)
			tt.mockBehavior(loans)

			h := handler.New(handler.Services{Loans: loans}, nil, zap.NewExample().Named("test"))
			e := newEcho()
			e.POST("/loans", h.IssueBook, asUser(student))

			r := httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader(tt.body))
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

func TestHandler_ReturnBook(t *testing.T) {
	t.Parallel()
	returnedAt := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLoanService)

	var tests = []struct {
		name         string
		loanUID      string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:    "ok",
			loanUID: "b9a1c3ee-5d52-4de1-a2a3-96a79f852a10",
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					Return(gomock.Any(), student, "b9a1c3ee-5d52-4de1-a2a3-96a79f852a10").
					Return(model.Loan{
						ID:         1,
						LoanUID:    "b9a1c3ee-5d52-4de1-a2a3-96a79f852a10",
						UserID:     7,
						BookID:     3,
						ReturnedAt: &returnedAt,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"id":1,"loanUid":"b9a1c3ee-5d52-4de1-a2a3-96a79f852a10","userId":7,"bookId":3,"issuedAt":"0001-01-01T00:00:00Z","returnedAt":"2026-02-01T12:00:00Z"}`,
			},
		},
		{
			name:    "err. already returned",
			loanUID: "b9a1c3ee-5d52-4de1-a2a3-96a79f852a10",
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					Return(gomock.Any(), student, "b9a1c3ee-5d52-4de1-a2a3-96a79f852a10").
					Return(model.Loan{}, errs.ErrAlreadyReturned)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"book has already been returned"}`,
			},
		},
		{
			name:    "err. unknown loan",
			loanUID: "00000000-0000-0000-0000-000000000000",
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					Return(gomock.Any(), student, "00000000-0000-0000-0000-000000000000").
					Return(model.Loan{}, errs.ErrNotFound)
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
			loans := service_mocks.NewMockLoanService(c)
			tt.mockBehavior(loans)

			h := handler.New(handler.Services{Loans: loans}, nil, zap.NewExample().Named("test"))
			e := newEcho()
			e.POST("/loans/:loanUid/return", h.ReturnBook, asUser(student))

			r := httptest.NewRequest(http.MethodPost, "/loans/"+tt.loanUID+"/return", http.NoBody)
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

func TestHandler_ListLoans(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	loans := service_mocks.NewMockLoanService(c)
	loans.EXPECT().
		ListLoans(gomock.Any(), student, true).
		Return(nil, errors.Wrap(errs.ErrForbidden, "all loans"))

	h := handler.New(handler.Services{Loans: loans}, nil, zap.NewExample().Named("test"))
	e := newEcho()
	e.GET("/loans", h.ListLoans, asUser(student))

	r := httptest.NewRequest(http.MethodGet, "/loans?all=true", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusForbidden, w.Code)
}
