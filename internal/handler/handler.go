package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/errs"
	md "github.com/bookhive/library-service/pkg/middleware"
	"github.com/bookhive/library-service/pkg/validate"
)

type Services struct {
	Auth     AuthService
	Books    BookService
	Loans    LoanService
	Requests RequestService
	Issues   IssueService
	Ratings  RatingService
	Comments CommentService
}

type Handler struct {
	svc    Services
	jwtKey []byte
	log    *zap.Logger
}

func New(svc Services, jwtKey []byte, log *zap.Logger) *Handler {
	return &Handler{
		svc:    svc,
		jwtKey: jwtKey,
		log:    log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()

	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/auth/register", h.Register)
	api.POST("/auth/request-otp", h.RequestOTP)
	api.POST("/auth/verify-otp", h.VerifyOTP)

	api.GET("/books", h.ListBooks)
	api.GET("/books/:id", h.GetBook)
	api.GET("/books/:id/ratings", h.GetBookRatings)
	api.GET("/books/:id/comments", h.ListBookComments)

	priv := api.Group("", md.JwtAuthentication(h.jwtKey))
	priv.GET("/auth/me", h.Me)
	priv.GET("/auth/users", h.ListUsers, md.AdminOnly)

	priv.POST("/books", h.CreateBook, md.AdminOnly)
	priv.PUT("/books/:id", h.UpdateBook, md.AdminOnly)
	priv.DELETE("/books/:id", h.DeleteBook, md.AdminOnly)

	priv.POST("/loans", h.IssueBook)
	priv.POST("/loans/:loanUid/return", h.ReturnBook)
	priv.GET("/loans", h.ListLoans)

	priv.POST("/requests", h.CreateRequest)
	priv.GET("/requests/my", h.ListMyRequests)
	priv.GET("/requests", h.ListAllRequests, md.AdminOnly)
	priv.GET("/requests/stats", h.RequestStats, md.AdminOnly)
	priv.PUT("/requests/:requestUid/respond", h.RespondRequest, md.AdminOnly)

	priv.POST("/issues", h.CreateIssue)
	priv.GET("/issues/my", h.ListMyIssues)
	priv.GET("/issues", h.ListAllIssues, md.AdminOnly)
	priv.GET("/issues/stats", h.IssueStats, md.AdminOnly)
	priv.PUT("/issues/:issueUid/respond", h.RespondIssue, md.AdminOnly)

	priv.POST("/ratings", h.RateBook)
	priv.GET("/books/:id/ratings/me", h.GetMyRating)

	priv.POST("/comments", h.AddComment)
	priv.PUT("/comments/:id", h.UpdateComment)
	priv.DELETE("/comments/:id", h.DeleteComment)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// httpError maps domain error kinds to transport statuses. Conflicting and
// terminal states are 409, validation 400, contention 503.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, errs.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrNotAvailable),
		errors.Is(err, errs.ErrDuplicateLoan),
		errors.Is(err, errs.ErrAlreadyReturned),
		errors.Is(err, errs.ErrDuplicatePending),
		errors.Is(err, errs.ErrAlreadyResolved),
		errors.Is(err, errs.ErrIssueClosed),
		errors.Is(err, errs.ErrDuplicateUser),
		errors.Is(err, errs.ErrBookInUse):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrOutOfRange), errs.IsInvalidInput(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
