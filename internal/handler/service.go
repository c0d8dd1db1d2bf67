package handler

import (
	"context"

	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/pkg/auth"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go -package=service_mocks

type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (model.User, error)
	RequestOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) (model.AuthResponse, error)
	Me(ctx context.Context, p auth.Principal) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type BookService interface {
	List(ctx context.Context, search, author string) ([]model.Book, error)
	Get(ctx context.Context, id int) (model.Book, error)
	Create(ctx context.Context, req model.UpsertBookRequest) (model.Book, error)
	Update(ctx context.Context, id int, req model.UpsertBookRequest) (model.Book, error)
	Delete(ctx context.Context, id int) error
}

type LoanService interface {
	Issue(ctx context.Context, p auth.Principal, bookID int) (model.Loan, error)
	Return(ctx context.Context, p auth.Principal, loanUID string) (model.Loan, error)
	ListLoans(ctx context.Context, p auth.Principal, all bool) ([]model.LoanDetail, error)
}

type RequestService interface {
	Submit(ctx context.Context, p auth.Principal, bookID int, message string) (model.BookRequest, error)
	Respond(ctx context.Context, p auth.Principal, requestUID string, target model.RequestStatus, response *string) (model.BookRequest, error)
	ListMine(ctx context.Context, p auth.Principal) ([]model.BookRequestDetail, error)
	ListAll(ctx context.Context, status model.RequestStatus) ([]model.BookRequestDetail, error)
	Stats(ctx context.Context) (model.RequestStats, error)
}

type IssueService interface {
	Submit(ctx context.Context, p auth.Principal, req model.CreateIssueRequest) (model.IssueReport, error)
	Respond(ctx context.Context, p auth.Principal, issueUID string, target model.IssueStatus, response *string) (model.IssueReport, error)
	ListMine(ctx context.Context, p auth.Principal) ([]model.IssueReportDetail, error)
	ListAll(ctx context.Context, status model.IssueStatus, category model.IssueCategory) ([]model.IssueReportDetail, error)
	Stats(ctx context.Context) (model.IssueStats, error)
}

type RatingService interface {
	Rate(ctx context.Context, p auth.Principal, bookID, rating int) error
	GetForBook(ctx context.Context, bookID int) (model.BookRatings, error)
	GetMine(ctx context.Context, p auth.Principal, bookID int) (*model.Rating, error)
}

type CommentService interface {
	Add(ctx context.Context, p auth.Principal, bookID int, comment string) (model.CommentDetail, error)
	ListForBook(ctx context.Context, bookID int) ([]model.CommentDetail, error)
	Update(ctx context.Context, p auth.Principal, id int, comment string) (model.Comment, error)
	Delete(ctx context.Context, p auth.Principal, id int) error
}
