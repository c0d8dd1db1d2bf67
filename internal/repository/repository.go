package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/model"
)

type Repository interface {
	UserRepository
	BookRepository
	LoanRepository
	RequestRepository
	IssueRepository
	RatingRepository
	CommentRepository
}

type UserRepository interface {
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByID(ctx context.Context, id int) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	ListAdmins(ctx context.Context) ([]model.User, error)
}

type BookRepository interface {
	ListBooks(ctx context.Context, search, author string) ([]model.Book, error)
	GetBook(ctx context.Context, id int) (model.Book, error)
	CreateBook(ctx context.Context, req model.UpsertBookRequest) (model.Book, error)
	UpdateBook(ctx context.Context, id int, req model.UpsertBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, id int) error
}

type LoanRepository interface {
	IssueBook(ctx context.Context, userID, bookID int) (model.Loan, error)
	ReturnBook(ctx context.Context, userID int, loanUID string) (model.Loan, error)
	ListLoans(ctx context.Context, userID int) ([]model.LoanDetail, error)
	ListAllLoans(ctx context.Context) ([]model.LoanDetail, error)
}

type RequestRepository interface {
	CreateRequest(ctx context.Context, userID, bookID int, message string) (model.BookRequest, error)
	RespondRequest(ctx context.Context, adminID int, requestUID string, status model.RequestStatus, response *string) (model.BookRequest, error)
	GetRequestDetail(ctx context.Context, requestUID string) (model.BookRequestDetail, error)
	ListMyRequests(ctx context.Context, userID int) ([]model.BookRequestDetail, error)
	ListAllRequests(ctx context.Context, status model.RequestStatus) ([]model.BookRequestDetail, error)
	RequestStats(ctx context.Context) (model.RequestStats, error)
}

type IssueRepository interface {
	CreateIssue(ctx context.Context, userID int, req model.CreateIssueRequest) (model.IssueReport, error)
	RespondIssue(ctx context.Context, adminID int, issueUID string, status model.IssueStatus, response *string) (model.IssueReport, error)
	GetIssueDetail(ctx context.Context, issueUID string) (model.IssueReportDetail, error)
	ListMyIssues(ctx context.Context, userID int) ([]model.IssueReportDetail, error)
	ListAllIssues(ctx context.Context, status model.IssueStatus, category model.IssueCategory) ([]model.IssueReportDetail, error)
	IssueStats(ctx context.Context) (model.IssueStats, error)
}

type RatingRepository interface {
	UpsertRating(ctx context.Context, userID, bookID, rating int) error
	GetUserRating(ctx context.Context, userID, bookID int) (model.Rating, error)
	GetBookRatings(ctx context.Context, bookID int) (model.BookRatings, error)
}

type CommentRepository interface {
	AddComment(ctx context.Context, userID, bookID int, comment string) (model.CommentDetail, error)
	GetComment(ctx context.Context, id int) (model.Comment, error)
	ListBookComments(ctx context.Context, bookID int) ([]model.CommentDetail, error)
	UpdateComment(ctx context.Context, id int, comment string) (model.Comment, error)
	DeleteComment(ctx context.Context, id int) error
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	usersTableName    = `users`
	booksTableName    = `books`
	loansTableName    = `loans`
	requestsTableName = `book_requests`
	issuesTableName   = `issue_reports`
	ratingsTableName  = `book_ratings`
	commentsTableName = `book_comments`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// withTx runs fn inside a transaction; rollback on any error keeps the
// decrement/insert pairs all-or-nothing.
func (r *repository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}

// IsTransient reports store contention worth a single retry.
func IsTransient(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
}
