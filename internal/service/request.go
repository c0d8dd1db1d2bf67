package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/notify"
	"github.com/bookhive/library-service/internal/repository"
	"github.com/bookhive/library-service/pkg/auth"
)

type RequestService struct {
	log        *zap.Logger
	repo       repository.RequestRepository
	books      repository.BookRepository
	users      repository.UserRepository
	dispatcher notify.Dispatcher
}

func NewRequestService(
	repo repository.RequestRepository,
	books repository.BookRepository,
	users repository.UserRepository,
	dispatcher notify.Dispatcher,
	log *zap.Logger,
) *RequestService {
	return &RequestService{
		log:        log,
		repo:       repo,
		books:      books,
		users:      users,
		dispatcher: dispatcher,
	}
}

// Submit creates a pending request and notifies every admin. At most one
// pending request per (user, book) exists at a time.
func (s *RequestService) Submit(ctx context.Context, p auth.Principal, bookID int, message string) (model.BookRequest, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return model.BookRequest{}, errs.NewInvalidInput("message is required")
	}

	book, err := s.books.GetBook(ctx, bookID)
	if err != nil {
		return model.BookRequest{}, err
	}

	var req model.BookRequest
	if err := withRetry(func() error {
		var err error
		req, err = s.repo.CreateRequest(ctx, p.UserID, bookID, message)
		return err
	}); err != nil {
		return model.BookRequest{}, err
	}

	admins, err := s.users.ListAdmins(ctx)
	if err != nil {
		s.log.Warn("list admins for notification", zap.Error(err))
		return req, nil
	}
	dispatch(ctx, s.dispatcher, s.log, notify.Event{
		Kind:       notify.RequestCreated,
		Recipients: adminEmails(admins),
		UserName:   p.Name,
		UserEmail:  p.Email,
		BookTitle:  book.Title,
		BookAuthor: book.Author,
		Message:    message,
	})
	return req, nil
}

// Respond resolves a pending request with one of the terminal statuses and
// notifies the original requester.
func (s *RequestService) Respond(ctx context.Context, p auth.Principal, requestUID string, target model.RequestStatus, response *string) (model.BookRequest, error) {
	if !target.Terminal() {
		return model.BookRequest{}, errs.NewInvalidInput("status must be approved, rejected or fulfilled")
	}

	var req model.BookRequest
	if err := withRetry(func() error {
		var err error
		req, err = s.repo.RespondRequest(ctx, p.UserID, requestUID, target, response)
		return err
	}); err != nil {
		return model.BookRequest{}, err
	}

	detail, err := s.repo.GetRequestDetail(ctx, requestUID)
	if err != nil {
		s.log.Warn("request detail for notification", zap.Error(err))
		return req, nil
	}
	event := notify.Event{
		Kind:       notify.RequestResolved,
		BookTitle:  detail.BookTitle,
		BookAuthor: detail.BookAuthor,
		Status:     string(target),
	}
	if detail.UserEmail != nil {
		event.Recipients = []string{*detail.UserEmail}
	}
	if detail.UserName != nil {
		event.UserName = *detail.UserName
	}
	if response != nil {
		event.AdminResponse = *response
	}
	dispatch(ctx, s.dispatcher, s.log, event)
	return req, nil
}

func (s *RequestService) ListMine(ctx context.Context, p auth.Principal) ([]model.BookRequestDetail, error) {
	return s.repo.ListMyRequests(ctx, p.UserID)
}

func (s *RequestService) ListAll(ctx context.Context, status model.RequestStatus) ([]model.BookRequestDetail, error) {
	switch status {
	case "", model.RequestPending, model.RequestApproved, model.RequestRejected, model.RequestFulfilled:
	default:
		return nil, errs.NewInvalidInput("unknown status filter")
	}
	return s.repo.ListAllRequests(ctx, status)
}

func (s *RequestService) Stats(ctx context.Context) (model.RequestStats, error) {
	return s.repo.RequestStats(ctx)
}

func adminEmails(admins []model.User) []string {
	emails := make([]string, 0, len(admins))
	for _, a := range admins {
		emails = append(emails, a.Email)
	}
	return emails
}
