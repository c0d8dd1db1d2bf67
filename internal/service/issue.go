package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/notify"
	"github.com/bookhive/library-service/internal/repository"
	"github.com/bookhive/library-service/pkg/auth"
)

const (
	subjectMaxLen  = 200
	messageMinLen  = 10
	messageMaxLen  = 1000
	responseMaxLen = 1000
)

type IssueService struct {
	log        *zap.Logger
	repo       repository.IssueRepository
	users      repository.UserRepository
	dispatcher notify.Dispatcher
}

func NewIssueService(
	repo repository.IssueRepository,
	users repository.UserRepository,
	dispatcher notify.Dispatcher,
	log *zap.Logger,
) *IssueService {
	return &IssueService{
		log:        log,
		repo:       repo,
		users:      users,
		dispatcher: dispatcher,
	}
}

// Submit validates every field constraint before any write and reports all
// violations together.
func (s *IssueService) Submit(ctx context.Context, p auth.Principal, req model.CreateIssueRequest) (model.IssueReport, error) {
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	if req.Category == "" {
		req.Category = model.CategoryGeneral
	}
	if req.Urgency == "" {
		req.Urgency = model.UrgencyNormal
	}

	var violations []string
	if n := utf8.RuneCountInString(req.Subject); n < 1 || n > subjectMaxLen {
		violations = append(violations, fmt.Sprintf("subject must be 1-%d characters", subjectMaxLen))
	}
	if n := utf8.RuneCountInString(req.Message); n < messageMinLen || n > messageMaxLen {
		violations = append(violations, fmt.Sprintf("message must be %d-%d characters", messageMinLen, messageMaxLen))
	}
	if !req.Category.Known() {
		violations = append(violations, "unknown category")
	}
	if !req.Urgency.Known() {
		violations = append(violations, "unknown urgency")
	}
	if len(violations) > 0 {
		return model.IssueReport{}, errs.NewInvalidInput(violations...)
	}

	var issue model.IssueReport
	if err := withRetry(func() error {
		var err error
		issue, err = s.repo.CreateIssue(ctx, p.UserID, req)
		return err
	}); err != nil {
		return model.IssueReport{}, err
	}

	admins, err := s.users.ListAdmins(ctx)
	if err != nil {
		s.log.Warn("list admins for notification", zap.Error(err))
		return issue, nil
	}
	dispatch(ctx, s.dispatcher, s.log, notify.Event{
		Kind:       notify.IssueCreated,
		Recipients: adminEmails(admins),
		UserName:   p.Name,
		UserEmail:  p.Email,
		Subject:    req.Subject,
		Message:    req.Message,
		Category:   req.Category,
		Urgency:    req.Urgency,
	})
	return issue, nil
}

// Respond applies a status transition; closed is absorbing.
func (s *IssueService) Respond(ctx context.Context, p auth.Principal, issueUID string, target model.IssueStatus, response *string) (model.IssueReport, error) {
	var violations []string
	if !target.Known() {
		violations = append(violations, "unknown status")
	}
	if response != nil && utf8.RuneCountInString(*response) > responseMaxLen {
		violations = append(violations, fmt.Sprintf("response must be at most %d characters", responseMaxLen))
	}
	if len(violations) > 0 {
		return model.IssueReport{}, errs.NewInvalidInput(violations...)
	}

	var issue model.IssueReport
	if err := withRetry(func() error {
		var err error
		issue, err = s.repo.RespondIssue(ctx, p.UserID, issueUID, target, response)
		return err
	}); err != nil {
		return model.IssueReport{}, err
	}

	detail, err := s.repo.GetIssueDetail(ctx, issueUID)
	if err != nil {
		s.log.Warn("issue detail for notification", zap.Error(err))
		return issue, nil
	}
	event := notify.Event{
		Kind:    notify.IssueResolved,
		Subject: detail.Subject,
		Status:  string(target),
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
	return issue, nil
}

func (s *IssueService) ListMine(ctx context.Context, p auth.Principal) ([]model.IssueReportDetail, error) {
	return s.repo.ListMyIssues(ctx, p.UserID)
}

func (s *IssueService) ListAll(ctx context.Context, status model.IssueStatus, category model.IssueCategory) ([]model.IssueReportDetail, error) {
	if status != "" && !status.Known() {
		return nil, errs.NewInvalidInput("unknown status filter")
	}
	if category != "" && !category.Known() {
		return nil, errs.NewInvalidInput("unknown category filter")
	}
	return s.repo.ListAllIssues(ctx, status, category)
}

func (s *IssueService) Stats(ctx context.Context) (model.IssueStats, error) {
	return s.repo.IssueStats(ctx)
}
