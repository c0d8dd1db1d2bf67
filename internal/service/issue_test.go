package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/notify"
	"github.com/bookhive/library-service/pkg/auth"
)

type fakeIssueRepo struct {
	created   model.CreateIssueRequest
	createErr error
	detail    model.IssueReportDetail
}

func (r *fakeIssueRepo) CreateIssue(_ context.Context, userID int, req model.CreateIssueRequest) (model.IssueReport, error) {
	if r.createErr != nil {
		return model.IssueReport{}, r.createErr
	}
	r.created = req
	return model.IssueReport{
		ID:       1,
		IssueUID: "7f9b9f1e-93d8-4c86-9c3c-1f2f3a4b5c6d",
		UserID:   userID,
		Subject:  req.Subject,
		Message:  req.Message,
		Category: req.Category,
		Urgency:  req.Urgency,
		Status:   model.IssueOpen,
	}, nil
}

func (r *fakeIssueRepo) RespondIssue(_ context.Context, adminID int, issueUID string, status model.IssueStatus, response *string) (model.IssueReport, error) {
	return model.IssueReport{
		IssueUID:      issueUID,
		Status:        status,
		AdminResponse: response,
		RespondedBy:   &adminID,
	}, nil
}

func (r *fakeIssueRepo) GetIssueDetail(context.Context, string) (model.IssueReportDetail, error) {
	return r.detail, nil
}

func (r *fakeIssueRepo) ListMyIssues(context.Context, int) ([]model.IssueReportDetail, error) {
	return nil, nil
}

func (r *fakeIssueRepo) ListAllIssues(context.Context, model.IssueStatus, model.IssueCategory) ([]model.IssueReportDetail, error) {
	return nil, nil
}

func (r *fakeIssueRepo) IssueStats(context.Context) (model.IssueStats, error) {
	return model.IssueStats{}, nil
}

func TestIssueService_Submit(t *testing.T) {
	t.Parallel()
	reporter := auth.Principal{UserID: 7, Name: "Alice", Email: "alice@example.com", Role: auth.RoleStudent}

	t.Run("defaults applied", func(t *testing.T) {
		repo := &fakeIssueRepo{}
		d := &fakeDispatcher{}
		svc := NewIssueService(repo, &fakeUserRepo{admins: []model.User{{Email: "bob@example.com"}}}, d, zap.NewNop())

		issue, err := svc.Submit(context.Background(), reporter, model.CreateIssueRequest{
			Subject: "  Broken chair  ",
			Message: "Chair at desk 12 is broken",
		})
		require.NoError(t, err)
		require.Equal(t, "Broken chair", issue.Subject)
		require.Equal(t, model.CategoryGeneral, repo.created.Category)
		require.Equal(t, model.UrgencyNormal, repo.created.Urgency)

		require.Len(t, d.events, 1)
		require.Equal(t, notify.IssueCreated, d.events[0].Kind)
		require.Equal(t, []string{"bob@example.com"}, d.events[0].Recipients)
	})

	t.Run("violations reported together", func(t *testing.T) {
		svc := NewIssueService(&fakeIssueRepo{}, &fakeUserRepo{}, &fakeDispatcher{}, zap.NewNop())

		_, err := svc.Submit(context.Background(), reporter, model.CreateIssueRequest{
			Subject:  "",
			Message:  "short",
			Category: "gossip",
			Urgency:  "yesterday",
		})
		require.True(t, errs.IsInvalidInput(err))
		var ii *errs.InvalidInput
		require.ErrorAs(t, err, &ii)
		require.Len(t, ii.Violations, 4)
	})

	t.Run("overlong message rejected", func(t *testing.T) {
		svc := NewIssueService(&fakeIssueRepo{}, &fakeUserRepo{}, &fakeDispatcher{}, zap.NewNop())

		_, err := svc.Submit(context.Background(), reporter, model.CreateIssueRequest{
			Subject: "Subject",
			Message: strings.Repeat("x", 1001),
		})
		require.True(t, errs.IsInvalidInput(err))
	})

	t.Run("dispatch failure does not fail the submit", func(t *testing.T) {
		d := &fakeDispatcher{err: errs.ErrUnavailable}
		svc := NewIssueService(&fakeIssueRepo{}, &fakeUserRepo{admins: []model.User{{Email: "bob@example.com"}}}, d, zap.NewNop())

		issue, err := svc.Submit(context.Background(), reporter, model.CreateIssueRequest{
			Subject: "Broken chair",
			Message: "Chair at desk 12 is broken",
		})
		require.NoError(t, err)
		require.Equal(t, model.IssueOpen, issue.Status)
	})
}

func TestIssueService_Respond(t *testing.T) {
	t.Parallel()
	responder := auth.Principal{UserID: 1, Name: "Bob", Email: "bob@example.com", Role: auth.RoleAdmin}

	t.Run("unknown status and overlong response aggregated", func(t *testing.T) {
		svc := NewIssueService(&fakeIssueRepo{}, &fakeUserRepo{}, &fakeDispatcher{}, zap.NewNop())

		tooLong := strings.Repeat("x", 1001)
		_, err := svc.Respond(context.Background(), responder, "uid", "archived", &tooLong)
		var ii *errs.InvalidInput
		require.ErrorAs(t, err, &ii)
		require.Len(t, ii.Violations, 2)
	})

	t.Run("ok notifies the reporter", func(t *testing.T) {
		email := "alice@example.com"
		name := "Alice"
		repo := &fakeIssueRepo{detail: model.IssueReportDetail{
			IssueReport: model.IssueReport{Subject: "Broken chair"},
			UserEmail:   &email,
			UserName:    &name,
		}}
		d := &fakeDispatcher{}
		svc := NewIssueService(repo, &fakeUserRepo{}, d, zap.NewNop())

		issue, err := svc.Respond(context.Background(), responder, "uid", model.IssueResolved, nil)
		require.NoError(t, err)
		require.Equal(t, model.IssueResolved, issue.Status)
		require.Len(t, d.events, 1)
		require.Equal(t, notify.IssueResolved, d.events[0].Kind)
		require.Equal(t, []string{"alice@example.com"}, d.events[0].Recipients)
	})
}
