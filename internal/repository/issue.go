package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/model"
)

const issueColumns = `li.id, issue_uid, li.user_id, li.subject, li.message, li.category, li.urgency,
	li.status, li.admin_response, li.responded_by, li.responded_at, li.created_at`

func (r *repository) CreateIssue(ctx context.Context, userID int, req model.CreateIssueRequest) (model.IssueReport, error) {
	const q = `
	insert into issue_reports (issue_uid, user_id, subject, message, category, urgency)
	values ($1, $2, $3, $4, $5, $6)
	returning id, issue_uid, user_id, subject, message, category, urgency, status,
	          admin_response, responded_by, responded_at, created_at`

	var issue model.IssueReport
	if err := r.db.GetContext(ctx, &issue, q,
		uuid.NewString(), userID, req.Subject, req.Message, req.Category, req.Urgency); err != nil {
		r.log.Error("CreateIssue", zap.Error(err))
		return model.IssueReport{}, err
	}
	return issue, nil
}

// RespondIssue is a compare-and-set with the closed state absorbing: once an
// issue is closed no transition is applied, including closed -> closed.
func (r *repository) RespondIssue(ctx context.Context, adminID int, issueUID string, status model.IssueStatus, response *string) (model.IssueReport, error) {
	const q = `
	update issue_reports
	set status = $2, admin_response = $3, responded_by = $4, responded_at = now()
	where issue_uid = $1 and status <> 'closed'
	returning id, issue_uid, user_id, subject, message, category, urgency, status,
	          admin_response, responded_by, responded_at, created_at`

	var issue model.IssueReport
	if err := r.db.GetContext(ctx, &issue, q, issueUID, status, response, adminID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			var exists bool
			if err := r.db.QueryRowContext(ctx,
				`select exists(select 1 from issue_reports where issue_uid = $1)`, issueUID).Scan(&exists); err != nil {
				return model.IssueReport{}, err
			}
			if !exists {
				return model.IssueReport{}, errs.ErrNotFound
			}
			return model.IssueReport{}, errs.ErrIssueClosed
		}
		return model.IssueReport{}, err
	}
	return issue, nil
}

func (r *repository) issueDetailQuery() sq.SelectBuilder {
	return qb.Select(issueColumns,
		"u.name as user_name", "u.email as user_email", "a.name as admin_name").
		From(issuesTableName + " li").
		Join(usersTableName + " u on u.id = li.user_id").
		LeftJoin(usersTableName + " a on a.id = li.responded_by")
}

func (r *repository) GetIssueDetail(ctx context.Context, issueUID string) (model.IssueReportDetail, error) {
	q, args, err := r.issueDetailQuery().
		Where(sq.Eq{"issue_uid": issueUID}).
		ToSql()
	if err != nil {
		return model.IssueReportDetail{}, err
	}

	var issue model.IssueReportDetail
	if err := r.db.GetContext(ctx, &issue, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.IssueReportDetail{}, errs.ErrNotFound
		}
		return model.IssueReportDetail{}, err
	}
	return issue, nil
}

func (r *repository) ListMyIssues(ctx context.Context, userID int) ([]model.IssueReportDetail, error) {
	q, args, err := r.issueDetailQuery().
		Where(sq.Eq{"li.user_id": userID}).
		OrderBy("li.created_at desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.IssueReportDetail, 0)
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

// ListAllIssues orders by urgency rank then recency; the triage order is a
// product decision, keep it stable.
func (r *repository) ListAllIssues(ctx context.Context, status model.IssueStatus, category model.IssueCategory) ([]model.IssueReportDetail, error) {
	b := r.issueDetailQuery()
	if status != "" {
		b = b.Where(sq.Eq{"li.status": status})
	}
	if category != "" {
		b = b.Where(sq.Eq{"li.category": category})
	}
	q, args, err := b.
		OrderBy(`array_position(array['urgent','high','normal','low']::varchar[], li.urgency)`, "li.created_at desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.IssueReportDetail, 0)
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) IssueStats(ctx context.Context) (model.IssueStats, error) {
	const q = `
	select count(*) as total,
	       count(*) filter (where status = 'open')        as open,
	       count(*) filter (where status = 'in_progress') as in_progress,
	       count(*) filter (where status = 'resolved')    as resolved,
	       count(*) filter (where status = 'closed')      as closed
	from issue_reports`

	var stats model.IssueStats
	if err := r.db.GetContext(ctx, &stats, q); err != nil {
		return model.IssueStats{}, err
	}
	return stats, nil
}
