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

const requestColumns = `br.id, request_uid, br.user_id, br.book_id, br.message, br.status,
	br.admin_response, br.responded_by, br.responded_at, br.created_at`

func (r *repository) CreateRequest(ctx context.Context, userID, bookID int, message string) (model.BookRequest, error) {
	const q = `
	insert into book_requests (request_uid, user_id, book_id, message)
	values ($1, $2, $3, $4)
	returning id, request_uid, user_id, book_id, message, status, admin_response, responded_by, responded_at, created_at`

	var req model.BookRequest
	if err := r.db.GetContext(ctx, &req, q, uuid.NewString(), userID, bookID, message); err != nil {
		if isUniqueViolation(err) {
			return model.BookRequest{}, errs.ErrDuplicatePending
		}
		if isForeignKeyViolation(err) {
			return model.BookRequest{}, errs.ErrNotFound
		}
		r.log.Error("CreateRequest", zap.Error(err))
		return model.BookRequest{}, err
	}
	return req, nil
}

// RespondRequest is a compare-and-set on status: only a pending request can
// be resolved, and only once, even under concurrent admin responses.
func (r *repository) RespondRequest(ctx context.Context, adminID int, requestUID string, status model.RequestStatus, response *string) (model.BookRequest, error) {
	const q = `
	update book_requests
	set status = $2, admin_response = $3, responded_by = $4, responded_at = now()
	where request_uid = $1 and status = 'pending'
	returning id, request_uid, user_id, book_id, message, status, admin_response, responded_by, responded_at, created_at`

	var req model.BookRequest
	if err := r.db.GetContext(ctx, &req, q, requestUID, status, response, adminID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			var exists bool
			if err := r.db.QueryRowContext(ctx,
				`select exists(select 1 from book_requests where request_uid = $1)`, requestUID).Scan(&exists); err != nil {
				return model.BookRequest{}, err
			}
			if !exists {
				return model.BookRequest{}, errs.ErrNotFound
			}
			return model.BookRequest{}, errs.ErrAlreadyResolved
		}
		return model.BookRequest{}, err
	}
	return req, nil
}

func (r *repository) requestDetailQuery() sq.SelectBuilder {
	return qb.Select(requestColumns,
		"b.title as book_title", "b.author as book_author", "b.image_url as book_image",
		"u.name as user_name", "u.email as user_email", "a.name as admin_name").
		From(requestsTableName + " br").
		Join(booksTableName + " b on b.id = br.book_id").
		Join(usersTableName + " u on u.id = br.user_id").
		LeftJoin(usersTableName + " a on a.id = br.responded_by")
}

func (r *repository) GetRequestDetail(ctx context.Context, requestUID string) (model.BookRequestDetail, error) {
	q, args, err := r.requestDetailQuery().
		Where(sq.Eq{"request_uid": requestUID}).
		ToSql()
	if err != nil {
		return model.BookRequestDetail{}, err
	}

	var req model.BookRequestDetail
	if err := r.db.GetContext(ctx, &req, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BookRequestDetail{}, errs.ErrNotFound
		}
		return model.BookRequestDetail{}, err
	}
	return req, nil
}

func (r *repository) ListMyRequests(ctx context.Context, userID int) ([]model.BookRequestDetail, error) {
	q, args, err := r.requestDetailQuery().
		Where(sq.Eq{"br.user_id": userID}).
		OrderBy("br.created_at desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.BookRequestDetail, 0)
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListAllRequests(ctx context.Context, status model.RequestStatus) ([]model.BookRequestDetail, error) {
	b := r.requestDetailQuery()
	if status != "" {
		b = b.Where(sq.Eq{"br.status": status})
	}
	q, args, err := b.OrderBy("br.created_at desc").ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.BookRequestDetail, 0)
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) RequestStats(ctx context.Context) (model.RequestStats, error) {
	const q = `
	select count(*) as total,
	       count(*) filter (where status = 'pending')   as pending,
	       count(*) filter (where status = 'approved')  as approved,
	       count(*) filter (where status = 'rejected')  as rejected,
	       count(*) filter (where status = 'fulfilled') as fulfilled
	from book_requests`

	var stats model.RequestStats
	if err := r.db.GetContext(ctx, &stats, q); err != nil {
		return model.RequestStats{}, err
	}
	return stats, nil
}
