package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/model"
)

func (r *repository) AddComment(ctx context.Context, userID, bookID int, comment string) (model.CommentDetail, error) {
	const q = `
	with ins as (
	    insert into book_comments (user_id, book_id, comment)
	    values ($1, $2, $3)
	    returning id, user_id, book_id, comment, created_at, updated_at
	)
	select ins.id, ins.user_id, ins.book_id, ins.comment, ins.created_at, ins.updated_at,
	       u.name as user_name, u.email as user_email
	from ins join users u on u.id = ins.user_id`

	var detail model.CommentDetail
	if err := r.db.GetContext(ctx, &detail, q, userID, bookID, comment); err != nil {
		if isForeignKeyViolation(err) {
			return model.CommentDetail{}, errs.ErrNotFound
		}
		return model.CommentDetail{}, err
	}
	return detail, nil
}

func (r *repository) GetComment(ctx context.Context, id int) (model.Comment, error) {
	q, args, err := qb.Select("id", "user_id", "book_id", "comment", "created_at", "updated_at").
		From(commentsTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Comment{}, err
	}

	var comment model.Comment
	if err := r.db.GetContext(ctx, &comment, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Comment{}, errs.ErrNotFound
		}
		return model.Comment{}, err
	}
	return comment, nil
}

func (r *repository) ListBookComments(ctx context.Context, bookID int) ([]model.CommentDetail, error) {
	q, args, err := qb.Select("bc.id", "bc.user_id", "bc.book_id", "bc.comment", "bc.created_at", "bc.updated_at",
		"u.name as user_name", "u.email as user_email").
		From(commentsTableName + " bc").
		Join(usersTableName + " u on u.id = bc.user_id").
		Where(sq.Eq{"bc.book_id": bookID}).
		OrderBy("bc.created_at desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.CommentDetail, 0)
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) UpdateComment(ctx context.Context, id int, comment string) (model.Comment, error) {
	const q = `
	update book_comments set comment = $2, updated_at = now()
	where id = $1
	returning id, user_id, book_id, comment, created_at, updated_at`

	var updated model.Comment
	if err := r.db.GetContext(ctx, &updated, q, id, comment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Comment{}, errs.ErrNotFound
		}
		return model.Comment{}, err
	}
	return updated, nil
}

func (r *repository) DeleteComment(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `delete from book_comments where id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
