package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/model"
)

// UpsertRating stores at most one row per (user, book) and then re-derives
// the book aggregate from the full rating set. Recomputing instead of
// adjusting a running average keeps edits from drifting the mean.
func (r *repository) UpsertRating(ctx context.Context, userID, bookID, rating int) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		const upsertQ = `
	insert into book_ratings (user_id, book_id, rating)
	values ($1, $2, $3)
	on conflict (user_id, book_id) do update set rating = excluded.rating`
		if _, err := tx.ExecContext(ctx, upsertQ, userID, bookID, rating); err != nil {
			if isForeignKeyViolation(err) {
				return errs.ErrNotFound
			}
			return err
		}

		const aggQ = `
	update books b
	set average_rating = coalesce(agg.avg_rating, 0),
	    rating_count   = coalesce(agg.cnt, 0)
	from (
	    select round(avg(rating)::numeric, 2) as avg_rating, count(*) as cnt
	    from book_ratings
	    where book_id = $1
	) agg
	where b.id = $1`
		_, err := tx.ExecContext(ctx, aggQ, bookID)
		return err
	})
}

func (r *repository) GetUserRating(ctx context.Context, userID, bookID int) (model.Rating, error) {
	q, args, err := qb.Select("user_id", "book_id", "rating", "created_at").
		From(ratingsTableName).
		Where(sq.Eq{"user_id": userID, "book_id": bookID}).
		ToSql()
	if err != nil {
		return model.Rating{}, err
	}

	var rating model.Rating
	if err := r.db.GetContext(ctx, &rating, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Rating{}, errs.ErrNotFound
		}
		return model.Rating{}, err
	}
	return rating, nil
}

func (r *repository) GetBookRatings(ctx context.Context, bookID int) (model.BookRatings, error) {
	q, args, err := qb.Select("br.user_id", "br.book_id", "br.rating", "br.created_at", "u.name as user_name").
		From(ratingsTableName + " br").
		Join(usersTableName + " u on u.id = br.user_id").
		Where(sq.Eq{"br.book_id": bookID}).
		OrderBy("br.created_at desc").
		ToSql()
	if err != nil {
		return model.BookRatings{}, err
	}

	ratings := make([]model.RatingDetail, 0)
	if err := r.db.SelectContext(ctx, &ratings, q, args...); err != nil {
		return model.BookRatings{}, err
	}

	var agg struct {
		AverageRating float64 `db:"average_rating"`
		RatingCount   int     `db:"rating_count"`
	}
	if err := r.db.GetContext(ctx, &agg,
		`select average_rating, rating_count from books where id = $1`, bookID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BookRatings{}, errs.ErrNotFound
		}
		return model.BookRatings{}, err
	}

	return model.BookRatings{
		Ratings:       ratings,
		AverageRating: agg.AverageRating,
		RatingCount:   agg.RatingCount,
	}, nil
}
