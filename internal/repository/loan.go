package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/model"
)

// IssueBook decrements availability and records the loan in one transaction.
// The conditional update is the availability check: zero rows means no copy
// could be claimed, regardless of interleaving.
func (r *repository) IssueBook(ctx context.Context, userID, bookID int) (model.Loan, error) {
	var loan model.Loan
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		const decQ = `
	update books set available_copies = available_copies - 1
	where id = $1 and available_copies > 0`
		res, err := tx.ExecContext(ctx, decQ, bookID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			var exists bool
			if err := tx.QueryRowContext(ctx,
				`select exists(select 1 from books where id = $1)`, bookID).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return errs.ErrNotFound
			}
			return errs.ErrNotAvailable
		}

		const insQ = `
	insert into loans (loan_uid, user_id, book_id)
	values ($1, $2, $3)
	returning id, loan_uid, user_id, book_id, issued_at, returned_at`
		if err := tx.GetContext(ctx, &loan, insQ, uuid.NewString(), userID, bookID); err != nil {
			if isUniqueViolation(err) {
				return errs.ErrDuplicateLoan
			}
			r.log.Error("IssueBook insert", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return model.Loan{}, err
	}
	return loan, nil
}

// ReturnBook sets returned_at and gives the copy back in one transaction.
// returned_at is written at most once; the conditional update is the
// AlreadyReturned guard.
func (r *repository) ReturnBook(ctx context.Context, userID int, loanUID string) (model.Loan, error) {
	var loan model.Loan
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		const retQ = `
	update loans set returned_at = now()
	where loan_uid = $1 and user_id = $2 and returned_at is null
	returning id, loan_uid, user_id, book_id, issued_at, returned_at`
		if err := tx.GetContext(ctx, &loan, retQ, loanUID, userID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				var exists bool
				if err := tx.QueryRowContext(ctx,
					`select exists(select 1 from loans where loan_uid = $1 and user_id = $2)`,
					loanUID, userID).Scan(&exists); err != nil {
					return err
				}
				if !exists {
					return errs.ErrNotFound
				}
				return errs.ErrAlreadyReturned
			}
			return err
		}

		_, err := tx.ExecContext(ctx,
			`update books set available_copies = available_copies + 1 where id = $1`, loan.BookID)
		return err
	})
	if err != nil {
		return model.Loan{}, err
	}
	return loan, nil
}

func (r *repository) ListLoans(ctx context.Context, userID int) ([]model.LoanDetail, error) {
	q, args, err := qb.Select("l.id", "loan_uid", "user_id", "book_id", "issued_at", "returned_at",
		"b.title as book_title", "b.author as book_author", "b.image_url as book_image").
		From(loansTableName + " l").
		Join(booksTableName + " b on b.id = l.book_id").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("issued_at desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.LoanDetail, 0)
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListAllLoans(ctx context.Context) ([]model.LoanDetail, error) {
	q, args, err := qb.Select("l.id", "loan_uid", "user_id", "book_id", "issued_at", "returned_at",
		"b.title as book_title", "b.author as book_author", "b.image_url as book_image",
		"u.name as user_name", "u.email as user_email").
		From(loansTableName + " l").
		Join(booksTableName + " b on b.id = l.book_id").
		Join(usersTableName + " u on u.id = l.user_id").
		OrderBy("issued_at desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.LoanDetail, 0)
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}
