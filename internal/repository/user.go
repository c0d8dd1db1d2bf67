package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/model"
)

var userColumns = []string{"id", "name", "email", "password_hash", "role", "created_at"}

func (r *repository) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	const q = `
	insert into users (name, email, password_hash, role)
	values ($1, $2, $3, $4)
	returning id, name, email, password_hash, role, created_at`

	var created model.User
	if err := r.db.GetContext(ctx, &created, q, user.Name, user.Email, user.PasswordHash, user.Role); err != nil {
		if isUniqueViolation(err) {
			return model.User{}, errs.ErrDuplicateUser
		}
		r.log.Error("CreateUser", zap.Error(err))
		return model.User{}, err
	}
	return created, nil
}

func (r *repository) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	q, args, err := qb.Select(userColumns...).
		From(usersTableName).
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	var user model.User
	if err := r.db.GetContext(ctx, &user, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.ErrNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *repository) GetUserByID(ctx context.Context, id int) (model.User, error) {
	q, args, err := qb.Select(userColumns...).
		From(usersTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	var user model.User
	if err := r.db.GetContext(ctx, &user, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.ErrNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *repository) ListUsers(ctx context.Context) ([]model.User, error) {
	q, args, err := qb.Select(userColumns...).
		From(usersTableName).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	users := make([]model.User, 0)
	if err := r.db.SelectContext(ctx, &users, q, args...); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repository) ListAdmins(ctx context.Context) ([]model.User, error) {
	q, args, err := qb.Select(userColumns...).
		From(usersTableName).
		Where(sq.Eq{"role": model.RoleAdmin}).
		ToSql()
	if err != nil {
		return nil, err
	}
	admins := make([]model.User, 0)
	if err := r.db.SelectContext(ctx, &admins, q, args...); err != nil {
		return nil, err
	}
	return admins, nil
}
