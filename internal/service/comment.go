package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/repository"
	"github.com/bookhive/library-service/pkg/auth"
)

type CommentService struct {
	log  *zap.Logger
	repo repository.CommentRepository
}

func NewCommentService(repo repository.CommentRepository, log *zap.Logger) *CommentService {
	return &CommentService{
		log:  log,
		repo: repo,
	}
}

func (s *CommentService) Add(ctx context.Context, p auth.Principal, bookID int, comment string) (model.CommentDetail, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return model.CommentDetail{}, errs.NewInvalidInput("comment is required")
	}
	return s.repo.AddComment(ctx, p.UserID, bookID, comment)
}

func (s *CommentService) ListForBook(ctx context.Context, bookID int) ([]model.CommentDetail, error) {
	return s.repo.ListBookComments(ctx, bookID)
}

// Update is restricted to the comment's author.
func (s *CommentService) Update(ctx context.Context, p auth.Principal, id int, comment string) (model.Comment, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return model.Comment{}, errs.NewInvalidInput("comment is required")
	}
	existing, err := s.repo.GetComment(ctx, id)
	if err != nil {
		return model.Comment{}, err
	}
	if existing.UserID != p.UserID {
		return model.Comment{}, errs.ErrForbidden
	}
	return s.repo.UpdateComment(ctx, id, comment)
}

// Delete is allowed for the author and for admins.
func (s *CommentService) Delete(ctx context.Context, p auth.Principal, id int) error {
	existing, err := s.repo.GetComment(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != p.UserID && !p.IsAdmin() {
		return errs.ErrForbidden
	}
	return s.repo.DeleteComment(ctx, id)
}
