package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/repository"
	"github.com/bookhive/library-service/pkg/auth"
)

type RatingService struct {
	log   *zap.Logger
	repo  repository.RatingRepository
	books repository.BookRepository
}

func NewRatingService(repo repository.RatingRepository, books repository.BookRepository, log *zap.Logger) *RatingService {
	return &RatingService{
		log:   log,
		repo:  repo,
		books: books,
	}
}

// Rate upserts the caller's rating; a resubmission overwrites, it never adds
// a second row.
func (s *RatingService) Rate(ctx context.Context, p auth.Principal, bookID, rating int) error {
	if rating < 1 || rating > 5 {
		return errs.ErrOutOfRange
	}
	if _, err := s.books.GetBook(ctx, bookID); err != nil {
		return err
	}
	return withRetry(func() error {
		return s.repo.UpsertRating(ctx, p.UserID, bookID, rating)
	})
}

func (s *RatingService) GetForBook(ctx context.Context, bookID int) (model.BookRatings, error) {
	return s.repo.GetBookRatings(ctx, bookID)
}

// GetMine returns nil when the caller has not rated the book.
func (s *RatingService) GetMine(ctx context.Context, p auth.Principal, bookID int) (*model.Rating, error) {
	rating, err := s.repo.GetUserRating(ctx, p.UserID, bookID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rating, nil
}
