package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/repository"
)

type BookService struct {
	log  *zap.Logger
	repo repository.BookRepository
}

func NewBookService(repo repository.BookRepository, log *zap.Logger) *BookService {
	return &BookService{
		log:  log,
		repo: repo,
	}
}

func (s *BookService) List(ctx context.Context, search, author string) ([]model.Book, error) {
	return s.repo.ListBooks(ctx, search, author)
}

func (s *BookService) Get(ctx context.Context, id int) (model.Book, error) {
	return s.repo.GetBook(ctx, id)
}

func (s *BookService) Create(ctx context.Context, req model.UpsertBookRequest) (model.Book, error) {
	if err := normalizeBook(&req); err != nil {
		return model.Book{}, err
	}
	return s.repo.CreateBook(ctx, req)
}

func (s *BookService) Update(ctx context.Context, id int, req model.UpsertBookRequest) (model.Book, error) {
	if err := normalizeBook(&req); err != nil {
		return model.Book{}, err
	}
	return s.repo.UpdateBook(ctx, id, req)
}

func (s *BookService) Delete(ctx context.Context, id int) error {
	return s.repo.DeleteBook(ctx, id)
}

func normalizeBook(req *model.UpsertBookRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)
	if req.Language == "" {
		req.Language = "English"
	}

	var violations []string
	if req.Title == "" {
		violations = append(violations, "title is required")
	}
	if req.Author == "" {
		violations = append(violations, "author is required")
	}
	if req.AvailableCopies < 0 {
		violations = append(violations, "availableCopies must be >= 0")
	}
	if len(violations) > 0 {
		return errs.NewInvalidInput(violations...)
	}
	return nil
}
