package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/repository"
	"github.com/bookhive/library-service/pkg/auth"
)

type LoanService struct {
	log  *zap.Logger
	repo repository.LoanRepository
}

func NewLoanService(repo repository.LoanRepository, log *zap.Logger) *LoanService {
	return &LoanService{
		log:  log,
		repo: repo,
	}
}

func (s *LoanService) Issue(ctx context.Context, p auth.Principal, bookID int) (model.Loan, error) {
	var loan model.Loan
	err := withRetry(func() error {
		var err error
		loan, err = s.repo.IssueBook(ctx, p.UserID, bookID)
		return err
	})
	if err != nil {
		return model.Loan{}, err
	}
	s.log.Info("book issued",
		zap.Int("userId", p.UserID),
		zap.Int("bookId", bookID),
		zap.String("loanUid", loan.LoanUID))
	return loan, nil
}

func (s *LoanService) Return(ctx context.Context, p auth.Principal, loanUID string) (model.Loan, error) {
	var loan model.Loan
	err := withRetry(func() error {
		var err error
		loan, err = s.repo.ReturnBook(ctx, p.UserID, loanUID)
		return err
	})
	if err != nil {
		return model.Loan{}, err
	}
	s.log.Info("book returned",
		zap.Int("userId", p.UserID),
		zap.String("loanUid", loanUID))
	return loan, nil
}

// ListLoans returns the caller's loans, or every loan when all is set.
// The "all" scope is an admin capability.
func (s *LoanService) ListLoans(ctx context.Context, p auth.Principal, all bool) ([]model.LoanDetail, error) {
	if all {
		if !p.IsAdmin() {
			return nil, errs.ErrForbidden
		}
		return s.repo.ListAllLoans(ctx)
	}
	return s.repo.ListLoans(ctx, p.UserID)
}
