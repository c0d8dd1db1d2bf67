package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/repository"
	"github.com/bookhive/library-service/migrations"
	"github.com/bookhive/library-service/pkg/postgres"
)

// Integration tests against a real Postgres; the guarantees under test live
// in the SQL (conditional decrement, partial unique indexes, CAS updates)
// and cannot be observed through mocks. Set DB_HOST to run them, e.g.
//
//	DB_HOST=localhost DB_NAME=library_test go test ./internal/repository/...
func newTestRepository(t *testing.T) repository.Repository {
	t.Helper()
	if os.Getenv("DB_HOST") == "" {
		t.Skip("set DB_HOST to run repository integration tests")
	}
	var cfg postgres.Config
	require.NoError(t, envconfig.Process("", &cfg))

	db, err := postgres.NewPostgresDB(context.Background(), &cfg, migrations.MigrationFiles)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := repository.NewRepository(db, zap.NewNop())
	require.NoError(t, err)
	return repo
}

func createTestUser(t *testing.T, repo repository.Repository, name string) model.User {
	t.Helper()
	user, err := repo.CreateUser(context.Background(), model.User{
		Name:         name,
		Email:        fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()),
		PasswordHash: "x",
		Role:         model.RoleStudent,
	})
	require.NoError(t, err)
	return user
}

func createTestBook(t *testing.T, repo repository.Repository, copies int) model.Book {
	t.Helper()
	book, err := repo.CreateBook(context.Background(), model.UpsertBookRequest{
		Title:           "Test Book " + uuid.NewString(),
		Author:          "Test Author",
		AvailableCopies: copies,
		Language:        "English",
	})
	require.NoError(t, err)
	return book
}

// activeLoans counts loans of the book that have not been returned.
func activeLoans(t *testing.T, repo repository.Repository, bookID int) int {
	t.Helper()
	all, err := repo.ListAllLoans(context.Background())
	require.NoError(t, err)
	n := 0
	for _, l := range all {
		if l.BookID == bookID && l.ReturnedAt == nil {
			n++
		}
	}
	return n
}

func TestIssueBook_ConcurrentNeverOverdrafts(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	const copies = 3
	book := createTestBook(t, repo, copies)

	users := make([]model.User, copies+1)
	for i := range users {
		users[i] = createTestUser(t, repo, fmt.Sprintf("borrower%d", i))
	}

	errc := make([]error, len(users))
	var wg sync.WaitGroup
	for i, u := range users {
		wg.Add(1)
		go func(i, userID int) {
			defer wg.Done()
			_, errc[i] = repo.IssueBook(ctx, userID, book.ID)
		}(i, u.ID)
	}
	wg.Wait()

	issued, refused := 0, 0
	for _, err := range errc {
		switch {
		case err == nil:
			issued++
		case errors.Is(err, errs.ErrNotAvailable):
			refused++
		default:
			t.Fatalf("unexpected issue error: %v", err)
		}
	}
	require.Equal(t, copies, issued)
	require.Equal(t, 1, refused)

	// conservation: every copy is either on the shelf or on loan
	got, err := repo.GetBook(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.AvailableCopies)
	require.Equal(t, copies, activeLoans(t, repo, book.ID))
}

func TestReturnBook_SecondReturnRejected(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	book := createTestBook(t, repo, 1)
	user := createTestUser(t, repo, "returner")

	loan, err := repo.IssueBook(ctx, user.ID, book.ID)
	require.NoError(t, err)

	returned, err := repo.ReturnBook(ctx, user.ID, loan.LoanUID)
	require.NoError(t, err)
	require.NotNil(t, returned.ReturnedAt)

	// the copy is given back exactly once
	got, err := repo.GetBook(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.AvailableCopies)

	_, err = repo.ReturnBook(ctx, user.ID, loan.LoanUID)
	require.ErrorIs(t, err, errs.ErrAlreadyReturned)

	got, err = repo.GetBook(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.AvailableCopies)
}

func TestIssueBook_OneActiveLoanPerUserAndBook(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	book := createTestBook(t, repo, 5)
	user := createTestUser(t, repo, "rereader")

	loan, err := repo.IssueBook(ctx, user.ID, book.ID)
	require.NoError(t, err)

	_, err = repo.IssueBook(ctx, user.ID, book.ID)
	require.ErrorIs(t, err, errs.ErrDuplicateLoan)

	// the refused attempt must not leak a copy
	got, err := repo.GetBook(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, 4, got.AvailableCopies)

	// returning clears the guard
	_, err = repo.ReturnBook(ctx, user.ID, loan.LoanUID)
	require.NoError(t, err)
	_, err = repo.IssueBook(ctx, user.ID, book.ID)
	require.NoError(t, err)
}

func TestIssueBook_UnknownBook(t *testing.T) {
	repo := newTestRepository(t)
	user := createTestUser(t, repo, "lost")

	_, err := repo.IssueBook(context.Background(), user.ID, -1)
	require.ErrorIs(t, err, errs.ErrNotFound)
}
