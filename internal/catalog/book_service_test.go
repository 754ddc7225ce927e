package catalog

import (
	"context"
	"testing"

	"library-api/db"
	"library-api/tests/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBookService(t *testing.T) (*BookService, func()) {
	factory, cleanup := testutils.SetupTestRepositoryFactory(t)

	dbManager := db.NewDBManager()
	svc := NewBookService(factory.NewBookRepository(), dbManager)

	return svc, func() {
		dbManager.Stop()
		cleanup()
	}
}

func TestBookService_AddBook(t *testing.T) {
	svc, cleanup := setupBookService(t)
	defer cleanup()

	book, err := svc.AddBook(context.Background(), "1984", "George Orwell", "978-0-452-28423-4")
	require.NoError(t, err)

	assert.NotEmpty(t, book.ID)
	assert.True(t, book.Available)
	assert.Nil(t, book.BorrowedBy)

	stored, err := svc.AllBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, book.ID, stored[0].ID)
}

func TestBookService_BorrowAndReturn(t *testing.T) {
	svc, cleanup := setupBookService(t)
	defer cleanup()

	ctx := context.Background()
	book, err := svc.AddBook(ctx, "1984", "George Orwell", "978-0-452-28423-4")
	require.NoError(t, err)

	t.Run("BorrowUnknownBook", func(t *testing.T) {
		_, err := svc.Borrow(ctx, "no-such-id", "alice")
		assert.ErrorIs(t, err, db.ErrNotFound)
	})

	t.Run("BorrowAvailableBook", func(t *testing.T) {
		borrowed, err := svc.Borrow(ctx, book.ID, "alice")
		require.NoError(t, err)
		assert.False(t, borrowed.Available)
		require.NotNil(t, borrowed.BorrowedBy)
		assert.Equal(t, "alice", *borrowed.BorrowedBy)
	})

	t.Run("SecondBorrowFails", func(t *testing.T) {
		_, err := svc.Borrow(ctx, book.ID, "bob")
		assert.ErrorIs(t, err, ErrBookUnavailable)

		// State is unchanged: alice still holds the book
		books, err := svc.AllBooks(ctx)
		require.NoError(t, err)
		require.Len(t, books, 1)
		require.NotNil(t, books[0].BorrowedBy)
		assert.Equal(t, "alice", *books[0].BorrowedBy)
	})

	t.Run("ReturnByNonBorrower", func(t *testing.T) {
		_, err := svc.Return(ctx, book.ID, "bob")
		assert.ErrorIs(t, err, ErrNotBorrower)
	})

	t.Run("ReturnByBorrower", func(t *testing.T) {
		returned, err := svc.Return(ctx, book.ID, "alice")
		require.NoError(t, err)
		assert.True(t, returned.Available)
		assert.Nil(t, returned.BorrowedBy)
	})

	t.Run("ReturnAvailableBook", func(t *testing.T) {
		_, err := svc.Return(ctx, book.ID, "alice")
		assert.ErrorIs(t, err, ErrNotBorrower)
	})

	t.Run("ReturnUnknownBook", func(t *testing.T) {
		_, err := svc.Return(ctx, "no-such-id", "alice")
		assert.ErrorIs(t, err, db.ErrNotFound)
	})
}

func TestBookService_SearchBooks(t *testing.T) {
	svc, cleanup := setupBookService(t)
	defer cleanup()

	ctx := context.Background()
	_, err := svc.AddBook(ctx, "The Great Gatsby", "F. Scott Fitzgerald", "978-0-7432-7356-5")
	require.NoError(t, err)
	_, err = svc.AddBook(ctx, "1984", "George Orwell", "978-0-452-28423-4")
	require.NoError(t, err)

	t.Run("MatchesTitle", func(t *testing.T) {
		books, err := svc.SearchBooks(ctx, "gatsby")
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "The Great Gatsby", books[0].Title)
	})

	t.Run("MatchesAuthor", func(t *testing.T) {
		books, err := svc.SearchBooks(ctx, "fitzgerald")
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "The Great Gatsby", books[0].Title)
	})

	t.Run("NoMatch", func(t *testing.T) {
		books, err := svc.SearchBooks(ctx, "xyz")
		require.NoError(t, err)
		assert.Empty(t, books)
	})
}

func TestBookService_UpdateBook(t *testing.T) {
	svc, cleanup := setupBookService(t)
	defer cleanup()

	ctx := context.Background()
	book, err := svc.AddBook(ctx, "1985", "George Orwell", "978-0-452-28423-4")
	require.NoError(t, err)

	_, err = svc.Borrow(ctx, book.ID, "alice")
	require.NoError(t, err)

	updated, err := svc.UpdateBook(ctx, book.ID, "1984", "George Orwell", "978-0-452-28423-4")
	require.NoError(t, err)
	assert.Equal(t, "1984", updated.Title)

	// Availability and borrower survive an update
	assert.False(t, updated.Available)
	require.NotNil(t, updated.BorrowedBy)
	assert.Equal(t, "alice", *updated.BorrowedBy)

	_, err = svc.UpdateBook(ctx, "no-such-id", "x", "y", "z")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestBookService_DeleteBook(t *testing.T) {
	svc, cleanup := setupBookService(t)
	defer cleanup()

	ctx := context.Background()
	book, err := svc.AddBook(ctx, "1984", "George Orwell", "978-0-452-28423-4")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBook(ctx, book.ID))
	assert.ErrorIs(t, svc.DeleteBook(ctx, book.ID), db.ErrNotFound)
}

func TestBookService_CatalogLifecycle(t *testing.T) {
	svc, cleanup := setupBookService(t)
	defer cleanup()

	ctx := context.Background()
	a, err := svc.AddBook(ctx, "Book A", "Author A", "isbn-a")
	require.NoError(t, err)
	b, err := svc.AddBook(ctx, "Book B", "Author B", "isbn-b")
	require.NoError(t, err)
	_, err = svc.AddBook(ctx, "Book C", "Author C", "isbn-c")
	require.NoError(t, err)

	available, err := svc.AvailableBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, available, 3)

	_, err = svc.Borrow(ctx, a.ID, "u1")
	require.NoError(t, err)

	available, err = svc.AvailableBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, available, 2)

	all, err := svc.AllBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, svc.DeleteBook(ctx, b.ID))

	all, err = svc.AllBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
