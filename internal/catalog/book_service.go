package catalog

import (
	"context"
	"errors"
	"fmt"

	"library-api/db"
	"library-api/models"
)

var (
	ErrBookUnavailable = errors.New("book is not available")
	ErrNotBorrower     = errors.New("book was borrowed by someone else")
)

// BookService implements the catalog lifecycle: CRUD plus the borrow/return
// state machine. A book is either Available (BorrowedBy unset) or Borrowed
// (BorrowedBy holds the borrower); no other transitions exist.
type BookService struct {
	repo      db.BookRepository
	dbManager *db.DBManager
}

func NewBookService(repo db.BookRepository, dbManager *db.DBManager) *BookService {
	return &BookService{
		repo:      repo,
		dbManager: dbManager,
	}
}

// AddBook creates a new available book and returns the stored record.
func (s *BookService) AddBook(ctx context.Context, title, author, isbn string) (*models.Book, error) {
	book := &models.Book{
		Title:     title,
		Author:    author,
		ISBN:      isbn,
		Available: true,
	}
	return s.dbManager.SaveBook(s.repo, ctx, book)
}

// AvailableBooks returns all books not currently borrowed.
func (s *BookService) AvailableBooks(ctx context.Context) ([]*models.Book, error) {
	return s.repo.FindByAvailable(ctx, true)
}

// AllBooks returns the whole catalog regardless of availability.
func (s *BookService) AllBooks(ctx context.Context) ([]*models.Book, error) {
	return s.repo.FindAll(ctx)
}

// SearchBooks matches title or author by case-insensitive substring.
func (s *BookService) SearchBooks(ctx context.Context, query string) ([]*models.Book, error) {
	return s.repo.Search(ctx, query)
}

// Borrow transitions an available book to borrowed, recording the borrower.
// The read-check-write runs on the database worker so two concurrent borrow
// attempts cannot both observe the book as available.
func (s *BookService) Borrow(ctx context.Context, bookID, username string) (*models.Book, error) {
	result, err := s.dbManager.ExecuteOperationWithResult(func() (interface{}, error) {
		book, err := s.repo.FindByID(ctx, bookID)
		if err != nil {
			return nil, err
		}
		if !book.Available {
			return nil, ErrBookUnavailable
		}
		book.Available = false
		book.BorrowedBy = &username
		return s.repo.Save(ctx, book)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Book), nil
}

// Return transitions a borrowed book back to available. Only the recorded
// borrower may return it.
func (s *BookService) Return(ctx context.Context, bookID, username string) (*models.Book, error) {
	result, err := s.dbManager.ExecuteOperationWithResult(func() (interface{}, error) {
		book, err := s.repo.FindByID(ctx, bookID)
		if err != nil {
			return nil, err
		}
		if book.BorrowedBy == nil || *book.BorrowedBy != username {
			return nil, ErrNotBorrower
		}
		book.Available = true
		book.BorrowedBy = nil
		return s.repo.Save(ctx, book)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Book), nil
}

// UpdateBook overwrites title, author and ISBN. Availability and borrower
// are untouched.
func (s *BookService) UpdateBook(ctx context.Context, bookID, title, author, isbn string) (*models.Book, error) {
	result, err := s.dbManager.ExecuteOperationWithResult(func() (interface{}, error) {
		book, err := s.repo.FindByID(ctx, bookID)
		if err != nil {
			return nil, err
		}
		book.Title = title
		book.Author = author
		book.ISBN = isbn
		return s.repo.Save(ctx, book)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Book), nil
}

// DeleteBook removes a book permanently.
func (s *BookService) DeleteBook(ctx context.Context, bookID string) error {
	if err := s.dbManager.DeleteBook(s.repo, ctx, bookID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete book: %w", err)
	}
	return nil
}
