package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"library-api/models"
)

// SQLiteUserRepository implements the UserRepository interface for SQLite
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository creates a new SQLiteUserRepository
func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

// Close closes the database connection
func (r *SQLiteUserRepository) Close() error {
	return r.db.Close()
}

// FindByID finds a user by ID
func (r *SQLiteUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT id, username, password_hash, role, created_at FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// FindByUsername finds a user by username
func (r *SQLiteUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT id, username, password_hash, role, created_at FROM users WHERE username = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *SQLiteUserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	var role string
	var createdAt sql.NullTime

	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &role, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}

	user.Role = models.Role(role)
	if createdAt.Valid {
		user.CreatedAt = createdAt.Time
	}

	return &user, nil
}

// ExistsByUsername reports whether a user with the given username exists
func (r *SQLiteUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query := `SELECT COUNT(*) FROM users WHERE username = ?`
	var count int
	if err := r.db.QueryRowContext(ctx, query, username).Scan(&count); err != nil {
		return false, fmt.Errorf("error counting users: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new user, assigning an ID if it has none
func (r *SQLiteUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = GenerateID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	query := `INSERT INTO users (id, username, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Username, user.PasswordHash, string(user.Role), user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error inserting user: %w", err)
	}

	return user, nil
}

// SQLiteBookRepository implements the BookRepository interface for SQLite
type SQLiteBookRepository struct {
	db *sql.DB
}

// NewSQLiteBookRepository creates a new SQLiteBookRepository
func NewSQLiteBookRepository(db *sql.DB) *SQLiteBookRepository {
	return &SQLiteBookRepository{db: db}
}

// Close closes the database connection
func (r *SQLiteBookRepository) Close() error {
	return r.db.Close()
}

const bookColumns = `id, title, author, isbn, available, borrowed_by, created_at, updated_at`

// FindByID finds a book by ID
func (r *SQLiteBookRepository) FindByID(ctx context.Context, id string) (*models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var book models.Book
	var borrowedBy sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(&book.ID, &book.Title, &book.Author, &book.ISBN, &book.Available, &borrowedBy, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning book: %w", err)
	}

	if borrowedBy.Valid {
		book.BorrowedBy = &borrowedBy.String
	}
	if createdAt.Valid {
		book.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		book.UpdatedAt = updatedAt.Time
	}

	return &book, nil
}

// FindAll finds all books in insertion order
func (r *SQLiteBookRepository) FindAll(ctx context.Context) ([]*models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY created_at`
	return r.queryBooks(ctx, query)
}

// FindByAvailable finds all books with the given availability
func (r *SQLiteBookRepository) FindByAvailable(ctx context.Context, available bool) ([]*models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE available = ? ORDER BY created_at`
	return r.queryBooks(ctx, query, available)
}

// Search finds books whose title or author contains the query, case-insensitively
func (r *SQLiteBookRepository) Search(ctx context.Context, search string) ([]*models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books
		WHERE LOWER(title) LIKE '%' || LOWER(?) || '%'
		   OR LOWER(author) LIKE '%' || LOWER(?) || '%'
		ORDER BY created_at`
	return r.queryBooks(ctx, query, search, search)
}

func (r *SQLiteBookRepository) queryBooks(ctx context.Context, query string, args ...interface{}) ([]*models.Book, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying books: %w", err)
	}
	defer rows.Close()

	var books []*models.Book
	for rows.Next() {
		var book models.Book
		var borrowedBy sql.NullString
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(&book.ID, &book.Title, &book.Author, &book.ISBN, &book.Available, &borrowedBy, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning book: %w", err)
		}

		if borrowedBy.Valid {
			book.BorrowedBy = &borrowedBy.String
		}
		if createdAt.Valid {
			book.CreatedAt = createdAt.Time
		}
		if updatedAt.Valid {
			book.UpdatedAt = updatedAt.Time
		}

		books = append(books, &book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}

// Save creates or updates a book, assigning an ID on first save
func (r *SQLiteBookRepository) Save(ctx context.Context, book *models.Book) (*models.Book, error) {
	now := time.Now()
	if book.ID == "" {
		book.ID = GenerateID()
		book.CreatedAt = now
	}
	book.UpdatedAt = now

	var borrowedBy sql.NullString
	if book.BorrowedBy != nil {
		borrowedBy = sql.NullString{String: *book.BorrowedBy, Valid: true}
	}

	query := `INSERT INTO books (id, title, author, isbn, available, borrowed_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			author = excluded.author,
			isbn = excluded.isbn,
			available = excluded.available,
			borrowed_by = excluded.borrowed_by,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query, book.ID, book.Title, book.Author, book.ISBN, book.Available, borrowedBy, book.CreatedAt, book.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error saving book: %w", err)
	}

	return book, nil
}

// DeleteByID removes a book permanently
func (r *SQLiteBookRepository) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting book: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking deleted rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
