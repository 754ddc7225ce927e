package db

import (
	"context"
	"database/sql"
	"errors"

	"library-api/models"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repository defines a common interface for all repositories
type Repository interface {
	Close() error
}

// UserRepository defines the interface for user credential operations
type UserRepository interface {
	Repository
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
}

// BookRepository defines the interface for catalog operations
type BookRepository interface {
	Repository
	FindByID(ctx context.Context, id string) (*models.Book, error)
	FindAll(ctx context.Context) ([]*models.Book, error)
	FindByAvailable(ctx context.Context, available bool) ([]*models.Book, error)
	// Search matches title or author by case-insensitive substring.
	Search(ctx context.Context, query string) ([]*models.Book, error)
	Save(ctx context.Context, book *models.Book) (*models.Book, error)
	DeleteByID(ctx context.Context, id string) error
}

// RepositoryFactory creates repositories backed by the shared SQLite handle
type RepositoryFactory struct {
	SQLiteDB *sql.DB
	DBName   string
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(sqliteDB *sql.DB, dbName string) *RepositoryFactory {
	return &RepositoryFactory{
		SQLiteDB: sqliteDB,
		DBName:   dbName,
	}
}

// NewUserRepository creates a new user repository
func (f *RepositoryFactory) NewUserRepository() UserRepository {
	return NewSQLiteUserRepository(f.SQLiteDB)
}

// NewBookRepository creates a new book repository
func (f *RepositoryFactory) NewBookRepository() BookRepository {
	return NewSQLiteBookRepository(f.SQLiteDB)
}

// GenerateID generates a unique ID for a record
func GenerateID() string {
	return uuid.New().String()
}
