package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBook_Creation(t *testing.T) {
	now := time.Now()

	book := Book{
		ID:        uuid.New().String(),
		Title:     "The Great Gatsby",
		Author:    "F. Scott Fitzgerald",
		ISBN:      "978-0-7432-7356-5",
		Available: true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	assert.NotEmpty(t, book.ID)
	assert.Equal(t, "The Great Gatsby", book.Title)
	assert.Equal(t, "F. Scott Fitzgerald", book.Author)
	assert.Equal(t, "978-0-7432-7356-5", book.ISBN)
	assert.True(t, book.Available)
	assert.Nil(t, book.BorrowedBy)
}

func TestRole_Constants(t *testing.T) {
	assert.Equal(t, Role("ADMIN"), RoleAdmin)
	assert.Equal(t, Role("MEMBER"), RoleMember)
}

func TestUser_PasswordHashNeverSerialized(t *testing.T) {
	user := User{
		ID:           uuid.New().String(),
		Username:     "alice",
		PasswordHash: "$2a$10$secret",
		Role:         RoleMember,
	}

	data, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
	assert.Contains(t, string(data), "alice")
}

func TestBook_BorrowedBySerialization(t *testing.T) {
	borrower := "alice"
	book := Book{
		ID:         uuid.New().String(),
		Title:      "1984",
		Author:     "George Orwell",
		ISBN:       "978-0-452-28423-4",
		Available:  false,
		BorrowedBy: &borrower,
	}

	data, err := json.Marshal(book)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"borrowedBy":"alice"`)
}
