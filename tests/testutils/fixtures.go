package testutils

import (
	"time"

	"library-api/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func CreateTestBook(title, author, isbn string) *models.Book {
	now := time.Now()

	return &models.Book{
		ID:        uuid.New().String(),
		Title:     title,
		Author:    author,
		ISBN:      isbn,
		Available: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func CreateTestUser(username, password string, role models.Role) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)

	return &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
}
