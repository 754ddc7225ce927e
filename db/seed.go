package db

import (
	"context"
	"fmt"
	"log"

	"library-api/models"

	"golang.org/x/crypto/bcrypt"
)

// SeedDefaultData creates the default admin user and starter catalog when
// the database is empty, so a fresh install is immediately usable.
func SeedDefaultData(ctx context.Context, users UserRepository, books BookRepository) error {
	exists, err := users.ExistsByUsername(ctx, "admin")
	if err != nil {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}
	if !exists {
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash default admin password: %w", err)
		}
		admin := &models.User{
			Username:     "admin",
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
		}
		if _, err := users.Create(ctx, admin); err != nil {
			return fmt.Errorf("failed to create default admin user: %w", err)
		}
		log.Println("Default admin user created: username=admin, password=password123")
	}

	existing, err := books.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing books: %w", err)
	}
	if len(existing) == 0 {
		defaultBooks := []*models.Book{
			{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", ISBN: "978-0-7432-7356-5", Available: true},
			{Title: "To Kill a Mockingbird", Author: "Harper Lee", ISBN: "978-0-06-112008-4", Available: true},
			{Title: "1984", Author: "George Orwell", ISBN: "978-0-452-28423-4", Available: true},
			{Title: "Pride and Prejudice", Author: "Jane Austen", ISBN: "978-0-14-143951-8", Available: true},
			{Title: "The Catcher in the Rye", Author: "J.D. Salinger", ISBN: "978-0-316-76948-0", Available: true},
		}
		for _, book := range defaultBooks {
			if _, err := books.Save(ctx, book); err != nil {
				return fmt.Errorf("failed to create default book %q: %w", book.Title, err)
			}
		}
		log.Printf("Default books created: %d books added to library", len(defaultBooks))
	}

	return nil
}
