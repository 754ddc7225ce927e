package models

import "time"

// Book represents a catalog entry. BorrowedBy is set exactly when
// Available is false; it records the username holding the book.
type Book struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	ISBN       string    `json:"isbn"`
	Available  bool      `json:"available"`
	BorrowedBy *string   `json:"borrowedBy,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
