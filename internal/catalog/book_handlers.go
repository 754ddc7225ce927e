package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"library-api/db"
	"library-api/middleware"

	"github.com/gorilla/mux"
)

type BookHandlers struct {
	Service *BookService
}

func NewBookHandlers(service *BookService) *BookHandlers {
	return &BookHandlers{Service: service}
}

type bookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

func (b bookRequest) validate() string {
	if strings.TrimSpace(b.Title) == "" {
		return "Title is required"
	}
	if strings.TrimSpace(b.Author) == "" {
		return "Author is required"
	}
	if strings.TrimSpace(b.ISBN) == "" {
		return "ISBN is required"
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError translates catalog error kinds into HTTP responses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		writeError(w, http.StatusNotFound, "Book not found")
	case errors.Is(err, ErrBookUnavailable):
		writeError(w, http.StatusConflict, "Book is not available")
	case errors.Is(err, ErrNotBorrower):
		writeError(w, http.StatusConflict, "You can only return books that you have borrowed")
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *BookHandlers) AddBook(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	book, err := h.Service.AddBook(r.Context(), req.Title, req.Author, req.ISBN)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

func (h *BookHandlers) GetAllBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.Service.AllBooks(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (h *BookHandlers) GetAvailableBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.Service.AvailableBooks(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (h *BookHandlers) SearchBooks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	books, err := h.Service.SearchBooks(r.Context(), query)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (h *BookHandlers) BorrowBook(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	book, err := h.Service.Borrow(r.Context(), mux.Vars(r)["id"], username)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

func (h *BookHandlers) ReturnBook(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	book, err := h.Service.Return(r.Context(), mux.Vars(r)["id"], username)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

func (h *BookHandlers) UpdateBook(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	book, err := h.Service.UpdateBook(r.Context(), mux.Vars(r)["id"], req.Title, req.Author, req.ISBN)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

func (h *BookHandlers) DeleteBook(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteBook(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Book deleted successfully"})
}
