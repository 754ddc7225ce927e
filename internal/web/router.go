package web

import (
	"library-api/internal/auth"
	"library-api/internal/catalog"
	"library-api/middleware"

	"github.com/gorilla/mux"
)

// SetupRoutes wires the auth and catalog handlers into the API router.
// Every /api/books route requires a valid token; update and delete
// additionally require the ADMIN role.
func SetupRoutes(authHandlers *auth.AuthHandlers, bookHandlers *catalog.BookHandlers, mw *middleware.Middleware) *mux.Router {
	r := mux.NewRouter()

	// Auth endpoints
	authAPI := r.PathPrefix("/api/auth").Subrouter()
	authAPI.HandleFunc("/register", authHandlers.RegisterHandler).Methods("POST")
	authAPI.HandleFunc("/login", authHandlers.LoginHandler).Methods("POST")
	authAPI.HandleFunc("/check", authHandlers.CheckAuthHandler).Methods("GET")

	// Catalog endpoints
	books := r.PathPrefix("/api/books").Subrouter()
	books.HandleFunc("", mw.AuthMiddleware(bookHandlers.AddBook)).Methods("POST")
	books.HandleFunc("", mw.AuthMiddleware(bookHandlers.GetAllBooks)).Methods("GET")
	books.HandleFunc("/available", mw.AuthMiddleware(bookHandlers.GetAvailableBooks)).Methods("GET")
	books.HandleFunc("/search", mw.AuthMiddleware(bookHandlers.SearchBooks)).Methods("GET")
	books.HandleFunc("/{id}/borrow", mw.AuthMiddleware(bookHandlers.BorrowBook)).Methods("PUT")
	books.HandleFunc("/{id}/return", mw.AuthMiddleware(bookHandlers.ReturnBook)).Methods("PUT")
	books.HandleFunc("/{id}", mw.AuthMiddleware(mw.RequireAdmin(bookHandlers.UpdateBook))).Methods("PUT")
	books.HandleFunc("/{id}", mw.AuthMiddleware(mw.RequireAdmin(bookHandlers.DeleteBook))).Methods("DELETE")

	return r
}
