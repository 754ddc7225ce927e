package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"library-api/db"
	"library-api/internal/auth"
	"library-api/internal/catalog"
	"library-api/internal/web"
	"library-api/middleware"
	"library-api/models"
	"library-api/tests/testutils"

	"github.com/stretchr/testify/require"
)

type testEnv struct {
	server    *testutils.TestServer
	userRepo  db.UserRepository
	bookRepo  db.BookRepository
	tokens    *auth.TokenService
	dbManager *db.DBManager
}

func setupTestEnv(t *testing.T) (*testEnv, func()) {
	factory, cleanup := testutils.SetupTestRepositoryFactory(t)

	userRepo := factory.NewUserRepository()
	bookRepo := factory.NewBookRepository()
	dbManager := db.NewDBManager()

	cfg := testutils.GetTestConfig()
	tokenService := auth.NewTokenService(cfg)
	authService := auth.NewAuthService(userRepo, dbManager, tokenService)
	bookService := catalog.NewBookService(bookRepo, dbManager)

	authHandlers := auth.NewAuthHandlers(authService, tokenService)
	bookHandlers := catalog.NewBookHandlers(bookService)
	mw := middleware.NewMiddleware(tokenService)

	router := web.SetupRoutes(authHandlers, bookHandlers, mw)
	server := testutils.NewTestServer(t, router)

	env := &testEnv{
		server:    server,
		userRepo:  userRepo,
		bookRepo:  bookRepo,
		tokens:    tokenService,
		dbManager: dbManager,
	}

	return env, func() {
		server.Close()
		dbManager.Stop()
		cleanup()
	}
}

// registerAndLogin creates a user through the API and returns its token.
func (env *testEnv) registerAndLogin(t *testing.T, username, password string, role models.Role) string {
	resp := env.server.POST("/api/auth/register", "", map[string]string{
		"username": username,
		"password": password,
		"role":     string(role),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.server.POST("/api/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body["token"])
	return body["token"]
}
