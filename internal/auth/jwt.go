package auth

import (
	"errors"
	"time"

	"library-api/internal/config"
	"library-api/models"

	"github.com/dgrijalva/jwt-go"
)

// ErrInvalidToken covers malformed, expired, and badly signed tokens.
var ErrInvalidToken = errors.New("invalid token")

const tokenLifetime = 24 * time.Hour

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.StandardClaims
}

// TokenService issues and verifies the signed session tokens returned at
// login. The signing key is process-wide configuration, read-only after
// startup.
type TokenService struct {
	Config *config.Config
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{Config: cfg}
}

// Generate produces a signed token binding the username and role for the
// token lifetime.
func (s *TokenService) Generate(username string, role models.Role) (string, error) {
	expirationTime := time.Now().Add(tokenLifetime)
	claims := &Claims{
		Username: username,
		Role:     string(role),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Config.JwtKey)
}

// Parse verifies a token and returns its claims, or ErrInvalidToken.
func (s *TokenService) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.Config.JwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
