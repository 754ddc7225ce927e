package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	JwtKey       []byte
	SQLitePath   string
	DatabaseName string
	Port         string
}

func LoadConfig() (*Config, error) {
	// A missing .env file is fine when the variables come from the environment
	_ = godotenv.Load()

	databaseName := os.Getenv("DATABASE_NAME")
	if databaseName == "" {
		databaseName = "library"
	}

	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY is not set")
	}

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		// Default to a data directory in the current directory
		sqlitePath = filepath.Join("data", fmt.Sprintf("%s.db", databaseName))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		JwtKey:       []byte(jwtSecret),
		SQLitePath:   sqlitePath,
		DatabaseName: databaseName,
		Port:         port,
	}, nil
}
