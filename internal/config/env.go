package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr        string
	GinMode        string
	DBUser         string
	DBPassword     string
	DBHost         string
	DBName         string
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string
}

// Load reads configuration from the environment, seeding it from a .env file
// first when one is present. Missing optional values fall back to development
// defaults.
func Load() Env {
	_ = godotenv.Load()

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	dbHost := strings.TrimSpace(os.Getenv("DB_HOST"))
	if dbHost == "" {
		dbHost = "127.0.0.1:3306"
	}
	dbName := strings.TrimSpace(os.Getenv("DB_NAME"))
	if dbName == "" {
		dbName = "board"
	}
	dbUser := strings.TrimSpace(os.Getenv("DB_USER"))
	if dbUser == "" {
		dbUser = "root"
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "dev-secret-change-me"
	}

	ttl := 24 * time.Hour
	if raw := strings.TrimSpace(os.Getenv("TOKEN_TTL_HOURS")); raw != "" {
		if h, err := strconv.Atoi(raw); err == nil && h > 0 {
			ttl = time.Duration(h) * time.Hour
		}
	}

	origins := []string{"http://localhost:3000", "http://localhost:5173"}
	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Env{
		AppAddr:        appAddr,
		GinMode:        strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBUser:         dbUser,
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBHost:         dbHost,
		DBName:         dbName,
		JWTSecret:      secret,
		TokenTTL:       ttl,
		AllowedOrigins: origins,
	}
}

// DSN assembles the MySQL connection string.
func (e Env) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s",
		e.DBUser, e.DBPassword, e.DBHost, e.DBName)
}
