package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr             string
	DatabaseURL          string
	Timezone             string
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	ClerkIssuer string

	ImmichBaseURL string
	ImmichAPIKey  string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:             getenv("HTTP_ADDR", ":8081"),
		DatabaseURL:          mustGetenv("DATABASE_URL"),
		Timezone:             getenv("TIMEZONE", "Asia/Kolkata"),
		CORSAllowCredentials: getenv("CORS_ALLOW_CREDENTIALS", "false") == "true",
	}

	origins := strings.Split(getenv("CORS_ALLOWED_ORIGINS", ""), ",")
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	cfg.ClerkIssuer = mustGetenv("CLERK_ISSUER")
	cfg.ImmichBaseURL = strings.TrimSuffix(mustGetenv("IMMICH_BASE_URL"), "/")
	cfg.ImmichAPIKey = mustGetenv("IMMICH_API_KEY")
	return cfg, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func mustGetenv(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		panic("missing env: " + key)
	}
	return v
}
