package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config is loaded once at startup and passed by reference. The three
// token secrets are independent; a missing secret is a startup failure,
// never a per-request one.
type Config struct {
	DatabaseURL string
	HTTPAddr    string
	SiteURL     string

	AccessSecret string
	VerifySecret string
	ForgotSecret string

	ResendAPIKey string
	EmailFrom    string
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		HTTPAddr:     os.Getenv("HTTP_ADDR"),
		SiteURL:      os.Getenv("SITE_URL"),
		AccessSecret: os.Getenv("ACCESS_SECRET"),
		VerifySecret: os.Getenv("VERIFY_SECRET"),
		ForgotSecret: os.Getenv("FORGOT_SECRET"),
		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		EmailFrom:    os.Getenv("EMAIL_FROM"),
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"DATABASE_URL", cfg.DatabaseURL},
		{"ACCESS_SECRET", cfg.AccessSecret},
		{"VERIFY_SECRET", cfg.VerifySecret},
		{"FORGOT_SECRET", cfg.ForgotSecret},
	}
	for _, env := range required {
		if strings.TrimSpace(env.value) == "" {
			missing = append(missing, env.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}
