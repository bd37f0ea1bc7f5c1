package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken       string
	BaseURL             string
	GitHubClientID      string
	GitHubClientSecret  string
	GitHubWebhookSecret string
	EncryptionKey       string
	Port                string
}

func Load() *Config {
	_ = godotenv.Load()

	required := []string{
		"TELEGRAM_TOKEN",
		"BASE_URL",
		"GITHUB_CLIENT_ID",
		"GITHUB_CLIENT_SECRET",
		"GITHUB_WEBHOOK_SECRET",
		"ENCRYPTION_KEY",
	}

	var missing []string
	for _, key := range required {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		log.Fatalf("Missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return &Config{
		TelegramToken:       os.Getenv("TELEGRAM_TOKEN"),
		BaseURL:             strings.TrimRight(os.Getenv("BASE_URL"), "/"),
		GitHubClientID:      os.Getenv("GITHUB_CLIENT_ID"),
		GitHubClientSecret:  os.Getenv("GITHUB_CLIENT_SECRET"),
		GitHubWebhookSecret: os.Getenv("GITHUB_WEBHOOK_SECRET"),
		EncryptionKey:       os.Getenv("ENCRYPTION_KEY"),
		Port:                getEnv("PORT", "8080"),
	}
}

// RedirectURL is where GitHub sends the user back after authorization.
func (c *Config) RedirectURL() string {
	return c.BaseURL + "/github/callback"
}

// WebhookURL is the inbound endpoint provisioned on watched repositories.
func (c *Config) WebhookURL() string {
	return c.BaseURL + "/webhook"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
