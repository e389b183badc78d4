package config

import (
	"fmt"
	"os"

	"github.com/subosito/gotenv"
)

// Credentials holds the Reddit API credentials loaded from an env file.
// Username and Password are only needed for script-type apps that act on
// behalf of a user; client-credentials auth works without them.
type Credentials struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	Username     string
	Password     string
}

// Load reads credentials from the env file at path. A missing file is a
// startup failure: scanning cannot work without API keys.
func Load(path string) (Credentials, error) {
	if err := gotenv.Load(path); err != nil {
		return Credentials{}, fmt.Errorf("credentials file %q not found: copy reddit.env.example to %q and fill in your Reddit API keys: %w", path, path, err)
	}

	creds := Credentials{
		ClientID:     os.Getenv("REDDIT_CLIENT_ID"),
		ClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
		UserAgent:    os.Getenv("REDDIT_USER_AGENT"),
		Username:     os.Getenv("REDDIT_USERNAME"),
		Password:     os.Getenv("REDDIT_PASSWORD"),
	}

	if creds.ClientID == "" || creds.ClientSecret == "" {
		return Credentials{}, fmt.Errorf("credentials file %q is missing REDDIT_CLIENT_ID or REDDIT_CLIENT_SECRET", path)
	}
	if creds.UserAgent == "" {
		creds.UserAgent = "threadlens/1.0 (+https://github.com/threadlens/threadlens)"
	}

	return creds, nil
}
