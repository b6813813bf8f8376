package main

import "os"

// Config holds everything the flows need, built once from the environment
// at process start. Secrets (the session token) come in through env as well
// so the GitHub Actions runner never writes them to disk.
type Config struct {
	Recipient string // "Display Name", "@handle", or "Display Name|@handle"
	Message   string

	CookiesB64  string // base64 session token, usually a CI secret
	CookiesFile string // local fallback written by the login flow

	ChromePath    string // optional browser executable override
	ScreenshotDir string

	WebhookURL string // optional outcome webhook (Discord-style embed)
	Schedule   string // cron spec for -daemon
	LogFile    string // optional rotating log file
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// loadConfig reads all env vars and builds the config
func loadConfig() *Config {
	return &Config{
		Recipient: os.Getenv("TIKTOK_RECIPIENT"),
		Message:   getEnv("TIKTOK_MESSAGE", "hey :)"),

		CookiesB64:  os.Getenv("TIKTOK_COOKIES_B64"),
		CookiesFile: getEnv("TIKTOK_COOKIES_FILE", "cookies.json"),

		ChromePath:    os.Getenv("CHROME_PATH"),
		ScreenshotDir: getEnv("SCREENSHOT_DIR", os.TempDir()),

		WebhookURL: os.Getenv("STREAK_WEBHOOK_URL"),
		Schedule:   getEnv("STREAK_SCHEDULE", "0 9 * * *"),
		LogFile:    os.Getenv("LOG_FILE"),
	}
}

// requireRecipient is checked before any browser launch.
func (c *Config) requireRecipient() error {
	if c.Recipient == "" {
		return errNoRecipient
	}
	return nil
}
