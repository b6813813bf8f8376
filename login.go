package main

import (
	"fmt"
	"strings"
	"time"
)

// runLogin is the one-time interactive setup: a visible browser, a human
// logging in, then cookie capture. The wait is unbounded on purpose; the
// only way out without a session is closing the browser window.
func runLogin(cfg *Config) error {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("  TikTok Streak — Login Setup")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()
	fmt.Println("A browser window will open.")
	fmt.Println("1. Log into your TikTok account")
	fmt.Println("2. Wait for the page to leave the login screen")
	fmt.Println("3. Cookies are captured automatically")
	fmt.Println()

	b, err := newBrowser(cfg, false)
	if err != nil {
		return err
	}
	defer b.Close()

	if err := b.Navigate(loginURL); err != nil {
		return err
	}

	log.Println("Waiting for login to complete...")
	log.Println("(After scanning the QR code, wait for the page to redirect)")

	for {
		time.Sleep(2 * time.Second)
		url, err := b.CurrentURL()
		if err != nil {
			// Browser window closed before the login finished.
			return fmt.Errorf("browser closed before login completed: %w", err)
		}
		if url != "" && !strings.Contains(url, "/login") {
			break
		}
	}

	log.Println("Login detected! Navigating to messages to verify...")
	if err := b.Navigate(messagesURL); err != nil {
		return err
	}
	time.Sleep(3 * time.Second)

	if url, err := b.CurrentURL(); err == nil && strings.Contains(url, "/login") {
		log.Println("WARNING: Still on login page. Session may not have saved correctly.")
	} else {
		log.Println("Messages page loaded successfully!")
	}

	state, err := b.DumpCookies(cookieDomain)
	if err != nil {
		return fmt.Errorf("failed to capture session: %w", err)
	}
	if len(state.Cookies) == 0 {
		return fmt.Errorf("no %s cookies found after login", cookieDomain)
	}
	log.Printf("Captured %d cookies", len(state.Cookies))

	if err := state.saveFile(cfg.CookiesFile); err != nil {
		return fmt.Errorf("failed to save %s: %w", cfg.CookiesFile, err)
	}
	log.Printf("Session saved to %s", cfg.CookiesFile)

	printSecretInstructions(state.encode())
	return nil
}

// printSecretInstructions walks the operator through moving the token into
// the scheduler's secret store.
func printSecretInstructions(token string) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("  Login saved! Now add your GitHub Secrets.")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()
	fmt.Println("Go to your forked repo → Settings → Secrets and variables → Actions")
	fmt.Println("Add these 3 secrets:")
	fmt.Println()
	fmt.Println("  TIKTOK_RECIPIENT    →  Who to message: @username or display name")
	fmt.Println("  TIKTOK_MESSAGE      →  The message (or skip for default 'hey :)')")
	fmt.Println("  TIKTOK_COOKIES_B64  →  Your base64-encoded session (see below)")
	fmt.Println()

	if copyToClipboard(token) {
		fmt.Println("Your TIKTOK_COOKIES_B64 value has been copied to your clipboard!")
		fmt.Println("Just paste it as the secret value.")
	} else {
		fmt.Println("Copy this entire value for TIKTOK_COOKIES_B64:")
		fmt.Println()
		fmt.Println(token)
	}

	fmt.Println()
	fmt.Println("Once secrets are set, the workflow runs daily.")
	fmt.Println("You can also trigger it manually from the Actions tab.")
}
