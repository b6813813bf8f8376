package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// Drives Safari to the messages page and reads document.cookie from it.
// HttpOnly cookies are invisible to this route, but TikTok's web session
// works with what document.cookie exposes.
const safariCookieScript = `
tell application "Safari"
	activate
	tell window 1
		set current tab to (make new tab with properties {URL:"https://www.tiktok.com/messages"})
	end tell
	delay 5
	set cookieStr to do JavaScript "document.cookie" in current tab of window 1
	return cookieStr
end tell`

// runImportSafari grabs session cookies from a logged-in Safari, for
// operators who never want to log in through an automated browser. macOS
// only; may prompt for Automation permission on first run.
func runImportSafari(cfg *Config) error {
	if runtime.GOOS != "darwin" {
		return fmt.Errorf("safari import requires macOS (Safari scripting is not available on %s)", runtime.GOOS)
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("  TikTok Streak — Import Safari Cookies")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()
	fmt.Println("Make sure you're logged into TikTok in Safari.")
	fmt.Println("This will briefly use Safari to grab your session cookies.")
	fmt.Println()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, "osascript", "-e", safariCookieScript).Output()
	if err != nil {
		log.Println("Make sure Safari is open and you're logged into TikTok.")
		log.Println("You may need to allow Terminal access in:")
		log.Println("  System Settings → Privacy & Security → Automation")
		return fmt.Errorf("could not extract cookies from Safari: %w", err)
	}

	state := parseCookieString(strings.TrimSpace(string(out)))
	if len(state.Cookies) == 0 {
		return fmt.Errorf("no cookies found: make sure you're logged into TikTok in Safari")
	}
	log.Printf("Extracted %d cookies from Safari", len(state.Cookies))

	if err := state.saveFile(cfg.CookiesFile); err != nil {
		return fmt.Errorf("failed to save %s: %w", cfg.CookiesFile, err)
	}
	log.Printf("Session saved to %s", cfg.CookiesFile)

	printSecretInstructions(state.encode())
	return nil
}

// parseCookieString converts a document.cookie string into storage state.
func parseCookieString(cookieStr string) *storageState {
	state := &storageState{Origins: []json.RawMessage{}}
	for _, pair := range strings.Split(cookieStr, "; ") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			continue
		}
		state.Cookies = append(state.Cookies, cookie{
			Name:     strings.TrimSpace(name),
			Value:    strings.TrimSpace(value),
			Domain:   ".tiktok.com",
			Path:     "/",
			HTTPOnly: false,
			Secure:   true,
			SameSite: "None",
		})
	}
	return state
}
