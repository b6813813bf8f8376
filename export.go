package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// runExport builds a session token from a manually copied sessionid cookie
// value, for when running a browser here is not an option (the cookie can
// be read from any logged-in browser's dev tools).
func runExport(cfg *Config) error {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("  TikTok Streak — Export Session")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()
	fmt.Println("Paste your sessionid cookie value from your browser's dev tools")
	fmt.Println("(Storage/Application tab → Cookies → tiktok.com → sessionid)")
	fmt.Println()
	fmt.Print("sessionid: ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("could not read sessionid: %w", err)
	}
	sessionID := strings.TrimSpace(line)
	if sessionID == "" {
		return fmt.Errorf("no sessionid value entered")
	}

	state := sessionFromSessionID(sessionID)
	if err := state.saveFile(cfg.CookiesFile); err != nil {
		return fmt.Errorf("failed to save %s: %w", cfg.CookiesFile, err)
	}
	log.Printf("Session saved to %s", cfg.CookiesFile)

	printSecretInstructions(state.encode())
	return nil
}
