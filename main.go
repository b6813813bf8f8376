package main

import (
	"errors"
	"flag"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	loginMode := flag.Bool("login", false, "Open a visible browser for one-time interactive login")
	exportMode := flag.Bool("export", false, "Build a session token from a manually pasted sessionid cookie")
	importSafari := flag.Bool("import-safari", false, "Import TikTok cookies from a logged-in Safari (macOS only)")
	inspectMode := flag.Bool("inspect", false, "Dump page structure for selector maintenance")
	daemonMode := flag.Bool("daemon", false, "Run the send flow on the STREAK_SCHEDULE cron expression")
	headless := flag.Bool("headless", true, "Run the send flow without a visible window")
	flag.Parse()

	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg := loadConfig()
	setupLogging(cfg)

	var err error
	switch {
	case *loginMode:
		err = runLogin(cfg)
	case *exportMode:
		err = runExport(cfg)
	case *importSafari:
		err = runImportSafari(cfg)
	case *inspectMode:
		err = runInspect(cfg, *headless)
	case *daemonMode:
		err = runDaemon(cfg, *headless)
	default:
		err = runSend(cfg, *headless)
		newNotifier(cfg.WebhookURL).sendOutcome(err)
	}

	if err != nil {
		log.Printf("ERROR: %v", err)
		switch {
		case errors.Is(err, errNoRecipient):
			log.Println("Set TIKTOK_RECIPIENT to @username, a display name, or 'Display|@handle'.")
		case errors.Is(err, errConversationNotFound):
			log.Println("Check TIKTOK_RECIPIENT, or add the @handle so the profile fallback can run.")
		}
		os.Exit(exitCode(err))
	}
}
