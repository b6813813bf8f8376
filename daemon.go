package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
)

// runDaemon runs the send flow on a cron schedule, for hosts without an
// external scheduler. One run at a time; a tick that fires while a run is
// still going is skipped rather than stacking browser instances.
func runDaemon(cfg *Config, headless bool) error {
	if err := cfg.requireRecipient(); err != nil {
		return err
	}

	n := newNotifier(cfg.WebhookURL)

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(cfg.Schedule, func() {
		log.Printf("Scheduled send triggered (%s)", cfg.Schedule)
		err := runSend(cfg, headless)
		if err != nil {
			log.Printf("Scheduled send failed: %v", err)
		}
		n.sendOutcome(err)
	})
	if err != nil {
		return fmt.Errorf("invalid STREAK_SCHEDULE %q: %w", cfg.Schedule, err)
	}

	c.Start()
	defer c.Stop()
	log.Printf("Daemon started, schedule %q (next run %s)",
		cfg.Schedule, c.Entries()[0].Schedule.Next(time.Now()))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("Received %s, shutting down", sig)
	return nil
}
