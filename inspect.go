package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
)

// runInspect dumps the structure of the messages page: the full HTML to a
// file, plus inventories of data-e2e attributes, inputs and buttons. The
// selectors in detect.go and resolve.go drift with TikTok's UI; this mode
// exists so fixing them doesn't start from a blank screenshot.
func runInspect(cfg *Config, headless bool) error {
	b, err := newBrowser(cfg, headless)
	if err != nil {
		return err
	}
	defer b.Close()

	// Best effort: inspect authenticated markup when a session is around.
	if state, _, err := loadSession(cfg); err == nil {
		if err := b.SetCookies(state); err != nil {
			log.Printf("Could not restore session, inspecting anonymously: %v", err)
		}
	} else {
		log.Printf("No session available, inspecting anonymously: %v", err)
	}

	if err := b.Navigate(messagesURL); err != nil {
		return err
	}
	time.Sleep(5 * time.Second)
	log.Printf("Page state: %s", b.pageState())

	var html string
	err = chromedp.Run(b.ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	if err != nil {
		return fmt.Errorf("failed to get page HTML: %w", err)
	}
	htmlPath := filepath.Join(cfg.ScreenshotDir, "page_structure.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0644); err != nil {
		log.Printf("Warning: failed to save HTML: %v", err)
	} else {
		log.Printf("Page HTML saved to %s", htmlPath)
	}

	var e2eAttrs []string
	err = chromedp.Run(b.ctx, chromedp.Evaluate(`
		Array.from(new Set(
			Array.from(document.querySelectorAll('[data-e2e]'))
				.map(el => el.getAttribute('data-e2e'))
		)).sort()
	`, &e2eAttrs))
	if err == nil {
		log.Printf("Found %d distinct data-e2e attributes:", len(e2eAttrs))
		for _, attr := range e2eAttrs {
			fmt.Printf("  data-e2e=%q\n", attr)
		}
	}

	var inputs []map[string]any
	err = chromedp.Run(b.ctx, chromedp.Evaluate(`
		Array.from(document.querySelectorAll('input, [contenteditable="true"], [role="textbox"]')).map(el => ({
			tag: el.tagName.toLowerCase(),
			type: el.type || '',
			placeholder: el.placeholder || '',
			className: el.className || '',
			dataE2e: el.getAttribute('data-e2e') || ''
		}))
	`, &inputs))
	if err == nil {
		log.Printf("Found %d input-like elements", len(inputs))
		dumpInventory(inputs)
	}

	var buttons []map[string]any
	err = chromedp.Run(b.ctx, chromedp.Evaluate(`
		Array.from(document.querySelectorAll('button, [role="button"]')).map(el => ({
			text: (el.textContent || '').trim().slice(0, 40),
			ariaLabel: el.getAttribute('aria-label') || '',
			dataE2e: el.getAttribute('data-e2e') || ''
		}))
	`, &buttons))
	if err == nil {
		log.Printf("Found %d button elements", len(buttons))
		dumpInventory(buttons)
	}

	b.Screenshot("inspect")
	return nil
}

func dumpInventory(items []map[string]any) {
	for _, item := range items {
		raw, _ := json.Marshal(item)
		fmt.Printf("  %s\n", raw)
	}
}
