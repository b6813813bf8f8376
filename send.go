package main

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// runSend is the scheduled flow: restore session, open inbox, resolve the
// conversation, type and submit the message. Linear pipeline, one fallback
// at resolution, browser closed on every exit path.
func runSend(cfg *Config, headless bool) error {
	if err := cfg.requireRecipient(); err != nil {
		return err
	}

	state, fromEnv, err := loadSession(cfg)
	if err != nil {
		return err
	}

	rcpt := parseRecipient(cfg.Recipient)
	log.Printf("Sending message to %s: %s", cfg.Recipient, cfg.Message)

	b, err := newBrowser(cfg, headless)
	if err != nil {
		return err
	}
	defer b.Close()

	// Cookies go in before the first navigation so the inbox loads
	// pre-authenticated.
	if err := b.SetCookies(state); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	if err := b.Navigate(messagesURL); err != nil {
		return err
	}
	time.Sleep(3 * time.Second)

	switch st := b.pageState(); st {
	case stateChallenge:
		b.Screenshot("challenge")
		return errChallenge
	case stateSessionExpired:
		b.Screenshot("login-redirect")
		return errSessionExpired
	case stateUnknown:
		// No post-login marker anywhere: treat as an expired session
		// rather than blundering through resolution on a broken page.
		log.Println("No authenticated UI marker found on messages page")
		b.Screenshot("state-unknown")
		return errSessionExpired
	}

	if err := resolveConversation(b.ctx, buildStrategies(b, rcpt)); err != nil {
		b.Screenshot("conversation-not-found")
		if body, bodyErr := b.evalString(`document.body.innerText`, 5*time.Second); bodyErr == nil {
			preview := body
			if len(preview) > 1000 {
				preview = preview[:1000]
			}
			log.Printf("Page text preview:\n%s", preview)
		}
		log.Printf("Could not find conversation with %q. Try using @username instead of display name.", cfg.Recipient)
		return err
	}
	b.Screenshot("conversation-opened")

	if err := b.composeAndSend(cfg.Message); err != nil {
		b.Screenshot("send-failed")
		return err
	}

	if b.confirmDelivery(cfg.Message) {
		log.Println("Message visible in thread")
	} else {
		log.Println("Could not confirm message in thread; exiting optimistically")
	}
	b.Screenshot("message-sent")

	// TikTok rotates session cookies on use. Persist the refreshed set when
	// the token came from disk; an env-supplied secret stays authoritative.
	if !fromEnv {
		if updated, err := b.DumpCookies(cookieDomain); err == nil && len(updated.Cookies) > 0 {
			if err := updated.saveFile(cfg.CookiesFile); err != nil {
				log.Printf("Could not save refreshed cookies: %v", err)
			}
		}
	}

	log.Println("Message sent successfully!")
	return nil
}

// Composer candidates, newest markup first.
var composerSelectors = []string{
	`[data-e2e="message-input"]`,
	`div[contenteditable="true"]`,
	`div[role="textbox"]`,
}

var sendButtonSelectors = []string{
	`[data-e2e="message-send"]`,
	`button[aria-label="Send"]`,
	`svg[data-e2e="message-send"]`,
}

// composeAndSend types the message into the conversation composer and
// submits it, falling back to the Enter key when no send button is found.
func (b *Browser) composeAndSend(message string) error {
	log.Println("Typing message...")

	var typed bool
	for _, sel := range composerSelectors {
		ctx, cancel := context.WithTimeout(b.ctx, stepTimeout)
		err := chromedp.Run(ctx,
			chromedp.WaitVisible(sel, chromedp.ByQuery),
			chromedp.Click(sel, chromedp.ByQuery),
			chromedp.SendKeys(sel, message, chromedp.ByQuery),
		)
		cancel()
		if err == nil {
			log.Printf("Message entered using selector: %s", sel)
			typed = true
			break
		}
	}
	if !typed {
		return fmt.Errorf("could not find message composer")
	}

	time.Sleep(500 * time.Millisecond)

	log.Println("Sending message...")
	if sel, ok := b.clickFirst(sendButtonSelectors); ok {
		log.Printf("Clicked send button: %s", sel)
	} else {
		err := chromedp.Run(b.ctx, chromedp.KeyEvent("\r"))
		if err != nil {
			return fmt.Errorf("could not submit message: %w", err)
		}
		log.Println("Submitted using Enter key")
	}

	time.Sleep(2 * time.Second)
	return nil
}

// confirmDelivery probes the thread for the sent text for a few seconds.
// Best effort: a false here is logged, not fatal.
func (b *Browser) confirmDelivery(message string) bool {
	js := fmt.Sprintf(`
		(() => {
			const msg = %q;
			const items = Array.from(document.querySelectorAll('[data-e2e="chat-item"], [class*="TextContainer"], p, span'));
			return items.some(el => el.children.length === 0 && el.textContent.trim() === msg.trim());
		})()`, message)

	for i := 0; i < 3; i++ {
		if b.evalBool(js, 3*time.Second) {
			return true
		}
		time.Sleep(time.Second)
	}
	// Crude fallback: the text appears anywhere on the page.
	return b.evalBool(fmt.Sprintf(`document.body.innerText.includes(%q)`, message), 3*time.Second)
}
