package main

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// recipient is the parsed form of TIKTOK_RECIPIENT.
type recipient struct {
	display string
	handle  string // without the leading @
}

// parseRecipient splits the configured identifier. "Display|@handle" gives
// both; a bare "@handle" gives only the handle; anything else is treated as
// a display name.
func parseRecipient(raw string) recipient {
	raw = strings.TrimSpace(raw)
	if display, handle, ok := strings.Cut(raw, "|"); ok {
		return recipient{
			display: strings.TrimSpace(display),
			handle:  strings.TrimPrefix(strings.TrimSpace(handle), "@"),
		}
	}
	if strings.HasPrefix(raw, "@") {
		return recipient{handle: strings.TrimPrefix(raw, "@")}
	}
	return recipient{display: raw}
}

// resolutionStrategy is one way of turning a recipient into an open
// conversation. Strategies are tried in order until one reports found.
type resolutionStrategy interface {
	name() string
	resolve(ctx context.Context) (bool, error)
}

// resolveConversation runs the strategy chain. A strategy error is logged
// and the next strategy is tried; only exhaustion is fatal.
func resolveConversation(ctx context.Context, strategies []resolutionStrategy) error {
	for _, s := range strategies {
		log.Printf("Trying resolution strategy: %s", s.name())
		found, err := s.resolve(ctx)
		if err != nil {
			log.Printf("Strategy %s failed: %v", s.name(), err)
			continue
		}
		if found {
			log.Printf("Conversation opened via %s", s.name())
			return nil
		}
		log.Printf("Strategy %s: no match", s.name())
	}
	return errConversationNotFound
}

// buildStrategies orders the chain for a recipient: exact display-name match
// in the existing conversation list first, profile lookup by handle second.
func buildStrategies(b *Browser, r recipient) []resolutionStrategy {
	var strategies []resolutionStrategy
	if r.display != "" {
		strategies = append(strategies, &conversationListStrategy{browser: b, display: r.display})
	}
	if r.handle != "" {
		strategies = append(strategies, &profileStrategy{browser: b, handle: r.handle})
	}
	return strategies
}

// conversationListStrategy scans the messages inbox for an entry whose text
// matches the display name, scrolling the list as it goes.
type conversationListStrategy struct {
	browser *Browser
	display string
}

func (s *conversationListStrategy) name() string { return "conversation-list" }

// Navigation chrome that also shows up in body text and must not count as
// a loaded conversation entry.
var navLines = map[string]bool{
	"TikTok": true, "For You": true, "Shop": true, "Explore": true,
	"Following": true, "Friends": true, "LIVE": true, "Messages": true,
	"Activity": true, "Upload": true, "Profile": true, "More": true,
	"Post video": true,
}

func (s *conversationListStrategy) waitForList(ctx context.Context) {
	log.Println("Waiting for conversations to load...")
	for attempt := 1; attempt <= 15; attempt++ {
		select {
		case <-ctx.Done():
			return
		case <-time.After(2 * time.Second):
		}

		body, err := s.browser.evalString(`document.body.innerText`, 5*time.Second)
		if err != nil {
			continue
		}
		var nonNav int
		for _, line := range strings.Split(body, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || navLines[line] || isDigits(line) {
				continue
			}
			nonNav++
		}
		if nonNav > 3 {
			log.Printf("Conversations loaded (attempt %d)", attempt)
			return
		}
		log.Printf("Still loading... (attempt %d)", attempt)
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// matchConversationJS finds a leaf element whose text matches the display
// name and clicks the enclosing list entry.
func matchConversationJS(display string, exact bool) string {
	cond := `el.textContent.trim() === name`
	if !exact {
		cond = `el.textContent.includes(name)`
	}
	return fmt.Sprintf(`
		(() => {
			const name = %q;
			const leaves = Array.from(document.querySelectorAll('p, span, div'))
				.filter(el => el.children.length === 0 && el.offsetParent !== null);
			const hit = leaves.find(el => %s);
			if (!hit) return false;
			let node = hit;
			for (let i = 0; node && i < 8; i++) {
				const e2e = node.getAttribute && node.getAttribute('data-e2e');
				if (e2e === 'chat-list-item' || node.tagName === 'A' || node.tagName === 'LI' ||
					(node.getAttribute && node.getAttribute('role') === 'listitem')) break;
				node = node.parentElement;
			}
			(node || hit).click();
			return true;
		})()`, display, cond)
}

const scrollListJS = `
	(() => {
		const list = document.querySelector('[data-e2e="chat-list"], [class*="ChatList"], [class*="chat-list"]');
		(list || window).scrollBy(0, 500);
		return true;
	})()`

func (s *conversationListStrategy) resolve(ctx context.Context) (bool, error) {
	log.Printf("Looking for conversation with display name: %s", s.display)

	if err := s.browser.Navigate(messagesURL); err != nil {
		return false, err
	}
	s.waitForList(ctx)
	s.browser.Screenshot("messages-page")

	for attempt := 1; attempt <= 10; attempt++ {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if s.browser.evalBool(matchConversationJS(s.display, true), 5*time.Second) {
			log.Println("Found conversation via exact text match")
			time.Sleep(3 * time.Second)
			return true, nil
		}
		if s.browser.evalBool(matchConversationJS(s.display, false), 5*time.Second) {
			log.Println("Found conversation via partial text match")
			time.Sleep(3 * time.Second)
			return true, nil
		}
		if attempt < 10 {
			log.Printf("Not found yet, scrolling... (attempt %d)", attempt)
			s.browser.evalBool(scrollListJS, 3*time.Second)
			time.Sleep(1500 * time.Millisecond)
		}
	}
	return false, nil
}

// profileStrategy opens the recipient's profile page and clicks the Message
// button, which lands directly in a composer.
type profileStrategy struct {
	browser *Browser
	handle  string
}

func (s *profileStrategy) name() string { return "profile-message-button" }

const messageButtonJS = `
	(() => {
		const direct = document.querySelector('[data-e2e="message-button"]');
		if (direct) { direct.click(); return true; }
		const candidates = Array.from(document.querySelectorAll('button, a'));
		const btn = candidates.find(el => {
			const text = (el.textContent || '').trim();
			const label = (el.getAttribute('aria-label') || '').toLowerCase();
			return text === 'Message' || label.includes('message');
		});
		if (!btn) return false;
		btn.click();
		return true;
	})()`

func (s *profileStrategy) resolve(ctx context.Context) (bool, error) {
	log.Printf("Looking up user profile: @%s", s.handle)

	if err := s.browser.Navigate(fmt.Sprintf(profileURL, s.handle)); err != nil {
		return false, err
	}
	time.Sleep(3 * time.Second)
	s.browser.Screenshot("user-profile")

	// The button renders late on slow runners; poll for a while.
	deadline := time.Now().Add(stepTimeout)
	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if s.browser.evalBool(messageButtonJS, 3*time.Second) {
			log.Println("Found message button on profile")
			time.Sleep(3 * time.Second)
			return true, nil
		}
		time.Sleep(time.Second)
	}
	log.Println("Could not find message button on profile")
	return false, nil
}
