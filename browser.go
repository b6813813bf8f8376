package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"
)

const (
	loginURL    = "https://www.tiktok.com/login"
	messagesURL = "https://www.tiktok.com/messages"
	profileURL  = "https://www.tiktok.com/@%s"

	cookieDomain = "tiktok.com"

	// Desktop UA so the headless session looks like a regular browser.
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/120.0.0.0 Safari/537.36"

	navTimeout  = 60 * time.Second
	stepTimeout = 10 * time.Second
)

// Browser wraps a chromedp context for one flow invocation.
type Browser struct {
	ctx           context.Context
	cancel        context.CancelFunc
	screenshotDir string
}

// newBrowser launches a fresh browser instance. headless=false opens a
// visible window, which the login flow needs for manual authentication.
func newBrowser(cfg *Config, headless bool) (*Browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.UserAgent(userAgent),
		chromedp.WindowSize(1280, 800),
	)
	if cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ChromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancel2 := chromedp.NewContext(allocCtx, chromedp.WithLogf(log.Printf))

	combinedCancel := func() {
		cancel2()
		cancel()
	}

	return &Browser{
		ctx:           ctx,
		cancel:        combinedCancel,
		screenshotDir: cfg.ScreenshotDir,
	}, nil
}

// Close cleans up resources
func (b *Browser) Close() {
	b.cancel()
}

// Navigate loads a URL and waits for the body, bounded by navTimeout so a
// hung page surfaces as an error instead of stalling the scheduler.
func (b *Browser) Navigate(url string) error {
	ctx, cancel := context.WithTimeout(b.ctx, navTimeout)
	defer cancel()

	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	)
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// CurrentURL returns the current page URL.
func (b *Browser) CurrentURL() (string, error) {
	ctx, cancel := context.WithTimeout(b.ctx, stepTimeout)
	defer cancel()

	var url string
	err := chromedp.Run(ctx, chromedp.Location(&url))
	return url, err
}

// Screenshot saves a debug screenshot and logs where we were when it was
// taken, so CI failures are diagnosable from artifacts alone.
func (b *Browser) Screenshot(name string) {
	ctx, cancel := context.WithTimeout(b.ctx, stepTimeout)
	defer cancel()

	var buf []byte
	if err := chromedp.Run(ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		log.Printf("Could not take screenshot %s: %v", name, err)
		return
	}

	path := filepath.Join(b.screenshotDir, name+".png")
	if err := os.WriteFile(path, buf, 0644); err != nil {
		log.Printf("Could not save screenshot %s: %v", path, err)
		return
	}
	log.Printf("Debug screenshot saved to %s", path)
	if url, err := b.CurrentURL(); err == nil {
		log.Printf("Current URL: %s", url)
	}
}

// evalBool runs a JS expression expected to yield a boolean. Errors and
// timeouts count as false; probes must never hang a run.
func (b *Browser) evalBool(js string, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(b.ctx, timeout)
	defer cancel()

	var out bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(js, &out)); err != nil {
		return false
	}
	return out
}

// evalString runs a JS expression expected to yield a string.
func (b *Browser) evalString(js string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(b.ctx, timeout)
	defer cancel()

	var out string
	err := chromedp.Run(ctx, chromedp.Evaluate(js, &out))
	return out, err
}

// clickFirst tries each selector in order and reports which one worked.
// Selector lists are the fallback mechanism for UI drift: the first
// selector is today's markup, the rest are older or more generic forms.
func (b *Browser) clickFirst(selectors []string) (string, bool) {
	for _, sel := range selectors {
		ctx, cancel := context.WithTimeout(b.ctx, 3*time.Second)
		err := chromedp.Run(ctx,
			chromedp.WaitVisible(sel, chromedp.ByQuery),
			chromedp.Click(sel, chromedp.ByQuery),
		)
		cancel()
		if err == nil {
			return sel, true
		}
	}
	return "", false
}

// SetCookies injects the restored session into the browser before any
// navigation, so the first page load is already authenticated.
func (b *Browser) SetCookies(state *storageState) error {
	return chromedp.Run(b.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		for _, c := range state.Cookies {
			p := network.SetCookie(c.Name, c.Value).
				WithDomain(c.Domain).
				WithPath(c.Path).
				WithHTTPOnly(c.HTTPOnly).
				WithSecure(c.Secure)
			if c.SameSite != "" {
				p = p.WithSameSite(network.CookieSameSite(c.SameSite))
			}
			if c.Expires > 0 {
				exp := cdp.TimeSinceEpoch(time.Unix(int64(c.Expires), 0))
				p = p.WithExpires(&exp)
			}
			if err := p.Do(ctx); err != nil {
				return fmt.Errorf("failed to set cookie %s: %w", c.Name, err)
			}
		}
		return nil
	}))
}

// DumpCookies extracts all cookies whose domain matches domainSuffix, in
// storage-state form ready for serialization.
func (b *Browser) DumpCookies(domainSuffix string) (*storageState, error) {
	state := &storageState{Origins: []json.RawMessage{}}
	err := chromedp.Run(b.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		cookies, err := storage.GetCookies().Do(ctx)
		if err != nil {
			return fmt.Errorf("failed to read cookies: %w", err)
		}
		for _, c := range cookies {
			if !strings.Contains(c.Domain, domainSuffix) {
				continue
			}
			state.Cookies = append(state.Cookies, cookie{
				Name:     c.Name,
				Value:    c.Value,
				Domain:   c.Domain,
				Path:     c.Path,
				Expires:  c.Expires,
				HTTPOnly: c.HTTPOnly,
				Secure:   c.Secure,
				SameSite: string(c.SameSite),
			})
		}
		return nil
	}))
	if err != nil {
		return nil, err
	}
	return state, nil
}
