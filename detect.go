package main

import (
	"strings"
	"time"
)

type pageState int

const (
	stateUnknown pageState = iota
	stateAuthenticated
	stateSessionExpired
	stateChallenge
)

func (s pageState) String() string {
	switch s {
	case stateAuthenticated:
		return "authenticated"
	case stateSessionExpired:
		return "session expired"
	case stateChallenge:
		return "anti-automation challenge"
	default:
		return "unknown"
	}
}

// probe is one boolean DOM check. These selectors track TikTok's markup and
// are expected to need maintenance; adding or fixing one is a table edit,
// not a flow change. Run with -inspect to see what the current page offers.
type probe struct {
	name string
	js   string
}

var challengeProbes = []probe{
	{"captcha-container", `document.querySelector('.captcha_verify_container, #captcha_container, [class*="captcha"]') !== null`},
	{"verify-iframe", `document.querySelector('iframe[src*="verify"], iframe[src*="captcha"]') !== null`},
	{"rotate-puzzle", `document.querySelector('[class*="secsdk"], [id*="secsdk"]') !== null`},
}

var authenticatedProbes = []probe{
	{"chat-list", `document.querySelector('[data-e2e="chat-list-item"], [data-e2e="chat-list"]') !== null`},
	{"message-title", `document.querySelector('[data-e2e="message-title"]') !== null`},
	{"profile-icon", `document.querySelector('[data-e2e="profile-icon"], [data-e2e="nav-profile"]') !== null`},
}

// probeResults is the raw evidence gathered from one page.
type probeResults struct {
	url           string
	challenge     bool
	authenticated bool
}

// classify turns probe evidence into a page state. A challenge wins over
// everything: a captcha page often still carries the login URL, and acting
// on it as "expired" would prompt a pointless re-login.
func classify(r probeResults) pageState {
	switch {
	case r.challenge:
		return stateChallenge
	case strings.Contains(r.url, "/login"):
		return stateSessionExpired
	case r.authenticated:
		return stateAuthenticated
	default:
		return stateUnknown
	}
}

func anyProbe(b *Browser, probes []probe) bool {
	for _, p := range probes {
		if b.evalBool(p.js, 3*time.Second) {
			log.Printf("Probe matched: %s", p.name)
			return true
		}
	}
	return false
}

// pageState inspects the current page and classifies it.
func (b *Browser) pageState() pageState {
	url, err := b.CurrentURL()
	if err != nil {
		log.Printf("Could not read current URL: %v", err)
		return stateUnknown
	}
	return classify(probeResults{
		url:           url,
		challenge:     anyProbe(b, challengeProbes),
		authenticated: anyProbe(b, authenticatedProbes),
	})
}
