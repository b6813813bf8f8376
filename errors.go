package main

import "errors"

// One sentinel per failure kind so the scheduler can tell apart, via exit
// code, what the operator has to fix.
var (
	errNoRecipient          = errors.New("TIKTOK_RECIPIENT is not set")
	errNoSession            = errors.New("no session found: run with -login first, or set TIKTOK_COOKIES_B64")
	errSessionInvalid       = errors.New("session token invalid: re-run with -login or -export and update the secret")
	errSessionExpired       = errors.New("session expired: re-run with -login and update the TIKTOK_COOKIES_B64 secret")
	errConversationNotFound = errors.New("conversation not found")
	errChallenge            = errors.New("anti-automation challenge presented, not retrying")
)

const (
	exitOK         = 0
	exitFailure    = 1
	exitConfig     = 2
	exitSession    = 3
	exitResolution = 4
	exitChallenge  = 5
)

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errNoRecipient):
		return exitConfig
	case errors.Is(err, errNoSession), errors.Is(err, errSessionInvalid), errors.Is(err, errSessionExpired):
		return exitSession
	case errors.Is(err, errConversationNotFound):
		return exitResolution
	case errors.Is(err, errChallenge):
		return exitChallenge
	default:
		return exitFailure
	}
}
