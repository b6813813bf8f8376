package main

import "github.com/atotto/clipboard"

// copyToClipboard puts text on the system clipboard. Returns false instead
// of an error when no clipboard is available (SSH session, bare CI runner)
// so callers can fall back to printing the value.
func copyToClipboard(text string) bool {
	if clipboard.Unsupported {
		return false
	}
	return clipboard.WriteAll(text) == nil
}
