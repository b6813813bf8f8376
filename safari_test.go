package main

import "testing"

func TestParseCookieString(t *testing.T) {
	state := parseCookieString("sessionid=abc123; tt_csrf_token=xyz; theme=dark")

	if len(state.Cookies) != 3 {
		t.Fatalf("got %d cookies, want 3", len(state.Cookies))
	}
	first := state.Cookies[0]
	if first.Name != "sessionid" || first.Value != "abc123" {
		t.Errorf("first cookie = %+v, want sessionid=abc123", first)
	}
	for _, c := range state.Cookies {
		if c.Domain != ".tiktok.com" || c.Path != "/" || !c.Secure {
			t.Errorf("cookie %s has wrong attributes: %+v", c.Name, c)
		}
	}
}

func TestParseCookieStringSkipsMalformedPairs(t *testing.T) {
	state := parseCookieString("novalue; sessionid=abc; =orphan")

	if len(state.Cookies) != 1 {
		t.Fatalf("got %d cookies, want only the well-formed pair", len(state.Cookies))
	}
	if state.Cookies[0].Name != "sessionid" {
		t.Errorf("kept cookie %q, want sessionid", state.Cookies[0].Name)
	}
}

func TestParseCookieStringEmpty(t *testing.T) {
	if got := parseCookieString(""); len(got.Cookies) != 0 {
		t.Fatalf("empty input produced %d cookies", len(got.Cookies))
	}
}

// An imported Safari session must survive the same token round trip the
// other capture modes use.
func TestParseCookieStringRoundTrip(t *testing.T) {
	state := parseCookieString("sessionid=abc123")
	replayed, err := decodeSession(state.encode())
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(replayed.Cookies) != 1 || replayed.Cookies[0].Value != "abc123" {
		t.Fatalf("round trip changed cookies: %+v", replayed.Cookies)
	}
}
