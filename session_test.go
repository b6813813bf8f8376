package main

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// A corrupt token has the same operator remedy as an expired one (redo the
// capture), so it must land in the session exit class, not the generic one.
func TestDecodeSessionRejectsGarbage(t *testing.T) {
	_, err := decodeSession("not-base64!!")
	if !errors.Is(err, errSessionInvalid) {
		t.Fatalf("invalid base64: got %v, want errSessionInvalid", err)
	}
	junk := base64.StdEncoding.EncodeToString([]byte("{not json"))
	if _, err := decodeSession(junk); !errors.Is(err, errSessionInvalid) {
		t.Fatalf("invalid JSON: got %v, want errSessionInvalid", err)
	}
	if exitCode(err) != exitSession {
		t.Errorf("exit code = %d, want %d", exitCode(err), exitSession)
	}
}

func TestLoadSessionCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	if err := os.WriteFile(path, []byte("{broken"), 0600); err != nil {
		t.Fatal(err)
	}

	_, _, err := loadSession(&Config{CookiesFile: path})
	if !errors.Is(err, errSessionInvalid) {
		t.Fatalf("got %v, want errSessionInvalid", err)
	}
	if exitCode(err) != exitSession {
		t.Errorf("exit code = %d, want %d", exitCode(err), exitSession)
	}
}

// A token captured by the login flow must replay into the same cookies the
// send flow injects.
func TestSessionRoundTrip(t *testing.T) {
	captured := &storageState{Cookies: []cookie{{
		Name:     "sessionid",
		Value:    "abc123",
		Domain:   ".tiktok.com",
		Path:     "/",
		Expires:  1900000000,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
	}}}

	replayed, err := decodeSession(captured.encode())
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(replayed.Cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(replayed.Cookies))
	}
	if replayed.Cookies[0] != captured.Cookies[0] {
		t.Errorf("cookie changed in transit:\n got %+v\nwant %+v", replayed.Cookies[0], captured.Cookies[0])
	}
}

func TestLoadSessionPrefersEnvOverFile(t *testing.T) {
	dir := t.TempDir()
	fileState := &storageState{Cookies: []cookie{{Name: "sessionid", Value: "from-file"}}}
	path := filepath.Join(dir, "cookies.json")
	if err := fileState.saveFile(path); err != nil {
		t.Fatalf("saveFile failed: %v", err)
	}

	envState := &storageState{Cookies: []cookie{{Name: "sessionid", Value: "from-env"}}}
	cfg := &Config{CookiesB64: envState.encode(), CookiesFile: path}

	state, fromEnv, err := loadSession(cfg)
	if err != nil {
		t.Fatalf("loadSession failed: %v", err)
	}
	if !fromEnv {
		t.Error("expected fromEnv=true when TIKTOK_COOKIES_B64 is set")
	}
	if state.Cookies[0].Value != "from-env" {
		t.Errorf("got value %q, want env token to win", state.Cookies[0].Value)
	}

	cfg.CookiesB64 = ""
	state, fromEnv, err = loadSession(cfg)
	if err != nil {
		t.Fatalf("loadSession from file failed: %v", err)
	}
	if fromEnv {
		t.Error("expected fromEnv=false when reading the local file")
	}
	if state.Cookies[0].Value != "from-file" {
		t.Errorf("got value %q, want file token", state.Cookies[0].Value)
	}
}

func TestLoadSessionMissingEverywhere(t *testing.T) {
	cfg := &Config{CookiesFile: filepath.Join(t.TempDir(), "absent.json")}
	_, _, err := loadSession(cfg)
	if !errors.Is(err, errNoSession) {
		t.Fatalf("got %v, want errNoSession", err)
	}
}

func TestSessionFromSessionID(t *testing.T) {
	state := sessionFromSessionID("tok-123")

	want := map[string]bool{"sessionid": true, "sessionid_ss": true, "sid_tt": true}
	if len(state.Cookies) != len(want) {
		t.Fatalf("got %d cookies, want %d", len(state.Cookies), len(want))
	}
	for _, c := range state.Cookies {
		if !want[c.Name] {
			t.Errorf("unexpected cookie %q", c.Name)
		}
		if c.Value != "tok-123" {
			t.Errorf("cookie %s value = %q, want tok-123", c.Name, c.Value)
		}
		if c.Domain != ".tiktok.com" || !c.HTTPOnly || !c.Secure {
			t.Errorf("cookie %s has wrong attributes: %+v", c.Name, c)
		}
	}
}
