package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
)

// cookie matches one entry of Playwright's storage_state JSON, which is the
// on-disk and in-secret format this tool has always used. Keeping the shape
// means tokens exported by older setups keep working.
type cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires,omitempty"`
	HTTPOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
	SameSite string  `json:"sameSite,omitempty"`
}

type storageState struct {
	Cookies []cookie          `json:"cookies"`
	Origins []json.RawMessage `json:"origins"`
}

func decodeSession(b64 string) (*storageState, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("%w (not valid base64: %v)", errSessionInvalid, err)
	}
	var state storageState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("%w (not valid storage state JSON: %v)", errSessionInvalid, err)
	}
	return &state, nil
}

func (s *storageState) encode() string {
	raw, _ := json.Marshal(s)
	return base64.StdEncoding.EncodeToString(raw)
}

func (s *storageState) saveFile(path string) error {
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0600)
}

// loadSession resolves the session token, env var first then the local file.
// The boolean reports whether the token came from the environment, in which
// case the send flow must not write refreshed cookies back to disk.
func loadSession(cfg *Config) (*storageState, bool, error) {
	if cfg.CookiesB64 != "" {
		log.Println("Loading cookies from TIKTOK_COOKIES_B64 environment variable")
		state, err := decodeSession(cfg.CookiesB64)
		return state, true, err
	}

	raw, err := os.ReadFile(cfg.CookiesFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, errNoSession
		}
		return nil, false, fmt.Errorf("reading %s: %w", cfg.CookiesFile, err)
	}
	log.Printf("Loading cookies from %s", cfg.CookiesFile)
	var state storageState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, false, fmt.Errorf("%w (%s is not valid storage state JSON: %v)", errSessionInvalid, cfg.CookiesFile, err)
	}
	return &state, false, nil
}

// sessionFromSessionID expands a manually copied sessionid cookie value into
// the three cookies TikTok expects for an authenticated session.
func sessionFromSessionID(sessionID string) *storageState {
	state := &storageState{Origins: []json.RawMessage{}}
	for _, name := range []string{"sessionid", "sessionid_ss", "sid_tt"} {
		state.Cookies = append(state.Cookies, cookie{
			Name:     name,
			Value:    sessionID,
			Domain:   ".tiktok.com",
			Path:     "/",
			HTTPOnly: true,
			Secure:   true,
			SameSite: "None",
		})
	}
	return state
}
