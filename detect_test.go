package main

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   probeResults
		want pageState
	}{
		{
			name: "authenticated inbox",
			in:   probeResults{url: "https://www.tiktok.com/messages", authenticated: true},
			want: stateAuthenticated,
		},
		{
			name: "redirected to login",
			in:   probeResults{url: "https://www.tiktok.com/login?redirect_url=..."},
			want: stateSessionExpired,
		},
		{
			name: "challenge wins over login URL",
			in:   probeResults{url: "https://www.tiktok.com/login", challenge: true},
			want: stateChallenge,
		},
		{
			name: "challenge wins over authenticated markers",
			in:   probeResults{url: "https://www.tiktok.com/messages", challenge: true, authenticated: true},
			want: stateChallenge,
		},
		{
			name: "no markers at all",
			in:   probeResults{url: "https://www.tiktok.com/messages"},
			want: stateUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.in); got != tt.want {
				t.Errorf("classify(%+v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsDigits(t *testing.T) {
	for s, want := range map[string]bool{"12": true, "": false, "3a": false, "Messages": false} {
		if got := isDigits(s); got != want {
			t.Errorf("isDigits(%q) = %v, want %v", s, got, want)
		}
	}
}
