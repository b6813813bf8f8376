package main

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestParseRecipient(t *testing.T) {
	tests := []struct {
		raw     string
		display string
		handle  string
	}{
		{"John Doe|@johndoe", "John Doe", "johndoe"},
		{"John Doe | @johndoe", "John Doe", "johndoe"},
		{"@johndoe", "", "johndoe"},
		{"John Doe", "John Doe", ""},
		{"John Doe|johndoe", "John Doe", "johndoe"},
		{"  Spacey Name  ", "Spacey Name", ""},
	}

	for _, tt := range tests {
		got := parseRecipient(tt.raw)
		if got.display != tt.display || got.handle != tt.handle {
			t.Errorf("parseRecipient(%q) = %+v, want display=%q handle=%q",
				tt.raw, got, tt.display, tt.handle)
		}
	}
}

// fakeStrategy records whether it ran, so chain ordering is observable.
type fakeStrategy struct {
	label string
	found bool
	err   error
	ran   bool
}

func (f *fakeStrategy) name() string { return f.label }

func (f *fakeStrategy) resolve(ctx context.Context) (bool, error) {
	f.ran = true
	return f.found, f.err
}

func TestResolveStopsAtFirstMatch(t *testing.T) {
	first := &fakeStrategy{label: "list", found: true}
	second := &fakeStrategy{label: "profile"}

	err := resolveConversation(context.Background(), []resolutionStrategy{first, second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.ran {
		t.Error("first strategy never ran")
	}
	if second.ran {
		t.Error("search fallback ran even though the list matched")
	}
}

func TestResolveFallsBackOnMiss(t *testing.T) {
	first := &fakeStrategy{label: "list", found: false}
	second := &fakeStrategy{label: "profile", found: true}

	if err := resolveConversation(context.Background(), []resolutionStrategy{first, second}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.ran {
		t.Error("fallback strategy never ran")
	}
}

func TestResolveFallsBackOnStrategyError(t *testing.T) {
	first := &fakeStrategy{label: "list", err: fmt.Errorf("list did not render")}
	second := &fakeStrategy{label: "profile", found: true}

	if err := resolveConversation(context.Background(), []resolutionStrategy{first, second}); err != nil {
		t.Fatalf("a strategy error must not end the chain: %v", err)
	}
}

func TestResolveExhaustionIsDistinct(t *testing.T) {
	first := &fakeStrategy{label: "list"}
	second := &fakeStrategy{label: "profile"}

	err := resolveConversation(context.Background(), []resolutionStrategy{first, second})
	if !errors.Is(err, errConversationNotFound) {
		t.Fatalf("got %v, want errConversationNotFound", err)
	}
	if exitCode(err) != exitResolution {
		t.Errorf("exit code = %d, want %d", exitCode(err), exitResolution)
	}
}

func TestBuildStrategiesOrder(t *testing.T) {
	b := &Browser{}

	both := buildStrategies(b, recipient{display: "John Doe", handle: "johndoe"})
	if len(both) != 2 || both[0].name() != "conversation-list" || both[1].name() != "profile-message-button" {
		t.Fatalf("display+handle: wrong chain %v", strategyNames(both))
	}

	handleOnly := buildStrategies(b, recipient{handle: "johndoe"})
	if len(handleOnly) != 1 || handleOnly[0].name() != "profile-message-button" {
		t.Fatalf("handle only: wrong chain %v", strategyNames(handleOnly))
	}

	displayOnly := buildStrategies(b, recipient{display: "John Doe"})
	if len(displayOnly) != 1 || displayOnly[0].name() != "conversation-list" {
		t.Fatalf("display only: wrong chain %v", strategyNames(displayOnly))
	}
}

func strategyNames(ss []resolutionStrategy) []string {
	names := make([]string, len(ss))
	for i, s := range ss {
		names[i] = s.name()
	}
	return names
}
