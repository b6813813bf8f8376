package main

import (
	"bytes"
	"encoding/json"
	"net/http"
)

const (
	colorGreen = 3066993
	colorRed   = 15158332
)

type notifier struct {
	webhook string
}

func newNotifier(url string) *notifier {
	return &notifier{webhook: url}
}

// send posts a Discord-style embed. A missing webhook makes this a no-op;
// the webhook is a convenience, never a dependency of the flow itself.
func (n *notifier) send(title, description string, color int) {
	if n.webhook == "" {
		return
	}
	payload := map[string]any{
		"embeds": []map[string]any{
			{
				"title":       title,
				"description": description,
				"color":       color,
			},
		},
	}
	data, _ := json.Marshal(payload)
	resp, err := http.Post(n.webhook, "application/json", bytes.NewBuffer(data))
	if err != nil {
		log.Printf("Failed to send webhook notification: %v", err)
		return
	}
	defer resp.Body.Close()
	log.Printf("Sent notification: %s", title)
}

// sendOutcome reports one send-flow run.
func (n *notifier) sendOutcome(err error) {
	if err == nil {
		n.send("Streak message sent", "Daily message delivered.", colorGreen)
		return
	}
	n.send("Streak message failed", err.Error(), colorRed)
}
