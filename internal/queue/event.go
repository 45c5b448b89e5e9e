// Package queue defines message payloads exchanged over the message broker.
package queue

// EmailOutboundEvent is published for every email the platform wants sent:
// email-change verification links, ticket replies, donation receipts. The
// consumer is the transport; publishers never wait for delivery. Context
// carries template variables such as the verification link, so the raw
// secret only ever travels over the broker toward the recipient, never back
// to the requesting client.
type EmailOutboundEvent struct {
	To       string            `json:"to"`
	Template string            `json:"template"`
	Context  map[string]string `json:"context,omitempty"`
	QueuedAt string            `json:"queued_at"`
}
