package ports

import "context"

// Notifier delivers a human-readable message to a customer or pilot contact.
// Callers treat delivery as fire-and-forget: a notification failure is logged
// and never rolls back the state change that triggered it.
type Notifier interface {
	Notify(ctx context.Context, recipientContact string, message string) error
}
