package outbox

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrMessageIsNotConstructed is returned when a Message was not created
// through NewMessage or RestoreMessage.
var ErrMessageIsNotConstructed = errors.New("message must be created via NewMessage or RestoreMessage")

// Status is the relay state of an outbox message.
type Status int

const (
	// StatusUnknown is the zero value and never valid.
	StatusUnknown Status = iota

	// StatusCreated means the message waits for its first publish attempt.
	StatusCreated

	// StatusProcessing means a relay picked the message up.
	StatusProcessing

	// StatusDone means the message reached the broker.
	StatusDone

	// StatusFailed means the message exhausted its publish attempts.
	StatusFailed
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusProcessing:
		return "processing"
	case StatusDone:
		return "done"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Validate checks that the status is one of the known relay states.
func (s Status) Validate() error {
	switch s {
	case StatusCreated, StatusProcessing, StatusDone, StatusFailed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid outbox status", s),
		)
	}
}

// Message is one integration event waiting in the transactional outbox.
// It is written in the same transaction as the state change it announces
// and relayed to the broker afterwards.
type Message struct {
	id        kernel.UUID
	topic     string
	key       string
	payload   []byte
	status    Status
	attempts  int
	lastError string
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewMessage creates an outbox message in the created state.
//
// Parameters:
//   - topic: destination topic, must not be empty
//   - key: partition key, may be empty
//   - payload: serialized event body, must not be empty
//   - now: enqueue time
func NewMessage(topic string, key string, payload []byte, now time.Time) (*Message, error) {
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}

	if len(payload) == 0 {
		return nil, errs.NewValueIsRequiredError("payload")
	}

	if now.IsZero() {
		return nil, errs.NewValueIsRequiredError("now")
	}

	return &Message{
		id:            kernel.NewUUID(),
		topic:         topic,
		key:           key,
		payload:       payload,
		status:        StatusCreated,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreMessage reconstitutes a message from storage.
func RestoreMessage(
	id kernel.UUID,
	topic string,
	key string,
	payload []byte,
	status Status,
	attempts int,
	lastError string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Message, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}

	if attempts < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"attempts",
			fmt.Errorf("%d is negative", attempts),
		)
	}

	return &Message{
		id:            id,
		topic:         topic,
		key:           key,
		payload:       payload,
		status:        status,
		attempts:      attempts,
		lastError:     lastError,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate checks that the message was properly constructed.
func (m *Message) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMessageIsNotConstructed
	}

	return nil
}

// ID returns the message identifier.
func (m *Message) ID() kernel.UUID {
	return m.id
}

// Topic returns the destination topic.
func (m *Message) Topic() string {
	return m.topic
}

// Key returns the partition key.
func (m *Message) Key() string {
	return m.key
}

// Payload returns the serialized event body.
func (m *Message) Payload() []byte {
	return m.payload
}

// Status returns the relay state.
func (m *Message) Status() Status {
	return m.status
}

// Attempts returns how many publish attempts were made.
func (m *Message) Attempts() int {
	return m.attempts
}

// LastError returns the failure recorded by the last attempt, if any.
func (m *Message) LastError() string {
	return m.lastError
}

// CreatedAt returns the enqueue time.
func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

// UpdatedAt returns the time of the last state change.
func (m *Message) UpdatedAt() time.Time {
	return m.updatedAt
}

// MarkProcessing records that a relay picked the message up and counts
// the attempt.
func (m *Message) MarkProcessing(now time.Time) {
	m.status = StatusProcessing
	m.attempts++
	m.updatedAt = now
}

// MarkDone records a successful publish.
func (m *Message) MarkDone(now time.Time) {
	m.status = StatusDone
	m.lastError = ""
	m.updatedAt = now
}

// MarkFailed records a failed attempt. The message returns to the created
// state for a retry until maxAttempts is exhausted, then parks as failed.
func (m *Message) MarkFailed(now time.Time, cause error, maxAttempts int) {
	if cause != nil {
		m.lastError = cause.Error()
	}

	if m.attempts >= maxAttempts {
		m.status = StatusFailed
	} else {
		m.status = StatusCreated
	}

	m.updatedAt = now
}
