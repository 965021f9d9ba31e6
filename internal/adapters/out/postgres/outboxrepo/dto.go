// Package outboxrepo provides data transfer objects and mapping functions for
// the transactional outbox. Messages are written in the same transaction as
// the state change they announce and picked up later by the relay job.
package outboxrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/outbox"

	"github.com/google/uuid"
)

// MessageDTO represents the database structure for persisting outbox messages.
// Relay timestamps are owned by the domain message, so GORM's automatic
// created_at/updated_at handling is switched off.
type MessageDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Topic     string    `gorm:"type:varchar(255);not null"`
	Key       string    `gorm:"type:varchar(255);not null"`
	Payload   []byte    `gorm:"type:bytea;not null"`
	Status    int       `gorm:"type:int;not null;index"`
	Attempts  int       `gorm:"type:int;not null"`
	LastError string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName specifies the database table name for outbox messages.
// Overrides GORM's default naming convention to use "outbox_messages".
func (MessageDTO) TableName() string {
	return "outbox_messages"
}

// fromDomain converts an outbox message to its database representation.
func fromDomain(message *outbox.Message) MessageDTO {
	return MessageDTO{
		ID:        message.ID().Bytes(),
		Topic:     message.Topic(),
		Key:       message.Key(),
		Payload:   message.Payload(),
		Status:    int(message.Status()),
		Attempts:  message.Attempts(),
		LastError: message.LastError(),
		CreatedAt: message.CreatedAt(),
		UpdatedAt: message.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an outbox message.
func toDomain(dto MessageDTO) (*outbox.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return outbox.RestoreMessage(
		id,
		dto.Topic,
		dto.Key,
		dto.Payload,
		outbox.Status(dto.Status),
		dto.Attempts,
		dto.LastError,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
