package websocket

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// EventType represents the type of event (created, updated, deleted)
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeDeleted EventType = "deleted"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeTransaction EntityType = "transaction"
	EntityTypeCategory    EntityType = "category"
)

// EntityTypes lists every entity a client may subscribe to
var EntityTypes = []EntityType{EntityTypeTransaction, EntityTypeCategory}

// ParseEntityTypes parses a comma separated topic list such as "transaction,category"
func ParseEntityTypes(raw string) ([]EntityType, error) {
	var topics []EntityType
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		topic := EntityType(part)
		if topic != EntityTypeTransaction && topic != EntityTypeCategory {
			return nil, fmt.Errorf("unknown topic %q", part)
		}
		topics = append(topics, topic)
	}
	return topics, nil
}

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string     `json:"type"`      // Combined type e.g. "transaction.created"
	Entity    EntityType `json:"entity"`    // Entity type e.g. "transaction"
	Payload   any        `json:"payload"`   // Entity data or a bulk change summary
	Timestamp time.Time  `json:"timestamp"` // Event timestamp
}

// BulkChange is the payload of events produced by filter-based updates and deletes
type BulkChange struct {
	Filters map[string]any `json:"filters,omitempty"`
	Count   int64          `json:"count"`
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload any) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TransactionCreated creates a transaction.created event
func TransactionCreated(payload any) Event {
	return NewEvent(EventTypeCreated, EntityTypeTransaction, payload)
}

// TransactionUpdated creates a transaction.updated event
func TransactionUpdated(payload any) Event {
	return NewEvent(EventTypeUpdated, EntityTypeTransaction, payload)
}

// TransactionDeleted creates a transaction.deleted event
func TransactionDeleted(payload any) Event {
	return NewEvent(EventTypeDeleted, EntityTypeTransaction, payload)
}

// CategoryCreated creates a category.created event
func CategoryCreated(payload any) Event {
	return NewEvent(EventTypeCreated, EntityTypeCategory, payload)
}

// CategoryUpdated creates a category.updated event
func CategoryUpdated(payload any) Event {
	return NewEvent(EventTypeUpdated, EntityTypeCategory, payload)
}

// CategoryDeleted creates a category.deleted event
func CategoryDeleted(payload any) Event {
	return NewEvent(EventTypeDeleted, EntityTypeCategory, payload)
}
