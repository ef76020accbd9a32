package catalog

import (
	"context"
	"time"
)

const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// Event announces that a category was changed by the category management side.
type Event struct {
	Type       string    `json:"type"`
	CategoryID string    `json:"category_id"`
	Name       string    `json:"name,omitempty"`
	At         time.Time `json:"at"`
}

// NewEvent stamps an event with the current time.
func NewEvent(typ, categoryID, name string) Event {
	return Event{Type: typ, CategoryID: categoryID, Name: name, At: time.Now().UTC()}
}

// Handler consumes category events.
type Handler func(ctx context.Context, ev Event)
