package models

import (
	"time"
)

type Category struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Attributes []string  `json:"attributes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

// CategoryInput is the body accepted when creating or editing a category.
type CategoryInput struct {
	Name       string   `json:"name"`
	Attributes []string `json:"attributes"`
}

// AttributeEdit is a single pinned-list mutation requested by a client.
type AttributeEdit struct {
	Attributes []string `json:"attributes"`
	Value      string   `json:"value,omitempty"`
	Index      int      `json:"index,omitempty"`
}
