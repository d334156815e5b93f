// Package models defines data types for the graph service.
package models

import (
	"strings"
	"time"
)

// maxNameLength caps node names and usernames.
const maxNameLength = 255

// Node represents a named vertex in the graph.
type Node struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateNodeRequest is the payload for creating a new node.
type CreateNodeRequest struct {
	Name string `json:"name"`
}

// Validate trims the name and checks it is present and within limits.
func (r *CreateNodeRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)

	if r.Name == "" {
		return ErrMissingName
	}

	if len(r.Name) > maxNameLength {
		return ErrFieldTooLong("name", maxNameLength)
	}

	return nil
}
