// Package domain contains the core data types for the train reservation service.
// Trips and tickets carry their own behaviour; every other internal package
// (repo, service, handler) builds on these types.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// City is a named place trips run between.
// Identity for reservation purposes is the name: two City values with the
// same name are interchangeable.
type City struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// Is reports whether c and other name the same city.
func (c City) Is(other City) bool {
	return c.Name == other.Name
}
