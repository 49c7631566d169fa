package domain

import (
	"time"

	"github.com/google/uuid"
)

// Train is a named rolling stock unit that trips are assigned to.
// Capacity is advisory: no seat-level tracking is done against it.
type Train struct {
	ID        uuid.UUID
	Name      string
	Capacity  int
	CreatedAt time.Time
}

// Is reports whether t and other name the same train.
func (t Train) Is(other Train) bool {
	return t.Name == other.Name
}
