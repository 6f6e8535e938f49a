package shared

import "time"

// Entity is implemented by every stored record
type Entity interface {
	GetID() int64
}

// BaseEntity provides the store-assigned identifier.
// Ids are per entity type, start at 1 and are never reused.
type BaseEntity struct {
	ID int64 `json:"id"`
}

// GetID returns the entity ID
func (e BaseEntity) GetID() int64 {
	return e.ID
}

// Clock supplies the current time for defaulted date fields.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now()
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant
func (c FixedClock) Now() time.Time { return c.T }
