package identity

import "context"

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create checks username and email uniqueness and inserts in one step.
	// A collision returns DUPLICATE_KEY and consumes no id.
	Create(ctx context.Context, user *User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindByUsername finds a user by normalized username
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Update applies fn to the stored user under the store lock.
	// Unique keys are re-checked when fn changes them.
	Update(ctx context.Context, id int64, fn func(*User) error) (*User, error)

	// FindAll returns every user in insertion order
	FindAll(ctx context.Context) ([]User, error)
}
