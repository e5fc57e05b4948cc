package user

import "context"

// UserRepository defines data access methods for the user directory.
type UserRepository interface {
	// GetByID retrieves a user by id
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail retrieves a user by email, used by login
	GetByEmail(ctx context.Context, email string) (User, error)

	// ListIDsByRole returns the ids of all users holding role.
	// Used to scope a manager's attendance view to the employee population.
	ListIDsByRole(ctx context.Context, role Role) ([]string, error)
}
