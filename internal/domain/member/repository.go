package member

import "context"

// MemberRepository defines the interface for member persistence
type MemberRepository interface {
	// Save inserts a new member or updates an existing one
	Save(ctx context.Context, member *Member) error
	// FindOne returns shared.ErrNotFound when no member has the ID
	FindOne(ctx context.Context, id int64) (*Member, error)
	FindAll(ctx context.Context) ([]Member, error)
	FindByName(ctx context.Context, name string) ([]Member, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}
