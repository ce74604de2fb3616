package userconfigs

//go:generate mockgen -destination=mock/mock.go -package=mockuserconfigs -source=interface.go

import (
	"context"
)

// Repository stores named user stat profiles
type Repository interface {
	// Create stores a new profile, assigning an ID when it is empty
	Create(ctx context.Context, profile *Profile) error

	// Get retrieves a profile by ID
	Get(ctx context.Context, id string) (*Profile, error)

	// Update replaces the name and stats of an existing profile
	Update(ctx context.Context, profile *Profile) error

	// Delete removes a profile
	Delete(ctx context.Context, id string) error

	// List returns every profile sorted by name
	List(ctx context.Context) ([]*Profile, error)
}
