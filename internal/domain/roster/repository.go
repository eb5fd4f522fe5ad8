package roster

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("roster not found")

// Repository persists one team's roster as a single blob.
type Repository interface {
	Load(ctx context.Context) (Roster, error)
	Save(ctx context.Context, item Roster) error
	Delete(ctx context.Context) error
	Name() string
}
