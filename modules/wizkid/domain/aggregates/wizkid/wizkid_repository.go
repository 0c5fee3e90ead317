package wizkid

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// GetAll returns every wizkid ordered by name ascending.
	GetAll(ctx context.Context) ([]Wizkid, error)
	// GetByID returns ErrWizkidNotFound for unknown ids.
	GetByID(ctx context.Context, id uuid.UUID) (Wizkid, error)
	Create(ctx context.Context, data Wizkid) (Wizkid, error)
	Update(ctx context.Context, data Wizkid) (Wizkid, error)
}
