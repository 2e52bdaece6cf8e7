package pets

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("pet not found")

	// ErrChipTaken lo devuelve Create cuando el chip ya existe. El store
	// Postgres lo detecta con un indice unico; el in-memory con su indice
	// por chip bajo lock.
	ErrChipTaken = errors.New("chip already registered")
)

// Repository guarda mascotas. GetByChip y GetByInternalID esperan la clave
// ya normalizada (trim + mayusculas).
type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	GetByChip(ctx context.Context, chip string) (Pet, error)
	GetByInternalID(ctx context.Context, internalID string) (Pet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Pet, error)
}
