package history

import "context"

// Repository guarda el historial clinico.
// ListByPet devuelve las entradas ordenadas por fecha descendente (lo mas
// reciente primero), sin importar el orden de insercion.
type Repository interface {
	Create(ctx context.Context, e Entry) error
	ListByPet(ctx context.Context, petID string) ([]Entry, error)
}
