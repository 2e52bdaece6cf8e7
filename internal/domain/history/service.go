package history

import (
	"context"
	"errors"
	"strings"
	"time"

	"infovet/internal/platform/idgen"
)

// ErrIncompleteEntry cubre cualquier faltante de fecha/tipo/descripcion,
// con un solo mensaje como el formulario original.
var ErrIncompleteEntry = errors.New("incomplete history entry")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type AddInput struct {
	Date        time.Time
	Type        string
	Description string
	Vet         string
	Clinic      string
}

// Add agrega una entrada al historial. Solo append: no hay edicion ni borrado.
// El timestamp de creacion lo asigna el servidor.
func (s *Service) Add(ctx context.Context, petID string, in AddInput) (Entry, error) {
	if strings.TrimSpace(petID) == "" {
		return Entry{}, ErrIncompleteEntry
	}
	if in.Date.IsZero() || strings.TrimSpace(in.Type) == "" || strings.TrimSpace(in.Description) == "" {
		return Entry{}, ErrIncompleteEntry
	}

	e := Entry{
		ID:          idgen.NewID(),
		PetID:       petID,
		Date:        in.Date,
		Type:        ParseEntryType(in.Type),
		Description: strings.TrimSpace(in.Description),
		Vet:         strings.TrimSpace(in.Vet),
		Clinic:      strings.TrimSpace(in.Clinic),
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Entry, error) {
	return s.repo.ListByPet(ctx, petID)
}
