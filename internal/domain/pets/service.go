package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"infovet/internal/platform/idgen"
)

// ValidationError lleva el mensaje especifico de campo que se muestra en el
// formulario. Se detecta antes de tocar el store y nunca se reintenta solo.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func requiredField(field string) error {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("El campo %s es obligatorio", field),
	}
}

// NormalizeChip deja el chip listo para guardar o comparar.
func NormalizeChip(chip string) string {
	return strings.ToUpper(strings.TrimSpace(chip))
}

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

// CreateInput usa punteros en los numericos para distinguir "no enviado"
// de cero, igual que el formulario original.
type CreateInput struct {
	OwnerID string
	Name    string
	Species string
	Breed   string
	Age     *int
	Weight  *float64
	Sex     string
	Chip    string
	Notes   string
	Photo   string
}

// Create valida, normaliza y persiste una mascota nueva.
//
// La unicidad del chip es check-then-create: dos registros simultaneos con el
// mismo chip pueden pasar ambos el pre-chequeo. El store Postgres cierra esa
// ventana con su indice unico (el repo devuelve ErrChipTaken); en modo mock la
// ventana solo se abre en los puntos de suspension del delay artificial.
func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, requiredField("nombre")
	}
	if strings.TrimSpace(in.Species) == "" {
		return Pet{}, requiredField("especie")
	}
	if strings.TrimSpace(in.Breed) == "" {
		return Pet{}, requiredField("raza")
	}
	if in.Age == nil {
		return Pet{}, requiredField("edad")
	}
	if in.Weight == nil {
		return Pet{}, requiredField("peso")
	}
	if strings.TrimSpace(in.Chip) == "" {
		return Pet{}, requiredField("chip")
	}
	if strings.TrimSpace(in.OwnerID) == "" {
		return Pet{}, requiredField("duenioId")
	}

	species, ok := ParseSpecies(in.Species)
	if !ok {
		return Pet{}, &ValidationError{Field: "especie", Message: "Especie no valida"}
	}
	if *in.Age < 0 {
		return Pet{}, &ValidationError{Field: "edad", Message: "La edad no puede ser negativa"}
	}
	if *in.Weight <= 0 {
		return Pet{}, &ValidationError{Field: "peso", Message: "El peso debe ser mayor a cero"}
	}

	chip := NormalizeChip(in.Chip)

	// Pre-chequeo de chip; reduce (no elimina) la ventana de carrera.
	if _, err := s.repo.GetByChip(ctx, chip); err == nil {
		return Pet{}, ErrChipTaken
	} else if !errors.Is(err, ErrNotFound) {
		return Pet{}, err
	}

	photo := strings.TrimSpace(in.Photo)
	if photo == "" {
		photo = PlaceholderPhoto
	}

	p := Pet{
		ID:         idgen.NewID(),
		InternalID: idgen.PetInternalID(),
		OwnerID:    strings.TrimSpace(in.OwnerID),
		Name:       strings.TrimSpace(in.Name),
		Species:    species,
		Breed:      strings.TrimSpace(in.Breed),
		Age:        *in.Age,
		Weight:     *in.Weight,
		Sex:        ParseSex(in.Sex),
		Chip:       chip,
		Notes:      strings.TrimSpace(in.Notes),
		Photo:      photo,
		CreatedAt:  s.now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}
