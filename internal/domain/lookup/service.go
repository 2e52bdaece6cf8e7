// Package lookup resuelve una mascota por chip o por ID interno y arma la
// ficha completa: mascota + duenio + historial ordenado de mas reciente a
// mas antiguo.
package lookup

import (
	"context"
	"errors"
	"strings"

	"infovet/internal/domain/history"
	"infovet/internal/domain/pets"
	"infovet/internal/domain/users"
)

var (
	// ErrEmptyQuery es error de validacion: la busqueda ni siquiera toca
	// el store.
	ErrEmptyQuery = errors.New("empty lookup query")

	// ErrNotFound es el resultado distinguido de "no existe", para que el
	// UI pueda ofrecer crear la mascota con ese chip.
	ErrNotFound = errors.New("pet not found")
)

// Result es la ficha completa. Owner puede venir nil si la cuenta del duenio
// ya no existe; el historial viene ordenado por fecha descendente.
type Result struct {
	Pet     pets.Pet
	Owner   *users.User
	History []history.Entry
}

type Service struct {
	pets    pets.Repository
	users   users.Repository
	history history.Repository
}

func NewService(petsRepo pets.Repository, usersRepo users.Repository, historyRepo history.Repository) *Service {
	return &Service{
		pets:    petsRepo,
		users:   usersRepo,
		history: historyRepo,
	}
}

// FindByChip busca por codigo de chip, normalizado (trim + mayusculas).
func (s *Service) FindByChip(ctx context.Context, code string) (Result, error) {
	code = pets.NormalizeChip(code)
	if code == "" {
		return Result{}, ErrEmptyQuery
	}

	p, err := s.pets.GetByChip(ctx, code)
	if err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return Result{}, ErrNotFound
		}
		return Result{}, err
	}

	return s.attach(ctx, p)
}

// FindByInternalID busca por el ID interno MAS-<anio>-<hex>. Adjunta el
// historial igual que la busqueda por chip en ambos modos de store.
func (s *Service) FindByInternalID(ctx context.Context, internalID string) (Result, error) {
	internalID = strings.ToUpper(strings.TrimSpace(internalID))
	if internalID == "" {
		return Result{}, ErrEmptyQuery
	}

	p, err := s.pets.GetByInternalID(ctx, internalID)
	if err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return Result{}, ErrNotFound
		}
		return Result{}, err
	}

	return s.attach(ctx, p)
}

// CheckChipUnique sirve tanto para la validacion en vivo del formulario como
// para el pre-chequeo interno al crear. Dos llamadas seguidas sin escrituras
// en el medio devuelven lo mismo.
func (s *Service) CheckChipUnique(ctx context.Context, code string) (exists bool, err error) {
	code = pets.NormalizeChip(code)
	if code == "" {
		return false, ErrEmptyQuery
	}

	if _, err := s.pets.GetByChip(ctx, code); err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListByOwner trae las mascotas de un duenio con su historial adjunto,
// sin seccion de duenio (el que pide ya es el duenio).
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Result, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrEmptyQuery
	}

	items, err := s.pets.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	out := make([]Result, 0, len(items))
	for _, p := range items {
		entries, err := s.history.ListByPet(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, Result{Pet: p, History: entries})
	}
	return out, nil
}

func (s *Service) attach(ctx context.Context, p pets.Pet) (Result, error) {
	res := Result{Pet: p}

	// Duenio inexistente no es fatal: la ficha sale sin seccion de duenio.
	if owner, err := s.users.GetByID(ctx, p.OwnerID); err == nil {
		res.Owner = &owner
	} else if !errors.Is(err, users.ErrNotFound) {
		return Result{}, err
	}

	entries, err := s.history.ListByPet(ctx, p.ID)
	if err != nil {
		return Result{}, err
	}
	res.History = entries

	return res, nil
}
