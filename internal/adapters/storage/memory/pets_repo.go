package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"infovet/internal/domain/pets"
)

type petRepo struct {
	delayer
	mu           sync.RWMutex
	byID         map[string]pets.Pet
	byChip       map[string]string // chip normalizado -> id
	byInternalID map[string]string
}

func NewPetRepo(latency time.Duration) pets.Repository {
	return &petRepo{
		delayer:      delayer{d: latency},
		byID:         make(map[string]pets.Pet),
		byChip:       make(map[string]string),
		byInternalID: make(map[string]string),
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.sleep(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pet already exists")
	}
	// el indice por chip se chequea bajo el mismo lock, asi el modo mock
	// tambien rechaza el duplicado que se cuele por la ventana del pre-chequeo
	if _, taken := r.byChip[p.Chip]; taken {
		return pets.ErrChipTaken
	}

	r.byID[p.ID] = p
	r.byChip[p.Chip] = p.ID
	if p.InternalID != "" {
		r.byInternalID[p.InternalID] = p.ID
	}
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.sleep(ctx)

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) GetByChip(ctx context.Context, chip string) (pets.Pet, error) {
	r.sleep(ctx)

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byChip[chip]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *petRepo) GetByInternalID(ctx context.Context, internalID string) (pets.Pet, error) {
	r.sleep(ctx)

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byInternalID[internalID]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	r.sleep(ctx)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
