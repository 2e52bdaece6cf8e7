package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"infovet/internal/domain/history"
)

type historyRepo struct {
	delayer
	mu    sync.RWMutex
	byPet map[string][]history.Entry
}

func NewHistoryRepo(latency time.Duration) history.Repository {
	return &historyRepo{
		delayer: delayer{d: latency},
		byPet:   make(map[string][]history.Entry),
	}
}

func (r *historyRepo) Create(ctx context.Context, e history.Entry) error {
	r.sleep(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" || strings.TrimSpace(e.PetID) == "" {
		return errors.New("entry id and pet id required")
	}
	r.byPet[e.PetID] = append(r.byPet[e.PetID], e)
	return nil
}

func (r *historyRepo) ListByPet(ctx context.Context, petID string) ([]history.Entry, error) {
	r.sleep(ctx)

	r.mu.RLock()
	defer r.mu.RUnlock()

	src := r.byPet[petID]
	out := make([]history.Entry, len(src))
	copy(out, src)

	// mas reciente primero, sin importar el orden de insercion
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}
