package memory

import (
	"context"
	"sort"
	"sync"

	"superhero-pets/internal/domain/pets"
)

type petRepo struct {
	mu     sync.RWMutex
	byID   map[int64]pets.Pet
	lastID int64
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID: make(map[int64]pets.Pet),
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	p.ID = r.lastID
	p.Stats = p.Stats.Normalize()
	p.Activities = append([]pets.ActivityEntry{}, p.Activities...)
	p.Items = append([]pets.Item{}, p.Items...)

	r.byID[p.ID] = p
	return clonePet(p), nil
}

func (r *petRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return clonePet(p), nil
}

func (r *petRepo) List(ctx context.Context) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, clonePet(p))
	}
	sortByID(out)
	return out, nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if p.OwnerID != "" && p.OwnerID == ownerID {
			out = append(out, clonePet(p))
		}
	}
	sortByID(out)
	return out, nil
}

func (r *petRepo) SetOwner(ctx context.Context, id int64, ownerID string) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	if p.Adopted() {
		return pets.Pet{}, pets.ErrAlreadyAdopted
	}
	p.OwnerID = ownerID
	r.byID[id] = p
	return clonePet(p), nil
}

func (r *petRepo) ApplyActivity(ctx context.Context, id int64, stats pets.Stats, entry pets.ActivityEntry) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	p.Stats = stats.Normalize()
	p.Activities = append(p.Activities, entry)
	r.byID[id] = p
	return clonePet(p), nil
}

func (r *petRepo) AddItem(ctx context.Context, id int64, item pets.Item) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	p.Items = append(p.Items, item)
	r.byID[id] = p
	return clonePet(p), nil
}

// clonePet evita que quien recibe la mascota comparta los slices del mapa.
func clonePet(p pets.Pet) pets.Pet {
	p.Activities = append([]pets.ActivityEntry{}, p.Activities...)
	p.Items = append([]pets.Item{}, p.Items...)
	return p
}

func sortByID(items []pets.Pet) {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
}
