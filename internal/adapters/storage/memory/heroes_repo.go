package memory

import (
	"context"
	"sort"
	"sync"

	"superhero-pets/internal/domain/heroes"
)

type heroRepo struct {
	mu     sync.RWMutex
	byID   map[int64]heroes.Hero
	lastID int64
}

func NewHeroRepo() heroes.Repository {
	return &heroRepo{
		byID: make(map[int64]heroes.Hero),
	}
}

// Create usa un contador monotónico: un id borrado no se reasigna.
func (r *heroRepo) Create(ctx context.Context, h heroes.Hero) (heroes.Hero, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	h.ID = r.lastID
	r.byID[h.ID] = h
	return h, nil
}

func (r *heroRepo) GetByID(ctx context.Context, id int64) (heroes.Hero, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.byID[id]
	if !ok {
		return heroes.Hero{}, heroes.ErrNotFound
	}
	return h, nil
}

func (r *heroRepo) FindByName(ctx context.Context, name string) (heroes.Hero, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		found heroes.Hero
		has   bool
	)
	for _, h := range r.byID {
		if h.Name != name {
			continue
		}
		if !has || h.ID < found.ID {
			found = h
			has = true
		}
	}
	if !has {
		return heroes.Hero{}, heroes.ErrNotFound
	}
	return found, nil
}

func (r *heroRepo) List(ctx context.Context) ([]heroes.Hero, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]heroes.Hero, 0, len(r.byID))
	for _, h := range r.byID {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *heroRepo) Update(ctx context.Context, h heroes.Hero) (heroes.Hero, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[h.ID]
	if !ok {
		return heroes.Hero{}, heroes.ErrNotFound
	}
	// Update no cambia la contraseña; eso es SetPassword.
	h.Password = cur.Password
	h.CreatedAt = cur.CreatedAt
	r.byID[h.ID] = h
	return h, nil
}

func (r *heroRepo) SetPassword(ctx context.Context, id int64, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.byID[id]
	if !ok {
		return heroes.ErrNotFound
	}
	h.Password = password
	r.byID[id] = h
	return nil
}

func (r *heroRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return heroes.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
