package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"superhero-pets/internal/domain/pets"
)

// petRecord es el formato de pets.json. Los stats son punteros para
// distinguir "no estaba" (=> default 50) de un 0 real.
type petRecord struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	Type        string               `json:"type"`
	SuperPower  string               `json:"superPower"`
	OwnerID     json.RawMessage      `json:"ownerId"`
	Felicidad   *int                 `json:"felicidad,omitempty"`
	Hambre      *int                 `json:"hambre,omitempty"`
	Energia     *int                 `json:"energia,omitempty"`
	Limpieza    *int                 `json:"limpieza,omitempty"`
	Salud       string               `json:"salud,omitempty"`
	Actividades []pets.ActivityEntry `json:"actividades"`
	Items       []pets.Item          `json:"items"`
	CreatedAt   *time.Time           `json:"createdAt,omitempty"`
}

func (rec petRecord) toPet() (pets.Pet, error) {
	owner, err := decodeOwnerID(rec.OwnerID)
	if err != nil {
		return pets.Pet{}, fmt.Errorf("pet %d: %w", rec.ID, err)
	}

	p := pets.Pet{
		ID:         rec.ID,
		Name:       rec.Name,
		Type:       rec.Type,
		SuperPower: rec.SuperPower,
		OwnerID:    owner,
		Stats: pets.Stats{
			Happiness:   orDefault(rec.Felicidad),
			Hunger:      orDefault(rec.Hambre),
			Energy:      orDefault(rec.Energia),
			Cleanliness: orDefault(rec.Limpieza),
			Health:      pets.Health(rec.Salud),
		}.Normalize(),
		Activities: append([]pets.ActivityEntry{}, rec.Actividades...),
		Items:      append([]pets.Item{}, rec.Items...),
	}
	if rec.CreatedAt != nil {
		p.CreatedAt = *rec.CreatedAt
	}
	return p, nil
}

func fromPet(p pets.Pet) petRecord {
	rec := petRecord{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Type,
		SuperPower:  p.SuperPower,
		OwnerID:     encodeOwnerID(p.OwnerID),
		Felicidad:   intPtr(p.Happiness),
		Hambre:      intPtr(p.Hunger),
		Energia:     intPtr(p.Energy),
		Limpieza:    intPtr(p.Cleanliness),
		Salud:       string(p.Health),
		Actividades: append([]pets.ActivityEntry{}, p.Activities...),
		Items:       append([]pets.Item{}, p.Items...),
	}
	if !p.CreatedAt.IsZero() {
		t := p.CreatedAt
		rec.CreatedAt = &t
	}
	return rec
}

// PetStore guarda las mascotas en un archivo JSON (pets.json).
// Cada operación relee y reescribe el archivo completo bajo el mutex.
type PetStore struct {
	mu sync.Mutex
	f  file
}

func NewPetStore(path string) *PetStore {
	return &PetStore{f: file{path: path}}
}

func (s *PetStore) load() ([]pets.Pet, error) {
	var recs []petRecord
	if err := s.f.read(&recs); err != nil {
		return nil, err
	}

	out := make([]pets.Pet, 0, len(recs))
	for _, rec := range recs {
		p, err := rec.toPet()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *PetStore) save(items []pets.Pet) error {
	recs := make([]petRecord, 0, len(items))
	for _, p := range items {
		recs = append(recs, fromPet(p))
	}
	return s.f.write(recs)
}

// update carga, aplica fn sobre la mascota id y guarda.
func (s *PetStore) update(id int64, fn func(p *pets.Pet) error) (pets.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return pets.Pet{}, err
	}
	for i := range all {
		if all[i].ID != id {
			continue
		}
		if err := fn(&all[i]); err != nil {
			return pets.Pet{}, err
		}
		if err := s.save(all); err != nil {
			return pets.Pet{}, err
		}
		return all[i], nil
	}
	return pets.Pet{}, pets.ErrNotFound
}

func (s *PetStore) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return pets.Pet{}, err
	}

	// Las mascotas no se borran, así que max+1 nunca reutiliza un id.
	var maxID int64
	for _, existing := range all {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	p.ID = maxID + 1
	p.Stats = p.Stats.Normalize()

	all = append(all, p)
	if err := s.save(all); err != nil {
		return pets.Pet{}, err
	}
	return p, nil
}

func (s *PetStore) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return pets.Pet{}, err
	}
	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}
	return pets.Pet{}, pets.ErrNotFound
}

func (s *PetStore) List(ctx context.Context) ([]pets.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

func (s *PetStore) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]pets.Pet, 0)
	for _, p := range all {
		if p.OwnerID != "" && p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *PetStore) SetOwner(ctx context.Context, id int64, ownerID string) (pets.Pet, error) {
	return s.update(id, func(p *pets.Pet) error {
		if p.Adopted() {
			return pets.ErrAlreadyAdopted
		}
		p.OwnerID = ownerID
		return nil
	})
}

func (s *PetStore) ApplyActivity(ctx context.Context, id int64, stats pets.Stats, entry pets.ActivityEntry) (pets.Pet, error) {
	return s.update(id, func(p *pets.Pet) error {
		p.Stats = stats.Normalize()
		p.Activities = append(p.Activities, entry)
		return nil
	})
}

func (s *PetStore) AddItem(ctx context.Context, id int64, item pets.Item) (pets.Pet, error) {
	return s.update(id, func(p *pets.Pet) error {
		p.Items = append(p.Items, item)
		return nil
	})
}

func orDefault(v *int) int {
	if v == nil {
		return pets.StatDefault
	}
	return *v
}

func intPtr(v int) *int {
	return &v
}
