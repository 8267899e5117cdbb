package jsonfile

import (
	"context"
	"sort"
	"sync"

	"superhero-pets/internal/domain/heroes"
)

// heroRecord es el formato de superheroes.json.
type heroRecord struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Password string `json:"password,omitempty"`
	Alias    string `json:"alias"`
	City     string `json:"city"`
	Team     string `json:"team"`
}

func (rec heroRecord) toHero() heroes.Hero {
	return heroes.Hero{
		ID:       rec.ID,
		Name:     rec.Name,
		Password: rec.Password,
		Alias:    rec.Alias,
		City:     rec.City,
		Team:     rec.Team,
	}
}

func fromHero(h heroes.Hero) heroRecord {
	return heroRecord{
		ID:       h.ID,
		Name:     h.Name,
		Password: h.Password,
		Alias:    h.Alias,
		City:     h.City,
		Team:     h.Team,
	}
}

// HeroStore guarda los héroes en superheroes.json.
type HeroStore struct {
	mu sync.Mutex
	f  file
}

func NewHeroStore(path string) *HeroStore {
	return &HeroStore{f: file{path: path}}
}

func (s *HeroStore) load() ([]heroes.Hero, error) {
	var recs []heroRecord
	if err := s.f.read(&recs); err != nil {
		return nil, err
	}
	out := make([]heroes.Hero, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.toHero())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *HeroStore) save(items []heroes.Hero) error {
	recs := make([]heroRecord, 0, len(items))
	for _, h := range items {
		recs = append(recs, fromHero(h))
	}
	return s.f.write(recs)
}

// Create asigna max(id)+1, como el formato de archivo original.
func (s *HeroStore) Create(ctx context.Context, h heroes.Hero) (heroes.Hero, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return heroes.Hero{}, err
	}
	var maxID int64
	for _, existing := range all {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	h.ID = maxID + 1

	if err := s.save(append(all, h)); err != nil {
		return heroes.Hero{}, err
	}
	return h, nil
}

func (s *HeroStore) GetByID(ctx context.Context, id int64) (heroes.Hero, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return heroes.Hero{}, err
	}
	for _, h := range all {
		if h.ID == id {
			return h, nil
		}
	}
	return heroes.Hero{}, heroes.ErrNotFound
}

func (s *HeroStore) FindByName(ctx context.Context, name string) (heroes.Hero, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return heroes.Hero{}, err
	}
	// load ordena por id: el primero que coincide es el de menor id.
	for _, h := range all {
		if h.Name == name {
			return h, nil
		}
	}
	return heroes.Hero{}, heroes.ErrNotFound
}

func (s *HeroStore) List(ctx context.Context) ([]heroes.Hero, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

func (s *HeroStore) Update(ctx context.Context, h heroes.Hero) (heroes.Hero, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return heroes.Hero{}, err
	}
	for i := range all {
		if all[i].ID != h.ID {
			continue
		}
		h.Password = all[i].Password
		all[i] = h
		if err := s.save(all); err != nil {
			return heroes.Hero{}, err
		}
		return h, nil
	}
	return heroes.Hero{}, heroes.ErrNotFound
}

func (s *HeroStore) SetPassword(ctx context.Context, id int64, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == id {
			all[i].Password = password
			return s.save(all)
		}
	}
	return heroes.ErrNotFound
}

func (s *HeroStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return err
	}
	out := make([]heroes.Hero, 0, len(all))
	found := false
	for _, h := range all {
		if h.ID == id {
			found = true
			continue
		}
		out = append(out, h)
	}
	if !found {
		return heroes.ErrNotFound
	}
	return s.save(out)
}
