package pets

import (
	"context"
	"strings"
	"time"
)

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

type CreateInput struct {
	Name       string
	Type       string
	SuperPower string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}

	return s.repo.Create(ctx, Pet{
		Name:       strings.TrimSpace(in.Name),
		Type:       strings.TrimSpace(in.Type),
		SuperPower: strings.TrimSpace(in.SuperPower),
		Stats:      DefaultStats(),
		Activities: []ActivityEntry{},
		Items:      []Item{},
		CreatedAt:  s.now(),
	})
}

func (s *Service) GetByID(ctx context.Context, id int64) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

// ListFilter filtra el listado por estado de adopción. nil = todas.
type ListFilter struct {
	Adopted *bool
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Pet, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if f.Adopted == nil {
		return items, nil
	}

	out := make([]Pet, 0, len(items))
	for _, p := range items {
		if p.Adopted() == *f.Adopted {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return []Pet{}, nil
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

// Adopt asigna dueño una sola vez. No existe operación inversa.
func (s *Service) Adopt(ctx context.Context, petID int64, ownerID string) (Pet, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return Pet{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.Adopted() {
		return Pet{}, ErrAlreadyAdopted
	}

	// SetOwner es condicional: si otro request adoptó entre medio, gana el primero.
	return s.repo.SetOwner(ctx, petID, ownerID)
}

// Perform ejecuta una actividad pedida por actorID.
//
// Si el outcome trae mutación se persiste aunque también traiga error
// (alimentar con hambre en 0). En ese caso se devuelve la mascota ya guardada
// junto con el error, para que el handler muestre la foto actual.
func (s *Service) Perform(ctx context.Context, petID int64, actorID string, kind Activity) (Pet, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}

	out := Decide(p, strings.TrimSpace(actorID), kind, s.now())
	if !out.Mutated() {
		return out.Pet, out.Err
	}

	updated, err := s.repo.ApplyActivity(ctx, petID, out.Pet.Stats, *out.Entry)
	if err != nil {
		return Pet{}, err
	}
	return updated, out.Err
}

func (s *Service) AddItem(ctx context.Context, petID int64, name string) (Pet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Pet{}, ErrInvalidInput
	}
	return s.repo.AddItem(ctx, petID, Item{Name: name})
}
