package heroes

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"superhero-pets/internal/domain/pets"
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
	Name  string
	Alias string
	City  string
	Team  string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Hero, error) {
	var problems []string
	if strings.TrimSpace(in.Name) == "" {
		problems = append(problems, "El nombre es requerido")
	}
	if strings.TrimSpace(in.Alias) == "" {
		problems = append(problems, "El alias es requerido")
	}
	if len(problems) > 0 {
		return Hero{}, &ValidationError{Problems: problems}
	}

	return s.repo.Create(ctx, Hero{
		Name:      strings.TrimSpace(in.Name),
		Alias:     strings.TrimSpace(in.Alias),
		City:      strings.TrimSpace(in.City),
		Team:      strings.TrimSpace(in.Team),
		CreatedAt: s.now(),
	})
}

func (s *Service) List(ctx context.Context) ([]Hero, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Hero, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByCity compara sin distinguir mayúsculas.
func (s *Service) ListByCity(ctx context.Context, city string) ([]Hero, error) {
	city = strings.TrimSpace(city)
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Hero, 0)
	for _, h := range all {
		if strings.EqualFold(strings.TrimSpace(h.City), city) {
			out = append(out, h)
		}
	}
	return out, nil
}

type UpdateInput struct {
	// Punteros para merge parcial: nil = no tocar.
	Name  *string
	Alias *string
	City  *string
	Team  *string
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Hero, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Hero{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Hero{}, &ValidationError{Problems: []string{"El nombre no puede quedar vacío"}}
		}
		h.Name = strings.TrimSpace(*in.Name)
	}
	if in.Alias != nil {
		h.Alias = strings.TrimSpace(*in.Alias)
	}
	if in.City != nil {
		h.City = strings.TrimSpace(*in.City)
	}
	if in.Team != nil {
		h.Team = strings.TrimSpace(*in.Team)
	}

	return s.repo.Update(ctx, h)
}

// Delete no toca las mascotas del héroe: su ownerId queda apuntando a un id inexistente.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// FaceVillain simula un enfrentamiento.
func (s *Service) FaceVillain(ctx context.Context, id int64, villain string) (string, error) {
	villain = strings.TrimSpace(villain)
	if villain == "" {
		return "", &ValidationError{Problems: []string{"El villano es requerido"}}
	}

	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s enfrenta a %s", h.DisplayName(), villain), nil
}

// OwnerIDByName implementa pets.OwnerResolver.
func (s *Service) OwnerIDByName(ctx context.Context, name string) (string, error) {
	h, err := s.repo.FindByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", pets.ErrOwnerNotFound
		}
		return "", err
	}
	return h.CanonicalID(), nil
}

// PetLister es lo que necesitamos de pets para anotar héroes con sus mascotas.
type PetLister interface {
	ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error)
}

// HeroWithPets es un héroe anotado con las mascotas que adoptó.
type HeroWithPets struct {
	Hero Hero
	Pets []pets.Pet
}

func (s *Service) ListWithPets(ctx context.Context, petsSvc PetLister) ([]HeroWithPets, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]HeroWithPets, 0, len(all))
	for _, h := range all {
		owned, err := petsSvc.ListByOwner(ctx, h.CanonicalID())
		if err != nil {
			return nil, err
		}
		sort.Slice(owned, func(i, j int) bool { return owned[i].ID < owned[j].ID })
		out = append(out, HeroWithPets{Hero: h, Pets: owned})
	}
	return out, nil
}
