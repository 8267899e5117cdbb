package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"superhero-pets/internal/middleware"
	"superhero-pets/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /pets. owners resuelve /by-owner/{name}.
func RegisterRoutes(r chi.Router, svc *Service, owners OwnerResolver) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc))
		pr.Post("/", createPetHandler(svc))
		pr.Get("/by-owner/{name}", listByOwnerHandler(svc, owners))

		pr.Get("/{petID}", getPetHandler(svc))
		pr.Post("/{petID}/items", addItemHandler(svc))

		// Requieren identidad del token.
		pr.Group(func(ar chi.Router) {
			ar.Use(middleware.RequireAuth)

			ar.Post("/{petID}/adopt", adoptHandler(svc))
			ar.Post("/{petID}/play", activityHandler(svc, ActivityPlay))
			ar.Post("/{petID}/sleep", activityHandler(svc, ActivitySleep))
			ar.Post("/{petID}/feed", activityHandler(svc, ActivityFeed))
			ar.Post("/{petID}/cure", activityHandler(svc, ActivityCure))
		})
	})
}

type createPetRequest struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	SuperPower string `json:"superPower"`
}

type addItemRequest struct {
	Name string `json:"name"`
}

// Response es la forma JSON de una mascota. ownerId es null si no fue adoptada.
type Response struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	SuperPower  string          `json:"superPower"`
	OwnerID     *string         `json:"ownerId"`
	Felicidad   int             `json:"felicidad"`
	Hambre      int             `json:"hambre"`
	Energia     int             `json:"energia"`
	Limpieza    int             `json:"limpieza"`
	Salud       Health          `json:"salud"`
	Actividades []ActivityEntry `json:"actividades"`
	Items       []Item          `json:"items"`
	CreatedAt   *time.Time      `json:"createdAt,omitempty"`
}

type errorResponse struct {
	Error string    `json:"error"`
	Pet   *Response `json:"pet,omitempty"`
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Description Devuelve todas las mascotas. `adopted=false` filtra las disponibles para adopción.
// @Tags pets
// @Produce json
// @Param adopted query bool false "Filtrar por estado de adopción"
// @Success 200 {array} Response
// @Failure 400 {object} errorResponse
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f ListFilter
		if raw := strings.TrimSpace(r.URL.Query().Get("adopted")); raw != "" {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "adopted debe ser true o false"})
				return
			}
			f.Adopted = &b
		}

		items, err := svc.List(r.Context(), f)
		if err != nil {
			writeServiceError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, NewResponses(items))
	}
}

// createPetHandler godoc
// @Summary Crear mascota
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} Response
// @Failure 400 {object} errorResponse
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			Name:       req.Name,
			Type:       req.Type,
			SuperPower: req.SuperPower,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "El nombre es requerido"})
				return
			}
			writeServiceError(w, err, nil)
			return
		}

		writeJSON(w, http.StatusCreated, NewResponse(p))
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := petIDParam(w, r)
		if !ok {
			return
		}

		p, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, NewResponse(p))
	}
}

// listByOwnerHandler godoc
// @Summary Mascotas de un héroe
// @Description Busca el héroe por nombre (el de menor id si hay varios) y devuelve sus mascotas.
// @Tags pets
// @Produce json
// @Param name path string true "Nombre del héroe"
// @Success 200 {array} Response
// @Failure 404 {object} errorResponse
// @Router /pets/by-owner/{name} [get]
func listByOwnerHandler(svc *Service, owners OwnerResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		items, err := svc.ListByOwnerName(r.Context(), owners, name)
		if err != nil {
			if errors.Is(err, ErrOwnerNotFound) {
				writeJSON(w, http.StatusNotFound, errorResponse{Error: "Héroe no encontrado"})
				return
			}
			writeServiceError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, NewResponses(items))
	}
}

func addItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := petIDParam(w, r)
		if !ok {
			return
		}

		var req addItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
			return
		}

		p, err := svc.AddItem(r.Context(), id, req.Name)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "El nombre del item es requerido"})
				return
			}
			writeServiceError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, NewResponse(p))
	}
}

// adoptHandler godoc
// @Summary Adoptar mascota
// @Description El dueño es el héroe del token. Una mascota se adopta una sola vez.
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Param petID path int true "ID de la mascota"
// @Success 200 {object} Response
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /pets/{petID}/adopt [post]
func adoptHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		id, ok := petIDParam(w, r)
		if !ok {
			return
		}

		p, err := svc.Adopt(r.Context(), id, claims.HeroID)
		metrics.RecordAdoption(resultLabel(err))
		if err != nil {
			writeServiceError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, NewResponse(p))
	}
}

func petIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "petID"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "id inválido"})
		return 0, false
	}
	return id, true
}

// writeServiceError traduce errores de dominio a HTTP. pet se adjunta solo
// en errores de estado (el cliente ve la foto actual de la mascota).
func writeServiceError(w http.ResponseWriter, err error, pet *Pet) {
	var stateErr *StateError
	switch {
	case errors.As(err, &stateErr):
		body := errorResponse{Error: stateErr.Reason}
		if pet != nil {
			resp := NewResponse(*pet)
			body.Pet = &resp
		}
		writeJSON(w, http.StatusBadRequest, body)
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Mascota no encontrada"})
	case errors.Is(err, ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "No tienes acceso a esta mascota"})
	case errors.Is(err, ErrAlreadyAdopted):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "La mascota ya fue adoptada"})
	case errors.Is(err, ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrAlreadyAdopted):
		return "already_adopted"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}

func NewResponse(p Pet) Response {
	var owner *string
	if p.Adopted() {
		o := p.OwnerID
		owner = &o
	}

	var created *time.Time
	if !p.CreatedAt.IsZero() {
		c := p.CreatedAt
		created = &c
	}

	acts := p.Activities
	if acts == nil {
		acts = []ActivityEntry{}
	}
	items := p.Items
	if items == nil {
		items = []Item{}
	}

	return Response{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Type,
		SuperPower:  p.SuperPower,
		OwnerID:     owner,
		Felicidad:   p.Happiness,
		Hambre:      p.Hunger,
		Energia:     p.Energy,
		Limpieza:    p.Cleanliness,
		Salud:       p.Health,
		Actividades: acts,
		Items:       items,
		CreatedAt:   created,
	}
}

func NewResponses(items []Pet) []Response {
	out := make([]Response, 0, len(items))
	for _, p := range items {
		out = append(out, NewResponse(p))
	}
	return out
}

// writeJSON está duplicado en los handlers de cada módulo (pets/heroes).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
