package heroes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"superhero-pets/internal/domain/pets"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc PetLister) {
	r.Route("/heroes", func(hr chi.Router) {
		hr.Get("/", listHeroesHandler(svc, petsSvc))
		hr.Post("/", createHeroHandler(svc))
		hr.Get("/city/{city}", listByCityHandler(svc))

		hr.Put("/{heroID}", updateHeroHandler(svc))
		hr.Delete("/{heroID}", deleteHeroHandler(svc))
		hr.Post("/{heroID}/enfrentar", faceVillainHandler(svc))
	})
}

type createHeroRequest struct {
	Name  string `json:"name"`
	Alias string `json:"alias"`
	City  string `json:"city"`
	Team  string `json:"team"`
}

type updateHeroRequest struct {
	// nil = no tocar
	Name  *string `json:"name"`
	Alias *string `json:"alias"`
	City  *string `json:"city"`
	Team  *string `json:"team"`
}

type faceVillainRequest struct {
	Villain string `json:"villain"`
}

// Response nunca incluye la contraseña.
type Response struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Alias string `json:"alias"`
	City  string `json:"city"`
	Team  string `json:"team"`
}

type withPetsResponse struct {
	Response
	Pets []pets.Response `json:"pets"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// listHeroesHandler godoc
// @Summary Listar héroes
// @Description Con `include=pets` cada héroe trae sus mascotas adoptadas.
// @Tags heroes
// @Produce json
// @Param include query string false "pets"
// @Success 200 {array} Response
// @Router /heroes [get]
func listHeroesHandler(svc *Service, petsSvc PetLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.EqualFold(strings.TrimSpace(r.URL.Query().Get("include")), "pets") {
			items, err := svc.ListWithPets(r.Context(), petsSvc)
			if err != nil {
				writeServiceError(w, err)
				return
			}

			out := make([]withPetsResponse, 0, len(items))
			for _, hp := range items {
				out = append(out, withPetsResponse{
					Response: NewResponse(hp.Hero),
					Pets:     pets.NewResponses(hp.Pets),
				})
			}
			writeJSON(w, http.StatusOK, out)
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, NewResponses(items))
	}
}

// createHeroHandler godoc
// @Summary Crear héroe
// @Tags heroes
// @Accept json
// @Produce json
// @Param payload body createHeroRequest true "name y alias son requeridos"
// @Success 201 {object} Response
// @Failure 400 {object} errorResponse
// @Router /heroes [post]
func createHeroHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createHeroRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
			return
		}

		h, err := svc.Create(r.Context(), CreateInput{
			Name:  req.Name,
			Alias: req.Alias,
			City:  req.City,
			Team:  req.Team,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, NewResponse(h))
	}
}

func listByCityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByCity(r.Context(), chi.URLParam(r, "city"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, NewResponses(items))
	}
}

// updateHeroHandler godoc
// @Summary Actualizar héroe
// @Description Merge parcial de name, alias, city y team.
// @Tags heroes
// @Accept json
// @Produce json
// @Param heroID path int true "ID del héroe"
// @Param payload body updateHeroRequest true "Campos a modificar"
// @Success 200 {object} Response
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /heroes/{heroID} [put]
func updateHeroHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := heroIDParam(w, r)
		if !ok {
			return
		}

		var req updateHeroRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
			return
		}

		h, err := svc.Update(r.Context(), id, UpdateInput{
			Name:  req.Name,
			Alias: req.Alias,
			City:  req.City,
			Team:  req.Team,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, NewResponse(h))
	}
}

func deleteHeroHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := heroIDParam(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "Héroe eliminado"})
	}
}

// faceVillainHandler godoc
// @Summary Enfrentar a un villano
// @Tags heroes
// @Accept json
// @Produce json
// @Param heroID path int true "ID del héroe"
// @Param payload body faceVillainRequest true "Villano"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /heroes/{heroID}/enfrentar [post]
func faceVillainHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := heroIDParam(w, r)
		if !ok {
			return
		}

		var req faceVillainRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
			return
		}

		msg, err := svc.FaceVillain(r.Context(), id, req.Villain)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: msg})
	}
}

func heroIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "heroID"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "id inválido"})
		return 0, false
	}
	return id, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Héroe no encontrado"})
	case errors.Is(err, ErrInvalidCredentials):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Contraseña incorrecta"})
	case errors.Is(err, ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

func NewResponse(h Hero) Response {
	return Response{
		ID:    h.ID,
		Name:  h.Name,
		Alias: h.Alias,
		City:  h.City,
		Team:  h.Team,
	}
}

func NewResponses(items []Hero) []Response {
	out := make([]Response, 0, len(items))
	for _, h := range items {
		out = append(out, NewResponse(h))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
