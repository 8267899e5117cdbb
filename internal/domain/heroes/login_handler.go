package heroes

import (
	"encoding/json"
	"errors"
	"net/http"

	"superhero-pets/internal/platform/metrics"
	"superhero-pets/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// RegisterLoginRoute monta POST /login. El rate limit lo pone el router.
func RegisterLoginRoute(r chi.Router, svc *Service, issuer auth.TokenIssuer) {
	r.Post("/login", loginHandler(svc, issuer))
}

// loginHandler godoc
// @Summary Login de héroe
// @Description Si el nombre no existe crea el héroe con esa contraseña. Devuelve un JWT válido por 2 horas.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} loginResponse
// @Failure 400 {object} errorResponse
// @Failure 429 {object} errorResponse
// @Router /login [post]
func loginHandler(svc *Service, issuer auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if issuer == nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "token issuer not configured"})
			return
		}

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
			return
		}

		h, err := svc.Login(r.Context(), req.Name, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidCredentials):
				metrics.RecordLogin("invalid_credentials")
			case errors.Is(err, ErrInvalidInput):
				metrics.RecordLogin("invalid_input")
			default:
				metrics.RecordLogin("error")
			}
			writeServiceError(w, err)
			return
		}

		token, _, err := issuer.Issue(r.Context(), h.ID, h.Name)
		if err != nil {
			metrics.RecordLogin("error")
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}

		metrics.RecordLogin("ok")
		writeJSON(w, http.StatusOK, loginResponse{Token: token})
	}
}
