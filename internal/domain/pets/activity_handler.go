package pets

import (
	"errors"
	"net/http"

	"superhero-pets/internal/middleware"
	"superhero-pets/internal/platform/metrics"
)

var activityMessages = map[Activity]string{
	ActivityPlay:  "¡Jugar con la mascota fue exitoso!",
	ActivitySleep: "¡La mascota durmió y recuperó energía!",
	ActivityFeed:  "¡La mascota fue alimentada con éxito!",
	ActivityCure:  "La mascota fue curada y restaurada a su estado sano.",
}

type activityResponse struct {
	Message string   `json:"message"`
	Pet     Response `json:"pet"`
}

// activityHandler godoc
// @Summary Actividad sobre una mascota
// @Description Jugar, dormir, alimentar o curar. Solo el dueño puede hacerlo. Alimentar con hambre en 0 enferma a la mascota y responde 400 con la mascota ya enferma.
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param petID path int true "ID de la mascota"
// @Success 200 {object} activityResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /pets/{petID}/play [post]
// @Router /pets/{petID}/sleep [post]
// @Router /pets/{petID}/feed [post]
// @Router /pets/{petID}/cure [post]
func activityHandler(svc *Service, kind Activity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		id, ok := petIDParam(w, r)
		if !ok {
			return
		}

		p, err := svc.Perform(r.Context(), id, claims.HeroID, kind)
		metrics.RecordPetActivity(string(kind), resultLabel(err))
		if err != nil {
			// Errores de estado llevan la foto de la mascota (ya persistida si hubo mutación).
			if errors.Is(err, ErrInvalidState) {
				writeServiceError(w, err, &p)
				return
			}
			writeServiceError(w, err, nil)
			return
		}

		writeJSON(w, http.StatusOK, activityResponse{
			Message: activityMessages[kind],
			Pet:     NewResponse(p),
		})
	}
}
