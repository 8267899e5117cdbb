package router

import (
	"database/sql"
	"net/http"

	"superhero-pets/internal/adapters/storage/jsonfile"
	mem "superhero-pets/internal/adapters/storage/memory"
	pg "superhero-pets/internal/adapters/storage/postgres"
	"superhero-pets/internal/domain/heroes"
	"superhero-pets/internal/domain/pets"
	"superhero-pets/internal/middleware"
	"superhero-pets/internal/platform/logger"
	"superhero-pets/internal/platform/metrics"
	"superhero-pets/internal/ports/auth"

	_ "superhero-pets/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev: X-Debug-Hero-ID)
	TokenIssuer  auth.TokenIssuer

	// Store. Prioridad: repos explícitos > DB > archivos JSON > memoria.
	PetRepo    pets.Repository
	HeroRepo   heroes.Repository
	DB         *sql.DB
	PetsFile   string
	HeroesFile string

	Logger         logger.Logger
	AllowedOrigins []string

	// Límite de /api/login por IP. Si LoginLimiter es nil se arma uno con
	// LoginRatePerSec/LoginBurst (o sin límite si LoginRatePerSec <= 0).
	LoginLimiter    *middleware.RateLimiter
	LoginRatePerSec float64
	LoginBurst      int
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.DebugHeroHeader},
		MaxAge:         300,
	}))
	r.Use(metrics.InstrumentHandler)

	// AuthContext antes del logger para que el log lleve hero_id.
	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.RequestLogger(log))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(banner))
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/api-docs/*", httpSwagger.Handler(httpSwagger.URL("/api-docs/doc.json")))

	petRepo, heroRepo := buildRepos(opts)

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	heroesSvc := heroes.NewService(heroRepo)

	limiter := opts.LoginLimiter
	if limiter == nil && opts.LoginRatePerSec > 0 {
		limiter = middleware.NewRateLimiter(opts.LoginRatePerSec, opts.LoginBurst, log)
	}

	r.Route("/api", func(api chi.Router) {
		api.Group(func(lr chi.Router) {
			if limiter != nil {
				lr.Use(limiter.Handler)
			}
			heroes.RegisterLoginRoute(lr, heroesSvc, opts.TokenIssuer)
		})

		// Rutas por módulo
		heroes.RegisterRoutes(api, heroesSvc, petsSvc)
		pets.RegisterRoutes(api, petsSvc, heroesSvc)
	})

	return r
}

func buildRepos(opts Options) (pets.Repository, heroes.Repository) {
	petRepo, heroRepo := opts.PetRepo, opts.HeroRepo

	switch {
	case opts.DB != nil:
		if petRepo == nil {
			petRepo = pg.NewPetsRepo(opts.DB)
		}
		if heroRepo == nil {
			heroRepo = pg.NewHeroesRepo(opts.DB)
		}
	case opts.PetsFile != "" || opts.HeroesFile != "":
		if petRepo == nil && opts.PetsFile != "" {
			petRepo = jsonfile.NewPetStore(opts.PetsFile)
		}
		if heroRepo == nil && opts.HeroesFile != "" {
			heroRepo = jsonfile.NewHeroStore(opts.HeroesFile)
		}
	}

	if petRepo == nil {
		petRepo = mem.NewPetRepo()
	}
	if heroRepo == nil {
		heroRepo = mem.NewHeroRepo()
	}
	return petRepo, heroRepo
}

const banner = `Superhero Pets API

POST /api/login                  -> {token}
GET  /api/heroes                 (?include=pets)
POST /api/heroes
PUT  /api/heroes/{id}
DEL  /api/heroes/{id}
GET  /api/heroes/city/{city}
POST /api/heroes/{id}/enfrentar
GET  /api/pets                   (?adopted=true|false)
POST /api/pets
GET  /api/pets/{id}
GET  /api/pets/by-owner/{name}
POST /api/pets/{id}/items
POST /api/pets/{id}/adopt        (bearer)
POST /api/pets/{id}/play|sleep|feed|cure (bearer)

Docs: /api-docs/index.html
`
