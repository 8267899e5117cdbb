package main

import (
	"context"
	"flag"
	"os"
	"time"

	"superhero-pets/internal/adapters/storage/jsonfile"
	pg "superhero-pets/internal/adapters/storage/postgres"
	"superhero-pets/internal/config"
	"superhero-pets/internal/platform/logger"
)

// migrate aplica el esquema y, con -import, copia pets.json y superheroes.json a Postgres.
func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		logger.NewFromEnv().Error("config load failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    "superhero-pets-migrate",
	})

	var (
		dsn        = flag.String("dsn", cfg.DatabaseDSN, "Postgres DSN (default DB_DSN)")
		doImport   = flag.Bool("import", false, "importar los archivos JSON después de migrar")
		petsFile   = flag.String("pets", orDefault(cfg.PetsFile, "pets.json"), "archivo de mascotas")
		heroesFile = flag.String("heroes", orDefault(cfg.HeroesFile, "superheroes.json"), "archivo de héroes")
		reset      = flag.Bool("reset", false, "vaciar las tablas antes de importar")
	)
	flag.Parse()

	if *dsn == "" {
		log.Error("missing dsn", map[string]any{"hint": "use -dsn or DB_DSN"})
		os.Exit(2)
	}

	v, err := pg.Migrate(*dsn)
	if err != nil {
		log.Error("migrations failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	log.Info("schema ready", map[string]any{"version": v})

	if !*doImport {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	hs, err := jsonfile.NewHeroStore(*heroesFile).List(ctx)
	if err != nil {
		log.Error("read heroes file failed", map[string]any{"file": *heroesFile, "error": err.Error()})
		os.Exit(1)
	}
	ps, err := jsonfile.NewPetStore(*petsFile).List(ctx)
	if err != nil {
		log.Error("read pets file failed", map[string]any{"file": *petsFile, "error": err.Error()})
		os.Exit(1)
	}

	db, err := pg.Open(*dsn)
	if err != nil {
		log.Error("postgres open failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer db.Close()

	if *reset {
		if err := pg.Reset(ctx, db); err != nil {
			log.Error("reset failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}

	st, err := pg.Import(ctx, db, hs, ps)
	if err != nil {
		log.Error("import failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log.Info("import done", map[string]any{
		"heroes":        st.Heroes,
		"pets":          st.Pets,
		"activities":    st.Activities,
		"orphan_owners": st.OrphanOwners,
	})
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
