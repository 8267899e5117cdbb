package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"superhero-pets/internal/domain/heroes"
	"superhero-pets/internal/domain/pets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyPets = `[
  {"id": 1, "name": "Krypto", "type": "perro", "superPower": "vuelo", "ownerId": 3},
  {"id": 2, "name": "Streaky", "type": "gato", "superPower": "rayos", "ownerId": "3",
   "felicidad": 0, "hambre": 120, "salud": "enfermo",
   "actividades": [{"tipo": "jugar", "fecha": "2025-07-18T10:00:00.000Z", "felicidadAumentada": 10, "energiaConsumida": 10}]},
  {"id": 4, "name": "Comet", "type": "caballo", "superPower": "velocidad", "ownerId": null}
]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestPetStore_LoadsLegacyRecords(t *testing.T) {
	store := NewPetStore(writeFile(t, "pets.json", legacyPets))
	ctx := context.Background()

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	// Campos ausentes => defaults.
	krypto := all[0]
	assert.Equal(t, "3", krypto.OwnerID)
	assert.Equal(t, pets.DefaultStats(), krypto.Stats)
	assert.Empty(t, krypto.Activities)

	// ownerId string y número normalizan igual; stats fuera de rango se acotan.
	streaky := all[1]
	assert.Equal(t, "3", streaky.OwnerID)
	assert.Equal(t, 0, streaky.Happiness)
	assert.Equal(t, 100, streaky.Hunger)
	assert.Equal(t, pets.HealthSick, streaky.Health)
	require.Len(t, streaky.Activities, 1)
	assert.Equal(t, pets.ActivityPlay, streaky.Activities[0].Kind)

	assert.Equal(t, "", all[2].OwnerID)

	owned, err := store.ListByOwner(ctx, "3")
	require.NoError(t, err)
	assert.Len(t, owned, 2)
}

func TestPetStore_CreateAdoptActivityPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pets.json")
	store := NewPetStore(path)
	ctx := context.Background()

	p, err := store.Create(ctx, pets.Pet{Name: "Ace", Stats: pets.DefaultStats()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)

	_, err = store.SetOwner(ctx, p.ID, "9")
	require.NoError(t, err)
	_, err = store.SetOwner(ctx, p.ID, "10")
	assert.ErrorIs(t, err, pets.ErrAlreadyAdopted)

	stats := p.Stats
	stats.Health = pets.HealthSick
	entry := pets.ActivityEntry{Kind: pets.ActivityFeed, At: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), Result: "enfermo por hambre en 0"}
	_, err = store.ApplyActivity(ctx, p.ID, stats, entry)
	require.NoError(t, err)

	_, err = store.AddItem(ctx, p.ID, pets.Item{Name: "capa"})
	require.NoError(t, err)

	// Otra instancia sobre el mismo archivo ve todo lo escrito.
	reloaded, err := NewPetStore(path).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "9", reloaded.OwnerID)
	assert.Equal(t, pets.HealthSick, reloaded.Health)
	require.Len(t, reloaded.Activities, 1)
	assert.Equal(t, "enfermo por hambre en 0", reloaded.Activities[0].Result)
	assert.True(t, entry.At.Equal(reloaded.Activities[0].At))
	assert.Equal(t, []pets.Item{{Name: "capa"}}, reloaded.Items)

	// ownerId numérico se escribe como número.
	var raw []map[string]any
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.EqualValues(t, 9, raw[0]["ownerId"])

	_, err = store.GetByID(ctx, 42)
	assert.ErrorIs(t, err, pets.ErrNotFound)
}

func TestHeroStore_CRUD(t *testing.T) {
	store := NewHeroStore(writeFile(t, "superheroes.json", `[{"id": 5, "name": "Bruce", "alias": "Batman", "city": "Gotham", "team": "JL"}]`))
	ctx := context.Background()

	h, err := store.Create(ctx, heroes.Hero{Name: "Clark", Alias: "Superman"})
	require.NoError(t, err)
	assert.Equal(t, int64(6), h.ID)

	found, err := store.FindByName(ctx, "Bruce")
	require.NoError(t, err)
	assert.Equal(t, int64(5), found.ID)
	assert.Empty(t, found.Password)

	require.NoError(t, store.SetPassword(ctx, 5, "alfred"))
	found.City = "Bludhaven"
	updated, err := store.Update(ctx, found)
	require.NoError(t, err)
	assert.Equal(t, "alfred", updated.Password)

	got, err := store.GetByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Bludhaven", got.City)
	assert.Equal(t, "alfred", got.Password)

	require.NoError(t, store.Delete(ctx, 5))
	assert.ErrorIs(t, store.Delete(ctx, 5), heroes.ErrNotFound)

	_, err = store.FindByName(ctx, "Bruce")
	assert.ErrorIs(t, err, heroes.ErrNotFound)
}

func TestStores_MissingFileIsEmpty(t *testing.T) {
	dir := t.TempDir()

	all, err := NewPetStore(filepath.Join(dir, "none.json")).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)

	hs, err := NewHeroStore(filepath.Join(dir, "none.json")).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, hs)
}
