package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"superhero-pets/internal/adapters/auth/jwtauth"
	mem "superhero-pets/internal/adapters/storage/memory"
	"superhero-pets/internal/domain/heroes"
	"superhero-pets/internal/domain/pets"
	"superhero-pets/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	url     string
	petRepo pets.Repository
}

func newEnv(t *testing.T, mutate func(*router.Options)) testEnv {
	t.Helper()

	authn, err := jwtauth.New(jwtauth.Config{Secret: "test-secret"})
	require.NoError(t, err)

	petRepo := mem.NewPetRepo()
	opts := router.Options{
		AuthVerifier: authn,
		TokenIssuer:  authn,
		PetRepo:      petRepo,
		HeroRepo:     mem.NewHeroRepo(),
	}
	if mutate != nil {
		mutate(&opts)
	}

	ts := httptest.NewServer(router.NewRouter(opts))
	t.Cleanup(ts.Close)
	return testEnv{url: ts.URL, petRepo: petRepo}
}

func doReq(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	out, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, out
}

func decode(t *testing.T, b []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m), "body=%s", string(b))
	return m
}

func login(t *testing.T, baseURL, name, password string) string {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", "/api/login", "", map[string]any{"name": name, "password": password})
	require.Equal(t, http.StatusOK, st, "login body=%s", string(body))
	tok, _ := decode(t, body)["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

// seedPet crea la mascota directo en el store para fijar stats arbitrarios.
func seedPet(t *testing.T, env testEnv, owner string, stats pets.Stats) string {
	t.Helper()
	p, err := env.petRepo.Create(context.Background(), pets.Pet{Name: "Krypto", Type: "perro", Stats: stats})
	require.NoError(t, err)
	if owner != "" {
		_, err = env.petRepo.SetOwner(context.Background(), p.ID, owner)
		require.NoError(t, err)
	}
	return strconv.FormatInt(p.ID, 10)
}

func TestHTTP_HealthBannerAndMetrics(t *testing.T) {
	env := newEnv(t, nil)

	st, body := doReq(t, env.url, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Equal(t, "ok", string(body))

	st, body = doReq(t, env.url, "GET", "/", "", nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Contains(t, string(body), "/api/pets")

	st, body = doReq(t, env.url, "GET", "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Contains(t, string(body), "superhero_pets_http_requests_total")
}

func TestHTTP_Login(t *testing.T) {
	env := newEnv(t, nil)

	// Primer login registra al héroe.
	login(t, env.url, "Bruce", "secreto")
	login(t, env.url, "Bruce", "secreto")

	st, body := doReq(t, env.url, "POST", "/api/login", "", map[string]any{"name": "Bruce", "password": "SECRETO"})
	assert.Equal(t, http.StatusBadRequest, st)
	assert.Equal(t, "Contraseña incorrecta", decode(t, body)["error"])

	st, body = doReq(t, env.url, "POST", "/api/login", "", map[string]any{"name": "Bruce"})
	assert.Equal(t, http.StatusBadRequest, st)
	assert.Equal(t, "Nombre y contraseña requeridos", decode(t, body)["error"])
}

func TestHTTP_LoginBootstrapsPasswordOfExistingHero(t *testing.T) {
	env := newEnv(t, nil)

	st, _ := doReq(t, env.url, "POST", "/api/heroes", "", map[string]any{"name": "Clark", "alias": "Superman"})
	require.Equal(t, http.StatusCreated, st)

	login(t, env.url, "Clark", "kripton")

	st, _ = doReq(t, env.url, "POST", "/api/login", "", map[string]any{"name": "Clark", "password": "otra"})
	assert.Equal(t, http.StatusBadRequest, st)
}

func TestHTTP_LoginRateLimited(t *testing.T) {
	env := newEnv(t, func(o *router.Options) {
		o.LoginRatePerSec = 0.001
		o.LoginBurst = 1
	})

	login(t, env.url, "Diana", "amazona")

	st, body := doReq(t, env.url, "POST", "/api/login", "", map[string]any{"name": "Diana", "password": "amazona"})
	assert.Equal(t, http.StatusTooManyRequests, st)
	assert.Contains(t, decode(t, body), "error")
}

func TestHTTP_AdoptFlow(t *testing.T) {
	env := newEnv(t, nil)

	st, body := doReq(t, env.url, "POST", "/api/pets", "", map[string]any{"name": "Ace", "type": "perro", "superPower": "olfato"})
	require.Equal(t, http.StatusCreated, st)
	created := decode(t, body)
	assert.Nil(t, created["ownerId"])
	assert.EqualValues(t, 50, created["felicidad"])
	assert.Equal(t, "sano", created["salud"])
	petID := strconv.FormatInt(int64(created["id"].(float64)), 10)

	// Sin token
	st, body = doReq(t, env.url, "POST", "/api/pets/"+petID+"/adopt", "", nil)
	assert.Equal(t, http.StatusUnauthorized, st)
	assert.Equal(t, "Token no proporcionado", decode(t, body)["error"])

	// Token inválido
	st, body = doReq(t, env.url, "POST", "/api/pets/"+petID+"/adopt", "basura", nil)
	assert.Equal(t, http.StatusUnauthorized, st)
	assert.Equal(t, "Token inválido o expirado", decode(t, body)["error"])

	bruce := login(t, env.url, "Bruce", "secreto")
	clark := login(t, env.url, "Clark", "kripton")

	st, body = doReq(t, env.url, "POST", "/api/pets/"+petID+"/adopt", bruce, nil)
	require.Equal(t, http.StatusOK, st, "body=%s", string(body))
	assert.Equal(t, "1", decode(t, body)["ownerId"])

	// Una sola vez
	st, _ = doReq(t, env.url, "POST", "/api/pets/"+petID+"/adopt", clark, nil)
	assert.Equal(t, http.StatusConflict, st)

	st, body = doReq(t, env.url, "GET", "/api/pets/"+petID, "", nil)
	require.Equal(t, http.StatusOK, st)
	assert.Equal(t, "1", decode(t, body)["ownerId"])

	st, _ = doReq(t, env.url, "POST", "/api/pets/999/adopt", bruce, nil)
	assert.Equal(t, http.StatusNotFound, st)

	// Disponibles para adopción
	st, body = doReq(t, env.url, "GET", "/api/pets?adopted=false", "", nil)
	require.Equal(t, http.StatusOK, st)
	var available []map[string]any
	require.NoError(t, json.Unmarshal(body, &available))
	assert.Empty(t, available)
}

func TestHTTP_PlayOwnershipAndEnergy(t *testing.T) {
	env := newEnv(t, nil)
	bruce := login(t, env.url, "Bruce", "secreto")
	clark := login(t, env.url, "Clark", "kripton")

	petID := seedPet(t, env, "1", pets.DefaultStats())

	st, body := doReq(t, env.url, "POST", "/api/pets/"+petID+"/play", clark, nil)
	assert.Equal(t, http.StatusForbidden, st)
	assert.Equal(t, "No tienes acceso a esta mascota", decode(t, body)["error"])

	st, body = doReq(t, env.url, "POST", "/api/pets/"+petID+"/play", bruce, nil)
	require.Equal(t, http.StatusOK, st, "body=%s", string(body))
	resp := decode(t, body)
	assert.Equal(t, "¡Jugar con la mascota fue exitoso!", resp["message"])
	pet := resp["pet"].(map[string]any)
	assert.EqualValues(t, 60, pet["felicidad"])
	assert.EqualValues(t, 40, pet["energia"])
	acts := pet["actividades"].([]any)
	require.Len(t, acts, 1)
	entry := acts[0].(map[string]any)
	assert.Equal(t, "jugar", entry["tipo"])
	assert.EqualValues(t, 10, entry["felicidadAumentada"])
	assert.EqualValues(t, 10, entry["energiaConsumida"])

	tired := seedPet(t, env, "1", pets.Stats{Happiness: 50, Hunger: 50, Energy: 5, Cleanliness: 50, Health: pets.HealthHealthy})
	st, body = doReq(t, env.url, "POST", "/api/pets/"+tired+"/play", bruce, nil)
	assert.Equal(t, http.StatusBadRequest, st)
	assert.Equal(t, "La mascota no tiene suficiente energía para jugar", decode(t, body)["error"])

	// Mascota sin dueño: nadie puede jugar.
	stray := seedPet(t, env, "", pets.DefaultStats())
	st, _ = doReq(t, env.url, "POST", "/api/pets/"+stray+"/play", bruce, nil)
	assert.Equal(t, http.StatusForbidden, st)

	st, _ = doReq(t, env.url, "POST", "/api/pets/abc/play", bruce, nil)
	assert.Equal(t, http.StatusBadRequest, st)

	st, _ = doReq(t, env.url, "POST", "/api/pets/404/play", bruce, nil)
	assert.Equal(t, http.StatusNotFound, st)
}

func TestHTTP_FeedAtZeroHungerPersistsSickness(t *testing.T) {
	env := newEnv(t, nil)
	bruce := login(t, env.url, "Bruce", "secreto")

	petID := seedPet(t, env, "1", pets.Stats{Happiness: 50, Hunger: 0, Energy: 50, Cleanliness: 50, Health: pets.HealthHealthy})

	st, body := doReq(t, env.url, "POST", "/api/pets/"+petID+"/feed", bruce, nil)
	require.Equal(t, http.StatusBadRequest, st)
	resp := decode(t, body)
	assert.Equal(t, "La mascota está enferma porque el hambre es 0", resp["error"])
	assert.Equal(t, "enfermo", resp["pet"].(map[string]any)["salud"])

	// La mutación quedó guardada a pesar del 400.
	st, body = doReq(t, env.url, "GET", "/api/pets/"+petID, "", nil)
	require.Equal(t, http.StatusOK, st)
	stored := decode(t, body)
	assert.Equal(t, "enfermo", stored["salud"])
	acts := stored["actividades"].([]any)
	require.Len(t, acts, 1)
	assert.Equal(t, "enfermo por hambre en 0", acts[0].(map[string]any)["resultado"])

	for _, action := range []string{"play", "sleep", "feed"} {
		st, body = doReq(t, env.url, "POST", "/api/pets/"+petID+"/"+action, bruce, nil)
		assert.Equal(t, http.StatusBadRequest, st, action)
		assert.Contains(t, decode(t, body)["error"], "enferma", action)
	}

	st, body = doReq(t, env.url, "POST", "/api/pets/"+petID+"/cure", bruce, nil)
	require.Equal(t, http.StatusOK, st)
	cured := decode(t, body)["pet"].(map[string]any)
	assert.Equal(t, "sano", cured["salud"])
	assert.EqualValues(t, 50, cured["hambre"])
	assert.EqualValues(t, 50, cured["energia"])
	assert.Len(t, cured["actividades"], 2)

	// Curar a una mascota sana no agrega entradas.
	st, body = doReq(t, env.url, "POST", "/api/pets/"+petID+"/cure", bruce, nil)
	require.Equal(t, http.StatusOK, st)
	assert.Len(t, decode(t, body)["pet"].(map[string]any)["actividades"], 2)
}

func TestHTTP_SleepAndFeedClamp(t *testing.T) {
	env := newEnv(t, nil)
	bruce := login(t, env.url, "Bruce", "secreto")

	petID := seedPet(t, env, "1", pets.Stats{Happiness: 95, Hunger: 5, Energy: 90, Cleanliness: 50, Health: pets.HealthHealthy})

	st, body := doReq(t, env.url, "POST", "/api/pets/"+petID+"/sleep", bruce, nil)
	require.Equal(t, http.StatusOK, st)
	pet := decode(t, body)["pet"].(map[string]any)
	assert.EqualValues(t, 100, pet["energia"])
	assert.EqualValues(t, 0, pet["hambre"])

	petID = seedPet(t, env, "1", pets.Stats{Happiness: 95, Hunger: 5, Energy: 50, Cleanliness: 50, Health: pets.HealthHealthy})
	st, body = doReq(t, env.url, "POST", "/api/pets/"+petID+"/feed", bruce, nil)
	require.Equal(t, http.StatusOK, st)
	pet = decode(t, body)["pet"].(map[string]any)
	assert.EqualValues(t, 100, pet["felicidad"])
	assert.EqualValues(t, 0, pet["hambre"])
}

func TestHTTP_HeroesCRUDAndPets(t *testing.T) {
	env := newEnv(t, nil)

	st, body := doReq(t, env.url, "POST", "/api/heroes", "", map[string]any{"name": "Bruce"})
	assert.Equal(t, http.StatusBadRequest, st)
	assert.Equal(t, "El alias es requerido", decode(t, body)["error"])

	st, body = doReq(t, env.url, "POST", "/api/heroes", "", map[string]any{"name": "Bruce", "alias": "Batman", "city": "Gotham"})
	require.Equal(t, http.StatusCreated, st)
	hero := decode(t, body)
	assert.NotContains(t, hero, "password")
	heroID := strconv.FormatInt(int64(hero["id"].(float64)), 10)

	st, body = doReq(t, env.url, "PUT", "/api/heroes/"+heroID, "", map[string]any{"team": "Liga de la Justicia"})
	require.Equal(t, http.StatusOK, st)
	updated := decode(t, body)
	assert.Equal(t, "Batman", updated["alias"])
	assert.Equal(t, "Liga de la Justicia", updated["team"])

	st, _ = doReq(t, env.url, "PUT", "/api/heroes/77", "", map[string]any{"team": "x"})
	assert.Equal(t, http.StatusNotFound, st)

	st, body = doReq(t, env.url, "GET", "/api/heroes/city/gotham", "", nil)
	require.Equal(t, http.StatusOK, st)
	var byCity []map[string]any
	require.NoError(t, json.Unmarshal(body, &byCity))
	assert.Len(t, byCity, 1)

	st, body = doReq(t, env.url, "POST", "/api/heroes/"+heroID+"/enfrentar", "", map[string]any{"villain": "Joker"})
	require.Equal(t, http.StatusOK, st)
	assert.Equal(t, "Batman enfrenta a Joker", decode(t, body)["message"])

	seedPet(t, env, heroID, pets.DefaultStats())

	st, body = doReq(t, env.url, "GET", "/api/pets/by-owner/Bruce", "", nil)
	require.Equal(t, http.StatusOK, st)
	var owned []map[string]any
	require.NoError(t, json.Unmarshal(body, &owned))
	assert.Len(t, owned, 1)

	st, _ = doReq(t, env.url, "GET", "/api/pets/by-owner/Nadie", "", nil)
	assert.Equal(t, http.StatusNotFound, st)

	st, body = doReq(t, env.url, "GET", "/api/heroes?include=pets", "", nil)
	require.Equal(t, http.StatusOK, st)
	var withPets []map[string]any
	require.NoError(t, json.Unmarshal(body, &withPets))
	require.Len(t, withPets, 1)
	assert.Len(t, withPets[0]["pets"], 1)

	st, body = doReq(t, env.url, "DELETE", "/api/heroes/"+heroID, "", nil)
	require.Equal(t, http.StatusOK, st)
	assert.Equal(t, "Héroe eliminado", decode(t, body)["message"])

	st, _ = doReq(t, env.url, "DELETE", "/api/heroes/"+heroID, "", nil)
	assert.Equal(t, http.StatusNotFound, st)
}

func TestHTTP_Items(t *testing.T) {
	env := newEnv(t, nil)
	petID := seedPet(t, env, "", pets.DefaultStats())

	st, body := doReq(t, env.url, "POST", "/api/pets/"+petID+"/items", "", map[string]any{"name": "capa"})
	require.Equal(t, http.StatusOK, st)
	items := decode(t, body)["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "capa", items[0].(map[string]any)["name"])

	st, _ = doReq(t, env.url, "POST", "/api/pets/"+petID+"/items", "", map[string]any{"name": " "})
	assert.Equal(t, http.StatusBadRequest, st)

	st, _ = doReq(t, env.url, "POST", "/api/pets/999/items", "", map[string]any{"name": "capa"})
	assert.Equal(t, http.StatusNotFound, st)
}

func TestHTTP_DevModeDebugHeader(t *testing.T) {
	env := newEnv(t, func(o *router.Options) { o.AuthVerifier = nil })
	petID := seedPet(t, env, "", pets.DefaultStats())

	req, err := http.NewRequest("POST", env.url+"/api/pets/"+petID+"/adopt", nil)
	require.NoError(t, err)
	req.Header.Set("X-Debug-Hero-ID", heroes.CanonicalID(7))

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
