package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citefix/citefix-cli/internal/domain"
)

func TestListUsersValidatesEnvelope(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"utilisateurs": []any{}})
	})
	c := testClient(t, "tok", handler)
	_, err := c.ListUsers(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponse, "a response without the data array is rejected")
}

func TestListUsersNormalizesRecords(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{
			{"_id": "u-1", "email": "a@b.c"},
		}})
	})
	c := testClient(t, "tok", handler)
	users, err := c.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, domain.RoleUser, users[0].Role)
	assert.Equal(t, domain.UserStatusActive, users[0].Status)
}

func TestListSignalementsCachesBetweenCalls(t *testing.T) {
	var hits int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{
			{"_id": "s-1", "titre": "Nid de poule", "categorie": "infrastructure", "statut": "en_attente"},
		}})
	})
	c := testClient(t, "", handler)

	first, err := c.ListSignalements(context.Background())
	require.NoError(t, err)
	second, err := c.ListSignalements(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, hits, "second list served from cache")
}

func TestMutationInvalidatesSignalementCache(t *testing.T) {
	var listHits int
	mux := http.NewServeMux()
	mux.HandleFunc("GET /signalements", func(w http.ResponseWriter, r *http.Request) {
		listHits++
		json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{}})
	})
	mux.HandleFunc("POST /signalements/s-1/validate", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "approve", body["action"])
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("{}"))
	})
	c := testClient(t, "tok-admin", mux)

	_, err := c.ListSignalements(context.Background())
	require.NoError(t, err)
	require.NoError(t, c.ValidateSignalement(context.Background(), "s-1", ValidationApprove, "vu sur place"))
	_, err = c.ListSignalements(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, listHits, "validation drops the cached list")
}

func TestGetSignalementUnwrapsEnvelope(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/signalements/s-7", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{
			"_id":   "s-7",
			"titre": "Éclairage défaillant",
			"localisation": map[string]any{
				"adresse":     "Rue de la Paix",
				"coordonnees": map[string]any{"lat": 6.37, "lng": 2.42},
			},
			"signalePar": "u-2",
		}})
	})
	c := testClient(t, "", handler)

	sig, err := c.GetSignalement(context.Background(), "s-7")
	require.NoError(t, err)
	assert.Equal(t, "Éclairage défaillant", sig.Title)
	require.NotNil(t, sig.Location.Coordinates)
	assert.InDelta(t, 6.37, sig.Location.Coordinates.Lat, 1e-9)
	require.NotNil(t, sig.ReportedBy)
	assert.Equal(t, "u-2", sig.ReportedBy.ID)
	assert.Equal(t, domain.StatusNew, sig.Status, "missing statut coerced to default")
}

func TestCreateSignalementSendsGeoJSON(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		loc := body["localisation"].(map[string]any)
		coords := loc["coordonnees"].(map[string]any)
		assert.Equal(t, "Point", coords["type"])
		pair := coords["coordinates"].([]any)
		assert.InDelta(t, 2.42, pair[0].(float64), 1e-9, "GeoJSON order is [lng, lat]")
		assert.InDelta(t, 6.37, pair[1].(float64), 1e-9)
		assert.Equal(t, "u-1", body["signalePar"])
		assert.Equal(t, []any{}, body["photos"], "photos never serialized as null")

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"_id": "s-new"}})
	})
	c := testClient(t, "tok", handler)

	created, err := c.CreateSignalement(context.Background(), NewSignalement{
		Title:       "Nid de poule",
		Description: "Important nid de poule près du marché",
		Category:    domain.CategoryInfrastructure,
		Location: domain.Location{
			Address:     "Avenue des Martyrs",
			Coordinates: &domain.GeoPoint{Lat: 6.37, Lng: 2.42},
		},
		ReportedBy: "u-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "s-new", created.ID)
}
