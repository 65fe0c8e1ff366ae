package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mangum87/Charis/internal/repository"
	"github.com/Mangum87/Charis/internal/server/handlers"
	"github.com/Mangum87/Charis/internal/server/router"
	"github.com/Mangum87/Charis/internal/service/distribution"
	"github.com/Mangum87/Charis/internal/service/kits"
	"github.com/Mangum87/Charis/internal/store"
)

const testSecret = "test-secret"

type api struct {
	engine *gin.Engine
	store  *store.MemStore
	users  *repository.UserRepository
}

func newAPI(t *testing.T) *api {
	t.Helper()

	st := store.NewMemStore()
	users := repository.NewUserRepository(st, nil)
	cats := repository.NewCategoryRepository(st, nil)
	locs := repository.NewLocationRepository(st, nil)
	items := repository.NewItemRepository(st, cats, locs, nil)
	kitSvc := kits.NewService(st, items, nil)
	distSvc := distribution.NewService(st, items, users, nil)

	engine := router.New(router.Handlers{
		Auth:          handlers.NewAuthHandler(users, testSecret, nil),
		Items:         handlers.NewItemsHandler(items, cats, locs, nil),
		Catalog:       handlers.NewCatalogHandler(cats, locs, nil),
		Kits:          handlers.NewKitsHandler(kitSvc, items, nil),
		Distributions: handlers.NewDistributionsHandler(distSvc, items, users, nil),
		Users:         handlers.NewUsersHandler(users, nil),
	}, testSecret, nil)

	return &api{engine: engine, store: st, users: users}
}

func (a *api) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *api) login(t *testing.T, username, password string) string {
	t.Helper()

	w := a.do(t, http.MethodPost, "/login", "", gin.H{"username": username, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token, _ := resp["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestLogin(t *testing.T) {
	a := newAPI(t)
	require.NotNil(t, a.users.CreateUser("jody", "hunter2", true, true, "Jody", "Smith"))

	token := a.login(t, "jody", "hunter2")
	assert.NotEmpty(t, token)

	w := a.do(t, http.MethodPost, "/login", "", gin.H{"username": "jody", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginInactiveAccount(t *testing.T) {
	a := newAPI(t)
	require.NotNil(t, a.users.CreateUser("jody", "hunter2", false, false, "Jody", "Smith"))

	w := a.do(t, http.MethodPost, "/login", "", gin.H{"username": "jody", "password": "hunter2"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoutesRequireToken(t *testing.T) {
	a := newAPI(t)

	w := a.do(t, http.MethodGet, "/kits", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(t, http.MethodGet, "/kits", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestItemRoundTripOverHTTP(t *testing.T) {
	a := newAPI(t)
	require.NotNil(t, a.users.CreateUser("jody", "hunter2", false, true, "Jody", "Smith"))
	token := a.login(t, "jody", "hunter2")

	w := a.do(t, http.MethodPost, "/categories", token, gin.H{"name": "clothing"})
	require.Equal(t, http.StatusCreated, w.Code)
	var cat map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cat))

	w = a.do(t, http.MethodPost, "/locations", token, gin.H{"name": "back room"})
	require.Equal(t, http.StatusCreated, w.Code)
	var loc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loc))

	w = a.do(t, http.MethodPost, "/items", token, gin.H{
		"sellable":    true,
		"received":    "2024-06-12T00:00:00Z",
		"description": "winter coat",
		"condition":   1,
		"quantity":    4,
		"price":       -3.50,
		"category":    cat["id"],
		"location":    loc["id"],
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id, _ := created["id"].(string)
	require.Len(t, id, 13)
	// Negative price clamps to zero on the way in.
	assert.Equal(t, 0.0, created["price"])

	w = a.do(t, http.MethodGet, "/items/"+id+"?sellable=true", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "winter coat", got["description"])
	assert.Equal(t, float64(4), got["quantity"])
	assert.Equal(t, "good", got["condition"])

	w = a.do(t, http.MethodGet, "/items/0000000000000", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserAdminRequiresAdminToken(t *testing.T) {
	a := newAPI(t)
	require.NotNil(t, a.users.CreateUser("staff", "hunter2", false, true, "Staff", "Member"))
	token := a.login(t, "staff", "hunter2")

	w := a.do(t, http.MethodPost, "/users", token, gin.H{
		"username": "newbie", "password": "pw", "active": true,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	require.NotNil(t, a.users.CreateUser("boss", "hunter2", true, true, "Boss", "Person"))
	admin := a.login(t, "boss", "hunter2")

	w = a.do(t, http.MethodPost, "/users", admin, gin.H{
		"username": "newbie", "password": "pw", "active": true,
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestRecordDistributionOverHTTP(t *testing.T) {
	a := newAPI(t)
	require.NotNil(t, a.users.CreateUser("jody", "hunter2", false, true, "Jody", "Smith"))
	token := a.login(t, "jody", "hunter2")

	w := a.do(t, http.MethodPost, "/categories", token, gin.H{"name": "clothing"})
	require.Equal(t, http.StatusCreated, w.Code)
	var cat map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cat))

	w = a.do(t, http.MethodPost, "/locations", token, gin.H{"name": "back room"})
	require.Equal(t, http.StatusCreated, w.Code)
	var loc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loc))

	w = a.do(t, http.MethodPost, "/items", token, gin.H{
		"sellable": true,
		"received": "2024-06-12T00:00:00Z",
		"quantity": 5,
		"price":    3.0,
		"category": cat["id"],
		"location": loc["id"],
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var item map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))

	w = a.do(t, http.MethodPost, "/distributions", token, gin.H{
		"amount": 6.30,
		"date":   "2024-06-15T10:00:00Z",
		"lines": []gin.H{
			{"id": item["id"], "sellable": true, "quantity": 2},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 1, a.store.Count("Distribution"))
	assert.Equal(t, 1, a.store.Count("Dist_Item"))

	w = a.do(t, http.MethodGet, "/distributions?month=6&year=2024", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dists []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dists))
	require.Len(t, dists, 1)
	assert.Equal(t, 6.30, dists[0]["amount"])
}
