package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant/application/integration"
	"restaurant/config"
)

type recordingCrm struct {
	sent []integration.CrmOrder
	err  error
}

func (r *recordingCrm) Send(_ context.Context, order integration.CrmOrder) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, order)
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

type client struct {
	t       *testing.T
	handler http.Handler
}

func (c client) do(method, path string, body any) (int, envelope) {
	c.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	var env envelope
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func (c client) id(env envelope) string {
	c.t.Helper()
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(c.t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(c.t, created.ID)
	return created.ID
}

func testConfig(dbType, sqlitePath string) *config.Config {
	return &config.Config{
		App:      config.AppConfig{Name: "restaurant", Version: "test", Env: "test"},
		Database: config.DatabaseConfig{Type: dbType, SQLitePath: sqlitePath, AutoMigrate: true},
		Log:      config.LogConfig{Level: "error", Format: "json"},
	}
}

func buildApp(t *testing.T, cfg *config.Config, crm integration.CrmProvider) client {
	t.Helper()
	app, err := NewBuilder(cfg).WithCrmProvider(crm).Build(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { app.Shutdown(context.Background()) })
	return client{t: t, handler: app.Handler()}
}

func TestOrderLifecycle(t *testing.T) {
	storages := map[string]*config.Config{
		"memory": testConfig("memory", ""),
		"sqlite": testConfig("sqlite", "file:lifecycle?mode=memory&cache=shared"),
	}

	for name, cfg := range storages {
		t.Run(name, func(t *testing.T) {
			crm := &recordingCrm{}
			c := buildApp(t, cfg, crm)

			status, env := c.do(http.MethodPost, "/api/v1/menu", map[string]any{
				"name": "Borscht", "description": "Beet soup", "price": 450,
			})
			require.Equal(t, http.StatusCreated, status, env.Message)
			mealID := c.id(env)

			status, env = c.do(http.MethodPost, "/api/v1/menu", map[string]any{
				"name": "Borscht", "description": "Again", "price": 100,
			})
			assert.Equal(t, http.StatusConflict, status)
			assert.Equal(t, "ALREADY_EXISTS", env.Error)

			for i := 0; i < 2; i++ {
				status, env = c.do(http.MethodPost, "/api/v1/carts/alice/meals", map[string]any{"meal_id": mealID})
				require.Equal(t, http.StatusOK, status, env.Message)
			}

			checkout := map[string]any{
				"customer_id": "alice",
				"address":     map[string]any{"street": "Main street", "building": 7},
			}
			status, env = c.do(http.MethodPost, "/api/v1/orders/checkout", checkout)
			require.Equal(t, http.StatusCreated, status, env.Message)
			orderID := c.id(env)

			// The cart is gone once the order exists.
			status, env = c.do(http.MethodGet, "/api/v1/carts/alice", nil)
			assert.Equal(t, http.StatusNotFound, status)
			assert.Equal(t, "CART_NOT_FOUND", env.Error)

			status, _ = c.do(http.MethodPost, "/api/v1/orders/"+orderID+"/cancel", nil)
			assert.Equal(t, http.StatusUnprocessableEntity, status)

			status, env = c.do(http.MethodPost, "/api/v1/orders/"+orderID+"/pay", nil)
			require.Equal(t, http.StatusOK, status, env.Message)
			require.Len(t, crm.sent, 1)
			assert.Equal(t, orderID, crm.sent[0].ID)
			assert.Equal(t, int64(900), crm.sent[0].TotalPrice)

			status, env = c.do(http.MethodPost, "/api/v1/orders/"+orderID+"/confirm", nil)
			require.Equal(t, http.StatusOK, status, env.Message)

			status, env = c.do(http.MethodPost, "/api/v1/orders/"+orderID+"/confirm", nil)
			assert.Equal(t, http.StatusUnprocessableEntity, status)
			assert.Equal(t, "INVALID_ORDER_STATE", env.Error)

			status, env = c.do(http.MethodGet, "/api/v1/kitchen/orders", nil)
			require.Equal(t, http.StatusOK, status)
			var board []struct {
				ID    string `json:"id"`
				Items []struct {
					MealName string `json:"meal_name"`
					Count    int    `json:"count"`
				} `json:"items"`
				Cooked bool `json:"cooked"`
			}
			require.NoError(t, json.Unmarshal(env.Data, &board))
			require.Len(t, board, 1)
			assert.Equal(t, orderID, board[0].ID)
			assert.Equal(t, "Borscht", board[0].Items[0].MealName)
			assert.Equal(t, 2, board[0].Items[0].Count)

			status, env = c.do(http.MethodPost, "/api/v1/kitchen/orders/"+orderID+"/cook", nil)
			require.Equal(t, http.StatusOK, status, env.Message)

			status, env = c.do(http.MethodGet, "/api/v1/orders/"+orderID, nil)
			require.Equal(t, http.StatusOK, status)
			var details struct {
				State  string `json:"state"`
				Active bool   `json:"active"`
			}
			require.NoError(t, json.Unmarshal(env.Data, &details))
			assert.Equal(t, "COMPLETED", details.State)
			assert.False(t, details.Active)

			status, _ = c.do(http.MethodPost, "/api/v1/orders/"+orderID+"/cancel", nil)
			assert.Equal(t, http.StatusUnprocessableEntity, status)
		})
	}
}

func TestCheckoutFailures(t *testing.T) {
	c := buildApp(t, testConfig("memory", ""), &recordingCrm{})

	status, env := c.do(http.MethodPost, "/api/v1/orders/checkout", map[string]any{
		"customer_id": "bob",
		"address":     map[string]any{"street": "Main street", "building": 1},
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "CART_NOT_FOUND", env.Error)

	status, env = c.do(http.MethodPost, "/api/v1/orders/checkout", map[string]any{
		"customer_id": "bob",
		"address":     map[string]any{"street": "", "building": 1},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_ADDRESS", env.Error)
	assert.Equal(t, "Empty street", env.Message)

	status, env = c.do(http.MethodPost, "/api/v1/carts/bob/meals", map[string]any{"meal_id": "missing"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "MEAL_NOT_FOUND", env.Error)

	status, env = c.do(http.MethodPost, "/api/v1/menu", map[string]any{"name": "Tea", "description": "Black", "price": 50})
	require.Equal(t, http.StatusCreated, status)
	mealID := c.id(env)

	checkout := map[string]any{
		"customer_id": "bob",
		"address":     map[string]any{"street": "Main street", "building": 1},
	}
	c.do(http.MethodPost, "/api/v1/carts/bob/meals", map[string]any{"meal_id": mealID})
	status, _ = c.do(http.MethodPost, "/api/v1/orders/checkout", checkout)
	require.Equal(t, http.StatusCreated, status)

	c.do(http.MethodPost, "/api/v1/carts/bob/meals", map[string]any{"meal_id": mealID})
	status, env = c.do(http.MethodPost, "/api/v1/orders/checkout", checkout)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ALREADY_HAS_ACTIVE_ORDER", env.Error)
}

func TestListenerFailureSurfacesAsInternalError(t *testing.T) {
	crm := &recordingCrm{err: errors.New("crm down")}
	c := buildApp(t, testConfig("memory", ""), crm)

	_, env := c.do(http.MethodPost, "/api/v1/menu", map[string]any{"name": "Tea", "description": "Black", "price": 50})
	mealID := c.id(env)
	c.do(http.MethodPost, "/api/v1/carts/carol/meals", map[string]any{"meal_id": mealID})
	_, env = c.do(http.MethodPost, "/api/v1/orders/checkout", map[string]any{
		"customer_id": "carol",
		"address":     map[string]any{"street": "Main street", "building": 3},
	})
	orderID := c.id(env)

	status, env := c.do(http.MethodPost, "/api/v1/orders/"+orderID+"/pay", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", env.Message)
	assert.False(t, strings.Contains(env.Message, "crm down"))
}

func TestHealthEndpoints(t *testing.T) {
	c := buildApp(t, testConfig("sqlite", "file:health?mode=memory&cache=shared"), &recordingCrm{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil)
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec = httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRunStopsWhenContextIsCancelled(t *testing.T) {
	cfg := testConfig("memory", "")
	cfg.Server.Port = "0"
	app, err := NewBuilder(cfg).WithCrmProvider(&recordingCrm{}).Build(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunReturnsListenError(t *testing.T) {
	cfg := testConfig("memory", "")
	cfg.Server.Port = "-1"
	app, err := NewBuilder(cfg).WithCrmProvider(&recordingCrm{}).Build(context.Background())
	require.NoError(t, err)

	assert.Error(t, app.Run(context.Background()))
}
