package routes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/orderdesk/pkg/config"
	"github.com/angelmondragon/orderdesk/pkg/db/dbtest"
	"github.com/angelmondragon/orderdesk/pkg/logger"
	"github.com/angelmondragon/orderdesk/pkg/metrics"
	"github.com/angelmondragon/orderdesk/pkg/redis"
)

type envelope struct {
	Success      bool            `json:"success"`
	Data         json.RawMessage `json:"data"`
	Code         int             `json:"code"`
	ErrorMessage *string         `json:"errorMessage"`
}

type testServer struct {
	t       *testing.T
	handler http.Handler
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: config.AppEnvDev},
		RateLimit: config.RateLimitConfig{
			WriteWindow:     time.Minute,
			WriteIPLimit:    1000,
			WriteEmailLimit: 1000,
		},
		Idempotency: config.IdempotencyConfig{TTL: time.Hour},
		Metrics:     config.MetricsConfig{Enabled: true, Path: "/metrics"},
		CORS:        config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()
	logg := logger.New(logger.Options{Output: io.Discard})
	client := dbtest.NewSQLite(t)

	mr := miniredis.RunT(t)
	redisClient := redis.NewFromClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = redisClient.Close() })

	reg := prometheus.NewRegistry()
	svc, err := NewServices(client, metrics.NewOrderMetrics(reg), logg)
	require.NoError(t, err)

	handler := NewRouter(cfg, logg, Infra{
		DB:          client,
		Redis:       redisClient,
		Gatherer:    reg,
		HTTPMetrics: metrics.NewHTTPMetrics(reg),
	}, svc)
	return &testServer{t: t, handler: handler}
}

func (s *testServer) do(method, path, body string, headers ...string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	}
	return rec, env
}

func (s *testServer) createID(path, body string) int64 {
	s.t.Helper()
	rec, env := s.do(http.MethodPost, path, body)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	var out struct {
		ID int64 `json:"id"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &out))
	return out.ID
}

type orderView struct {
	ID          int64  `json:"id"`
	CustomerID  int64  `json:"customerId"`
	TotalAmount string `json:"totalAmount"`
	Items       []struct {
		ProductID  int64  `json:"productId"`
		Quantity   int    `json:"quantity"`
		UnitPrice  string `json:"unitPrice"`
		TotalPrice string `json:"totalPrice"`
	} `json:"orderItems"`
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t, testConfig())

	customerID := s.createID("/api/customers", `{"name":"Ana","email":"ana@example.com","phoneNumber":"+5511999990000"}`)
	penID := s.createID("/api/products", `{"name":"Pen","unitPrice":"2.50"}`)
	padID := s.createID("/api/products", `{"name":"Pad","unitPrice":4}`)

	body := fmt.Sprintf(`{"customerId":%d,"orderItems":[{"productId":%d,"quantity":3},{"productId":%d,"quantity":1}]}`, customerID, penID, padID)
	rec, env := s.do(http.MethodPost, "/api/orders", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created orderView
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, customerID, created.CustomerID)
	assert.Equal(t, "11.50", created.TotalAmount)
	require.Len(t, created.Items, 2)
	assert.Equal(t, penID, created.Items[0].ProductID)
	assert.Equal(t, "7.50", created.Items[0].TotalPrice)

	rec, _ = s.do(http.MethodPut, fmt.Sprintf("/api/products/%d", penID), `{"name":"Pen","unitPrice":"9.99"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = s.do(http.MethodGet, fmt.Sprintf("/api/orders/%d", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched orderView
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, "11.50", fetched.TotalAmount, "item prices are snapshots")

	rec, env = s.do(http.MethodGet, fmt.Sprintf("/api/orders/customer/%d", customerID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var byCustomer []orderView
	require.NoError(t, json.Unmarshal(env.Data, &byCustomer))
	assert.Len(t, byCustomer, 1)

	rec, env = s.do(http.MethodDelete, fmt.Sprintf("/api/customers/%d", customerID), "")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Customer has orders and cannot be deleted", *env.ErrorMessage)
	rec, env = s.do(http.MethodDelete, fmt.Sprintf("/api/products/%d", penID), "")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Product has order items and cannot be deleted", *env.ErrorMessage)

	rec, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/orders/%d", created.ID), "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())

	rec, env = s.do(http.MethodGet, fmt.Sprintf("/api/orders/%d", created.ID), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.ErrorMessage)
	assert.Equal(t, fmt.Sprintf("Order not found with ID: %d", created.ID), *env.ErrorMessage)

	rec, env = s.do(http.MethodGet, "/api/order-items", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", string(env.Data), "deleting an order removes its items")
}

func TestCreateOrderWithUnknownProductLeavesNoOrder(t *testing.T) {
	s := newTestServer(t, testConfig())
	customerID := s.createID("/api/customers", `{"name":"Ana","email":"ana@example.com","phoneNumber":"+5511999990000"}`)

	rec, env := s.do(http.MethodPost, "/api/orders", fmt.Sprintf(`{"customerId":%d,"orderItems":[{"productId":404,"quantity":1}]}`, customerID))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found with ID: 404", *env.ErrorMessage)

	_, env = s.do(http.MethodGet, "/api/orders", "")
	assert.Equal(t, "[]", string(env.Data))
}

func TestIdempotentOrderCreate(t *testing.T) {
	s := newTestServer(t, testConfig())
	customerID := s.createID("/api/customers", `{"name":"Ana","email":"ana@example.com","phoneNumber":"+5511999990000"}`)
	productID := s.createID("/api/products", `{"name":"Pen","unitPrice":"2.50"}`)
	body := fmt.Sprintf(`{"customerId":%d,"orderItems":[{"productId":%d,"quantity":1}]}`, customerID, productID)

	first, _ := s.do(http.MethodPost, "/api/orders", body, "Idempotency-Key", "order-1")
	second, _ := s.do(http.MethodPost, "/api/orders", body, "Idempotency-Key", "order-1")
	require.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())

	_, env := s.do(http.MethodGet, "/api/orders", "")
	var list []orderView
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	other := fmt.Sprintf(`{"customerId":%d,"orderItems":[{"productId":%d,"quantity":2}]}`, customerID, productID)
	rec, _ := s.do(http.MethodPost, "/api/orders", other, "Idempotency-Key", "order-1")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDuplicateEmailConflict(t *testing.T) {
	s := newTestServer(t, testConfig())
	s.createID("/api/suppliers", `{"name":"Acme","email":"sales@acme.com","phoneNumber":"+14155550100"}`)

	rec, env := s.do(http.MethodPost, "/api/suppliers", `{"name":"Acme 2","email":"sales@acme.com","phoneNumber":"+14155550101"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Supplier already exists with email: sales@acme.com", *env.ErrorMessage)
}

func TestWriteRateLimitOverHTTP(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.WriteIPLimit = 1
	s := newTestServer(t, cfg)

	s.createID("/api/products", `{"name":"Pen","unitPrice":"2.50"}`)
	rec, env := s.do(http.MethodPost, "/api/products", `{"name":"Pad","unitPrice":"2.50"}`)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Rate limit exceeded", *env.ErrorMessage)

	rec, _ = s.do(http.MethodGet, "/api/products", "")
	assert.Equal(t, http.StatusOK, rec.Code, "reads are not counted against the write limit")
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec, _ := s.do(http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := s.do(http.MethodGet, "/health/ready", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready","checks":{"database":"ok","redis":"ok"}}`, string(env.Data))

	s.do(http.MethodGet, "/api/customers", "")
	rec, _ = s.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",route="/api/customers`)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec, env := s.do(http.MethodGet, "/api/nothing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)

	rec, env = s.do(http.MethodPatch, "/api/customers/1", `{}`)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method PATCH not supported", *env.ErrorMessage)
}
