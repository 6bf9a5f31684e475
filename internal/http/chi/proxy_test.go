package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/marcelsud/troquecommerce-bridge/webhook/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTroquecommerce captures what the proxy forwards
type fakeTroquecommerce struct {
	*httptest.Server
	mu       sync.Mutex
	hits     int
	path     string
	query    url.Values
	token    string
	status   int
	body     string
	bodyType string
}

func newFakeTroquecommerce(t *testing.T) *fakeTroquecommerce {
	t.Helper()
	f := &fakeTroquecommerce{status: http.StatusOK, body: `{"orders":[]}`}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.hits++
		f.path = r.URL.Path
		f.query = r.URL.Query()
		f.token = r.Header.Get("token")
		if f.bodyType != "" {
			w.Header().Set("Content-Type", f.bodyType)
		}
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(f.body))
	}))
	t.Cleanup(f.Close)
	return f
}

type forwarded struct {
	path  string
	query url.Values
	token string
}

func (f *fakeTroquecommerce) last() forwarded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return forwarded{path: f.path, query: f.query, token: f.token}
}

func (f *fakeTroquecommerce) respond(status int, body, contentType string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status, f.body, f.bodyType = status, body, contentType
}

func (f *fakeTroquecommerce) requests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits
}

func proxyBody(t *testing.T, fields map[string]any) string {
	t.Helper()
	data, err := json.Marshal(fields)
	require.NoError(t, err)
	return string(data)
}

func TestPostOrderList(t *testing.T) {
	path := testPrefix + "/order-list"

	t.Run("forwards present params and token", func(t *testing.T) {
		upstream := newFakeTroquecommerce(t)
		h := Handlers(context.Background(), testDeps(t, mocks.NewUseCase(t)))

		w := do(t, h, http.MethodPost, path, proxyBody(t, map[string]any{
			"baseUrl":                  upstream.URL + "/api/public",
			"token":                    "caller-token",
			"status":                   "approved",
			"page":                     2,
			"unchecked_by_integration": false,
		}), nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `{"orders":[]}`, w.Body.String())
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		got := upstream.last()
		assert.Equal(t, "/api/public/order/list", got.path)
		assert.Equal(t, "caller-token", got.token)
		assert.Equal(t, "approved", got.query.Get("status"))
		assert.Equal(t, "2", got.query.Get("page"))
		assert.Equal(t, "false", got.query.Get("unchecked_by_integration"))
		assert.NotContains(t, got.query, "start_date")
		assert.NotContains(t, got.query, "end_date")
	})

	t.Run("trailing separator on baseUrl is irrelevant", func(t *testing.T) {
		upstream := newFakeTroquecommerce(t)
		h := Handlers(context.Background(), testDeps(t, mocks.NewUseCase(t)))

		do(t, h, http.MethodPost, path, proxyBody(t, map[string]any{"baseUrl": upstream.URL + "/api/public/", "token": "t"}), nil)
		withSlash := upstream.last()
		do(t, h, http.MethodPost, path, proxyBody(t, map[string]any{"baseUrl": upstream.URL + "/api/public", "token": "t"}), nil)
		without := upstream.last()

		assert.Equal(t, "/api/public/order/list", withSlash.path)
		assert.Equal(t, withSlash.path, without.path)
		assert.Empty(t, without.query)
	})

	t.Run("missing fields make no upstream call", func(t *testing.T) {
		upstream := newFakeTroquecommerce(t)
		rec := &recorderSpy{}
		d := testDeps(t, mocks.NewUseCase(t))
		d.Recorder = rec

		w := do(t, Handlers(context.Background(), d), http.MethodPost, path, proxyBody(t, map[string]any{"baseUrl": upstream.URL}), nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"baseUrl and token are required","missing":["token"]}`, w.Body.String())
		assert.Zero(t, upstream.requests())
		assert.Equal(t, []int{http.StatusBadRequest}, rec.proxies)
	})

	t.Run("empty body", func(t *testing.T) {
		w := do(t, Handlers(context.Background(), testDeps(t, mocks.NewUseCase(t))), http.MethodPost, path, "", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"missing":["baseUrl","token"]`)
	})

	t.Run("invalid baseUrl", func(t *testing.T) {
		w := do(t, Handlers(context.Background(), testDeps(t, mocks.NewUseCase(t))), http.MethodPost, path,
			proxyBody(t, map[string]any{"baseUrl": "not a url", "token": "t"}), nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp errorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Invalid baseUrl", resp.Message)
		assert.NotEmpty(t, resp.Details)
	})

	t.Run("upstream error relayed verbatim", func(t *testing.T) {
		upstream := newFakeTroquecommerce(t)
		upstream.respond(http.StatusUnauthorized, `{"error":"invalid token"}`, "application/json")

		w := do(t, Handlers(context.Background(), testDeps(t, mocks.NewUseCase(t))), http.MethodPost, path,
			proxyBody(t, map[string]any{"baseUrl": upstream.URL, "token": "bad"}), nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, `{"error":"invalid token"}`, w.Body.String())
	})

	t.Run("upstream error without body sends the reason phrase", func(t *testing.T) {
		upstream := newFakeTroquecommerce(t)
		upstream.respond(http.StatusNotFound, "", "")

		w := do(t, Handlers(context.Background(), testDeps(t, mocks.NewUseCase(t))), http.MethodPost, path,
			proxyBody(t, map[string]any{"baseUrl": upstream.URL, "token": "t"}), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Not Found", w.Body.String())
	})

	t.Run("transport failure", func(t *testing.T) {
		upstream := newFakeTroquecommerce(t)
		base := upstream.URL
		upstream.Close()

		w := do(t, Handlers(context.Background(), testDeps(t, mocks.NewUseCase(t))), http.MethodPost, path,
			proxyBody(t, map[string]any{"baseUrl": base, "token": "t"}), nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var resp errorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Erro ao consultar Troquecommerce", resp.Message)
		assert.NotEmpty(t, resp.Details)
	})
}

func TestPostOrderDetail(t *testing.T) {
	path := testPrefix + "/order-detail"

	t.Run("ecommerce_number takes precedence over id", func(t *testing.T) {
		upstream := newFakeTroquecommerce(t)
		upstream.respond(http.StatusOK, `{"id":"rev-1"}`, "")

		w := do(t, Handlers(context.Background(), testDeps(t, mocks.NewUseCase(t))), http.MethodPost, path,
			proxyBody(t, map[string]any{"baseUrl": upstream.URL, "token": "t", "id": "rev-1", "ecommerce_number": "100200"}), nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `{"id":"rev-1"}`, w.Body.String())
		got := upstream.last()
		assert.Equal(t, "/order", got.path)
		assert.Equal(t, "100200", got.query.Get("ecommerce_number"))
		assert.Len(t, got.query, 1)
	})

	t.Run("id is sent as ecommerce_number", func(t *testing.T) {
		upstream := newFakeTroquecommerce(t)

		w := do(t, Handlers(context.Background(), testDeps(t, mocks.NewUseCase(t))), http.MethodPost, path,
			proxyBody(t, map[string]any{"baseUrl": upstream.URL, "token": "t", "id": 42}), nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "42", upstream.last().query.Get("ecommerce_number"))
	})

	t.Run("missing order identifier", func(t *testing.T) {
		upstream := newFakeTroquecommerce(t)

		w := do(t, Handlers(context.Background(), testDeps(t, mocks.NewUseCase(t))), http.MethodPost, path,
			proxyBody(t, map[string]any{"baseUrl": upstream.URL, "token": "t"}), nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "id or ecommerce_number")
		assert.Zero(t, upstream.requests())
	})

	t.Run("malformed body", func(t *testing.T) {
		w := do(t, Handlers(context.Background(), testDeps(t, mocks.NewUseCase(t))), http.MethodPost, path, `{"baseUrl":`, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid JSON body")
	})
}

func TestProxyRequest_Fields(t *testing.T) {
	req := proxyRequest{
		"empty":  "",
		"null":   nil,
		"false":  false,
		"true":   true,
		"zero":   json.Number("0"),
		"number": json.Number("12"),
		"text":   "abc",
	}

	assert.Empty(t, req.text("absent"))
	assert.Empty(t, req.text("empty"))
	assert.Empty(t, req.text("null"))
	assert.Empty(t, req.text("false"))
	assert.Empty(t, req.text("zero"))
	assert.Equal(t, "true", req.text("true"))
	assert.Equal(t, "12", req.text("number"))
	assert.Equal(t, "abc", req.text("text"))

	assert.Equal(t, "false", req.defined("false"))
	assert.Equal(t, "0", req.defined("zero"))
	assert.Empty(t, req.defined("null"))
	assert.Empty(t, req.defined("absent"))
}
