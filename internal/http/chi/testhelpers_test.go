package chi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/marcelsud/troquecommerce-bridge/webhook"
	"github.com/marcelsud/troquecommerce-bridge/webhook/secret"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	testPrefix = "/api/troquecommerce"
	testToken  = "MyWebhookSecret123"
)

// lookupSpy records submitted order numbers
type lookupSpy struct {
	mu     sync.Mutex
	orders []string
}

func (s *lookupSpy) Submit(orderNumber string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, orderNumber)
	return true
}

func (s *lookupSpy) submitted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.orders...)
}

// recorderSpy counts outcomes by name
type recorderSpy struct {
	mu       sync.Mutex
	webhooks []string
	proxies  []int
}

func (r *recorderSpy) RecordWebhook(_ context.Context, code, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.webhooks = append(r.webhooks, code+":"+outcome)
}

func (r *recorderSpy) RecordLookup(context.Context, string) {}

func (r *recorderSpy) RecordProxy(_ context.Context, _ string, status int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.proxies = append(r.proxies, status)
}

func testDeps(t *testing.T, events webhook.UseCase) Deps {
	t.Helper()
	allow, err := webhook.ParseAllowList("6,21,3")
	require.NoError(t, err)
	return Deps{
		Prefix:    testPrefix,
		Secret:    secret.New(testToken),
		AllowList: allow,
		Events:    events,
		Logger:    zerolog.Nop(),
	}
}

func do(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
