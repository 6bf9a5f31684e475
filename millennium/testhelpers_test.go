package millennium

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeERP records every call and answers with canned bodies
type fakeERP struct {
	mu            sync.Mutex
	orderStatus   int
	orderBody     string
	invoiceStatus int
	invoiceBody   string

	orderCalls   int
	invoiceCalls int
	lastFilter   map[string]any
	lastQuery    string
}

func newFakeERP(t *testing.T) (*fakeERP, *httptest.Server) {
	t.Helper()
	erp := &fakeERP{orderStatus: http.StatusOK, invoiceStatus: http.StatusOK, orderBody: "[]", invoiceBody: "[]"}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		erp.mu.Lock()
		defer erp.mu.Unlock()
		switch r.URL.Path {
		case ordersPath:
			erp.orderCalls++
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			erp.lastFilter = map[string]any{}
			require.NoError(t, json.Unmarshal(body, &erp.lastFilter))
			w.WriteHeader(erp.orderStatus)
			_, _ = w.Write([]byte(erp.orderBody))
		case invoicesPath:
			erp.invoiceCalls++
			erp.lastQuery = r.URL.RawQuery
			w.WriteHeader(erp.invoiceStatus)
			_, _ = w.Write([]byte(erp.invoiceBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return erp, srv
}

func (f *fakeERP) calls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orderCalls, f.invoiceCalls
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(srv.URL+"/", "101", srv.Client())
	require.NoError(t, err)
	return c
}
