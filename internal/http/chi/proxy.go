package chi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/httplog"
	"github.com/marcelsud/troquecommerce-bridge/metrics"
	"github.com/marcelsud/troquecommerce-bridge/troquecommerce"
)

const (
	orderListEndpoint   = "order-list"
	orderDetailEndpoint = "order-detail"
)

// proxyRequest is the loosely typed body of the proxy routes. Callers send
// numbers, booleans or strings interchangeably.
type proxyRequest map[string]any

func decodeProxyRequest(r *http.Request) (proxyRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	req := proxyRequest{}
	if len(bytes.TrimSpace(body)) == 0 {
		return req, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		return nil, err
	}
	return req, nil
}

// text returns the field when it is truthy: not absent, null, false, zero or empty
func (p proxyRequest) text(key string) string {
	switch v := p[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return ""
	case json.Number:
		if f, err := v.Float64(); err == nil && f == 0 {
			return ""
		}
		return v.String()
	default:
		raw, _ := json.Marshal(v)
		return string(raw)
	}
}

// defined returns the field whenever it is present and not null, false included
func (p proxyRequest) defined(key string) string {
	switch v := p[key].(type) {
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	default:
		return p.text(key)
	}
}

// postOrderList handles POST {prefix}/order-list
func postOrderList(client *troquecommerce.Client, recorder metrics.Recorder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, ok := readProxyRequest(w, r, recorder, orderListEndpoint)
		if !ok {
			return
		}

		var missing []string
		baseURL, token := req.text("baseUrl"), req.text("token")
		if baseURL == "" {
			missing = append(missing, "baseUrl")
		}
		if token == "" {
			missing = append(missing, "token")
		}
		if len(missing) > 0 {
			rejectProxy(w, r, recorder, orderListEndpoint, errorResponse{Message: "baseUrl and token are required", Missing: missing})
			return
		}

		target, err := troquecommerce.Endpoint(baseURL, troquecommerce.OrderListPath)
		if err != nil {
			rejectProxy(w, r, recorder, orderListEndpoint, errorResponse{Message: "Invalid baseUrl", Details: err.Error()})
			return
		}
		troquecommerce.OrderListQuery{
			Status:                 req.text("status"),
			StartDate:              req.text("start_date"),
			EndDate:                req.text("end_date"),
			UncheckedByIntegration: req.defined("unchecked_by_integration"),
			Page:                   req.text("page"),
		}.Apply(target)

		forward(w, r, client, recorder, orderListEndpoint, target, token)
	})
}

// postOrderDetail handles POST {prefix}/order-detail
func postOrderDetail(client *troquecommerce.Client, recorder metrics.Recorder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, ok := readProxyRequest(w, r, recorder, orderDetailEndpoint)
		if !ok {
			return
		}

		query := troquecommerce.OrderDetailQuery{
			EcommerceNumber: req.text("ecommerce_number"),
			ID:              req.text("id"),
		}
		var missing []string
		baseURL, token := req.text("baseUrl"), req.text("token")
		if baseURL == "" {
			missing = append(missing, "baseUrl")
		}
		if token == "" {
			missing = append(missing, "token")
		}
		if query.OrderID() == "" {
			missing = append(missing, "id or ecommerce_number")
		}
		if len(missing) > 0 {
			rejectProxy(w, r, recorder, orderDetailEndpoint, errorResponse{
				Message: "baseUrl, token and orderId (id or ecommerce_number) are required",
				Missing: missing,
			})
			return
		}

		target, err := troquecommerce.Endpoint(baseURL, troquecommerce.OrderDetailPath)
		if err != nil {
			rejectProxy(w, r, recorder, orderDetailEndpoint, errorResponse{Message: "Invalid baseUrl", Details: err.Error()})
			return
		}
		query.Apply(target)

		forward(w, r, client, recorder, orderDetailEndpoint, target, token)
	})
}

func readProxyRequest(w http.ResponseWriter, r *http.Request, recorder metrics.Recorder, endpoint string) (proxyRequest, bool) {
	req, err := decodeProxyRequest(r)
	if err == nil {
		return req, true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		recorder.RecordProxy(r.Context(), endpoint, http.StatusRequestEntityTooLarge)
		writeError(w, http.StatusRequestEntityTooLarge, "Payload too large")
		return nil, false
	}
	rejectProxy(w, r, recorder, endpoint, errorResponse{Message: "Invalid JSON body", Details: err.Error()})
	return nil, false
}

func rejectProxy(w http.ResponseWriter, r *http.Request, recorder metrics.Recorder, endpoint string, resp errorResponse) {
	recorder.RecordProxy(r.Context(), endpoint, http.StatusBadRequest)
	writeJSON(w, http.StatusBadRequest, resp)
}

// forward issues the upstream GET and relays its answer. Upstream errors keep their status and
// raw body; successes are always sent as 200 application/json.
func forward(w http.ResponseWriter, r *http.Request, client *troquecommerce.Client, recorder metrics.Recorder, endpoint string, target *url.URL, token string) {
	ctx := r.Context()
	logger := httplog.LogEntry(ctx)

	resp, err := client.Get(ctx, target, token)
	if err != nil {
		logger.Error().Err(err).Str("endpoint", endpoint).Msg("calling Troquecommerce")
		recorder.RecordProxy(ctx, endpoint, http.StatusInternalServerError)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Erro ao consultar Troquecommerce", Details: err.Error()})
		return
	}

	if !resp.OK() {
		logger.Warn().Int("status", resp.StatusCode).Str("endpoint", endpoint).Msg("Troquecommerce returned an error")
		recorder.RecordProxy(ctx, endpoint, resp.StatusCode)
		body := resp.Body
		if len(body) == 0 {
			body = []byte(resp.StatusText())
		}
		contentType := resp.ContentType
		if contentType == "" {
			contentType = "text/plain; charset=utf-8"
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(resp.StatusCode)
		_, _ = w.Write(body)
		return
	}

	recorder.RecordProxy(ctx, endpoint, http.StatusOK)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(resp.Body)
}
