package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/httplog"
	"github.com/marcelsud/troquecommerce-bridge/webhook"
	"github.com/marcelsud/troquecommerce-bridge/webhook/payload"
	"github.com/marcelsud/troquecommerce-bridge/webhook/secret"
)

/* HTTP layer DTOs for the event log
 * Separate from domain entities to avoid leaking internal structure
 */

type eventResponse struct {
	ID         string          `json:"id"`
	EventID    string          `json:"eventId"`
	EventName  string          `json:"eventName"`
	Timestamp  time.Time       `json:"timestamp"`
	ReceivedAt time.Time       `json:"receivedAt"`
	Payload    json.RawMessage `json:"payload"`
}

type eventListResponse struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Events  []eventResponse `json:"events"`
}

// otherCode labels metrics for codes that are neither accepted nor in the catalog
const otherCode = "other"

// metricCode bounds the event code label to the allow-list and the catalog
func metricCode(allow webhook.AllowList, code string) string {
	if allow.Accepts(code) || webhook.Known(code) {
		return code
	}
	return otherCode
}

// postWebhook handles POST {prefix}/webhook
func postWebhook(d Deps) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := httplog.LogEntry(ctx)
		headerCode := r.Header.Get(secret.EventHeaderName)

		if !d.Secret.Verify(r.Header.Get(secret.HeaderName)) {
			d.Recorder.RecordWebhook(ctx, "", webhook.Unauthorized.String())
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			d.Recorder.RecordWebhook(ctx, "", webhook.Malformed.String())
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "Payload too large")
				return
			}
			writeError(w, http.StatusBadRequest, "failed to read request body")
			return
		}

		p, err := payload.Parse(body)
		if err != nil {
			d.Recorder.RecordWebhook(ctx, "", webhook.Malformed.String())
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid JSON payload", Details: err.Error()})
			return
		}

		code := p.EventCode(headerCode)
		if code == "" {
			d.Recorder.RecordWebhook(ctx, "", webhook.Malformed.String())
			writeError(w, http.StatusBadRequest, "Missing webhook event id")
			return
		}

		if !d.AllowList.Accepts(code) {
			d.Recorder.RecordWebhook(ctx, metricCode(d.AllowList, code), webhook.Ignored.String())
			writeJSON(w, http.StatusAccepted, messageResponse{Message: fmt.Sprintf("Ignoring event %s", code)})
			return
		}

		event, err := d.Events.Record(ctx, code, p)
		if err != nil {
			logger.Error().Err(err).Str("event_code", code).Msg("recording webhook event")
			d.Recorder.RecordWebhook(ctx, code, webhook.Failed.String())
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		logger.Info().
			Str("event_id", event.ID).
			Str("event_code", code).
			Str("event_name", event.Label).
			Str("reverse_id", p.ID).
			Str("ecommerce_number", p.EcommerceNumber).
			Str("status", p.Status).
			Str("created_at", p.CreatedAt).
			Msg("webhook received")

		if p.EcommerceNumber != "" && d.Lookups != nil {
			d.Lookups.Submit(p.EcommerceNumber)
		}

		d.Recorder.RecordWebhook(ctx, code, webhook.Processed.String())
		writeJSON(w, http.StatusOK, messageResponse{Message: "Webhook received and processed"})
	})
}

// getWebhookEvents handles GET {prefix}/webhook-events
func getWebhookEvents(events webhook.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := events.List(r.Context())
		if err != nil {
			logger := httplog.LogEntry(r.Context())
			logger.Error().Err(err).Msg("listing webhook events")
			writeJSON(w, http.StatusInternalServerError, struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}{false, "Failed to list events"})
			return
		}

		responses := make([]eventResponse, 0, len(all))
		for _, e := range all {
			responses = append(responses, eventResponse{
				ID:         e.ID,
				EventID:    e.Code,
				EventName:  e.Label,
				Timestamp:  e.Timestamp,
				ReceivedAt: e.ReceivedAt,
				Payload:    e.Payload,
			})
		}

		writeJSON(w, http.StatusOK, eventListResponse{
			Success: true,
			Count:   len(responses),
			Events:  responses,
		})
	})
}
