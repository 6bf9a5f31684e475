package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter provides OpenTelemetry metrics export in Prometheus format
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	registry      *prometheus.Registry
	collector     Collector

	meter            metric.Meter
	webhookCounter   metric.Int64Counter
	lookupCounter    metric.Int64Counter
	proxyCounter     metric.Int64Counter
	storedGauge      metric.Int64ObservableGauge
	capacityGauge    metric.Int64ObservableGauge
	lookupQueueGauge metric.Int64ObservableGauge
}

// NewOTelExporter creates an exporter that writes to registry. A nil registry gets a fresh one.
func NewOTelExporter(collector Collector, registry *prometheus.Registry) (*OTelExporter, error) {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(
		"troquecommerce-bridge",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		registry:      registry,
		collector:     collector,
		meter:         meter,
	}

	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

func (oe *OTelExporter) registerInstruments() error {
	var err error

	oe.webhookCounter, err = oe.meter.Int64Counter(
		"webhook.requests",
		metric.WithDescription("Inbound webhooks by event code and outcome"),
		metric.WithUnit("{requests}"),
	)
	if err != nil {
		return fmt.Errorf("creating webhook counter: %w", err)
	}

	oe.lookupCounter, err = oe.meter.Int64Counter(
		"erp.lookups",
		metric.WithDescription("ERP order lookups by outcome"),
		metric.WithUnit("{lookups}"),
	)
	if err != nil {
		return fmt.Errorf("creating lookup counter: %w", err)
	}

	oe.proxyCounter, err = oe.meter.Int64Counter(
		"proxy.requests",
		metric.WithDescription("Proxied Troquecommerce calls by endpoint and status"),
		metric.WithUnit("{requests}"),
	)
	if err != nil {
		return fmt.Errorf("creating proxy counter: %w", err)
	}

	oe.storedGauge, err = oe.meter.Int64ObservableGauge(
		"webhook.events.stored",
		metric.WithDescription("Number of webhook events held by the event log"),
		metric.WithUnit("{events}"),
		metric.WithInt64Callback(oe.observeStored),
	)
	if err != nil {
		return fmt.Errorf("creating stored events gauge: %w", err)
	}

	oe.capacityGauge, err = oe.meter.Int64ObservableGauge(
		"webhook.events.capacity",
		metric.WithDescription("Maximum number of webhook events kept"),
		metric.WithUnit("{events}"),
		metric.WithInt64Callback(oe.observeCapacity),
	)
	if err != nil {
		return fmt.Errorf("creating capacity gauge: %w", err)
	}

	oe.lookupQueueGauge, err = oe.meter.Int64ObservableGauge(
		"erp.lookup.queue.length",
		metric.WithDescription("Number of ERP lookups waiting for a worker"),
		metric.WithUnit("{lookups}"),
		metric.WithInt64Callback(oe.observeLookupQueue),
	)
	if err != nil {
		return fmt.Errorf("creating lookup queue gauge: %w", err)
	}

	return nil
}

func (oe *OTelExporter) observeStored(ctx context.Context, observer metric.Int64Observer) error {
	snapshot, err := oe.collector.Collect(ctx)
	if err != nil {
		return err
	}
	observer.Observe(snapshot.StoredEvents)
	return nil
}

func (oe *OTelExporter) observeCapacity(ctx context.Context, observer metric.Int64Observer) error {
	snapshot, err := oe.collector.Collect(ctx)
	if err != nil {
		return err
	}
	observer.Observe(snapshot.Capacity)
	return nil
}

func (oe *OTelExporter) observeLookupQueue(ctx context.Context, observer metric.Int64Observer) error {
	snapshot, err := oe.collector.Collect(ctx)
	if err != nil {
		return err
	}
	observer.Observe(snapshot.LookupQueue)
	return nil
}

func (oe *OTelExporter) RecordWebhook(ctx context.Context, code, outcome string) {
	oe.webhookCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event.code", code),
		attribute.String("outcome", outcome),
	))
}

func (oe *OTelExporter) RecordLookup(ctx context.Context, outcome string) {
	oe.lookupCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (oe *OTelExporter) RecordProxy(ctx context.Context, endpoint string, status int) {
	oe.proxyCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("endpoint", endpoint),
		attribute.String("http.status_code", strconv.Itoa(status)),
	))
}

// ServeHTTP returns the handler exposing the registry in Prometheus text format
func (oe *OTelExporter) ServeHTTP() http.Handler {
	return promhttp.HandlerFor(oe.registry, promhttp.HandlerOpts{})
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
