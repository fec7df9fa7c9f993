package monitoring

import (
	"context"

	texporter "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/trace"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/Bidex-03/ummah-connect/pkg/applogger"
)

type OpenTelemetry struct {
	name        string
	environment string
	projectID   string
	provider    *sdktrace.TracerProvider
}

func NewOpenTelemetry(name, environment, projectID string) *OpenTelemetry {
	return &OpenTelemetry{
		name:        name,
		environment: environment,
		projectID:   projectID,
	}
}

// Start registers the global tracer provider backed by the cloud trace
// exporter. The service keeps running untraced if the exporter cannot be
// created.
func (m *OpenTelemetry) Start(ctx context.Context) {
	exporter, err := texporter.New(texporter.WithProjectID(m.projectID))
	if err != nil {
		applogger.GetLogrus().WithContext(ctx).WithError(err).Error("unable to create trace exporter")
		return
	}

	m.provider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(m.name),
			attribute.String("environment", m.environment),
		)),
	)

	otel.SetTracerProvider(m.provider)
}

func (m *OpenTelemetry) Stop(ctx context.Context) {
	if m.provider == nil {
		return
	}

	if err := m.provider.Shutdown(ctx); err != nil {
		applogger.GetLogrus().WithContext(ctx).WithError(err).Error("unable to shut down tracer provider")
	}
}
