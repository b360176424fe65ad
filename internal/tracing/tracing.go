package tracing

import (
	"context"
	"net"
	"os"
	"time"

	"github.com/maxmcd/stackperm/internal/logger"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
)

// EnvVar holds the host:port of a jaeger agent. Spans are only exported
// when it is set.
const EnvVar = "JAEGER_TRACE"

const service = "stackperm"

// newProvider returns a TracerProvider that batches spans to the jaeger
// agent at hostAndPort.
func newProvider(hostAndPort string) (*tracesdk.TracerProvider, error) {
	host, port, err := net.SplitHostPort(hostAndPort)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s value %q", EnvVar, hostAndPort)
	}
	exporter, err := jaeger.New(jaeger.WithAgentEndpoint(
		jaeger.WithAgentHost(host),
		jaeger.WithAgentPort(port),
	))
	if err != nil {
		return nil, err
	}
	return tracesdk.NewTracerProvider(
		tracesdk.WithBatcher(exporter),
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(service),
			attribute.String("hostname", hostname()),
		)),
	), nil
}

func hostname() string {
	h, _ := os.Hostname()
	return h
}

var tp *tracesdk.TracerProvider

func init() {
	hostAndPort, found := os.LookupEnv(EnvVar)
	if !found {
		tp = tracesdk.NewTracerProvider(tracesdk.WithSampler(tracesdk.NeverSample()))
		return
	}
	var err error
	if tp, err = newProvider(hostAndPort); err != nil {
		logger.Warn(err)
		tp = tracesdk.NewTracerProvider(tracesdk.WithSampler(tracesdk.NeverSample()))
		return
	}
	otel.SetTracerProvider(tp)
}

func Tracer(name string) trace.Tracer {
	return tp.Tracer(name)
}

// Stop flushes any buffered spans.
func Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := tp.Shutdown(ctx); err != nil {
		logger.Warn(err)
	}
}
