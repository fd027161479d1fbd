package storage

import (
	"context"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"filegate/internal/model"
)

const tracerName = "filegate/internal/storage"

// Metrics counts backend operations by outcome.
type Metrics struct {
	ops *prometheus.CounterVec
}

// NewMetrics registers the storage counters on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		ops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filegate_storage_operations_total",
				Help: "Backend operations by backend, operation and result.",
			},
			[]string{"backend", "op", "result"},
		),
	}
	if err := reg.Register(m.ops); err != nil {
		return nil, err
	}
	return m, nil
}

// Instrument wraps b so every call is counted and traced. A nil Metrics returns b unchanged.
func (m *Metrics) Instrument(b Backend) Backend {
	if m == nil {
		return b
	}
	return &instrumentedBackend{next: b, m: m}
}

type instrumentedBackend struct {
	next Backend
	m    *Metrics
}

func (i *instrumentedBackend) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("storage.backend", string(i.next.Type())))
	return otel.Tracer(tracerName).Start(ctx, "storage."+op, trace.WithAttributes(attrs...))
}

func (i *instrumentedBackend) finish(span trace.Span, op, result string, err error) {
	i.m.ops.WithLabelValues(string(i.next.Type()), op, result).Inc()
	span.SetAttributes(attribute.String("storage.result", result))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, op+" failed")
	}
	span.End()
}

func outcome(err error, hit bool) string {
	switch {
	case err != nil:
		return "error"
	case !hit:
		return "miss"
	default:
		return "ok"
	}
}

func (i *instrumentedBackend) Type() model.StorageType { return i.next.Type() }

func (i *instrumentedBackend) Store(ctx context.Context, meta model.FileMetadata, content io.Reader) error {
	ctx, span := i.start(ctx, "store", attribute.String("file.id", meta.ID), attribute.Int64("file.size", meta.Size))
	err := i.next.Store(ctx, meta, content)
	i.finish(span, "store", outcome(err, true), err)
	return err
}

func (i *instrumentedBackend) Retrieve(ctx context.Context, id string) (*model.FileRecord, error) {
	ctx, span := i.start(ctx, "retrieve", attribute.String("file.id", id))
	rec, err := i.next.Retrieve(ctx, id)
	i.finish(span, "retrieve", outcome(err, rec != nil), err)
	return rec, err
}

func (i *instrumentedBackend) Delete(ctx context.Context, id string) (bool, error) {
	ctx, span := i.start(ctx, "delete", attribute.String("file.id", id))
	ok, err := i.next.Delete(ctx, id)
	i.finish(span, "delete", outcome(err, ok), err)
	return ok, err
}

func (i *instrumentedBackend) List(ctx context.Context) ([]model.FileMetadata, error) {
	ctx, span := i.start(ctx, "list")
	items, err := i.next.List(ctx)
	span.SetAttributes(attribute.Int("file.count", len(items)))
	i.finish(span, "list", outcome(err, true), err)
	return items, err
}
