package storage_test

import (
	"context"
	"errors"
	"testing"

	"filegate/internal/model"
	"filegate/internal/storage"
	storeMocks "filegate/internal/storage/mocks"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestMetrics_Instrument(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	metrics, err := storage.NewMetrics(reg)
	require.NoError(t, err)

	inner := &storeMocks.MockBackend{Kind: model.StorageBlob}
	inner.On("Retrieve", mock.Anything, "hit").Return(&model.FileRecord{}, nil)
	inner.On("Retrieve", mock.Anything, "miss").Return(nil, nil)
	inner.On("Delete", mock.Anything, "broken").Return(false, errors.New("boom"))

	b := metrics.Instrument(inner)
	assert.Equal(t, model.StorageBlob, b.Type())

	_, _ = b.Retrieve(ctx, "hit")
	_, _ = b.Retrieve(ctx, "miss")
	_, _ = b.Retrieve(ctx, "miss")
	_, _ = b.Delete(ctx, "broken")

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)

	series, err := testutil.GatherAndCount(reg, "filegate_storage_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 3, series)

	var total float64
	for _, m := range families[0].GetMetric() {
		total += m.GetCounter().GetValue()
	}
	assert.Equal(t, 4.0, total)
	inner.AssertExpectations(t)
}

func TestMetrics_InstrumentRecordsSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	metrics, err := storage.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	inner := &storeMocks.MockBackend{Kind: model.StorageStructured}
	inner.On("Delete", mock.Anything, "abc").Return(false, errors.New("boom"))
	inner.On("List", mock.Anything).Return([]model.FileMetadata{{ID: "a"}}, nil)

	b := metrics.Instrument(inner)
	_, _ = b.Delete(context.Background(), "abc")
	_, _ = b.List(context.Background())

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "storage.delete", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "storage.list", spans[1].Name())
	assert.Equal(t, codes.Unset, spans[1].Status().Code)
}

func TestMetrics_NilInstrumentIsIdentity(t *testing.T) {
	var metrics *storage.Metrics
	inner := &storeMocks.MockBackend{Kind: model.StorageStructured}
	assert.Same(t, inner, metrics.Instrument(inner))
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := storage.NewMetrics(reg)
	require.NoError(t, err)
	_, err = storage.NewMetrics(reg)
	assert.Error(t, err)
}
