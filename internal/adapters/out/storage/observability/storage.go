// Package observability decorates file storage backends with spans, logs and
// delete counters.
package observability

import (
	"context"
	"log/slog"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/ports"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

const (
	tracerName  = "printflow/internal/adapters/out/storage/observability"
	deletesName = "printflow.storage.deletes"
)

// Storage wraps a backend and reports every delete.
type Storage struct {
	inner   ports.FileStorage
	backend string
	tracer  trace.Tracer
	logger  *slog.Logger
	deletes metric.Int64Counter
}

type Option func(*Storage)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Storage) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Storage) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Storage) {
		if m == nil {
			return
		}
		s.deletes, _ = m.Int64Counter(deletesName,
			metric.WithDescription("File deletions by storage backend and result"))
	}
}

// New wraps inner; backend names it in spans, logs and metrics.
func New(inner ports.FileStorage, backend string, opts ...Option) *Storage {
	s := &Storage{
		inner:   inner,
		backend: backend,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Storage) Delete(ctx context.Context, ref kernel.FileReference) error {
	ctx, span := s.tracer.Start(ctx, "FileStorage.Delete",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("storage.backend", s.backend)))
	defer span.End()

	err := s.inner.Delete(ctx, ref)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.record(ctx, "error")
		if s.logger != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "storage delete failed",
				slog.String("backend", s.backend),
				slog.String("file_reference", ref.String()),
				slog.String("error", err.Error()))
		}
		return err
	}

	s.record(ctx, "ok")
	return nil
}

func (s *Storage) record(ctx context.Context, result string) {
	if s.deletes == nil {
		return
	}
	s.deletes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("backend", s.backend),
		attribute.String("result", result),
	))
}

var _ ports.FileStorage = (*Storage)(nil)
