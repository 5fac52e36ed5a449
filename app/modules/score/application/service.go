package scoreservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Black-And-White-Club/citl/app/eventbus"
	scoreevents "github.com/Black-And-White-Club/citl/app/events/score"
	"github.com/Black-And-White-Club/citl/app/modules/score/application/parsers"
	scoredb "github.com/Black-And-White-Club/citl/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/citl/internal/attr"
	"github.com/Black-And-White-Club/citl/internal/metrics"
	"github.com/Black-And-White-Club/citl/internal/results"
)

const serviceName = "ScoreService"

// ScoreService implements the Service interface.
type ScoreService struct {
	repo      scoredb.Repository
	roster    Roster
	publisher eventbus.Publisher
	parsers   parsers.ParserFactory
	logger    *slog.Logger
	metrics   metrics.ServiceMetrics
	tracer    trace.Tracer
	db        *bun.DB
	now       func() time.Time
}

// NewScoreService creates a new ScoreService.
func NewScoreService(
	repo scoredb.Repository,
	roster Roster,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	metrics metrics.ServiceMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *ScoreService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScoreService{
		repo:      repo,
		roster:    roster,
		publisher: publisher,
		parsers:   parsers.NewFactory(),
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		db:        db,
		now:       time.Now,
	}
}

// publishRecorded fans committed scores out to subscribers. A failed publish
// is logged; the scores are already stored.
func (s *ScoreService) publishRecorded(ctx context.Context, events []scoreevents.ScoreRecordedPayloadV1) {
	if s.publisher == nil {
		return
	}
	for _, ev := range events {
		if err := eventbus.Publish(ctx, s.publisher, scoreevents.ScoreRecordedV1, ev); err != nil {
			s.logger.ErrorContext(ctx, "Failed to publish score event",
				attr.ExtractCorrelationID(ctx),
				attr.UUID("shooter_id", ev.ShooterID),
				attr.Int("week", ev.Week),
				attr.Error(err),
			)
		}
	}
}

type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *ScoreService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("team", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
		}
	}()

	s.logger.InfoContext(ctx, "Operation triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operationName))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("team", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("team", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("team", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("team", identifier),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}
	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *ScoreService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})
	return result, err
}
