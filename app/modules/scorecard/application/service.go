package scorecardservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	scoredb "github.com/Black-And-White-Club/citl/app/modules/score/infrastructure/repositories"
	scorecarddomain "github.com/Black-And-White-Club/citl/app/modules/scorecard/domain"
	scorecardcache "github.com/Black-And-White-Club/citl/app/modules/scorecard/infrastructure/cache"
	"github.com/Black-And-White-Club/citl/internal/attr"
	"github.com/Black-And-White-Club/citl/internal/metrics"
	"github.com/Black-And-White-Club/citl/internal/results"
)

// ScorecardService implements the Service interface.
type ScorecardService struct {
	rows     ScoreRows
	averages AverageWriter
	cache    scorecardcache.Cache
	defaults scorecarddomain.Options
	logger   *slog.Logger
	metrics  metrics.ScorecardMetrics
	tracer   trace.Tracer
	db       *bun.DB
}

// NewScorecardService creates a new ScorecardService. A nil cache disables caching.
func NewScorecardService(
	rows ScoreRows,
	averages AverageWriter,
	cache scorecardcache.Cache,
	defaults scorecarddomain.Options,
	logger *slog.Logger,
	metrics metrics.ScorecardMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *ScorecardService {
	if logger == nil {
		logger = slog.Default()
	}
	if cache == nil {
		cache = scorecardcache.Nop{}
	}
	return &ScorecardService{
		rows:     rows,
		averages: averages,
		cache:    cache,
		defaults: defaults,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		db:       db,
	}
}

// Options resolves request parameters, falling back to the configured
// defaults for empty values.
func (s *ScorecardService) Options(variant, keyMode string) (scorecarddomain.Options, error) {
	opts := s.defaults
	if variant != "" {
		v, err := scorecarddomain.ParseVariant(variant)
		if err != nil {
			return opts, err
		}
		opts.Variant = v
	}
	if keyMode != "" {
		k, err := scorecarddomain.ParseKeyMode(keyMode)
		if err != nil {
			return opts, err
		}
		opts.KeyMode = k
	}
	return opts, nil
}

// toRecords converts joined rows into aggregation input.
func toRecords(rows []scoredb.ScorecardRow) []scorecarddomain.ScoreRecord {
	records := make([]scorecarddomain.ScoreRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, scorecarddomain.ScoreRecord{
			ShooterID: r.ShooterID,
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Week:      r.Week,
			BunkerOne: r.BunkerOne,
			BunkerTwo: r.BunkerTwo,
		})
	}
	return records
}

type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *ScorecardService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("scorecard", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, "ScorecardService")
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, "ScorecardService", time.Since(startTime))
		}
	}()

	s.logger.DebugContext(ctx, "Operation triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operationName))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("scorecard", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, "ScorecardService")
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
			attr.String("scorecard", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, "ScorecardService")
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("scorecard", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, "ScorecardService")
	}
	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *ScorecardService,
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
