package distributor

import (
	"context"
	"fmt"
	"targets/internal/config"
	"targets/pkg/domain"
	"targets/pkg/logger"
	"targets/pkg/metrics"
	"targets/pkg/serrors"
	"time"

	"go.uber.org/zap"
)

// Options configure defaults and limits applied on top of the pure Distribute.
type Options struct {
	// DefaultMode is used when a request does not name a mode.
	DefaultMode domain.Mode
	// MaxMonths caps the number of months a single request may span. Zero disables the limit.
	MaxMonths int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) (Options, error) {
	mode, err := domain.ParseMode(cfg.Distribution.Mode)
	if err != nil {
		return Options{}, fmt.Errorf("could not parse default mode: %w", err)
	}

	return Options{
		DefaultMode: mode,
		MaxMonths:   cfg.Distribution.MaxMonths,
	}, nil
}

// distributor is the concrete implementation of the Distributor interface.
type distributor struct {
	options  Options
	recorder *metrics.Recorder
}

// Distribute validates the request against the configured limits, runs the
// pure calculation and reports the outcome through logs and metrics.
func (d distributor) Distribute(ctx context.Context, req Request) (*domain.DistributionResult, error) {
	start := time.Now()

	mode := req.Mode
	if mode == "" {
		mode = d.options.DefaultMode
	}

	ctx = logger.WithFields(ctx,
		zap.Stringer("start", req.Range.Start),
		zap.Stringer("end", req.Range.End),
		zap.String("mode", string(mode)),
	)

	res, err := d.distribute(req, mode)
	d.recorder.Observe(ctx, mode, len(segments(res)), time.Since(start), err)
	if err != nil {
		logger.Warn(ctx, "could not distribute target", zap.Error(err))

		return nil, fmt.Errorf("could not distribute target: %w", err)
	}

	if logger.IsDebug(ctx) {
		for _, seg := range res.Segments {
			logger.Debug(ctx, "month allocated",
				zap.String("month", seg.Label()),
				zap.Int("calendar_days", seg.CalendarDays),
				zap.Int("counted_days", seg.CountedDays),
				zap.Float64("allocation", seg.Allocation),
			)
		}
	}
	logger.Info(ctx, "target distributed",
		zap.Int("months", len(res.Segments)),
		zap.Float64("target", req.Target),
		zap.Float64("total", res.Total),
	)

	return res, nil
}

func (d distributor) distribute(req Request, mode domain.Mode) (*domain.DistributionResult, error) {
	if months := req.Range.Months(); d.options.MaxMonths > 0 && months > d.options.MaxMonths {
		return nil, serrors.With(serrors.ErrBadRequest,
			"range spans %d months, at most %d are allowed", months, d.options.MaxMonths)
	}

	return Distribute(req.Range, req.Target, req.Excluded, mode)
}

func segments(res *domain.DistributionResult) []domain.MonthSegment {
	if res == nil {
		return nil
	}

	return res.Segments
}

// New creates a Distributor configured with the given options. A nil
// recorder disables metrics.
func New(options Options, recorder *metrics.Recorder) Distributor {
	if options.DefaultMode == "" {
		options.DefaultMode = domain.ModeLiteral
	}

	return &distributor{
		options:  options,
		recorder: recorder,
	}
}
