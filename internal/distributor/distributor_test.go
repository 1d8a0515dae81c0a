package distributor_test

import (
	"context"
	"targets/internal/config"
	"targets/internal/distributor"
	"targets/pkg/domain"
	"targets/pkg/metrics"
	"targets/pkg/serrors"
	"testing"

	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestDistributor(t *testing.T, options distributor.Options) (distributor.Distributor, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	rec, err := metrics.NewRecorder(mp.Meter(metrics.MeterName))
	require.NoError(t, err)

	return distributor.New(options, rec), reader
}

func TestDistributor_DefaultMode(t *testing.T) {
	tests := []struct {
		name    string
		options distributor.Options
		reqMode domain.Mode
		want    domain.Mode
	}{
		{name: "zero options fall back to literal", want: domain.ModeLiteral},
		{name: "configured default", options: distributor.Options{DefaultMode: domain.ModeWeighted}, want: domain.ModeWeighted},
		{
			name:    "request overrides default",
			options: distributor.Options{DefaultMode: domain.ModeWeighted},
			reqMode: domain.ModeLiteral,
			want:    domain.ModeLiteral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newTestDistributor(t, tt.options)

			res, err := d.Distribute(context.Background(), distributor.Request{
				Range:    dateRange(t, "2024-01-01", "2024-03-31"),
				Target:   5220,
				Excluded: fridaySunday,
				Mode:     tt.reqMode,
			})
			require.NoError(t, err)
			require.Equal(t, tt.want, res.Mode)
		})
	}
}

func TestDistributor_MaxMonths(t *testing.T) {
	d, _ := newTestDistributor(t, distributor.Options{MaxMonths: 12})

	_, err := d.Distribute(context.Background(), distributor.Request{
		Range:  dateRange(t, "2024-01-01", "2024-12-31"),
		Target: 1200,
	})
	require.NoError(t, err)

	res, err := d.Distribute(context.Background(), distributor.Request{
		Range:  dateRange(t, "2024-01-01", "2025-01-01"),
		Target: 1200,
	})
	require.ErrorIs(t, err, serrors.ErrBadRequest)
	require.Nil(t, res)
}

func TestDistributor_PropagatesKinds(t *testing.T) {
	d, reader := newTestDistributor(t, distributor.Options{})

	_, err := d.Distribute(context.Background(), distributor.Request{
		Range:  dateRange(t, "2024-03-01", "2024-01-01"),
		Target: 1200,
	})
	require.ErrorIs(t, err, serrors.ErrInvalidRange)
	require.Equal(t, serrors.ErrInvalidRange, serrors.KindOf(err))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.NotEmpty(t, rm.ScopeMetrics)

	found := false
	for _, m := range rm.ScopeMetrics[0].Metrics {
		if m.Name != "distributions" {
			continue
		}
		sum, ok := m.Data.(metricdata.Sum[int64])
		require.True(t, ok)
		require.Len(t, sum.DataPoints, 1)
		require.Equal(t, int64(1), sum.DataPoints[0].Value)
		found = true
	}
	require.True(t, found, "distributions counter should be recorded")
}

func TestDistributor_NilRecorder(t *testing.T) {
	d := distributor.New(distributor.Options{}, nil)

	res, err := d.Distribute(context.Background(), distributor.Request{
		Range:  dateRange(t, "2024-02-01", "2024-02-29"),
		Target: 2900,
	})
	require.NoError(t, err)
	require.Equal(t, []int{29}, res.CountedDays())
}

func TestNewOptions(t *testing.T) {
	var cfg config.Config
	cfg.Distribution.Mode = "weighted"
	cfg.Distribution.MaxMonths = 36

	opts, err := distributor.NewOptions(&cfg)
	require.NoError(t, err)
	require.Equal(t, distributor.Options{DefaultMode: domain.ModeWeighted, MaxMonths: 36}, opts)

	cfg.Distribution.Mode = "flat"
	_, err = distributor.NewOptions(&cfg)
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}
