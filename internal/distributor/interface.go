package distributor

import (
	"context"
	"targets/pkg/domain"
)

// Request describes a single distribution call.
type Request struct {
	// Range is the inclusive span of dates to distribute over.
	Range domain.DateRange
	// Target is the annual target to split.
	Target float64
	// Excluded holds the weekdays that are not working days.
	Excluded domain.ExclusionSet
	// Mode selects the allocation rule. Empty means the configured default.
	Mode domain.Mode
}

//go:generate mockgen -package mockdistributor -source=interface.go -destination=mock/mockdistributor.go *
type Distributor interface {
	Distribute(ctx context.Context, req Request) (*domain.DistributionResult, error)
}
