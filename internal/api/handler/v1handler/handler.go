package v1handler

import (
	"fmt"
	"targets/internal/config"
	"targets/internal/distributor"
	"targets/pkg/calendar"
	"targets/pkg/domain"
)

// DefaultMaxBodyBytes bounds request bodies when no limit is configured.
const DefaultMaxBodyBytes = 64 << 10

// Deps are the services the v1 handlers depend on.
type Deps struct {
	// Distributor computes distributions.
	Distributor distributor.Distributor
	// DefaultExcluded applies when a request omits excludedWeekdays.
	DefaultExcluded domain.ExclusionSet
}

// NewDeps builds Deps from the given distributor and the configured default exclusions.
func NewDeps(cfg *config.Config, d distributor.Distributor) (Deps, error) {
	excluded, err := calendar.ParseExclusions(cfg.Distribution.ExcludedWeekdays...)
	if err != nil {
		return Deps{}, fmt.Errorf("could not parse default excluded weekdays: %w", err)
	}

	return Deps{Distributor: d, DefaultExcluded: excluded}, nil
}

type Handler struct {
	deps         Deps
	maxBodyBytes int64
}

// New creates the v1 handler. A non-positive maxBodyBytes selects DefaultMaxBodyBytes.
func New(deps Deps, maxBodyBytes int64) *Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}

	return &Handler{deps: deps, maxBodyBytes: maxBodyBytes}
}
