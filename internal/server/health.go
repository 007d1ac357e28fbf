package server

import (
	"context"
	"errors"

	"github.com/vanshika/trustpath/internal/graph"
)

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// HealthFunc adapts a function to HealthService.
type HealthFunc func(ctx context.Context) error

// Probe calls f.
func (f HealthFunc) Probe(ctx context.Context) error {
	return f(ctx)
}

// GraphHealthService verifies Neo4j connectivity as part of health checks.
// A nil client means the server runs without a graph store and is healthy.
type GraphHealthService struct {
	Client graph.Client
}

// Probe implements the HealthService interface.
func (s GraphHealthService) Probe(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	if err := s.Client.VerifyConnectivity(ctx); err != nil {
		return errors.Join(errors.New("graph store unreachable"), err)
	}
	return nil
}
