package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/vanshika/trustpath/internal/network"
)

// ErrInvalidInput marks caller mistakes, as opposed to data-access failures.
var ErrInvalidInput = errors.New("invalid input")

// Engine is the path-discovery contract required by the service.
type Engine interface {
	BuildGraph(ctx context.Context, userID string) (*network.Graph, error)
	FindPaths(ctx context.Context, userID, targetID string, opts network.SearchOptions) ([]network.PathResult, error)
	SearchPaths(ctx context.Context, userID, description string, opts network.SearchOptions) (network.SearchResult, error)
}

// Limits holds default and maximum search bounds.
type Limits struct {
	MaxHops         int
	TopK            int
	CandidateFactor int
	HopLimit        int
	ResultLimit     int
}

// DefaultLimits mirrors the engine defaults.
func DefaultLimits() Limits {
	return Limits{
		MaxHops:         network.DefaultMaxHops,
		TopK:            network.DefaultTopK,
		CandidateFactor: network.DefaultCandidateFactor,
		HopLimit:        6,
		ResultLimit:     25,
	}
}

// PathQuery describes a path request. Exactly one of TargetID and
// Description is used depending on the operation.
type PathQuery struct {
	UserID      string
	TargetID    string
	Description string
	MaxHops     int
	TopK        int
}

// PathsResult is the ranked outcome of a path query by node id.
type PathsResult struct {
	TargetID string               `json:"targetId"`
	Paths    []network.PathResult `json:"paths"`

	// DirectConnection is set when any returned path is a single hop, meaning
	// the user already knows the target even if an introduction ranks higher.
	DirectConnection bool `json:"directConnection"`
}

// IntroductionService validates requests, applies limits and delegates to the engine.
type IntroductionService struct {
	engine Engine
	limits Limits
	logger *slog.Logger
}

// NewIntroductionService constructs the service. A zero Limits uses DefaultLimits.
func NewIntroductionService(engine Engine, limits Limits, logger *slog.Logger) *IntroductionService {
	if limits == (Limits{}) {
		limits = DefaultLimits()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &IntroductionService{
		engine: engine,
		limits: limits,
		logger: logger,
	}
}

// Graph builds and returns the user's acquaintance graph.
func (s *IntroductionService) Graph(ctx context.Context, userID string) (*network.Graph, error) {
	userID = sanitizeString(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	return s.engine.BuildGraph(ctx, userID)
}

// FindPaths returns ranked paths from the user to a node id.
func (s *IntroductionService) FindPaths(ctx context.Context, q PathQuery) (PathsResult, error) {
	userID := sanitizeString(q.UserID)
	targetID := sanitizeString(q.TargetID)
	if userID == "" || targetID == "" {
		return PathsResult{}, fmt.Errorf("%w: userId and target are required", ErrInvalidInput)
	}

	paths, err := s.engine.FindPaths(ctx, userID, targetID, s.searchOptions(q))
	if err != nil {
		return PathsResult{}, err
	}

	s.logger.DebugContext(ctx, "paths found", "userId", userID, "target", targetID, "paths", len(paths))
	return PathsResult{
		TargetID:         targetID,
		Paths:            paths,
		DirectConnection: slices.ContainsFunc(paths, network.PathResult.IsDirect),
	}, nil
}

// SearchPaths resolves a free-text description and returns ranked paths.
func (s *IntroductionService) SearchPaths(ctx context.Context, q PathQuery) (network.SearchResult, error) {
	userID := sanitizeString(q.UserID)
	description := sanitizeString(q.Description)
	if userID == "" || description == "" {
		return network.SearchResult{}, fmt.Errorf("%w: userId and description are required", ErrInvalidInput)
	}

	result, err := s.engine.SearchPaths(ctx, userID, description, s.searchOptions(q))
	if err != nil {
		if errors.Is(err, network.ErrEmptyQuery) {
			return network.SearchResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return network.SearchResult{}, err
	}
	return result, nil
}

func (s *IntroductionService) searchOptions(q PathQuery) network.SearchOptions {
	return network.SearchOptions{
		MaxHops:         clampLimit(q.MaxHops, s.limits.MaxHops, s.limits.HopLimit),
		TopK:            clampLimit(q.TopK, s.limits.TopK, s.limits.ResultLimit),
		CandidateFactor: s.limits.CandidateFactor,
	}
}
