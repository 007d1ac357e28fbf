package network

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vanshika/trustpath/internal/metrics"
)

// ErrEmptyQuery is returned when a target description is blank.
var ErrEmptyQuery = errors.New("target description is required")

// ResolvedTarget describes the node a free-text description resolved to.
type ResolvedTarget struct {
	NodeID    string          `json:"nodeId"`
	ContactID string          `json:"contactId"`
	Name      string          `json:"name"`
	Company   string          `json:"company,omitempty"`
	Title     string          `json:"title,omitempty"`
	Team      *TeamProvenance `json:"team,omitempty"`
}

// IsTeamContact reports whether the target was found through team sharing.
func (t ResolvedTarget) IsTeamContact() bool {
	return t.Team != nil
}

// SearchResult is the outcome of SearchPaths. Found is false when no
// contact matched the description; that is not an error.
type SearchResult struct {
	Found         bool           `json:"found"`
	Target        ResolvedTarget `json:"target"`
	IsTeamContact bool           `json:"isTeamContact"`
	Paths         []PathResult   `json:"paths"`
}

// Engine ties graph construction, target resolution and path search together.
type Engine struct {
	store   Store
	builder *Builder
	logger  *slog.Logger
	search  SearchOptions
}

// NewEngine builds an Engine over store. The builder options are forwarded
// to the underlying Builder.
func NewEngine(store Store, search SearchOptions, opts ...BuilderOption) *Engine {
	b := NewBuilder(store, opts...)
	return &Engine{
		store:   store,
		builder: b,
		logger:  b.logger,
		search:  search.withDefaults(),
	}
}

// BuildGraph builds the acquaintance graph for userID.
func (e *Engine) BuildGraph(ctx context.Context, userID string) (*Graph, error) {
	return e.builder.Build(ctx, userID)
}

// FindPaths builds the user's graph and searches it for targetID.
func (e *Engine) FindPaths(ctx context.Context, userID, targetID string, opts SearchOptions) ([]PathResult, error) {
	g, err := e.builder.Build(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Search(g, targetID, e.merge(opts)), nil
}

// ResolveTarget looks up a description among the user's own contacts first,
// then among contacts teammates shared with the user's teams.
func (e *Engine) ResolveTarget(ctx context.Context, userID, description string) (ResolvedTarget, bool, error) {
	query := strings.TrimSpace(description)
	if query == "" {
		return ResolvedTarget{}, false, ErrEmptyQuery
	}

	contact, ok, err := e.store.FindContact(ctx, userID, query)
	if err != nil {
		return ResolvedTarget{}, false, fmt.Errorf("search own contacts for user %s: %w", userID, err)
	}
	if ok {
		metrics.TargetResolutions.WithLabelValues("own").Inc()
		return ResolvedTarget{
			NodeID:    contact.ID,
			ContactID: contact.ID,
			Name:      contact.Name,
			Company:   contact.Company,
			Title:     contact.Title,
		}, true, nil
	}

	match, ok, err := e.store.FindTeamContact(ctx, userID, query)
	if err != nil {
		return ResolvedTarget{}, false, fmt.Errorf("search team contacts for user %s: %w", userID, err)
	}
	if !ok {
		metrics.TargetResolutions.WithLabelValues("none").Inc()
		return ResolvedTarget{}, false, nil
	}

	metrics.TargetResolutions.WithLabelValues("team").Inc()
	return ResolvedTarget{
		NodeID:    TeamContactNodeID(match.TeamID, match.Contact.ID),
		ContactID: match.Contact.ID,
		Name:      match.Contact.Name,
		Company:   match.Contact.Company,
		Title:     match.Contact.Title,
		Team: &TeamProvenance{
			TeamID:     match.TeamID,
			TeamName:   match.TeamName,
			MemberID:   match.SharedByID,
			MemberName: match.SharedByName,
		},
	}, true, nil
}

// SearchPaths resolves description to a target and returns ranked paths to it.
func (e *Engine) SearchPaths(ctx context.Context, userID, description string, opts SearchOptions) (_ SearchResult, err error) {
	ctx, span := tracer.Start(ctx, "Engine.SearchPaths", trace.WithAttributes(
		attribute.String("user.id", userID),
	))
	defer span.End()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	if userID == "" {
		return SearchResult{}, ErrEmptyUserID
	}

	target, found, err := e.ResolveTarget(ctx, userID, description)
	if err != nil {
		return SearchResult{}, err
	}
	if !found {
		span.SetAttributes(attribute.Bool("target.found", false))
		return SearchResult{Paths: []PathResult{}}, nil
	}

	isTeam := target.IsTeamContact()
	paths, err := e.FindPaths(ctx, userID, target.NodeID, opts)
	if err != nil {
		return SearchResult{}, err
	}

	span.SetAttributes(
		attribute.Bool("target.found", true),
		attribute.Bool("target.team", isTeam),
		attribute.String("target.node_id", target.NodeID),
		attribute.Int("paths", len(paths)),
	)
	e.logger.DebugContext(ctx, "target resolved",
		"userId", userID,
		"targetNodeId", target.NodeID,
		"teamContact", isTeam,
		"paths", len(paths),
	)

	return SearchResult{
		Found:         true,
		Target:        target,
		IsTeamContact: isTeam,
		Paths:         paths,
	}, nil
}

// merge fills unset fields of opts from the engine defaults.
func (e *Engine) merge(opts SearchOptions) SearchOptions {
	if opts.MaxHops <= 0 {
		opts.MaxHops = e.search.MaxHops
	}
	if opts.TopK <= 0 {
		opts.TopK = e.search.TopK
	}
	if opts.CandidateFactor <= 0 {
		opts.CandidateFactor = e.search.CandidateFactor
	}
	return opts
}
