package network

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/vanshika/trustpath/internal/domain"
	"github.com/vanshika/trustpath/internal/metrics"
)

var tracer = otel.Tracer("github.com/vanshika/trustpath/internal/network")

// ErrEmptyUserID is returned when a graph is requested without a user.
var ErrEmptyUserID = errors.New("user id is required")

const (
	// DefaultFetchConcurrency is how many teams are fetched in parallel.
	DefaultFetchConcurrency = 4

	// SelfDisplayName labels the querying user's node.
	SelfDisplayName = "You"

	// EdgeTypeAcquaintance labels contact-to-contact relationships stored without a type.
	EdgeTypeAcquaintance = "acquaintance"
)

// Store is the data-access contract the engine reads from. Implementations
// must return list results in a stable order so builds are reproducible.
type Store interface {
	ListContacts(ctx context.Context, userID string) ([]domain.Contact, error)
	ListRelationships(ctx context.Context, userID string) ([]domain.Relationship, error)
	ListTeams(ctx context.Context, userID string) ([]domain.Team, error)
	ListTeamMembers(ctx context.Context, teamID, excludeUserID string) ([]domain.TeamMember, error)
	ListSharedContacts(ctx context.Context, teamID, memberID string) ([]domain.SharedContact, error)
	FindContact(ctx context.Context, userID, query string) (domain.Contact, bool, error)
	FindTeamContact(ctx context.Context, userID, query string) (domain.TeamContactMatch, bool, error)
}

// Builder assembles the acquaintance graph reachable from a user.
type Builder struct {
	store       Store
	logger      *slog.Logger
	concurrency int
	nowFn       func() time.Time
}

// BuilderOption customises a Builder.
type BuilderOption func(*Builder)

// WithFetchConcurrency bounds the number of teams fetched in parallel.
// Values <= 0 keep the default.
func WithFetchConcurrency(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithLogger sets the builder's logger.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder constructs a Builder reading from store.
func NewBuilder(store Store, opts ...BuilderOption) *Builder {
	b := &Builder{
		store:       store,
		logger:      slog.Default(),
		concurrency: DefaultFetchConcurrency,
		nowFn:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// teamFetch holds one team's members and, index-aligned, what each shared.
type teamFetch struct {
	members []domain.TeamMember
	shares  [][]domain.SharedContact
}

// Build fetches the user's contacts, relationships and teams and assembles
// the graph. Any fetch failure aborts the build; no partial graph is returned.
func (b *Builder) Build(ctx context.Context, userID string) (_ *Graph, err error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	ctx, span := tracer.Start(ctx, "Builder.Build", trace.WithAttributes(
		attribute.String("user.id", userID),
	))
	defer span.End()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	start := b.nowFn()
	g := newGraph(userID)
	self := g.SelfID()
	g.addNode(Node{ID: self, Kind: KindSelf, Name: SelfDisplayName})

	contacts, err := b.store.ListContacts(ctx, userID)
	if err != nil {
		return nil, fetchFailed("list_contacts", fmt.Errorf("list contacts for user %s: %w", userID, err))
	}
	for _, c := range contacts {
		g.addNode(Node{
			ID:        c.ID,
			Kind:      KindOwnContact,
			Name:      c.Name,
			Company:   c.Company,
			Title:     c.Title,
			ContactID: c.ID,
		})
	}

	relationships, err := b.store.ListRelationships(ctx, userID)
	if err != nil {
		return nil, fetchFailed("list_relationships", fmt.Errorf("list relationships for user %s: %w", userID, err))
	}
	skipped := 0
	for _, rel := range relationships {
		source := rel.SourceID
		edgeType := rel.Type
		if rel.IsUserRelationship {
			source = self
			if edgeType == "" {
				edgeType = EdgeTypeDirect
			}
		} else if edgeType == "" {
			edgeType = EdgeTypeAcquaintance
		}
		if source == rel.TargetID || !g.addEdgePair(source, rel.TargetID, rel.Strength, edgeType) {
			skipped++
		}
	}

	teams, err := b.store.ListTeams(ctx, userID)
	if err != nil {
		return nil, fetchFailed("list_teams", fmt.Errorf("list teams for user %s: %w", userID, err))
	}

	fetched, err := b.fetchTeams(ctx, userID, teams)
	if err != nil {
		return nil, err
	}

	for i, team := range teams {
		b.addTeam(g, team, fetched[i])
	}

	elapsed := b.nowFn().Sub(start)
	metrics.GraphBuildDuration.Observe(elapsed.Seconds())
	metrics.GraphNodes.Observe(float64(g.NodeCount()))
	metrics.GraphEdges.Observe(float64(g.EdgeCount()))

	span.SetAttributes(
		attribute.Int("graph.nodes", g.NodeCount()),
		attribute.Int("graph.edges", g.EdgeCount()),
		attribute.Int("graph.teams", len(teams)),
		attribute.Int("graph.team_nodes", g.VirtualNodeCount()),
		attribute.Int("graph.skipped_relationships", skipped),
	)
	b.logger.DebugContext(ctx, "graph built",
		"userId", userID,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"teams", len(teams),
		"teamNodes", g.VirtualNodeCount(),
		"skippedRelationships", skipped,
		"duration_ms", elapsed.Milliseconds(),
	)

	return g, nil
}

// fetchTeams loads members and shares for every team. Teams are fetched in
// parallel but results are slotted by team index so assembly order matches
// the order ListTeams returned.
func (b *Builder) fetchTeams(ctx context.Context, userID string, teams []domain.Team) ([]teamFetch, error) {
	results := make([]teamFetch, len(teams))
	if len(teams) == 0 {
		return results, nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(b.concurrency)
	for i, team := range teams {
		i, team := i, team
		eg.Go(func() error {
			res, err := b.fetchTeam(egCtx, userID, team)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (b *Builder) fetchTeam(ctx context.Context, userID string, team domain.Team) (teamFetch, error) {
	members, err := b.store.ListTeamMembers(ctx, team.ID, userID)
	if err != nil {
		return teamFetch{}, fetchFailed("list_team_members", fmt.Errorf("list members of team %s: %w", team.ID, err))
	}

	res := teamFetch{
		members: members,
		shares:  make([][]domain.SharedContact, len(members)),
	}
	for j, member := range members {
		shared, err := b.store.ListSharedContacts(ctx, team.ID, member.UserID)
		if err != nil {
			return teamFetch{}, fetchFailed("list_shared_contacts",
				fmt.Errorf("list contacts shared by %s with team %s: %w", member.UserID, team.ID, err))
		}
		res.shares[j] = shared
	}
	return res, nil
}

func (b *Builder) addTeam(g *Graph, team domain.Team, fetched teamFetch) {
	self := g.SelfID()
	for j, member := range fetched.members {
		if member.UserID == "" || member.UserID == g.UserID {
			continue
		}

		mateID := TeammateNodeID(member.UserID)
		created := g.addNode(Node{
			ID:        mateID,
			Kind:      KindTeammate,
			Name:      member.Name,
			ContactID: member.UserID,
			Team: &TeamProvenance{
				TeamID:     team.ID,
				TeamName:   team.Name,
				MemberID:   member.UserID,
				MemberName: member.Name,
			},
		})
		if created {
			g.addEdgePair(self, mateID, TeammateStrength, EdgeTypeTeammate)
		}

		for _, sc := range fetched.shares[j] {
			if sc.Visibility == domain.VisibilityPrivate {
				continue
			}
			nodeID := TeamContactNodeID(team.ID, sc.ID)
			added := g.addNode(Node{
				ID:        nodeID,
				Kind:      KindTeamSharedContact,
				Name:      sc.Name,
				Company:   sc.Company,
				Title:     sc.Title,
				ContactID: sc.ID,
				Team: &TeamProvenance{
					TeamID:     team.ID,
					TeamName:   team.Name,
					MemberID:   member.UserID,
					MemberName: member.Name,
				},
			})
			if !added {
				continue
			}
			g.addEdgePair(mateID, nodeID, TeamSharedStrength, EdgeTypeTeamShared)
		}
	}
}

func fetchFailed(op string, err error) error {
	metrics.FetchFailures.WithLabelValues(op).Inc()
	return err
}
