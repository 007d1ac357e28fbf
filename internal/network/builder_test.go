package network

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/trustpath/internal/dataset"
	"github.com/vanshika/trustpath/internal/domain"
	"github.com/vanshika/trustpath/internal/logging"
)

func assertMirrored(t *testing.T, g *Graph) {
	t.Helper()
	for from, edges := range g.Adjacency {
		require.True(t, g.HasNode(from), "edge source %s is not a node", from)
		for _, e := range edges {
			require.True(t, g.HasNode(e.To), "edge target %s is not a node", e.To)
			reverse := 0
			for _, back := range g.Neighbors(e.To) {
				if back.To == from && back.Strength == e.Strength && back.Type == e.Type {
					reverse++
				}
			}
			assert.Equal(t, 1, reverse, "edge %s->%s has no mirror", from, e.To)
		}
	}
}

func TestBuildOwnContacts(t *testing.T) {
	g := buildGraph(t, dataset.Dataset{
		Users: []domain.User{{ID: "U", Name: "Uma"}},
		Contacts: []domain.Contact{
			{ID: "A", OwnerID: "U", Name: "Ann", Company: "Acme"},
			{ID: "B", OwnerID: "U", Name: "Ben"},
		},
		Relationships: []domain.Relationship{
			userRel("A", 5),
			contactRel("A", "B", 2),
		},
	})

	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 4, g.EdgeCount())
	assertMirrored(t, g)

	self, ok := g.Node("U")
	require.True(t, ok)
	assert.Equal(t, KindSelf, self.Kind)
	assert.Equal(t, SelfDisplayName, self.Name)

	a, _ := g.Node("A")
	assert.Equal(t, KindOwnContact, a.Kind)
	assert.Equal(t, "Acme", a.Company)
	assert.False(t, a.IsVirtual())
	assert.Zero(t, g.VirtualNodeCount())

	require.Len(t, g.Neighbors("U"), 1)
	assert.Equal(t, Edge{From: "U", To: "A", Strength: 5, Type: EdgeTypeDirect}, g.Neighbors("U")[0])
	assert.Equal(t, EdgeTypeAcquaintance, g.Neighbors("B")[0].Type)
}

func TestBuildTeamNodes(t *testing.T) {
	g := buildGraph(t, teamNetwork())

	mate, ok := g.Node(TeammateNodeID("M"))
	require.True(t, ok)
	assert.Equal(t, KindTeammate, mate.Kind)
	require.NotNil(t, mate.Team)
	assert.Equal(t, "Alpha", mate.Team.TeamName)

	shared, ok := g.Node(TeamContactNodeID("T", "X"))
	require.True(t, ok)
	assert.Equal(t, KindTeamSharedContact, shared.Kind)
	assert.Equal(t, "X", shared.ContactID)
	assert.Equal(t, "Max", shared.Team.MemberName)
	assert.True(t, shared.IsVirtual())
	assert.Equal(t, 2, g.VirtualNodeCount())

	assert.Equal(t, []Edge{{From: "U", To: "teammate:M", Strength: TeammateStrength, Type: EdgeTypeTeammate}}, g.Neighbors("U"))
	assert.Contains(t, g.Neighbors("teammate:M"),
		Edge{From: "teammate:M", To: "team_contact:T:X", Strength: TeamSharedStrength, Type: EdgeTypeTeamShared})
	assertMirrored(t, g)
}

func TestBuildDeduplicatesTeammatesAcrossTeams(t *testing.T) {
	ds := teamNetwork()
	ds.Teams = append(ds.Teams, dataset.Team{ID: "T2", Name: "Beta", Members: []string{"U", "M"}})
	ds.Shares = append(ds.Shares, domain.Share{TeamID: "T2", ContactID: "X", SharedBy: "M"})

	g := buildGraph(t, ds)

	mates := 0
	for _, n := range g.Nodes {
		if n.Kind == KindTeammate {
			mates++
		}
	}
	assert.Equal(t, 1, mates)

	mate, _ := g.Node(TeammateNodeID("M"))
	assert.Equal(t, "T", mate.Team.TeamID, "provenance comes from the first team listed")

	// The same contact shared into two teams yields one node per team.
	assert.True(t, g.HasNode(TeamContactNodeID("T", "X")))
	assert.True(t, g.HasNode(TeamContactNodeID("T2", "X")))
	assert.Len(t, g.Neighbors("U"), 1)
	assertMirrored(t, g)
}

func TestBuildSkipsPrivateSharesAndForeignRelationships(t *testing.T) {
	ds := teamNetwork()
	ds.Contacts = append(ds.Contacts,
		domain.Contact{ID: "P", OwnerID: "M", Name: "Private Pat"},
		domain.Contact{ID: "A", OwnerID: "U", Name: "Ann"},
	)
	ds.Shares = append(ds.Shares, domain.Share{TeamID: "T", ContactID: "P", SharedBy: "M", Visibility: domain.VisibilityPrivate})
	ds.Relationships = []domain.Relationship{
		userRel("A", 3),
		// M's relationship between their own contacts is not visible to U.
		contactRel("X", "P", 5),
	}

	g := buildGraph(t, ds)

	assert.False(t, g.HasNode(TeamContactNodeID("T", "P")))
	assert.Len(t, g.Neighbors(TeamContactNodeID("T", "X")), 1)
	assertMirrored(t, g)
}

func TestBuildPropagatesFetchFailures(t *testing.T) {
	for _, op := range []string{"contacts", "relationships", "teams", "members", "shares"} {
		t.Run(op, func(t *testing.T) {
			store := failingStore{Store: newStore(t, teamNetwork()), op: op}
			g, err := NewBuilder(store, WithLogger(logging.Discard())).Build(context.Background(), "U")
			require.ErrorIs(t, err, errStoreDown)
			assert.Nil(t, g)
		})
	}
}

func TestBuildRequiresUser(t *testing.T) {
	_, err := NewBuilder(newStore(t, dataset.Dataset{})).Build(context.Background(), "")
	require.ErrorIs(t, err, ErrEmptyUserID)
}

func TestBuildUnknownUserYieldsSelfOnly(t *testing.T) {
	g := buildGraph(t, dataset.Dataset{})
	assert.Equal(t, 1, g.NodeCount())
	assert.Zero(t, g.EdgeCount())
}

func TestBuildIsStableAcrossConcurrencyLevels(t *testing.T) {
	ds := teamNetwork()
	ds.Users = append(ds.Users, domain.User{ID: "N", Name: "Nia"})
	ds.Contacts = append(ds.Contacts, domain.Contact{ID: "Y", OwnerID: "N", Name: "Yuri"})
	for _, name := range []string{"Gamma", "Delta", "Epsilon"} {
		ds.Teams = append(ds.Teams, dataset.Team{ID: "T-" + name, Name: name, Members: []string{"U", "M", "N"}})
		ds.Shares = append(ds.Shares, domain.Share{TeamID: "T-" + name, ContactID: "Y", SharedBy: "N"})
	}
	store := newStore(t, ds)

	serial, err := NewBuilder(store, WithFetchConcurrency(1)).Build(context.Background(), "U")
	require.NoError(t, err)
	parallel, err := NewBuilder(store, WithFetchConcurrency(8)).Build(context.Background(), "U")
	require.NoError(t, err)

	assert.Equal(t, serial.Nodes, parallel.Nodes)
	assert.Equal(t, serial.Adjacency, parallel.Adjacency)
}
