package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/trustpath/internal/domain"
	"github.com/vanshika/trustpath/internal/graph"
)

func TestUpsertRelationshipSelectsQueryByKind(t *testing.T) {
	client := graph.NewMemoryClient()
	repo := New(client)
	ctx := context.Background()

	require.NoError(t, repo.UpsertRelationship(ctx, domain.Relationship{
		SourceID: "U1", TargetID: "C1", IsUserRelationship: true, Strength: 4, Type: "friend",
	}))
	require.NoError(t, repo.UpsertRelationship(ctx, domain.Relationship{
		SourceID: "C1", TargetID: "C2", Strength: 2,
	}))

	calls := client.WriteCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, upsertUserRelationshipCypher, calls[0].Query)
	assert.Equal(t, int64(4), calls[0].Params["strength"])
	assert.Equal(t, "friend", calls[0].Params["type"])
	assert.Equal(t, upsertContactRelationshipCypher, calls[1].Query)
	assert.Equal(t, "C2", calls[1].Params["targetId"])
}

func TestShareContactDefaultsVisibility(t *testing.T) {
	client := graph.NewMemoryClient()
	repo := New(client)

	require.NoError(t, repo.ShareContact(context.Background(), domain.Share{TeamID: "T1", ContactID: "C1", SharedBy: "U1"}))

	calls := client.WriteCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, domain.VisibilityTeam, calls[0].Params["visibility"])
}

func TestWritesValidateIdentifiers(t *testing.T) {
	client := graph.NewMemoryClient()
	repo := New(client)
	ctx := context.Background()

	assert.Error(t, repo.UpsertUser(ctx, domain.User{}))
	assert.Error(t, repo.UpsertContact(ctx, domain.Contact{ID: "C1"}))
	assert.Error(t, repo.UpsertTeam(ctx, domain.Team{}))
	assert.Error(t, repo.AddTeamMember(ctx, "T1", ""))
	assert.Error(t, repo.ShareContact(ctx, domain.Share{TeamID: "T1"}))
	assert.Empty(t, client.WriteCalls())
}

func TestListRelationshipsMapsRecords(t *testing.T) {
	client := graph.NewMemoryClient().On(listRelationshipsCypher, graph.Result{Records: []graph.Record{
		{"sourceId": "U1", "targetId": "C1", "isUserRelationship": true, "strength": int64(5), "type": "friend"},
		{"sourceId": "C1", "targetId": "C2", "isUserRelationship": false, "strength": int64(3), "type": nil},
	}})

	rels, err := New(client).ListRelationships(context.Background(), "U1")
	require.NoError(t, err)

	assert.Equal(t, []domain.Relationship{
		{SourceID: "U1", TargetID: "C1", IsUserRelationship: true, Strength: 5, Type: "friend"},
		{SourceID: "C1", TargetID: "C2", Strength: 3},
	}, rels)
	assert.Equal(t, "U1", client.ReadCalls()[0].Params["userId"])
}

func TestListSharedContactsMapsRecords(t *testing.T) {
	client := graph.NewMemoryClient().On(listSharedContactsCypher, graph.Result{Records: []graph.Record{
		{"contactId": "C9", "name": "Xena", "company": "Acme", "title": "CTO", "visibility": "team"},
	}})

	shared, err := New(client).ListSharedContacts(context.Background(), "T1", "U2")
	require.NoError(t, err)

	require.Len(t, shared, 1)
	assert.Equal(t, domain.SharedContact{
		Contact:    domain.Contact{ID: "C9", OwnerID: "U2", Name: "Xena", Company: "Acme", Title: "CTO"},
		TeamID:     "T1",
		SharedBy:   "U2",
		Visibility: domain.VisibilityTeam,
	}, shared[0])
}

func TestFindContactNormalizesQuery(t *testing.T) {
	client := graph.NewMemoryClient().On(findContactCypher, graph.Result{Records: []graph.Record{
		{"contactId": "C1", "name": "Bob", "company": "Acme"},
	}})
	repo := New(client)

	contact, ok, err := repo.FindContact(context.Background(), "U1", "  ACME ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "C1", contact.ID)
	assert.Equal(t, "U1", contact.OwnerID)
	assert.Equal(t, "acme", client.ReadCalls()[0].Params["query"])

	_, ok, err = repo.FindContact(context.Background(), "U1", "nobody")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFindTeamContactMapsProvenance(t *testing.T) {
	client := graph.NewMemoryClient().On(findTeamContactCypher, graph.Result{Records: []graph.Record{
		{
			"contactId": "C9", "name": "Xena", "company": "Acme", "title": "CTO",
			"teamId": "T1", "teamName": "Founders", "sharedById": "U2", "sharedByName": "Max",
		},
	}})

	match, ok, err := New(client).FindTeamContact(context.Background(), "U1", "acme")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.TeamContactMatch{
		Contact:      domain.Contact{ID: "C9", OwnerID: "U2", Name: "Xena", Company: "Acme", Title: "CTO"},
		TeamID:       "T1",
		TeamName:     "Founders",
		SharedByID:   "U2",
		SharedByName: "Max",
	}, match)
}

func TestReadFailuresAreWrapped(t *testing.T) {
	boom := errors.New("connection reset")
	client := graph.NewMemoryClient().FailOn(listTeamsCypher, boom)

	_, err := New(client).ListTeams(context.Background(), "U1")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "list teams query")
}
