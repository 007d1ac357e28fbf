package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/trustpath/internal/domain"
)

func seededStore(t *testing.T) *MemoryStore {
	t.Helper()
	ctx := context.Background()
	s := NewMemoryStore()

	for _, u := range []domain.User{{ID: "U1", Name: "Ava"}, {ID: "U2", Name: "Ben"}, {ID: "U3", Name: "Cy"}} {
		require.NoError(t, s.UpsertUser(ctx, u))
	}
	for _, c := range []domain.Contact{
		{ID: "C2", OwnerID: "U1", Name: "Zoe", Company: "Initech"},
		{ID: "C1", OwnerID: "U1", Name: "Abe", Company: "Acme"},
		{ID: "C3", OwnerID: "U2", Name: "Kai", Title: "Acme Recruiter"},
		{ID: "C4", OwnerID: "U2", Name: "Lia", Company: "Acme"},
		{ID: "C5", OwnerID: "U3", Name: "Mo"},
	} {
		require.NoError(t, s.UpsertContact(ctx, c))
	}
	require.NoError(t, s.UpsertTeam(ctx, domain.Team{ID: "T2", Name: "Zeta"}))
	require.NoError(t, s.UpsertTeam(ctx, domain.Team{ID: "T1", Name: "Alpha"}))
	for _, m := range [][2]string{{"T1", "U1"}, {"T1", "U2"}, {"T2", "U1"}, {"T2", "U3"}} {
		require.NoError(t, s.AddTeamMember(ctx, m[0], m[1]))
	}
	require.NoError(t, s.ShareContact(ctx, domain.Share{TeamID: "T1", ContactID: "C3", SharedBy: "U2"}))
	require.NoError(t, s.ShareContact(ctx, domain.Share{TeamID: "T1", ContactID: "C4", SharedBy: "U2", Visibility: domain.VisibilityPrivate}))
	require.NoError(t, s.ShareContact(ctx, domain.Share{TeamID: "T1", ContactID: "C1", SharedBy: "U1"}))
	require.NoError(t, s.ShareContact(ctx, domain.Share{TeamID: "T2", ContactID: "C5", SharedBy: "U3"}))
	return s
}

func TestMemoryStoreListsAreOrdered(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	contacts, err := s.ListContacts(ctx, "U1")
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "C1", contacts[0].ID)
	assert.Equal(t, "C2", contacts[1].ID)

	teams, err := s.ListTeams(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, []domain.Team{{ID: "T1", Name: "Alpha"}, {ID: "T2", Name: "Zeta"}}, teams)

	members, err := s.ListTeamMembers(ctx, "T1", "U1")
	require.NoError(t, err)
	assert.Equal(t, []domain.TeamMember{{UserID: "U2", Name: "Ben"}}, members)

	shared, err := s.ListSharedContacts(ctx, "T1", "U2")
	require.NoError(t, err)
	require.Len(t, shared, 2)
	assert.Equal(t, "C3", shared[0].ID)
	assert.Equal(t, domain.VisibilityPrivate, shared[1].Visibility)
}

func TestMemoryStoreListRelationships(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertRelationship(ctx, domain.Relationship{SourceID: "C1", TargetID: "C2", Strength: 2}))
	require.NoError(t, s.UpsertRelationship(ctx, domain.Relationship{SourceID: "U1", TargetID: "C1", IsUserRelationship: true, Strength: 3}))
	require.NoError(t, s.UpsertRelationship(ctx, domain.Relationship{SourceID: "C3", TargetID: "C4", Strength: 5}))
	// Replaces the earlier user relationship.
	require.NoError(t, s.UpsertRelationship(ctx, domain.Relationship{SourceID: "U1", TargetID: "C1", IsUserRelationship: true, Strength: 5}))

	rels, err := s.ListRelationships(ctx, "U1")
	require.NoError(t, err)
	require.Len(t, rels, 2)
	assert.True(t, rels[0].IsUserRelationship)
	assert.Equal(t, 5, rels[0].Strength)
	assert.Equal(t, "C2", rels[1].TargetID)
}

func TestMemoryStoreFindContact(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	c, ok, err := s.FindContact(ctx, "U1", "acme")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "C1", c.ID)

	_, ok, err = s.FindContact(ctx, "U1", "recruiter")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreFindTeamContact(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	match, ok, err := s.FindTeamContact(ctx, "U1", "acme")
	require.NoError(t, err)
	require.True(t, ok)
	// C1 is U1's own share and C4 is private, so Kai is the only match.
	assert.Equal(t, "C3", match.Contact.ID)
	assert.Equal(t, "T1", match.TeamID)
	assert.Equal(t, "Alpha", match.TeamName)
	assert.Equal(t, "Ben", match.SharedByName)

	match, ok, err = s.FindTeamContact(ctx, "U1", "mo")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "T2", match.TeamID)

	_, ok, err = s.FindTeamContact(ctx, "U3", "acme")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreRejectsDanglingReferences(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	assert.Error(t, s.AddTeamMember(ctx, "T1", "U1"))
	assert.Error(t, s.ShareContact(ctx, domain.Share{TeamID: "T1", ContactID: "C1", SharedBy: "U1"}))
	assert.Error(t, s.UpsertContact(ctx, domain.Contact{ID: "C1"}))
}

func TestMemoryStoreWritesAreIdempotent(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	shared, err := s.ListSharedContacts(ctx, "T1", "U2")
	require.NoError(t, err)
	require.Len(t, shared, 2)
	assert.Equal(t, "C3", shared[0].ID)
	assert.Equal(t, domain.VisibilityTeam, shared[0].Visibility)

	require.NoError(t, s.ShareContact(ctx, domain.Share{TeamID: "T1", ContactID: "C3", SharedBy: "U2", Visibility: domain.VisibilityPrivate}))
	shared, err = s.ListSharedContacts(ctx, "T1", "U2")
	require.NoError(t, err)
	require.Len(t, shared, 2)
	assert.Equal(t, domain.VisibilityPrivate, shared[0].Visibility)

	require.NoError(t, s.AddTeamMember(ctx, "T1", "U2"))
	members, err := s.ListTeamMembers(ctx, "T1", "")
	require.NoError(t, err)
	assert.Len(t, members, 2)

	require.NoError(t, s.UpsertUser(ctx, domain.User{ID: "U2", Name: "Bea"}))
	members, err = s.ListTeamMembers(ctx, "T1", "U1")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Bea", members[0].Name)
}
