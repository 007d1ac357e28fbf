package network

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vanshika/trustpath/internal/dataset"
	"github.com/vanshika/trustpath/internal/domain"
	"github.com/vanshika/trustpath/internal/logging"
	"github.com/vanshika/trustpath/internal/repository"
)

var errStoreDown = errors.New("store down")

func newStore(t *testing.T, ds dataset.Dataset) *repository.MemoryStore {
	t.Helper()
	require.NoError(t, ds.Validate())
	store := repository.NewMemoryStore()
	require.NoError(t, dataset.Apply(context.Background(), ds, store))
	return store
}

func buildGraph(t *testing.T, ds dataset.Dataset) *Graph {
	t.Helper()
	g, err := NewBuilder(newStore(t, ds), WithLogger(logging.Discard())).Build(context.Background(), "U")
	require.NoError(t, err)
	return g
}

func userRel(contactID string, strength int) domain.Relationship {
	return domain.Relationship{SourceID: "U", TargetID: contactID, IsUserRelationship: true, Strength: strength}
}

func contactRel(from, to string, strength int) domain.Relationship {
	return domain.Relationship{SourceID: from, TargetID: to, Strength: strength}
}

// teamNetwork is U in team T ("Alpha") with teammate M, who shared X.
func teamNetwork() dataset.Dataset {
	return dataset.Dataset{
		Users: []domain.User{{ID: "U", Name: "Uma"}, {ID: "M", Name: "Max"}},
		Contacts: []domain.Contact{
			{ID: "X", OwnerID: "M", Name: "Xena", Company: "Acme", Title: "VP Sales"},
		},
		Teams:  []dataset.Team{{ID: "T", Name: "Alpha", Members: []string{"U", "M"}}},
		Shares: []domain.Share{{TeamID: "T", ContactID: "X", SharedBy: "M"}},
	}
}

// failingStore wraps a store and fails one operation.
type failingStore struct {
	Store
	op string
}

func (f failingStore) ListContacts(ctx context.Context, userID string) ([]domain.Contact, error) {
	if f.op == "contacts" {
		return nil, errStoreDown
	}
	return f.Store.ListContacts(ctx, userID)
}

func (f failingStore) ListTeamMembers(ctx context.Context, teamID, excludeUserID string) ([]domain.TeamMember, error) {
	if f.op == "members" {
		return nil, errStoreDown
	}
	return f.Store.ListTeamMembers(ctx, teamID, excludeUserID)
}

func (f failingStore) ListSharedContacts(ctx context.Context, teamID, memberID string) ([]domain.SharedContact, error) {
	if f.op == "shares" {
		return nil, errStoreDown
	}
	return f.Store.ListSharedContacts(ctx, teamID, memberID)
}

func (f failingStore) FindTeamContact(ctx context.Context, userID, query string) (domain.TeamContactMatch, bool, error) {
	if f.op == "find_team" {
		return domain.TeamContactMatch{}, false, errStoreDown
	}
	return f.Store.FindTeamContact(ctx, userID, query)
}

func (f failingStore) ListRelationships(ctx context.Context, userID string) ([]domain.Relationship, error) {
	if f.op == "relationships" {
		return nil, errStoreDown
	}
	return f.Store.ListRelationships(ctx, userID)
}

func (f failingStore) ListTeams(ctx context.Context, userID string) ([]domain.Team, error) {
	if f.op == "teams" {
		return nil, errStoreDown
	}
	return f.Store.ListTeams(ctx, userID)
}

func (f failingStore) FindContact(ctx context.Context, userID, query string) (domain.Contact, bool, error) {
	if f.op == "find_contact" {
		return domain.Contact{}, false, errStoreDown
	}
	return f.Store.FindContact(ctx, userID, query)
}
