package repository

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/vanshika/trustpath/internal/domain"
)

// MemoryStore is an in-process implementation of the read and write data
// access contracts. It backs offline path queries and engine tests.
type MemoryStore struct {
	mu            sync.RWMutex
	users         map[string]domain.User
	contacts      map[string]domain.Contact
	relationships []domain.Relationship
	teams         map[string]domain.Team
	members       map[string]map[string]struct{}
	shares        map[shareKey]domain.Share
}

type shareKey struct {
	teamID    string
	contactID string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]domain.User),
		contacts: make(map[string]domain.Contact),
		teams:    make(map[string]domain.Team),
		members:  make(map[string]map[string]struct{}),
		shares:   make(map[shareKey]domain.Share),
	}
}

// UpsertUser stores or replaces a user.
func (m *MemoryStore) UpsertUser(_ context.Context, user domain.User) error {
	if user.ID == "" {
		return errors.New("user id is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

// UpsertContact stores or replaces a contact. The owner is not checked.
func (m *MemoryStore) UpsertContact(_ context.Context, contact domain.Contact) error {
	if contact.ID == "" || contact.OwnerID == "" {
		return errors.New("contact id and owner id are required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contacts[contact.ID] = contact
	return nil
}

// UpsertRelationship replaces an existing relationship between the same
// endpoints or appends a new one.
func (m *MemoryStore) UpsertRelationship(_ context.Context, rel domain.Relationship) error {
	if rel.SourceID == "" || rel.TargetID == "" {
		return errors.New("relationship endpoints are required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.relationships {
		if existing.SourceID == rel.SourceID && existing.TargetID == rel.TargetID &&
			existing.IsUserRelationship == rel.IsUserRelationship {
			m.relationships[i] = rel
			return nil
		}
	}
	m.relationships = append(m.relationships, rel)
	return nil
}

// UpsertTeam stores or replaces a team.
func (m *MemoryStore) UpsertTeam(_ context.Context, team domain.Team) error {
	if team.ID == "" {
		return errors.New("team id is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teams[team.ID] = team
	return nil
}

// AddTeamMember links a known user to a known team. Repeated calls are
// idempotent.
func (m *MemoryStore) AddTeamMember(_ context.Context, teamID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.teams[teamID]; !ok {
		return fmt.Errorf("team %s not found", teamID)
	}
	if _, ok := m.users[userID]; !ok {
		return fmt.Errorf("user %s not found", userID)
	}
	set, ok := m.members[teamID]
	if !ok {
		set = make(map[string]struct{})
		m.members[teamID] = set
	}
	set[userID] = struct{}{}
	return nil
}

// ShareContact shares a contact with a team, defaulting to team visibility.
// Sharing the same contact again replaces the earlier share.
func (m *MemoryStore) ShareContact(_ context.Context, share domain.Share) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.teams[share.TeamID]; !ok {
		return fmt.Errorf("team %s not found", share.TeamID)
	}
	if _, ok := m.contacts[share.ContactID]; !ok {
		return fmt.Errorf("contact %s not found", share.ContactID)
	}
	if share.Visibility == "" {
		share.Visibility = domain.VisibilityTeam
	}
	m.shares[shareKey{teamID: share.TeamID, contactID: share.ContactID}] = share
	return nil
}

// ListContacts returns the contacts owned by userID ordered by name then id.
func (m *MemoryStore) ListContacts(_ context.Context, userID string) ([]domain.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ownedContactsLocked(userID), nil
}

// ListRelationships returns the user's own relationships followed by the
// relationships among the user's contacts, in insertion order.
func (m *MemoryStore) ListRelationships(_ context.Context, userID string) ([]domain.Relationship, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var own, between []domain.Relationship
	for _, rel := range m.relationships {
		if rel.IsUserRelationship {
			if rel.SourceID == userID {
				own = append(own, rel)
			}
			continue
		}
		if m.contacts[rel.SourceID].OwnerID == userID && m.contacts[rel.TargetID].OwnerID == userID {
			between = append(between, rel)
		}
	}
	return append(own, between...), nil
}

// ListTeams returns the teams userID belongs to ordered by name then id.
func (m *MemoryStore) ListTeams(_ context.Context, userID string) ([]domain.Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.teamsOfLocked(userID), nil
}

// ListTeamMembers returns the members of teamID other than excludeUserID
// ordered by name then id.
func (m *MemoryStore) ListTeamMembers(_ context.Context, teamID, excludeUserID string) ([]domain.TeamMember, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var members []domain.TeamMember
	for userID := range m.members[teamID] {
		if userID == excludeUserID {
			continue
		}
		members = append(members, domain.TeamMember{UserID: userID, Name: m.users[userID].Name})
	}
	slices.SortFunc(members, func(a, b domain.TeamMember) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.UserID, b.UserID))
	})
	return members, nil
}

// ListSharedContacts returns the contacts memberID shared with teamID.
func (m *MemoryStore) ListSharedContacts(_ context.Context, teamID, memberID string) ([]domain.SharedContact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sharedContactsLocked(teamID, memberID), nil
}

// FindContact returns the first of the user's contacts matching query.
func (m *MemoryStore) FindContact(_ context.Context, userID, query string) (domain.Contact, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.ownedContactsLocked(userID) {
		if c.Matches(query) {
			return c, true, nil
		}
	}
	return domain.Contact{}, false, nil
}

// FindTeamContact returns the first contact shared with one of the user's
// teams by someone other than the user that matches query.
func (m *MemoryStore) FindTeamContact(_ context.Context, userID, query string) (domain.TeamContactMatch, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, team := range m.teamsOfLocked(userID) {
		for _, sc := range m.sharedContactsLocked(team.ID, "") {
			if sc.SharedBy == userID || sc.Visibility == domain.VisibilityPrivate || !sc.Matches(query) {
				continue
			}
			return domain.TeamContactMatch{
				Contact:      sc.Contact,
				TeamID:       team.ID,
				TeamName:     team.Name,
				SharedByID:   sc.SharedBy,
				SharedByName: m.users[sc.SharedBy].Name,
			}, true, nil
		}
	}
	return domain.TeamContactMatch{}, false, nil
}

func (m *MemoryStore) ownedContactsLocked(userID string) []domain.Contact {
	var out []domain.Contact
	for _, c := range m.contacts {
		if c.OwnerID == userID {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, compareContacts)
	return out
}

func (m *MemoryStore) teamsOfLocked(userID string) []domain.Team {
	var out []domain.Team
	for teamID, set := range m.members {
		if _, ok := set[userID]; ok {
			out = append(out, m.teams[teamID])
		}
	}
	slices.SortFunc(out, func(a, b domain.Team) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out
}

// sharedContactsLocked lists shares into teamID; an empty memberID matches
// every member.
func (m *MemoryStore) sharedContactsLocked(teamID, memberID string) []domain.SharedContact {
	var out []domain.SharedContact
	for key, share := range m.shares {
		if key.teamID != teamID || (memberID != "" && share.SharedBy != memberID) {
			continue
		}
		c, ok := m.contacts[share.ContactID]
		if !ok || c.OwnerID != share.SharedBy {
			continue
		}
		out = append(out, domain.SharedContact{
			Contact:    c,
			TeamID:     teamID,
			SharedBy:   share.SharedBy,
			Visibility: share.Visibility,
		})
	}
	slices.SortFunc(out, func(a, b domain.SharedContact) int {
		return compareContacts(a.Contact, b.Contact)
	})
	return out
}

func compareContacts(a, b domain.Contact) int {
	return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
}
