package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vanshika/trustpath/internal/domain"
	"github.com/vanshika/trustpath/internal/graph"
)

// Repository reads and writes the acquaintance network stored in the graph
// database.
type Repository struct {
	client graph.Client
}

// New instantiates a Repository backed by the supplied graph client.
func New(client graph.Client) *Repository {
	return &Repository{client: client}
}

// UpsertUser ensures a user node exists with the latest profile.
func (r *Repository) UpsertUser(ctx context.Context, user domain.User) error {
	if user.ID == "" {
		return errors.New("user id is required")
	}
	_, err := r.client.ExecuteWrite(ctx, upsertUserCypher, map[string]any{
		"userId": user.ID,
		"props": map[string]any{
			"name":  user.Name,
			"email": user.Email,
		},
	})
	if err != nil {
		return fmt.Errorf("upsert user %s: %w", user.ID, err)
	}
	return nil
}

// UpsertContact ensures a contact node exists and is owned by its owner.
func (r *Repository) UpsertContact(ctx context.Context, contact domain.Contact) error {
	if contact.ID == "" || contact.OwnerID == "" {
		return errors.New("contact id and owner id are required")
	}
	_, err := r.client.ExecuteWrite(ctx, upsertContactCypher, map[string]any{
		"contactId": contact.ID,
		"ownerId":   contact.OwnerID,
		"props":     contactProperties(contact),
	})
	if err != nil {
		return fmt.Errorf("upsert contact %s: %w", contact.ID, err)
	}
	return nil
}

// UpsertRelationship stores a user-to-contact or contact-to-contact link.
func (r *Repository) UpsertRelationship(ctx context.Context, rel domain.Relationship) error {
	if rel.SourceID == "" || rel.TargetID == "" {
		return errors.New("relationship endpoints are required")
	}
	query := upsertContactRelationshipCypher
	if rel.IsUserRelationship {
		query = upsertUserRelationshipCypher
	}
	_, err := r.client.ExecuteWrite(ctx, query, map[string]any{
		"sourceId": rel.SourceID,
		"targetId": rel.TargetID,
		"strength": int64(rel.Strength),
		"type":     rel.Type,
	})
	if err != nil {
		return fmt.Errorf("upsert relationship %s->%s: %w", rel.SourceID, rel.TargetID, err)
	}
	return nil
}

// UpsertTeam ensures a team node exists.
func (r *Repository) UpsertTeam(ctx context.Context, team domain.Team) error {
	if team.ID == "" {
		return errors.New("team id is required")
	}
	_, err := r.client.ExecuteWrite(ctx, upsertTeamCypher, map[string]any{
		"teamId": team.ID,
		"name":   team.Name,
	})
	if err != nil {
		return fmt.Errorf("upsert team %s: %w", team.ID, err)
	}
	return nil
}

// AddTeamMember links a user to a team.
func (r *Repository) AddTeamMember(ctx context.Context, teamID, userID string) error {
	if teamID == "" || userID == "" {
		return errors.New("team id and user id are required")
	}
	_, err := r.client.ExecuteWrite(ctx, addTeamMemberCypher, map[string]any{
		"teamId": teamID,
		"userId": userID,
	})
	if err != nil {
		return fmt.Errorf("add user %s to team %s: %w", userID, teamID, err)
	}
	return nil
}

// ShareContact shares a member's contact with a team.
func (r *Repository) ShareContact(ctx context.Context, share domain.Share) error {
	if share.TeamID == "" || share.ContactID == "" || share.SharedBy == "" {
		return errors.New("team id, contact id and sharer are required")
	}
	visibility := share.Visibility
	if visibility == "" {
		visibility = domain.VisibilityTeam
	}
	_, err := r.client.ExecuteWrite(ctx, shareContactCypher, map[string]any{
		"teamId":     share.TeamID,
		"contactId":  share.ContactID,
		"sharedBy":   share.SharedBy,
		"visibility": visibility,
	})
	if err != nil {
		return fmt.Errorf("share contact %s with team %s: %w", share.ContactID, share.TeamID, err)
	}
	return nil
}

// ListContacts returns the contacts owned by userID.
func (r *Repository) ListContacts(ctx context.Context, userID string) ([]domain.Contact, error) {
	res, err := r.client.ExecuteRead(ctx, listContactsCypher, map[string]any{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("list contacts query: %w", err)
	}
	contacts := make([]domain.Contact, 0, len(res.Records))
	for _, record := range res.Records {
		c := contactFromRecord(record)
		c.OwnerID = userID
		contacts = append(contacts, c)
	}
	return contacts, nil
}

// ListRelationships returns the user's direct relationships followed by
// relationships among the user's contacts.
func (r *Repository) ListRelationships(ctx context.Context, userID string) ([]domain.Relationship, error) {
	res, err := r.client.ExecuteRead(ctx, listRelationshipsCypher, map[string]any{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("list relationships query: %w", err)
	}
	rels := make([]domain.Relationship, 0, len(res.Records))
	for _, record := range res.Records {
		rels = append(rels, domain.Relationship{
			SourceID:           record.String("sourceId"),
			TargetID:           record.String("targetId"),
			IsUserRelationship: record.Bool("isUserRelationship"),
			Strength:           record.Int("strength"),
			Type:               record.String("type"),
		})
	}
	return rels, nil
}

// ListTeams returns the teams userID belongs to.
func (r *Repository) ListTeams(ctx context.Context, userID string) ([]domain.Team, error) {
	res, err := r.client.ExecuteRead(ctx, listTeamsCypher, map[string]any{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("list teams query: %w", err)
	}
	teams := make([]domain.Team, 0, len(res.Records))
	for _, record := range res.Records {
		teams = append(teams, domain.Team{
			ID:   record.String("teamId"),
			Name: record.String("name"),
		})
	}
	return teams, nil
}

// ListTeamMembers returns the members of teamID other than excludeUserID.
func (r *Repository) ListTeamMembers(ctx context.Context, teamID, excludeUserID string) ([]domain.TeamMember, error) {
	res, err := r.client.ExecuteRead(ctx, listTeamMembersCypher, map[string]any{
		"teamId":        teamID,
		"excludeUserId": excludeUserID,
	})
	if err != nil {
		return nil, fmt.Errorf("list team members query: %w", err)
	}
	members := make([]domain.TeamMember, 0, len(res.Records))
	for _, record := range res.Records {
		members = append(members, domain.TeamMember{
			UserID: record.String("userId"),
			Name:   record.String("name"),
		})
	}
	return members, nil
}

// ListSharedContacts returns the contacts memberID shared with teamID.
func (r *Repository) ListSharedContacts(ctx context.Context, teamID, memberID string) ([]domain.SharedContact, error) {
	res, err := r.client.ExecuteRead(ctx, listSharedContactsCypher, map[string]any{
		"teamId": teamID,
		"userId": memberID,
	})
	if err != nil {
		return nil, fmt.Errorf("list shared contacts query: %w", err)
	}
	shared := make([]domain.SharedContact, 0, len(res.Records))
	for _, record := range res.Records {
		c := contactFromRecord(record)
		c.OwnerID = memberID
		shared = append(shared, domain.SharedContact{
			Contact:    c,
			TeamID:     teamID,
			SharedBy:   memberID,
			Visibility: record.String("visibility"),
		})
	}
	return shared, nil
}

// FindContact returns the first of the user's contacts whose name, company
// or title contains query, ignoring case.
func (r *Repository) FindContact(ctx context.Context, userID, query string) (domain.Contact, bool, error) {
	res, err := r.client.ExecuteRead(ctx, findContactCypher, map[string]any{
		"userId": userID,
		"query":  normalizeQuery(query),
	})
	if err != nil {
		return domain.Contact{}, false, fmt.Errorf("find contact query: %w", err)
	}
	if len(res.Records) == 0 {
		return domain.Contact{}, false, nil
	}
	c := contactFromRecord(res.Records[0])
	c.OwnerID = userID
	return c, true, nil
}

// FindTeamContact searches contacts shared with the user's teams by other
// members.
func (r *Repository) FindTeamContact(ctx context.Context, userID, query string) (domain.TeamContactMatch, bool, error) {
	res, err := r.client.ExecuteRead(ctx, findTeamContactCypher, map[string]any{
		"userId": userID,
		"query":  normalizeQuery(query),
	})
	if err != nil {
		return domain.TeamContactMatch{}, false, fmt.Errorf("find team contact query: %w", err)
	}
	if len(res.Records) == 0 {
		return domain.TeamContactMatch{}, false, nil
	}
	record := res.Records[0]
	c := contactFromRecord(record)
	c.OwnerID = record.String("sharedById")
	return domain.TeamContactMatch{
		Contact:      c,
		TeamID:       record.String("teamId"),
		TeamName:     record.String("teamName"),
		SharedByID:   record.String("sharedById"),
		SharedByName: record.String("sharedByName"),
	}, true, nil
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func contactProperties(c domain.Contact) map[string]any {
	return map[string]any{
		"name":    c.Name,
		"company": c.Company,
		"title":   c.Title,
	}
}

func contactFromRecord(record graph.Record) domain.Contact {
	return domain.Contact{
		ID:      record.String("contactId"),
		Name:    record.String("name"),
		Company: record.String("company"),
		Title:   record.String("title"),
	}
}
