// Package dataset defines the on-disk format for acquaintance networks used
// by ingestion, the synthetic generator and offline path queries.
package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vanshika/trustpath/internal/domain"
)

// Team is a team together with the ids of its member users.
type Team struct {
	ID      string   `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Members []string `json:"members" yaml:"members"`
}

// Dataset is a complete acquaintance network.
type Dataset struct {
	Users         []domain.User         `json:"users" yaml:"users"`
	Contacts      []domain.Contact      `json:"contacts" yaml:"contacts"`
	Relationships []domain.Relationship `json:"relationships" yaml:"relationships"`
	Teams         []Team                `json:"teams" yaml:"teams"`
	Shares        []domain.Share        `json:"shares" yaml:"shares"`
}

// Writer persists dataset records. Both the graph repository and the
// in-memory store implement it.
type Writer interface {
	UpsertUser(ctx context.Context, user domain.User) error
	UpsertContact(ctx context.Context, contact domain.Contact) error
	UpsertRelationship(ctx context.Context, rel domain.Relationship) error
	UpsertTeam(ctx context.Context, team domain.Team) error
	AddTeamMember(ctx context.Context, teamID, userID string) error
	ShareContact(ctx context.Context, share domain.Share) error
}

// Load reads a dataset from a YAML or JSON file.
func Load(path string) (Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a dataset. JSON input is accepted since it is valid YAML.
func Parse(raw []byte) (Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return Dataset{}, fmt.Errorf("decode dataset: %w", err)
	}
	return ds, nil
}

// Write stores ds at path, as JSON when the extension is .json and YAML otherwise.
func Write(ds Dataset, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dataset directory: %w", err)
		}
	}

	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(ds, "", "  ")
	} else {
		data, err = yaml.Marshal(ds)
	}
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks referential integrity and strength bounds.
func (ds Dataset) Validate() error {
	var errs []error

	users := make(map[string]struct{}, len(ds.Users))
	for _, u := range ds.Users {
		if u.ID == "" {
			errs = append(errs, errors.New("user with empty id"))
			continue
		}
		users[u.ID] = struct{}{}
	}

	contacts := make(map[string]domain.Contact, len(ds.Contacts))
	for _, c := range ds.Contacts {
		if c.ID == "" {
			errs = append(errs, errors.New("contact with empty id"))
			continue
		}
		if _, ok := users[c.OwnerID]; !ok {
			errs = append(errs, fmt.Errorf("contact %s: unknown owner %q", c.ID, c.OwnerID))
		}
		contacts[c.ID] = c
	}

	for i, rel := range ds.Relationships {
		if !domain.ValidStrength(rel.Strength) {
			errs = append(errs, fmt.Errorf("relationship %d: strength %d out of range", i, rel.Strength))
		}
		target, ok := contacts[rel.TargetID]
		if !ok {
			errs = append(errs, fmt.Errorf("relationship %d: unknown contact %q", i, rel.TargetID))
			continue
		}
		if rel.IsUserRelationship {
			if target.OwnerID != rel.SourceID {
				errs = append(errs, fmt.Errorf("relationship %d: contact %s is not owned by %s", i, rel.TargetID, rel.SourceID))
			}
			continue
		}
		source, ok := contacts[rel.SourceID]
		if !ok {
			errs = append(errs, fmt.Errorf("relationship %d: unknown contact %q", i, rel.SourceID))
			continue
		}
		if source.OwnerID != target.OwnerID {
			errs = append(errs, fmt.Errorf("relationship %d: contacts belong to different owners", i))
		}
	}

	members := make(map[string]map[string]struct{}, len(ds.Teams))
	for _, t := range ds.Teams {
		if t.ID == "" {
			errs = append(errs, errors.New("team with empty id"))
			continue
		}
		set := make(map[string]struct{}, len(t.Members))
		for _, m := range t.Members {
			if _, ok := users[m]; !ok {
				errs = append(errs, fmt.Errorf("team %s: unknown member %q", t.ID, m))
			}
			set[m] = struct{}{}
		}
		members[t.ID] = set
	}

	for i, s := range ds.Shares {
		set, ok := members[s.TeamID]
		if !ok {
			errs = append(errs, fmt.Errorf("share %d: unknown team %q", i, s.TeamID))
			continue
		}
		if _, ok := set[s.SharedBy]; !ok {
			errs = append(errs, fmt.Errorf("share %d: %s is not a member of team %s", i, s.SharedBy, s.TeamID))
		}
		c, ok := contacts[s.ContactID]
		if !ok {
			errs = append(errs, fmt.Errorf("share %d: unknown contact %q", i, s.ContactID))
			continue
		}
		if c.OwnerID != s.SharedBy {
			errs = append(errs, fmt.Errorf("share %d: contact %s is not owned by %s", i, s.ContactID, s.SharedBy))
		}
	}

	return errors.Join(errs...)
}

// Apply writes every record of ds into w, in dependency order.
func Apply(ctx context.Context, ds Dataset, w Writer) error {
	for _, u := range ds.Users {
		if err := w.UpsertUser(ctx, u); err != nil {
			return err
		}
	}
	for _, c := range ds.Contacts {
		if err := w.UpsertContact(ctx, c); err != nil {
			return err
		}
	}
	for _, t := range ds.Teams {
		if err := w.UpsertTeam(ctx, domain.Team{ID: t.ID, Name: t.Name}); err != nil {
			return err
		}
		for _, m := range t.Members {
			if err := w.AddTeamMember(ctx, t.ID, m); err != nil {
				return err
			}
		}
	}
	for _, rel := range ds.Relationships {
		if err := w.UpsertRelationship(ctx, rel); err != nil {
			return err
		}
	}
	for _, s := range ds.Shares {
		if err := w.ShareContact(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
