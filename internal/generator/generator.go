package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/vanshika/trustpath/internal/dataset"
	"github.com/vanshika/trustpath/internal/domain"
)

// Generator produces synthetic acquaintance networks.
type Generator struct {
	cfg           Config
	rand          *rand.Rand
	nameFragments nameFragments
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	defaults := DefaultConfig()
	if cfg.NumUsers <= 0 {
		cfg.NumUsers = defaults.NumUsers
	}
	if cfg.ContactsPerUser < 0 {
		cfg.ContactsPerUser = defaults.ContactsPerUser
	}
	if cfg.AcquaintanceRatio < 0 || cfg.AcquaintanceRatio > 1 {
		cfg.AcquaintanceRatio = defaults.AcquaintanceRatio
	}
	if cfg.NumTeams < 0 {
		cfg.NumTeams = defaults.NumTeams
	}
	if cfg.TeamSize <= 0 {
		cfg.TeamSize = defaults.TeamSize
	}
	if cfg.TeamSize > cfg.NumUsers {
		cfg.TeamSize = cfg.NumUsers
	}
	if cfg.ShareChance < 0 || cfg.ShareChance > 1 {
		cfg.ShareChance = defaults.ShareChance
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:           cfg,
		rand:          rand.New(rand.NewSource(cfg.Seed)),
		nameFragments: defaultNameFragments(),
	}
}

// Generate synthesises a network. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (dataset.Dataset, error) {
	var ds dataset.Dataset
	owned := make([][]domain.Contact, g.cfg.NumUsers)

	for i := 0; i < g.cfg.NumUsers; i++ {
		if err := ctx.Err(); err != nil {
			return dataset.Dataset{}, err
		}

		first, last := g.randomName()
		user := domain.User{
			ID:    fmt.Sprintf("USR-%05d", i+1),
			Name:  first + " " + last,
			Email: g.randomEmail(first, last),
		}
		ds.Users = append(ds.Users, user)

		for j := 0; j < g.cfg.ContactsPerUser; j++ {
			cFirst, cLast := g.randomName()
			contact := domain.Contact{
				ID:      fmt.Sprintf("CON-%05d-%03d", i+1, j+1),
				OwnerID: user.ID,
				Name:    cFirst + " " + cLast,
				Company: g.pick(g.nameFragments.companies),
				Title:   g.pick(g.nameFragments.titles),
			}
			owned[i] = append(owned[i], contact)
			ds.Contacts = append(ds.Contacts, contact)
			ds.Relationships = append(ds.Relationships, domain.Relationship{
				SourceID:           user.ID,
				TargetID:           contact.ID,
				IsUserRelationship: true,
				Strength:           g.randomStrength(),
				Type:               g.pick(g.nameFragments.relationTypes),
			})
		}

		contacts := owned[i]
		for a := 0; a < len(contacts); a++ {
			if len(contacts) < 2 || g.rand.Float64() >= g.cfg.AcquaintanceRatio {
				continue
			}
			b := g.rand.Intn(len(contacts) - 1)
			if b >= a {
				b++
			}
			ds.Relationships = append(ds.Relationships, domain.Relationship{
				SourceID: contacts[a].ID,
				TargetID: contacts[b].ID,
				Strength: g.randomStrength(),
				Type:     g.pick(g.nameFragments.relationTypes),
			})
		}
	}

	for t := 0; t < g.cfg.NumTeams; t++ {
		if err := ctx.Err(); err != nil {
			return dataset.Dataset{}, err
		}

		team := dataset.Team{
			ID:   fmt.Sprintf("TEAM-%03d", t+1),
			Name: fmt.Sprintf("%s %s", g.pick(g.nameFragments.teamPrefixes), g.pick(g.nameFragments.teamSuffixes)),
		}
		for _, idx := range g.rand.Perm(g.cfg.NumUsers)[:g.cfg.TeamSize] {
			member := ds.Users[idx].ID
			team.Members = append(team.Members, member)
			for _, c := range owned[idx] {
				if g.rand.Float64() < g.cfg.ShareChance {
					ds.Shares = append(ds.Shares, domain.Share{
						TeamID:     team.ID,
						ContactID:  c.ID,
						SharedBy:   member,
						Visibility: domain.VisibilityTeam,
					})
				}
			}
		}
		ds.Teams = append(ds.Teams, team)
	}

	return ds, nil
}

func (g *Generator) randomStrength() int {
	return domain.MinStrength + g.rand.Intn(domain.MaxStrength-domain.MinStrength+1)
}

func (g *Generator) randomName() (string, string) {
	return g.pick(g.nameFragments.first), g.pick(g.nameFragments.last)
}

func (g *Generator) randomEmail(first, last string) string {
	return fmt.Sprintf("%s.%s@%s", first, last, g.pick(g.nameFragments.domains))
}

func (g *Generator) pick(options []string) string {
	return options[g.rand.Intn(len(options))]
}

type nameFragments struct {
	first         []string
	last          []string
	domains       []string
	companies     []string
	titles        []string
	relationTypes []string
	teamPrefixes  []string
	teamSuffixes  []string
}

func defaultNameFragments() nameFragments {
	return nameFragments{
		first:         []string{"Jane", "John", "Alex", "Priya", "Liu", "Maria", "Omar", "Sofia", "Noah", "Emma", "Lucas", "Mia", "Ava", "Ethan", "Zara"},
		last:          []string{"Doe", "Smith", "Chen", "Patel", "Garcia", "Khan", "Kim", "Ivanov", "Nguyen", "Silva", "Brown", "Lee"},
		domains:       []string{"example.com", "mail.com", "trustpath.io", "inbox.net"},
		companies:     []string{"Acme Corp", "Globex", "Initech", "Umbrella Labs", "Hooli", "Stark Industries", "Wayne Enterprises", "Soylent"},
		titles:        []string{"CEO", "CTO", "VP Sales", "Engineering Manager", "Product Lead", "Investor", "Recruiter", "Designer"},
		relationTypes: []string{"colleague", "friend", "former_colleague", "classmate", "client", "family"},
		teamPrefixes:  []string{"Growth", "Platform", "Founders", "Alumni", "Sales", "Partners"},
		teamSuffixes:  []string{"Circle", "Guild", "Network", "Crew", "Club"},
	}
}
