package domain

// Team groups users that share contacts with one another.
type Team struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// TeamMember is a member of a team as seen by another member.
type TeamMember struct {
	UserID string `json:"userId" yaml:"userId"`
	Name   string `json:"name" yaml:"name"`
}

// Share visibility levels.
const (
	VisibilityTeam    = "team"
	VisibilityPrivate = "private"
)

// SharedContact is a contact that a member has shared with a team.
type SharedContact struct {
	Contact
	TeamID     string `json:"teamId" yaml:"teamId"`
	SharedBy   string `json:"sharedBy" yaml:"sharedBy"`
	Visibility string `json:"visibility,omitempty" yaml:"visibility,omitempty"`
}

// TeamContactMatch is the result of a free-text search across contacts
// shared with the teams a user belongs to.
type TeamContactMatch struct {
	Contact      Contact
	TeamID       string
	TeamName     string
	SharedByID   string
	SharedByName string
}

// Share records that a member shared one of their contacts with a team.
type Share struct {
	TeamID     string `json:"teamId" yaml:"teamId"`
	ContactID  string `json:"contactId" yaml:"contactId"`
	SharedBy   string `json:"sharedBy" yaml:"sharedBy"`
	Visibility string `json:"visibility,omitempty" yaml:"visibility,omitempty"`
}
