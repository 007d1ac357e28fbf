package network

import "strings"

// NodeKind discriminates the variants of Node.
type NodeKind string

const (
	KindSelf              NodeKind = "self"
	KindOwnContact        NodeKind = "contact"
	KindTeammate          NodeKind = "teammate"
	KindTeamSharedContact NodeKind = "team_contact"
)

// Edge types inserted by the builder. Relationship edges carry their stored type.
const (
	EdgeTypeDirect     = "direct"
	EdgeTypeTeammate   = "teammate"
	EdgeTypeTeamShared = "team_shared"
)

// Fixed strengths for edges that do not come from a stored relationship.
const (
	TeammateStrength   = 4
	TeamSharedStrength = 3
)

const idSeparator = ":"

// TeamProvenance records how a virtual node became reachable.
//
// For a teammate, MemberID/MemberName identify the teammate. For a team
// shared contact they identify the teammate who shared it.
type TeamProvenance struct {
	TeamID     string `json:"teamId"`
	TeamName   string `json:"teamName"`
	MemberID   string `json:"memberId"`
	MemberName string `json:"memberName"`
}

// Node is an addressable entity in the acquaintance graph. Kind selects which
// of the optional fields are meaningful: Company and Title for contacts,
// Team for teammates and team shared contacts.
type Node struct {
	ID      string          `json:"id"`
	Kind    NodeKind        `json:"kind"`
	Name    string          `json:"name"`
	Company string          `json:"company,omitempty"`
	Title   string          `json:"title,omitempty"`
	Team    *TeamProvenance `json:"team,omitempty"`

	// ContactID is the underlying contact for contact kinds, and the
	// teammate's user id for teammates.
	ContactID string `json:"contactId,omitempty"`
}

// IsVirtual reports whether the node only exists through team membership.
func (n Node) IsVirtual() bool {
	return n.Kind == KindTeammate || n.Kind == KindTeamSharedContact
}

// Edge is a directed trust link. Builders always insert edges in mirrored pairs.
type Edge struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Strength int    `json:"strength"`
	Type     string `json:"type"`
}

// TeammateNodeID derives the node id for a teammate. Teammate identity is per
// underlying user so a person met through several teams appears once.
func TeammateNodeID(memberUserID string) string {
	return strings.Join([]string{string(KindTeammate), memberUserID}, idSeparator)
}

// TeamContactNodeID derives the node id for a contact shared into a team. The
// same contact shared through two teams yields two distinct ids.
func TeamContactNodeID(teamID, contactID string) string {
	return strings.Join([]string{string(KindTeamSharedContact), teamID, contactID}, idSeparator)
}
