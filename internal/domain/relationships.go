package domain

// Relationship strength bounds.
const (
	MinStrength = 1
	MaxStrength = 5
)

// Relationship links two endpoints with a trust strength.
//
// When IsUserRelationship is set, SourceID is the owning user's id and
// TargetID is one of that user's contacts. Otherwise both endpoints are
// contact ids.
type Relationship struct {
	SourceID           string `json:"sourceId" yaml:"sourceId"`
	TargetID           string `json:"targetId" yaml:"targetId"`
	IsUserRelationship bool   `json:"isUserRelationship" yaml:"isUserRelationship"`
	Strength           int    `json:"strength" yaml:"strength"`
	Type               string `json:"type" yaml:"type"`
}

// ValidStrength reports whether s lies within [MinStrength, MaxStrength].
func ValidStrength(s int) bool {
	return s >= MinStrength && s <= MaxStrength
}
