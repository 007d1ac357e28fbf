package domain

import "strings"

// User is an account that owns contacts and belongs to teams.
type User struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Contact is a person in a user's address book.
type Contact struct {
	ID      string `json:"id" yaml:"id"`
	OwnerID string `json:"ownerId" yaml:"ownerId"`
	Name    string `json:"name" yaml:"name"`
	Company string `json:"company,omitempty" yaml:"company,omitempty"`
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
}

// Matches reports whether query is a case-insensitive substring of the
// contact's name, company or title.
func (c Contact) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	for _, field := range []string{c.Name, c.Company, c.Title} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
