// Package tools defines the tool summary records that a comparison holds.
package tools

import (
	"strings"

	"github.com/agentstation/utc"
)

// Tool is a summary of a directory listing. Only ID is interpreted by the
// comparison logic; the remaining fields are carried for display.
type Tool struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	Slug        string   `json:"slug,omitempty" yaml:"slug,omitempty"`
	Category    string   `json:"category,omitempty" yaml:"category,omitempty"`
	Vendor      string   `json:"vendor,omitempty" yaml:"vendor,omitempty"`
	Website     string   `json:"website,omitempty" yaml:"website,omitempty"`
	LogoURL     string   `json:"logo_url,omitempty" yaml:"logo_url,omitempty"`
	Pricing     string   `json:"pricing,omitempty" yaml:"pricing,omitempty"` // Pricing model label, e.g. "freemium"
	Rating      float64  `json:"rating,omitempty" yaml:"rating,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`

	// Partial marks a summary that holds only the ID because details could not be fetched.
	Partial bool `json:"partial,omitempty" yaml:"partial,omitempty"`

	// AddedAt is when the tool entered the local comparison.
	AddedAt *utc.Time `json:"added_at,omitempty" yaml:"added_at,omitempty"`
}

// Placeholder returns a partial summary for id.
func Placeholder(id string) Tool {
	return Tool{ID: id, Partial: true}
}

// DisplayName returns the name, falling back to the slug and then the ID.
func (t Tool) DisplayName() string {
	switch {
	case strings.TrimSpace(t.Name) != "":
		return t.Name
	case t.Slug != "":
		return t.Slug
	default:
		return t.ID
	}
}

// Stamp returns a copy of t with AddedAt set to now when it is not already set.
func (t Tool) Stamp() Tool {
	if t.AddedAt == nil {
		now := utc.Now()
		t.AddedAt = &now
	}
	return t
}

// Clone returns a deep copy of t.
func (t Tool) Clone() Tool {
	if t.Tags != nil {
		t.Tags = append([]string(nil), t.Tags...)
	}
	if t.AddedAt != nil {
		added := *t.AddedAt
		t.AddedAt = &added
	}
	return t
}

// NormalizeID trims surrounding whitespace from a tool identifier.
func NormalizeID(id string) string {
	return strings.TrimSpace(id)
}
