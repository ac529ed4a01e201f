package models

import (
	"slices"
	"time"
)

// ResumeSchemaVersion tags documents written by this version.
const ResumeSchemaVersion = 1

const (
	DefaultResumeTitle = "Untitled Resume"
	CopySuffix         = " (Copy)"
)

// ResumeDocument is the payload produced by the external generator. It is
// stored as-is; only Markdown and Structured.Education are ever edited here.
type ResumeDocument struct {
	SchemaVersion int               `json:"schemaVersion,omitempty"`
	Markdown      string            `json:"markdown"`
	Structured    *StructuredResume `json:"structured,omitempty"`
	Suggestions   string            `json:"suggestions"`
}

// Contact block of a StructuredResume.
type Contact struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
}

// StructuredResume is the layout-ready form of a résumé. Long sections are
// Markdown text.
type StructuredResume struct {
	FullName       string   `json:"fullName"`
	Role           string   `json:"role"`
	Summary        string   `json:"summary"`
	Contact        Contact  `json:"contact"`
	Skills         []string `json:"skills"`
	Languages      []string `json:"languages"`
	Experience     string   `json:"experience"`
	Education      string   `json:"education"`
	Projects       string   `json:"projects"`
	Certifications string   `json:"certifications"`
}

// Clone returns a deep copy of d.
func (d ResumeDocument) Clone() ResumeDocument {
	if d.Structured != nil {
		s := *d.Structured
		s.Skills = slices.Clone(s.Skills)
		s.Languages = slices.Clone(s.Languages)
		d.Structured = &s
	}
	return d
}

// Title returns the role named in the document, or DefaultResumeTitle.
func (d *ResumeDocument) Title() string {
	if d.Structured != nil && d.Structured.Role != "" {
		return d.Structured.Role
	}
	return DefaultResumeTitle
}

// SavedResume is a stored ResumeDocument plus its display metadata.
// UserID and UserEmail both identify the owner.
type SavedResume struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	UserEmail string         `json:"userEmail,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	Title     string         `json:"title"`
	Data      ResumeDocument `json:"data"`
}

// OwnedBy reports whether ref matches the resume by id or, when ref carries
// an email, by email.
func (r *SavedResume) OwnedBy(ref AccountRef) bool {
	if r.UserID == ref.ID {
		return true
	}
	return ref.Email != "" && r.UserEmail == ref.Email
}
