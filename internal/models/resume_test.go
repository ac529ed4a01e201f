package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() ResumeDocument {
	return ResumeDocument{
		SchemaVersion: ResumeSchemaVersion,
		Markdown:      "# Ana",
		Structured: &StructuredResume{
			FullName:  "Ana",
			Role:      "Backend Engineer",
			Skills:    []string{"go", "sql"},
			Languages: []string{"pt", "en"},
			Education: "BSc",
		},
		Suggestions: "add metrics",
	}
}

func TestResumeDocument_CloneIsDeep(t *testing.T) {
	orig := sampleDocument()
	cp := orig.Clone()
	require.Equal(t, orig, cp)

	cp.Structured.Education += "\n- course"
	cp.Structured.Skills[0] = "rust"
	cp.Markdown += "!"

	assert.Equal(t, "BSc", orig.Structured.Education)
	assert.Equal(t, "go", orig.Structured.Skills[0])
	assert.Equal(t, "# Ana", orig.Markdown)
}

func TestResumeDocument_CloneWithoutStructured(t *testing.T) {
	d := ResumeDocument{Markdown: "x"}
	assert.Nil(t, d.Clone().Structured)
}

func TestResumeDocument_Title(t *testing.T) {
	d := sampleDocument()
	assert.Equal(t, "Backend Engineer", d.Title())

	d.Structured.Role = ""
	assert.Equal(t, DefaultResumeTitle, d.Title())

	assert.Equal(t, DefaultResumeTitle, (&ResumeDocument{}).Title())
}

func TestSavedResume_OwnedBy(t *testing.T) {
	r := SavedResume{ID: "r1", UserID: "u1", UserEmail: "ana@x.com"}

	assert.True(t, r.OwnedBy(AccountRef{ID: "u1"}))
	assert.True(t, r.OwnedBy(AccountRef{ID: "drifted", Email: "ana@x.com"}))
	assert.False(t, r.OwnedBy(AccountRef{ID: "drifted"}))
	assert.False(t, r.OwnedBy(AccountRef{ID: "u2", Email: "bob@x.com"}))
}

func TestLicense_Redeem(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	l := License{Code: "CV-ABC12345", Status: LicenseActive}
	require.False(t, l.IsUsed())

	l.Redeem("ana@x.com", at)

	assert.True(t, l.IsUsed())
	assert.Equal(t, "ana@x.com", l.UsedBy)
	require.NotNil(t, l.UsedAt)
	assert.Equal(t, at, *l.UsedAt)
}
