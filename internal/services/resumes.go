package services

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/cvmaster/internal/common"
	"github.com/dmitrijs2005/cvmaster/internal/dbx"
	"github.com/dmitrijs2005/cvmaster/internal/models"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/repomanager"
	"github.com/dmitrijs2005/cvmaster/internal/repositories/resumes"
	"github.com/google/uuid"
)

// ResumeArchive stores generated résumés, most recent first. Mutations on
// an unknown id report false (or nil) and write nothing.
type ResumeArchive interface {
	Save(ctx context.Context, ref models.AccountRef, doc models.ResumeDocument) (*models.SavedResume, error)
	// ListForAccount returns every résumé matching ref by id or by email.
	ListForAccount(ctx context.Context, ref models.AccountRef) ([]models.SavedResume, error)
	// Get returns common.ErrResumeNotFound for an unknown id.
	Get(ctx context.Context, id string) (*models.SavedResume, error)
	Rename(ctx context.Context, id, title string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Duplicate(ctx context.Context, id string) (*models.SavedResume, error)
	// AppendCourseRecord adds a course line to the Markdown text and to the
	// structured education section. hours and completionDate (yyyy-mm-dd)
	// are optional. Repeated calls append repeatedly.
	AppendCourseRecord(ctx context.Context, id, description, hours, completionDate string) (bool, error)
}

type resumeArchive struct {
	db    *sql.DB
	m     repomanager.RepositoryManager
	now   func() time.Time
	newID func() string
}

func NewResumeArchive(db *sql.DB, m repomanager.RepositoryManager) ResumeArchive {
	return &resumeArchive{db: db, m: m, now: time.Now, newID: uuid.NewString}
}

func (a *resumeArchive) all(ctx context.Context) ([]models.SavedResume, error) {
	items, err := a.m.Resumes(a.db).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading resumes: %w", err)
	}
	return items, nil
}

// mutate loads the archive in a locked transaction and stores what fn
// returns. fn reports false to leave the archive untouched.
func (a *resumeArchive) mutate(ctx context.Context, fn func(items []models.SavedResume) ([]models.SavedResume, bool)) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := lockKeys(ctx, a.m, tx, resumes.Key); err != nil {
			return err
		}
		repo := a.m.Resumes(tx)

		items, err := repo.All(ctx)
		if err != nil {
			return fmt.Errorf("error reading resumes: %w", err)
		}
		items, ok := fn(items)
		if !ok {
			return nil
		}
		if err := repo.ReplaceAll(ctx, items); err != nil {
			return fmt.Errorf("error storing resumes: %w", err)
		}
		return nil
	})
}

func (a *resumeArchive) Save(ctx context.Context, ref models.AccountRef, doc models.ResumeDocument) (*models.SavedResume, error) {
	data := doc.Clone()
	if data.SchemaVersion == 0 {
		data.SchemaVersion = models.ResumeSchemaVersion
	}

	saved := models.SavedResume{
		ID:        a.newID(),
		UserID:    ref.ID,
		UserEmail: models.NormalizeEmail(ref.Email),
		CreatedAt: a.now().UTC(),
		Title:     data.Title(),
		Data:      data,
	}

	err := a.mutate(ctx, func(items []models.SavedResume) ([]models.SavedResume, bool) {
		return append([]models.SavedResume{saved}, items...), true
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (a *resumeArchive) ListForAccount(ctx context.Context, ref models.AccountRef) ([]models.SavedResume, error) {
	items, err := a.all(ctx)
	if err != nil {
		return nil, err
	}
	ref.Email = models.NormalizeEmail(ref.Email)
	return resumes.NewIndex(items).ForAccount(ref), nil
}

func (a *resumeArchive) Get(ctx context.Context, id string) (*models.SavedResume, error) {
	items, err := a.all(ctx)
	if err != nil {
		return nil, err
	}
	i, ok := resumes.NewIndex(items).Find(id)
	if !ok {
		return nil, common.ErrResumeNotFound
	}
	return &items[i], nil
}

// update applies fn to the résumé with id and stores the archive.
// It reports false without writing when id is unknown.
func (a *resumeArchive) update(ctx context.Context, id string, fn func(r *models.SavedResume)) (bool, error) {
	found := false
	err := a.mutate(ctx, func(items []models.SavedResume) ([]models.SavedResume, bool) {
		i, ok := resumes.NewIndex(items).Find(id)
		if !ok {
			return nil, false
		}
		fn(&items[i])
		found = true
		return items, true
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func (a *resumeArchive) Rename(ctx context.Context, id, title string) (bool, error) {
	return a.update(ctx, id, func(r *models.SavedResume) {
		r.Title = title
	})
}

func (a *resumeArchive) Delete(ctx context.Context, id string) (bool, error) {
	found := false
	err := a.mutate(ctx, func(items []models.SavedResume) ([]models.SavedResume, bool) {
		i, ok := resumes.NewIndex(items).Find(id)
		if !ok {
			return nil, false
		}
		found = true
		return slices.Delete(items, i, i+1), true
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func (a *resumeArchive) Duplicate(ctx context.Context, id string) (*models.SavedResume, error) {
	var cp *models.SavedResume
	err := a.mutate(ctx, func(items []models.SavedResume) ([]models.SavedResume, bool) {
		i, ok := resumes.NewIndex(items).Find(id)
		if !ok {
			return nil, false
		}
		c := items[i]
		c.ID = a.newID()
		c.CreatedAt = a.now().UTC()
		c.Title = items[i].Title + models.CopySuffix
		c.Data = items[i].Data.Clone()
		cp = &c
		return append([]models.SavedResume{c}, items...), true
	})
	if err != nil {
		return nil, err
	}
	return cp, nil
}

func (a *resumeArchive) AppendCourseRecord(ctx context.Context, id, description, hours, completionDate string) (bool, error) {
	entry := courseEntry(description, hours, completionDate)
	return a.update(ctx, id, func(r *models.SavedResume) {
		r.Data.Markdown += entry
		if r.Data.Structured != nil {
			r.Data.Structured.Education += entry
		}
	})
}

// courseEntry formats "\n- <description> (Workload: <h>h, Completed: dd/mm/yyyy)",
// leaving out whatever detail is blank.
func courseEntry(description, hours, completionDate string) string {
	var details []string
	if h := strings.TrimSpace(hours); h != "" {
		details = append(details, "Workload: "+h+"h")
	}
	if d := strings.TrimSpace(completionDate); d != "" {
		details = append(details, "Completed: "+dayFirst(d))
	}

	line := description
	if len(details) > 0 {
		line += " (" + strings.Join(details, ", ") + ")"
	}
	return "\n- " + line
}

// dayFirst turns "2024-03-09" into "09/03/2024" by reversing the dash
// separated parts, so partial dates ("2024-03") still come out readable.
func dayFirst(date string) string {
	parts := strings.Split(date, "-")
	slices.Reverse(parts)
	return strings.Join(parts, "/")
}
