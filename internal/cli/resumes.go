package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dmitrijs2005/cvmaster/internal/common"
	"github.com/dmitrijs2005/cvmaster/internal/models"
)

var errUsageID = errors.New("usage: <command> <id>")

// ownResume returns the résumé id if it belongs to the session account.
// Résumés of other accounts are reported as not found.
func (a *App) ownResume(ctx context.Context, args []string) (*models.Account, *models.SavedResume, error) {
	acc, err := a.requireUser(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(args) != 1 {
		return nil, nil, a.fail(ctx, "resume", errUsageID)
	}

	r, err := a.resumes.Get(ctx, args[0])
	if err == nil && !r.OwnedBy(acc.Ref()) {
		err = common.ErrResumeNotFound
	}
	if err != nil {
		return nil, nil, a.fail(ctx, "resume", err)
	}
	return acc, r, nil
}

// Save stores a generator output file (a JSON ResumeDocument).
func (a *App) Save(ctx context.Context, args []string) error {
	acc, err := a.requireUser(ctx)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return a.fail(ctx, "save", errors.New("usage: save <file.json>"))
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return a.fail(ctx, "save", err)
	}
	var doc models.ResumeDocument
	if err := json.Unmarshal(b, &doc); err != nil {
		return a.fail(ctx, "save", fmt.Errorf("invalid resume file: %w", err))
	}

	saved, err := a.resumes.Save(ctx, acc.Ref(), doc)
	if err != nil {
		return a.fail(ctx, "save", err)
	}
	a.printf("Saved %s (%s)\n", saved.Title, saved.ID)
	return nil
}

func (a *App) List(ctx context.Context, args []string) error {
	acc, err := a.requireUser(ctx)
	if err != nil {
		return err
	}

	items, err := a.resumes.ListForAccount(ctx, acc.Ref())
	if err != nil {
		return a.fail(ctx, "list", err)
	}
	if len(items) == 0 {
		a.println("No saved resumes")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tTITLE")
	for _, r := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Title)
	}
	return tw.Flush()
}

func (a *App) Show(ctx context.Context, args []string) error {
	_, r, err := a.ownResume(ctx, args)
	if err != nil {
		return err
	}
	a.printf("# %s (%s)\n\n%s\n", r.Title, r.CreatedAt.Format("2006-01-02"), r.Data.Markdown)
	if r.Data.Suggestions != "" {
		a.printf("\nSuggestions:\n%s\n", r.Data.Suggestions)
	}
	return nil
}

func (a *App) Rename(ctx context.Context, args []string) error {
	_, r, err := a.ownResume(ctx, args)
	if err != nil {
		return err
	}
	title, err := a.getSimpleText("-Enter new title")
	if err != nil {
		return a.fail(ctx, "rename", err)
	}
	if title == "" {
		return a.fail(ctx, "rename", errors.New("title must not be empty"))
	}

	if _, err := a.resumes.Rename(ctx, r.ID, title); err != nil {
		return a.fail(ctx, "rename", err)
	}
	a.println("Renamed")
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	_, r, err := a.ownResume(ctx, args)
	if err != nil {
		return err
	}
	if _, err := a.resumes.Delete(ctx, r.ID); err != nil {
		return a.fail(ctx, "delete", err)
	}
	a.println("Deleted")
	return nil
}

func (a *App) Duplicate(ctx context.Context, args []string) error {
	_, r, err := a.ownResume(ctx, args)
	if err != nil {
		return err
	}
	cp, err := a.resumes.Duplicate(ctx, r.ID)
	if err != nil {
		return a.fail(ctx, "duplicate", err)
	}
	if cp == nil {
		return a.fail(ctx, "duplicate", common.ErrResumeNotFound)
	}
	a.printf("Created %s (%s)\n", cp.Title, cp.ID)
	return nil
}

func (a *App) AddCourse(ctx context.Context, args []string) error {
	_, r, err := a.ownResume(ctx, args)
	if err != nil {
		return err
	}

	desc, err := a.getSimpleText("-Enter course description")
	if err != nil {
		return a.fail(ctx, "addcourse", err)
	}
	if desc == "" {
		return a.fail(ctx, "addcourse", errors.New("description must not be empty"))
	}
	hours, err := a.getSimpleText("-Enter workload in hours (optional)")
	if err != nil {
		return a.fail(ctx, "addcourse", err)
	}
	date, err := a.getSimpleText("-Enter completion date yyyy-mm-dd (optional)")
	if err != nil {
		return a.fail(ctx, "addcourse", err)
	}

	if _, err := a.resumes.AppendCourseRecord(ctx, r.ID, desc, hours, date); err != nil {
		return a.fail(ctx, "addcourse", err)
	}
	a.println("Course added")
	return nil
}
