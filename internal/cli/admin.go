package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"
)

func (a *App) Licenses(ctx context.Context, args []string) error {
	if _, err := a.requireAdmin(ctx); err != nil {
		return err
	}
	items, err := a.queries.ListLicenses(ctx)
	if err != nil {
		return a.fail(ctx, "licenses", err)
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tSTATUS\tCREATED\tUSED BY")
	for _, l := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.Code, l.Status, l.CreatedAt.Format(time.DateOnly), l.UsedBy)
	}
	return tw.Flush()
}

func (a *App) GenLicense(ctx context.Context, args []string) error {
	acc, err := a.requireAdmin(ctx)
	if err != nil {
		return err
	}
	lic, err := a.licenses.Generate(ctx, acc.Email)
	if err != nil {
		return a.fail(ctx, "genlicense", err)
	}
	a.logger.Info(ctx, "license generated", "code", lic.Code, "issuer", acc.Email)
	a.println("New license:", lic.Code)
	return nil
}

func (a *App) Users(ctx context.Context, args []string) error {
	if _, err := a.requireAdmin(ctx); err != nil {
		return err
	}
	items, err := a.queries.ListAccounts(ctx)
	if err != nil {
		return a.fail(ctx, "users", err)
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tCREDITS\tLICENSE")
	for _, u := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n", u.ID, u.Name, u.Email, u.Role, u.Balance(), u.LicenseCode)
	}
	return tw.Flush()
}

func (a *App) Stats(ctx context.Context, args []string) error {
	if _, err := a.requireAdmin(ctx); err != nil {
		return err
	}
	st, err := a.queries.Stats(ctx)
	if err != nil {
		return a.fail(ctx, "stats", err)
	}
	a.printf("accounts: %d (admins: %d)\nlicenses: %d active, %d used\n",
		st.Accounts, st.Admins, st.ActiveLicenses, st.UsedLicenses)
	return nil
}

func (a *App) Credits(ctx context.Context, args []string) error {
	if _, err := a.requireAdmin(ctx); err != nil {
		return err
	}
	if len(args) != 2 {
		return a.fail(ctx, "credits", errors.New("usage: credits <id> <n>"))
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 0 {
		return a.fail(ctx, "credits", fmt.Errorf("invalid credit balance %q", args[1]))
	}

	ok, err := a.directory.UpdateCredits(ctx, args[0], n)
	if err != nil {
		return a.fail(ctx, "credits", err)
	}
	if !ok {
		return a.fail(ctx, "credits", fmt.Errorf("%w: %s", errAccountUnknown, args[0]))
	}
	a.printf("Balance of %s set to %d\n", args[0], n)
	return nil
}

var errAccountUnknown = errors.New("no account with id")

func (a *App) Backup(ctx context.Context, args []string) error {
	if _, err := a.requireAdmin(ctx); err != nil {
		return err
	}
	key, err := a.backups.Backup(ctx)
	if err != nil {
		return a.fail(ctx, "backup", err)
	}
	a.logger.Info(ctx, "backup uploaded", "key", key)
	a.println("Backup stored as", key)
	return nil
}

func (a *App) Restore(ctx context.Context, args []string) error {
	if _, err := a.requireAdmin(ctx); err != nil {
		return err
	}
	if len(args) != 1 {
		return a.fail(ctx, "restore", errors.New("usage: restore <key>"))
	}
	if err := a.backups.Restore(ctx, args[0]); err != nil {
		return a.fail(ctx, "restore", err)
	}
	a.logger.Info(ctx, "backup restored", "key", args[0])
	a.println("Restored", args[0])
	return nil
}
