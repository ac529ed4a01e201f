package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cvmaster/internal/common"
	"github.com/dmitrijs2005/cvmaster/internal/models"
)

var errNotLoggedIn = errors.New("not logged in, use 'login' or 'register'")

func (a *App) currentUser(ctx context.Context) *models.Account {
	acc, err := a.sessions.CurrentUser(ctx)
	if err != nil {
		a.logger.Error(ctx, "error reading session", "error", err)
		return nil
	}
	return acc
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.currentUser(ctx) != nil
}

func (a *App) isAdmin(ctx context.Context) bool {
	acc := a.currentUser(ctx)
	return acc != nil && acc.IsAdmin()
}

// status is shown in the prompt.
func (a *App) status(ctx context.Context) string {
	acc := a.currentUser(ctx)
	if acc == nil {
		return ""
	}
	s := acc.Email
	if acc.IsAdmin() {
		s += " admin"
	}
	return fmt.Sprintf("(%s)", s)
}

// requireUser returns the session account or reports errNotLoggedIn.
func (a *App) requireUser(ctx context.Context) (*models.Account, error) {
	acc, err := a.sessions.CurrentUser(ctx)
	if err != nil {
		return nil, a.fail(ctx, "session", err)
	}
	if acc == nil {
		return nil, a.fail(ctx, "session", errNotLoggedIn)
	}
	return acc, nil
}

func (a *App) requireAdmin(ctx context.Context) (*models.Account, error) {
	acc, err := a.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if !acc.IsAdmin() {
		return nil, a.fail(ctx, "session", common.ErrorForbidden)
	}
	return acc, nil
}

func (a *App) readPassword(ctx context.Context) (string, error) {
	pw, err := a.getPassword()
	if err != nil {
		return "", a.fail(ctx, "password", err)
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

func (a *App) Register(ctx context.Context, args []string) error {
	name, err := a.getSimpleText("-Enter your name")
	if err != nil {
		return a.fail(ctx, "register", err)
	}
	email, err := a.getSimpleText("-Enter email")
	if err != nil {
		return a.fail(ctx, "register", err)
	}
	password, err := a.readPassword(ctx)
	if err != nil {
		return err
	}
	code, err := a.getSimpleText("-Enter license code (admins leave empty)")
	if err != nil {
		return a.fail(ctx, "register", err)
	}

	acc, err := a.directory.Register(ctx, name, email, password, code)
	if err != nil {
		return a.fail(ctx, "register", err)
	}

	a.logger.Info(ctx, "account registered", "email", acc.Email, "role", acc.Role)
	a.printf("Registered, logged in as %s (%d credits)\n", acc.Email, acc.Balance())
	return nil
}

func (a *App) Login(ctx context.Context, args []string) error {
	email, err := a.getSimpleText("-Enter email")
	if err != nil {
		return a.fail(ctx, "login", err)
	}
	password, err := a.readPassword(ctx)
	if err != nil {
		return err
	}

	acc, err := a.directory.Login(ctx, email, password)
	if err != nil {
		return a.fail(ctx, "login", err)
	}

	a.printf("Welcome, %s\n", acc.Name)
	return nil
}

func (a *App) Logout(ctx context.Context, args []string) error {
	if err := a.sessions.Logout(ctx); err != nil {
		return a.fail(ctx, "logout", err)
	}
	a.println("Logged out")
	return nil
}

func (a *App) Whoami(ctx context.Context, args []string) error {
	acc, err := a.requireUser(ctx)
	if err != nil {
		return err
	}
	a.printf("%s <%s>, role %s, %d credits\n", acc.Name, acc.Email, acc.Role, acc.Balance())
	return nil
}

func (a *App) Reset(ctx context.Context, args []string) error {
	email, err := a.getSimpleText("-Enter email")
	if err != nil {
		return a.fail(ctx, "reset", err)
	}
	code, err := a.getSimpleText("-Enter your license code")
	if err != nil {
		return a.fail(ctx, "reset", err)
	}
	password, err := a.readPassword(ctx)
	if err != nil {
		return err
	}

	if err := a.directory.ResetPassword(ctx, email, code, password); err != nil {
		return a.fail(ctx, "reset", err)
	}
	a.println("Password updated")
	return nil
}
