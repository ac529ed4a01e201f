package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. Every command
// receives the words typed after its name.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	isAdmin(ctx context.Context) bool

	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Whoami(ctx context.Context, args []string) error
	Reset(ctx context.Context, args []string) error

	Save(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Rename(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Duplicate(ctx context.Context, args []string) error
	AddCourse(ctx context.Context, args []string) error

	Licenses(ctx context.Context, args []string) error
	GenLicense(ctx context.Context, args []string) error
	Users(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error
	Credits(ctx context.Context, args []string) error
	Backup(ctx context.Context, args []string) error
	Restore(ctx context.Context, args []string) error
}

const (
	helpAnonymous = "Available commands: register, login, reset, exit"
	helpUser      = "Available commands: whoami, save <file.json>, (l)ist, show <id>, rename <id>, delete <id>, duplicate <id>, addcourse <id>, logout, exit"
	helpAdmin     = "Admin commands: licenses, genlicense, users, stats, credits <id> <n>, backup, restore <key>"
)

// runREPL reads commands from reader until EOF, "exit" or "quit". Command
// prompts read from the same reader. Handlers print their own errors, so
// the returned errors are dropped.
func runREPL(ctx context.Context, a execIface, statusFn func() string, w io.Writer, reader *bufio.Reader) {
	for {
		fmt.Fprintf(w, "cv %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			switch {
			case !a.isLoggedIn(ctx):
				fmt.Fprintln(w, helpAnonymous)
			case a.isAdmin(ctx):
				fmt.Fprintln(w, helpUser)
				fmt.Fprintln(w, helpAdmin)
			default:
				fmt.Fprintln(w, helpUser)
			}

		case "register":
			_ = a.Register(ctx, args)
		case "login":
			_ = a.Login(ctx, args)
		case "logout":
			_ = a.Logout(ctx, args)
		case "whoami":
			_ = a.Whoami(ctx, args)
		case "reset":
			_ = a.Reset(ctx, args)

		case "save":
			_ = a.Save(ctx, args)
		case "l", "list":
			_ = a.List(ctx, args)
		case "show":
			_ = a.Show(ctx, args)
		case "rename":
			_ = a.Rename(ctx, args)
		case "delete":
			_ = a.Delete(ctx, args)
		case "duplicate":
			_ = a.Duplicate(ctx, args)
		case "addcourse":
			_ = a.AddCourse(ctx, args)

		case "licenses":
			_ = a.Licenses(ctx, args)
		case "genlicense":
			_ = a.GenLicense(ctx, args)
		case "users":
			_ = a.Users(ctx, args)
		case "stats":
			_ = a.Stats(ctx, args)
		case "credits":
			_ = a.Credits(ctx, args)
		case "backup":
			_ = a.Backup(ctx, args)
		case "restore":
			_ = a.Restore(ctx, args)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
