// Command admin runs one operator request against the cvmaster gRPC server:
//
//	admin -a host:50051 --user admin@cvmaster.com licenses|accounts|stats|generate
//
// The password is read from CVMASTER_ADMIN_PASSWORD or prompted for.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/cvmaster/internal/adminclient"
	"github.com/dmitrijs2005/cvmaster/internal/cli"
	"github.com/dmitrijs2005/cvmaster/internal/common"
	"github.com/dmitrijs2005/cvmaster/internal/config"
	"github.com/dmitrijs2005/cvmaster/internal/flagx"
)

var commands = []string{"licenses", "accounts", "stats", "generate"}

func main() {
	if len(os.Args) < 2 || !slices.Contains(commands, os.Args[len(os.Args)-1]) {
		log.Fatalf("usage: admin [-a address] [--user email] %s", strings.Join(commands, "|"))
	}
	cmd := os.Args[len(os.Args)-1]

	cfg := config.LoadConfig()

	email := flagx.LookupString(os.Args[1:], "user")
	if email == "" {
		email = os.Getenv("CVMASTER_ADMIN_EMAIL")
	}
	if email == "" {
		log.Fatal("operator email is required (--user or CVMASTER_ADMIN_EMAIL)")
	}

	password := os.Getenv("CVMASTER_ADMIN_PASSWORD")
	if password == "" {
		pw, err := cli.GetPassword(os.Stderr)
		if err != nil {
			log.Fatalf("%v", err)
		}
		password = string(pw)
		common.WipeByteArray(pw)
	}

	addr := cfg.EndpointAddrGRPC
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}

	c, err := adminclient.NewGRPCClient(addr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.Login(ctx, email, password); err != nil {
		log.Fatalf("login: %v", err)
	}

	if err := run(ctx, c, cmd); err != nil {
		log.Fatalf("%s: %v", cmd, err)
	}
}

func run(ctx context.Context, c *adminclient.GRPCClient, cmd string) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	switch cmd {
	case "licenses":
		items, err := c.ListLicenses(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "CODE\tSTATUS\tCREATED BY\tUSED BY")
		for _, l := range items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.Code, l.Status, l.CreatedBy, l.UsedBy)
		}
	case "accounts":
		items, err := c.ListAccounts(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "ID\tEMAIL\tROLE\tCREDITS")
		for _, a := range items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", a.ID, a.Email, a.Role, a.Balance())
		}
	case "stats":
		st, err := c.Stats(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "accounts\t%d\nadmins\t%d\nactive licenses\t%d\nused licenses\t%d\n",
			st.Accounts, st.Admins, st.ActiveLicenses, st.UsedLicenses)
	case "generate":
		lic, err := c.GenerateLicense(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, lic.Code)
	}
	return nil
}
