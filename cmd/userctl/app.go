package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"github.com/selim-ammari/user-management/pkg/logger"
	"github.com/selim-ammari/user-management/pkg/userclient"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage")

type app struct {
	client  *userclient.Client
	session *userclient.Session
	log     zerolog.Logger
	out     io.Writer
}

type command struct {
	args  string
	admin bool
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"login":  {args: "<lastname> <firstname>", run: cmdLogin},
	"logout": {run: cmdLogout},
	"whoami": {run: cmdWhoami},
	"list":   {run: cmdList},
	"create": {args: "<lastname> <firstname>", run: cmdCreate},
	"update": {args: "<id> <lastname> <firstname>", admin: true, run: cmdUpdate},
	"delete": {args: "<id>", admin: true, run: cmdDelete},
	"role":   {args: "<id> <user|admin>", admin: true, run: cmdRole},
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("userctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	baseURL := fs.String("url", "", "API base URL (default $"+userclient.BaseURLEnv+" or "+userclient.DefaultBaseURL+")")
	stateDir := fs.String("state-dir", "", "directory holding the session state")
	issueTokens := fs.Bool("token", false, "request a signed session token at login")
	logLevel := fs.String("log-level", "warn", "log level")
	fs.Usage = func() { usage(fs, stderr) }

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	name, rest := fs.Arg(0), fs.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", name)
		fs.Usage()
		return exitUsage
	}

	log := logger.New(logger.Options{Level: *logLevel, Pretty: true, Output: stderr})

	client := userclient.NewClient(*baseURL)
	session, err := userclient.NewSession(client, userclient.NewFileStore(*stateDir))
	if err != nil {
		fmt.Fprintf(stderr, "error: restore session: %v\n", err)
		return exitError
	}
	session.IssueTokens = *issueTokens

	a := &app{client: client, session: session, log: log, out: stdout}
	log.Debug().Str("command", name).Str("url", client.BaseURL).Msg("running")

	if cmd.admin {
		if err := session.RequireAdmin(); err != nil {
			fmt.Fprintf(stderr, "error: %s: %v\n", name, err)
			return exitError
		}
	}

	if err := cmd.run(ctx, a, rest); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "usage: userctl %s %s\n", name, cmd.args)
			return exitUsage
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	return exitOK
}

func usage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "usage: userctl [flags] <command> [args]")
	fmt.Fprintln(w, "\ncommands:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, name := range []string{"login", "logout", "whoami", "list", "create", "update", "delete", "role"} {
		cmd := commands[name]
		note := ""
		if cmd.admin {
			note = "(admin)"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", name, cmd.args, note)
	}
	_ = tw.Flush()
	fmt.Fprintln(w, "\nflags:")
	fs.PrintDefaults()
}
