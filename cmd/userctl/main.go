// Command userctl manages the user directory from the terminal.
//
// Usage:
//
//	userctl [-url URL] [-state-dir DIR] <command> [args]
//
// Commands:
//
//	login <lastname> <firstname>   resolve and remember the current identity
//	logout                         forget the current identity
//	whoami                         print the current identity
//	list                           list users (demo data when the server is down)
//	create <lastname> <firstname>  add a user with role "user"
//	update <id> <lastname> <firstname>
//	delete <id>
//	role <id> <user|admin>
//
// update, delete and role require an admin session.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}
