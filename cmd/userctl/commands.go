package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/selim-ammari/user-management/pkg/userclient"
)

func cmdLogin(ctx context.Context, a *app, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	user, err := a.session.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	if user.ID == "" {
		fmt.Fprintf(a.out, "logged in as guest %s %s (%s)\n", user.Firstname, user.Lastname, roleOf(user))
		return nil
	}
	fmt.Fprintf(a.out, "logged in as %s %s (%s)\n", user.Firstname, user.Lastname, roleOf(user))
	return nil
}

func cmdLogout(_ context.Context, a *app, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	if err := a.session.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "logged out")
	return nil
}

func cmdWhoami(_ context.Context, a *app, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	user, ok := a.session.User()
	if !ok {
		return userclient.ErrNotLoggedIn
	}
	id := user.ID
	if id == "" {
		id = "-"
	}
	fmt.Fprintf(a.out, "%s %s %s (%s)\n", id, user.Firstname, user.Lastname, roleOf(user))
	return nil
}

func cmdList(ctx context.Context, a *app, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	users, err := a.client.ListUsersOrDemo(ctx)
	if err != nil {
		if !userclient.IsNetworkError(err) {
			return err
		}
		a.log.Warn().Err(err).Msg("server unreachable, showing demo data")
		fmt.Fprintln(a.out, "demo mode: server unreachable")
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLASTNAME\tFIRSTNAME\tROLE")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.ID, u.Lastname, u.Firstname, roleOf(u))
	}
	return tw.Flush()
}

func cmdCreate(ctx context.Context, a *app, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	user, err := a.client.CreateUser(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "created %s\n", user.ID)
	return nil
}

func cmdUpdate(ctx context.Context, a *app, args []string) error {
	if len(args) != 3 {
		return errUsage
	}
	if err := a.client.UpdateUser(ctx, args[0], args[1], args[2]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "updated %s\n", args[0])
	return nil
}

func cmdDelete(ctx context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if err := a.client.DeleteUser(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted %s\n", args[0])
	return nil
}

func cmdRole(ctx context.Context, a *app, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	if err := a.client.UpdateUserRole(ctx, args[0], userclient.Role(args[1])); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s is now %s\n", args[0], args[1])
	return nil
}

func roleOf(u userclient.User) userclient.Role {
	if u.Role == "" {
		return userclient.RoleUser
	}
	return u.Role
}
