package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
)

func (a *App) listUsers(ctx context.Context) {
	if err := a.users.ListUsers(ctx); err != nil {
		_, msg := a.users.ListStatus()
		fmt.Fprintln(a.out, "Users failed:", msg)
		return
	}
	users := a.users.List()
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users.")
		return
	}
	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\n", u.ID, u.Username, u.Email)
	}
	w.Flush()
}

func (a *App) showUser(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: user <username>")
		return
	}
	if err := a.users.GetUser(ctx, args[0]); err != nil {
		_, msg := a.users.DetailStatus()
		fmt.Fprintln(a.out, "User failed:", msg)
		return
	}
	u := a.users.Current()
	if u == nil {
		return
	}
	fmt.Fprintf(a.out, "id:       %d\n", u.ID)
	fmt.Fprintf(a.out, "username: %s\n", u.Username)
	if u.Email != "" {
		fmt.Fprintf(a.out, "email:    %s\n", u.Email)
	}

	a.users.ClearCurrentUser()
}
