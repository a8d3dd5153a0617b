package cli

import (
	"context"
	"fmt"
	"strings"

	"photokeeper/internal/client/store"
)

// getStatus builds the prompt annotation: username plus the active filters,
// e.g. "(alice mine g12)".
func (a *App) getStatus() string {
	parts := []string{}
	if u := a.auth.CurrentUser(); u != nil {
		parts = append(parts, u.Username)
	}
	if a.images.OwnerFilter() == store.ScopeMine {
		parts = append(parts, "mine")
	}
	if g := a.images.GroupFilter(); g != 0 {
		parts = append(parts, fmt.Sprintf("g%d", g))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

// Root runs the read-eval-print loop. Command handlers report their own
// errors; the loop only routes.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to photokeeper (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "pk %s> ", a.getStatus())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			a.help()

		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			a.logout(ctx)
		case "profile":
			a.profile(ctx, args)
		case "passwd":
			a.passwd(ctx)

		case "l", "list":
			a.list(ctx, args)
		case "show":
			a.show(ctx, args)
		case "upload":
			a.upload(ctx)
		case "edit":
			a.edit(ctx, args)
		case "rm":
			a.remove(ctx, args)

		case "select":
			a.toggleSelect(args)
		case "selall":
			a.images.SelectAll()
			a.printSelection()
		case "selnone":
			a.images.ClearSelection()
			a.printSelection()
		case "rmsel":
			a.removeSelected(ctx)

		case "groups":
			a.listGroups(ctx)
		case "addgroup":
			a.addGroup(ctx)
		case "editgroup":
			a.editGroup(ctx, args)
		case "rmgroup":
			a.removeGroup(ctx, args)
		case "setgroup":
			a.setGroup(args)
		case "assign":
			a.assignGroups(ctx, args)

		case "users":
			a.listUsers(ctx)
		case "user":
			a.showUser(ctx, args)

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) help() {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Available commands:")
		fmt.Fprintln(a.out, "  (l)ist [mine|all], show <id>, upload, edit <id>, rm <id>")
		fmt.Fprintln(a.out, "  select <id>, selall, selnone, rmsel")
		fmt.Fprintln(a.out, "  groups, addgroup, editgroup <id>, rmgroup <id>, setgroup <id|none>, assign <id>")
		fmt.Fprintln(a.out, "  profile [edit], passwd, users, user <username>, logout, exit")
	} else {
		fmt.Fprintln(a.out, "Available commands: register, login, exit")
	}
}
