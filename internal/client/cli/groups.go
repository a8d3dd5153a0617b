package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"photokeeper/internal/client/store"
)

func (a *App) listGroups(ctx context.Context) {
	if err := a.images.ListGroups(ctx); err != nil {
		_, msg := a.images.StatusOf(store.OpGroups)
		fmt.Fprintln(a.out, "Groups failed:", msg)
		return
	}
	groups := a.images.Groups()
	if len(groups) == 0 {
		fmt.Fprintln(a.out, "No groups.")
		return
	}
	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
	for _, g := range groups {
		fmt.Fprintf(w, "%d\t%s\t%s\n", g.ID, g.Name, g.Description)
	}
	w.Flush()
}

func (a *App) addGroup(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Group name", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	description, err := GetSimpleText(a.reader, "Description (optional)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	g, err := a.images.CreateGroup(ctx, name, description)
	if err != nil {
		_, msg := a.images.StatusOf(store.OpGroups)
		fmt.Fprintln(a.out, "Create failed:", msg)
		return
	}
	fmt.Fprintf(a.out, "Created group %q (%d).\n", g.Name, g.ID)
}

func (a *App) editGroup(ctx context.Context, args []string) {
	id, err := parseIDArg(args)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: editgroup <id>")
		return
	}
	name, err := GetSimpleText(a.reader, "Group name", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	description, err := GetSimpleText(a.reader, "Description", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	if err := a.images.UpdateGroup(ctx, id, name, description); err != nil {
		_, msg := a.images.StatusOf(store.OpGroups)
		fmt.Fprintln(a.out, "Update failed:", msg)
		return
	}
	fmt.Fprintln(a.out, "Group updated.")
}

func (a *App) removeGroup(ctx context.Context, args []string) {
	id, err := parseIDArg(args)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: rmgroup <id>")
		return
	}
	confirm, err := GetSimpleText(a.reader,
		fmt.Sprintf("Delete group %d? Images in it are kept. (y/N)", id), a.out)
	if err != nil || confirm != "y" {
		fmt.Fprintln(a.out, "Cancelled.")
		return
	}
	if err := a.images.DeleteGroup(ctx, id); err != nil {
		_, msg := a.images.StatusOf(store.OpGroups)
		fmt.Fprintln(a.out, "Delete failed:", msg)
		return
	}
	fmt.Fprintln(a.out, "Group deleted.")
}

// setGroup sets or clears the group filter. It only changes local filter
// criteria; the filtered view is re-rendered from the in-memory list.
func (a *App) setGroup(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: setgroup <id|none>")
		return
	}
	if args[0] == "none" {
		a.images.SetGroupFilter(store.NoGroup)
		a.renderList()
		return
	}
	id, err := parseIDArg(args)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: setgroup <id|none>")
		return
	}
	a.images.SetGroupFilter(id)
	a.renderList()
}

// assignGroups replaces one image's group membership.
func (a *App) assignGroups(ctx context.Context, args []string) {
	id, err := parseIDArg(args)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: assign <image-id>")
		return
	}

	groups := a.images.Groups()
	if len(groups) > 0 {
		names := make([]string, 0, len(groups))
		for _, g := range groups {
			names = append(names, fmt.Sprintf("%d=%s", g.ID, g.Name))
		}
		fmt.Fprintf(a.out, "Groups: %s\n", strings.Join(names, ", "))
	}

	line, err := GetSimpleText(a.reader, "Group ids, comma-separated (blank for none)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	ids, err := parseIDList(line)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	if err := a.images.UpdateImageGroups(ctx, id, ids); err != nil {
		_, msg := a.images.StatusOf(store.OpUpdate)
		fmt.Fprintln(a.out, "Update failed:", msg)
		return
	}
	fmt.Fprintf(a.out, "Image %d is now in groups %s.\n", id,
		strings.Join(groupNames(groups, ids), ", "))
}
