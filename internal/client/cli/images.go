package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"photokeeper/internal/client/api"
	"photokeeper/internal/client/models"
	"photokeeper/internal/client/store"
)

// list fetches and renders the image grid. "list mine" / "list all" switch
// the owner scope before fetching; a bare "list" refreshes under the
// current filters. This is the only fetch trigger for the list; filters
// set elsewhere take effect on the next list.
func (a *App) list(ctx context.Context, args []string) {
	if len(args) > 0 {
		switch args[0] {
		case "mine":
			a.images.SetOwnerFilter(store.ScopeMine)
		case "all":
			a.images.SetOwnerFilter(store.ScopeAll)
		default:
			fmt.Fprintln(a.out, "Usage: list [mine|all]")
			return
		}
	}

	if err := a.images.ListImages(ctx, a.images.OwnerFilter()); err != nil {
		_, msg := a.images.StatusOf(store.OpList)
		fmt.Fprintln(a.out, "List failed:", msg)
		return
	}
	a.renderList()
}

func (a *App) renderList() {
	images := a.images.FilteredImages(a.auth.CurrentUser())
	if len(images) == 0 {
		fmt.Fprintln(a.out, "No images match the current filters.")
		return
	}

	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\tID\tNAME\tOWNER\tGROUPS\tUPLOADED")
	for _, img := range images {
		mark := " "
		if a.images.IsSelected(img.ID) {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%v\t%s\n",
			mark, img.ID, img.Name, img.Owner, img.Groups,
			img.UploadedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}

func (a *App) show(ctx context.Context, args []string) {
	id, err := parseIDArg(args)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: show <id>")
		return
	}
	if err := a.images.GetImageDetail(ctx, id); err != nil {
		_, msg := a.images.StatusOf(store.OpDetail)
		fmt.Fprintln(a.out, "Detail failed:", msg)
		return
	}

	img := a.images.Current()
	if img == nil {
		return
	}
	fmt.Fprintf(a.out, "id:          %d\n", img.ID)
	fmt.Fprintf(a.out, "name:        %s\n", img.Name)
	if img.Description != "" {
		fmt.Fprintf(a.out, "description: %s\n", img.Description)
	}
	fmt.Fprintf(a.out, "url:         %s\n", img.ImageURL)
	if img.Width > 0 && img.Height > 0 {
		fmt.Fprintf(a.out, "dimensions:  %dx%d\n", img.Width, img.Height)
	}
	if img.Size > 0 {
		fmt.Fprintf(a.out, "size:        %d bytes\n", img.Size)
	}
	fmt.Fprintf(a.out, "owner:       %s\n", img.Owner)
	fmt.Fprintf(a.out, "groups:      %v\n", img.Groups)
	fmt.Fprintf(a.out, "uploaded:    %s\n", img.UploadedAt.Format("2006-01-02 15:04:05"))

	// The REPL leaves the detail "view" as soon as it is printed.
	a.images.ClearCurrentImage()
}

func (a *App) upload(ctx context.Context) {
	path, err := GetSimpleText(a.reader, "File path", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	name, err := GetSimpleText(a.reader, "Name", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	if name == "" {
		fmt.Fprintln(a.out, "A name is required.")
		return
	}
	description, err := GetSimpleText(a.reader, "Description (optional)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	groupsLine, err := GetSimpleText(a.reader, "Group ids, comma-separated (optional)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	groups, err := parseIDList(groupsLine)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(a.out, "Cannot open file:", err)
		return
	}
	defer f.Close()

	req := api.UploadRequest{
		Name:        name,
		Description: description,
		Groups:      groups,
		FileName:    filepath.Base(path),
		File:        f,
	}
	img, err := a.images.UploadImage(ctx, req)
	if err != nil {
		_, msg := a.images.StatusOf(store.OpUpload)
		fmt.Fprintln(a.out, "Upload failed:", msg)
		return
	}
	fmt.Fprintf(a.out, "Uploaded %q as image %d.\n", img.Name, img.ID)
}

func (a *App) edit(ctx context.Context, args []string) {
	id, err := parseIDArg(args)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: edit <id>")
		return
	}
	name, err := GetOptionalText(a.reader, "Name", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	description, err := GetOptionalText(a.reader, "Description", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	if name == nil && description == nil {
		fmt.Fprintln(a.out, "Nothing to update.")
		return
	}

	if err := a.images.UpdateImage(ctx, id, api.ImageUpdate{Name: name, Description: description}); err != nil {
		_, msg := a.images.StatusOf(store.OpUpdate)
		fmt.Fprintln(a.out, "Update failed:", msg)
		return
	}
	fmt.Fprintln(a.out, "Image updated.")
}

func (a *App) remove(ctx context.Context, args []string) {
	id, err := parseIDArg(args)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: rm <id>")
		return
	}
	confirm, err := GetSimpleText(a.reader, fmt.Sprintf("Delete image %d? (y/N)", id), a.out)
	if err != nil || confirm != "y" {
		fmt.Fprintln(a.out, "Cancelled.")
		return
	}
	if err := a.images.DeleteImage(ctx, id); err != nil {
		_, msg := a.images.StatusOf(store.OpDelete)
		fmt.Fprintln(a.out, "Delete failed:", msg)
		return
	}
	fmt.Fprintln(a.out, "Image deleted.")
}

func (a *App) toggleSelect(args []string) {
	id, err := parseIDArg(args)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: select <id>")
		return
	}
	a.images.ToggleSelection(id)
	a.printSelection()
}

func (a *App) printSelection() {
	ids := a.images.SelectedIDs()
	if len(ids) == 0 {
		fmt.Fprintln(a.out, "Selection empty.")
		return
	}
	fmt.Fprintf(a.out, "Selected: %v\n", ids)
}

func (a *App) removeSelected(ctx context.Context) {
	ids := a.images.SelectedIDs()
	if len(ids) == 0 {
		fmt.Fprintln(a.out, "Selection empty.")
		return
	}
	confirm, err := GetSimpleText(a.reader, fmt.Sprintf("Delete %d selected images? (y/N)", len(ids)), a.out)
	if err != nil || confirm != "y" {
		fmt.Fprintln(a.out, "Cancelled.")
		return
	}
	if err := a.images.BulkDelete(ctx, ids); err != nil {
		fmt.Fprintln(a.out, "Bulk delete finished with errors:", err)
		fmt.Fprintln(a.out, "Images that were deleted successfully stay deleted.")
		return
	}
	fmt.Fprintf(a.out, "Deleted %d images.\n", len(ids))
}

func groupNames(groups []models.Group, ids []int64) []string {
	byID := make(map[int64]string, len(groups))
	for _, g := range groups {
		byID[g.ID] = g.Name
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		} else {
			names = append(names, fmt.Sprintf("#%d", id))
		}
	}
	return names
}
