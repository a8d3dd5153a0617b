package cli

import (
	"context"
	"fmt"

	"photokeeper/internal/client/api"
)

func (a *App) register(ctx context.Context) {
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	password, err := GetPassword("Password", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	password2, err := GetPassword("Confirm password", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	if password != password2 {
		fmt.Fprintln(a.out, "Passwords do not match.")
		return
	}

	req := api.RegisterRequest{Username: username, Email: email, Password: password, Password2: password2}
	if err := a.auth.Register(ctx, req); err != nil {
		fmt.Fprintln(a.out, "Registration failed:", a.auth.Err())
		return
	}
	fmt.Fprintln(a.out, "Account created. Please log in.")
}

func (a *App) login(ctx context.Context) {
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	password, err := GetPassword("Password", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	if err := a.auth.Login(ctx, username, password); err != nil {
		fmt.Fprintln(a.out, "Login failed:", a.auth.Err())
		return
	}
	if u := a.auth.CurrentUser(); u != nil {
		fmt.Fprintf(a.out, "Logged in as %s.\n", u.DisplayName())
	} else {
		fmt.Fprintln(a.out, "Logged in.")
	}
}

func (a *App) logout(ctx context.Context) {
	a.auth.Logout(ctx)
	a.images.ClearSelection()
	a.images.ClearCurrentImage()
	fmt.Fprintln(a.out, "Logged out.")
}

// profile shows the current user; "profile edit" updates email and names.
func (a *App) profile(ctx context.Context, args []string) {
	if len(args) > 0 && args[0] == "edit" {
		a.editProfile(ctx)
		return
	}

	u := a.auth.CurrentUser()
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return
	}
	fmt.Fprintf(a.out, "id:       %d\n", u.ID)
	fmt.Fprintf(a.out, "username: %s\n", u.Username)
	fmt.Fprintf(a.out, "email:    %s\n", u.Email)
	fmt.Fprintf(a.out, "name:     %s\n", u.DisplayName())
	if u.IsStaff {
		fmt.Fprintln(a.out, "staff:    yes")
	}
}

func (a *App) editProfile(ctx context.Context) {
	email, err := GetOptionalText(a.reader, "Email", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	first, err := GetOptionalText(a.reader, "First name", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	last, err := GetOptionalText(a.reader, "Last name", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	if email == nil && first == nil && last == nil {
		fmt.Fprintln(a.out, "Nothing to update.")
		return
	}

	upd := api.ProfileUpdate{Email: email, FirstName: first, LastName: last}
	if err := a.auth.UpdateProfile(ctx, upd); err != nil {
		fmt.Fprintln(a.out, "Update failed:", a.auth.Err())
		return
	}
	fmt.Fprintln(a.out, "Profile updated.")
}

func (a *App) passwd(ctx context.Context) {
	oldPw, err := GetPassword("Current password", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	newPw, err := GetPassword("New password", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	upd := api.ProfileUpdate{OldPassword: &oldPw, Password: &newPw}
	if err := a.auth.UpdateProfile(ctx, upd); err != nil {
		fmt.Fprintln(a.out, "Password change failed:", a.auth.Err())
		return
	}
	fmt.Fprintln(a.out, "Password changed.")
}
