package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/vkuzmenko/profcli/internal/client/models"
)

// Whoami prints the current session's profile.
func (a *App) Whoami(_ context.Context) error {
	snap := a.state.Read()
	if snap.User == nil {
		fmt.Println("Not logged in.")
		return nil
	}

	u := snap.User
	fmt.Printf("Email:  %s\n", u.Email)
	fmt.Printf("Name:   %s\n", u.FullName)
	if u.PhoneNumber != "" {
		fmt.Printf("Phone:  %s\n", u.PhoneNumber)
	}
	return nil
}

// Update prompts for profile changes and applies them as a partial update.
// An empty answer keeps the current value.
func (a *App) Update(ctx context.Context) error {
	snap := a.state.Read()
	if snap.User == nil {
		fmt.Println("Not logged in.")
		return nil
	}

	fullName, err := getSimpleText(a.reader,
		fmt.Sprintf("Enter full name (empty to keep %q)", snap.User.FullName), os.Stdout)
	if err != nil {
		return err
	}

	phone, err := getSimpleText(a.reader, "Enter phone number (empty to keep current)", os.Stdout)
	if err != nil {
		return err
	}

	var upd models.ProfileUpdate
	if fullName != "" {
		upd.FullName = &fullName
	}
	if phone != "" {
		upd.PhoneNumber = &phone
	}
	if upd.FullName == nil && upd.PhoneNumber == nil {
		fmt.Println("Nothing to update.")
		return nil
	}

	user, err := a.authService.UpdateProfile(ctx, upd)
	if err != nil {
		return err
	}

	fmt.Printf("Profile updated: %s", user.FullName)
	if user.PhoneNumber != "" {
		fmt.Printf(", %s", user.PhoneNumber)
	}
	fmt.Println()
	return nil
}
