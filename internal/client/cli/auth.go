package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/vkuzmenko/profcli/internal/client/models"
	"github.com/vkuzmenko/profcli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func displayName(u *models.User) string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

// Signup prompts for account details and creates a new account. On success
// the session is fully established: the new account is logged in.
//
// The password byte slice is securely wiped before returning.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}

	phone, err := getSimpleText(a.reader, "Enter phone number (optional)", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.authService.Signup(ctx, models.SignupData{
		Email:       email,
		Password:    string(password),
		FullName:    fullName,
		PhoneNumber: phone,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Welcome, %s!\n", displayName(user))
	return nil
}

// Login prompts for credentials and establishes a session.
//
// The password is securely wiped before returning. Any error from the
// underlying auth calls is returned for the loop to present.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.authService.Login(ctx, models.LoginCredentials{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Welcome, %s!\n", displayName(user))
	return nil
}

// Logout drops the current session and the persisted token.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}
