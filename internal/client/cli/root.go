package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/vkuzmenko/profcli/internal/common"
)

func (a *App) getStatus() string {
	snap := a.state.Read()
	if snap.User == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", snap.User.Email)
}

// Root is the interactive command loop.
func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to profcli (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("profcli %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: whoami, update, logout, exit")
			} else {
				fmt.Println("Available commands: signup, login, exit")
			}
		case "signup":
			a.report(a.Signup(ctx))
		case "login":
			a.report(a.Login(ctx))
		case "whoami":
			a.report(a.Whoami(ctx))
		case "update":
			a.report(a.Update(ctx))
		case "logout":
			a.report(a.Logout(ctx))
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}

// report prints a user-facing message for a failed command.
func (a *App) report(err error) {
	if err == nil {
		return
	}
	fmt.Println(userMessage(err))
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, common.ErrSessionExpired):
		return "Your session has expired, please log in again."
	case errors.Is(err, common.ErrNetwork):
		return "Server is unreachable, try again later."
	case errors.Is(err, common.ErrLoginInProgress):
		return "Another login attempt is still in progress."
	case errors.Is(err, common.ErrValidation):
		return "Error: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}
