package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	s := a.store.State()
	switch {
	case s.IsLoadingInitial:
		return "(checking session)"
	case s.User != nil:
		name := s.User.Prefs.Username
		if name == "" {
			name = s.User.Email
		}
		return fmt.Sprintf("(%s)", name)
	default:
		return ""
	}
}

func (a *App) printHelp() {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Available commands: whoami, prefs, theme, fontsize, username, projects, new, delete-project, files, open, save, run, change-password, check-verification, logout, delete-account, exit")
	} else {
		fmt.Fprintln(a.out, "Available commands: signup, login, forgot-password, reset-password, verify-email, resend-verification, exit")
	}
}

// Root is the REPL loop. Commands map onto the routes of the web UI: signup,
// login, forgot/reset password, email verification, and the editor pages.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to ByteTogether (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "byte %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.printHelp()
		case "signup":
			a.Signup(ctx)
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "whoami":
			a.Whoami(ctx)
		case "forgot-password":
			a.ForgotPassword(ctx)
		case "reset-password":
			a.ResetPassword(ctx, args)
		case "verify-email":
			a.VerifyEmail(ctx, args)
		case "resend-verification":
			a.ResendVerification(ctx)
		case "check-verification":
			a.CheckVerification(ctx)
		case "change-password":
			a.ChangePassword(ctx)
		case "prefs":
			a.ShowPrefs(ctx)
		case "theme":
			a.SetTheme(ctx, args)
		case "fontsize":
			a.SetFontSize(ctx, args)
		case "username":
			a.SetUsername(ctx, args)
		case "projects":
			a.ListProjects(ctx)
		case "new":
			a.NewProject(ctx, args)
		case "delete-project":
			a.DeleteProject(ctx, args)
		case "files":
			a.ListFiles(ctx, args)
		case "open":
			a.OpenFile(ctx, args)
		case "save":
			a.SaveFile(ctx)
		case "run":
			a.RunFile(ctx)
		case "delete-account":
			a.DeleteAccount(ctx)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

// showError renders the store's error the way the web forms do: the message
// first, then an inline hint towards a more appropriate flow for the known
// cases.
func (a *App) showError() {
	s := a.store.State()
	if s.Err == "" {
		return
	}
	fmt.Fprintln(a.out, "Error:", s.Err)
	switch s.Err {
	case "User with this email already exists":
		fmt.Fprintln(a.out, "Hint: try 'login', or 'resend-verification' if you never verified your email.")
	case "Invalid email or password":
		fmt.Fprintln(a.out, "Hint: 'forgot-password' can send you a reset link.")
	}
}
