package cli

import (
	"context"
	"fmt"
)

// Signup prompts for the signup form fields and runs the signup chain. On
// success the user is told to check their inbox; they are not logged in.
func (a *App) Signup(ctx context.Context) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return
	}
	username, err := getSimpleText(a.reader, "Choose a username", a.out)
	if err != nil {
		return
	}
	name, err := getSimpleText(a.reader, "Enter display name", a.out)
	if err != nil {
		return
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return
	}

	if err := a.manager.SignupUser(ctx, email, password, username, name); err != nil {
		a.showError()
		return
	}
	fmt.Fprintln(a.out, "Account created. Check your inbox for a verification link, then log in.")
}

func (a *App) Login(ctx context.Context) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return
	}

	if err := a.manager.LoginUser(ctx, email, password); err != nil {
		a.showError()
		return
	}
	fmt.Fprintln(a.out, "Logged in.")
}

func (a *App) Logout(ctx context.Context) {
	if err := a.manager.LogoutUser(ctx); err != nil {
		a.showError()
		return
	}
	a.currentProject = nil
	a.currentFile = nil
	fmt.Fprintln(a.out, "Logged out.")
}

func (a *App) Whoami(ctx context.Context) {
	s := a.store.State()
	if !s.AuthStatus || s.User == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return
	}
	verified := "not verified"
	if s.User.EmailVerified {
		verified = "verified"
	}
	fmt.Fprintf(a.out, "%s <%s> (%s)\n", s.User.Name, s.User.Email, verified)
}

func (a *App) ForgotPassword(ctx context.Context) {
	email, err := getSimpleText(a.reader, "Enter your account email", a.out)
	if err != nil {
		return
	}
	if err := a.manager.RequestPasswordReset(ctx, email, ""); err != nil {
		a.showError()
		return
	}
	fmt.Fprintln(a.out, "Reset email sent. Open the link and run 'reset-password <userId> <secret>'.")
}

// ResetPassword completes the recovery flow with the userId/secret pair from
// the emailed link (the web UI reads them from the query string).
func (a *App) ResetPassword(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: reset-password <userId> <secret>")
		return
	}
	password, err := getPassword("Enter new password", a.out)
	if err != nil {
		return
	}
	if err := a.manager.CompletePasswordReset(ctx, args[0], args[1], password); err != nil {
		a.showError()
		return
	}
	fmt.Fprintln(a.out, "Password updated. You can log in now.")
}

func (a *App) VerifyEmail(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: verify-email <userId> <secret>")
		return
	}
	if err := a.manager.CompleteEmailVerification(ctx, args[0], args[1]); err != nil {
		a.showError()
		return
	}
	fmt.Fprintln(a.out, "Email verified.")
}

// ResendVerification logs in just long enough to request a fresh
// verification email, then tears the temporary session down again.
func (a *App) ResendVerification(ctx context.Context) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return
	}

	if err := a.manager.CreateTempSession(ctx, email, password); err != nil {
		a.showError()
		return
	}
	if err := a.manager.RequestEmailVerification(ctx, ""); err != nil {
		a.showError()
		_ = a.manager.DeleteSession(ctx)
		return
	}
	if err := a.manager.DeleteSession(ctx); err != nil {
		a.showError()
		return
	}
	fmt.Fprintln(a.out, "Verification email sent.")
}

func (a *App) CheckVerification(ctx context.Context) {
	verified, err := a.auth.CheckEmailVerification(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	if verified {
		fmt.Fprintln(a.out, "Your email is verified.")
	} else {
		fmt.Fprintln(a.out, "Your email is not verified yet. Use 'resend-verification' to get a new link.")
	}
}

func (a *App) ChangePassword(ctx context.Context) {
	oldPassword, err := getPassword("Current password", a.out)
	if err != nil {
		return
	}
	newPassword, err := getPassword("New password", a.out)
	if err != nil {
		return
	}
	if err := a.auth.UpdatePassword(ctx, newPassword, oldPassword); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	fmt.Fprintln(a.out, "Password changed.")
}

func (a *App) DeleteAccount(ctx context.Context) {
	confirm, err := getSimpleText(a.reader, "Type 'delete' to confirm account deletion", a.out)
	if err != nil || confirm != "delete" {
		fmt.Fprintln(a.out, "Aborted.")
		return
	}
	err = a.auth.DeleteAccount(ctx, a.currentUserID())
	// Always fails with the server-side-required error; local cleanup has
	// still happened, so drop the client session too.
	fmt.Fprintln(a.out, "Error:", err)
	_ = a.manager.LogoutUser(ctx)
}
