package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/services"
)

func (a *App) ShowPrefs(ctx context.Context) {
	prefs, err := a.auth.GetPreferences(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	fmt.Fprintf(a.out, "username:  %s\n", prefs.Username)
	fmt.Fprintf(a.out, "theme:     %s\n", prefs.Theme)
	fmt.Fprintf(a.out, "font size: %d\n", prefs.FontSize)
}

// SetTheme updates only the theme, keeping the other preference fields as
// they are on the server.
func (a *App) SetTheme(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintf(a.out, "Usage: theme <%s|%s>\n", services.ThemeLight, services.ThemeDark)
		return
	}
	prefs, err := a.auth.GetPreferences(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	prefs.Theme = args[0]
	if _, err := a.auth.UpdatePreferences(ctx, prefs); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	fmt.Fprintln(a.out, "Theme set to", args[0])
}

func (a *App) SetFontSize(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintf(a.out, "Usage: fontsize <%d-%d>\n", services.FontSizeMin, services.FontSizeMax)
		return
	}
	size, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintln(a.out, "Font size must be a number.")
		return
	}
	prefs, err := a.auth.GetPreferences(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	prefs.FontSize = size
	if _, err := a.auth.UpdatePreferences(ctx, prefs); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	fmt.Fprintln(a.out, "Font size set to", size)
}

func (a *App) SetUsername(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: username <new-username>")
		return
	}
	if err := a.auth.UpdateUsername(ctx, a.currentUserID(), args[0]); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	fmt.Fprintln(a.out, "Username changed to", args[0])
}
