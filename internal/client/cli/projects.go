package cli

import (
	"context"
	"fmt"

	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/services"
)

func (a *App) requireLogin() bool {
	if a.isLoggedIn() {
		return true
	}
	fmt.Fprintln(a.out, "Please log in first.")
	return false
}

func (a *App) ListProjects(ctx context.Context) {
	if !a.requireLogin() {
		return
	}
	projects, err := a.docs.ListProjects(ctx, a.currentUserID())
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	if len(projects) == 0 {
		fmt.Fprintln(a.out, "No projects yet. Create one with 'new <name> [language]'.")
		return
	}
	for _, p := range projects {
		marker := " "
		if a.currentProject != nil && a.currentProject.ID == p.ID {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s %-24s %-12s updated %s\n", marker, p.Name, p.Language, p.UpdatedAt.Format("2006-01-02 15:04"))
	}
}

// NewProject creates a project and makes it the current one.
func (a *App) NewProject(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(a.out, "Usage: new <name> [language]")
		return
	}
	language := "javascript"
	if len(args) == 2 {
		language = args[1]
	}
	p, err := a.docs.CreateProject(ctx, a.currentUserID(), args[0], language)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	a.currentProject = p
	a.currentFile = nil
	fmt.Fprintf(a.out, "Created project %q (%s).\n", p.Name, p.Language)
}

// findProject resolves a project by name among the user's projects.
func (a *App) findProject(ctx context.Context, name string) *services.Project {
	projects, err := a.docs.ListProjects(ctx, a.currentUserID())
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return nil
	}
	for _, p := range projects {
		if p.Name == name {
			return p
		}
	}
	fmt.Fprintf(a.out, "No project named %q.\n", name)
	return nil
}

// ListFiles lists the files of the named project (or the current one) and
// makes that project current.
func (a *App) ListFiles(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	project := a.currentProject
	if len(args) == 1 {
		project = a.findProject(ctx, args[0])
	}
	if project == nil {
		fmt.Fprintln(a.out, "Usage: files <project-name>")
		return
	}
	files, err := a.docs.ListFiles(ctx, project.ID)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	a.currentProject = project
	if len(files) == 0 {
		fmt.Fprintf(a.out, "Project %q has no files. 'open <name>' creates one.\n", project.Name)
		return
	}
	for _, f := range files {
		marker := " "
		if a.currentFile != nil && a.currentFile.ID == f.ID {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s %-24s %s\n", marker, f.Name, f.Language)
	}
}

// OpenFile opens (or creates) a file in the current project and prints its
// content.
func (a *App) OpenFile(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	if a.currentProject == nil {
		fmt.Fprintln(a.out, "Select a project first with 'files <project-name>'.")
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: open <file-name>")
		return
	}

	files, err := a.docs.ListFiles(ctx, a.currentProject.ID)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	for _, f := range files {
		if f.Name == args[0] {
			full, err := a.docs.GetFile(ctx, f.ID)
			if err != nil {
				fmt.Fprintln(a.out, "Error:", err)
				return
			}
			a.currentFile = full
			fmt.Fprintf(a.out, "--- %s ---\n%s\n", full.Name, full.Content)
			return
		}
	}

	f, err := a.docs.CreateFile(ctx, a.currentProject.ID, args[0], a.currentProject.Language, "")
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	a.currentFile = f
	fmt.Fprintf(a.out, "Created empty file %q.\n", f.Name)
}

// SaveFile replaces the open file's content with multiline input.
func (a *App) SaveFile(ctx context.Context) {
	if !a.requireLogin() {
		return
	}
	if a.currentFile == nil {
		fmt.Fprintln(a.out, "Open a file first with 'open <file-name>'.")
		return
	}
	content, err := getMultiline(a.reader, "Enter file content", a.out)
	if err != nil {
		return
	}
	f, err := a.docs.SaveFile(ctx, a.currentFile.ID, content)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	a.currentFile = f
	fmt.Fprintf(a.out, "Saved %q (%d bytes).\n", f.Name, len(f.Content))
}

// RunFile pretends to execute the open file. Real execution happens in the
// web UI's sandboxed runner; the terminal client only shows what would run.
func (a *App) RunFile(ctx context.Context) {
	if !a.requireLogin() {
		return
	}
	if a.currentFile == nil {
		fmt.Fprintln(a.out, "Open a file first with 'open <file-name>'.")
		return
	}
	fmt.Fprintf(a.out, "Running %s (%s)...\n", a.currentFile.Name, a.currentFile.Language)
	fmt.Fprintln(a.out, "Execution is only available in the web editor.")
}

func (a *App) DeleteProject(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: delete-project <project-name>")
		return
	}
	project := a.findProject(ctx, args[0])
	if project == nil {
		return
	}
	if err := a.docs.DeleteProject(ctx, project.ID); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	if a.currentProject != nil && a.currentProject.ID == project.ID {
		a.currentProject = nil
		a.currentFile = nil
	}
	fmt.Fprintf(a.out, "Deleted project %q.\n", project.Name)
}
