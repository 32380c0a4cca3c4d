// Package cli is the terminal front end of the ByteTogether client: a small
// REPL standing in for the web UI's auth forms and editor pages. All state
// it renders comes from the auth state store; commands only dispatch through
// the session manager and the services.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"net/http"
	"os"

	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/config"
	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/localdb"
	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/provider"
	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/services"
	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/session"
	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/state"
	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/logging"
)

// Test seams for interactive input helpers.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

type App struct {
	config   *config.Config
	store    *state.Store
	manager  *session.Manager
	auth     services.AuthService
	docs     services.DocumentService
	localDB  *sql.DB
	reader   *bufio.Reader
	out      io.Writer
	log      logging.Logger

	// Editor session: the project/file currently "open".
	currentProject *services.Project
	currentFile    *services.CodeFile
}

// NewApp wires the full client: provider adapter, local session cache,
// services, store and manager.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	apiClient := provider.NewAppwriteClient(cfg.EndpointURL, cfg.ProjectID,
		provider.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}))

	db, err := localdb.Open(ctx, cfg.LocalDBPath)
	if err != nil {
		return nil, err
	}

	usernames := services.NewUsernameDirectory(apiClient, cfg.DatabaseID, cfg.UsernamesCollectionID)
	authSvc := services.NewAuthService(apiClient, usernames, cfg.VerifyURL, cfg.ResetURL, log)
	docs := services.NewDocumentService(apiClient, cfg.DatabaseID, cfg.ProjectsCollectionID, cfg.FilesCollectionID)

	store := state.NewStore()
	manager := session.NewManager(store, authSvc, apiClient, localdb.NewSessionCache(db), log)

	return &App{
		config:  cfg,
		store:   store,
		manager: manager,
		auth:    authSvc,
		docs:    docs,
		localDB: db,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		log:     log,
	}, nil
}

// Run starts the background session bootstrap and enters the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.manager.Start(ctx)
	a.Root(ctx)
}

func (a *App) Close() {
	if a.localDB != nil {
		_ = a.localDB.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.store.State().AuthStatus
}

// currentUserID returns the id of the authenticated user, or "".
func (a *App) currentUserID() string {
	if u := a.store.State().User; u != nil {
		return u.ID
	}
	return ""
}
