package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/snapfeed/internal/client/api"
	"github.com/dmitrijs2005/snapfeed/internal/client/broadcast"
	"github.com/dmitrijs2005/snapfeed/internal/client/config"
	"github.com/dmitrijs2005/snapfeed/internal/client/keystore"
	"github.com/dmitrijs2005/snapfeed/internal/client/models"
	"github.com/dmitrijs2005/snapfeed/internal/client/services"
	"github.com/dmitrijs2005/snapfeed/internal/client/session"
	"github.com/dmitrijs2005/snapfeed/internal/logging"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	session  *session.Manager
	api      api.Client
	posts    *services.PostService
	profiles *services.ProfileService
	feed     *broadcast.Broadcaster
	alerts   session.Alerter
	reader   *bufio.Reader
	out      io.Writer
	closers  []io.Closer

	// The posts of the last listing, as fetched. Always shown through the
	// broadcaster so that later mutations are visible.
	shown []models.Post
	page  int

	// view is shown reconciled at broadcaster revision viewRev.
	view    []models.Post
	viewRev uint64
	viewOK  bool
}

// NewApp opens the credential store and builds every client component from c.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(c.LogLevel, os.Stderr)

	store, closers, err := openStore(ctx, c, log)
	if err != nil {
		return nil, err
	}

	apiClient, err := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout, log)
	if err != nil {
		closeAll(closers)
		return nil, err
	}

	alerts := newConsoleAlerter(os.Stdout)
	feed := broadcast.New()

	return &App{
		config:   c,
		log:      log,
		session:  session.NewManager(store, apiClient, alerts, log),
		api:      apiClient,
		posts:    services.NewPostService(apiClient, feed, log),
		profiles: services.NewProfileService(apiClient, log),
		feed:     feed,
		alerts:   alerts,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		closers:  closers,
	}, nil
}

func openStore(ctx context.Context, c *config.Config, log logging.Logger) (keystore.Store, []io.Closer, error) {
	if c.Ephemeral {
		log.Info(ctx, "ephemeral mode, credentials are kept in memory only")
		return keystore.NewMemoryStore(), nil, nil
	}

	db, err := keystore.OpenDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing database: %w", err)
	}
	if c.KeystorePassphrase == "" {
		log.Warn(ctx, "no keystore passphrase configured, stored credentials are only as safe as the database file")
	}
	store, err := keystore.NewSQLiteStore(ctx, db, []byte(c.KeystorePassphrase))
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return store, []io.Closer{db}, nil
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		_ = c.Close()
	}
}

// Run shows the splash, restores the session and runs the REPL until the
// user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer closeAll(a.closers)

	if !a.start(ctx) {
		return
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().IsAuthenticated
}

// me returns the signed-in user and the id used for likes and follows.
// Backends that do not expose an id get the email instead.
func (a *App) me() (models.User, string) {
	u := a.session.Snapshot().User
	if id := u.ID(); id != "" {
		return u, id
	}
	return u, u.Email()
}

func (a *App) token() string {
	return a.session.Snapshot().Token
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
