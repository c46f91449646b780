package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/pokedex/internal/catalog"
	"github.com/dmitrijs2005/pokedex/internal/config"
	"github.com/dmitrijs2005/pokedex/internal/logging"
	"github.com/dmitrijs2005/pokedex/internal/models"
	"github.com/dmitrijs2005/pokedex/internal/services"
	"github.com/dmitrijs2005/pokedex/internal/storage"
)

const defaultPageSize = 20

var errLoginRequired = errors.New("login required")

type App struct {
	store     storage.Storage
	catalog   catalog.Catalog
	auth      services.AuthService
	favorites *services.FavoritesService
	party     *services.PartyService
	logger    logging.Logger

	reader   *bufio.Reader
	out      io.Writer
	user     *models.User
	pageSize int
}

// NewApp builds the services on top of store and returns a shell reading
// from stdin.
func NewApp(cfg *config.Config, store storage.Storage, cat catalog.Catalog, logger logging.Logger) *App {
	session := services.NewSessionService(store.Metadata(), []byte(cfg.SessionSecret), cfg.SessionTTL, logger)

	return &App{
		store:     store,
		catalog:   cat,
		auth:      services.NewAuthService(store.Users(), session, logger),
		favorites: services.NewFavoritesService(store.Favorites(), logger),
		party:     services.NewPartyService(store.Party(), logger),
		logger:    logger.With("component", "cli"),
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		pageSize:  defaultPageSize,
	}
}

// Run restores the previous session and serves commands until exit.
// The storage is closed on return.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.store.Close(); err != nil {
			a.logger.Error(ctx, "failed to close storage", "error", err)
		}
	}()

	fmt.Fprintln(a.out, "Welcome to the Pokédex (type 'help' for commands)")
	if err := a.restoreSession(ctx); err != nil {
		fmt.Fprintln(a.out, "Error:", describe(err))
	}

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) restoreSession(ctx context.Context) error {
	u, err := a.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	a.user = u
	if u != nil {
		fmt.Fprintf(a.out, "Logged in as %s\n", u.Nickname)
	}
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) getStatus() string {
	if a.user == nil {
		return "(guest)"
	}
	return fmt.Sprintf("(%s)", a.user.Nickname)
}

// currentUser returns the acting user id.
func (a *App) currentUser() (string, error) {
	if a.user == nil {
		return "", errLoginRequired
	}
	return a.user.ID, nil
}

// Reset wipes every local record after confirmation and logs out.
func (a *App) Reset(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "This deletes all users, favorites and parties. Type 'yes' to continue", a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.store.Reset(ctx); err != nil {
		return err
	}
	a.user = nil
	a.logger.Info(ctx, "local data reset", "backend", a.store.Backend())
	fmt.Fprintln(a.out, "All local data removed")
	return nil
}
