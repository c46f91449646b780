package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/dmitrijs2005/pokedex/internal/catalog"
	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/config"
	"github.com/dmitrijs2005/pokedex/internal/logging"
	"github.com/dmitrijs2005/pokedex/internal/models"
	"github.com/dmitrijs2005/pokedex/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	entries []models.CatalogEntry
	err     error
}

func newFakeCatalog() *fakeCatalog {
	f := &fakeCatalog{}
	for id := 1; id <= 30; id++ {
		f.entries = append(f.entries, models.CatalogEntry{ID: id, Name: fmt.Sprintf("Mon%d", id), Types: []string{"Normal"}})
	}
	f.entries[24] = models.CatalogEntry{ID: 25, Name: "Pikachu", Types: []string{"Electric"}}
	return f
}

func (f *fakeCatalog) ListPage(_ context.Context, offset, limit int) ([]models.ListItem, error) {
	entries, err := f.ListEntries(context.Background(), offset, limit)
	items := make([]models.ListItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, models.ListItem{ID: e.ID, Name: strings.ToLower(e.Name)})
	}
	return items, err
}

func (f *fakeCatalog) ListEntries(_ context.Context, offset, limit int) ([]models.CatalogEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	if offset >= len(f.entries) {
		return nil, nil
	}
	return f.entries[offset:min(offset+limit, len(f.entries))], nil
}

func (f *fakeCatalog) Lookup(_ context.Context, id int) (*models.CatalogEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	if id < 1 || id > len(f.entries) {
		return nil, fmt.Errorf("%w: 404", common.ErrNetworkFailure)
	}
	e := f.entries[id-1]
	return &e, nil
}

func (f *fakeCatalog) Search(ctx context.Context, query string) (*models.CatalogEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	if id, err := strconv.Atoi(query); err == nil {
		if id < 1 || id > len(f.entries) {
			return nil, nil
		}
		return f.Lookup(ctx, id)
	}
	for _, e := range f.entries {
		if strings.EqualFold(e.Name, query) {
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalog) Details(ctx context.Context, id int) (*models.CatalogDetails, error) {
	e, err := f.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.CatalogDetails{
		CatalogEntry: *e,
		Description:  "A test species.",
		Generation:   "Generation I",
		Weaknesses:   f.Weaknesses(e.Types),
		WeightKg:     6,
		HeightM:      0.4,
	}, nil
}

func (f *fakeCatalog) EvolutionChain(context.Context, string) (*models.EvolutionNode, error) {
	return nil, nil
}

func (f *fakeCatalog) Weaknesses(types []string) []string {
	return catalog.Weaknesses(types)
}

type harness struct {
	cfg     *config.Config
	catalog *fakeCatalog
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StorageBackend = storage.BackendKV
	cfg.KVPath = filepath.Join(t.TempDir(), "pokedex.kv.json")

	origTerm := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = origTerm })

	return &harness{cfg: cfg, catalog: newFakeCatalog()}
}

// run feeds script to a fresh App over the harness storage and returns
// everything it printed.
func (h *harness) run(t *testing.T, script ...string) string {
	t.Helper()
	var out bytes.Buffer

	orig := printlnFn
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(&out, a...) }
	defer func() { printlnFn = orig }()

	store, err := storage.Open(context.Background(), h.cfg, logging.Nop())
	require.NoError(t, err)

	app := NewApp(h.cfg, store, h.catalog, logging.Nop())
	app.reader = bufio.NewReader(strings.NewReader(strings.Join(script, "\n") + "\n"))
	app.out = &out
	app.pageSize = 10

	require.NoError(t, app.Run(context.Background()))
	return out.String()
}

func registerAsh() []string {
	return []string{"register", "ash@poke.com", "pikachu1", "Ash", "Ash Ketchum", "10"}
}

func TestApp_RegisterFavoriteAndParty(t *testing.T) {
	h := newHarness(t)

	script := append(registerAsh(),
		"fav 25",
		"favs",
		"addparty pikachu",
		"addparty 1",
		"party",
		"show 25",
		"exit",
	)
	out := h.run(t, script...)

	assert.Contains(t, out, "Welcome, Ash!")
	assert.Contains(t, out, "Pikachu added to favorites")
	assert.Contains(t, out, "#025 Pikachu      Electric (weak to Ground)")
	assert.Contains(t, out, "Pikachu joined your party in slot 1")
	assert.Contains(t, out, "Mon1 joined your party in slot 2")
	assert.Contains(t, out, "[2] #001 Mon1")
	assert.Contains(t, out, "2/6")
	assert.Contains(t, out, "Favorite: yes  In party: yes")
	assert.NotContains(t, out, "Error:")
}

func TestApp_SessionSurvivesRestart(t *testing.T) {
	h := newHarness(t)
	h.run(t, append(registerAsh(), "fav pikachu", "exit")...)

	out := h.run(t, "whoami", "favs", "logout", "favs", "exit")
	assert.Contains(t, out, "Logged in as Ash")
	assert.Contains(t, out, "Ash (ash@poke.com), Ash Ketchum, age 10")
	assert.Contains(t, out, "#025 Pikachu")
	assert.Contains(t, out, "Error: please login first")

	out = h.run(t, "login", "ash@poke.com", "wrong", "login", "ASH@poke.com", "pikachu1", "exit")
	assert.Contains(t, out, "Error: invalid email or password")
	assert.Contains(t, out, "Logged in as Ash")
}

func TestApp_DuplicateAndValidation(t *testing.T) {
	h := newHarness(t)

	script := append(registerAsh(), "logout")
	script = append(script, registerAsh()...)
	script = append(script, "register", "misty@poke.com", "starmie9", "Misty", "Misty", "ten", "exit")
	out := h.run(t, script...)

	assert.Contains(t, out, "Error: a user with this email or nickname already exists")
	assert.Contains(t, out, "Error: validation error: age must be a number")
}

func TestApp_PartyFullAndCompaction(t *testing.T) {
	h := newHarness(t)

	script := registerAsh()
	for id := 1; id <= 7; id++ {
		script = append(script, "addparty "+strconv.Itoa(id))
	}
	script = append(script, "rmparty 2", "addparty 9", "party", "rmparty 9", "exit")
	out := h.run(t, script...)

	assert.Contains(t, out, "Error: your party already has 6 members")
	assert.Contains(t, out, "Slot 2 cleared")
	assert.Contains(t, out, "Mon9 joined your party in slot 6")
	assert.Contains(t, out, "[2] #003 Mon3")
	assert.Contains(t, out, "Error: validation error: slot must be between 1 and 6")
}

func TestApp_CatalogBrowsing(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "list", "list 3", "list 4", "list zero", "search PIKACHU", "search missingno", "show missingno", "exit")
	assert.Contains(t, out, "#001 Mon1")
	assert.Contains(t, out, "#030 Mon30")
	assert.Contains(t, out, "No more pokemon")
	assert.Contains(t, out, "Error: validation error: page must be a positive number")
	assert.Contains(t, out, "#025 Pikachu")
	assert.Contains(t, out, "No pokemon found")
	assert.Contains(t, out, `Error: pokemon "missingno": not found`)
}

func TestApp_CatalogFailureKeepsRunning(t *testing.T) {
	h := newHarness(t)
	h.catalog.err = fmt.Errorf("%w: dial tcp: refused", common.ErrNetworkFailure)

	out := h.run(t, "list", "show 25", "help", "exit")
	assert.Contains(t, out, "Error: the catalog is unreachable, try again later")
	assert.Contains(t, out, guestHelp)
	assert.Contains(t, out, "Bye!")
}

func TestApp_ProfileImageAndReset(t *testing.T) {
	h := newHarness(t)

	script := append(registerAsh(),
		"profileimage file:///ash.png",
		"whoami",
		"reset", "no",
		"whoami",
		"reset", "yes",
		"whoami",
		"login", "ash@poke.com", "pikachu1",
		"exit",
	)
	out := h.run(t, script...)

	assert.Contains(t, out, "Profile image: file:///ash.png")
	assert.Contains(t, out, "Cancelled")
	assert.Contains(t, out, "All local data removed")
	assert.Contains(t, out, "Error: please login first")
	assert.Contains(t, out, "Error: invalid email or password")
}

func TestApp_RemoveEmptySlotNamesTheSlot(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, append(registerAsh(), "addparty 25", "rmparty 3", "party", "exit")...)
	assert.Contains(t, out, "Error: party slot 3 is empty: not found")
	assert.Contains(t, out, "[1] #025 Pikachu")
}
