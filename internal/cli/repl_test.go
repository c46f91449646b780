package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	failWith error

	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.failWith
}

func (f *fakeExec) isLoggedIn() bool                { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error  { return f.record("register", nil) }
func (f *fakeExec) Whoami(context.Context) error    { return f.record("whoami", nil) }
func (f *fakeExec) Favorites(context.Context) error { return f.record("favs", nil) }
func (f *fakeExec) Party(context.Context) error     { return f.record("party", nil) }
func (f *fakeExec) Reset(context.Context) error     { return f.record("reset", nil) }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) ProfileImage(_ context.Context, a []string) error { return f.record("profileimage", a) }
func (f *fakeExec) List(_ context.Context, a []string) error         { return f.record("list", a) }
func (f *fakeExec) Show(_ context.Context, a []string) error         { return f.record("show", a) }
func (f *fakeExec) Search(_ context.Context, a []string) error       { return f.record("search", a) }
func (f *fakeExec) ToggleFavorite(_ context.Context, a []string) error {
	return f.record("fav", a)
}
func (f *fakeExec) AddToParty(_ context.Context, a []string) error { return f.record("addparty", a) }
func (f *fakeExec) RemoveFromParty(_ context.Context, a []string) error {
	return f.record("rmparty", a)
}
func (f *fakeExec) ToggleParty(_ context.Context, a []string) error { return f.record("toggleparty", a) }

// capturePrintln redirects printlnFn into a slice of lines.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	capturePrintln(t)

	input := strings.Join([]string{
		"login",
		"l 2",
		"show pikachu",
		"search mr mime",
		"fav 25",
		"favs",
		"party",
		"addparty 4",
		"rmparty 1",
		"toggleparty 7",
		"profileimage file:///a.png",
		"whoami",
		"",
		"logout",
		"reset",
		"exit",
		"register",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"login", "list", "show", "search", "fav", "favs", "party", "addparty",
		"rmparty", "toggleparty", "profileimage", "whoami", "logout", "reset",
	}, exec.calls)
	assert.Equal(t, []string{"2"}, exec.args[1])
	assert.Equal(t, []string{"mr", "mime"}, exec.args[3])
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("help\nlogin\nhelp")))

	assert.Contains(t, *lines, guestHelp)
	assert.Contains(t, *lines, userHelp)
}

func TestRunREPL_ErrorsAreReportedAndLoopContinues(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{failWith: common.ErrPartyFull}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("addparty 1\nfoobar\nquit\n")))

	assert.Equal(t, []string{"addparty"}, exec.calls)
	assert.Contains(t, *lines, "Error: your party already has 6 members")
	assert.Contains(t, *lines, "Error: unknown command: foobar")
	assert.Equal(t, "Bye!", (*lines)[len(*lines)-1])
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{errLoginRequired, "please login first"},
		{fmt.Errorf("login: %w", common.ErrInvalidCredentials), "invalid email or password"},
		{common.ErrDuplicateUser, "a user with this email or nickname already exists"},
		{common.ErrAlreadyInParty, "that pokemon is already in your party"},
		{fmt.Errorf("%w: status 500", common.ErrNetworkFailure), "the catalog is unreachable, try again later"},
		{common.ErrStorageUnavailable, "local storage is unavailable"},
		{common.ErrorNotFound, "not found"},
		{fmt.Errorf("pokemon %q: %w", "xyz", common.ErrorNotFound), `pokemon "xyz": not found`},
		{errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, describe(tt.err))
	}
}
