package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/pokedex/internal/common"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	ProfileImage(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	ToggleFavorite(ctx context.Context, args []string) error
	Favorites(ctx context.Context) error
	Party(ctx context.Context) error
	AddToParty(ctx context.Context, args []string) error
	RemoveFromParty(ctx context.Context, args []string) error
	ToggleParty(ctx context.Context, args []string) error
	Reset(ctx context.Context) error
}

const (
	guestHelp = "Available commands: (l)ist [page], show <id|name>, search <query>, register, login, reset, exit"
	userHelp  = "Available commands: (l)ist [page], show <id|name>, search <query>, fav <id|name>, favs, " +
		"party, addparty <id|name>, rmparty <slot>, toggleparty <id|name>, profileimage <ref>, whoami, logout, reset, exit"
)

// runREPL reads one command per line from in and dispatches it to a.
//
// A failing command prints a single "Error: ..." line and the loop goes on.
// The loop exits on end of input or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("pokedex %s> ", statusFn()))
		line, err := readLine(in)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(userHelp)
			} else {
				printlnFn(guestHelp)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn("Error:", describe(err))
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.Whoami(ctx)
	case "profileimage":
		return a.ProfileImage(ctx, args)
	case "l", "list":
		return a.List(ctx, args)
	case "show":
		return a.Show(ctx, args)
	case "search":
		return a.Search(ctx, args)
	case "fav":
		return a.ToggleFavorite(ctx, args)
	case "favs":
		return a.Favorites(ctx)
	case "party":
		return a.Party(ctx)
	case "addparty":
		return a.AddToParty(ctx, args)
	case "rmparty":
		return a.RemoveFromParty(ctx, args)
	case "toggleparty":
		return a.ToggleParty(ctx, args)
	case "reset":
		return a.Reset(ctx)
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// readLine returns the next line without its terminator. A final line
// without a newline is still returned.
func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// describe turns err into the one-line message shown to the user.
func describe(err error) string {
	switch {
	case errors.Is(err, errLoginRequired):
		return "please login first"
	case errors.Is(err, common.ErrInvalidCredentials):
		return "invalid email or password"
	case errors.Is(err, common.ErrDuplicateUser):
		return "a user with this email or nickname already exists"
	case errors.Is(err, common.ErrPartyFull):
		return fmt.Sprintf("your party already has %d members", common.MaxPartySize)
	case errors.Is(err, common.ErrAlreadyInParty):
		return "that pokemon is already in your party"
	case errors.Is(err, common.ErrNetworkFailure):
		return "the catalog is unreachable, try again later"
	case errors.Is(err, common.ErrStorageUnavailable):
		return "local storage is unavailable"
	default:
		return err.Error()
	}
}
