package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/models"
)

// Register prompts for the account fields, creates the user and logs them
// in. The password buffer is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	nickname, err := getSimpleText(a.reader, "Enter nickname", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	ageText, err := getSimpleText(a.reader, "Enter age", a.out)
	if err != nil {
		return err
	}
	age, err := strconv.Atoi(ageText)
	if err != nil {
		return fmt.Errorf("%w: age must be a number", common.ErrValidation)
	}

	u, err := a.auth.Register(ctx, models.RegisterRequest{
		Email:    email,
		Password: string(password),
		Nickname: nickname,
		Name:     name,
		Age:      age,
	})
	if err != nil {
		return err
	}

	a.user = u
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.Nickname)
	return nil
}

// Login prompts for credentials and makes the matching user current.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	a.user = u
	fmt.Fprintf(a.out, "Logged in as %s\n", u.Nickname)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.user = nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	if _, err := a.currentUser(); err != nil {
		return err
	}
	u := a.user
	fmt.Fprintf(a.out, "%s (%s), %s, age %d\n", u.Nickname, u.Email, u.Name, u.Age)
	if u.ProfileImage != "" {
		fmt.Fprintf(a.out, "Profile image: %s\n", u.ProfileImage)
	}
	return nil
}

// ProfileImage stores an opaque image reference on the current user.
func (a *App) ProfileImage(ctx context.Context, args []string) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: usage: profileimage <ref>", common.ErrValidation)
	}

	u, err := a.auth.UpdateProfileImage(ctx, userID, strings.Join(args, " "))
	if err != nil {
		return err
	}
	a.user = u
	fmt.Fprintln(a.out, "Profile image updated")
	return nil
}
