package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/cryptox"
	"github.com/dmitrijs2005/pokedex/internal/logging"
	"github.com/dmitrijs2005/pokedex/internal/models"
	"github.com/dmitrijs2005/pokedex/internal/repositories/users"
)

const minPasswordLength = 6

// AuthService manages accounts and the logged-in user.
//
//   - Register: validate, hash the password, create the user and log in.
//   - Login: check credentials and log in; unknown email or wrong password
//     are both common.ErrInvalidCredentials.
//   - FindByCredentials: (nil, nil) when the pair does not match.
//   - CurrentUser: (nil, nil) when nobody is logged in.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	FindByCredentials(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	UpdateProfileImage(ctx context.Context, userID, ref string) (*models.User, error)
}

type authService struct {
	users   users.Repository
	session SessionHolder
	logger  logging.Logger
}

func NewAuthService(users users.Repository, session SessionHolder, logger logging.Logger) AuthService {
	return &authService{users: users, session: session, logger: logger.With("component", "auth")}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegistration(req models.RegisterRequest) error {
	switch {
	case !strings.Contains(req.Email, "@"):
		return fmt.Errorf("%w: email must contain @", common.ErrValidation)
	case strings.TrimSpace(req.Nickname) == "":
		return fmt.Errorf("%w: nickname is required", common.ErrValidation)
	case strings.TrimSpace(req.Name) == "":
		return fmt.Errorf("%w: name is required", common.ErrValidation)
	case req.Age <= 0:
		return fmt.Errorf("%w: age must be positive", common.ErrValidation)
	case len(req.Password) < minPasswordLength:
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrValidation, minPasswordLength)
	}
	return nil
}

func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	req.Email = normalizeEmail(req.Email)
	req.Nickname = strings.TrimSpace(req.Nickname)
	req.Name = strings.TrimSpace(req.Name)

	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	user, err := a.users.Create(ctx, &models.User{
		Nickname:     req.Nickname,
		Name:         req.Name,
		Age:          req.Age,
		Email:        req.Email,
		PasswordHash: cryptox.HashPassword(req.Password),
	})
	if err != nil {
		return nil, err
	}

	if _, err := a.session.Login(ctx, user); err != nil {
		return nil, err
	}

	a.logger.Info(ctx, "user registered", "user_id", user.ID, "nickname", user.Nickname)
	return user, nil
}

func (a *authService) FindByCredentials(ctx context.Context, email, password string) (*models.User, error) {
	user, err := a.users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ok, err := cryptox.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		a.logger.Warn(ctx, "stored password hash is unreadable", "user_id", user.ID, "error", err)
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return user, nil
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := a.FindByCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.ErrInvalidCredentials
	}

	if _, err := a.session.Login(ctx, user); err != nil {
		return nil, err
	}

	a.logger.Info(ctx, "user logged in", "user_id", user.ID)
	return user, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	sess, err := a.session.Current(ctx)
	if err != nil || sess == nil {
		return nil, err
	}

	user, err := a.users.GetByID(ctx, sess.UserID)
	if errors.Is(err, common.ErrorNotFound) {
		// account vanished (e.g. after a reset); drop the stale session
		return nil, a.session.Logout(ctx)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (a *authService) UpdateProfileImage(ctx context.Context, userID, ref string) (*models.User, error) {
	ref = strings.TrimSpace(ref)
	return a.users.Update(ctx, userID, models.UserUpdate{ProfileImage: &ref})
}
