// Package users is the user record store.
package users

import (
	"context"

	"github.com/dmitrijs2005/pokedex/internal/models"
)

// Repository persists user records. Lookups of absent users return
// common.ErrorNotFound; email and nickname collisions return
// common.ErrDuplicateUser.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByNickname(ctx context.Context, nickname string) (*models.User, error)
	Update(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error)
}
