package users

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/models"
	"github.com/dmitrijs2005/pokedex/internal/repositories/metadata"
	"github.com/google/uuid"
)

// KVRepository keeps all users as one JSON list under common.KeyUsers.
type KVRepository struct {
	store metadata.Repository
	mu    sync.Mutex
}

func NewKVRepository(store metadata.Repository) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) load(ctx context.Context) ([]models.User, error) {
	list, _, err := metadata.GetJSON[[]models.User](ctx, r.store, common.KeyUsers)
	return list, err
}

func (r *KVRepository) save(ctx context.Context, list []models.User) error {
	return metadata.SetJSON(ctx, r.store, common.KeyUsers, list)
}

func (r *KVRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, existing := range list {
		if existing.Email == user.Email || strings.EqualFold(existing.Nickname, user.Nickname) {
			return nil, common.ErrDuplicateUser
		}
	}

	u := *user
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	if err := r.save(ctx, append(list, u)); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *KVRepository) find(ctx context.Context, match func(models.User) bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range list {
		if match(u) {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *KVRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.find(ctx, func(u models.User) bool { return u.ID == id })
}

func (r *KVRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(ctx, func(u models.User) bool { return u.Email == email })
}

func (r *KVRepository) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
	return r.find(ctx, func(u models.User) bool { return strings.EqualFold(u.Nickname, nickname) })
}

func (r *KVRepository) Update(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, u := range list {
		if u.ID == id {
			idx = i
			continue
		}
		if upd.Nickname != nil && strings.EqualFold(u.Nickname, *upd.Nickname) {
			return nil, common.ErrDuplicateUser
		}
	}
	if idx < 0 {
		return nil, common.ErrorNotFound
	}

	list[idx].Apply(upd)
	if err := r.save(ctx, list); err != nil {
		return nil, err
	}

	u := list[idx]
	return &u, nil
}
