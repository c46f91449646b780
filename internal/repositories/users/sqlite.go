package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/dbx"
	"github.com/dmitrijs2005/pokedex/internal/models"
	"github.com/google/uuid"
)

const selectUser = `SELECT id, nickname, name, age, email, password_hash, profile_image, created_at FROM users`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.ensureUnique(ctx, user.Email, user.Nickname); err != nil {
		return nil, err
	}

	u := *user
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, nickname, name, age, email, password_hash, profile_image, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, u.ID, u.Nickname, u.Name, u.Age, u.Email, u.PasswordHash, u.ProfileImage, u.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &u, nil
}

func (r *SQLiteRepository) ensureUnique(ctx context.Context, email, nickname string) error {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = ? OR nickname = ?`, email, nickname).Scan(&n)
	if err != nil {
		return fmt.Errorf("failed to check user uniqueness: %w", err)
	}
	if n > 0 {
		return common.ErrDuplicateUser
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, selectUser+` WHERE id = ?`, id)
}

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, selectUser+` WHERE email = ?`, email)
}

func (r *SQLiteRepository) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
	return r.getOne(ctx, selectUser+` WHERE nickname = ?`, nickname)
}

func (r *SQLiteRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	u := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Nickname, &u.Name, &u.Age, &u.Email, &u.PasswordHash, &u.ProfileImage, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Nickname != nil && !strings.EqualFold(*upd.Nickname, u.Nickname) {
		if _, err := r.GetByNickname(ctx, *upd.Nickname); err == nil {
			return nil, common.ErrDuplicateUser
		} else if !errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
	}

	u.Apply(upd)

	_, err = r.db.ExecContext(ctx, `
		UPDATE users SET nickname = ?, name = ?, age = ?, password_hash = ?, profile_image = ?
		WHERE id = ?
	`, u.Nickname, u.Name, u.Age, u.PasswordHash, u.ProfileImage, u.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}

	return u, nil
}
