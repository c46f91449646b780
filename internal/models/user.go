package models

import "time"

// User is a locally registered account. PasswordHash is never the plaintext.
type User struct {
	ID           string    `json:"id"`
	Nickname     string    `json:"nickname"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	ProfileImage string    `json:"profile_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserUpdate carries a partial update; nil fields are left untouched.
type UserUpdate struct {
	Nickname     *string
	Name         *string
	Age          *int
	ProfileImage *string
	PasswordHash *string
}

// Apply merges the non-nil fields of upd into u.
func (u *User) Apply(upd UserUpdate) {
	if upd.Nickname != nil {
		u.Nickname = *upd.Nickname
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Age != nil {
		u.Age = *upd.Age
	}
	if upd.ProfileImage != nil {
		u.ProfileImage = *upd.ProfileImage
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
}

// RegisterRequest is the input of account registration.
type RegisterRequest struct {
	Email    string
	Password string
	Nickname string
	Name     string
	Age      int
}
