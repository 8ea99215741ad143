package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the user model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull,unique" json:"name,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	ImageURL      string     `bun:"user_image_url" json:"user_image_url,omitempty"`
	Admin         bool       `bun:"admin_flag,notnull" json:"admin_flag"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// userIdentity adapts a User record to the Identity interface the issuer
// consumes.
type userIdentity struct {
	user *User
}

// IdentityFromUser wraps a user record for token issuance
func IdentityFromUser(user *User) Identity {
	return userIdentity{user: user}
}

func (u userIdentity) ID() string {
	if u.user == nil {
		return ""
	}
	return u.user.ID.String()
}

func (u userIdentity) Name() string {
	if u.user == nil {
		return ""
	}
	return u.user.Name
}

func (u userIdentity) Email() string {
	if u.user == nil {
		return ""
	}
	return u.user.Email
}

func (u userIdentity) IsAdmin() bool {
	if u.user == nil {
		return false
	}
	return u.user.Admin
}
