package bloglist

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the credential-store record. PasswordHash never serializes
// outward. BlogIDs is the denormalized owned-blog reference list: it grows
// when the user creates a blog and is intentionally NOT shrunk when a blog
// is deleted — the two writes are not transactional, see Blogs lifecycle.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID   `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username      string      `bun:"username,notnull,unique" json:"username,omitempty"`
	Name          string      `bun:"name" json:"name,omitempty"`
	PasswordHash  string      `bun:"password_hash,notnull" json:"-"`
	BlogIDs       []uuid.UUID `bun:"blog_ids,type:jsonb" json:"-"`
	Blogs         []*Blog     `bun:"rel:has-many,join:id=user_id" json:"blogs,omitempty"`
	CreatedAt     *time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Owns reports whether the blog id is in the user's owned list.
func (u *User) Owns(blogID uuid.UUID) bool {
	for _, id := range u.BlogIDs {
		if id == blogID {
			return true
		}
	}
	return false
}

// Blog is a shared blog record. UserID references the owner; a nil UserID
// means the row was created without an authenticated owner and no identity
// can ever delete it under the ownership policy.
type Blog struct {
	bun.BaseModel `bun:"table:blogs,alias:blg"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Title         string     `bun:"title,notnull" json:"title,omitempty"`
	Author        string     `bun:"author" json:"author,omitempty"`
	URL           string     `bun:"url,notnull" json:"url,omitempty"`
	Likes         int        `bun:"likes,notnull,default:0" json:"likes"`
	UserID        *uuid.UUID `bun:"user_id,type:uuid" json:"user_id,omitempty"`
	User          *User      `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}
