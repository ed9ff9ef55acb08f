package bloglist

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the credential store surface the rest of the service depends on.
type Users interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Register(ctx context.Context, user *User) (*User, error)
	RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error)
	AttachBlog(ctx context.Context, userID, blogID uuid.UUID) error
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var _ Users = (*users)(nil)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "username"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func (a *users) GetByID(ctx context.Context, id string) (*User, error) {
	return a.Repository.GetByID(ctx, id)
}

func (a *users) GetByUsername(ctx context.Context, username string) (*User, error) {
	return a.getByUsernameTx(ctx, a.db, username)
}

func (a *users) getByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*User, error) {
	record := &User{}

	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.username = ?", username).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"username": username,
				})
		}
		return nil, err
	}

	return record, nil
}

// List returns every user with their blogs populated, the summary columns
// only.
func (a *users) List(ctx context.Context) ([]*User, error) {
	var records []*User

	err := a.db.NewSelect().
		Model(&records).
		Relation("Blogs", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Column("id", "title", "author", "url", "user_id")
		}).
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

func (a *users) Register(ctx context.Context, user *User) (*User, error) {
	return a.RegisterTx(ctx, a.db, user)
}

func (a *users) RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error) {
	prepareUserDefaults(user)
	return a.Repository.CreateTx(ctx, tx, user)
}

// AttachBlog appends the blog id to the owner's blog_ids list. It is the
// second write of the create-blog sequence and runs outside any transaction
// with the blog insert.
func (a *users) AttachBlog(ctx context.Context, userID, blogID uuid.UUID) error {
	user, err := a.Repository.GetByID(ctx, userID.String())
	if err != nil {
		return err
	}

	if user.Owns(blogID) {
		return nil
	}

	user.BlogIDs = append(user.BlogIDs, blogID)

	_, err = a.db.NewUpdate().
		Model(user).
		Column("blog_ids").
		WherePK().
		Exec(ctx)

	return err
}

// prepareUserDefaults derives a deterministic id from the username so
// repeated imports of the same fixture data stay stable.
func prepareUserDefaults(user *User) {
	if user == nil || user.ID != uuid.Nil {
		return
	}

	if id, err := hashid.NewUUID(user.Username); err == nil {
		user.ID = id
		return
	}

	user.ID = uuid.New()
}
