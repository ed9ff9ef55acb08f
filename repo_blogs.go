package bloglist

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Blogs is the blog store surface.
type Blogs interface {
	List(ctx context.Context) ([]*Blog, error)
	GetByID(ctx context.Context, id string) (*Blog, error)
	Create(ctx context.Context, blog *Blog) (*Blog, error)
	Update(ctx context.Context, blog *Blog) (*Blog, error)
	Delete(ctx context.Context, id string) error
}

type blogs struct {
	repository.Repository[*Blog]
	db *bun.DB
}

var _ Blogs = (*blogs)(nil)

func NewBlogsRepository(db *bun.DB) Blogs {
	repo := repository.NewRepository[*Blog](db, repository.ModelHandlers[*Blog]{
		NewRecord: func() *Blog { return &Blog{} },
		GetID: func(b *Blog) uuid.UUID {
			if b == nil {
				return uuid.Nil
			}
			return b.ID
		},
		SetID: func(b *Blog, id uuid.UUID) {
			if b != nil {
				b.ID = id
			}
		},
	})

	return &blogs{
		Repository: repo,
		db:         db,
	}
}

// List returns every blog with an owner summary attached.
func (a *blogs) List(ctx context.Context) ([]*Blog, error) {
	var records []*Blog

	err := a.db.NewSelect().
		Model(&records).
		Relation("User", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Column("id", "username", "name")
		}).
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

func (a *blogs) GetByID(ctx context.Context, id string) (*Blog, error) {
	return a.Repository.GetByID(ctx, id)
}

func (a *blogs) Create(ctx context.Context, blog *Blog) (*Blog, error) {
	prepareBlogDefaults(blog)
	return a.Repository.Create(ctx, blog)
}

func (a *blogs) Update(ctx context.Context, blog *Blog) (*Blog, error) {
	return a.Repository.Update(ctx, blog, repository.UpdateByID(blog.ID.String()))
}

func (a *blogs) Delete(ctx context.Context, id string) error {
	res, err := a.db.NewDelete().
		Model((*Blog)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)

	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id,
			})
	}

	return nil
}

// prepareBlogDefaults normalizes a blog before insert: missing id gets a
// random one, negative likes clamp to zero.
func prepareBlogDefaults(blog *Blog) {
	if blog == nil {
		return
	}

	if blog.ID == uuid.Nil {
		blog.ID = uuid.New()
	}

	if blog.Likes < 0 {
		blog.Likes = 0
	}
}
