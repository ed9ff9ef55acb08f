package bloglist_test

import (
	"context"
	"database/sql"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	bloglist "github.com/goliatone/go-bloglist"
)

// testLogger keeps controller noise out of the test output.
type testLogger struct{}

func (testLogger) Debug(format string, args ...any) {}
func (testLogger) Info(format string, args ...any)  {}
func (testLogger) Error(format string, args ...any) {}

func recordNotFound() error {
	return goerrors.New("record not found", goerrors.CategoryNotFound)
}

// memUsers is an in-memory credential store implementing bloglist.Users.
type memUsers struct {
	mu    sync.Mutex
	users []*bloglist.User
}

func newMemUsers(users ...*bloglist.User) *memUsers {
	return &memUsers{users: users}
}

func (s *memUsers) GetByID(ctx context.Context, id string) (*bloglist.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.ID.String() == id {
			return user, nil
		}
	}
	return nil, recordNotFound()
}

func (s *memUsers) GetByUsername(ctx context.Context, username string) (*bloglist.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, recordNotFound()
}

func (s *memUsers) List(ctx context.Context) ([]*bloglist.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*bloglist.User{}, s.users...), nil
}

func (s *memUsers) Register(ctx context.Context, user *bloglist.User) (*bloglist.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	s.users = append(s.users, user)
	return user, nil
}

func (s *memUsers) RegisterTx(ctx context.Context, tx bun.IDB, user *bloglist.User) (*bloglist.User, error) {
	return s.Register(ctx, user)
}

func (s *memUsers) AttachBlog(ctx context.Context, userID, blogID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.ID != userID {
			continue
		}
		if !user.Owns(blogID) {
			user.BlogIDs = append(user.BlogIDs, blogID)
		}
		return nil
	}
	return recordNotFound()
}

func (s *memUsers) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// memBlogs is an in-memory blog store implementing bloglist.Blogs.
type memBlogs struct {
	mu    sync.Mutex
	blogs []*bloglist.Blog
}

func newMemBlogs(blogs ...*bloglist.Blog) *memBlogs {
	return &memBlogs{blogs: blogs}
}

func (s *memBlogs) List(ctx context.Context) ([]*bloglist.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*bloglist.Blog{}, s.blogs...), nil
}

func (s *memBlogs) GetByID(ctx context.Context, id string) (*bloglist.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, blog := range s.blogs {
		if blog.ID.String() == id {
			return blog, nil
		}
	}
	return nil, recordNotFound()
}

func (s *memBlogs) Create(ctx context.Context, blog *bloglist.Blog) (*bloglist.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if blog.ID == uuid.Nil {
		blog.ID = uuid.New()
	}
	if blog.Likes < 0 {
		blog.Likes = 0
	}
	s.blogs = append(s.blogs, blog)
	return blog, nil
}

func (s *memBlogs) Update(ctx context.Context, blog *bloglist.Blog) (*bloglist.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.blogs {
		if existing.ID == blog.ID {
			s.blogs[i] = blog
			return blog, nil
		}
	}
	return nil, recordNotFound()
}

func (s *memBlogs) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, blog := range s.blogs {
		if blog.ID.String() == id {
			s.blogs = append(s.blogs[:i], s.blogs[i+1:]...)
			return nil
		}
	}
	return recordNotFound()
}

func (s *memBlogs) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blogs)
}

// memRepo bundles the in-memory stores behind bloglist.RepositoryManager.
type memRepo struct {
	users *memUsers
	blogs *memBlogs
}

func newMemRepo(users *memUsers, blogs *memBlogs) *memRepo {
	if users == nil {
		users = newMemUsers()
	}
	if blogs == nil {
		blogs = newMemBlogs()
	}
	return &memRepo{users: users, blogs: blogs}
}

func (m *memRepo) Validate() error { return nil }
func (m *memRepo) MustValidate()   {}

func (m *memRepo) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return f(ctx, bun.Tx{})
}

func (m *memRepo) Users() bloglist.Users { return m.users }
func (m *memRepo) Blogs() bloglist.Blogs { return m.blogs }
