package bloglist

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// Routes are the mount points for the JSON API.
type Routes struct {
	Blogs string
	Users string
	Login string
}

func DefaultRoutes() *Routes {
	return &Routes{
		Blogs: "/api/blogs",
		Users: "/api/users",
		Login: "/api/login",
	}
}

// RegisterRoutes mounts the API. The protected middleware (identity
// resolution) gates blog creation and deletion only: listing is public and
// likes updates are deliberately unauthenticated.
func RegisterRoutes[T any](app router.Router[T], blogs *BlogsController, users *UsersController, login *LoginController, protected router.MiddlewareFunc) {
	routes := DefaultRoutes()

	app.Get(routes.Blogs, blogs.List).SetName("blogs.list")
	app.Post(routes.Blogs, blogs.Create, protected).SetName("blogs.create")
	app.Put(routes.Blogs+"/:id", blogs.Update).SetName("blogs.update")
	app.Delete(routes.Blogs+"/:id", blogs.Delete, protected).SetName("blogs.delete")

	app.Get(routes.Users, users.List).SetName("users.list")
	app.Post(routes.Users, users.Create).SetName("users.create")

	app.Post(routes.Login, login.Post).SetName("login.post")
}

// BlogsController handles the blog resource lifecycle.
type BlogsController struct {
	Logger       Logger
	Repo         RepositoryManager
	ContextKey   string
	ErrorHandler router.ErrorHandler
}

type BlogsControllerOption func(*BlogsController) *BlogsController

func NewBlogsController(opts ...BlogsControllerOption) *BlogsController {
	c := &BlogsController{
		Logger:       defLogger{},
		ContextKey:   "user",
		ErrorHandler: defaultErrHandler,
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in blogs controller...")
	}

	return c
}

func WithBlogsRepo(repo RepositoryManager) BlogsControllerOption {
	return func(c *BlogsController) *BlogsController {
		c.Repo = repo
		return c
	}
}

func WithBlogsLogger(logger Logger) BlogsControllerOption {
	return func(c *BlogsController) *BlogsController {
		c.Logger = logger
		return c
	}
}

// CreateBlogRequest payload
type CreateBlogRequest struct {
	Title  string `form:"title" json:"title"`
	Author string `form:"author" json:"author"`
	URL    string `form:"url" json:"url"`
	Likes  int    `form:"likes" json:"likes"`
}

// Validate runs the required-field rules in order and reports the first
// violation only.
func (r CreateBlogRequest) Validate() error {
	if err := validation.Validate(r.Title,
		validation.Required.Error("title must be included"),
	); err != nil {
		return NewValidationError(err.Error())
	}

	if err := validation.Validate(r.URL,
		validation.Required.Error("url must be included"),
	); err != nil {
		return NewValidationError(err.Error())
	}

	return nil
}

// UpdateBlogRequest payload. Likes is the only mutable field.
type UpdateBlogRequest struct {
	Likes *int `form:"likes" json:"likes"`
}

// Validate keeps the source behavior of treating zero likes the same as
// absent likes.
func (r UpdateBlogRequest) Validate() error {
	if r.Likes == nil || *r.Likes == 0 {
		return NewValidationError("likes property is not included")
	}

	if err := validation.Validate(*r.Likes,
		validation.Min(0).Error("likes must not be negative"),
	); err != nil {
		return NewValidationError(err.Error())
	}

	return nil
}

// List is public: every blog with its owner summary.
func (a *BlogsController) List(ctx router.Context) error {
	records, err := a.Repo.Blogs().List(ctx.Context())
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(http.StatusOK, records)
}

// Create persists a blog owned by the authenticated user. The blog insert
// and the owner back-reference append are two sequential writes with no
// transaction between them; a reader may observe the blog before the
// owner's blog list catches up.
func (a *BlogsController) Create(ctx router.Context) error {
	user, ok := UserFromRouterContext(ctx, a.ContextKey)
	if !ok {
		return a.ErrorHandler(ctx, ErrMissingToken)
	}

	payload := new(CreateBlogRequest)
	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryBadInput, "unable to parse blog payload"))
	}

	if err := payload.Validate(); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	blog := &Blog{
		Title:  payload.Title,
		Author: payload.Author,
		URL:    payload.URL,
		Likes:  payload.Likes,
		UserID: &user.ID,
	}

	record, err := a.Repo.Blogs().Create(ctx.Context(), blog)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	if err := a.Repo.Users().AttachBlog(ctx.Context(), user.ID, record.ID); err != nil {
		// the blog row stays: there is no compensating delete
		a.Logger.Error("blog create owner back-reference failed", "error", err, "blog_id", record.ID)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, record)
}

// Update mutates likes only, and requires no identity: any caller may
// update likes. See the API documentation for why this asymmetry with
// Delete is preserved.
func (a *BlogsController) Update(ctx router.Context) error {
	payload := new(UpdateBlogRequest)
	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryBadInput, "unable to parse blog payload"))
	}

	if err := payload.Validate(); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	blog, err := a.Repo.Blogs().GetByID(ctx.Context(), ctx.Param("id"))
	if err != nil {
		if errors.IsNotFound(err) {
			return a.ErrorHandler(ctx, ErrBlogNotFound)
		}
		return a.ErrorHandler(ctx, err)
	}

	blog.Likes = *payload.Likes

	record, err := a.Repo.Blogs().Update(ctx.Context(), blog)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(http.StatusOK, record)
}

// Delete removes a blog after the ownership check. A lookup miss reports
// NotFound before any ownership verdict; the owner's blog list is left
// stale on purpose, there is no cascade.
func (a *BlogsController) Delete(ctx router.Context) error {
	user, ok := UserFromRouterContext(ctx, a.ContextKey)
	if !ok {
		return a.ErrorHandler(ctx, ErrMissingToken)
	}

	blog, err := a.Repo.Blogs().GetByID(ctx.Context(), ctx.Param("id"))
	if err != nil {
		if errors.IsNotFound(err) {
			return a.ErrorHandler(ctx, ErrBlogNotFound)
		}
		return a.ErrorHandler(ctx, err)
	}

	if !CanDelete(user, blog) {
		return a.ErrorHandler(ctx, ErrDeleteNotAllowed)
	}

	if err := a.Repo.Blogs().Delete(ctx.Context(), blog.ID.String()); err != nil {
		if errors.IsNotFound(err) {
			return a.ErrorHandler(ctx, ErrBlogNotFound)
		}
		return a.ErrorHandler(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UsersController handles registration and the populated user listing.
type UsersController struct {
	Logger       Logger
	Repo         RepositoryManager
	ErrorHandler router.ErrorHandler
}

type UsersControllerOption func(*UsersController) *UsersController

func NewUsersController(opts ...UsersControllerOption) *UsersController {
	c := &UsersController{
		Logger:       defLogger{},
		ErrorHandler: defaultErrHandler,
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in users controller...")
	}

	return c
}

func WithUsersRepo(repo RepositoryManager) UsersControllerOption {
	return func(c *UsersController) *UsersController {
		c.Repo = repo
		return c
	}
}

func WithUsersLogger(logger Logger) UsersControllerOption {
	return func(c *UsersController) *UsersController {
		c.Logger = logger
		return c
	}
}

// CreateUserRequest payload
type CreateUserRequest struct {
	Username string `form:"username" json:"username"`
	Name     string `form:"name" json:"name"`
	Password string `form:"password" json:"password"`
}

// Validate applies the registration rules in order, fail-fast: presence of
// username, presence of password, then the length floors. Uniqueness is
// checked against the store by the handler.
func (r CreateUserRequest) Validate() error {
	if err := validation.Validate(r.Username,
		validation.Required.Error("username not given"),
	); err != nil {
		return NewValidationError(err.Error())
	}

	if err := validation.Validate(r.Password,
		validation.Required.Error("password not given"),
	); err != nil {
		return NewValidationError(err.Error())
	}

	if err := validation.Validate(r.Username,
		validation.Length(3, 0).Error("username must be at least 3 characters long"),
	); err != nil {
		return NewValidationError(err.Error())
	}

	if err := validation.Validate(r.Password,
		validation.Length(3, 0).Error("password must be at least 3 characters long"),
	); err != nil {
		return NewValidationError(err.Error())
	}

	return nil
}

func (a *UsersController) List(ctx router.Context) error {
	records, err := a.Repo.Users().List(ctx.Context())
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(http.StatusOK, records)
}

// Create registers a user: ordered validation, uniqueness against the
// store, then hash and persist.
func (a *UsersController) Create(ctx router.Context) error {
	payload := new(CreateUserRequest)
	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryBadInput, "unable to parse user payload"))
	}

	if err := payload.Validate(); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	if _, err := a.Repo.Users().GetByUsername(ctx.Context(), payload.Username); err == nil {
		return a.ErrorHandler(ctx, NewValidationError("username must be unique"))
	} else if !errors.IsNotFound(err) {
		return a.ErrorHandler(ctx, err)
	}

	hash, err := HashPassword(payload.Password)
	if err != nil {
		return a.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryInternal, "failed to hash password"))
	}

	user := &User{
		Username:     payload.Username,
		Name:         payload.Name,
		PasswordHash: hash,
		BlogIDs:      []uuid.UUID{},
	}

	record, err := a.Repo.Users().Register(ctx.Context(), user)
	if err != nil {
		return a.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryConflict, "could not create user"))
	}

	return ctx.JSON(http.StatusCreated, record)
}

// LoginController exchanges credentials for a token.
type LoginController struct {
	Logger       Logger
	Auth         Authenticator
	ErrorHandler router.ErrorHandler
}

type LoginControllerOption func(*LoginController) *LoginController

func NewLoginController(opts ...LoginControllerOption) *LoginController {
	c := &LoginController{
		Logger:       defLogger{},
		ErrorHandler: defaultErrHandler,
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auth == nil {
		panic("Missing Authenticator in login controller...")
	}

	return c
}

func WithLoginAuthenticator(auth Authenticator) LoginControllerOption {
	return func(c *LoginController) *LoginController {
		c.Auth = auth
		return c
	}
}

// LoginRequest payload
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// LoginResponse is the token envelope returned on success.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

func (a *LoginController) Post(ctx router.Context) error {
	payload := new(LoginRequest)
	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryBadInput, "unable to parse login payload"))
	}

	token, user, err := a.Auth.Login(ctx.Context(), payload.Username, payload.Password)
	if err != nil {
		a.Logger.Info("Login rejected", "username", payload.Username)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(http.StatusOK, LoginResponse{
		Token:    token,
		Username: user.Username,
		Name:     user.Name,
	})
}

// defaultErrHandler translates the error taxonomy into the literal response
// bodies of the API contract. Validation errors render as a bare JSON
// string; auth and authz failures as {"error": ...} objects. Anything else
// is a generic 500 that never leaks internals.
func defaultErrHandler(ctx router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	switch richErr.Category {
	case errors.CategoryValidation, errors.CategoryBadInput:
		return ctx.JSON(http.StatusBadRequest, richErr.Message)
	case errors.CategoryAuth, errors.CategoryAuthz:
		return ctx.JSON(richErr.Code, map[string]string{
			"error": richErr.Message,
		})
	case errors.CategoryNotFound:
		return ctx.JSON(http.StatusNotFound, map[string]string{
			"error": richErr.Message,
		})
	}

	defLogger{}.Error(
		"Unhandled controller error",
		"error", richErr.Message,
		"category", richErr.Category,
		"details", print.MaybePrettyJSON(richErr.Metadata),
	)

	return ctx.Status(http.StatusInternalServerError).SendString("internal server error")
}
