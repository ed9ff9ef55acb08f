// Package tokenware implements the two-stage auth pipeline: TokenExtractor
// pulls a candidate bearer token off the Authorization header without
// judging it, UserExtractor verifies the token and resolves the user for
// operations that require an identity.
package tokenware

import (
	"context"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"

	bloglist "github.com/goliatone/go-bloglist"
)

// TokenVerifier mirrors bloglist.TokenService.Verify so the middleware does
// not need the full service.
type TokenVerifier interface {
	Verify(token string) (*bloglist.JWTClaims, error)
}

// UserFinder loads the user a verified token points at.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*bloglist.User, error)
}

type Config struct {
	// Filter skips the middleware when it returns true.
	Filter         func(router.Context) bool
	SuccessHandler router.HandlerFunc
	ErrorHandler   router.ErrorHandler
	// HeaderKey is the header inspected for the bearer token.
	HeaderKey string
	// AuthScheme is the expected scheme prefix, matched case-insensitively.
	AuthScheme string
	// TokenKey is the router-locals key holding the raw candidate token.
	TokenKey string
	// ContextKey is the router-locals key holding the resolved user.
	ContextKey string

	// Verifier is required by UserExtractor.
	Verifier TokenVerifier
	// Users is required by UserExtractor.
	Users UserFinder
}

// TokenExtractor inspects the Authorization header and, when it carries the
// configured scheme, stashes the remainder as the candidate token. A missing
// header or a different scheme is not an error at this stage: the request
// continues without a candidate and rejection is deferred to whichever
// operation requires identity.
func TokenExtractor(config ...Config) router.MiddlewareFunc {
	cfg := configDefault(config...)
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			if cfg.Filter != nil && cfg.Filter(ctx) {
				return ctx.Next()
			}

			header := ctx.GetString(cfg.HeaderKey, "")
			scheme := cfg.AuthScheme + " "

			if len(header) > len(scheme) && strings.EqualFold(header[:len(scheme)], scheme) {
				ctx.Locals(cfg.TokenKey, strings.TrimSpace(header[len(scheme):]))
			}

			return cfg.SuccessHandler(ctx)
		}
	}
}

// UserExtractor requires a candidate token, verifies it, and resolves the
// subject against the credential store. Every failure short-circuits with a
// 401 body; on success the user is stored under ContextKey for downstream
// handlers.
func UserExtractor(config ...Config) router.MiddlewareFunc {
	cfg := configDefault(config...)

	if cfg.Verifier == nil {
		panic("BLOGLIST: tokenware configuration: Verifier is required")
	}
	if cfg.Users == nil {
		panic("BLOGLIST: tokenware configuration: Users is required")
	}

	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			if cfg.Filter != nil && cfg.Filter(ctx) {
				return ctx.Next()
			}

			raw := ctx.Locals(cfg.TokenKey)
			token, ok := raw.(string)
			if raw == nil || !ok || token == "" {
				return cfg.ErrorHandler(ctx, bloglist.ErrMissingToken)
			}

			claims, err := cfg.Verifier.Verify(token)
			if err != nil {
				// the literal body does not distinguish malformed from
				// subject-less tokens
				return cfg.ErrorHandler(ctx, bloglist.ErrInvalidToken)
			}

			user, err := cfg.Users.GetByID(ctx.Context(), claims.UserID())
			if err != nil {
				if errors.IsNotFound(err) {
					return cfg.ErrorHandler(ctx, bloglist.ErrInvalidUser)
				}
				return cfg.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryInternal, "failed to resolve user"))
			}

			ctx.Locals(cfg.ContextKey, user)

			return cfg.SuccessHandler(ctx)
		}
	}
}

func configDefault(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(ctx router.Context) error {
			return ctx.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = DefaultErrorHandler
	}

	if cfg.HeaderKey == "" {
		cfg.HeaderKey = router.HeaderAuthorization
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	if cfg.TokenKey == "" {
		cfg.TokenKey = "token"
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}

	return cfg
}

// DefaultErrorHandler renders auth failures as the JSON error objects the
// API contract promises and hides everything else behind a generic 500.
func DefaultErrorHandler(ctx router.Context, err error) error {
	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.Category == errors.CategoryAuth {
		return ctx.JSON(richErr.Code, map[string]string{
			"error": richErr.Message,
		})
	}

	return ctx.Status(router.StatusInternalServerError).SendString("internal server error")
}
