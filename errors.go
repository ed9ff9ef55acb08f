package bloglist

import (
	"github.com/goliatone/go-errors"
)

const (
	TextCodeMissingToken        = "auth_missing_token"
	TextCodeInvalidToken        = "auth_invalid_token"
	TextCodeInvalidUser         = "auth_invalid_user"
	TextCodeTokenExpired        = "auth_token_expired"
	TextCodeTokenMissingSubject = "auth_token_missing_subject"
	TextCodeInvalidCredentials  = "auth_invalid_credentials"
	TextCodeDeleteNotAllowed    = "blog_delete_not_allowed"
	TextCodeBlogNotFound        = "blog_not_found"
)

// ErrMissingToken is returned when a protected operation runs without an
// extracted bearer token.
var ErrMissingToken = errors.New("missing token", errors.CategoryAuth).
	WithTextCode(TextCodeMissingToken).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidToken is returned when a bearer token fails verification or
// carries no subject.
var ErrInvalidToken = errors.New("invalid token", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidToken).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidUser is returned when a verified token points at a user that no
// longer exists in the store.
var ErrInvalidUser = errors.New("invalid user", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidUser).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned when a token cannot be parsed or its
// signature does not verify against the configured secret.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidToken).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when expiration is configured and the token is
// past it.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMissingSubject is returned when a token verifies but embeds no
// subject identifier.
var ErrTokenMissingSubject = errors.New("token has no subject", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMissingSubject).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidCredentials is returned on login when either the username or the
// password does not check out. The message is shared on purpose so callers
// cannot probe which usernames exist.
var ErrInvalidCredentials = errors.New("invalid username or password", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrDeleteNotAllowed is returned when an authenticated user tries to delete
// a blog they do not own.
var ErrDeleteNotAllowed = errors.New("not allowed to delete this blog", errors.CategoryAuthz).
	WithTextCode(TextCodeDeleteNotAllowed).
	WithCode(errors.CodeForbidden)

// ErrBlogNotFound is returned when a blog lookup misses. Kept distinct from
// ErrDeleteNotAllowed so a 404 outcome never masquerades as an ownership
// violation.
var ErrBlogNotFound = errors.New("blog not found", errors.CategoryNotFound).
	WithTextCode(TextCodeBlogNotFound).
	WithCode(errors.CodeNotFound)

// ErrNoEmptyString is the error hashing an empty password
var ErrNoEmptyString = errors.New("can't hash an empty string", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)

// ErrMismatchedHashAndPassword is the bcrypt mismatch error surfaced to callers
var ErrMismatchedHashAndPassword = errors.New("hash and password mismatch", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// NewValidationError wraps a validation message so the HTTP boundary can map
// it to a 400 whose body is the literal message.
func NewValidationError(msg string) *errors.Error {
	return errors.New(msg, errors.CategoryValidation).
		WithCode(errors.CodeBadRequest)
}

// IsValidation reports whether err carries the validation category.
func IsValidation(err error) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.Category == errors.CategoryValidation
}
