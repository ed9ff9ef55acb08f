package bloglist

// StaticConfig is a plain-values Config implementation, handy for tests and
// for binaries that load settings through their own config layer.
type StaticConfig struct {
	SigningKey      string
	SigningMethod   string
	ContextKey      string
	TokenKey        string
	TokenExpiration int
	AuthScheme      string
	Issuer          string
	Audience        []string
}

var _ Config = StaticConfig{}

func (c StaticConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c StaticConfig) GetSigningMethod() string {
	if c.SigningMethod == "" {
		return "HS256"
	}
	return c.SigningMethod
}

func (c StaticConfig) GetContextKey() string {
	if c.ContextKey == "" {
		return "user"
	}
	return c.ContextKey
}

func (c StaticConfig) GetTokenKey() string {
	if c.TokenKey == "" {
		return "token"
	}
	return c.TokenKey
}

func (c StaticConfig) GetTokenExpiration() int {
	return c.TokenExpiration
}

func (c StaticConfig) GetAuthScheme() string {
	if c.AuthScheme == "" {
		return "Bearer"
	}
	return c.AuthScheme
}

func (c StaticConfig) GetIssuer() string {
	return c.Issuer
}

func (c StaticConfig) GetAudience() []string {
	return c.Audience
}
