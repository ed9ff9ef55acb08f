package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-persistence-bun"
	"github.com/goliatone/go-router"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	bloglist "github.com/goliatone/go-bloglist"
	"github.com/goliatone/go-bloglist/middleware/tokenware"
)

// persistenceConfig adapts the viper-loaded settings to the persistence
// client.
type persistenceConfig struct {
	dsn   string
	debug bool
}

func (c persistenceConfig) GetDSN() string {
	return c.dsn
}

func (c persistenceConfig) GetServer() string {
	return c.dsn
}

func (c persistenceConfig) GetPingTimeout() time.Duration {
	return 5 * time.Second
}

func (c persistenceConfig) GetOtelIdentifier() string {
	return ""
}

func (c persistenceConfig) GetDriver() string {
	return sqliteshim.ShimName
}

func (c persistenceConfig) GetDebug() bool {
	return c.debug
}

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Info),
		glog.WithName("bloglist"),
		glog.WithAddSource(false),
	)

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.Secret == "" {
		log.Fatal("SECRET is required to sign identity tokens")
	}

	ctx := context.Background()

	db, err := sql.Open(sqliteshim.ShimName, cfg.DSN)
	if err != nil {
		log.Fatal(err)
	}

	persistence.RegisterModel((*bloglist.User)(nil))
	persistence.RegisterModel((*bloglist.Blog)(nil))

	client, err := persistence.New(persistenceConfig{
		dsn:   cfg.DSN,
		debug: cfg.AppEnv == "local",
	}, db, sqlitedialect.New())
	if err != nil {
		log.Fatal(err)
	}

	client.SetLogger(lgr.GetLogger("persistence"))

	if err := client.Migrate(ctx); err != nil {
		log.Fatal(err)
	}

	repo := bloglist.NewRepositoryManager(client.DB())
	repo.MustValidate()

	authCfg := bloglist.StaticConfig{
		SigningKey:      cfg.Secret,
		TokenExpiration: cfg.TokenExpiration,
	}

	tokens := bloglist.NewTokenServiceFromConfig(authCfg, lgr.GetLogger("tokens"))

	auther := bloglist.NewAuthenticator(repo.Users(), tokens).
		WithLogger(lgr.GetLogger("auth"))

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:  true,
			StrictRouting: false,
		}))
	})

	r := srv.Router()
	r.WithLogger(lgr.GetLogger("router"))

	twCfg := tokenware.Config{
		AuthScheme: authCfg.GetAuthScheme(),
		TokenKey:   authCfg.GetTokenKey(),
		ContextKey: authCfg.GetContextKey(),
		Verifier:   tokens,
		Users:      repo.Users(),
	}

	// extraction runs on every request; resolution only where routes opt in
	r.Use(tokenware.TokenExtractor(twCfg))
	protected := tokenware.UserExtractor(twCfg)

	blogs := bloglist.NewBlogsController(
		bloglist.WithBlogsRepo(repo),
		bloglist.WithBlogsLogger(lgr.GetLogger("blogs")),
	)
	users := bloglist.NewUsersController(
		bloglist.WithUsersRepo(repo),
		bloglist.WithUsersLogger(lgr.GetLogger("users")),
	)
	login := bloglist.NewLoginController(
		bloglist.WithLoginAuthenticator(auther),
	)

	bloglist.RegisterRoutes(r, blogs, users, login, protected)

	srv.Serve(":" + cfg.Port)

	WaitExitSignal()
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
