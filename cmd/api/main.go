// @title                       Blog API
// @version                     1.0
// @description                 Accounts, session tokens and game blogs with comments.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/letsgrowesports/blog-api/internal/api"
	"github.com/letsgrowesports/blog-api/internal/api/handler"
	"github.com/letsgrowesports/blog-api/internal/core/service"
	dbmongo "github.com/letsgrowesports/blog-api/internal/infrastructure/db/mongo"
	dbredis "github.com/letsgrowesports/blog-api/internal/infrastructure/db/redis"
	"github.com/letsgrowesports/blog-api/internal/infrastructure/queue"
	"github.com/letsgrowesports/blog-api/internal/pkg/config"
	"github.com/letsgrowesports/blog-api/pkg/logger"
)

const serviceName = "blog-api"

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoClient, db, err := dbmongo.Connect(ctx, dbmongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := dbredis.Connect(ctx, dbredis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	accounts := dbmongo.NewAccountRepository(db)
	blogs := dbmongo.NewBlogRepository(db)
	comments := dbmongo.NewCommentRepository(db)
	if err := dbmongo.EnsureIndexes(ctx, accounts, blogs, comments); err != nil {
		return err
	}

	// Workers outlive ctx so in-flight hashes finish while the server drains.
	poolCtx, stopPool := context.WithCancel(context.Background())
	pool := queue.NewPool(cfg.HashWorkers, log)
	pool.Start(poolCtx)
	defer func() {
		stopPool()
		pool.Wait()
	}()

	credentials := service.NewCredentialService(service.CredentialConfig{
		Secret: []byte(cfg.JWTSecret),
		Runner: pool,
	})
	authService := service.NewAuthService(accounts, credentials, log)
	blogService := service.NewBlogService(blogs, comments, accounts, dbredis.NewBlogCache(rdb, cfg.Redis.CacheTTL), log)

	e := api.NewRouter(api.Dependencies{
		Log:    log,
		Auth:   authService,
		Blogs:  blogService,
		Access: service.NewAccessControl(credentials, log),
		Checks: map[string]handler.DependencyCheck{
			"mongodb": handler.MongoCheck(db),
			"redis":   handler.RedisCheck(rdb),
		},
		CORSOrigins:   cfg.HTTP.CORSOrigins,
		AuthRateLimit: cfg.HTTP.AuthRateLimit,
		AuthRateBurst: cfg.HTTP.AuthRateBurst,
		Registerer:    prometheus.DefaultRegisterer,
		Gatherer:      prometheus.DefaultGatherer,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
