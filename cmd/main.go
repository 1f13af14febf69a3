package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-manager/internal/auth"
	"github.com/ukydev/fleet-manager/internal/config"
	"github.com/ukydev/fleet-manager/internal/db"
	"github.com/ukydev/fleet-manager/internal/events"
	"github.com/ukydev/fleet-manager/internal/handlers"
	"github.com/ukydev/fleet-manager/internal/logger"
	"github.com/ukydev/fleet-manager/internal/service"
	"github.com/ukydev/fleet-manager/internal/storage"
)

func main() {
	cfg := config.Load()
	logger.Setup(cfg.Log.Level, cfg.Log.File)
	gin.SetMode(cfg.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.WithError(err).Fatal("Server stopped with error")
	}
	log.Info("Server stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Database.Timeout)
	store, err := db.Connect(connectCtx, cfg.Database.URL, cfg.Database.Name)
	cancel()
	if err != nil {
		return fmt.Errorf("connect to MongoDB: %w", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.WithError(err).Warn("Failed to close MongoDB client")
		}
	}()
	log.WithField("database", cfg.Database.Name).Info("Connected to MongoDB")

	authService, err := newAuthService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("init auth: %w", err)
	}

	publisher := newPublisher(cfg.MQTT)
	defer publisher.Close()

	svc := service.New(store, cfg.Collections, authService, serviceOptions(cfg, publisher)...)
	seedCtx, cancel := context.WithTimeout(ctx, cfg.Database.Timeout)
	err = seedAdmin(seedCtx, svc, cfg.Auth)
	cancel()
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	router := handlers.NewRouter(svc, authService, routerOptions(cfg))

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{
			"port":          cfg.Server.Port,
			"auth_required": cfg.Auth.Required,
		}).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newAuthService signs tokens with JWT_SECRET. Without one, which is only allowed
// while authentication is optional, a per-process key is generated.
func newAuthService(cfg config.AuthConfig) (*auth.Service, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		generated, err := config.EphemeralSecret()
		if err != nil {
			return nil, err
		}
		secret = generated
		log.Warn("JWT_SECRET not set, tokens are signed with a per-process key")
	}
	return auth.NewService(secret, cfg.Expiry)
}

// seedAdmin makes sure the bootstrap admin from ADMIN_EMAIL exists.
func seedAdmin(ctx context.Context, svc *service.Service, cfg config.AuthConfig) error {
	if cfg.AdminEmail == "" {
		if cfg.Required {
			log.Warn("AUTH_REQUIRED is set without ADMIN_EMAIL, no bootstrap admin will be seeded")
		}
		return nil
	}
	created, err := svc.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return err
	}
	entry := log.WithField("email", cfg.AdminEmail)
	if created {
		entry.Info("Bootstrap admin created")
	} else {
		entry.Info("Bootstrap admin verified")
	}
	return nil
}

// newPublisher connects to MQTT when a broker is configured. A broker that cannot
// be reached is logged and events are dropped.
func newPublisher(cfg events.MQTTConfig) events.Publisher {
	if cfg.BrokerURL == "" {
		return events.NopPublisher{}
	}
	publisher, err := events.NewMQTTPublisher(cfg)
	if err != nil {
		log.WithError(err).Warn("MQTT unavailable, domain events disabled")
		return events.NopPublisher{}
	}
	log.WithField("broker", cfg.BrokerURL).Info("Publishing domain events to MQTT")
	return publisher
}

func serviceOptions(cfg *config.Config, publisher events.Publisher) []service.Option {
	opts := []service.Option{service.WithPublisher(publisher)}
	if cfg.Cloudinary.URL == "" {
		return opts
	}
	mirror, err := storage.NewCloudinaryMirror(cfg.Cloudinary.URL, cfg.Cloudinary.Folder)
	if err != nil {
		log.WithError(err).Warn("Cloudinary mirror disabled")
		return opts
	}
	return append(opts, service.WithMirror(mirror))
}

func routerOptions(cfg *config.Config) handlers.Options {
	return handlers.Options{
		CORSOrigins:        cfg.Server.CORSOrigins,
		AuthRequired:       cfg.Auth.Required,
		RateLimitRequests:  cfg.RateLimit.Requests,
		RateLimitWindowSec: cfg.RateLimit.WindowSeconds,
	}
}
