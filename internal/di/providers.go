// Package di assembles the application graph with wire. The providers here
// are the only place that decides between production and development
// implementations (SMTP vs log dispatcher, real vs disabled Google).
package di

import (
	"context"

	"go.uber.org/zap"

	"gather/config"
	"gather/internal/auth"
	"gather/internal/category"
	"gather/internal/email"
	"gather/internal/oauth"
	"gather/internal/user"
	"gather/pkg/jwt"
)

// App bundles everything cmd/server mounts on the router.
type App struct {
	Logger          *zap.Logger
	Tokens          *jwt.JWT
	Guard           *auth.Guard
	AuthHandler     *auth.Handler
	UserHandler     *user.Handler
	CategoryHandler *category.Handler
}

func ProvideApp(
	logger *zap.Logger,
	tokens *jwt.JWT,
	guard *auth.Guard,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	categoryHandler *category.Handler,
) *App {
	return &App{
		Logger:          logger,
		Tokens:          tokens,
		Guard:           guard,
		AuthHandler:     authHandler,
		UserHandler:     userHandler,
		CategoryHandler: categoryHandler,
	}
}

func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Production() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func ProvideJWT(cfg *config.Config) *jwt.JWT {
	return jwt.NewJWT(cfg.JWTSecret)
}

func ProvideDispatcher(cfg *config.Config, logger *zap.Logger) email.Dispatcher {
	if cfg.SMTPHost == "" {
		return email.NewLogDispatcher(logger)
	}
	return email.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
}

func ProvideOAuthProvider(cfg *config.Config) (oauth.Provider, error) {
	if cfg.GoogleClientID == "" {
		return oauth.DisabledProvider{}, nil
	}
	return oauth.NewGoogleProvider(context.Background(), cfg.GoogleClientID)
}
