//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"gather/config"
	"gather/internal/auth"
	"gather/internal/category"
	"gather/internal/database"
	"gather/internal/user"
)

var Set = wire.NewSet(
	ProvideLogger,
	ProvideJWT,
	ProvideDispatcher,
	ProvideOAuthProvider,
	auth.NewRepository,
	auth.NewUseCase,
	auth.NewHandler,
	auth.NewGuard,
	user.NewRepository,
	user.NewService,
	user.NewHandler,
	category.NewService,
	category.NewHandler,
	ProvideApp,
)

func InitializeApp(cfg *config.Config, db *database.Database) (*App, error) {
	wire.Build(Set)
	return &App{}, nil
}
