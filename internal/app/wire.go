//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/lexigrad/lexigrad/internal/infrastructure/config"
	"github.com/lexigrad/lexigrad/internal/infrastructure/logging"
	"github.com/lexigrad/lexigrad/internal/usecase"
	"github.com/lexigrad/lexigrad/internal/usecase/backup"
)

var configSet = wire.NewSet(
	config.Load,
)

var storageSet = wire.NewSet(
	provideKV,
	provideFlashcardStore,
	provideScriptProgressStore,
)

var usecaseSet = wire.NewSet(
	usecase.NewFlashcardUsecase,
	usecase.NewScriptUsecase,
	backup.NewService,
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, func(), error) {
	wire.Build(
		configSet,
		logging.NewLogger,
		storageSet,
		usecaseSet,
		wire.Struct(new(Container), "Config", "Logger", "Flashcards", "Scripts", "Backup"),
	)
	return nil, nil, nil
}
