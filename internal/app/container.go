package app

import (
	"fmt"

	"github.com/sirupsen/logrus"

	adapter "github.com/lexigrad/lexigrad/internal/adapter/repository"
	"github.com/lexigrad/lexigrad/internal/infrastructure/config"
	"github.com/lexigrad/lexigrad/internal/infrastructure/storage"
	"github.com/lexigrad/lexigrad/internal/repository"
	"github.com/lexigrad/lexigrad/internal/usecase"
	"github.com/lexigrad/lexigrad/internal/usecase/backup"
)

// Container aggregates the application dependencies produced by Wire. It is
// the embedding surface for hosts that drive the review engine: construct it
// once, use the usecases, call the cleanup.
type Container struct {
	Config     *config.Config
	Logger     *logrus.Logger
	Flashcards usecase.FlashcardUsecase
	Scripts    usecase.ScriptUsecase
	Backup     *backup.Service
}

func provideKV(cfg *config.Config) (repository.KV, func(), error) {
	switch cfg.Storage.Driver {
	case "memory":
		return storage.NewMemoryKV(), func() {}, nil
	case "sqlite", "sqlite3", "postgres", "postgresql":
		return storage.OpenSQLKV(cfg.Storage.Driver, cfg.Storage.DSN)
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

func provideFlashcardStore(kv repository.KV, cfg *config.Config, logger *logrus.Logger) repository.FlashcardStore {
	return adapter.NewFlashcardStore(kv, cfg.Storage.FlashcardsKey, logger)
}

func provideScriptProgressStore(kv repository.KV, cfg *config.Config, logger *logrus.Logger) repository.ScriptProgressStore {
	return adapter.NewScriptProgressStore(kv, cfg.Storage.ScriptProgressKey, logger)
}
