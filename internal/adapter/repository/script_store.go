package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/lexigrad/lexigrad/internal/entity"
	"github.com/lexigrad/lexigrad/internal/repository"
)

// DefaultScriptProgressKey is the storage key for the alphabet trainer's
// progress blob.
const DefaultScriptProgressKey = "alphabet_progress"

type scriptProgressStore struct {
	kv     repository.KV
	key    string
	logger logrus.FieldLogger
}

// NewScriptProgressStore builds a ScriptProgressStore persisting the
// character map as one JSON blob under key.
func NewScriptProgressStore(kv repository.KV, key string, logger logrus.FieldLogger) repository.ScriptProgressStore {
	if key == "" {
		key = DefaultScriptProgressKey
	}
	return &scriptProgressStore{kv: kv, key: key, logger: logger}
}

func (s *scriptProgressStore) Load(ctx context.Context) (entity.ScriptProgress, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return entity.ScriptProgress{}, nil
		}
		return nil, fmt.Errorf("load script progress: %w", err)
	}

	var progress entity.ScriptProgress
	if err := json.Unmarshal(raw, &progress); err != nil {
		s.logger.WithError(err).WithField("key", s.key).Warn("discarding corrupt script progress blob")
		return entity.ScriptProgress{}, nil
	}
	if progress == nil {
		progress = entity.ScriptProgress{}
	}
	return progress, nil
}

func (s *scriptProgressStore) Save(ctx context.Context, progress entity.ScriptProgress) error {
	raw, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("encode script progress: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("save script progress: %w", err)
	}
	return nil
}

func (s *scriptProgressStore) Upsert(ctx context.Context, key entity.ScriptKey, state entity.ReviewState) (entity.ScriptProgress, error) {
	progress, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	progress[key.Encode()] = state
	if err := s.Save(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

func (s *scriptProgressStore) ResetTab(ctx context.Context, language entity.Language, tabID string) (entity.ScriptProgress, error) {
	progress, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	for encoded := range progress {
		key, ok := entity.ParseScriptKey(encoded)
		if !ok {
			continue
		}
		if key.Language == language && key.TabID == tabID {
			delete(progress, encoded)
		}
	}
	if err := s.Save(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}
