package record

import (
	"context"
	"errors"
	"fmt"
	"time"

	"evodex/internal/sync"
	"evodex/pkg/logger"
	"evodex/pkg/models"
)

// Publisher receives events after successful writes. *sync.Hub satisfies it.
type Publisher interface {
	BroadcastJSON(v any)
}

type Service struct {
	Store  Store
	Events Publisher
	Log    *logger.Logger
}

func NewService(store Store, events Publisher, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{Store: store, Events: events, Log: log}
}

func (s *Service) Get(ctx context.Context, name string) (*models.User, error) {
	return s.Store.Get(ctx, name)
}

// Put validates and stores the caught list under name, replacing any
// existing record. The returned record is read back from the store.
func (s *Service) Put(ctx context.Context, name string, caught []string) (*models.User, error) {
	if err := ValidateName(name, MinNameLen); err != nil {
		return nil, err
	}
	if caught == nil {
		return nil, &ValidationError{Field: "caughtFamilyIDs", Reason: "is required"}
	}
	for _, id := range caught {
		if id == "" {
			return nil, &ValidationError{Field: "caughtFamilyIDs", Reason: "must not contain empty IDs"}
		}
	}

	u := models.User{
		NameSlug:        name,
		Version:         models.CurrentUserVersion,
		CaughtFamilyIDs: models.UniqueIDs(caught),
	}
	if err := s.Store.Put(ctx, u); err != nil {
		return nil, err
	}

	stored, err := s.Store.Get(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("read back record %s: %w", name, err)
		}
		return nil, err
	}

	s.Log.Info("record saved", "name", name, "caught", len(stored.CaughtFamilyIDs))

	if s.Events != nil {
		go s.Events.BroadcastJSON(sync.RecordEvent{
			Type:        sync.RecordSavedEvent,
			NameSlug:    stored.NameSlug,
			Version:     stored.Version,
			CaughtCount: len(stored.CaughtFamilyIDs),
			At:          time.Now().UTC(),
		})
	}
	return stored, nil
}

// Ready reports whether the backing store is reachable.
func (s *Service) Ready(ctx context.Context) error {
	return s.Store.Ping(ctx)
}
