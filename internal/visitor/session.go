package visitor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"evodex/internal/record"
	"evodex/pkg/models"
)

// OpState tracks the outcome of the latest remote save or load.
type OpState int

const (
	OpIdle OpState = iota
	OpInFlight
	OpSuccess
	OpNotFound
	OpValidationError
	OpError
)

func (s OpState) String() string {
	switch s {
	case OpIdle:
		return "idle"
	case OpInFlight:
		return "in-flight"
	case OpSuccess:
		return "success"
	case OpNotFound:
		return "not-found"
	case OpValidationError:
		return "validation-error"
	case OpError:
		return "generic-error"
	default:
		return "unknown"
	}
}

// OpStatus is the state plus the error of the latest attempt, if any.
type OpStatus struct {
	State OpState
	Err   error
}

type remoteStore interface {
	Save(ctx context.Context, name string, caught []string) (*models.User, error)
	Load(ctx context.Context, name string) (*models.User, error)
}

// Session is the visitor's working state: a name and a caught set, kept
// in sync with local storage and saved to or loaded from the remote
// endpoint on demand. Remote calls are not serialised; the last response
// to arrive wins.
type Session struct {
	local  *Local
	remote remoteStore

	mu     sync.Mutex
	name   string
	caught []string
	save   OpStatus
	load   OpStatus
}

// NewSession loads the local record once and returns a session over it.
func NewSession(local *Local, remote remoteStore) (*Session, error) {
	u, err := local.Load()
	if err != nil {
		return nil, err
	}
	return &Session{local: local, remote: remote, name: u.NameSlug, caught: u.CaughtFamilyIDs}, nil
}

func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func (s *Session) SetName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(name, s.caught)
}

// SetCaught marks familyID as caught or releases it.
func (s *Session) SetCaught(familyID string, caught bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, id := range s.caught {
		if id == familyID {
			idx = i
			break
		}
	}
	var next []string
	switch {
	case caught && idx < 0:
		next = append(append([]string{}, s.caught...), familyID)
	case !caught && idx >= 0:
		next = make([]string, 0, len(s.caught)-1)
		next = append(next, s.caught[:idx]...)
		next = append(next, s.caught[idx+1:]...)
	default:
		return nil
	}
	return s.commitLocked(s.name, next)
}

func (s *Session) IsCaught(familyID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.caught {
		if id == familyID {
			return true
		}
	}
	return false
}

// Caught returns the caught family IDs in the order they were caught.
func (s *Session) Caught() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.caught...)
}

func (s *Session) SaveStatus() OpStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save
}

func (s *Session) LoadStatus() OpStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load
}

// SaveRemote stores the current caught set under name.
func (s *Session) SaveRemote(ctx context.Context, name string) error {
	s.mu.Lock()
	s.save = OpStatus{State: OpInFlight}
	caught := append([]string{}, s.caught...)
	s.mu.Unlock()

	_, err := s.remote.Save(ctx, name, caught)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.save = statusFor(err)
	return err
}

// LoadRemote replaces the name and caught set with the remote record.
// On any failure local state is left as it was.
func (s *Session) LoadRemote(ctx context.Context, name string) error {
	s.mu.Lock()
	s.load = OpStatus{State: OpInFlight}
	s.mu.Unlock()

	u, err := s.remote.Load(ctx, name)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.load = statusFor(err)
		return err
	}
	err = s.commitLocked(u.NameSlug, models.UniqueIDs(u.CaughtFamilyIDs))
	s.load = statusFor(err)
	return err
}

// Close flushes pending local writes.
func (s *Session) Close() error {
	return s.local.Close()
}

// commitLocked hands the new state to local storage and adopts it only
// if that succeeds.
func (s *Session) commitLocked(name string, caught []string) error {
	err := s.local.Save(models.User{
		NameSlug:        name,
		Version:         models.CurrentUserVersion,
		CaughtFamilyIDs: caught,
	})
	if err != nil {
		return fmt.Errorf("persist local record: %w", err)
	}
	s.name = name
	s.caught = caught
	return nil
}

func statusFor(err error) OpStatus {
	switch {
	case err == nil:
		return OpStatus{State: OpSuccess}
	case errors.Is(err, record.ErrNotFound):
		return OpStatus{State: OpNotFound, Err: err}
	case record.IsValidation(err):
		return OpStatus{State: OpValidationError, Err: err}
	default:
		return OpStatus{State: OpError, Err: err}
	}
}
