package visitor

import (
	"encoding/json"
	"fmt"
	"time"

	"evodex/pkg/logger"
	"evodex/pkg/models"
)

// CurrentUserKey is the storage key holding the visitor's record.
const CurrentUserKey = "currentUser"

// Local is the on-device copy of the visitor's record.
type Local struct {
	storage   Storage
	persister *Persister
}

func NewLocal(storage Storage, interval time.Duration, log *logger.Logger) *Local {
	return &Local{
		storage:   storage,
		persister: NewPersister(storage, CurrentUserKey, interval, log),
	}
}

// Load reads the stored record. A missing record yields an empty one.
func (l *Local) Load() (models.User, error) {
	empty := models.User{Version: models.CurrentUserVersion, CaughtFamilyIDs: []string{}}

	raw, ok, err := l.storage.GetItem(CurrentUserKey)
	if err != nil {
		return empty, err
	}
	if !ok {
		return empty, nil
	}

	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return empty, fmt.Errorf("decode %s: %w", CurrentUserKey, err)
	}
	if u.CaughtFamilyIDs == nil {
		u.CaughtFamilyIDs = []string{}
	}
	l.persister.Prime([]byte(raw))
	return u, nil
}

func (l *Local) Save(u models.User) error {
	return l.persister.Save(u)
}

func (l *Local) Flush() error {
	return l.persister.Flush()
}

func (l *Local) Close() error {
	return l.persister.Close()
}
