package record

import (
	"context"

	"evodex/pkg/models"
)

// Store holds at most one record per name. Put overwrites unconditionally.
type Store interface {
	Get(ctx context.Context, name string) (*models.User, error)
	Put(ctx context.Context, u models.User) error
	Ping(ctx context.Context) error
}
