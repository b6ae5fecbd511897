package storage

import (
	"context"
	"errors"

	"weather-history/internal/models"
)

var ErrNotFound = errors.New("record not found")

// Store persists searches and the weather snapshots taken for them.
type Store interface {
	// CreateSearch inserts q and its first snapshot atomically, filling in
	// ids and creation times.
	CreateSearch(ctx context.Context, q *models.SearchQuery, snap *models.Snapshot) error
	GetSearch(ctx context.Context, id int64) (*models.SearchQuery, error)
	ListSearches(ctx context.Context, limit int) ([]models.SearchQuery, error)
	// UpdateSearch rewrites the editable columns of q and appends snap.
	UpdateSearch(ctx context.Context, q *models.SearchQuery, snap *models.Snapshot) error
	AppendSnapshot(ctx context.Context, snap *models.Snapshot) error
	LatestSnapshot(ctx context.Context, queryID int64) (*models.Snapshot, error)
	DeleteSearch(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
	Close() error
}
