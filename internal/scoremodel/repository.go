package scoremodel

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is a published model. One record is kept per model name; publishing
// again under the same name replaces it.
type Record struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	Model       *Model    `json:"model"`
	PublishedAt time.Time `json:"published_at"`
}

// NewRecord wraps a model for publishing.
func NewRecord(m *Model) *Record {
	return &Record{
		ID:          uuid.New(),
		Name:        m.Name,
		Version:     m.Version,
		Model:       m,
		PublishedAt: time.Now().UTC(),
	}
}

type Repository interface {
	Save(ctx context.Context, rec *Record) error
	Get(ctx context.Context, name string) (*Record, error)
	List(ctx context.Context) ([]*Record, error)
}
