package export

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Manifest records one run: its id, timing, the seasons it covered and every
// document it wrote.
type Manifest struct {
	RunID      string            `json:"run_id"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Seasons    []string          `json:"seasons"`
	Failed     map[string]string `json:"failed_seasons"`
	Documents  []string          `json:"documents"`
}

// NewManifest starts a manifest with a fresh run id.
func NewManifest(started time.Time) *Manifest {
	return &Manifest{
		RunID:     uuid.NewString(),
		StartedAt: started.UTC(),
		Seasons:   []string{},
		Failed:    map[string]string{},
		Documents: []string{},
	}
}

// Add records written documents.
func (m *Manifest) Add(keys ...string) { m.Documents = append(m.Documents, keys...) }

// Fail records a season that could not be processed.
func (m *Manifest) Fail(season string, err error) { m.Failed[season] = err.Error() }

// Manifest writes m under ManifestJSON with its finish time stamped.
func (e *Exporter) Manifest(ctx context.Context, m *Manifest, finished time.Time) error {
	if m == nil {
		return ErrNothingToExport
	}
	m.FinishedAt = finished.UTC()
	sort.Strings(m.Documents)
	return e.saveJSON(ctx, ManifestJSON, m)
}
