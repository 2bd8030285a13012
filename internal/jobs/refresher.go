package jobs

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"jobmetrics/internal/cache"
	"jobmetrics/internal/models"
)

// Computer produces a fresh metrics bundle.
type Computer interface {
	Compute(ctx context.Context) (*models.Metrics, error)
}

// Refresher recomputes the metrics bundle on an interval and stores it in the
// snapshot cache so requests are served without touching the database.
type Refresher struct {
	svc      Computer
	snaps    *cache.Snapshots
	interval time.Duration
	timeout  time.Duration
}

// NewRefresher creates a new refresher.
func NewRefresher(svc Computer, snaps *cache.Snapshots, interval time.Duration) *Refresher {
	return &Refresher{
		svc:      svc,
		snaps:    snaps,
		interval: interval,
		timeout:  2 * time.Minute,
	}
}

// Start begins the background refresh loop. It returns when ctx is done.
func (r *Refresher) Start(ctx context.Context) {
	log.Printf("Metrics refresher started (interval: %v)", r.interval)

	// Run immediately on start
	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Metrics refresher stopped")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

// refresh computes one bundle. On failure the previously stored bundle is
// left in place.
func (r *Refresher) refresh(ctx context.Context) error {
	runID := uuid.NewString()
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	m, err := r.svc.Compute(ctx)
	if err != nil {
		log.Printf("Metrics refresher: run %s failed: %v", runID, err)
		return err
	}

	body, err := json.Marshal(m)
	if err != nil {
		log.Printf("Metrics refresher: run %s: failed to encode: %v", runID, err)
		return err
	}

	if err := r.snaps.Save(body); err != nil {
		log.Printf("Metrics refresher: run %s: failed to store: %v", runID, err)
		return err
	}

	log.Printf("Metrics refresher: run %s stored %d postings", runID, m.Totals.Jobs90d)
	return nil
}
