// Package cleanup periodically hard-deletes reference rows that are
// soft-deleted and no longer used by any event.
package cleanup

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Target is a reference service with an unused-row sweep.
type Target interface {
	Name() string
	DeleteUnused(ctx context.Context) (int64, error)
}

// RunOnce sweeps every target, continuing past failures. The map holds the
// removed row count per table.
func RunOnce(ctx context.Context, targets ...Target) (map[string]int64, error) {
	removed := make(map[string]int64, len(targets))
	var errs []error
	for _, t := range targets {
		n, err := t.DeleteUnused(ctx)
		if err != nil {
			log.Printf("[CLEANUP] %s: %v", t.Name(), err)
			errs = append(errs, fmt.Errorf("%s: %w", t.Name(), err))
			continue
		}
		removed[t.Name()] = n
		if n > 0 {
			log.Printf("[CLEANUP] %s: removed %d unused rows", t.Name(), n)
		}
	}
	return removed, errors.Join(errs...)
}

// Start schedules RunOnce. An empty schedule disables the job and returns nil.
func Start(schedule string, targets ...Target) (*cron.Cron, error) {
	if schedule == "" {
		log.Println("[CLEANUP] REFERENCE_CLEANUP_CRON not set, scheduler disabled")
		return nil, nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
		defer cancel()
		_, _ = RunOnce(ctx, targets...)
	})
	if err != nil {
		return nil, fmt.Errorf("cleanup schedule %q: %w", schedule, err)
	}

	log.Printf("[CLEANUP] started schedule=%q tables=%d", schedule, len(targets))
	c.Start()
	return c, nil
}
