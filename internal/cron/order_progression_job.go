package cron

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/danielcarreno/foodrush-backend/internal/orders"
	"github.com/danielcarreno/foodrush-backend/pkg/logger"
)

const defaultProgressionAge = 20 * time.Second

// OrderProgressionJob advances non-terminal orders one lifecycle step once
// they have sat in their current status long enough. It replaces client-side
// timers so progress survives restarts.
type OrderProgressionJob struct {
	repo *orders.Repository
	logg *logger.Logger
	age  time.Duration
	now  func() time.Time
}

// NewOrderProgressionJob builds the progression job.
func NewOrderProgressionJob(repo *orders.Repository, logg *logger.Logger, age time.Duration) (*OrderProgressionJob, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if age <= 0 {
		age = defaultProgressionAge
	}
	return &OrderProgressionJob{repo: repo, logg: logg, age: age, now: time.Now}, nil
}

func (j *OrderProgressionJob) Name() string { return "order_progression" }

// Run advances every eligible order by one step. One failed order does not
// stop the rest.
func (j *OrderProgressionJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.age)
	stale, err := j.repo.FindStale(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("finding stale orders: %w", err)
	}

	var errs error
	advanced := 0
	for _, order := range stale {
		next, ok := order.Status.Next()
		if !ok {
			continue
		}
		if _, err := j.repo.UpdateStatus(ctx, order.ID, next); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("order %s: %w", order.ID, err))
			continue
		}
		advanced++
	}

	if advanced > 0 {
		j.logg.Info(j.logg.WithField(ctx, "advanced", advanced), "orders advanced")
	}
	return errs
}
