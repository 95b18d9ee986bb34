package cron

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/danielcarreno/foodrush-backend/internal/cart"
	"github.com/danielcarreno/foodrush-backend/pkg/logger"
)

const defaultCartRetention = 24 * time.Hour

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CartCleanupJob reaps superseded carts. The active cart is always the
// newest per customer, so older carts are unreachable and only accumulate.
type CartCleanupJob struct {
	tx        txRunner
	repo      *cart.Repository
	logg      *logger.Logger
	retention time.Duration
	now       func() time.Time
}

// NewCartCleanupJob builds the cleanup job.
func NewCartCleanupJob(tx txRunner, repo *cart.Repository, logg *logger.Logger, retention time.Duration) (*CartCleanupJob, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if retention <= 0 {
		retention = defaultCartRetention
	}
	return &CartCleanupJob{tx: tx, repo: repo, logg: logg, retention: retention, now: time.Now}, nil
}

func (j *CartCleanupJob) Name() string { return "cart_cleanup" }

// Run deletes each superseded cart and its items in its own transaction so
// a single bad row cannot wedge the sweep.
func (j *CartCleanupJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.retention)
	superseded, err := j.repo.FindSupersededCarts(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("finding superseded carts: %w", err)
	}

	var errs error
	removed := 0
	for _, stale := range superseded {
		cartID := stale.ID
		err := j.tx.WithTx(ctx, func(tx *gorm.DB) error {
			repo := j.repo.WithTx(tx)
			if err := repo.DeleteItemsByCart(ctx, cartID); err != nil {
				return err
			}
			return repo.DeleteCart(ctx, cartID)
		})
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("cart %s: %w", cartID, err))
			continue
		}
		removed++
	}

	if removed > 0 {
		j.logg.Info(j.logg.WithField(ctx, "removed", removed), "superseded carts removed")
	}
	return errs
}
