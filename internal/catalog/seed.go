package catalog

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/danielcarreno/foodrush-backend/pkg/db/models"
	"github.com/danielcarreno/foodrush-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Seeder loads the fixture menus into the products table exactly once.
type Seeder struct {
	tx   txRunner
	repo *ProductRepository
	logg *logger.Logger
}

// NewSeeder builds a catalog seeder.
func NewSeeder(tx txRunner, repo *ProductRepository, logg *logger.Logger) (*Seeder, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Seeder{tx: tx, repo: repo, logg: logg}, nil
}

// SeedProducts inserts every fixture menu item. A non-empty products table
// means a previous run already seeded, so the call is a no-op.
func (s *Seeder) SeedProducts(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting products: %w", err)
	}
	if count > 0 {
		s.logg.Info(ctx, "products already seeded, skipping")
		return nil
	}

	products := fixtureProducts()

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&products).Error
	})
	if err != nil {
		return fmt.Errorf("seeding products: %w", err)
	}

	ctx = s.logg.WithField(ctx, "count", len(products))
	s.logg.Info(ctx, "products seeded from catalog fixture")
	return nil
}

func fixtureProducts() []models.Product {
	var products []models.Product
	for _, restaurant := range Restaurants() {
		for _, item := range restaurant.Menu {
			products = append(products, models.Product{
				ID:           item.ID,
				RestaurantID: restaurant.ID,
				Name:         item.Name,
				Description:  item.Description,
				Price:        item.Price,
				ImageURL:     item.ImageURL,
				Category:     item.Category,
				Available:    true,
			})
		}
	}
	return products
}
