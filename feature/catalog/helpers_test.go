package catalog

import (
	"fmt"
	"testing"
	"time"

	"catalog-aggregator/core/database"
	"catalog-aggregator/core/validator"
	"catalog-aggregator/feature/catalog/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var baseTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, models.All()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestService(db *gorm.DB) *QueryService {
	return NewQueryService(db, validator.New(), zap.NewNop())
}

// seedProducts inserts n products; product i has price i+1 and a provider
// timestamp i minutes after baseTime.
func seedProducts(t *testing.T, db *gorm.DB, n int) []models.Product {
	t.Helper()
	out := make([]models.Product, 0, n)
	for i := 0; i < n; i++ {
		p := models.Product{
			ExternalID:   fmt.Sprintf("ext-%03d", i),
			ProviderID:   "provider1",
			Name:         fmt.Sprintf("Product %03d", i),
			Price:        decimal.NewFromInt(int64(i + 1)),
			Currency:     "USD",
			Availability: i%2 == 0,
			LastUpdated:  baseTime.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&p).Error)
		out = append(out, p)
	}
	return out
}

func ids(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}
