package health

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"catalog-aggregator/core/database"
	"catalog-aggregator/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupDB(t *testing.T, migrate bool) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	if migrate {
		require.NoError(t, database.Migrate(db, models.All()...))
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestService_Live(t *testing.T) {
	s := NewService(nil)
	start := s.startedAt
	s.now = func() time.Time { return start.Add(90 * time.Second) }

	live := s.Live()
	assert.Equal(t, StatusOK, live.Status)
	assert.Equal(t, int64(90), live.UptimeSeconds)
}

func TestService_Ready(t *testing.T) {
	t.Run("Migrated database", func(t *testing.T) {
		r := NewService(setupDB(t, true)).Ready(context.Background())
		assert.True(t, r.Ready())
		assert.Equal(t, StatusOK, r.Database)
		assert.Empty(t, r.MissingColumns)
	})

	t.Run("Outdated schema", func(t *testing.T) {
		db := setupDB(t, true)
		require.NoError(t, db.Migrator().DropColumn(&models.Product{}, "description"))

		r := NewService(db).Ready(context.Background())
		assert.False(t, r.Ready())
		assert.Equal(t, StatusOK, r.Database)
		assert.Equal(t, map[string][]string{"products": {"description"}}, r.MissingColumns)
	})

	t.Run("No database", func(t *testing.T) {
		r := NewService(nil).Ready(context.Background())
		assert.False(t, r.Ready())
		assert.Equal(t, "database not configured", r.Error)
	})
}

func TestHandler(t *testing.T) {
	app := fiber.New()
	require.NoError(t, NewFeature(setupDB(t, false), zap.NewNop()).Load(app))

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/v1/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)

	var body Readiness
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, StatusUnavailable, body.Status)
	assert.Len(t, body.MissingColumns["products"], len(models.RequiredColumns()["products"]))
}
