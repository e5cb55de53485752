package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"catalog-aggregator/feature/aggregation/normalize"
	"catalog-aggregator/feature/aggregation/reconcile"
	"catalog-aggregator/feature/catalog/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func canonical(externalID, price string, available bool, lastUpdated time.Time) normalize.CanonicalProduct {
	desc := "desc " + externalID
	return normalize.CanonicalProduct{
		ExternalID:   externalID,
		Name:         "Name " + externalID,
		Description:  &desc,
		Price:        decimal.RequireFromString(price),
		Currency:     "USD",
		Availability: available,
		LastUpdated:  lastUpdated,
	}
}

func newCommitter(repo *Repository, now time.Time) *reconcile.Committer {
	return reconcile.NewCommitter(repo, reconcile.NewEngine(func() time.Time { return now }), zap.NewNop())
}

func countHistory(t *testing.T, db *gorm.DB) int64 {
	var n int64
	require.NoError(t, db.Model(&models.PriceHistoryEntry{}).Count(&n).Error)
	return n
}

func TestRepository_FindByNaturalKey(t *testing.T) {
	db := setupDB(t)
	repo := NewRepository(db)
	seeded := seedProducts(t, db, 1)

	got, err := repo.FindByNaturalKey(context.Background(), "ext-000", "provider1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, seeded[0].ID, got.ID)

	missing, err := repo.FindByNaturalKey(context.Background(), "ext-000", "provider2")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepository_Idempotence(t *testing.T) {
	db := setupDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	items := []normalize.CanonicalProduct{
		canonical("a", "10.50", true, baseTime),
		canonical("b", "20", false, baseTime),
	}

	first := newCommitter(repo, baseTime).Commit(ctx, "provider1", items)
	assert.Equal(t, 2, first.Created)

	var before []models.Product
	require.NoError(t, db.Order("external_id").Find(&before).Error)

	second := newCommitter(repo, baseTime.Add(time.Minute)).Commit(ctx, "provider1", items)
	assert.Equal(t, 2, second.Updated)
	assert.Equal(t, 0, second.PriceChanges)
	assert.Equal(t, int64(0), countHistory(t, db))

	var after []models.Product
	require.NoError(t, db.Order("external_id").Find(&after).Error)
	require.Len(t, after, 2)
	for i := range after {
		assert.Equal(t, before[i].ID, after[i].ID)
		assert.Equal(t, before[i].Name, after[i].Name)
		assert.Equal(t, before[i].Description, after[i].Description)
		assert.True(t, before[i].Price.Equal(after[i].Price))
		assert.Equal(t, before[i].Currency, after[i].Currency)
		assert.Equal(t, before[i].Availability, after[i].Availability)
		assert.True(t, before[i].LastUpdated.Equal(after[i].LastUpdated))
	}
}

func TestRepository_ChangeDetection(t *testing.T) {
	db := setupDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	newCommitter(repo, baseTime).Commit(ctx, "provider1", []normalize.CanonicalProduct{canonical("a", "89.99", true, baseTime)})

	changedAt := baseTime.Add(time.Hour)
	res := newCommitter(repo, changedAt).Commit(ctx, "provider1", []normalize.CanonicalProduct{canonical("a", "99.99", true, changedAt)})
	assert.Equal(t, 1, res.PriceChanges)
	require.Len(t, res.Events, 1)

	var p models.Product
	require.NoError(t, db.Preload("PriceHistory").Take(&p, "external_id = ?", "a").Error)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("99.99")))
	require.Len(t, p.PriceHistory, 1)
	assert.True(t, p.PriceHistory[0].OldPrice.Equal(decimal.RequireFromString("89.99")))
	assert.True(t, p.PriceHistory[0].NewPrice.Equal(decimal.RequireFromString("99.99")))
	assert.Equal(t, models.ChangeTypePriceChange, p.PriceHistory[0].ChangeType)
	assert.True(t, p.PriceHistory[0].ChangedAt.Equal(changedAt))
}

func TestRepository_NoChangeRefreshesLastUpdated(t *testing.T) {
	db := setupDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	newCommitter(repo, baseTime).Commit(ctx, "provider1", []normalize.CanonicalProduct{canonical("a", "5", true, baseTime)})

	later := baseTime.Add(2 * time.Hour)
	newCommitter(repo, later).Commit(ctx, "provider1", []normalize.CanonicalProduct{canonical("a", "5.00", false, later)})

	var p models.Product
	require.NoError(t, db.Take(&p, "external_id = ?", "a").Error)
	assert.True(t, p.LastUpdated.Equal(later))
	assert.False(t, p.Availability)
	assert.Equal(t, int64(0), countHistory(t, db))
}

func TestRepository_UpdateClearsDescription(t *testing.T) {
	db := setupDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	newCommitter(repo, baseTime).Commit(ctx, "provider1", []normalize.CanonicalProduct{canonical("a", "5", true, baseTime)})

	item := canonical("a", "5", true, baseTime)
	item.Description = nil
	newCommitter(repo, baseTime).Commit(ctx, "provider1", []normalize.CanonicalProduct{item})

	var p models.Product
	require.NoError(t, db.Take(&p, "external_id = ?", "a").Error)
	assert.Nil(t, p.Description)
}

func TestRepository_SameExternalIDAcrossProviders(t *testing.T) {
	db := setupDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	newCommitter(repo, baseTime).Commit(ctx, "provider1", []normalize.CanonicalProduct{canonical("shared", "1", true, baseTime)})
	newCommitter(repo, baseTime).Commit(ctx, "provider2", []normalize.CanonicalProduct{canonical("shared", "2", true, baseTime)})

	var n int64
	require.NoError(t, db.Model(&models.Product{}).Where("external_id = ?", "shared").Count(&n).Error)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, int64(0), countHistory(t, db))
}

func TestRepository_MarkStale(t *testing.T) {
	db := setupDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	seeded := seedProducts(t, db, 3)

	old := baseTime.Add(-time.Hour)
	require.NoError(t, db.Model(&models.Product{}).Where("id IN ?", ids(seeded[:2])).UpdateColumn("updated_at", old).Error)
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", seeded[2].ID).UpdateColumns(map[string]any{"updated_at": baseTime, "is_stale": true}).Error)

	marked, err := repo.MarkStale(ctx, baseTime.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(2), marked)

	var stale []models.Product
	require.NoError(t, db.Where("is_stale = ?", true).Find(&stale).Error)
	assert.ElementsMatch(t, ids(seeded[:2]), ids(stale))

	var p models.Product
	require.NoError(t, db.Take(&p, "id = ?", seeded[0].ID).Error)
	assert.True(t, p.UpdatedAt.Equal(old))

	again, err := repo.MarkStale(ctx, baseTime.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(0), again)
}

func TestRepository_UpdateKeepsStaleFlagUntilSweep(t *testing.T) {
	db := setupDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	newCommitter(repo, baseTime).Commit(ctx, "provider1", []normalize.CanonicalProduct{canonical("a", "5", true, baseTime)})
	require.NoError(t, db.Model(&models.Product{}).Where("external_id = ?", "a").UpdateColumn("is_stale", true).Error)

	newCommitter(repo, baseTime).Commit(ctx, "provider1", []normalize.CanonicalProduct{canonical("a", "5", true, baseTime)})

	var p models.Product
	require.NoError(t, db.Take(&p, "external_id = ?", "a").Error)
	assert.True(t, p.IsStale)

	_, err := repo.MarkStale(ctx, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	require.NoError(t, db.Take(&p, "external_id = ?", "a").Error)
	assert.False(t, p.IsStale)
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestRepository_Apply_RollsBackOnHistoryFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `products` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `price_history`").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	d := reconcile.Decide(&models.Product{
		ID:         "11111111-1111-1111-1111-111111111111",
		ExternalID: "a",
		ProviderID: "provider1",
		Price:      decimal.RequireFromString("1"),
	}, canonical("a", "2", true, baseTime), "provider1", baseTime)
	require.NotNil(t, d.History)

	err := repo.Apply(context.Background(), d)
	assert.ErrorContains(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Apply_UpdateMatchingNoRows(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `products` SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	d := reconcile.Decide(&models.Product{
		ID:         "11111111-1111-1111-1111-111111111111",
		ExternalID: "a",
		ProviderID: "provider1",
		Price:      decimal.RequireFromString("1"),
	}, canonical("a", "2", true, baseTime), "provider1", baseTime)

	err := repo.Apply(context.Background(), d)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Apply_UpdateAfterDelete(t *testing.T) {
	db := setupDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	newCommitter(repo, baseTime).Commit(ctx, "provider1", []normalize.CanonicalProduct{canonical("a", "5", true, baseTime)})
	existing, err := repo.FindByNaturalKey(ctx, "a", "provider1")
	require.NoError(t, err)
	require.NotNil(t, existing)
	require.NoError(t, db.Delete(&models.Product{}, "id = ?", existing.ID).Error)

	later := baseTime.Add(time.Hour)
	d := reconcile.Decide(existing, canonical("a", "6", true, later), "provider1", later)
	err = repo.Apply(ctx, d)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int64(0), countHistory(t, db))
}

func TestRepository_FindByNaturalKey_Error(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `products`").WillReturnError(errors.New("connection reset"))

	p, err := repo.FindByNaturalKey(context.Background(), "a", "provider1")
	assert.Nil(t, p)
	assert.ErrorContains(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitter_SkipsFailedProducts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	// First product: lookup fails. Second: lookup finds nothing, insert succeeds.
	mock.ExpectQuery("SELECT \\* FROM `products`").WillReturnError(errors.New("timeout"))
	mock.ExpectQuery("SELECT \\* FROM `products`").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `products`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	res := newCommitter(repo, baseTime).Commit(context.Background(), "provider1", []normalize.CanonicalProduct{
		canonical("a", "1", true, baseTime),
		canonical("b", "2", true, baseTime),
	})

	assert.Equal(t, 1, res.Committed)
	assert.Equal(t, 1, res.Skipped)
	assert.NoError(t, mock.ExpectationsWereMet())
}
