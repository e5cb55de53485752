package catalog

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"catalog-aggregator/feature/catalog/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageMeta(t *testing.T) {
	tests := []struct {
		name    string
		page    int
		limit   int
		total   int64
		pages   int
		next    *int
		prev    *int
		hasNext bool
		hasPrev bool
	}{
		{"Empty", 1, 20, 0, 0, nil, nil, false, false},
		{"First of three", 1, 20, 50, 3, intPtr(2), nil, true, false},
		{"Middle", 2, 20, 50, 3, intPtr(3), intPtr(1), true, true},
		{"Last", 3, 20, 50, 3, nil, intPtr(2), false, true},
		{"Exact fit", 1, 10, 10, 1, nil, nil, false, false},
		{"Past the end", 5, 20, 50, 3, nil, intPtr(4), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewPageMeta(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.pages, m.TotalPages)
			assert.Equal(t, tt.hasNext, m.HasNextPage)
			assert.Equal(t, tt.hasPrev, m.HasPreviousPage)
			assert.Equal(t, tt.next, m.NextPage)
			assert.Equal(t, tt.prev, m.PreviousPage)
		})
	}
}

func intPtr(i int) *int { return &i }

func TestQueryService_FindPage(t *testing.T) {
	db := setupDB(t)
	seeded := seedProducts(t, db, 50)
	svc := newTestService(db)
	ctx := context.Background()

	first, err := svc.FindPage(ctx, OffsetQuery{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, first.Data, 20)
	assert.Equal(t, int64(50), first.Meta.Total)
	assert.Equal(t, 3, first.Meta.TotalPages)
	assert.True(t, first.Meta.HasNextPage)
	assert.False(t, first.Meta.HasPreviousPage)
	require.NotNil(t, first.Meta.NextPage)
	assert.Equal(t, 2, *first.Meta.NextPage)
	// Default sort is lastUpdated desc.
	assert.Equal(t, seeded[49].ID, first.Data[0].ID)

	third, err := svc.FindPage(ctx, OffsetQuery{Page: 3, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, third.Data, 10)
	assert.False(t, third.Meta.HasNextPage)
	assert.True(t, third.Meta.HasPreviousPage)
	require.NotNil(t, third.Meta.PreviousPage)
	assert.Equal(t, 2, *third.Meta.PreviousPage)
	assert.Nil(t, third.Meta.NextPage)
	assert.Equal(t, seeded[0].ID, third.Data[9].ID)

	raw, err := json.Marshal(third.Meta)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "nextPage")
	assert.Contains(t, string(raw), `"previousPage":2`)
}

func TestQueryService_FindPage_Sorting(t *testing.T) {
	db := setupDB(t)
	seeded := seedProducts(t, db, 5)
	svc := newTestService(db)

	page, err := svc.FindPage(context.Background(), OffsetQuery{Page: 1, Limit: 5, SortBy: "price", SortOrder: "asc"})
	require.NoError(t, err)
	assert.Equal(t, ids(seeded), ids(page.Data))

	page, err = svc.FindPage(context.Background(), OffsetQuery{Page: 1, Limit: 5, SortBy: "name", SortOrder: "desc"})
	require.NoError(t, err)
	assert.Equal(t, seeded[4].ID, page.Data[0].ID)
}

func TestQueryService_EmptyCatalog(t *testing.T) {
	svc := newTestService(setupDB(t))
	ctx := context.Background()

	page, err := svc.FindPage(ctx, DefaultOffsetQuery())
	require.NoError(t, err)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Equal(t, int64(0), page.Meta.Total)
	assert.False(t, page.Meta.HasNextPage)

	cursor, err := svc.FindCursor(ctx, DefaultCursorQuery())
	require.NoError(t, err)
	assert.NotNil(t, cursor.Data)
	assert.Empty(t, cursor.Data)
	assert.False(t, cursor.Meta.HasNextPage)
	assert.Nil(t, cursor.Meta.NextCursor)
}

func TestQueryService_InvalidQuery(t *testing.T) {
	svc := newTestService(setupDB(t))
	ctx := context.Background()

	for name, q := range map[string]OffsetQuery{
		"page zero":    {Page: 0, Limit: 20},
		"limit zero":   {Page: 1, Limit: 0},
		"limit large":  {Page: 1, Limit: 101},
		"unknown sort": {Page: 1, Limit: 20, SortBy: "id"},
		"bad order":    {Page: 1, Limit: 20, SortOrder: "up"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.FindPage(ctx, q)
			assert.ErrorIs(t, err, ErrInvalidQuery)
		})
	}

	_, err := svc.FindCursor(ctx, CursorQuery{Limit: 500})
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = svc.FindRecentChanges(ctx, 0, DefaultOffsetQuery())
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestQueryService_FindCursor(t *testing.T) {
	db := setupDB(t)
	seeded := seedProducts(t, db, 3)
	svc := newTestService(db)
	ctx := context.Background()

	first, err := svc.FindCursor(ctx, CursorQuery{Limit: 2, SortBy: "lastUpdated", SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, first.Data, 2)
	assert.Equal(t, ids(seeded[:2]), ids(first.Data))
	assert.True(t, first.Meta.HasNextPage)
	require.NotNil(t, first.Meta.NextCursor)
	assert.Equal(t, seeded[1].ID, *first.Meta.NextCursor)
	assert.Nil(t, first.Meta.CurrentCursor)
	assert.Equal(t, int64(3), first.Meta.Total)

	second, err := svc.FindCursor(ctx, CursorQuery{Limit: 2, Cursor: *first.Meta.NextCursor, SortBy: "lastUpdated", SortOrder: "asc"})
	require.NoError(t, err)
	assert.Equal(t, []string{seeded[2].ID}, ids(second.Data))
	assert.False(t, second.Meta.HasNextPage)
	assert.Nil(t, second.Meta.NextCursor)
	require.NotNil(t, second.Meta.CurrentCursor)
	assert.Equal(t, seeded[1].ID, *second.Meta.CurrentCursor)

	raw, err := json.Marshal(second.Meta)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "nextCursor")
}

func TestQueryService_FindCursor_DefaultDescending(t *testing.T) {
	db := setupDB(t)
	seeded := seedProducts(t, db, 3)
	svc := newTestService(db)

	page, err := svc.FindCursor(context.Background(), CursorQuery{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{seeded[2].ID, seeded[1].ID}, ids(page.Data))
	assert.Equal(t, seeded[1].ID, *page.Meta.NextCursor)
}

func TestQueryService_FindCursor_WalksTiesWithoutDuplicates(t *testing.T) {
	db := setupDB(t)
	seeded := seedProducts(t, db, 10)
	// Collapse prices into two groups so ties must be broken by id.
	require.NoError(t, db.Model(&models.Product{}).Where("1 = 1").UpdateColumn("price", decimal.NewFromInt(7)).Error)
	require.NoError(t, db.Model(&models.Product{}).Where("id IN ?", ids(seeded[:4])).UpdateColumn("price", decimal.NewFromInt(3)).Error)
	svc := newTestService(db)

	for _, order := range []string{"asc", "desc"} {
		t.Run(order, func(t *testing.T) {
			seen := map[string]bool{}
			cursor := ""
			for pages := 0; pages < 10; pages++ {
				page, err := svc.FindCursor(context.Background(), CursorQuery{Limit: 3, Cursor: cursor, SortBy: "price", SortOrder: order})
				require.NoError(t, err)
				for _, p := range page.Data {
					assert.False(t, seen[p.ID], "duplicate %s", p.ID)
					seen[p.ID] = true
				}
				if !page.Meta.HasNextPage {
					break
				}
				cursor = *page.Meta.NextCursor
			}
			assert.Len(t, seen, 10)
		})
	}
}

func TestQueryService_FindCursor_StableUnderInsert(t *testing.T) {
	db := setupDB(t)
	seedProducts(t, db, 4)
	svc := newTestService(db)
	ctx := context.Background()

	q := CursorQuery{Limit: 2, SortBy: "lastUpdated", SortOrder: "asc"}
	first, err := svc.FindCursor(ctx, q)
	require.NoError(t, err)

	// A row sorting before the cursor appears between page requests.
	early := models.Product{
		ExternalID:  "early",
		ProviderID:  "provider2",
		Name:        "Early",
		Price:       decimal.NewFromInt(1),
		Currency:    "USD",
		LastUpdated: baseTime.Add(-time.Hour),
	}
	require.NoError(t, db.Create(&early).Error)

	q.Cursor = *first.Meta.NextCursor
	second, err := svc.FindCursor(ctx, q)
	require.NoError(t, err)
	require.Len(t, second.Data, 2)
	for _, p := range second.Data {
		assert.NotContains(t, ids(first.Data), p.ID)
		assert.NotEqual(t, early.ID, p.ID)
	}
}

func TestQueryService_FindCursor_UnknownCursor(t *testing.T) {
	db := setupDB(t)
	seedProducts(t, db, 2)
	svc := newTestService(db)

	_, err := svc.FindCursor(context.Background(), CursorQuery{Limit: 2, Cursor: "00000000-0000-0000-0000-000000000000"})
	assert.ErrorIs(t, err, ErrInvalidCursor)
}

func TestQueryService_FindRecentChanges(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	now := baseTime.Add(48 * time.Hour)
	svc.now = func() time.Time { return now }

	recent := models.Product{ExternalID: "recent", ProviderID: "p", Name: "Recent", Price: decimal.NewFromInt(2), Currency: "USD", LastUpdated: now.Add(-time.Hour)}
	old := models.Product{ExternalID: "old", ProviderID: "p", Name: "Old", Price: decimal.NewFromInt(2), Currency: "USD", LastUpdated: now.Add(-30 * time.Hour)}
	require.NoError(t, db.Create(&recent).Error)
	require.NoError(t, db.Create(&old).Error)

	history := []models.PriceHistoryEntry{
		{ProductID: recent.ID, OldPrice: decimal.NewFromInt(1), NewPrice: decimal.NewFromInt(2), Currency: "USD", ChangeType: models.ChangeTypePriceChange, ChangedAt: now.Add(-2 * time.Hour)},
		{ProductID: recent.ID, OldPrice: decimal.NewFromInt(3), NewPrice: decimal.NewFromInt(1), Currency: "USD", ChangeType: models.ChangeTypePriceChange, ChangedAt: now.Add(-40 * time.Hour)},
	}
	require.NoError(t, db.Create(&history).Error)

	page, err := svc.FindRecentChanges(context.Background(), 24, DefaultOffsetQuery())
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, recent.ID, page.Data[0].ID)
	assert.Equal(t, int64(1), page.Meta.Total)
	require.Len(t, page.Data[0].PriceHistory, 1)
	assert.True(t, page.Data[0].PriceHistory[0].NewPrice.Equal(decimal.NewFromInt(2)))

	wide, err := svc.FindRecentChanges(context.Background(), 72, DefaultOffsetQuery())
	require.NoError(t, err)
	assert.Len(t, wide.Data, 2)
}

func TestQueryService_FindOne(t *testing.T) {
	db := setupDB(t)
	seeded := seedProducts(t, db, 1)
	svc := newTestService(db)

	entries := []models.PriceHistoryEntry{
		{ProductID: seeded[0].ID, OldPrice: decimal.NewFromInt(1), NewPrice: decimal.NewFromInt(2), Currency: "USD", ChangeType: models.ChangeTypePriceChange, ChangedAt: baseTime},
		{ProductID: seeded[0].ID, OldPrice: decimal.NewFromInt(2), NewPrice: decimal.NewFromInt(1), Currency: "USD", ChangeType: models.ChangeTypePriceChange, ChangedAt: baseTime.Add(time.Hour)},
	}
	require.NoError(t, db.Create(&entries).Error)

	p, err := svc.FindOne(context.Background(), seeded[0].ID)
	require.NoError(t, err)
	require.Len(t, p.PriceHistory, 2)
	assert.True(t, p.PriceHistory[0].ChangedAt.Equal(baseTime.Add(time.Hour)))

	_, err = svc.FindOne(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
