package aggregation

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"catalog-aggregator/core/database"
	"catalog-aggregator/core/events"
	"catalog-aggregator/feature/aggregation/normalize"
	"catalog-aggregator/feature/aggregation/reconcile"
	"catalog-aggregator/feature/catalog"
	"catalog-aggregator/feature/catalog/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func provider1Payload(price string) []byte {
	return []byte(fmt.Sprintf(`{"catalog":{"items":[
		{"product_id":"a-1","product_name":"Mouse","pricing":{"amount":%s,"currency_code":"USD"},"stock":{"in_stock":true},"last_modified":"2024-03-01T10:00:00Z"},
		{"product_id":"a-2","product_name":"Keyboard","product_desc":"Mechanical","pricing":{"amount":49.90,"currency_code":"USD"},"stock":{"in_stock":false},"last_modified":"2024-03-01T10:00:00Z"}
	]}}`, price))
}

var provider2Payload = []byte(`[
	{"itemId":"b-1","title":"Monitor","cost":199.5,"currencyType":"EUR","isAvailable":true,"updatedAt":"2024-03-01T11:00:00Z"}
]`)

var provider3Payload = []byte(`{"success":true,"count":2,"data":[
	{"ID":"c-1","NAME":"Cable","PRICE":"5.00","CURRENCY":"GBP","AVAILABLE":1,"LAST_UPDATE":"2024-03-01T12:00:00Z"},
	{"ID":"c-2","NAME":"Hub","PRICE":25,"CURRENCY":"GBP","AVAILABLE":"true","LAST_UPDATE":"2024-03-01T12:00:00Z"}
]}`)

// stubFetcher serves canned payloads or errors per provider id.
type stubFetcher struct {
	mu       sync.Mutex
	payloads map[string][]byte
	errs     map[string]error
	panics   map[string]bool
	calls    []string
}

func (f *stubFetcher) Fetch(_ context.Context, ep Endpoint) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, ep.ID)
	f.mu.Unlock()

	if f.panics[ep.ID] {
		panic("boom")
	}
	if err := f.errs[ep.ID]; err != nil {
		return nil, err
	}
	return f.payloads[ep.ID], nil
}

// recordingPublisher collects published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.PriceChangeEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, evs []events.PriceChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evs...)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

var testEndpoints = []Endpoint{
	{ID: "provider1", URL: "http://p1"},
	{ID: "provider2", URL: "http://p2"},
	{ID: "provider3", URL: "http://p3"},
}

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

func newTestOrchestrator(db *gorm.DB, fetcher Fetcher, opts ...Option) *Orchestrator {
	logger := zap.NewNop()
	committer := reconcile.NewCommitter(catalog.NewRepository(db), nil, logger)
	return NewOrchestrator(testEndpoints, fetcher, normalize.NewDefaultRegistry(logger), committer, logger, opts...)
}
