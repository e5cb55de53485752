package aggregation

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"catalog-aggregator/feature/catalog/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateAll(t *testing.T) {
	db := setupDB(t)
	fetcher := &stubFetcher{payloads: map[string][]byte{
		"provider1": provider1Payload("89.99"),
		"provider2": provider2Payload,
		"provider3": provider3Payload,
	}}

	results := newTestOrchestrator(db, fetcher).AggregateAll(context.Background())

	require.Len(t, results, 3)
	for i, want := range []int{2, 1, 2} {
		assert.True(t, results[i].Success)
		require.NotNil(t, results[i].Count)
		assert.Equal(t, want, *results[i].Count)
		assert.Empty(t, results[i].Error)
	}
	assert.Equal(t, []string{"provider1", "provider2", "provider3"}, fetcher.calls)

	var total int64
	require.NoError(t, db.Model(&models.Product{}).Count(&total).Error)
	assert.Equal(t, int64(5), total)
}

func TestAggregateAll_ProviderIsolation(t *testing.T) {
	db := setupDB(t)
	fetcher := &stubFetcher{
		payloads: map[string][]byte{
			"provider1": provider1Payload("89.99"),
			"provider3": provider3Payload,
		},
		errs: map[string]error{"provider2": &FetchError{ProviderID: "provider2", StatusCode: 503}},
	}
	o := newTestOrchestrator(db, fetcher)

	results := o.AggregateAll(context.Background())

	require.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.Equal(t, "provider provider2 returned HTTP 503", results[1].Error)
	assert.Nil(t, results[1].Count)
	assert.True(t, results[2].Success)

	stats := o.Status().Get("provider2")
	assert.Equal(t, 1, stats.FailureCount)
	assert.Nil(t, stats.LastSuccessAt)
}

func TestAggregateAll_RecoversPanic(t *testing.T) {
	db := setupDB(t)
	fetcher := &stubFetcher{
		payloads: map[string][]byte{
			"provider2": provider2Payload,
			"provider3": provider3Payload,
		},
		panics: map[string]bool{"provider1": true},
	}

	results := newTestOrchestrator(db, fetcher).AggregateAll(context.Background())

	require.Len(t, results, 3)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "boom")
	assert.True(t, results[1].Success)
	assert.True(t, results[2].Success)
}

func TestAggregateAll_MalformedPayload(t *testing.T) {
	db := setupDB(t)
	fetcher := &stubFetcher{payloads: map[string][]byte{
		"provider1": []byte(`{"catalog": "nope"}`),
		"provider2": []byte(`not json`),
		"provider3": []byte(`{"success": false}`),
	}}

	results := newTestOrchestrator(db, fetcher).AggregateAll(context.Background())

	for _, r := range results {
		assert.True(t, r.Success, r.ProviderID)
		require.NotNil(t, r.Count)
		assert.Equal(t, 0, *r.Count)
	}
}

func TestAggregateAll_Idempotent(t *testing.T) {
	db := setupDB(t)
	fetcher := &stubFetcher{payloads: map[string][]byte{"provider1": provider1Payload("89.99")}}
	o := newTestOrchestrator(db, fetcher)

	o.AggregateAll(context.Background())
	var first []models.Product
	require.NoError(t, db.Order("external_id").Find(&first).Error)

	o.AggregateAll(context.Background())
	var second []models.Product
	require.NoError(t, db.Order("external_id").Find(&second).Error)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.True(t, first[i].Price.Equal(second[i].Price))
		assert.Equal(t, first[i].Name, second[i].Name)
		assert.Equal(t, first[i].Description, second[i].Description)
		assert.True(t, first[i].LastUpdated.Equal(second[i].LastUpdated))
	}

	var history int64
	require.NoError(t, db.Model(&models.PriceHistoryEntry{}).Count(&history).Error)
	assert.Zero(t, history)
}

func TestAggregateAll_PublishesPriceChanges(t *testing.T) {
	db := setupDB(t)
	fetcher := &stubFetcher{payloads: map[string][]byte{"provider1": provider1Payload("89.99")}}
	pub := &recordingPublisher{err: errors.New("broker down")}
	o := newTestOrchestrator(db, fetcher, WithPublisher(pub))

	o.AggregateAll(context.Background())
	assert.Empty(t, pub.events)

	fetcher.payloads["provider1"] = provider1Payload("99.99")
	results := o.AggregateAll(context.Background())

	// Publish failures never fail the provider.
	assert.True(t, results[0].Success)
	require.Len(t, pub.events, 1)
	ev := pub.events[0]
	assert.Equal(t, "a-1", ev.ExternalID)
	assert.Equal(t, "provider1", ev.ProviderID)
	assert.True(t, ev.OldPrice.Equal(decimal.RequireFromString("89.99")))
	assert.True(t, ev.NewPrice.Equal(decimal.RequireFromString("99.99")))

	var p models.Product
	require.NoError(t, db.Preload("PriceHistory").Take(&p, "external_id = ?", "a-1").Error)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("99.99")))
	assert.Len(t, p.PriceHistory, 1)
}

func TestAggregateAll_IgnoresCancellation(t *testing.T) {
	db := setupDB(t)
	fetcher := &stubFetcher{payloads: map[string][]byte{"provider1": provider1Payload("1.00")}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := newTestOrchestrator(db, fetcher).AggregateAll(ctx)

	assert.True(t, results[0].Success)
	assert.Equal(t, 2, *results[0].Count)
}

func TestProviderResult_JSON(t *testing.T) {
	data, err := json.Marshal([]ProviderResult{
		succeeded("provider1", 0),
		failed("provider2", errors.New("timeout")),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"providerId":"provider1","success":true,"count":0},
		{"providerId":"provider2","success":false,"error":"timeout"}
	]`, string(data))
}
