package aggregation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"time"

	"catalog-aggregator/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ErrNoArchive is returned when a provider has no archived payload.
var ErrNoArchive = errors.New("no archived payload")

// archiveKeyLayout sorts lexically in chronological order.
const archiveKeyLayout = "20060102T150405.000000000Z"

// Archiver stores raw provider payloads in object storage.
// Keys are {prefix}/{providerID}/{timestamp}.json.
type Archiver struct {
	client storage.Client
	bucket string
	prefix string
	keep   int
	logger *zap.Logger
	now    func() time.Time
}

// NewArchiver creates an Archiver. keep bounds the payloads retained per
// provider; 0 retains all.
func NewArchiver(client storage.Client, bucket, prefix string, keep int, logger *zap.Logger) *Archiver {
	return &Archiver{
		client: client,
		bucket: bucket,
		prefix: prefix,
		keep:   keep,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Prepare creates the archive bucket if needed.
func (a *Archiver) Prepare(ctx context.Context, region string) error {
	return storage.EnsureBucket(ctx, a.client, a.bucket, region)
}

func (a *Archiver) providerPrefix(providerID string) string {
	return path.Join(a.prefix, providerID) + "/"
}

// Store uploads raw and returns its object key. Older payloads beyond the
// retention limit are removed afterwards.
func (a *Archiver) Store(ctx context.Context, providerID string, raw []byte) (string, error) {
	key := a.providerPrefix(providerID) + a.now().Format(archiveKeyLayout) + ".json"

	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(raw), int64(len(raw)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive payload %s: %w", key, err)
	}

	if a.keep > 0 {
		a.prune(ctx, providerID)
	}
	return key, nil
}

// keys lists a provider's archived payload keys, oldest first.
func (a *Archiver) keys(ctx context.Context, providerID string) ([]string, error) {
	var keys []string
	opts := minio.ListObjectsOptions{Prefix: a.providerPrefix(providerID), Recursive: true}
	for obj := range a.client.ListObjects(ctx, a.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list archive for %s: %w", providerID, obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (a *Archiver) prune(ctx context.Context, providerID string) {
	keys, err := a.keys(ctx, providerID)
	if err != nil {
		a.logger.Warn("Failed to list archived payloads", zap.String("provider", providerID), zap.Error(err))
		return
	}
	if len(keys) <= a.keep {
		return
	}

	for _, key := range keys[:len(keys)-a.keep] {
		if err := a.client.RemoveObject(ctx, a.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			a.logger.Warn("Failed to remove archived payload", zap.String("key", key), zap.Error(err))
		}
	}
}

// Latest returns the key of the newest archived payload for providerID.
func (a *Archiver) Latest(ctx context.Context, providerID string) (string, error) {
	keys, err := a.keys(ctx, providerID)
	if err != nil {
		return "", err
	}
	if len(keys) == 0 {
		return "", fmt.Errorf("%w for provider %s", ErrNoArchive, providerID)
	}
	return keys[len(keys)-1], nil
}

// Load downloads an archived payload.
func (a *Archiver) Load(ctx context.Context, key string) ([]byte, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// ArchiveFetcher replays the newest archived payload instead of calling the provider.
type ArchiveFetcher struct {
	archiver *Archiver
}

// NewArchiveFetcher creates an ArchiveFetcher.
func NewArchiveFetcher(archiver *Archiver) *ArchiveFetcher {
	return &ArchiveFetcher{archiver: archiver}
}

// Fetch implements Fetcher.
func (f *ArchiveFetcher) Fetch(ctx context.Context, ep Endpoint) ([]byte, error) {
	key, err := f.archiver.Latest(ctx, ep.ID)
	if err != nil {
		return nil, err
	}
	return f.archiver.Load(ctx, key)
}
