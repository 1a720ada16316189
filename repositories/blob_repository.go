package repositories

import (
	"context"
	"io"
	"sync"

	"github.com/cockroachdb/errors"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

// BlobRepository stores synthesized call audio and archived transcripts. The
// bucket url decides the backend (gs://, s3://, file://, mem://).
type BlobRepository interface {
	GetBlob(ctx context.Context, bucketUrl, key string) (io.ReadCloser, error)
	PutBlob(ctx context.Context, bucketUrl, key string, data []byte) error
}

type blobRepository struct {
	mu      sync.Mutex
	buckets map[string]*blob.Bucket
}

func NewBlobRepository() BlobRepository {
	return &blobRepository{
		buckets: make(map[string]*blob.Bucket),
	}
}

func (repo *blobRepository) openBucket(ctx context.Context, bucketUrl string) (*blob.Bucket, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if bucket, ok := repo.buckets[bucketUrl]; ok {
		return bucket, nil
	}
	bucket, err := blob.OpenBucket(ctx, bucketUrl)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", bucketUrl)
	}
	repo.buckets[bucketUrl] = bucket
	return bucket, nil
}

func (repo *blobRepository) GetBlob(ctx context.Context, bucketUrl, key string) (io.ReadCloser, error) {
	bucket, err := repo.openBucket(ctx, bucketUrl)
	if err != nil {
		return nil, err
	}
	reader, err := bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read blob %s", key)
	}
	return reader, nil
}

func (repo *blobRepository) PutBlob(ctx context.Context, bucketUrl, key string, data []byte) error {
	bucket, err := repo.openBucket(ctx, bucketUrl)
	if err != nil {
		return err
	}
	writer, err := bucket.NewWriter(ctx, key, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to open writer for blob %s", key)
	}
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return errors.Wrapf(err, "failed to write blob %s", key)
	}
	return errors.Wrapf(writer.Close(), "failed to close writer for blob %s", key)
}
