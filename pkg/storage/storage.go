package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/munasbate/backend/internal/apperrors"
	"github.com/munasbate/backend/pkg/config"
)

// Gateway accepts a media blob and returns a durable public URL. Implemented
// by the Firebase Storage client; handlers depend on the interface so tests
// can stub uploads.
type Gateway interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Client is the Firebase Storage backed Gateway.
type Client struct {
	bucket   *gcs.BucketHandle
	bucketID string
	maxBytes int64
}

// NewClient initializes the Firebase app and returns a storage client bound
// to the configured media bucket.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	if cfg.FirebaseCredentialsPath == "" {
		return nil, fmt.Errorf("Firebase credentials path not provided")
	}
	if _, err := os.Stat(cfg.FirebaseCredentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("Firebase credentials file not found at %s", cfg.FirebaseCredentialsPath)
	}

	opt := option.WithCredentialsFile(cfg.FirebaseCredentialsPath)
	firebaseApp, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: cfg.MediaBucket}, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	storageClient, err := firebaseApp.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase storage client: %w", err)
	}

	bucket, err := storageClient.Bucket(cfg.MediaBucket)
	if err != nil {
		return nil, fmt.Errorf("error getting media bucket: %w", err)
	}

	log.Println("Firebase storage client initialized successfully!")
	return &Client{bucket: bucket, bucketID: cfg.MediaBucket, maxBytes: cfg.MaxUploadBytes}, nil
}

// ObjectKey builds a collision-free object key under the given prefix,
// keeping the original file extension.
func ObjectKey(prefix, filename string) string {
	return fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), path.Ext(filename))
}

// Upload writes the blob to the bucket and returns its public URL. It fails
// with SizeLimitError above the configured maximum and StorageError on
// backend rejection.
func (c *Client) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if size > c.maxBytes {
		return "", apperrors.SizeLimit("file exceeds the %d byte upload limit", c.maxBytes)
	}

	w := c.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=3600"

	// Guard against a lying Content-Length: never write past the cap.
	if _, err := io.Copy(w, io.LimitReader(r, c.maxBytes+1)); err != nil {
		_ = w.Close()
		return "", apperrors.Storage("failed to upload media", err)
	}
	if err := w.Close(); err != nil {
		return "", apperrors.Storage("failed to finalize media upload", err)
	}
	if w.Attrs() != nil && w.Attrs().Size > c.maxBytes {
		if err := c.Delete(ctx, key); err != nil {
			log.Printf("Failed to remove oversized object %s: %v", key, err)
		}
		return "", apperrors.SizeLimit("file exceeds the %d byte upload limit", c.maxBytes)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketID, key), nil
}

// Delete removes an object; used to clean up after failed publishes.
func (c *Client) Delete(ctx context.Context, key string) error {
	if err := c.bucket.Object(key).Delete(ctx); err != nil {
		return apperrors.Storage("failed to delete media", err)
	}
	return nil
}
