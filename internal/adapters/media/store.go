// Package media stores event images on an external media host.
package media

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"geoevents/internal/domain"
)

// S3Config holds configuration for an S3-compatible bucket.
type S3Config struct {
	Region          string
	Bucket          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// StoreConfig holds configuration for creating an image store.
type StoreConfig struct {
	Provider      string
	Folder        string
	PublicBaseURL string
	S3            S3Config
}

// NewImageStore creates an image store from config. Provider "s3" uses an
// S3-compatible bucket; "noop" or unknown disables uploads.
func NewImageStore(cfg StoreConfig, logger *slog.Logger) (domain.ImageStore, error) {
	folder := strings.Trim(cfg.Folder, "/")
	if folder == "" {
		folder = "events"
	}
	switch cfg.Provider {
	case "s3":
		if cfg.S3.Bucket == "" {
			return nil, fmt.Errorf("media: s3 bucket is required")
		}
		return newS3Store(cfg, folder, logger), nil
	case "noop", "":
		return &noopStore{logger: logger}, nil
	default:
		logger.Warn("unknown media provider, image uploads disabled", "provider", cfg.Provider)
		return &noopStore{logger: logger}, nil
	}
}

// AssetID derives the host-side asset id from a stored image URL: the last
// two path segments with the extension removed, e.g. "events/3f2a".
func AssetID(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: image url %q", domain.ErrInvalidInput, rawURL)
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 || segments[len(segments)-1] == "" || segments[len(segments)-2] == "" {
		return "", fmt.Errorf("%w: image url %q has no asset path", domain.ErrInvalidInput, rawURL)
	}
	name := segments[len(segments)-1]
	name = strings.TrimSuffix(name, path.Ext(name))
	if name == "" {
		return "", fmt.Errorf("%w: image url %q has no asset name", domain.ErrInvalidInput, rawURL)
	}
	return segments[len(segments)-2] + "/" + name, nil
}

type noopStore struct {
	logger *slog.Logger
}

func (n *noopStore) Upload(_ context.Context, img domain.ImageUpload) (string, error) {
	return "", fmt.Errorf("%w: image uploads are not configured", domain.ErrUpstream)
}

func (n *noopStore) Delete(ctx context.Context, imageURL string) error {
	n.logger.InfoContext(ctx, "image would be deleted (noop)", "url", imageURL)
	return nil
}
