package media

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"geoevents/internal/domain"
)

// objectAPI is the subset of *s3.Client the store uses.
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type s3Store struct {
	client  objectAPI
	bucket  string
	folder  string
	baseURL string
	logger  *slog.Logger
	newKey  func() string
}

func newS3Store(cfg StoreConfig, folder string, logger *slog.Logger) *s3Store {
	awsCfg := aws.Config{Region: cfg.S3.Region}
	if cfg.S3.AccessKeyID != "" {
		awsCfg.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey, ""),
		)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
		}
		o.UsePathStyle = cfg.S3.UsePathStyle
	})

	baseURL := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3.Bucket, cfg.S3.Region)
	}
	return &s3Store{
		client:  client,
		bucket:  cfg.S3.Bucket,
		folder:  folder,
		baseURL: baseURL,
		logger:  logger,
		newKey:  uuid.NewString,
	}
}

// Upload stores the image under <folder>/<uuid>. Keys carry no extension so
// the asset id derived from the public URL is the key itself.
func (s *s3Store) Upload(ctx context.Context, img domain.ImageUpload) (string, error) {
	if !strings.HasPrefix(img.ContentType, "image/") {
		return "", fmt.Errorf("%w: %q is not an image", domain.ErrInvalidInput, img.ContentType)
	}
	key := s.folder + "/" + s.newKey()
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        img.Body,
		ContentType: aws.String(img.ContentType),
	}
	if img.Size > 0 {
		input.ContentLength = aws.Int64(img.Size)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("%w: upload image: %w", domain.ErrUpstream, err)
	}
	s.logger.DebugContext(ctx, "image uploaded", "key", key, "bytes", img.Size)
	return s.baseURL + "/" + key, nil
}

func (s *s3Store) Delete(ctx context.Context, imageURL string) error {
	if imageURL == "" {
		return nil
	}
	key, err := AssetID(imageURL)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%w: delete image %s: %w", domain.ErrUpstream, key, err)
	}
	return nil
}
