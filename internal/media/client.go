// Package media stores blog images in an S3-compatible bucket and builds
// their public CDN URLs.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/logging"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/metrics"
)

// ImagePrefix is the key prefix every uploaded blog image lives under.
const ImagePrefix = "blog-images/"

// ErrUnavailable is returned while the circuit breaker rejects calls.
var ErrUnavailable = errors.New("media storage unavailable")

type Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	// PublicURL is the CDN origin serving the bucket. Defaults to the
	// endpoint (path style) or the virtual-hosted S3 URL.
	PublicURL string
}

// objectAPI is the subset of *s3.Client the media client uses.
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type Client struct {
	api    objectAPI
	bucket string
	urls   URLBuilder
	cb     *gobreaker.CircuitBreaker[any]
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newClient(api, cfg), nil
}

func newClient(api objectAPI, cfg Config) *Client {
	return &Client{
		api:    api,
		bucket: cfg.Bucket,
		urls:   NewURLBuilder(publicBase(cfg)),
		cb:     newBreaker("media-storage"),
	}
}

func publicBase(cfg Config) string {
	switch {
	case cfg.PublicURL != "":
		return cfg.PublicURL
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

func (c *Client) URLs() URLBuilder {
	return c.urls
}

// Upload stores body under key and returns its public URL.
func (c *Client) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := c.execute("upload", func() (any, error) {
		return c.api.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        &c.bucket,
			Key:           &key,
			Body:          bytes.NewReader(body),
			ContentLength: aws.Int64(int64(len(body))),
			ContentType:   &contentType,
			CacheControl:  aws.String("public, max-age=31536000, immutable"),
		})
	})
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("key", key).Msg("failed to upload object")
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	logging.Ctx(ctx).Info().Str("key", key).Int("size", len(body)).Msg("uploaded object")
	return c.urls.URL(key), nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.execute("delete", func() (any, error) {
		return c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: &c.bucket,
			Key:    &key,
		})
	})
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("key", key).Msg("failed to delete object")
		return fmt.Errorf("delete %s: %w", key, err)
	}

	logging.Ctx(ctx).Info().Str("key", key).Msg("deleted object")
	return nil
}

func (c *Client) execute(operation string, fn func() (any, error)) (any, error) {
	result, err := c.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordMediaOperation(operation, "rejected")
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if errors.Is(err, context.Canceled) {
			metrics.RecordMediaOperation(operation, "canceled")
			return nil, err
		}
		metrics.RecordMediaOperation(operation, "failure")
		return nil, err
	}
	metrics.RecordMediaOperation(operation, "success")
	return result, nil
}

// Transform describes CDN-side image processing. Zero fields are omitted.
type Transform struct {
	Width   int
	Height  int
	Quality int
	// Format is an output format such as webp or avif.
	Format string
	// Fit is a resize mode such as cover or contain.
	Fit string
}

// URLBuilder derives public URLs for stored objects.
type URLBuilder struct {
	base string
}

func NewURLBuilder(base string) URLBuilder {
	return URLBuilder{base: strings.TrimRight(base, "/")}
}

func (b URLBuilder) URL(key string) string {
	return b.base + "/" + strings.TrimLeft(key, "/")
}

// TransformURL adds w, h, q, fm and fit query parameters understood by the
// image CDN in front of the bucket. Absolute URLs that do not point at the
// CDN are returned untouched.
func (b URLBuilder) TransformURL(key string, t Transform) string {
	if key == "" {
		return ""
	}
	raw := key
	if !strings.HasPrefix(key, "http://") && !strings.HasPrefix(key, "https://") {
		raw = b.URL(key)
	} else if !strings.HasPrefix(key, b.base+"/") {
		return key
	}

	q := url.Values{}
	if t.Width > 0 {
		q.Set("w", strconv.Itoa(t.Width))
	}
	if t.Height > 0 {
		q.Set("h", strconv.Itoa(t.Height))
	}
	if t.Quality > 0 {
		q.Set("q", strconv.Itoa(t.Quality))
	}
	if t.Format != "" {
		q.Set("fm", t.Format)
	}
	if t.Fit != "" {
		q.Set("fit", t.Fit)
	}
	if len(q) == 0 {
		return raw
	}
	return raw + "?" + q.Encode()
}

// ImageKey returns the storage key of an uploaded image file name.
func ImageKey(fileName string) string {
	return ImagePrefix + fileName
}
