// Package bucket reads datasets stored as objects in an S3-compatible
// bucket.
package bucket

import (
	"context"
	"errors"
	"fmt"

	"recycling/internal/sources"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config selects the bucket and credentials. AccessKey and SecretKey are
// optional; without them the default AWS credential chain applies.
type Config struct {
	Bucket       string
	Prefix       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type Store struct {
	api      objectGetter
	bucket   string
	prefix   string
	names    sources.Locations
	maxBytes int64
}

var _ sources.Source = (*Store)(nil)

// New builds an S3 client from cfg. A BaseEndpoint switches to path-style
// addressing so MinIO and similar servers work.
func New(ctx context.Context, cfg Config, names sources.Locations) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("missing bucket name")
	}
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})
	return newWithAPI(client, cfg.Bucket, cfg.Prefix, names), nil
}

func newWithAPI(api objectGetter, bucket, prefix string, names sources.Locations) *Store {
	if names == nil {
		names = sources.DefaultLocations()
	}
	return &Store{api: api, bucket: bucket, prefix: prefix, names: names, maxBytes: sources.MaxDatasetBytes}
}

// Key returns the object key holding ds.
func (s *Store) Key(ds sources.Dataset) (string, error) {
	name, err := s.names.Lookup(ds)
	if err != nil {
		return "", err
	}
	return s.prefix + name, nil
}

// Rows downloads and splits the object backing ds.
func (s *Store) Rows(ctx context.Context, ds sources.Dataset) ([][]string, error) {
	key, err := s.Key(ds)
	if err != nil {
		return nil, err
	}
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object %s/%s: %w", s.bucket, key, err)
	}
	defer out.Body.Close()

	body, err := sources.ReadLimited(out.Body, ds, s.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", key, err)
	}
	return sources.SplitTable(string(body)), nil
}
