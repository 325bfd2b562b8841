package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/sefazor/photomap-backend/internal/models"
)

// S3Config points an S3Store at one bucket/prefix. AccountID selects the R2
// endpoint, the credentials are static access keys.
type S3Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Prefix          string
}

// S3Store implements Store on an S3-compatible bucket. Each point lives as a
// JSON object under Prefix, named by its unique hash, so the bucket listing
// doubles as the paged query.
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

func NewS3Store(cfg S3Config) (*S3Store, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID),
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Store{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

func (s *S3Store) objectKey(hash string) string {
	return s.prefix + hash + ".json"
}

func (s *S3Store) hashFromObjectKey(key string) string {
	return strings.TrimSuffix(strings.TrimPrefix(key, s.prefix), ".json")
}

func (s *S3Store) CheckSession(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("bucket %s is not reachable: %w", s.bucket, err)
	}
	return nil
}

func (s *S3Store) Query(ctx context.Context, cursor *string) ([]QueryEntry, *string, error) {
	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:            aws.String(s.bucket),
		Prefix:            aws.String(s.prefix),
		ContinuationToken: cursor,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list %s: %w", s.bucket, err)
	}

	entries := make([]QueryEntry, 0, len(out.Contents))
	for _, obj := range out.Contents {
		entries = append(entries, QueryEntry{Key: s.hashFromObjectKey(aws.ToString(obj.Key))})
	}

	if aws.ToBool(out.IsTruncated) {
		return entries, out.NextContinuationToken, nil
	}
	return entries, nil, nil
}

// UpsertBatch writes each point as its own object. S3 has no multi-object
// put, so the batch is a sequence of puts with per-key outcomes; a canceled
// context fails the call as a whole.
func (s *S3Store) UpsertBatch(ctx context.Context, points []models.PublicPhotoPoint) (BatchResult, error) {
	if len(points) > BatchLimit {
		return nil, fmt.Errorf("batch of %d exceeds limit of %d", len(points), BatchLimit)
	}

	results := make(BatchResult, len(points))
	for _, point := range points {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, err := json.Marshal(point)
		if err != nil {
			results[point.UniqueHash] = err
			continue
		}

		_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(s.objectKey(point.UniqueHash)),
			Body:        bytes.NewReader(body),
			ContentType: aws.String("application/json"),
		})
		results[point.UniqueHash] = err
	}
	return results, nil
}

func (s *S3Store) DeleteBatch(ctx context.Context, keys []string) (BatchResult, error) {
	if len(keys) > BatchLimit {
		return nil, fmt.Errorf("batch of %d exceeds limit of %d", len(keys), BatchLimit)
	}
	if len(keys) == 0 {
		return BatchResult{}, nil
	}

	objects := make([]types.ObjectIdentifier, 0, len(keys))
	results := make(BatchResult, len(keys))
	for _, key := range keys {
		objects = append(objects, types.ObjectIdentifier{Key: aws.String(s.objectKey(key))})
		results[key] = nil
	}

	out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucket),
		Delete: &types.Delete{
			Objects: objects,
			Quiet:   aws.Bool(true),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete from %s: %w", s.bucket, err)
	}

	for _, e := range out.Errors {
		hash := s.hashFromObjectKey(aws.ToString(e.Key))
		results[hash] = fmt.Errorf("%s: %s", aws.ToString(e.Code), aws.ToString(e.Message))
	}
	return results, nil
}
