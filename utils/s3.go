package utils

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectPutter is the slice of the S3 API the archiver needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// SnapshotArchiver keeps a copy of every fetched page in S3 so a bad parse
// can be replayed later.
type SnapshotArchiver struct {
	Client ObjectPutter
	Bucket string
}

// NewSnapshotArchiver initializes the S3 client
func NewSnapshotArchiver(ctx context.Context, region, bucket string) (*SnapshotArchiver, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %w", err)
	}

	log.Println("[S3] Snapshot client initialized")
	return &SnapshotArchiver{Client: s3.NewFromConfig(cfg), Bucket: bucket}, nil
}

// SnapshotKey is snapshots/<runID>/<source>.html with the source lowercased.
func SnapshotKey(runID, source string) string {
	return fmt.Sprintf("snapshots/%s/%s.html", runID, strings.ToLower(source))
}

// Archive uploads page and returns the object key
func (a *SnapshotArchiver) Archive(ctx context.Context, runID, source string, page []byte) (string, error) {
	key := SnapshotKey(runID, source)
	_, err := a.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(page),
		ContentType: aws.String("text/html; charset=utf-8"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot to S3: %w", err)
	}
	return key, nil
}
