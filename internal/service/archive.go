package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pageza/mealmate/backend/internal/model"
)

// Archiver stores a copy of a generated recipe and returns its key
type Archiver interface {
	Archive(ctx context.Context, s *model.Suggestion) (string, error)
}

// S3PutObjectAPI is the subset of the S3 client used by S3Archiver
type S3PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archiver uploads recipes as Markdown objects
type S3Archiver struct {
	client S3PutObjectAPI
	bucket string
	prefix string
}

// NewS3Archiver creates a new S3Archiver instance
func NewS3Archiver(client S3PutObjectAPI, bucket, prefix string) *S3Archiver {
	return &S3Archiver{client: client, bucket: bucket, prefix: prefix}
}

// Archive uploads the recipe under <prefix>/YYYY/MM/DD/<id>.md
func (a *S3Archiver) Archive(ctx context.Context, s *model.Suggestion) (string, error) {
	key := path.Join(a.prefix, s.CreatedAt.Format("2006/01/02"), s.ID.String()+".md")

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(s.Recipe),
		ContentType: aws.String("text/markdown; charset=utf-8"),
		Metadata: map[string]string{
			"model":      s.Model,
			"request-id": s.RequestID,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return key, nil
}
