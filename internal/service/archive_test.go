package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockS3 struct {
	mock.Mock
	body string
}

func (m *mockS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, _ := io.ReadAll(params.Body)
	m.body = string(data)
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func TestS3ArchiverArchive(t *testing.T) {
	id := uuid.MustParse("6f1c3c1e-8a7b-4c55-9d43-2a7a1f0e9b11")
	s := newSuggestion("mushrooms", time.Date(2026, 10, 16, 8, 30, 0, 0, time.UTC))
	s.ID = id

	client := new(mockS3)
	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "recipes-archive" &&
			aws.ToString(in.ContentType) == "text/markdown; charset=utf-8"
	})).Return(&s3.PutObjectOutput{}, nil)

	key, err := NewS3Archiver(client, "recipes-archive", "recipes/").Archive(context.Background(), s)

	require.NoError(t, err)
	assert.Equal(t, "recipes/2026/10/16/"+id.String()+".md", key)
	assert.Equal(t, "## mushrooms", client.body)
	client.AssertExpectations(t)
}

func TestS3ArchiverArchiveError(t *testing.T) {
	client := new(mockS3)
	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("AccessDenied"))

	_, err := NewS3Archiver(client, "b", "").Archive(context.Background(), newSuggestion("leeks", time.Now()))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload to S3")
}
