// Package storage persists rendered invoice documents in S3-compatible
// object storage.
package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DocumentStore writes rendered documents and returns their location.
type DocumentStore interface {
	Put(ctx context.Context, key string, contentType string, body []byte) (string, error)
}

type s3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3Store(client *s3.Client, bucket, baseURL string) DocumentStore {
	return &s3Store{client: client, bucket: bucket, baseURL: baseURL}
}

func (s *s3Store) Put(ctx context.Context, key string, contentType string, body []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading object %s: %w", key, err)
	}
	return fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, key), nil
}
