package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	a "spongkj/contacts-api/aws"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// AvatarStore persists uploaded avatar images and returns the URL the
// user record should point at.
type AvatarStore interface {
	Save(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// S3AvatarStore keeps avatars in the configured S3 bucket under
// avatars/.
type S3AvatarStore struct {
	S3 *a.S3Client
}

func NewS3AvatarStore(c *a.S3Client) *S3AvatarStore {
	return &S3AvatarStore{S3: c}
}

func (s *S3AvatarStore) Save(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	fullKey := "avatars/" + key

	uploader := manager.NewUploader(s.S3.C)

	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:       s.S3.Bucket,
		Key:          aws.String(fullKey),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar to s3, %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", *s.S3.Bucket, s.S3.Region, fullKey), nil
}

// LocalAvatarStore writes avatars to a directory served as /avatars.
type LocalAvatarStore struct {
	Dir string
}

func NewLocalAvatarStore(dir string) (*LocalAvatarStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create avatar directory, %w", err)
	}

	return &LocalAvatarStore{Dir: dir}, nil
}

func (l *LocalAvatarStore) Save(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	path := filepath.Join(l.Dir, key)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create avatar file, %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write avatar file, %w", err)
	}

	return "/avatars/" + key, nil
}
