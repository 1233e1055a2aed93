package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// presignExpiry is how long a returned video URL stays valid.
const presignExpiry = 72 * time.Hour

// ArtifactStore persists finished videos and hands back shareable URLs.
type ArtifactStore interface {
	UploadVideo(ctx context.Context, projectID string, data []byte) (string, error)
	DeleteVideo(ctx context.Context, projectID string) error
}

// MinioStore keeps final videos in a MinIO (or any S3-compatible) bucket
// under videos/<projectID>/final.mp4.
type MinioStore struct {
	client *minio.Client
	bucket string
}

func NewMinioStore() (*MinioStore, error) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "demodrop-videos"
	}
	useSSL, _ := strconv.ParseBool(os.Getenv("MINIO_USE_SSL"))

	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("MINIO_ENDPOINT, MINIO_ACCESS_KEY and MINIO_SECRET_KEY must be set")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &MinioStore{client: client, bucket: bucket}, nil
}

func (s *MinioStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Printf("Created bucket %s", s.bucket)
	}
	return nil
}

func objectName(projectID string) string {
	return fmt.Sprintf("videos/%s/final.mp4", projectID)
}

// UploadVideo stores the finished video and returns a presigned GET URL.
func (s *MinioStore) UploadVideo(ctx context.Context, projectID string, data []byte) (string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}

	name := objectName(projectID)
	_, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "video/mp4",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload video: %w", err)
	}

	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, name, presignExpiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign video URL: %w", err)
	}

	log.Printf("Uploaded video for project %s (%d bytes)", projectID, len(data))
	return presigned.String(), nil
}

// DeleteVideo removes the stored artifact. Missing objects are not an
// error; delete is called for projects that never finished too.
func (s *MinioStore) DeleteVideo(ctx context.Context, projectID string) error {
	err := s.client.RemoveObject(ctx, s.bucket, objectName(projectID), minio.RemoveObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
			return nil
		}
		return fmt.Errorf("failed to delete video: %w", err)
	}
	return nil
}
