package objectstore

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/derya/castlink/internal/pkg/apperrors"
	"github.com/derya/castlink/internal/pkg/logger"
	"github.com/derya/castlink/internal/pkg/sanitize"
)

// Config holds the connection settings for the MinIO-backed photo store.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL is the externally reachable base URL for stored objects.
	// When empty the client's endpoint URL is used.
	PublicURL string
}

// MinioStore stores candidate photos in a MinIO (or S3-compatible) bucket.
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioStore creates a MinioStore and verifies the client can be built.
// The bucket itself is expected to be provisioned out of band: a missing
// bucket is reported at upload time with a remediation message, not at
// startup, so the service can come up before its storage is configured.
func NewMinioStore(cfg Config) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" {
		publicURL = strings.TrimRight(client.EndpointURL().String(), "/")
	}

	store := &MinioStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: publicURL,
	}

	// Warn early when the bucket is absent. Upload still performs its own
	// classification, this just surfaces misconfiguration at startup.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if exists, err := client.BucketExists(ctx, cfg.Bucket); err != nil {
		logger.Warn().Err(err).Str("bucket", cfg.Bucket).Msg("Could not check storage bucket")
	} else if !exists {
		logger.Warn().Str("bucket", cfg.Bucket).Msg("Storage bucket does not exist; photo uploads will fail until it is created")
	}

	return store, nil
}

// Upload stores a candidate photo under a fresh event-scoped key and returns
// its public URL.
//
// The write is collision-protected: the target key is checked first and the
// upload fails with ErrObjectExists instead of overwriting. A missing bucket
// is distinguished from other failures so callers can surface an actionable
// message. On any failure no object is visible to the rest of the pipeline.
func (s *MinioStore) Upload(ctx context.Context, eventID string, file *multipart.FileHeader) (string, error) {
	key := BuildObjectKey(eventID, file.Filename)
	contentType := sanitize.ContentTypeFor(file.Header.Get("Content-Type"), sanitize.FileExtension(file.Filename))

	// The key embeds time+random components, so an existing object at this
	// key means something is badly wrong. Fail rather than overwrite.
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return "", apperrors.NewCustomError(apperrors.ErrObjectExists,
			fmt.Sprintf("object %q already exists in bucket %q", key, s.bucket))
	}
	if classified := s.classify(err); classified != nil {
		return "", classified
	}

	src, err := file.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", file.Filename).Msg("Failed to open uploaded photo")
		return "", apperrors.NewUploadFailedError("failed to read uploaded photo: " + err.Error())
	}
	defer src.Close()

	_, err = s.client.PutObject(ctx, s.bucket, key, src, file.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		logger.Error().Err(err).Str("bucket", s.bucket).Str("key", key).Msg("Photo upload failed")
		if classified := s.classify(err); classified != nil {
			return "", classified
		}
		return "", apperrors.NewUploadFailedError("photo upload failed: " + err.Error())
	}

	url := s.objectURL(key)
	logger.Info().Str("bucket", s.bucket).Str("key", key).Str("url", url).Msg("Photo uploaded")
	return url, nil
}

// classify maps a MinIO error to the upload failure taxonomy. It returns nil
// for a plain missing-object response, which is the expected outcome of the
// pre-upload existence check.
func (s *MinioStore) classify(err error) error {
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return nil
	case "NoSuchBucket":
		return apperrors.NewBucketMissingError(fmt.Sprintf(
			"photo upload failed: storage bucket %q does not exist; create it and apply its access policy before accepting submissions", s.bucket))
	default:
		return apperrors.NewUploadFailedError("photo upload failed: " + err.Error())
	}
}

// objectURL resolves the public URL for a stored object. The URL is opaque to
// the rest of the system and assumed durable as long as the object exists.
func (s *MinioStore) objectURL(key string) string {
	return s.publicURL + "/" + s.bucket + "/" + key
}
