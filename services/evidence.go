package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// EvidenceStorage keeps inspection photos in object storage. Reports only ever
// hold object keys.
type EvidenceStorage interface {
	PresignUpload(ctx context.Context, key, contentType string) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// R2Options configures an S3-compatible bucket (Cloudflare R2 by default).
type R2Options struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	Endpoint        string
	Region          string
	PresignExpiry   time.Duration
}

type R2Storage struct {
	client *s3.Client
	opts   R2Options
}

func NewR2Storage(opts R2Options) *R2Storage {
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", opts.AccountID)
	}
	if opts.Region == "" {
		opts.Region = "auto"
	}
	if opts.PresignExpiry <= 0 {
		opts.PresignExpiry = 15 * time.Minute
	}

	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(endpoint),
		Credentials: credentials.NewStaticCredentialsProvider(
			opts.AccessKeyID,
			opts.SecretAccessKey,
			"",
		),
		Region:       opts.Region,
		UsePathStyle: true,
	})
	return &R2Storage{client: client, opts: opts}
}

func (s *R2Storage) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	presigner := s3.NewPresignClient(s.client)
	req, err := presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.opts.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.opts.PresignExpiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (s *R2Storage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.opts.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *s3types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *R2Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.opts.BucketName),
		Key:    aws.String(key),
	})
	return err
}

func (s *R2Storage) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(s.opts.PublicURL, "/"), key)
}

var evidenceTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
}

// MaxEvidenceSize is the largest photo accepted for upload.
const MaxEvidenceSize = 10 * 1024 * 1024

// ValidEvidence reports whether a photo of contentType and size may be attached.
func ValidEvidence(contentType string, size int64) bool {
	return evidenceTypes[contentType] && size > 0 && size <= MaxEvidenceSize
}

// EvidenceKey builds the object key of a new photo for reportID.
func EvidenceKey(reportID uint, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("reports/%d/%d_%s%s", reportID, time.Now().Unix(), uuid.New().String(), ext)
}

// EvidenceKeyBelongs reports whether key was issued for reportID.
func EvidenceKeyBelongs(key string, reportID uint) bool {
	return strings.HasPrefix(key, fmt.Sprintf("reports/%d/", reportID)) && !strings.Contains(key, "..")
}
