package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/disintegration/imaging"
	"github.com/joho/godotenv"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 10 * time.Second

// ErrMissingBucket is returned when an upload is configured without a bucket
var ErrMissingBucket = errors.New("s3 bucket not configured")

// Environment keys read by LoadS3Config
const (
	EnvS3Endpoint  = "RAYTRACER_S3_ENDPOINT"
	EnvS3Region    = "RAYTRACER_S3_REGION"
	EnvS3Bucket    = "RAYTRACER_S3_BUCKET"
	EnvS3AccessKey = "RAYTRACER_S3_ACCESS_KEY"
	EnvS3SecretKey = "RAYTRACER_S3_SECRET_KEY"
	EnvS3Prefix    = "RAYTRACER_S3_PREFIX"
)

// S3Config holds the connection settings for an S3-compatible bucket
type S3Config struct {
	Endpoint  string // Empty uses the AWS endpoint for Region
	Region    string
	Bucket    string
	AccessKey string // Empty uses the default credential chain
	SecretKey string
	Prefix    string // Prepended to every object key
}

// LoadS3Config reads the upload settings from the process environment, with
// envFile (if non-empty and present) supplying values the environment lacks
func LoadS3Config(envFile string) (S3Config, error) {
	fileValues := map[string]string{}
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileValues = values
		case errors.Is(err, fs.ErrNotExist):
			// Optional file
		default:
			return S3Config{}, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
	}

	lookup := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		if value, ok := fileValues[key]; ok {
			return value
		}
		return fallback
	}

	return S3Config{
		Endpoint:  lookup(EnvS3Endpoint, ""),
		Region:    lookup(EnvS3Region, "us-east-1"),
		Bucket:    lookup(EnvS3Bucket, ""),
		AccessKey: lookup(EnvS3AccessKey, ""),
		SecretKey: lookup(EnvS3SecretKey, ""),
		Prefix:    lookup(EnvS3Prefix, ""),
	}, nil
}

// putObjectAPI is the part of the S3 client the uploader needs
type putObjectAPI interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// S3Uploader writes rendered images to a bucket
type S3Uploader struct {
	client  putObjectAPI
	bucket  string
	prefix  string
	timeout time.Duration
}

// NewS3Uploader creates an uploader with a path-style S3 session
func NewS3Uploader(cfg S3Config) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, ErrMissingBucket
	}

	awsConfig := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return newS3Uploader(s3.New(sess), cfg.Bucket, cfg.Prefix), nil
}

func newS3Uploader(client putObjectAPI, bucket, prefix string) *S3Uploader {
	return &S3Uploader{
		client:  client,
		bucket:  bucket,
		prefix:  prefix,
		timeout: UploadTimeout,
	}
}

// Upload puts data at key, giving up after the upload timeout
func (u *S3Uploader) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	fullKey := u.prefix + key
	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(fullKey),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", fullKey, err)
	}
	return nil
}

// UploadImage encodes img in the format implied by key and uploads it
func (u *S3Uploader) UploadImage(ctx context.Context, key string, img *Image) error {
	format, err := imaging.FormatFromFilename(key)
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}

	var buf bytes.Buffer
	if err := img.Encode(&buf, key); err != nil {
		return err
	}
	return u.Upload(ctx, key, buf.Bytes(), contentType(format))
}

func contentType(format imaging.Format) string {
	switch format {
	case imaging.JPEG:
		return "image/jpeg"
	case imaging.GIF:
		return "image/gif"
	case imaging.TIFF:
		return "image/tiff"
	case imaging.BMP:
		return "image/bmp"
	default:
		return "image/png"
	}
}
