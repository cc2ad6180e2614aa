package output

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
)

// fakeS3 records PutObject calls
type fakeS3 struct {
	inputs      []*s3.PutObjectInput
	bodies      [][]byte
	err         error
	sawDeadline bool
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	_, f.sawDeadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, input)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Uploader_Upload(t *testing.T) {
	fake := &fakeS3{}
	uploader := newS3Uploader(fake, "renders", "diffuse/")

	if err := uploader.Upload(context.Background(), "a.png", []byte("data"), "image/png"); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if len(fake.inputs) != 1 {
		t.Fatalf("Expected 1 upload, got %d", len(fake.inputs))
	}
	input := fake.inputs[0]
	if aws.StringValue(input.Bucket) != "renders" {
		t.Errorf("Expected bucket renders, got %s", aws.StringValue(input.Bucket))
	}
	if aws.StringValue(input.Key) != "diffuse/a.png" {
		t.Errorf("Expected prefixed key, got %s", aws.StringValue(input.Key))
	}
	if aws.Int64Value(input.ContentLength) != 4 {
		t.Errorf("Expected content length 4, got %d", aws.Int64Value(input.ContentLength))
	}
	if string(fake.bodies[0]) != "data" {
		t.Errorf("Expected body data, got %q", fake.bodies[0])
	}
	if !fake.sawDeadline {
		t.Error("Expected upload to run with a deadline")
	}
}

func TestS3Uploader_UploadError(t *testing.T) {
	cause := errors.New("connection refused")
	uploader := newS3Uploader(&fakeS3{err: cause}, "renders", "")

	err := uploader.Upload(context.Background(), "a.png", []byte("x"), "image/png")
	if !errors.Is(err, cause) {
		t.Errorf("Expected wrapped cause, got %v", err)
	}
}

func TestS3Uploader_UploadImage(t *testing.T) {
	fake := &fakeS3{}
	uploader := newS3Uploader(fake, "renders", "")
	img := gradientImage(4, 4)

	if err := uploader.UploadImage(context.Background(), "render.jpg", img); err != nil {
		t.Fatalf("UploadImage failed: %v", err)
	}
	if got := aws.StringValue(fake.inputs[0].ContentType); got != "image/jpeg" {
		t.Errorf("Expected image/jpeg, got %s", got)
	}
	// JPEG SOI marker
	if body := fake.bodies[0]; len(body) < 2 || body[0] != 0xFF || body[1] != 0xD8 {
		t.Error("Expected JPEG-encoded body")
	}

	if err := uploader.UploadImage(context.Background(), "render", img); err == nil {
		t.Error("Expected error for key without an image extension")
	}
}

func TestNewS3Uploader_MissingBucket(t *testing.T) {
	_, err := NewS3Uploader(S3Config{Region: "us-east-1"})
	if !errors.Is(err, ErrMissingBucket) {
		t.Errorf("Expected ErrMissingBucket, got %v", err)
	}
}

func TestNewS3Uploader(t *testing.T) {
	uploader, err := NewS3Uploader(S3Config{
		Endpoint:  "http://localhost:9000",
		Region:    "us-east-1",
		Bucket:    "renders",
		AccessKey: "key",
		SecretKey: "secret",
	})
	if err != nil {
		t.Fatalf("NewS3Uploader failed: %v", err)
	}
	if uploader.bucket != "renders" || uploader.timeout != UploadTimeout {
		t.Errorf("Unexpected uploader: %+v", uploader)
	}
}

func TestLoadS3Config(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	contents := "RAYTRACER_S3_BUCKET=from-file\nRAYTRACER_S3_REGION=eu-west-1\nRAYTRACER_S3_ACCESS_KEY=file-key\n"
	if err := os.WriteFile(envFile, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	// Process environment wins over the file
	t.Setenv(EnvS3Bucket, "from-env")

	cfg, err := LoadS3Config(envFile)
	if err != nil {
		t.Fatalf("LoadS3Config failed: %v", err)
	}
	if cfg.Bucket != "from-env" {
		t.Errorf("Expected bucket from-env, got %s", cfg.Bucket)
	}
	if cfg.Region != "eu-west-1" {
		t.Errorf("Expected region from file, got %s", cfg.Region)
	}
	if cfg.AccessKey != "file-key" {
		t.Errorf("Expected access key from file, got %s", cfg.AccessKey)
	}
}

func TestLoadS3Config_MissingFile(t *testing.T) {
	t.Setenv(EnvS3Region, "ap-south-1")

	cfg, err := LoadS3Config(filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatalf("Expected missing env file to be ignored, got %v", err)
	}
	if cfg.Region != "ap-south-1" {
		t.Errorf("Expected region from environment, got %s", cfg.Region)
	}
}
