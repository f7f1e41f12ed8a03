package logostore

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/SscSPs/invoice_wizard/internal/apperrors"
	"github.com/SscSPs/invoice_wizard/internal/core/ports"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
)

const keyPrefix = "logos/"

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

type uploader interface {
	UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// S3Store uploads logos to a public-read S3 bucket.
type S3Store struct {
	bucket   string
	uploader uploader
	newID    func() string
}

var _ ports.LogoStore = (*S3Store)(nil)

// NewS3Store uses the default AWS credential chain.
func NewS3Store(bucket, region string) (*S3Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}
	return newS3Store(bucket, s3manager.NewUploader(sess), uuid.NewString), nil
}

func newS3Store(bucket string, u uploader, newID func() string) *S3Store {
	return &S3Store{bucket: bucket, uploader: u, newID: newID}
}

// Upload stores data under logos/<id>-<filename> and returns the object URL.
func (s *S3Store) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	key := keyPrefix + s.newID() + "-" + safeName(filename)

	out, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		ACL:          aws.String("public-read"),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrUploadFailed, err)
	}

	if out != nil && out.Location != "" {
		return out.Location, nil
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key), nil
}

func safeName(filename string) string {
	name := unsafeKeyChars.ReplaceAllString(path.Base(strings.ReplaceAll(filename, `\`, "/")), "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "logo"
	}
	return name
}
