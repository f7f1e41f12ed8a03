package logostore

import (
	"context"
	"io"
	"testing"

	"github.com/SscSPs/invoice_wizard/internal/apperrors"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	input *s3manager.UploadInput
	body  []byte
	out   *s3manager.UploadOutput
	err   error
}

func (f *fakeUploader) UploadWithContext(_ aws.Context, input *s3manager.UploadInput, _ ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	f.input = input
	f.body, _ = io.ReadAll(input.Body)
	return f.out, f.err
}

func fixedID() string { return "0b3c" }

func TestUpload_ReturnsLocation(t *testing.T) {
	u := &fakeUploader{out: &s3manager.UploadOutput{Location: "https://cdn.test/logos/0b3c-logo.png"}}
	store := newS3Store("acme-assets", u, fixedID)

	url, err := store.Upload(context.Background(), "logo.png", "image/png", []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/logos/0b3c-logo.png", url)

	assert.Equal(t, "acme-assets", aws.StringValue(u.input.Bucket))
	assert.Equal(t, "logos/0b3c-logo.png", aws.StringValue(u.input.Key))
	assert.Equal(t, "image/png", aws.StringValue(u.input.ContentType))
	assert.Equal(t, []byte("png"), u.body)
}

func TestUpload_BuildsURLWithoutLocation(t *testing.T) {
	u := &fakeUploader{out: &s3manager.UploadOutput{}}
	store := newS3Store("acme-assets", u, fixedID)

	url, err := store.Upload(context.Background(), `C:\Users\me\My Logo (1).png`, "image/png", []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "https://acme-assets.s3.amazonaws.com/logos/0b3c-My_Logo_1_.png", url)
}

func TestUpload_Failure(t *testing.T) {
	store := newS3Store("acme-assets", &fakeUploader{err: assert.AnError}, fixedID)

	_, err := store.Upload(context.Background(), "logo.png", "image/png", []byte("png"))
	assert.ErrorIs(t, err, apperrors.ErrUploadFailed)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSafeName(t *testing.T) {
	assert.Equal(t, "logo", safeName(""))
	assert.Equal(t, "logo", safeName("../.."))
	assert.Equal(t, "passwd", safeName("../../etc/passwd"))
	assert.Equal(t, "a_b.svg", safeName("a b.svg"))
}
