package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePut(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root, "https://api.example.com/")
	require.NoError(t, err)

	url, err := store.Put(context.Background(), Object{
		Key:         "portfolio/images/abc.png",
		ContentType: "image/png",
		Body:        []byte("png bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/uploads/portfolio/images/abc.png", url)

	data, err := os.ReadFile(filepath.Join(root, "portfolio", "images", "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(data))
}

func TestLocalStoreRejectsEscapingKeys(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "")
	require.NoError(t, err)

	_, err = store.Put(context.Background(), Object{Key: "../outside.txt", Body: []byte("x")})
	assert.Error(t, err)
}

func TestLocalStoreHonoursCancelledContext(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Put(ctx, Object{Key: "a.png", Body: []byte("x")})
	assert.ErrorIs(t, err, context.Canceled)
}

type fakeS3 struct {
	input *s3.PutObjectInput
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	return &s3.PutObjectOutput{}, f.err
}

func TestS3StorePutImage(t *testing.T) {
	client := &fakeS3{}
	store := NewS3StoreWithClient(client, S3Config{Bucket: "assets", Region: "eu-west-1"})

	url, err := store.Put(context.Background(), Object{
		Key:         "portfolio/images/abc.webp",
		ContentType: "image/webp",
		Body:        []byte("webp"),
		Mode:        ModeImage,
	})
	require.NoError(t, err)

	assert.Equal(t, "https://assets.s3.eu-west-1.amazonaws.com/portfolio/images/abc.webp", url)
	assert.Equal(t, "assets", aws.ToString(client.input.Bucket))
	assert.Equal(t, "image/webp", aws.ToString(client.input.ContentType))
	assert.Equal(t, int64(4), aws.ToInt64(client.input.ContentLength))
	assert.Contains(t, aws.ToString(client.input.CacheControl), "immutable")
	assert.Nil(t, client.input.ContentDisposition)
}

func TestS3StorePutRawDocument(t *testing.T) {
	client := &fakeS3{}
	store := NewS3StoreWithClient(client, S3Config{
		Bucket:        "assets",
		Endpoint:      "https://r2.example.com/",
		PublicBaseURL: "https://cdn.example.com/",
	})

	url, err := store.Put(context.Background(), Object{
		Key:         "portfolio/resumes/cv.pdf",
		Filename:    "Jane Doe CV.pdf",
		ContentType: "application/pdf",
		Body:        []byte("%PDF"),
		Mode:        ModeRaw,
	})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/portfolio/resumes/cv.pdf", url)
	assert.Equal(t, "no-cache", aws.ToString(client.input.CacheControl))
	assert.Equal(t, `inline; filename="Jane Doe CV.pdf"`, aws.ToString(client.input.ContentDisposition))
}

func TestS3StoreWrapsClientErrors(t *testing.T) {
	boom := errors.New("access denied")
	store := NewS3StoreWithClient(&fakeS3{err: boom}, S3Config{Bucket: "assets", Endpoint: "http://minio:9000"})

	_, err := store.Put(context.Background(), Object{Key: "k", Body: []byte("x")})
	assert.ErrorIs(t, err, boom)
}
