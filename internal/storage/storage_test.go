package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoragePutGet(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "sitemap/0.xml", []byte("<urlset/>"), "application/xml"))
	_, err = os.Stat(filepath.Join(dir, "sitemap", "0.xml"))
	require.NoError(t, err)

	data, err := s.Get(ctx, "sitemap/0.xml")
	require.NoError(t, err)
	assert.Equal(t, "<urlset/>", string(data))

	require.NoError(t, s.Put(ctx, "sitemap/0.xml", []byte("<urlset></urlset>"), "application/xml"))
	data, err = s.Get(ctx, "sitemap/0.xml")
	require.NoError(t, err)
	assert.Equal(t, "<urlset></urlset>", string(data))
}

func TestLocalStorageRejectsEscapingKeys(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../x", "a/../../x", "/etc/passwd"} {
		err := s.Put(context.Background(), key, []byte("x"), "text/plain")
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestLocalStorageHonorsCancelledContext(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Put(ctx, "a", nil, ""), context.Canceled)
}

type fakeObjects struct {
	put  map[string]*s3.PutObjectInput
	body map[string][]byte
}

func (f *fakeObjects) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.put[aws.ToString(in.Key)] = in
	f.body[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(f.body[aws.ToString(in.Key)]))}, nil
}

func TestR2StoragePutGet(t *testing.T) {
	fake := &fakeObjects{put: map[string]*s3.PutObjectInput{}, body: map[string][]byte{}}
	s := &R2Storage{client: fake, bucket: "newsnexus"}
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "sitemap.xml", []byte("<sitemapindex/>"), "application/xml; charset=utf-8"))
	in := fake.put["sitemap.xml"]
	require.NotNil(t, in)
	assert.Equal(t, "newsnexus", aws.ToString(in.Bucket))
	assert.Equal(t, "application/xml; charset=utf-8", aws.ToString(in.ContentType))
	assert.Equal(t, int64(15), aws.ToInt64(in.ContentLength))

	data, err := s.Get(ctx, "sitemap.xml")
	require.NoError(t, err)
	assert.Equal(t, "<sitemapindex/>", string(data))
}
