package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	put     *s3.PutObjectInput
	body    []byte
	deleted *s3.DeleteObjectInput
	err     error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.put = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deleted = in
	return &s3.DeleteObjectOutput{}, nil
}

func TestClient_Put(t *testing.T) {
	api := &fakeS3{}
	c := NewClientWithAPI(api, "paintings", "https://proj.supabase.co/storage/v1/object/public")

	require.NoError(t, c.Put(context.Background(), "u/p/1.jpeg", bytes.NewReader([]byte("jpeg")), 4, "image/jpeg"))
	require.NotNil(t, api.put)
	assert.Equal(t, "paintings", aws.ToString(api.put.Bucket))
	assert.Equal(t, "u/p/1.jpeg", aws.ToString(api.put.Key))
	assert.Equal(t, "image/jpeg", aws.ToString(api.put.ContentType))
	assert.Equal(t, int64(4), aws.ToInt64(api.put.ContentLength))
	assert.Equal(t, []byte("jpeg"), api.body)

	assert.Equal(t, "https://proj.supabase.co/storage/v1/object/public/paintings/u/p/1.jpeg", c.PublicURL("u/p/1.jpeg"))
}

func TestClient_Delete(t *testing.T) {
	api := &fakeS3{}
	c := NewClientWithAPI(api, "paintings", "")

	require.NoError(t, c.Delete(context.Background(), "u/p/1.jpeg"))
	assert.Equal(t, "u/p/1.jpeg", aws.ToString(api.deleted.Key))
}

func TestClient_Errors(t *testing.T) {
	c := NewClientWithAPI(&fakeS3{err: errors.New("InvalidAccessKeyId")}, "paintings", "")

	assert.ErrorContains(t, c.Put(context.Background(), "k", bytes.NewReader(nil), 0, "image/png"), "put object")
	assert.ErrorContains(t, c.Delete(context.Background(), "k"), "delete object")
}

func TestNew_CustomEndpoint(t *testing.T) {
	c, err := New(context.Background(), Options{
		Endpoint:  "http://localhost:9000",
		Region:    "us-east-1",
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "paintings",
		PublicURL: "http://localhost:9000",
	})
	require.NoError(t, err)
	assert.Equal(t, "paintings", c.bucket)
	assert.IsType(t, &s3.Client{}, c.api)
}
